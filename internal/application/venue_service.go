package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/domain/repository"
	"github.com/eventora/marketplace-api/pkg/apperr"
	"github.com/eventora/marketplace-api/pkg/helpers"
)

// VenueService mirrors ServiceListingService for venue-provider listings.
type VenueService struct {
	venues repository.VenueRepository
	index  ListingIndexer
	log    *logrus.Logger
	now    func() time.Time
}

func NewVenueService(venues repository.VenueRepository, index ListingIndexer, log *logrus.Logger) *VenueService {
	return &VenueService{venues: venues, index: index, log: log, now: time.Now}
}

func (s *VenueService) Create(ctx context.Context, ownerID string, req CreateVenueRequest) (*entity.Venue, error) {
	venue := &entity.Venue{
		ID:      helpers.NewID(),
		OwnerID: ownerID,
		Information: entity.VenueInformation{
			VenueName:   req.Information.VenueName,
			VenueType:   req.Information.VenueType,
			Description: req.Information.Description,
			AddressLine: req.Information.AddressLine,
			City:        req.Information.City,
			Area:        req.Information.Area,
		},
		Pricing: entity.VenuePricing{
			BasePrice: req.Pricing.BasePrice,
			Currency:  normalizeCurrency(req.Pricing.Currency),
			Amenities: req.Pricing.Amenities,
		},
		Capacity:      entity.VenueCapacity{MaximumGuests: req.Capacity.MaximumGuests},
		PublishStatus: entity.PublishPending,
	}
	if req.Pricing.Discount != nil {
		venue.Pricing.Discount = req.Pricing.Discount.toEntity()
	}
	if req.Media != nil {
		venue.Media = entity.Media{
			GalleryImages: req.Media.GalleryImages,
			VideoURL:      req.Media.VideoURL,
		}
	}
	venue.AvailabilityOverrides = toOverrides(req.AvailabilityOverrides)

	if err := validateVenue(venue); err != nil {
		return nil, err
	}
	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, apperr.Internal(err)
	}
	return venue, nil
}

func (s *VenueService) Get(ctx context.Context, ownerID, id string) (*entity.Venue, error) {
	return s.owned(ctx, ownerID, id)
}

func (s *VenueService) List(ctx context.Context, ownerID string, page helpers.PageRequest) ([]entity.Venue, int64, error) {
	items, total, err := s.venues.ListByOwner(ctx, ownerID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return items, total, nil
}

func (s *VenueService) Update(ctx context.Context, ownerID, id string, req UpdateVenueRequest) (*entity.Venue, error) {
	venue, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if in := req.Information; in != nil {
		applyString(&venue.Information.VenueName, in.VenueName)
		applyString(&venue.Information.VenueType, in.VenueType)
		applyString(&venue.Information.Description, in.Description)
		applyString(&venue.Information.AddressLine, in.AddressLine)
		applyString(&venue.Information.City, in.City)
		applyString(&venue.Information.Area, in.Area)
	}
	if in := req.Pricing; in != nil {
		if in.BasePrice != nil {
			venue.Pricing.BasePrice = *in.BasePrice
		}
		if in.Currency != nil {
			venue.Pricing.Currency = normalizeCurrency(*in.Currency)
		}
		if in.Amenities != nil {
			venue.Pricing.Amenities = *in.Amenities
		}
		if in.Discount.Set {
			if in.Discount.Valid {
				venue.Pricing.Discount = in.Discount.Value.toEntity()
			} else {
				venue.Pricing.Discount = nil
			}
		}
	}
	if in := req.Capacity; in != nil && in.MaximumGuests != nil {
		venue.Capacity.MaximumGuests = *in.MaximumGuests
	}
	if in := req.Media; in != nil {
		if in.GalleryImages != nil {
			venue.Media.GalleryImages = *in.GalleryImages
		}
		if in.VideoURL.Set {
			if in.VideoURL.Valid {
				venue.Media.VideoURL = in.VideoURL.Value
			} else {
				venue.Media.VideoURL = ""
			}
		}
	}
	if req.AvailabilityOverrides != nil {
		venue.AvailabilityOverrides = toOverrides(*req.AvailabilityOverrides)
	}

	if err := validateVenue(venue); err != nil {
		return nil, err
	}

	venue.ResetModeration()
	if err := s.venues.Update(ctx, venue); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgListingNotFound)
		}
		return nil, apperr.Internal(err)
	}
	// pending again, so it must not be publicly searchable
	_ = s.index.Remove(ctx, venue.ID)
	return venue, nil
}

func (s *VenueService) Delete(ctx context.Context, ownerID, id string) error {
	venue, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	venue.IsDeleted = true
	if err := s.venues.Update(ctx, venue); err != nil {
		return apperr.Internal(err)
	}
	_ = s.index.Remove(ctx, venue.ID)
	return nil
}

func (s *VenueService) owned(ctx context.Context, ownerID, id string) (*entity.Venue, error) {
	if !helpers.ValidID(id) {
		return nil, apperr.BadRequest("Invalid listing id")
	}
	venue, err := s.venues.GetOwned(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgListingNotFound)
		}
		return nil, apperr.Internal(err)
	}
	return venue, nil
}

func validateVenue(v *entity.Venue) error {
	if err := validateDiscount(v.Pricing.Discount); err != nil {
		return err
	}
	if err := validateGallery(v.Media.GalleryImages); err != nil {
		return err
	}
	return validateOverrides(v.AvailabilityOverrides)
}
