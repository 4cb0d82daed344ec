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

const msgListingNotFound = "Listing not found"

// ServiceListingService owns the service-provider catalog. Every content
// change sends the listing back to moderation; only admins move it out.
// A previously published listing also leaves the search index the moment
// its owner edits or deletes it.
type ServiceListingService struct {
	listings repository.ServiceListingRepository
	index    ListingIndexer
	log      *logrus.Logger
	now      func() time.Time
}

func NewServiceListingService(listings repository.ServiceListingRepository, index ListingIndexer, log *logrus.Logger) *ServiceListingService {
	return &ServiceListingService{listings: listings, index: index, log: log, now: time.Now}
}

func (s *ServiceListingService) Create(ctx context.Context, ownerID string, req CreateServiceRequest) (*entity.ServiceListing, error) {
	listing := &entity.ServiceListing{
		ID:      helpers.NewID(),
		OwnerID: ownerID,
		Information: entity.ServiceInformation{
			ServiceName: req.Information.ServiceName,
			Category:    req.Information.Category,
			Description: req.Information.Description,
			ServiceArea: req.Information.ServiceArea,
			Tags:        req.Information.Tags,
		},
		Pricing: entity.ServicePricing{
			Amount:      req.Pricing.Amount,
			PricingType: entity.PricingType(req.Pricing.PricingType),
			Currency:    normalizeCurrency(req.Pricing.Currency),
		},
		PublishStatus: entity.PublishPending,
	}
	if req.Pricing.Discount != nil {
		listing.Pricing.Discount = req.Pricing.Discount.toEntity()
	}
	if req.Settings != nil {
		listing.Settings = entity.ServiceSettings{
			Amenities: req.Settings.Amenities,
			Capacity:  req.Settings.Capacity,
		}
	}
	if req.Media != nil {
		listing.Media = entity.Media{
			GalleryImages: req.Media.GalleryImages,
			VideoURL:      req.Media.VideoURL,
		}
	}
	listing.AvailabilityOverrides = toOverrides(req.AvailabilityOverrides)

	if err := validateServiceListing(listing); err != nil {
		return nil, err
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, apperr.Internal(err)
	}
	return listing, nil
}

func (s *ServiceListingService) Get(ctx context.Context, ownerID, id string) (*entity.ServiceListing, error) {
	return s.owned(ctx, ownerID, id)
}

func (s *ServiceListingService) List(ctx context.Context, ownerID string, page helpers.PageRequest) ([]entity.ServiceListing, int64, error) {
	items, total, err := s.listings.ListByOwner(ctx, ownerID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return items, total, nil
}

// Update applies a block-level merge: a block present in the payload
// replaces field by field, an absent block stays untouched. Fields typed
// Optional treat an explicit null as a clear.
func (s *ServiceListingService) Update(ctx context.Context, ownerID, id string, req UpdateServiceRequest) (*entity.ServiceListing, error) {
	listing, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if in := req.Information; in != nil {
		applyString(&listing.Information.ServiceName, in.ServiceName)
		applyString(&listing.Information.Category, in.Category)
		applyString(&listing.Information.Description, in.Description)
		if in.ServiceArea != nil {
			listing.Information.ServiceArea = *in.ServiceArea
		}
		if in.Tags != nil {
			listing.Information.Tags = *in.Tags
		}
	}
	if in := req.Pricing; in != nil {
		if in.Amount != nil {
			listing.Pricing.Amount = *in.Amount
		}
		if in.PricingType != nil {
			listing.Pricing.PricingType = entity.PricingType(*in.PricingType)
		}
		if in.Currency != nil {
			listing.Pricing.Currency = normalizeCurrency(*in.Currency)
		}
		if in.Discount.Set {
			if in.Discount.Valid {
				listing.Pricing.Discount = in.Discount.Value.toEntity()
			} else {
				listing.Pricing.Discount = nil
			}
		}
	}
	if in := req.Settings; in != nil {
		if in.Amenities != nil {
			listing.Settings.Amenities = *in.Amenities
		}
		if in.Capacity.Set {
			if in.Capacity.Valid {
				v := in.Capacity.Value
				if v <= 0 {
					return nil, apperr.BadRequest("Capacity must be positive")
				}
				listing.Settings.Capacity = &v
			} else {
				listing.Settings.Capacity = nil
			}
		}
	}
	if in := req.Media; in != nil {
		if in.GalleryImages != nil {
			listing.Media.GalleryImages = *in.GalleryImages
		}
		if in.VideoURL.Set {
			if in.VideoURL.Valid {
				listing.Media.VideoURL = in.VideoURL.Value
			} else {
				listing.Media.VideoURL = ""
			}
		}
	}
	if req.AvailabilityOverrides != nil {
		listing.AvailabilityOverrides = toOverrides(*req.AvailabilityOverrides)
	}

	if err := validateServiceListing(listing); err != nil {
		return nil, err
	}

	listing.ResetModeration()
	if err := s.listings.Update(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgListingNotFound)
		}
		return nil, apperr.Internal(err)
	}
	// the listing is pending again, so it must not be publicly searchable
	_ = s.index.Remove(ctx, listing.ID)
	return listing, nil
}

// Delete soft-deletes. The row survives for audit but no read path
// returns it again.
func (s *ServiceListingService) Delete(ctx context.Context, ownerID, id string) error {
	listing, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	listing.IsDeleted = true
	if err := s.listings.Update(ctx, listing); err != nil {
		return apperr.Internal(err)
	}
	_ = s.index.Remove(ctx, listing.ID)
	return nil
}

// owned resolves an id for its owner. A foreign or soft-deleted id is
// reported the same way as a missing one.
func (s *ServiceListingService) owned(ctx context.Context, ownerID, id string) (*entity.ServiceListing, error) {
	if !helpers.ValidID(id) {
		return nil, apperr.BadRequest("Invalid listing id")
	}
	listing, err := s.listings.GetOwned(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgListingNotFound)
		}
		return nil, apperr.Internal(err)
	}
	return listing, nil
}

func validateServiceListing(l *entity.ServiceListing) error {
	if err := validateDiscount(l.Pricing.Discount); err != nil {
		return err
	}
	if err := validateGallery(l.Media.GalleryImages); err != nil {
		return err
	}
	return validateOverrides(l.AvailabilityOverrides)
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
