package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/domain/repository"
	"github.com/eventora/marketplace-api/internal/infrastructure/search"
	"github.com/eventora/marketplace-api/pkg/apperr"
	"github.com/eventora/marketplace-api/pkg/helpers"
)

// ListingIndexer is the search side of moderation. Indexing is best
// effort; the database is the source of truth for publish status.
type ListingIndexer interface {
	Index(ctx context.Context, doc search.ListingDoc) error
	Remove(ctx context.Context, id string) error
}

// AdminService handles the moderation queue. Approving publishes a
// listing and records the acting admin; rejecting hides it again.
type AdminService struct {
	services repository.ServiceListingRepository
	venues   repository.VenueRepository
	index    ListingIndexer
	log      *logrus.Logger
	now      func() time.Time
}

func NewAdminService(
	services repository.ServiceListingRepository,
	venues repository.VenueRepository,
	index ListingIndexer,
	log *logrus.Logger,
) *AdminService {
	return &AdminService{services: services, venues: venues, index: index, log: log, now: time.Now}
}

// PendingQueue is one page of each moderation queue.
type PendingQueue struct {
	Services      []entity.ServiceListing `json:"services"`
	ServicesTotal int64                   `json:"services_total"`
	Venues        []entity.Venue          `json:"venues"`
	VenuesTotal   int64                   `json:"venues_total"`
}

func (s *AdminService) ListPending(ctx context.Context, page helpers.PageRequest) (*PendingQueue, error) {
	services, svcTotal, err := s.services.ListByStatus(ctx, entity.PublishPending, page.Limit, page.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	venues, venueTotal, err := s.venues.ListByStatus(ctx, entity.PublishPending, page.Limit, page.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &PendingQueue{
		Services:      services,
		ServicesTotal: svcTotal,
		Venues:        venues,
		VenuesTotal:   venueTotal,
	}, nil
}

// ApproveService publishes a service listing and indexes it for customer
// search. An index failure is logged but does not undo the approval.
func (s *AdminService) ApproveService(ctx context.Context, admin entity.Approver, id string) (*entity.ServiceListing, error) {
	listing, err := s.service(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	listing.PublishStatus = entity.PublishPublished
	listing.ApprovedBy = &admin
	listing.ApprovedAt = &now
	if err := s.services.Update(ctx, listing); err != nil {
		return nil, apperr.Internal(err)
	}
	_ = s.index.Index(ctx, serviceDoc(listing))
	return listing, nil
}

func (s *AdminService) RejectService(ctx context.Context, id string) (*entity.ServiceListing, error) {
	listing, err := s.service(ctx, id)
	if err != nil {
		return nil, err
	}
	listing.PublishStatus = entity.PublishRejected
	listing.ApprovedBy = nil
	listing.ApprovedAt = nil
	if err := s.services.Update(ctx, listing); err != nil {
		return nil, apperr.Internal(err)
	}
	_ = s.index.Remove(ctx, listing.ID)
	return listing, nil
}

func (s *AdminService) ApproveVenue(ctx context.Context, admin entity.Approver, id string) (*entity.Venue, error) {
	venue, err := s.venue(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	venue.PublishStatus = entity.PublishPublished
	venue.ApprovedBy = &admin
	venue.ApprovedAt = &now
	if err := s.venues.Update(ctx, venue); err != nil {
		return nil, apperr.Internal(err)
	}
	_ = s.index.Index(ctx, venueDoc(venue))
	return venue, nil
}

func (s *AdminService) RejectVenue(ctx context.Context, id string) (*entity.Venue, error) {
	venue, err := s.venue(ctx, id)
	if err != nil {
		return nil, err
	}
	venue.PublishStatus = entity.PublishRejected
	venue.ApprovedBy = nil
	venue.ApprovedAt = nil
	if err := s.venues.Update(ctx, venue); err != nil {
		return nil, apperr.Internal(err)
	}
	_ = s.index.Remove(ctx, venue.ID)
	return venue, nil
}

func (s *AdminService) service(ctx context.Context, id string) (*entity.ServiceListing, error) {
	if !helpers.ValidID(id) {
		return nil, apperr.BadRequest("Invalid listing id")
	}
	listing, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgListingNotFound)
		}
		return nil, apperr.Internal(err)
	}
	return listing, nil
}

func (s *AdminService) venue(ctx context.Context, id string) (*entity.Venue, error) {
	if !helpers.ValidID(id) {
		return nil, apperr.BadRequest("Invalid listing id")
	}
	venue, err := s.venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgListingNotFound)
		}
		return nil, apperr.Internal(err)
	}
	return venue, nil
}

func serviceDoc(l *entity.ServiceListing) search.ListingDoc {
	doc := search.ListingDoc{
		ID:          l.ID,
		Kind:        search.KindService,
		OwnerID:     l.OwnerID,
		Name:        l.Information.ServiceName,
		Category:    l.Information.Category,
		Description: l.Information.Description,
		Areas:       l.Information.ServiceArea,
		Tags:        l.Information.Tags,
		Price:       l.Pricing.Amount,
		Currency:    l.Pricing.Currency,
	}
	if l.ApprovedAt != nil {
		doc.PublishedAt = l.ApprovedAt.Format(time.RFC3339Nano)
	}
	return doc
}

func venueDoc(v *entity.Venue) search.ListingDoc {
	doc := search.ListingDoc{
		ID:          v.ID,
		Kind:        search.KindVenue,
		OwnerID:     v.OwnerID,
		Name:        v.Information.VenueName,
		Category:    v.Information.VenueType,
		Description: v.Information.Description,
		City:        v.Information.City,
		Price:       v.Pricing.BasePrice,
		Currency:    v.Pricing.Currency,
	}
	if v.ApprovedAt != nil {
		doc.PublishedAt = v.ApprovedAt.Format(time.RFC3339Nano)
	}
	return doc
}
