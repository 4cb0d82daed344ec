package repository

import (
	"context"

	"github.com/eventora/marketplace-api/internal/domain/entity"
)

// ServiceListingRepository persists service-provider catalog entries.
// Soft-deleted rows are invisible to every method; GetOwned additionally
// filters by owner so a foreign id behaves exactly like a missing one.
type ServiceListingRepository interface {
	Create(ctx context.Context, s *entity.ServiceListing) error
	GetByID(ctx context.Context, id string) (*entity.ServiceListing, error)
	GetOwned(ctx context.Context, ownerID, id string) (*entity.ServiceListing, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]entity.ServiceListing, int64, error)
	// ListByStatus is the moderation queue view, newest first.
	ListByStatus(ctx context.Context, status entity.PublishStatus, limit, offset int) ([]entity.ServiceListing, int64, error)
	Update(ctx context.Context, s *entity.ServiceListing) error
}

// VenueRepository persists venue catalog entries with the same visibility
// rules as ServiceListingRepository.
type VenueRepository interface {
	Create(ctx context.Context, v *entity.Venue) error
	GetByID(ctx context.Context, id string) (*entity.Venue, error)
	GetOwned(ctx context.Context, ownerID, id string) (*entity.Venue, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]entity.Venue, int64, error)
	ListByStatus(ctx context.Context, status entity.PublishStatus, limit, offset int) ([]entity.Venue, int64, error)
	Update(ctx context.Context, v *entity.Venue) error
}
