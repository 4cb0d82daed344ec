package application

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/infrastructure/search"
	"github.com/eventora/marketplace-api/pkg/helpers"
)

func newTestAdminService(services *mockServiceRepo, venues *mockVenueRepo, idx *mockIndexer) *AdminService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	s := NewAdminService(services, venues, idx, log)
	s.now = func() time.Time { return testNow }
	return s
}

func TestApproveService(t *testing.T) {
	admin := entity.Approver{Name: "Root", Email: "root@x.y"}

	t.Run("publishes, records the approver and indexes", func(t *testing.T) {
		pending := publishedListing(helpers.NewID())
		pending.PublishStatus = entity.PublishPending
		pending.ApprovedBy = nil
		pending.ApprovedAt = nil

		var updated *entity.ServiceListing
		services := &mockServiceRepo{
			GetByIDFunc: func(context.Context, string) (*entity.ServiceListing, error) { return pending, nil },
			UpdateFunc: func(_ context.Context, s *entity.ServiceListing) error {
				updated = s
				return nil
			},
		}
		idx := &mockIndexer{}
		s := newTestAdminService(services, &mockVenueRepo{}, idx)

		listing, err := s.ApproveService(context.Background(), admin, pending.ID)
		require.NoError(t, err)

		assert.Equal(t, entity.PublishPublished, listing.PublishStatus)
		require.NotNil(t, listing.ApprovedBy)
		assert.Equal(t, admin, *listing.ApprovedBy)
		require.NotNil(t, listing.ApprovedAt)
		assert.Equal(t, testNow, *listing.ApprovedAt)
		require.NotNil(t, updated)

		require.Len(t, idx.indexed, 1)
		doc := idx.indexed[0]
		assert.Equal(t, search.KindService, doc.Kind)
		assert.Equal(t, pending.ID, doc.ID)
		assert.Equal(t, pending.Information.ServiceName, doc.Name)
	})

	t.Run("index failure does not undo the approval", func(t *testing.T) {
		pending := publishedListing(helpers.NewID())
		services := &mockServiceRepo{
			GetByIDFunc: func(context.Context, string) (*entity.ServiceListing, error) { return pending, nil },
		}
		idx := &mockIndexer{
			IndexFunc: func(context.Context, search.ListingDoc) error { return assert.AnError },
		}
		s := newTestAdminService(services, &mockVenueRepo{}, idx)

		listing, err := s.ApproveService(context.Background(), admin, pending.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PublishPublished, listing.PublishStatus)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		s := newTestAdminService(&mockServiceRepo{}, &mockVenueRepo{}, &mockIndexer{})
		_, err := s.ApproveService(context.Background(), admin, helpers.NewID())
		assert.Equal(t, http.StatusNotFound, appStatus(t, err).Status)
	})
}

func TestRejectService(t *testing.T) {
	published := publishedListing(helpers.NewID())
	services := &mockServiceRepo{
		GetByIDFunc: func(context.Context, string) (*entity.ServiceListing, error) { return published, nil },
	}
	idx := &mockIndexer{}
	s := newTestAdminService(services, &mockVenueRepo{}, idx)

	listing, err := s.RejectService(context.Background(), published.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PublishRejected, listing.PublishStatus)
	assert.Nil(t, listing.ApprovedBy)
	assert.Nil(t, listing.ApprovedAt)
	assert.Equal(t, []string{published.ID}, idx.removed)
}

func TestApproveVenue(t *testing.T) {
	admin := entity.Approver{Name: "Root", Email: "root@x.y"}
	venue := &entity.Venue{
		ID:      helpers.NewID(),
		OwnerID: helpers.NewID(),
		Information: entity.VenueInformation{
			VenueName: "Grand Hall",
			VenueType: "ballroom",
			City:      "Dubai",
		},
		Pricing:       entity.VenuePricing{BasePrice: 5000, Currency: "AED"},
		Capacity:      entity.VenueCapacity{MaximumGuests: 300},
		PublishStatus: entity.PublishPending,
	}

	venues := &mockVenueRepo{
		GetByIDFunc: func(context.Context, string) (*entity.Venue, error) { return venue, nil },
	}
	idx := &mockIndexer{}
	s := newTestAdminService(&mockServiceRepo{}, venues, idx)

	got, err := s.ApproveVenue(context.Background(), admin, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PublishPublished, got.PublishStatus)

	require.Len(t, idx.indexed, 1)
	doc := idx.indexed[0]
	assert.Equal(t, search.KindVenue, doc.Kind)
	assert.Equal(t, "Grand Hall", doc.Name)
	assert.Equal(t, "Dubai", doc.City)
}

func TestListPending(t *testing.T) {
	services := &mockServiceRepo{
		ListByStatusFunc: func(_ context.Context, status entity.PublishStatus, limit, offset int) ([]entity.ServiceListing, int64, error) {
			assert.Equal(t, entity.PublishPending, status)
			return []entity.ServiceListing{*publishedListing(helpers.NewID())}, 7, nil
		},
	}
	venues := &mockVenueRepo{
		ListByStatusFunc: func(_ context.Context, status entity.PublishStatus, limit, offset int) ([]entity.Venue, int64, error) {
			return nil, 0, nil
		},
	}
	s := newTestAdminService(services, venues, &mockIndexer{})

	queue, err := s.ListPending(context.Background(), helpers.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, queue.Services, 1)
	assert.Equal(t, int64(7), queue.ServicesTotal)
	assert.Empty(t, queue.Venues)
}
