package application

import (
	"context"
	"time"

	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/domain/repository"
	"github.com/eventora/marketplace-api/internal/infrastructure/search"
)

// func-field mocks so each test overrides only the calls it cares about

type mockUserRepo struct {
	CreateFunc           func(ctx context.Context, u *entity.User) error
	GetByIDFunc          func(ctx context.Context, id string) (*entity.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*entity.User, error)
	SetEmailVerifiedFunc func(ctx context.Context, id string) error
	UpdatePasswordFunc   func(ctx context.Context, id, passwordHash string) error
	UpdateOnboardingFunc func(ctx context.Context, id string, o *entity.ProviderOnboarding) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) SetEmailVerified(ctx context.Context, id string) error {
	if m.SetEmailVerifiedFunc != nil {
		return m.SetEmailVerifiedFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *mockUserRepo) UpdateOnboarding(ctx context.Context, id string, o *entity.ProviderOnboarding) error {
	if m.UpdateOnboardingFunc != nil {
		return m.UpdateOnboardingFunc(ctx, id, o)
	}
	return nil
}

type mockOTPRepo struct {
	FindActiveFunc    func(ctx context.Context, userID string, purpose entity.OTPPurpose, now time.Time) (*entity.OTPRecord, error)
	ConsumeActiveFunc func(ctx context.Context, userID string, purpose entity.OTPPurpose, now time.Time) error
	CreateFunc        func(ctx context.Context, rec *entity.OTPRecord) error
	ConsumeFunc       func(ctx context.Context, id string, now time.Time) error
}

func (m *mockOTPRepo) FindActive(ctx context.Context, userID string, purpose entity.OTPPurpose, now time.Time) (*entity.OTPRecord, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx, userID, purpose, now)
	}
	return nil, repository.ErrNotFound
}

func (m *mockOTPRepo) ConsumeActive(ctx context.Context, userID string, purpose entity.OTPPurpose, now time.Time) error {
	if m.ConsumeActiveFunc != nil {
		return m.ConsumeActiveFunc(ctx, userID, purpose, now)
	}
	return nil
}

func (m *mockOTPRepo) Create(ctx context.Context, rec *entity.OTPRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	return nil
}

func (m *mockOTPRepo) Consume(ctx context.Context, id string, now time.Time) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, id, now)
	}
	return nil
}

type mockEnqueuer struct {
	PublishJSONFunc func(ctx context.Context, v any) error
	jobs            []any
}

func (m *mockEnqueuer) PublishJSON(ctx context.Context, v any) error {
	if m.PublishJSONFunc != nil {
		return m.PublishJSONFunc(ctx, v)
	}
	m.jobs = append(m.jobs, v)
	return nil
}

type mockServiceRepo struct {
	CreateFunc       func(ctx context.Context, s *entity.ServiceListing) error
	GetByIDFunc      func(ctx context.Context, id string) (*entity.ServiceListing, error)
	GetOwnedFunc     func(ctx context.Context, ownerID, id string) (*entity.ServiceListing, error)
	ListByOwnerFunc  func(ctx context.Context, ownerID string, limit, offset int) ([]entity.ServiceListing, int64, error)
	ListByStatusFunc func(ctx context.Context, status entity.PublishStatus, limit, offset int) ([]entity.ServiceListing, int64, error)
	UpdateFunc       func(ctx context.Context, s *entity.ServiceListing) error
}

func (m *mockServiceRepo) Create(ctx context.Context, s *entity.ServiceListing) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id string) (*entity.ServiceListing, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockServiceRepo) GetOwned(ctx context.Context, ownerID, id string) (*entity.ServiceListing, error) {
	if m.GetOwnedFunc != nil {
		return m.GetOwnedFunc(ctx, ownerID, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockServiceRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]entity.ServiceListing, int64, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockServiceRepo) ListByStatus(ctx context.Context, status entity.PublishStatus, limit, offset int) ([]entity.ServiceListing, int64, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockServiceRepo) Update(ctx context.Context, s *entity.ServiceListing) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

type mockVenueRepo struct {
	CreateFunc       func(ctx context.Context, v *entity.Venue) error
	GetByIDFunc      func(ctx context.Context, id string) (*entity.Venue, error)
	GetOwnedFunc     func(ctx context.Context, ownerID, id string) (*entity.Venue, error)
	ListByOwnerFunc  func(ctx context.Context, ownerID string, limit, offset int) ([]entity.Venue, int64, error)
	ListByStatusFunc func(ctx context.Context, status entity.PublishStatus, limit, offset int) ([]entity.Venue, int64, error)
	UpdateFunc       func(ctx context.Context, v *entity.Venue) error
}

func (m *mockVenueRepo) Create(ctx context.Context, v *entity.Venue) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return nil
}

func (m *mockVenueRepo) GetByID(ctx context.Context, id string) (*entity.Venue, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockVenueRepo) GetOwned(ctx context.Context, ownerID, id string) (*entity.Venue, error) {
	if m.GetOwnedFunc != nil {
		return m.GetOwnedFunc(ctx, ownerID, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockVenueRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]entity.Venue, int64, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockVenueRepo) ListByStatus(ctx context.Context, status entity.PublishStatus, limit, offset int) ([]entity.Venue, int64, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockVenueRepo) Update(ctx context.Context, v *entity.Venue) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, v)
	}
	return nil
}

type mockIndexer struct {
	IndexFunc  func(ctx context.Context, doc search.ListingDoc) error
	RemoveFunc func(ctx context.Context, id string) error
	indexed    []search.ListingDoc
	removed    []string
}

func (m *mockIndexer) Index(ctx context.Context, doc search.ListingDoc) error {
	if m.IndexFunc != nil {
		return m.IndexFunc(ctx, doc)
	}
	m.indexed = append(m.indexed, doc)
	return nil
}

func (m *mockIndexer) Remove(ctx context.Context, id string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id)
	}
	m.removed = append(m.removed, id)
	return nil
}
