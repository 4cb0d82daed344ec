package repository

import (
	"context"

	"github.com/eventora/marketplace-api/internal/domain/entity"
)

// UserRepository defines the persistence operations for user accounts.
// Callers pass emails already lowercased.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	SetEmailVerified(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateOnboarding(ctx context.Context, id string, onboarding *entity.ProviderOnboarding) error
}
