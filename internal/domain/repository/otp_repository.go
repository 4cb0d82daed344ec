package repository

import (
	"context"
	"time"

	"github.com/eventora/marketplace-api/internal/domain/entity"
)

// OTPRepository stores one-time code records. "Active" always means
// unconsumed and unexpired relative to the instant the caller supplies,
// so expiry never needs a background sweep.
type OTPRepository interface {
	// FindActive returns the newest active record for (user, purpose),
	// or ErrNotFound.
	FindActive(ctx context.Context, userID string, purpose entity.OTPPurpose, now time.Time) (*entity.OTPRecord, error)
	// ConsumeActive marks every active record for (user, purpose) consumed.
	// Issuing a fresh code supersedes any outstanding one.
	ConsumeActive(ctx context.Context, userID string, purpose entity.OTPPurpose, now time.Time) error
	Create(ctx context.Context, rec *entity.OTPRecord) error
	// Consume marks a single record consumed after successful verification.
	Consume(ctx context.Context, id string, now time.Time) error
}
