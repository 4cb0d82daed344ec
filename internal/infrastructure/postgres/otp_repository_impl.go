package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/domain/repository"
)

type OTPRepository struct {
	pool *pgxpool.Pool
}

func NewOTPRepository(pool *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{pool: pool}
}

func (r *OTPRepository) FindActive(ctx context.Context, userID string, purpose entity.OTPPurpose, now time.Time) (*entity.OTPRecord, error) {
	rec := &entity.OTPRecord{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, email, purpose, code_hash, expires_at, resend_available_at, consumed_at, created_at
		FROM auth_otps
		WHERE user_id = $1 AND purpose = $2 AND consumed_at IS NULL AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, purpose, now)

	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Email, &rec.Purpose, &rec.CodeHash,
		&rec.ExpiresAt, &rec.ResendAvailableAt, &rec.ConsumedAt, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *OTPRepository) ConsumeActive(ctx context.Context, userID string, purpose entity.OTPPurpose, now time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE auth_otps SET consumed_at = $3
		WHERE user_id = $1 AND purpose = $2 AND consumed_at IS NULL AND expires_at > $3
	`, userID, purpose, now)
	return err
}

func (r *OTPRepository) Create(ctx context.Context, rec *entity.OTPRecord) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO auth_otps (id, user_id, email, purpose, code_hash, expires_at, resend_available_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.Email, rec.Purpose, rec.CodeHash, rec.ExpiresAt, rec.ResendAvailableAt)
	return row.Scan(&rec.CreatedAt)
}

func (r *OTPRepository) Consume(ctx context.Context, id string, now time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE auth_otps SET consumed_at = $2 WHERE id = $1 AND consumed_at IS NULL
	`, id, now)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.OTPRepository = (*OTPRepository)(nil)
