package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	onboarding, err := marshalNullable(u.Onboarding)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, full_name, email, password_hash, role, service_categories, is_email_verified, onboarding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, u.ID, u.FullName, u.Email, u.Password, u.Role, u.ServiceCategories, u.IsEmailVerified, onboarding)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	var onboarding []byte

	row := r.pool.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, role, service_categories, is_email_verified, onboarding, created_at, updated_at
		FROM users `+where, arg)

	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Password, &u.Role,
		&u.ServiceCategories, &u.IsEmailVerified, &onboarding, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if len(onboarding) > 0 {
		u.Onboarding = &entity.ProviderOnboarding{}
		if err := json.Unmarshal(onboarding, u.Onboarding); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (r *UserRepository) SetEmailVerified(ctx context.Context, id string) error {
	return r.exec(ctx, `
		UPDATE users SET is_email_verified = TRUE, updated_at = $2 WHERE id = $1
	`, id, time.Now())
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1
	`, id, passwordHash, time.Now())
}

func (r *UserRepository) UpdateOnboarding(ctx context.Context, id string, onboarding *entity.ProviderOnboarding) error {
	b, err := marshalNullable(onboarding)
	if err != nil {
		return err
	}
	return r.exec(ctx, `
		UPDATE users SET onboarding = $2, updated_at = $3 WHERE id = $1
	`, id, b, time.Now())
}

func (r *UserRepository) exec(ctx context.Context, sql string, args ...any) error {
	res, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// marshalNullable keeps NULL in the column when the value is nil instead
// of storing the JSON literal "null".
func marshalNullable(v any) ([]byte, error) {
	switch x := v.(type) {
	case *entity.ProviderOnboarding:
		if x == nil {
			return nil, nil
		}
	case *entity.Approver:
		if x == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

var _ repository.UserRepository = (*UserRepository)(nil)
