package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/domain/repository"
)

// ServiceListingRepository stores listings with the structured blocks as
// JSONB columns so block-level updates stay a single-row write.
type ServiceListingRepository struct {
	pool *pgxpool.Pool
}

func NewServiceListingRepository(pool *pgxpool.Pool) *ServiceListingRepository {
	return &ServiceListingRepository{pool: pool}
}

func (r *ServiceListingRepository) Create(ctx context.Context, s *entity.ServiceListing) error {
	info, pricing, settings, media, overrides, approver, err := marshalServiceBlocks(s)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO provider_services
			(id, owner_id, information, pricing, settings, media, availability_overrides, publish_status, approved_by, approved_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`, s.ID, s.OwnerID, info, pricing, settings, media, overrides, s.PublishStatus, approver, s.ApprovedAt, s.IsDeleted)
	return row.Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *ServiceListingRepository) GetByID(ctx context.Context, id string) (*entity.ServiceListing, error) {
	return r.getOne(ctx, `WHERE id = $1 AND NOT is_deleted`, id)
}

func (r *ServiceListingRepository) GetOwned(ctx context.Context, ownerID, id string) (*entity.ServiceListing, error) {
	return r.getOne(ctx, `WHERE id = $1 AND owner_id = $2 AND NOT is_deleted`, id, ownerID)
}

func (r *ServiceListingRepository) getOne(ctx context.Context, where string, args ...any) (*entity.ServiceListing, error) {
	row := r.pool.QueryRow(ctx, serviceSelect+where, args...)
	s, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *ServiceListingRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]entity.ServiceListing, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM provider_services WHERE owner_id = $1 AND NOT is_deleted
	`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, serviceSelect+`
		WHERE owner_id = $1 AND NOT is_deleted
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]entity.ServiceListing, 0, limit)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *s)
	}
	return out, total, rows.Err()
}

func (r *ServiceListingRepository) ListByStatus(ctx context.Context, status entity.PublishStatus, limit, offset int) ([]entity.ServiceListing, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM provider_services WHERE publish_status = $1 AND NOT is_deleted
	`, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, serviceSelect+`
		WHERE publish_status = $1 AND NOT is_deleted
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]entity.ServiceListing, 0, limit)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *s)
	}
	return out, total, rows.Err()
}

func (r *ServiceListingRepository) Update(ctx context.Context, s *entity.ServiceListing) error {
	info, pricing, settings, media, overrides, approver, err := marshalServiceBlocks(s)
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE provider_services
		SET information = $2, pricing = $3, settings = $4, media = $5, availability_overrides = $6,
			publish_status = $7, approved_by = $8, approved_at = $9, is_deleted = $10, updated_at = $11
		WHERE id = $1
	`, s.ID, info, pricing, settings, media, overrides, s.PublishStatus, approver, s.ApprovedAt, s.IsDeleted, time.Now())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

const serviceSelect = `
	SELECT id, owner_id, information, pricing, settings, media, availability_overrides,
		publish_status, approved_by, approved_at, is_deleted, created_at, updated_at
	FROM provider_services `

func scanService(row pgx.Row) (*entity.ServiceListing, error) {
	s := &entity.ServiceListing{}
	var info, pricing, settings, media, overrides, approver []byte

	if err := row.Scan(&s.ID, &s.OwnerID, &info, &pricing, &settings, &media, &overrides,
		&s.PublishStatus, &approver, &s.ApprovedAt, &s.IsDeleted, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalBlocks(map[*[]byte]any{
		&info:      &s.Information,
		&pricing:   &s.Pricing,
		&settings:  &s.Settings,
		&media:     &s.Media,
		&overrides: &s.AvailabilityOverrides,
	}); err != nil {
		return nil, err
	}
	if len(approver) > 0 {
		s.ApprovedBy = &entity.Approver{}
		if err := json.Unmarshal(approver, s.ApprovedBy); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func marshalServiceBlocks(s *entity.ServiceListing) (info, pricing, settings, media, overrides, approver []byte, err error) {
	if info, err = json.Marshal(s.Information); err != nil {
		return
	}
	if pricing, err = json.Marshal(s.Pricing); err != nil {
		return
	}
	if settings, err = json.Marshal(s.Settings); err != nil {
		return
	}
	if media, err = json.Marshal(s.Media); err != nil {
		return
	}
	if overrides, err = json.Marshal(s.AvailabilityOverrides); err != nil {
		return
	}
	approver, err = marshalNullable(s.ApprovedBy)
	return
}

func unmarshalBlocks(blocks map[*[]byte]any) error {
	for raw, dst := range blocks {
		if len(*raw) == 0 {
			continue
		}
		if err := json.Unmarshal(*raw, dst); err != nil {
			return err
		}
	}
	return nil
}

var _ repository.ServiceListingRepository = (*ServiceListingRepository)(nil)
