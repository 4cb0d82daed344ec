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

type VenueRepository struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{pool: pool}
}

func (r *VenueRepository) Create(ctx context.Context, v *entity.Venue) error {
	info, pricing, capacity, media, overrides, approver, err := marshalVenueBlocks(v)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO venues
			(id, owner_id, information, pricing, capacity, media, availability_overrides, publish_status, approved_by, approved_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`, v.ID, v.OwnerID, info, pricing, capacity, media, overrides, v.PublishStatus, approver, v.ApprovedAt, v.IsDeleted)
	return row.Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *VenueRepository) GetByID(ctx context.Context, id string) (*entity.Venue, error) {
	return r.getOne(ctx, `WHERE id = $1 AND NOT is_deleted`, id)
}

func (r *VenueRepository) GetOwned(ctx context.Context, ownerID, id string) (*entity.Venue, error) {
	return r.getOne(ctx, `WHERE id = $1 AND owner_id = $2 AND NOT is_deleted`, id, ownerID)
}

func (r *VenueRepository) getOne(ctx context.Context, where string, args ...any) (*entity.Venue, error) {
	row := r.pool.QueryRow(ctx, venueSelect+where, args...)
	v, err := scanVenue(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *VenueRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]entity.Venue, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM venues WHERE owner_id = $1 AND NOT is_deleted
	`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, venueSelect+`
		WHERE owner_id = $1 AND NOT is_deleted
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]entity.Venue, 0, limit)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *v)
	}
	return out, total, rows.Err()
}

func (r *VenueRepository) ListByStatus(ctx context.Context, status entity.PublishStatus, limit, offset int) ([]entity.Venue, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM venues WHERE publish_status = $1 AND NOT is_deleted
	`, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, venueSelect+`
		WHERE publish_status = $1 AND NOT is_deleted
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]entity.Venue, 0, limit)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *v)
	}
	return out, total, rows.Err()
}

func (r *VenueRepository) Update(ctx context.Context, v *entity.Venue) error {
	info, pricing, capacity, media, overrides, approver, err := marshalVenueBlocks(v)
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE venues
		SET information = $2, pricing = $3, capacity = $4, media = $5, availability_overrides = $6,
			publish_status = $7, approved_by = $8, approved_at = $9, is_deleted = $10, updated_at = $11
		WHERE id = $1
	`, v.ID, info, pricing, capacity, media, overrides, v.PublishStatus, approver, v.ApprovedAt, v.IsDeleted, time.Now())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

const venueSelect = `
	SELECT id, owner_id, information, pricing, capacity, media, availability_overrides,
		publish_status, approved_by, approved_at, is_deleted, created_at, updated_at
	FROM venues `

func scanVenue(row pgx.Row) (*entity.Venue, error) {
	v := &entity.Venue{}
	var info, pricing, capacity, media, overrides, approver []byte

	if err := row.Scan(&v.ID, &v.OwnerID, &info, &pricing, &capacity, &media, &overrides,
		&v.PublishStatus, &approver, &v.ApprovedAt, &v.IsDeleted, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalBlocks(map[*[]byte]any{
		&info:      &v.Information,
		&pricing:   &v.Pricing,
		&capacity:  &v.Capacity,
		&media:     &v.Media,
		&overrides: &v.AvailabilityOverrides,
	}); err != nil {
		return nil, err
	}
	if len(approver) > 0 {
		v.ApprovedBy = &entity.Approver{}
		if err := json.Unmarshal(approver, v.ApprovedBy); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func marshalVenueBlocks(v *entity.Venue) (info, pricing, capacity, media, overrides, approver []byte, err error) {
	if info, err = json.Marshal(v.Information); err != nil {
		return
	}
	if pricing, err = json.Marshal(v.Pricing); err != nil {
		return
	}
	if capacity, err = json.Marshal(v.Capacity); err != nil {
		return
	}
	if media, err = json.Marshal(v.Media); err != nil {
		return
	}
	if overrides, err = json.Marshal(v.AvailabilityOverrides); err != nil {
		return
	}
	approver, err = marshalNullable(v.ApprovedBy)
	return
}

var _ repository.VenueRepository = (*VenueRepository)(nil)
