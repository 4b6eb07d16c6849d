package repository

import (
	"context"

	"parkbroker/internal/domain/spot"
	"parkbroker/internal/infra"
	"parkbroker/internal/infra/db"
	"parkbroker/internal/pkg/pgconv"
	"parkbroker/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpotRepository struct {
	db db.DBTX
}

func NewSpotRepository(dbtx db.DBTX) *SpotRepository {
	return &SpotRepository{db: dbtx}
}

func (r *SpotRepository) Create(ctx context.Context, s *spot.Spot) (uuid.UUID, error) {
	const q = `
		INSERT INTO spots (
			id, owner_id, address, description, image_url,
			latitude, longitude, hourly_rate_cents,
			availability_start, availability_end,
			is_available, max_vehicle_size
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, q,
		s.ID(),
		s.OwnerID(),
		s.Address(),
		s.Description(),
		pgconv.StringPtrToPgtype(s.ImageURL()),
		s.Location().Latitude(),
		s.Location().Longitude(),
		s.HourlyRateCents(),
		s.Window().Start(),
		s.Window().End(),
		s.Available(),
		s.MaxVehicleSize().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create spot", err)
	}

	return id, nil
}

func (r *SpotRepository) Update(ctx context.Context, id uuid.UUID, params shared.SpotUpdateParams) error {
	const q = `
		UPDATE spots SET
			address = $2,
			description = $3,
			image_url = $4,
			latitude = $5,
			longitude = $6,
			hourly_rate_cents = $7,
			availability_start = $8,
			availability_end = $9,
			is_available = $10,
			max_vehicle_size = $11,
			updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, q,
		id,
		params.Address,
		params.Description,
		pgconv.StringPtrToPgtype(params.ImageURL),
		params.Latitude,
		params.Longitude,
		params.HourlyRateCents,
		params.WindowStart,
		params.WindowEnd,
		params.Available,
		params.MaxVehicleSize,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update spot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("spot not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *SpotRepository) SetAvailable(ctx context.Context, id uuid.UUID, available bool) error {
	const q = `UPDATE spots SET is_available = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, id, available)
	if err != nil {
		return infra.WrapRepoErr("failed to toggle spot availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("spot not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *SpotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM spots WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete spot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("spot not found", nil, infra.KindNotFound)
	}

	return nil
}
