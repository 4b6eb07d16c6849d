package readstore

import (
	"context"
	"strconv"

	"parkbroker/internal/domain/geo"
	"parkbroker/internal/infra"
	"parkbroker/internal/infra/db"
	"parkbroker/internal/pkg/pgconv"
	"parkbroker/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const spotColumns = `
	id, owner_id, address, description, image_url,
	latitude, longitude, hourly_rate_cents,
	availability_start, availability_end,
	is_available, max_vehicle_size,
	created_at, updated_at`

type SpotReadStore struct {
	db db.DBTX
}

func NewSpotReadStore(dbtx db.DBTX) *SpotReadStore {
	return &SpotReadStore{db: dbtx}
}

func (r *SpotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SpotView, error) {
	q := `SELECT ` + spotColumns + ` FROM spots WHERE id = $1`

	row := r.db.QueryRow(ctx, q, id)
	view, err := scanSpotView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("spot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find spot by ID", err)
	}
	return view, nil
}

// FindAvailable lists bookable spots, newest first. Price and slot filters
// run in SQL; vehicle-size fit is ordinal and stays in the query layer.
func (r *SpotReadStore) FindAvailable(ctx context.Context, f queries.SpotSearchFilters) ([]*queries.SpotView, error) {
	q := `SELECT ` + spotColumns + ` FROM spots WHERE is_available = TRUE`
	args := []any{}

	if f.MaxPriceCents != nil {
		args = append(args, *f.MaxPriceCents)
		q += ` AND hourly_rate_cents <= $` + argn(len(args))
	}
	if len(f.SizeIn) > 0 {
		args = append(args, f.SizeIn)
		q += ` AND max_vehicle_size = ANY($` + argn(len(args)) + `)`
	}
	if f.SlotStart != nil && f.SlotEnd != nil {
		args = append(args, *f.SlotStart, *f.SlotEnd)
		startArg := argn(len(args) - 1)
		endArg := argn(len(args))
		q += ` AND availability_start <= $` + startArg +
			` AND availability_end >= $` + endArg +
			` AND NOT EXISTS (
				SELECT 1 FROM bookings b
				WHERE b.spot_id = spots.id
				  AND b.status IN ('pending', 'approved')
				  AND b.start_time < $` + endArg + `
				  AND b.end_time > $` + startArg + `
			)`
	}

	args = append(args, f.Limit)
	q += ` ORDER BY created_at DESC, id DESC LIMIT $` + argn(len(args))
	args = append(args, f.Offset)
	q += ` OFFSET $` + argn(len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search spots", err)
	}
	return collectSpotViews(rows)
}

// FindAvailableWithin returns bookable spots inside the bounding box. The
// caller computes exact distances and final ordering.
func (r *SpotReadStore) FindAvailableWithin(ctx context.Context, b geo.Bounds) ([]*queries.SpotView, error) {
	q := `SELECT ` + spotColumns + ` FROM spots
		WHERE is_available = TRUE
		  AND latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4`

	rows, err := r.db.Query(ctx, q, b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find spots within bounds", err)
	}
	return collectSpotViews(rows)
}

func (r *SpotReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.SpotView, error) {
	q := `SELECT ` + spotColumns + ` FROM spots WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find spots by owner", err)
	}
	return collectSpotViews(rows)
}

func collectSpotViews(rows pgx.Rows) ([]*queries.SpotView, error) {
	defer rows.Close()

	var result []*queries.SpotView
	for rows.Next() {
		view, err := scanSpotView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan spot row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate spot rows", err)
	}
	return result, nil
}

func scanSpotView(row pgx.Row) (*queries.SpotView, error) {
	var (
		v         queries.SpotView
		imageURL  pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Address, &v.Description, &imageURL,
		&v.Latitude, &v.Longitude, &v.HourlyRateCents,
		&v.AvailabilityStart, &v.AvailabilityEnd,
		&v.IsAvailable, &v.MaxVehicleSize,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.ImageURL = pgconv.StringPtrFromPgtype(imageURL)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

func argn(n int) string {
	return strconv.Itoa(n)
}
