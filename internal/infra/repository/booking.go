package repository

import (
	"context"
	"time"

	"parkbroker/internal/domain/booking"
	"parkbroker/internal/infra"
	"parkbroker/internal/infra/db"
	"parkbroker/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

// Create copies the spot's owner and address onto the booking row, so the
// row stays readable after the spot itself is deleted. It runs inside the
// per-spot critical section, where the spot's existence is already checked.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	const q = `
		INSERT INTO bookings (
			id, spot_id, spot_owner_id, spot_address,
			finder_id, finder_name, finder_email,
			start_time, end_time, amount_cents, status, message
		)
		SELECT $1, s.id, s.owner_id, s.address, $3, $4, $5, $6, $7, $8, $9, $10
		FROM spots s
		WHERE s.id = $2
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, q,
		b.ID(),
		b.SpotID(),
		b.FinderID(),
		b.FinderName(),
		b.FinderEmail(),
		b.Slot().Start(),
		b.Slot().End(),
		b.Amount().Cents(),
		b.Status().String(),
		pgconv.StringPtrToPgtype(b.Message()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return id, nil
}

// CountBlockingOverlap uses half-open interval semantics: [start, end)
// overlaps a row when start_time < end AND end_time > start.
func (r *BookingRepository) CountBlockingOverlap(ctx context.Context, spotID uuid.UUID, start, end time.Time) (int64, error) {
	const q = `
		SELECT count(*)
		FROM bookings
		WHERE spot_id = $1
		  AND status IN ('pending', 'approved')
		  AND start_time < $3
		  AND end_time > $2`

	var n int64
	if err := r.db.QueryRow(ctx, q, spotID, start, end).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}
	return n, nil
}

func (r *BookingRepository) CountBlockingOutsideWindow(ctx context.Context, spotID uuid.UUID, windowStart, windowEnd time.Time) (int64, error) {
	const q = `
		SELECT count(*)
		FROM bookings
		WHERE spot_id = $1
		  AND status IN ('pending', 'approved')
		  AND (start_time < $2 OR end_time > $3)`

	var n int64
	if err := r.db.QueryRow(ctx, q, spotID, windowStart, windowEnd).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count bookings outside window", err)
	}
	return n, nil
}

func (r *BookingRepository) UpdateDecision(ctx context.Context, b *booking.Booking) error {
	const q = `
		UPDATE bookings SET
			status = $2,
			owner_response = $3,
			responded_at = $4,
			updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, q,
		b.ID(),
		b.Status().String(),
		pgconv.StringPtrToPgtype(b.OwnerResponse()),
		pgconv.TimePtrToPgtype(b.RespondedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking decision", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *BookingRepository) CancelBlockingBySpot(ctx context.Context, spotID uuid.UUID, now time.Time) ([]uuid.UUID, error) {
	const q = `
		UPDATE bookings SET
			status = 'cancelled',
			responded_at = COALESCE(responded_at, $2),
			updated_at = now()
		WHERE spot_id = $1
		  AND status IN ('pending', 'approved')
		RETURNING id`

	rows, err := r.db.Query(ctx, q, spotID, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to cancel bookings for spot", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to collect cancelled booking ids", err)
	}
	return ids, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM bookings WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}
