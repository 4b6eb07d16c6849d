package readstore

import (
	"context"

	"parkbroker/internal/infra"
	"parkbroker/internal/infra/db"
	"parkbroker/internal/pkg/pgconv"
	"parkbroker/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Spot owner and address are denormalized onto the row, so no join with
// spots: booking reads keep working after the spot is deleted.
const bookingSelect = `
	SELECT
		id, spot_id, spot_address, spot_owner_id,
		finder_id, finder_name, finder_email,
		start_time, end_time, amount_cents, status,
		message, owner_response,
		created_at, responded_at, updated_at
	FROM bookings`

// BookingReadStore returns stored statuses; the query layer derives the
// clock-dependent confirmed/completed view.
type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	q := bookingSelect + ` WHERE id = $1`

	row := r.db.QueryRow(ctx, q, id)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByFinder(ctx context.Context, finderID uuid.UUID) ([]*queries.BookingView, error) {
	q := bookingSelect + ` WHERE finder_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, finderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by finder", err)
	}
	return collectBookingViews(rows)
}

// FindPendingByOwner lists undecided requests across all of an owner's
// spots, oldest first so the queue reads in arrival order.
func (r *BookingReadStore) FindPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.BookingView, error) {
	q := bookingSelect + ` WHERE spot_owner_id = $1 AND status = 'pending' ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find pending bookings by owner", err)
	}
	return collectBookingViews(rows)
}

func (r *BookingReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.BookingView, error) {
	q := bookingSelect + ` WHERE spot_owner_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by owner", err)
	}
	return collectBookingViews(rows)
}

func collectBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	defer rows.Close()

	var result []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v             queries.BookingView
		message       pgtype.Text
		ownerResponse pgtype.Text
		createdAt     pgtype.Timestamptz
		respondedAt   pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.SpotID, &v.SpotAddress, &v.SpotOwnerID,
		&v.FinderID, &v.FinderName, &v.FinderEmail,
		&v.StartTime, &v.EndTime, &v.AmountCents, &v.Status,
		&message, &ownerResponse,
		&createdAt, &respondedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Message = pgconv.StringPtrFromPgtype(message)
	v.OwnerResponse = pgconv.StringPtrFromPgtype(ownerResponse)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.RespondedAt = pgconv.TimePtrFromPgtype(respondedAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
