package queries

import (
	"context"

	"parkbroker/internal/domain/booking"
	"parkbroker/internal/infra"
	"parkbroker/internal/pkg/clock"
	"parkbroker/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound     = errs.New("booking not found")
	ErrBookingAccessDenied = errs.New("booking can only be viewed by its participants")
	ErrBookingQueryFailed  = errs.New("booking query failed")
)

type BookingQueries interface {
	// GetByID is participant-only: the finder and the spot owner see the
	// booking, everyone else gets not-found semantics hidden behind 403.
	GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*BookingView, error)
	ListByFinder(ctx context.Context, finderID uuid.UUID) ([]*BookingView, error)
	ListPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByFinder(ctx context.Context, finderID uuid.UUID) ([]*BookingView, error)
	FindPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	repo  BookingViewRepo
	clock clock.Clock
}

func NewBookingQueries(repo BookingViewRepo, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{repo: repo, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrBookingQueryFailed)
	}
	if view.FinderID != actorID && view.SpotOwnerID != actorID {
		return nil, ErrBookingAccessDenied
	}
	return q.derive(view), nil
}

func (q *bookingQueriesImpl) ListByFinder(ctx context.Context, finderID uuid.UUID) ([]*BookingView, error) {
	views, err := q.repo.FindByFinder(ctx, finderID)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQueryFailed)
	}
	return q.deriveAll(views), nil
}

func (q *bookingQueriesImpl) ListPendingByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingView, error) {
	views, err := q.repo.FindPendingByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQueryFailed)
	}
	return q.deriveAll(views), nil
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingView, error) {
	views, err := q.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQueryFailed)
	}
	return q.deriveAll(views), nil
}

// derive replaces the stored status with the clock-derived one, so an
// approved booking reads confirmed once its interval starts and completed
// once it ends.
func (q *bookingQueriesImpl) derive(v *BookingView) *BookingView {
	slot, err := booking.NewTimeSlot(v.StartTime, v.EndTime)
	if err != nil {
		return v
	}
	v.Status = booking.DeriveStatus(booking.Status(v.Status), slot, q.clock.Now()).String()
	return v
}

func (q *bookingQueriesImpl) deriveAll(views []*BookingView) []*BookingView {
	for _, v := range views {
		q.derive(v)
	}
	return views
}
