package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"parkbroker/internal/domain/booking"
	reqdto "parkbroker/internal/handler/dto/request"
	"parkbroker/internal/infra"
	"parkbroker/internal/pkg/clock"
	"parkbroker/internal/pkg/errs"
	"parkbroker/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound        = errs.New("booking not found")
	ErrNotBookingParticipant  = errs.New("actor is not a participant of this booking")
	ErrOwnSpotBooking         = errs.New("owners cannot book their own spot")
	ErrInvalidTimeSlot        = errs.New("invalid time slot")
	ErrSpotNotBookable        = errs.New("spot is not accepting bookings")
	ErrBookingValidation      = errs.New("booking validation failed")
	ErrSlotConflict           = errs.New("requested slot overlaps an existing booking")
	ErrInvalidBookingState    = errs.New("booking is not in a state that allows this transition")
	ErrBookingNotTerminal     = errs.New("only finished bookings can be deleted")
	ErrBookingOperationFailed = errs.New("booking operation failed")
)

type BookingCommands interface {
	Request(ctx context.Context, req reqdto.CreateBookingRequest, finderID uuid.UUID) (uuid.UUID, error)
	Approve(ctx context.Context, id uuid.UUID, req reqdto.DecideBookingRequest, actorID uuid.UUID) error
	Reject(ctx context.Context, id uuid.UUID, req reqdto.DecideBookingRequest, actorID uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	clock   clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, factory *booking.Factory, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{uow: uow, factory: factory, clock: clk}
}

// Request validates and inserts the booking inside the spot's critical
// section, so the overlap count and the insert see the same booking set.
func (u *bookingCommandsImpl) Request(ctx context.Context, req reqdto.CreateBookingRequest, finderID uuid.UUID) (uuid.UUID, error) {
	slot, err := booking.NewTimeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	var id uuid.UUID
	err = u.uow.WithSpotLock(ctx, req.SpotID, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().SpotByID(ctx, req.SpotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSpotNotFound
			}
			return err
		}
		if snap.OwnerID == finderID {
			return ErrOwnSpotBooking
		}

		entity, err := u.factory.CreateBooking(
			booking.SpotSpec{
				ID:              snap.ID,
				OwnerID:         snap.OwnerID,
				HourlyRateCents: snap.HourlyRateCents,
				WindowStart:     snap.AvailabilityStart,
				WindowEnd:       snap.AvailabilityEnd,
				Available:       snap.IsAvailable,
			},
			finderID,
			req.FinderName,
			req.FinderEmail,
			slot,
			req.GetMessage(),
		)
		if err != nil {
			if errors.Is(err, booking.ErrSpotUnavailable) {
				return errs.Mark(err, ErrSpotNotBookable)
			}
			return errs.Mark(err, ErrBookingValidation)
		}

		overlapping, err := tx.Bookings().CountBlockingOverlap(ctx, req.SpotID, slot.Start(), slot.End())
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrSlotConflict
		}

		created, err := tx.Bookings().Create(ctx, entity)
		if err != nil {
			// Exclusion constraint backstop for anything the lock missed.
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrSlotConflict)
			}
			return err
		}
		id = created

		return u.enqueueNotification(ctx, tx, created, snap.ID, "booking_requested")
	})
	if err != nil {
		return uuid.Nil, u.mapBookingErr(err)
	}
	return id, nil
}

func (u *bookingCommandsImpl) Approve(ctx context.Context, id uuid.UUID, req reqdto.DecideBookingRequest, actorID uuid.UUID) error {
	return u.decide(ctx, id, actorID, "booking_approved", func(b *booking.Booking, now time.Time) error {
		return b.Approve(req.GetResponse(), now)
	})
}

func (u *bookingCommandsImpl) Reject(ctx context.Context, id uuid.UUID, req reqdto.DecideBookingRequest, actorID uuid.UUID) error {
	return u.decide(ctx, id, actorID, "booking_rejected", func(b *booking.Booking, now time.Time) error {
		return b.Reject(req.GetResponse(), now)
	})
}

// decide locks the booking's spot before applying an owner decision: an
// approval must not race a concurrent request on the same interval.
func (u *bookingCommandsImpl) decide(
	ctx context.Context,
	id uuid.UUID,
	actorID uuid.UUID,
	topic string,
	transition func(b *booking.Booking, now time.Time) error,
) error {
	snap, err := u.uow.Reads().BookingByID(ctx, id)
	if err != nil {
		return u.mapBookingReadErr(err)
	}
	if snap.SpotOwnerID != actorID {
		return ErrNotBookingParticipant
	}

	now := u.clock.Now()
	err = u.uow.WithSpotLock(ctx, snap.SpotID, func(ctx context.Context, tx shared.Tx) error {
		fresh, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			return u.mapBookingReadErr(err)
		}

		entity, err := bookingFromSnapshot(fresh)
		if err != nil {
			return err
		}
		if err := transition(entity, now); err != nil {
			return errs.Mark(err, ErrInvalidBookingState)
		}
		// Idempotent replay: the stored row already matches.
		if entity.Status().String() == fresh.Status {
			return nil
		}

		if err := tx.Bookings().UpdateDecision(ctx, entity); err != nil {
			return err
		}
		return u.enqueueNotification(ctx, tx, id, fresh.SpotID, topic)
	})
	return u.mapBookingErr(err)
}

func (u *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	snap, err := u.uow.Reads().BookingByID(ctx, id)
	if err != nil {
		return u.mapBookingReadErr(err)
	}

	var actor booking.Actor
	switch actorID {
	case snap.FinderID:
		actor = booking.ActorFinder
	case snap.SpotOwnerID:
		actor = booking.ActorOwner
	default:
		return ErrNotBookingParticipant
	}

	now := u.clock.Now()
	err = u.uow.WithSpotLock(ctx, snap.SpotID, func(ctx context.Context, tx shared.Tx) error {
		fresh, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			return u.mapBookingReadErr(err)
		}

		entity, err := bookingFromSnapshot(fresh)
		if err != nil {
			return err
		}
		if err := entity.Cancel(actor, now); err != nil {
			return errs.Mark(err, ErrInvalidBookingState)
		}

		if err := tx.Bookings().UpdateDecision(ctx, entity); err != nil {
			return err
		}
		return u.enqueueNotification(ctx, tx, id, fresh.SpotID, "booking_cancelled")
	})
	return u.mapBookingErr(err)
}

// Delete removes a finished booking from the finder's history. Blocking
// bookings must be cancelled first.
func (u *bookingCommandsImpl) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	now := u.clock.Now()
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			return u.mapBookingReadErr(err)
		}
		if snap.FinderID != actorID {
			return ErrNotBookingParticipant
		}

		entity, err := bookingFromSnapshot(snap)
		if err != nil {
			return err
		}
		if !entity.StatusAt(now).IsTerminal() {
			return ErrBookingNotTerminal
		}

		return tx.Bookings().Delete(ctx, id)
	})
	return u.mapBookingErr(err)
}

func (u *bookingCommandsImpl) enqueueNotification(ctx context.Context, tx shared.Tx, bookingID, spotID uuid.UUID, topic string) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"spot_id":    spotID,
		"type":       topic,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "email", topic, payload, u.clock.Now())
}

func bookingFromSnapshot(s *shared.BookingSnapshot) (*booking.Booking, error) {
	slot, err := booking.NewTimeSlot(s.StartTime, s.EndTime)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		s.ID, s.SpotID, s.FinderID,
		s.FinderName, s.FinderEmail,
		slot,
		booking.NewMoney(s.AmountCents),
		booking.Status(s.Status),
		s.Message, s.OwnerResponse,
		s.CreatedAt, s.RespondedAt, s.UpdatedAt,
	), nil
}

func (u *bookingCommandsImpl) mapBookingReadErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return ErrBookingNotFound
	}
	return err
}

func (u *bookingCommandsImpl) mapBookingErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrNotBookingParticipant),
		errors.Is(err, ErrOwnSpotBooking),
		errors.Is(err, ErrSpotNotFound),
		errors.Is(err, ErrInvalidTimeSlot),
		errors.Is(err, ErrSpotNotBookable),
		errors.Is(err, ErrBookingValidation),
		errors.Is(err, ErrSlotConflict),
		errors.Is(err, ErrInvalidBookingState),
		errors.Is(err, ErrBookingNotTerminal):
		return err
	case errors.Is(err, shared.ErrSpotContended):
		return errs.Mark(err, ErrSlotConflict)
	default:
		return errs.Mark(err, ErrBookingOperationFailed)
	}
}
