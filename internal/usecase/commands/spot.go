package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"parkbroker/internal/domain/spot"
	reqdto "parkbroker/internal/handler/dto/request"
	"parkbroker/internal/infra"
	"parkbroker/internal/pkg/clock"
	"parkbroker/internal/pkg/errs"
	"parkbroker/internal/pkg/patch"
	"parkbroker/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSpotNotFound        = errs.New("spot not found")
	ErrNotSpotOwner        = errs.New("actor does not own this spot")
	ErrSpotValidation      = errs.New("spot validation failed")
	ErrWindowHasBookings   = errs.New("active bookings fall outside the new availability window")
	ErrSpotBusy            = errs.New("spot is locked by a concurrent operation")
	ErrSpotOperationFailed = errs.New("spot operation failed")
)

type SpotCommands interface {
	Create(ctx context.Context, req reqdto.CreateSpotRequest, ownerID uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateSpotRequest, actorID uuid.UUID) error
	SetAvailability(ctx context.Context, id uuid.UUID, available bool, actorID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

type spotCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSpotCommands(uow shared.UnitOfWork, clk clock.Clock) SpotCommands {
	return &spotCommandsImpl{uow: uow, clock: clk}
}

func (u *spotCommandsImpl) Create(ctx context.Context, req reqdto.CreateSpotRequest, ownerID uuid.UUID) (uuid.UUID, error) {
	entity, err := buildSpot(ownerID, spotFields{
		Address:           req.Address,
		Description:       req.Description,
		ImageURL:          reqdto.TrimmedPtr(req.ImageURL),
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		HourlyRateCents:   req.HourlyRateCents,
		AvailabilityStart: req.AvailabilityStart,
		AvailabilityEnd:   req.AvailabilityEnd,
		MaxVehicleSize:    req.MaxVehicleSize,
		Available:         req.Available(),
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrSpotValidation)
	}

	var id uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, err := tx.Spots().Create(ctx, entity)
		if err != nil {
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrSpotOperationFailed)
	}
	return id, nil
}

// Update runs under the spot lock: narrowing the availability window must
// not strand bookings that were accepted against the old one.
func (u *spotCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateSpotRequest, actorID uuid.UUID) error {
	err := u.uow.WithSpotLock(ctx, id, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().SpotByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSpotNotFound
			}
			return err
		}
		if snap.OwnerID != actorID {
			return ErrNotSpotOwner
		}

		merged := spotFields{
			Address:           patch.Coalesce(req.Address, snap.Address),
			Description:       patch.Coalesce(req.Description, snap.Description),
			ImageURL:          snap.ImageURL,
			Latitude:          patch.Coalesce(req.Latitude, snap.Latitude),
			Longitude:         patch.Coalesce(req.Longitude, snap.Longitude),
			HourlyRateCents:   patch.Coalesce(req.HourlyRateCents, snap.HourlyRateCents),
			AvailabilityStart: patch.Coalesce(req.AvailabilityStart, snap.AvailabilityStart),
			AvailabilityEnd:   patch.Coalesce(req.AvailabilityEnd, snap.AvailabilityEnd),
			MaxVehicleSize:    patch.Coalesce(req.MaxVehicleSize, snap.MaxVehicleSize),
			Available:         snap.IsAvailable,
		}
		if req.ImageURL != nil {
			merged.ImageURL = reqdto.TrimmedPtr(req.ImageURL)
		}

		entity, err := buildSpot(snap.OwnerID, merged)
		if err != nil {
			return errs.Mark(err, ErrSpotValidation)
		}

		windowNarrowed := merged.AvailabilityStart.After(snap.AvailabilityStart) ||
			merged.AvailabilityEnd.Before(snap.AvailabilityEnd)
		if windowNarrowed {
			n, err := tx.Bookings().CountBlockingOutsideWindow(ctx, id, merged.AvailabilityStart, merged.AvailabilityEnd)
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrWindowHasBookings
			}
		}

		return tx.Spots().Update(ctx, id, shared.SpotUpdateParams{
			Address:         entity.Address(),
			Description:     entity.Description(),
			ImageURL:        entity.ImageURL(),
			Latitude:        entity.Location().Latitude(),
			Longitude:       entity.Location().Longitude(),
			HourlyRateCents: entity.HourlyRateCents(),
			WindowStart:     entity.Window().Start(),
			WindowEnd:       entity.Window().End(),
			Available:       entity.Available(),
			MaxVehicleSize:  entity.MaxVehicleSize().String(),
		})
	})
	return u.mapSpotErr(err)
}

func (u *spotCommandsImpl) SetAvailability(ctx context.Context, id uuid.UUID, available bool, actorID uuid.UUID) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().SpotByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSpotNotFound
			}
			return err
		}
		if snap.OwnerID != actorID {
			return ErrNotSpotOwner
		}
		return tx.Spots().SetAvailable(ctx, id, available)
	})
	return u.mapSpotErr(err)
}

// Delete cancels every blocking booking on the spot and removes the spot
// in one transaction. The cancelled rows stay behind as the finders'
// booking history.
func (u *spotCommandsImpl) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	now := u.clock.Now()
	err := u.uow.WithSpotLock(ctx, id, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().SpotByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSpotNotFound
			}
			return err
		}
		if snap.OwnerID != actorID {
			return ErrNotSpotOwner
		}

		cancelled, err := tx.Bookings().CancelBlockingBySpot(ctx, id, now)
		if err != nil {
			return err
		}
		for _, bookingID := range cancelled {
			payload, err := json.Marshal(map[string]any{
				"booking_id": bookingID,
				"spot_id":    id,
				"type":       "booking_cancelled",
			})
			if err != nil {
				return err
			}
			if err := tx.Notifications().CreateJob(ctx, "email", "booking_cancelled", payload, now); err != nil {
				return err
			}
		}

		return tx.Spots().Delete(ctx, id)
	})
	return u.mapSpotErr(err)
}

func (u *spotCommandsImpl) mapSpotErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrSpotNotFound),
		errors.Is(err, ErrNotSpotOwner),
		errors.Is(err, ErrSpotValidation),
		errors.Is(err, ErrWindowHasBookings):
		return err
	case errors.Is(err, shared.ErrSpotContended):
		return errs.Mark(err, ErrSpotBusy)
	default:
		return errs.Mark(err, ErrSpotOperationFailed)
	}
}

// spotFields is the post-merge flat form fed to domain validation.
type spotFields struct {
	Address           string
	Description       string
	ImageURL          *string
	Latitude          float64
	Longitude         float64
	HourlyRateCents   int64
	AvailabilityStart time.Time
	AvailabilityEnd   time.Time
	MaxVehicleSize    string
	Available         bool
}

func buildSpot(ownerID uuid.UUID, f spotFields) (*spot.Spot, error) {
	location, err := spot.NewCoordinates(f.Latitude, f.Longitude)
	if err != nil {
		return nil, err
	}
	window, err := spot.NewAvailabilityWindow(f.AvailabilityStart, f.AvailabilityEnd)
	if err != nil {
		return nil, err
	}
	size, err := spot.ParseVehicleSize(f.MaxVehicleSize)
	if err != nil {
		return nil, err
	}
	return spot.NewSpot(ownerID, f.Address, location, f.HourlyRateCents, window, size, f.Available, f.Description, f.ImageURL)
}
