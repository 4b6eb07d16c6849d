package booking

import (
	"errors"
	"time"

	"parkbroker/internal/domain/spot"

	"github.com/google/uuid"
)

var (
	ErrSpotUnavailable   = errors.New("spot is not accepting bookings")
	ErrSlotOutsideWindow = errors.New("requested slot is outside the spot availability window")
)

// SpotSpec is the snapshot of the spot a request is validated against.
// The rate is captured here so later rate changes never reprice a booking.
type SpotSpec struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	HourlyRateCents int64
	WindowStart     time.Time
	WindowEnd       time.Time
	Available       bool
}

type Factory struct {
	priceCalculator PriceCalculator
}

func NewFactory(priceCalculator PriceCalculator) *Factory {
	return &Factory{priceCalculator: priceCalculator}
}

// CreateBooking validates a request against the spot snapshot and prices
// it. The overlap check against other bookings is not done here: it needs
// the ledger and must run inside the per-spot critical section.
func (f *Factory) CreateBooking(
	spec SpotSpec,
	finderID uuid.UUID,
	finderName, finderEmail string,
	slot TimeSlot,
	message *string,
) (*Booking, error) {
	if !spec.Available {
		return nil, ErrSpotUnavailable
	}

	window, err := spot.NewAvailabilityWindow(spec.WindowStart, spec.WindowEnd)
	if err != nil {
		return nil, err
	}
	if !window.Contains(slot.Start(), slot.End()) {
		return nil, ErrSlotOutsideWindow
	}

	amountCents := f.priceCalculator.PriceCents(spec.HourlyRateCents, slot)
	if amountCents < 0 {
		return nil, ErrNegativePrice
	}

	return NewBooking(
		spec.ID,
		finderID,
		finderName,
		finderEmail,
		slot,
		NewMoney(amountCents),
		message,
	)
}
