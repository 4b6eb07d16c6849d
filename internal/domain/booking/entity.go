package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidTransition = errors.New("invalid booking state transition")
)

// Booking is a requested or granted reservation of a spot. Only pending,
// approved, rejected and cancelled are ever stored; confirmed and
// completed are derived from the clock on read (see DeriveStatus).
type Booking struct {
	id            uuid.UUID
	spotID        uuid.UUID
	finderID      uuid.UUID
	finderName    string
	finderEmail   string
	slot          TimeSlot
	amount        Money
	status        Status
	message       *string
	ownerResponse *string
	createdAt     time.Time
	respondedAt   *time.Time
	updatedAt     time.Time
}

func NewBooking(
	spotID, finderID uuid.UUID,
	finderName, finderEmail string,
	slot TimeSlot,
	amount Money,
	message *string,
) (*Booking, error) {
	if amount.Cents() < 0 {
		return nil, ErrNegativePrice
	}
	return &Booking{
		id:          uuid.New(),
		spotID:      spotID,
		finderID:    finderID,
		finderName:  finderName,
		finderEmail: finderEmail,
		slot:        slot,
		amount:      amount,
		status:      StatusPending,
		message:     message,
	}, nil
}

func ReconstructBooking(
	id, spotID, finderID uuid.UUID,
	finderName, finderEmail string,
	slot TimeSlot,
	amount Money,
	status Status,
	message, ownerResponse *string,
	createdAt time.Time,
	respondedAt *time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		spotID:        spotID,
		finderID:      finderID,
		finderName:    finderName,
		finderEmail:   finderEmail,
		slot:          slot,
		amount:        amount,
		status:        status,
		message:       message,
		ownerResponse: ownerResponse,
		createdAt:     createdAt,
		respondedAt:   respondedAt,
		updatedAt:     updatedAt,
	}
}

// StatusAt returns the observable status at the given instant.
func (b *Booking) StatusAt(now time.Time) Status {
	return DeriveStatus(b.status, b.slot, now)
}

// Approve moves a pending booking to approved. Approving an already
// approved booking is a no-op so owner retries stay safe.
func (b *Booking) Approve(response *string, now time.Time) error {
	if b.status == StatusApproved {
		return nil
	}
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.status = StatusApproved
	b.ownerResponse = response
	b.stampResponded(now)
	return nil
}

// Reject moves a pending booking to rejected, no-op when already rejected.
func (b *Booking) Reject(response *string, now time.Time) error {
	if b.status == StatusRejected {
		return nil
	}
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.status = StatusRejected
	b.ownerResponse = response
	b.stampResponded(now)
	return nil
}

// Cancel applies the role rules: the finder may cancel any time before the
// booking is confirmed, the owner may revoke only while approved. A booking
// whose interval has started (confirmed) or ended (completed), or that is
// already terminal, cannot be cancelled.
func (b *Booking) Cancel(actor Actor, now time.Time) error {
	switch b.StatusAt(now) {
	case StatusPending:
		if actor != ActorFinder {
			return ErrInvalidTransition
		}
	case StatusApproved:
		// finder or owner
	default:
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	b.stampResponded(now)
	return nil
}

// ForceCancel is the cascade path used when the spot is deleted: any
// blocking booking is cancelled regardless of actor.
func (b *Booking) ForceCancel(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrInvalidTransition
	}
	b.status = StatusCancelled
	b.stampResponded(now)
	return nil
}

// respondedAt records the first decision only.
func (b *Booking) stampResponded(now time.Time) {
	if b.respondedAt == nil {
		t := now
		b.respondedAt = &t
	}
}

func (b *Booking) IsParticipant(actor uuid.UUID, spotOwnerID uuid.UUID) bool {
	return b.finderID == actor || spotOwnerID == actor
}

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) SpotID() uuid.UUID      { return b.spotID }
func (b *Booking) FinderID() uuid.UUID    { return b.finderID }
func (b *Booking) FinderName() string     { return b.finderName }
func (b *Booking) FinderEmail() string    { return b.finderEmail }
func (b *Booking) Slot() TimeSlot         { return b.slot }
func (b *Booking) Amount() Money          { return b.amount }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) Message() *string       { return b.message }
func (b *Booking) OwnerResponse() *string { return b.ownerResponse }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }
func (b *Booking) RespondedAt() *time.Time { return b.respondedAt }
func (b *Booking) UpdatedAt() time.Time   { return b.updatedAt }
