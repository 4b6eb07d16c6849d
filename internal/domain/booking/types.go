package booking

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status can never change again.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsBlocking reports whether a booking in this status reserves its
// interval, i.e. participates in the no-overlap invariant.
func (s Status) IsBlocking() bool {
	switch s {
	case StatusPending, StatusApproved, StatusConfirmed:
		return true
	default:
		return false
	}
}

// DeriveStatus maps a stored status to the observable one at the given
// instant. confirmed and completed are never persisted: an approved
// booking whose interval has started reads as confirmed, and one whose
// interval has ended reads as completed.
func DeriveStatus(stored Status, slot TimeSlot, now time.Time) Status {
	if stored != StatusApproved {
		return stored
	}
	if !now.Before(slot.End()) {
		return StatusCompleted
	}
	if !now.Before(slot.Start()) {
		return StatusConfirmed
	}
	return StatusApproved
}

// Actor identifies which side of a booking is performing a transition.
type Actor int

const (
	ActorFinder Actor = iota
	ActorOwner
)
