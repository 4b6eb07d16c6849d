package shared

import (
	"context"
	"time"

	"parkbroker/internal/domain/booking"
	"parkbroker/internal/domain/spot"
	"parkbroker/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrSpotContended surfaces when every lock retry found the spot still busy.
var ErrSpotContended = errs.New("spot is busy with a concurrent operation")

type UnitOfWork interface {
	// Within: transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithSpotLock: like Within, but first serializes on the spot's key so
	// the spot's booking set is mutated by one caller at a time. Lock
	// acquisition is bounded; exhausted retries surface as a conflict.
	WithSpotLock(ctx context.Context, spotID uuid.UUID, fn func(ctx context.Context, tx Tx) error) error
	// Reads: direct access to command reads for validation outside transactions
	Reads() CommandReads
}

type Tx interface {
	Spots() SpotRepository
	Bookings() BookingRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CommandReads interface {
	SpotByID(ctx context.Context, id uuid.UUID) (*SpotSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
}

type SpotRepository interface {
	Create(ctx context.Context, s *spot.Spot) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, params SpotUpdateParams) error
	SetAvailable(ctx context.Context, id uuid.UUID, available bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SpotUpdateParams is the full post-patch row; the command layer resolves
// partial requests against the current snapshot before persisting.
type SpotUpdateParams struct {
	Address         string
	Description     string
	ImageURL        *string
	Latitude        float64
	Longitude       float64
	HourlyRateCents int64
	WindowStart     time.Time
	WindowEnd       time.Time
	Available       bool
	MaxVehicleSize  string
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	// CountBlockingOverlap counts non-terminal bookings on the spot whose
	// interval overlaps [start, end).
	CountBlockingOverlap(ctx context.Context, spotID uuid.UUID, start, end time.Time) (int64, error)
	// CountBlockingOutsideWindow counts non-terminal bookings that would no
	// longer fit inside [windowStart, windowEnd).
	CountBlockingOutsideWindow(ctx context.Context, spotID uuid.UUID, windowStart, windowEnd time.Time) (int64, error)
	UpdateDecision(ctx context.Context, b *booking.Booking) error
	// CancelBlockingBySpot cancels every non-terminal booking on the spot
	// and returns the affected ids (cascade on spot deletion).
	CancelBlockingBySpot(ctx context.Context, spotID uuid.UUID, now time.Time) ([]uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationRepository enqueues outbox jobs for the notification
// collaborator; delivery is outside this core.
type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
