package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations

type SpotSnapshot struct {
	ID                uuid.UUID
	OwnerID           uuid.UUID
	Address           string
	Description       string
	ImageURL          *string
	Latitude          float64
	Longitude         float64
	HourlyRateCents   int64
	AvailabilityStart time.Time
	AvailabilityEnd   time.Time
	IsAvailable       bool
	MaxVehicleSize    string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type BookingSnapshot struct {
	ID            uuid.UUID
	SpotID        uuid.UUID
	SpotOwnerID   uuid.UUID
	FinderID      uuid.UUID
	FinderName    string
	FinderEmail   string
	StartTime     time.Time
	EndTime       time.Time
	AmountCents   int64
	Status        string
	Message       *string
	OwnerResponse *string
	CreatedAt     time.Time
	RespondedAt   *time.Time
	UpdatedAt     time.Time
}
