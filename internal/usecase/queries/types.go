package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type SpotView struct {
	ID                uuid.UUID `json:"id"`
	OwnerID           uuid.UUID `json:"owner_id"`
	Address           string    `json:"address"`
	Description       string    `json:"description"`
	ImageURL          *string   `json:"image_url,omitempty"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	HourlyRateCents   int64     `json:"hourly_rate_cents"`
	AvailabilityStart time.Time `json:"availability_start"`
	AvailabilityEnd   time.Time `json:"availability_end"`
	IsAvailable       bool      `json:"is_available"`
	MaxVehicleSize    string    `json:"max_vehicle_size"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NearbySpotView decorates a spot with its great-circle distance from the
// search origin.
type NearbySpotView struct {
	SpotView
	DistanceMeters float64 `json:"distance_meters"`
}

type BookingView struct {
	ID            uuid.UUID  `json:"id"`
	SpotID        uuid.UUID  `json:"spot_id"`
	SpotAddress   string     `json:"spot_address"`
	SpotOwnerID   uuid.UUID  `json:"spot_owner_id"`
	FinderID      uuid.UUID  `json:"finder_id"`
	FinderName    string     `json:"finder_name"`
	FinderEmail   string     `json:"finder_email"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	AmountCents   int64      `json:"amount_cents"`
	Status        string     `json:"status"`
	Message       *string    `json:"message,omitempty"`
	OwnerResponse *string    `json:"owner_response,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SpotSearchFilters narrows the public spot listing. Nil fields are
// unconstrained. When both SlotStart and SlotEnd are set, only spots whose
// availability window contains the slot and that have no blocking booking
// overlapping it are returned.
type SpotSearchFilters struct {
	MaxPriceCents *int64
	VehicleSize   *string
	SlotStart     *time.Time
	SlotEnd       *time.Time
	Limit         int32
	Offset        int32

	// SizeIn is derived from VehicleSize by the query layer; stores treat
	// an empty slice as unconstrained.
	SizeIn []string
}

type NearbyParams struct {
	Latitude  float64
	Longitude float64
	RadiusM   float64
	Limit     int32
}
