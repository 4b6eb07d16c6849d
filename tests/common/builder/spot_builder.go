//go:build unit || e2e

package builder

import (
	"time"

	reqdto "parkbroker/internal/handler/dto/request"
	"parkbroker/internal/usecase/queries"
	"parkbroker/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpotBuilder struct {
	OwnerID         uuid.UUID
	Address         string
	Description     string
	ImageURL        *string
	Latitude        float64
	Longitude       float64
	HourlyRateCents int64
	WindowStart     time.Time
	WindowEnd       time.Time
	IsAvailable     bool
	MaxVehicleSize  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewSpotBuilder() *SpotBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &SpotBuilder{
		OwnerID:         uuid.New(),
		Address:         "12 Harbor Lane",
		Description:     "Covered spot near the waterfront",
		Latitude:        37.7749,
		Longitude:       -122.4194,
		HourlyRateCents: 500,
		WindowStart:     now.Add(-time.Hour),
		WindowEnd:       now.Add(30 * 24 * time.Hour),
		IsAvailable:     true,
		MaxVehicleSize:  "any",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *SpotBuilder) BuildCreateRequestDTO() reqdto.CreateSpotRequest {
	available := b.IsAvailable
	return reqdto.CreateSpotRequest{
		Address:           b.Address,
		Description:       b.Description,
		ImageURL:          b.ImageURL,
		Latitude:          b.Latitude,
		Longitude:         b.Longitude,
		HourlyRateCents:   b.HourlyRateCents,
		AvailabilityStart: b.WindowStart,
		AvailabilityEnd:   b.WindowEnd,
		MaxVehicleSize:    b.MaxVehicleSize,
		IsAvailable:       &available,
	}
}

func (b *SpotBuilder) BuildUpdateRequestDTO() reqdto.UpdateSpotRequest {
	address := b.Address
	rate := b.HourlyRateCents
	return reqdto.UpdateSpotRequest{
		Address:         &address,
		HourlyRateCents: &rate,
	}
}

func (b *SpotBuilder) BuildViewQuery() *queries.SpotView {
	return &queries.SpotView{
		ID:                uuid.New(),
		OwnerID:           b.OwnerID,
		Address:           b.Address,
		Description:       b.Description,
		ImageURL:          b.ImageURL,
		Latitude:          b.Latitude,
		Longitude:         b.Longitude,
		HourlyRateCents:   b.HourlyRateCents,
		AvailabilityStart: b.WindowStart,
		AvailabilityEnd:   b.WindowEnd,
		IsAvailable:       b.IsAvailable,
		MaxVehicleSize:    b.MaxVehicleSize,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (b *SpotBuilder) BuildSnapshot() *shared.SpotSnapshot {
	return &shared.SpotSnapshot{
		ID:                uuid.New(),
		OwnerID:           b.OwnerID,
		Address:           b.Address,
		Description:       b.Description,
		ImageURL:          b.ImageURL,
		Latitude:          b.Latitude,
		Longitude:         b.Longitude,
		HourlyRateCents:   b.HourlyRateCents,
		AvailabilityStart: b.WindowStart,
		AvailabilityEnd:   b.WindowEnd,
		IsAvailable:       b.IsAvailable,
		MaxVehicleSize:    b.MaxVehicleSize,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *SpotBuilder) WithOwnerID(ownerID uuid.UUID) *SpotBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *SpotBuilder) WithAddress(address string) *SpotBuilder {
	b.Address = address
	return b
}

func (b *SpotBuilder) WithLocation(lat, lon float64) *SpotBuilder {
	b.Latitude = lat
	b.Longitude = lon
	return b
}

func (b *SpotBuilder) WithHourlyRateCents(cents int64) *SpotBuilder {
	b.HourlyRateCents = cents
	return b
}

func (b *SpotBuilder) WithWindow(start, end time.Time) *SpotBuilder {
	b.WindowStart = start
	b.WindowEnd = end
	return b
}

func (b *SpotBuilder) WithMaxVehicleSize(size string) *SpotBuilder {
	b.MaxVehicleSize = size
	return b
}

func (b *SpotBuilder) AsUnavailable() *SpotBuilder {
	b.IsAvailable = false
	return b
}
