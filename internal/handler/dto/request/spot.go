package request

import (
	"strings"
	"time"
)

type CreateSpotRequest struct {
	Address           string    `json:"address" binding:"required"`
	Description       string    `json:"description"`
	ImageURL          *string   `json:"image_url,omitempty"`
	Latitude          float64   `json:"latitude" binding:"min=-90,max=90"`
	Longitude         float64   `json:"longitude" binding:"min=-180,max=180"`
	HourlyRateCents   int64     `json:"hourly_rate_cents" binding:"required,gt=0"`
	AvailabilityStart time.Time `json:"availability_start" binding:"required"`
	AvailabilityEnd   time.Time `json:"availability_end" binding:"required"`
	MaxVehicleSize    string    `json:"max_vehicle_size" binding:"required"`
	IsAvailable       *bool     `json:"is_available,omitempty"`
}

// Available defaults new spots to bookable unless the owner opts out.
func (r CreateSpotRequest) Available() bool {
	if r.IsAvailable == nil {
		return true
	}
	return *r.IsAvailable
}

// UpdateSpotRequest is a partial update: nil fields keep their current
// value.
type UpdateSpotRequest struct {
	Address           *string    `json:"address,omitempty"`
	Description       *string    `json:"description,omitempty"`
	ImageURL          *string    `json:"image_url,omitempty"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	HourlyRateCents   *int64     `json:"hourly_rate_cents,omitempty"`
	AvailabilityStart *time.Time `json:"availability_start,omitempty"`
	AvailabilityEnd   *time.Time `json:"availability_end,omitempty"`
	MaxVehicleSize    *string    `json:"max_vehicle_size,omitempty"`
}

type SetSpotAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

func TrimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
