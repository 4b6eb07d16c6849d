package response

import (
	"time"

	"parkbroker/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SpotResponse struct {
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

func FromSpotView(v *queries.SpotView) *SpotResponse {
	var resp SpotResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromSpotViews(views []*queries.SpotView) []*SpotResponse {
	res := make([]*SpotResponse, len(views))
	for i, v := range views {
		res[i] = FromSpotView(v)
	}
	return res
}

type NearbySpotResponse struct {
	SpotResponse
	DistanceMeters float64 `json:"distance_meters"`
}

func FromNearbySpotViews(views []*queries.NearbySpotView) []*NearbySpotResponse {
	res := make([]*NearbySpotResponse, len(views))
	for i, v := range views {
		var resp NearbySpotResponse
		_ = copier.Copy(&resp.SpotResponse, &v.SpotView)
		resp.DistanceMeters = v.DistanceMeters
		res[i] = &resp
	}
	return res
}
