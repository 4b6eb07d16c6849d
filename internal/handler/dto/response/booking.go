package response

import (
	"time"

	"parkbroker/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
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

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		res[i] = FromBookingView(v)
	}
	return res
}
