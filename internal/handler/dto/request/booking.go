package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SpotID      uuid.UUID `json:"spot_id" binding:"required"`
	FinderName  string    `json:"finder_name" binding:"required"`
	FinderEmail string    `json:"finder_email" binding:"required,email"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Message     *string   `json:"message,omitempty"`
}

func (r CreateBookingRequest) GetMessage() *string {
	return TrimmedPtr(r.Message)
}

// DecideBookingRequest carries the optional owner response attached to an
// approval or rejection.
type DecideBookingRequest struct {
	Response *string `json:"response,omitempty"`
}

func (r DecideBookingRequest) GetResponse() *string {
	return TrimmedPtr(r.Response)
}
