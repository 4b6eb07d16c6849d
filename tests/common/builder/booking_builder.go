//go:build unit || e2e

package builder

import (
	"time"

	reqdto "parkbroker/internal/handler/dto/request"
	"parkbroker/internal/usecase/queries"
	"parkbroker/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	SpotID        uuid.UUID
	SpotAddress   string
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

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &BookingBuilder{
		SpotID:      uuid.New(),
		SpotAddress: "12 Harbor Lane",
		SpotOwnerID: uuid.New(),
		FinderID:    uuid.New(),
		FinderName:  "Jess Finder",
		FinderEmail: "finder@example.com",
		StartTime:   now.Add(24 * time.Hour),
		EndTime:     now.Add(26 * time.Hour),
		AmountCents: 1000,
		Status:      "pending",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		SpotID:      b.SpotID,
		FinderName:  b.FinderName,
		FinderEmail: b.FinderEmail,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Message:     b.Message,
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	return &queries.BookingView{
		ID:            uuid.New(),
		SpotID:        b.SpotID,
		SpotAddress:   b.SpotAddress,
		SpotOwnerID:   b.SpotOwnerID,
		FinderID:      b.FinderID,
		FinderName:    b.FinderName,
		FinderEmail:   b.FinderEmail,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		AmountCents:   b.AmountCents,
		Status:        b.Status,
		Message:       b.Message,
		OwnerResponse: b.OwnerResponse,
		CreatedAt:     b.CreatedAt,
		RespondedAt:   b.RespondedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:            uuid.New(),
		SpotID:        b.SpotID,
		SpotOwnerID:   b.SpotOwnerID,
		FinderID:      b.FinderID,
		FinderName:    b.FinderName,
		FinderEmail:   b.FinderEmail,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		AmountCents:   b.AmountCents,
		Status:        b.Status,
		Message:       b.Message,
		OwnerResponse: b.OwnerResponse,
		CreatedAt:     b.CreatedAt,
		RespondedAt:   b.RespondedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithSpotID(spotID uuid.UUID) *BookingBuilder {
	b.SpotID = spotID
	return b
}

func (b *BookingBuilder) WithSpotOwnerID(ownerID uuid.UUID) *BookingBuilder {
	b.SpotOwnerID = ownerID
	return b
}

func (b *BookingBuilder) WithFinderID(finderID uuid.UUID) *BookingBuilder {
	b.FinderID = finderID
	return b
}

func (b *BookingBuilder) WithSlot(start, end time.Time) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithMessage(message string) *BookingBuilder {
	b.Message = &message
	return b
}
