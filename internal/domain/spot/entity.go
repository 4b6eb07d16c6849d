package spot

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyAddress       = errors.New("address cannot be empty")
	ErrAddressTooLong     = errors.New("address is too long (max 512 characters)")
	ErrInvalidRate        = errors.New("hourly rate must be positive")
	ErrInvalidVehicleSize = errors.New("invalid vehicle size")
)

const MaxAddressLength = 512

type Spot struct {
	id              uuid.UUID
	ownerID         uuid.UUID
	address         string
	description     string
	imageURL        *string
	location        Coordinates
	hourlyRateCents int64
	window          AvailabilityWindow
	available       bool
	maxVehicleSize  VehicleSize
	createdAt       time.Time
	updatedAt       time.Time
}

func NewSpot(
	ownerID uuid.UUID,
	address string,
	location Coordinates,
	hourlyRateCents int64,
	window AvailabilityWindow,
	maxVehicleSize VehicleSize,
	available bool,
	description string,
	imageURL *string,
) (*Spot, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}
	if len(address) > MaxAddressLength {
		return nil, ErrAddressTooLong
	}
	if hourlyRateCents <= 0 {
		return nil, ErrInvalidRate
	}
	if !maxVehicleSize.IsValid() {
		return nil, ErrInvalidVehicleSize
	}

	return &Spot{
		id:              uuid.New(),
		ownerID:         ownerID,
		address:         address,
		description:     strings.TrimSpace(description),
		imageURL:        imageURL,
		location:        location,
		hourlyRateCents: hourlyRateCents,
		window:          window,
		available:       available,
		maxVehicleSize:  maxVehicleSize,
	}, nil
}

func ReconstructSpot(
	id, ownerID uuid.UUID,
	address, description string,
	imageURL *string,
	location Coordinates,
	hourlyRateCents int64,
	window AvailabilityWindow,
	available bool,
	maxVehicleSize VehicleSize,
	createdAt, updatedAt time.Time,
) *Spot {
	return &Spot{
		id:              id,
		ownerID:         ownerID,
		address:         address,
		description:     description,
		imageURL:        imageURL,
		location:        location,
		hourlyRateCents: hourlyRateCents,
		window:          window,
		available:       available,
		maxVehicleSize:  maxVehicleSize,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// IsOwnedBy is the only authorization fact the core checks itself: the
// identity system authenticates callers, this compares identities.
func (s *Spot) IsOwnedBy(actor uuid.UUID) bool {
	return s.ownerID == actor
}

// AcceptsBookings reports whether the spot can take a request for
// [start, end): the manual flag is on and the interval fits the window.
func (s *Spot) AcceptsBookings(start, end time.Time) bool {
	return s.available && s.window.Contains(start, end)
}

func (s *Spot) ID() uuid.UUID              { return s.id }
func (s *Spot) OwnerID() uuid.UUID         { return s.ownerID }
func (s *Spot) Address() string            { return s.address }
func (s *Spot) Description() string        { return s.description }
func (s *Spot) ImageURL() *string          { return s.imageURL }
func (s *Spot) Location() Coordinates      { return s.location }
func (s *Spot) HourlyRateCents() int64     { return s.hourlyRateCents }
func (s *Spot) Window() AvailabilityWindow { return s.window }
func (s *Spot) Available() bool            { return s.available }
func (s *Spot) MaxVehicleSize() VehicleSize { return s.maxVehicleSize }
func (s *Spot) CreatedAt() time.Time       { return s.createdAt }
func (s *Spot) UpdatedAt() time.Time       { return s.updatedAt }
