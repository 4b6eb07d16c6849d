package spot

import (
	"errors"
	"time"
)

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrInvalidWindow    = errors.New("availability window start must be before end")
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	latitude  float64
	longitude float64
}

func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	if latitude < -90 || latitude > 90 {
		return Coordinates{}, ErrInvalidLatitude
	}
	if longitude < -180 || longitude > 180 {
		return Coordinates{}, ErrInvalidLongitude
	}
	return Coordinates{latitude: latitude, longitude: longitude}, nil
}

func (c Coordinates) Latitude() float64  { return c.latitude }
func (c Coordinates) Longitude() float64 { return c.longitude }

// AvailabilityWindow is the half-open [start, end) interval inside which
// bookings may be requested.
type AvailabilityWindow struct {
	start time.Time
	end   time.Time
}

func NewAvailabilityWindow(start, end time.Time) (AvailabilityWindow, error) {
	if !start.Before(end) {
		return AvailabilityWindow{}, ErrInvalidWindow
	}
	return AvailabilityWindow{start: start, end: end}, nil
}

func (w AvailabilityWindow) Start() time.Time { return w.start }
func (w AvailabilityWindow) End() time.Time   { return w.end }

// Contains reports whether [start, end) lies fully inside the window.
func (w AvailabilityWindow) Contains(start, end time.Time) bool {
	return !start.Before(w.start) && !end.After(w.end)
}
