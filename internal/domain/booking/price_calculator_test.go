//go:build unit

package booking_test

import (
	"testing"
	"time"

	"parkbroker/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlyPriceCalculator(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	calc := booking.NewHourlyPriceCalculator()

	price := func(rateCents int64, d time.Duration) int64 {
		slot, err := booking.NewTimeSlot(base, base.Add(d))
		require.NoError(t, err)
		return calc.PriceCents(rateCents, slot)
	}

	cases := []struct {
		name      string
		rateCents int64
		duration  time.Duration
		want      int64
	}{
		{"whole hours", 500, 2 * time.Hour, 1000},
		{"half hour", 500, 30 * time.Minute, 250},
		{"ninety minutes", 500, 90 * time.Minute, 750},
		{"fractional cents round to nearest", 333, 30 * time.Minute, 167},
		{"one minute", 6000, time.Minute, 100},
		{"sub-cent slot rounds down to zero", 100, time.Second, 0},
		{"long slot", 250, 48 * time.Hour, 12000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, price(tc.rateCents, tc.duration))
		})
	}
}
