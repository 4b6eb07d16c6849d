//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SpotRow is the raw shape inserted by CreateTestSpot; zero values are
// replaced with bookable defaults.
type SpotRow struct {
	OwnerID         uuid.UUID
	Address         string
	Latitude        float64
	Longitude       float64
	HourlyRateCents int64
	WindowStart     time.Time
	WindowEnd       time.Time
	IsAvailable     *bool
	MaxVehicleSize  string
}

func CreateTestSpot(t *testing.T, db DBLike, row SpotRow) uuid.UUID {
	t.Helper()

	if row.Address == "" {
		row.Address = "1 Test Street"
	}
	if row.HourlyRateCents == 0 {
		row.HourlyRateCents = 500
	}
	now := time.Now().UTC().Truncate(time.Second)
	if row.WindowStart.IsZero() {
		row.WindowStart = now.Add(-time.Hour)
	}
	if row.WindowEnd.IsZero() {
		row.WindowEnd = now.Add(30 * 24 * time.Hour)
	}
	available := true
	if row.IsAvailable != nil {
		available = *row.IsAvailable
	}
	if row.MaxVehicleSize == "" {
		row.MaxVehicleSize = "any"
	}

	spotID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO spots (id, owner_id, address, latitude, longitude, hourly_rate_cents,
		                   availability_start, availability_end, is_available, max_vehicle_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		spotID, row.OwnerID, row.Address, row.Latitude, row.Longitude, row.HourlyRateCents,
		row.WindowStart, row.WindowEnd, available, row.MaxVehicleSize)
	require.NoError(t, err)

	return spotID
}

func CreateTestBooking(t *testing.T, db DBLike, spotID, finderID uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	amountCents := int64(end.Sub(start).Hours() * 500)
	// spot_owner_id and spot_address are copied from the spot row, the way
	// the write repository does it.
	_, err := db.Exec(context.Background(), `
		INSERT INTO bookings (id, spot_id, spot_owner_id, spot_address,
		                      finder_id, finder_name, finder_email,
		                      start_time, end_time, amount_cents, status)
		SELECT $1, s.id, s.owner_id, s.address, $3, $4, $5, $6, $7, $8, $9
		FROM spots s
		WHERE s.id = $2`,
		bookingID, spotID, finderID, "Test Finder", "finder@example.com",
		start, end, amountCents, status)
	require.NoError(t, err)

	return bookingID
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
