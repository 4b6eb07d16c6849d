//go:build e2e

package booking_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"parkbroker/internal/handler/dto/request"
	"parkbroker/internal/handler/dto/response"
	"parkbroker/tests/common/authtest"
	"parkbroker/tests/common/builder"
	"parkbroker/tests/common/dbtest"
	"parkbroker/tests/common/httptest"
	"parkbroker/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) token(t *testing.T, userID uuid.UUID) string {
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, userID)
}

func bookingURL(id uuid.UUID, action string) string {
	u := bookingsURL + "/" + id.String()
	if action != "" {
		u += "/" + action
	}
	return u
}

// =============================================================================
// TestRequestBooking - Booking request API tests
// =============================================================================

func (s *BookingSuite) TestRequestBooking() {
	s.Run("Normal case: Finder can request an open slot", func() {
		t := s.T()

		ownerID := uuid.New()
		finderID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: ownerID, HourlyRateCents: 500})

		reqBody := builder.NewBookingBuilder().WithSpotID(spotID).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, s.token(t, finderID))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "pending", created.Status)
		require.Equal(t, spotID, created.SpotID)
		require.Equal(t, finderID, created.FinderID)
		// two hours at 500 cents/hour
		require.Equal(t, int64(1000), created.AmountCents)
		require.Nil(t, created.RespondedAt)

		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "booking_requested"))
	})

	s.Run("Error case: Owners cannot book their own spot", func() {
		t := s.T()

		ownerID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: ownerID})

		reqBody := builder.NewBookingBuilder().WithSpotID(spotID).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, s.token(t, ownerID))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Error case: Paused spots reject requests", func() {
		t := s.T()

		paused := false
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: uuid.New(), IsAvailable: &paused})

		reqBody := builder.NewBookingBuilder().WithSpotID(spotID).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, s.token(t, uuid.New()))
		// The request fails validation; 409 stays reserved for overlaps
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("Error case: Overlapping slots conflict, touching slots do not", func() {
		t := s.T()

		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: uuid.New()})
		now := time.Now().UTC().Truncate(time.Second)
		start := now.Add(24 * time.Hour)
		end := now.Add(26 * time.Hour)
		dbtest.CreateTestBooking(t, s.DB, spotID, uuid.New(), start, end, "approved")

		// One hour into the existing booking
		overlapping := builder.NewBookingBuilder().
			WithSpotID(spotID).
			WithSlot(start.Add(time.Hour), end.Add(time.Hour)).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, overlapping, s.token(t, uuid.New()))
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// Back to back with the existing booking: intervals are half-open
		touching := builder.NewBookingBuilder().
			WithSpotID(spotID).
			WithSlot(end, end.Add(2*time.Hour)).
			BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, touching, s.token(t, uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: Slot outside the availability window is rejected", func() {
		t := s.T()

		now := time.Now().UTC().Truncate(time.Second)
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{
			OwnerID:     uuid.New(),
			WindowStart: now.Add(-time.Hour),
			WindowEnd:   now.Add(12 * time.Hour),
		})

		reqBody := builder.NewBookingBuilder().
			WithSpotID(spotID).
			WithSlot(now.Add(24*time.Hour), now.Add(26*time.Hour)).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, s.token(t, uuid.New()))
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("Auth test - Unauthorized when not logged in", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestDecideBooking - Owner approval/rejection API tests
// =============================================================================

func (s *BookingSuite) TestDecideBooking() {
	s.Run("Normal case: Owner approves and replays are idempotent", func() {
		t := s.T()

		ownerID := uuid.New()
		finderID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: ownerID})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, finderID,
			now.Add(24*time.Hour), now.Add(26*time.Hour), "pending")

		ownerToken := s.token(t, ownerID)
		reply := "gate code is 4711"
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL(bookingID, "approve"),
			request.DecideBookingRequest{Response: &reply}, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var approved response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &approved))
		require.Equal(t, "approved", approved.Status)
		require.NotNil(t, approved.RespondedAt)
		require.NotNil(t, approved.OwnerResponse)
		require.Equal(t, reply, *approved.OwnerResponse)
		firstRespondedAt := *approved.RespondedAt

		// Replayed approval changes nothing
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL(bookingID, "approve"), nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &approved))
		require.Equal(t, "approved", approved.Status)
		require.NotNil(t, approved.RespondedAt)
		require.True(t, firstRespondedAt.Equal(*approved.RespondedAt), "replay must keep the first decision time")

		// Flipping an approval to a rejection is not allowed
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL(bookingID, "reject"), nil, ownerToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("Normal case: Owner rejects a pending request", func() {
		t := s.T()

		ownerID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: ownerID})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, uuid.New(),
			now.Add(24*time.Hour), now.Add(26*time.Hour), "pending")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL(bookingID, "reject"), nil, s.token(t, ownerID))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var rejected response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &rejected))
		require.Equal(t, "rejected", rejected.Status)
	})

	s.Run("Error case: Only the spot owner may decide", func() {
		t := s.T()

		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: uuid.New()})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, uuid.New(),
			now.Add(24*time.Hour), now.Add(26*time.Hour), "pending")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL(bookingID, "approve"), nil, s.token(t, uuid.New()))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Error case: Returns 404 for a missing booking", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL(uuid.New(), "approve"), nil, s.token(t, uuid.New()))
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestDerivedStatuses - Clock-derived confirmed/completed tests
// =============================================================================

func (s *BookingSuite) TestDerivedStatuses() {
	s.Run("Normal case: Approved bookings read as confirmed while in progress", func() {
		t := s.T()

		ownerID := uuid.New()
		finderID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: ownerID})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, finderID,
			now.Add(-time.Hour), now.Add(time.Hour), "approved")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL(bookingID, ""), nil, s.token(t, finderID))
		require.Equal(t, http.StatusOK, w.Code)

		var got response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))
		require.Equal(t, "confirmed", got.Status)

		// An in-progress booking can no longer be cancelled
		cw := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL(bookingID, "cancel"), nil, s.token(t, finderID))
		require.Equal(t, http.StatusUnprocessableEntity, cw.Code)
	})

	s.Run("Normal case: Approved bookings read as completed after the slot ends", func() {
		t := s.T()

		finderID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: uuid.New()})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, finderID,
			now.Add(-3*time.Hour), now.Add(-time.Hour), "approved")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL(bookingID, ""), nil, s.token(t, finderID))
		require.Equal(t, http.StatusOK, w.Code)

		var got response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))
		require.Equal(t, "completed", got.Status)
	})
}

// =============================================================================
// TestCancelBooking - Cancellation API tests
// =============================================================================

func (s *BookingSuite) TestCancelBooking() {
	s.Run("Normal case: Finder cancels a pending request", func() {
		t := s.T()

		finderID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: uuid.New()})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, finderID,
			now.Add(24*time.Hour), now.Add(26*time.Hour), "pending")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL(bookingID, "cancel"), nil, s.token(t, finderID))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cancelled response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cancelled))
		require.Equal(t, "cancelled", cancelled.Status)
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "booking_cancelled"))
	})

	s.Run("Normal case: Owner revokes an approval before the slot starts", func() {
		t := s.T()

		ownerID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: ownerID})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, uuid.New(),
			now.Add(24*time.Hour), now.Add(26*time.Hour), "approved")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL(bookingID, "cancel"), nil, s.token(t, ownerID))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cancelled response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cancelled))
		require.Equal(t, "cancelled", cancelled.Status)
	})

	s.Run("Error case: Owners cannot cancel an undecided request", func() {
		t := s.T()

		ownerID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: ownerID})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, uuid.New(),
			now.Add(24*time.Hour), now.Add(26*time.Hour), "pending")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL(bookingID, "cancel"), nil, s.token(t, ownerID))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("Error case: Strangers cannot cancel", func() {
		t := s.T()

		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: uuid.New()})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, uuid.New(),
			now.Add(24*time.Hour), now.Add(26*time.Hour), "pending")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, bookingURL(bookingID, "cancel"), nil, s.token(t, uuid.New()))
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// TestDeleteBooking - History deletion API tests
// =============================================================================

func (s *BookingSuite) TestDeleteBooking() {
	s.Run("Normal case: Finder removes a completed booking from history", func() {
		t := s.T()

		finderID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: uuid.New()})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, finderID,
			now.Add(-3*time.Hour), now.Add(-time.Hour), "approved")

		token := s.token(t, finderID)
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingURL(bookingID, ""), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/my-bookings", nil, token)
		require.Equal(t, http.StatusOK, lw.Code)
		var listed struct {
			Bookings []*response.BookingResponse `json:"bookings"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &listed))
		require.Empty(t, listed.Bookings)
	})

	s.Run("Error case: Blocking bookings cannot be deleted", func() {
		t := s.T()

		finderID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: uuid.New()})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, finderID,
			now.Add(24*time.Hour), now.Add(26*time.Hour), "pending")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingURL(bookingID, ""), nil, s.token(t, finderID))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("Error case: Only the finder may delete", func() {
		t := s.T()

		ownerID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: ownerID})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, uuid.New(),
			now.Add(-3*time.Hour), now.Add(-time.Hour), "rejected")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingURL(bookingID, ""), nil, s.token(t, ownerID))
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// TestListBookings - Listing API tests
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	s.Run("Normal case: Each side sees its own slice of the ledger", func() {
		t := s.T()

		ownerID := uuid.New()
		finderID := uuid.New()
		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: ownerID})
		now := time.Now().UTC().Truncate(time.Second)

		pending := dbtest.CreateTestBooking(t, s.DB, spotID, finderID,
			now.Add(24*time.Hour), now.Add(26*time.Hour), "pending")
		rejected := dbtest.CreateTestBooking(t, s.DB, spotID, finderID,
			now.Add(48*time.Hour), now.Add(50*time.Hour), "rejected")
		otherFinders := dbtest.CreateTestBooking(t, s.DB, spotID, uuid.New(),
			now.Add(72*time.Hour), now.Add(74*time.Hour), "pending")

		collect := func(path, token string) []uuid.UUID {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, path, nil, token)
			require.Equal(t, http.StatusOK, w.Code, path)
			var listed struct {
				Bookings []*response.BookingResponse `json:"bookings"`
			}
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &listed))
			ids := make([]uuid.UUID, 0, len(listed.Bookings))
			for _, b := range listed.Bookings {
				ids = append(ids, b.ID)
			}
			return ids
		}

		finderToken := s.token(t, finderID)
		ownerToken := s.token(t, ownerID)

		require.ElementsMatch(t, []uuid.UUID{pending, rejected}, collect(bookingsURL+"/my-bookings", finderToken))
		require.ElementsMatch(t, []uuid.UUID{pending, otherFinders}, collect(bookingsURL+"/pending-requests", ownerToken))
		require.ElementsMatch(t, []uuid.UUID{pending, rejected, otherFinders}, collect(bookingsURL+"/owner-bookings", ownerToken))
	})

	s.Run("Error case: Strangers cannot read someone else's booking", func() {
		t := s.T()

		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: uuid.New()})
		now := time.Now().UTC().Truncate(time.Second)
		bookingID := dbtest.CreateTestBooking(t, s.DB, spotID, uuid.New(),
			now.Add(24*time.Hour), now.Add(26*time.Hour), "pending")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingURL(bookingID, ""), nil, s.token(t, uuid.New()))
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// TestConcurrentRequests - Single-winner guarantee under contention
// =============================================================================

func (s *BookingSuite) TestConcurrentRequests() {
	s.Run("Normal case: Exactly one of many racing requests wins the slot", func() {
		t := s.T()

		spotID := dbtest.CreateTestSpot(t, s.DB, dbtest.SpotRow{OwnerID: uuid.New()})
		now := time.Now().UTC().Truncate(time.Second)
		start := now.Add(24 * time.Hour)
		end := now.Add(26 * time.Hour)

		const racers = 6
		tokens := make([]string, racers)
		for i := range tokens {
			tokens[i] = s.token(t, uuid.New())
		}

		codes := make([]int, racers)
		var wg sync.WaitGroup
		for i := range racers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				reqBody := builder.NewBookingBuilder().
					WithSpotID(spotID).
					WithSlot(start, end).
					BuildCreateRequestDTO()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, tokens[i])
				codes[i] = w.Code
			}(i)
		}
		wg.Wait()

		var winners, conflicts int
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				winners++
			case http.StatusConflict:
				conflicts++
			default:
				t.Fatalf("unexpected status code %d", code)
			}
		}
		require.Equal(t, 1, winners, "exactly one request may claim the slot")
		require.Equal(t, racers-1, conflicts)
	})
}
