//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"parkbroker/internal/handler/api"
	resdto "parkbroker/internal/handler/dto/response"
	"parkbroker/internal/usecase/commands"
	"parkbroker/internal/usecase/queries"
	"parkbroker/tests/common/builder"
	"parkbroker/tests/common/httptest"
	"parkbroker/tests/common/testutil"
	commandsmock "parkbroker/tests/mock/commands"
	queriesmock "parkbroker/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	// Setup routes
	s.router.POST("/bookings", authMiddleware, s.handler.Request)
	s.router.GET("/bookings/my-bookings", authMiddleware, s.handler.MyBookings)
	s.router.GET("/bookings/pending-requests", authMiddleware, s.handler.PendingRequests)
	s.router.GET("/bookings/owner-bookings", authMiddleware, s.handler.OwnerBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.Get)
	s.router.PUT("/bookings/:id/approve", authMiddleware, s.handler.Approve)
	s.router.PUT("/bookings/:id/reject", authMiddleware, s.handler.Reject)
	s.router.PUT("/bookings/:id/cancel", authMiddleware, s.handler.Cancel)
	s.router.DELETE("/bookings/:id", authMiddleware, s.handler.Delete)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestRequest
// ================================================================================

func (s *BookingHandlerTestSuite) TestRequest() {
	url := "/bookings"

	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	returnView := builder.NewBookingBuilder().BuildViewQuery()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Request(gomock.Any(), gomock.Any(), s.userID).
			Return(returnView.ID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID, s.userID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal("pending", body.Status)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: spot_id (required)", mutate: testutil.Field("spot_id", nil)},
			{name: "missing field: finder_name (required)", mutate: testutil.Field("finder_name", nil)},
			{name: "missing field: finder_email (required)", mutate: testutil.Field("finder_email", nil)},
			{name: "malformed email", mutate: testutil.Field("finder_email", "not-an-email")},
			{name: "missing field: start_time (required)", mutate: testutil.Field("start_time", nil)},
			{name: "missing field: end_time (required)", mutate: testutil.Field("end_time", nil)},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "reversed time slot", commandsError: commands.ErrInvalidTimeSlot, expectedStatus: http.StatusBadRequest},
			{name: "slot outside availability window", commandsError: commands.ErrBookingValidation, expectedStatus: http.StatusBadRequest},
			{name: "own spot", commandsError: commands.ErrOwnSpotBooking, expectedStatus: http.StatusForbidden},
			{name: "spot not found", commandsError: commands.ErrSpotNotFound, expectedStatus: http.StatusNotFound},
			{name: "overlapping slot", commandsError: commands.ErrSlotConflict, expectedStatus: http.StatusConflict},
			{name: "spot not accepting bookings", commandsError: commands.ErrSpotNotBookable, expectedStatus: http.StatusBadRequest},
			{name: "internal error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Request(gomock.Any(), gomock.Any(), s.userID).
					Return(uuid.Nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("success: returns the booking", func() {
		view := builder.NewBookingBuilder().BuildViewQuery()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
	})

	s.Run("error: 403 for non-participants", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id, s.userID).
			Return(nil, queries.ErrBookingAccessDenied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 404 when booking does not exist", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id, s.userID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestLists
// ================================================================================

func (s *BookingHandlerTestSuite) TestLists() {
	views := []*queries.BookingView{builder.NewBookingBuilder().BuildViewQuery()}

	s.Run("my-bookings lists the finder history", func() {
		s.mockQueries.EXPECT().ListByFinder(gomock.Any(), s.userID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/my-bookings", nil, "bearer-token")

		var body struct {
			Bookings []*resdto.BookingResponse `json:"bookings"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Bookings, 1)
	})

	s.Run("pending-requests lists undecided requests", func() {
		s.mockQueries.EXPECT().ListPendingByOwner(gomock.Any(), s.userID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/pending-requests", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("owner-bookings lists bookings across owned spots", func() {
		s.mockQueries.EXPECT().ListByOwner(gomock.Any(), s.userID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/owner-bookings", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/my-bookings", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestApprove / TestReject
// ================================================================================

func (s *BookingHandlerTestSuite) TestApprove() {
	view := builder.NewBookingBuilder().WithStatus("approved").BuildViewQuery()
	url := "/bookings/" + view.ID.String() + "/approve"

	s.Run("success: approves with a response message", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), view.ID, gomock.Any(), s.userID).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"response": "see you there"}, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("approved", body.Status)
	})

	s.Run("success: approves without a body", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), view.ID, gomock.Any(), s.userID).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "not the spot owner", commandsError: commands.ErrNotBookingParticipant, expectedStatus: http.StatusForbidden},
			{name: "booking not found", commandsError: commands.ErrBookingNotFound, expectedStatus: http.StatusNotFound},
			{name: "already decided", commandsError: commands.ErrInvalidBookingState, expectedStatus: http.StatusUnprocessableEntity},
			{name: "lock contention", commandsError: commands.ErrSlotConflict, expectedStatus: http.StatusConflict},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Approve(gomock.Any(), view.ID, gomock.Any(), s.userID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestReject() {
	view := builder.NewBookingBuilder().WithStatus("rejected").BuildViewQuery()
	url := "/bookings/" + view.ID.String() + "/reject"

	s.Run("success: rejects the request", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), view.ID, gomock.Any(), s.userID).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"response": "spot under repair"}, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("rejected", body.Status)
	})

	s.Run("error: 422 when not pending", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), view.ID, gomock.Any(), s.userID).
			Return(commands.ErrInvalidBookingState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	view := builder.NewBookingBuilder().WithStatus("cancelled").BuildViewQuery()
	url := "/bookings/" + view.ID.String() + "/cancel"

	s.Run("success: cancels the booking", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), view.ID, s.userID).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
	})

	s.Run("error: 403 for non-participants", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), view.ID, s.userID).
			Return(commands.ErrNotBookingParticipant).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 422 once the booking is in progress", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), view.ID, s.userID).
			Return(commands.ErrInvalidBookingState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *BookingHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/bookings/" + id.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.userID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 422 while the booking still blocks the spot", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.userID).
			Return(commands.ErrBookingNotTerminal).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})

	s.Run("error: 403 for non-finders", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.userID).
			Return(commands.ErrNotBookingParticipant).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}
