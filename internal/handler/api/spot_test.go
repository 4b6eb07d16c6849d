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

type SpotHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSpotCommands
	mockQueries  *queriesmock.MockSpotQueries
	handler      *api.SpotHandler
	userID       uuid.UUID
}

func (s *SpotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSpotCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSpotQueries(s.mockCtrl)
	s.handler = api.NewSpotHandler(s.mockCommands, s.mockQueries)
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
	s.router.POST("/spots", authMiddleware, s.handler.Create)
	s.router.GET("/spots", s.handler.Search)
	s.router.GET("/spots/nearby", s.handler.Nearby)
	s.router.GET("/spots/my-spots", authMiddleware, s.handler.MySpots)
	s.router.GET("/spots/:id", s.handler.Get)
	s.router.PUT("/spots/:id", authMiddleware, s.handler.Update)
	s.router.PUT("/spots/:id/availability", authMiddleware, s.handler.SetAvailability)
	s.router.DELETE("/spots/:id", authMiddleware, s.handler.Delete)
}

func (s *SpotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSpotHandlerSuite(t *testing.T) {
	suite.Run(t, new(SpotHandlerTestSuite))
}

type testCaseSpot struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *SpotHandlerTestSuite) TestCreate() {
	url := "/spots"

	reqBody := builder.NewSpotBuilder().BuildCreateRequestDTO()
	returnView := builder.NewSpotBuilder().BuildViewQuery()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.userID).
			Return(returnView.ID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.SpotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal(returnView.Address, body.Address)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []testCaseSpot{
			{name: "missing field: address (required)", mutate: testutil.Field("address", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: hourly_rate_cents (required)", mutate: testutil.Field("hourly_rate_cents", nil), expectCode: http.StatusBadRequest},
			{name: "zero rate", mutate: testutil.Field("hourly_rate_cents", 0), expectCode: http.StatusBadRequest},
			{name: "negative rate", mutate: testutil.Field("hourly_rate_cents", -500), expectCode: http.StatusBadRequest},
			{name: "latitude above range", mutate: testutil.Field("latitude", 90.5), expectCode: http.StatusBadRequest},
			{name: "latitude below range", mutate: testutil.Field("latitude", -91), expectCode: http.StatusBadRequest},
			{name: "longitude above range", mutate: testutil.Field("longitude", 181), expectCode: http.StatusBadRequest},
			{name: "missing field: availability_start (required)", mutate: testutil.Field("availability_start", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: availability_end (required)", mutate: testutil.Field("availability_end", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: max_vehicle_size (required)", mutate: testutil.Field("max_vehicle_size", nil), expectCode: http.StatusBadRequest},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
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
			{name: "domain validation error", commandsError: commands.ErrSpotValidation, expectedStatus: http.StatusBadRequest},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.userID).
					Return(uuid.Nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestSearch
// ================================================================================

func (s *SpotHandlerTestSuite) TestSearch() {
	s.Run("success: returns matching spots", func() {
		views := []*queries.SpotView{builder.NewSpotBuilder().BuildViewQuery()}
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any()).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spots?max_price_cents=1000&vehicle_size=compact", nil, "")

		var body struct {
			Spots []*resdto.SpotResponse `json:"spots"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Spots, 1)
	})

	s.Run("success: passes slot filters through", func() {
		var captured queries.SpotSearchFilters
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, f queries.SpotSearchFilters) ([]*queries.SpotView, error) {
				captured = f
				return nil, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/spots?start_time=2026-03-10T09:00:00Z&end_time=2026-03-10T12:00:00Z&limit=5&offset=10", nil, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.Require().NotNil(captured.SlotStart)
		s.Require().NotNil(captured.SlotEnd)
		s.Equal(int32(5), captured.Limit)
		s.Equal(int32(10), captured.Offset)
	})

	s.Run("error: 400 on malformed timestamps", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spots?start_time=yesterday", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on invalid filter combination", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidFilter).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spots?vehicle_size=tank", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestNearby
// ================================================================================

func (s *SpotHandlerTestSuite) TestNearby() {
	s.Run("success: returns spots ordered by distance", func() {
		views := []*queries.NearbySpotView{
			{SpotView: *builder.NewSpotBuilder().BuildViewQuery(), DistanceMeters: 120},
			{SpotView: *builder.NewSpotBuilder().BuildViewQuery(), DistanceMeters: 450},
		}
		s.mockQueries.EXPECT().Nearby(gomock.Any(), gomock.Any()).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/spots/nearby?latitude=37.7749&longitude=-122.4194&radius_m=2000", nil, "")

		var body struct {
			Spots []*resdto.NearbySpotResponse `json:"spots"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Spots, 2)
		s.InDelta(120, body.Spots[0].DistanceMeters, 1e-9)
	})

	s.Run("error: 400 when origin is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spots/nearby", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 when origin is out of range", func() {
		s.mockQueries.EXPECT().Nearby(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidFilter).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/spots/nearby?latitude=91&longitude=0", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *SpotHandlerTestSuite) TestGet() {
	s.Run("success: returns the spot", func() {
		view := builder.NewSpotBuilder().BuildViewQuery()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spots/"+view.ID.String(), nil, "")

		var body resdto.SpotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spots/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 404 when spot does not exist", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, queries.ErrSpotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spots/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestMySpots
// ================================================================================

func (s *SpotHandlerTestSuite) TestMySpots() {
	s.Run("success: lists owned spots", func() {
		views := []*queries.SpotView{builder.NewSpotBuilder().WithOwnerID(s.userID).BuildViewQuery()}
		s.mockQueries.EXPECT().ListByOwner(gomock.Any(), s.userID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spots/my-spots", nil, "bearer-token")

		var body struct {
			Spots []*resdto.SpotResponse `json:"spots"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Spots, 1)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spots/my-spots", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *SpotHandlerTestSuite) TestUpdate() {
	view := builder.NewSpotBuilder().BuildViewQuery()
	url := "/spots/" + view.ID.String()
	reqBody := builder.NewSpotBuilder().BuildUpdateRequestDTO()

	s.Run("success: returns the updated spot", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, gomock.Any(), s.userID).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var body resdto.SpotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "validation error", commandsError: commands.ErrSpotValidation, expectedStatus: http.StatusBadRequest},
			{name: "not the owner", commandsError: commands.ErrNotSpotOwner, expectedStatus: http.StatusForbidden},
			{name: "spot not found", commandsError: commands.ErrSpotNotFound, expectedStatus: http.StatusNotFound},
			{name: "bookings outside the narrowed window", commandsError: commands.ErrWindowHasBookings, expectedStatus: http.StatusConflict},
			{name: "lock contention", commandsError: commands.ErrSpotBusy, expectedStatus: http.StatusConflict},
			{name: "internal error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Update(gomock.Any(), view.ID, gomock.Any(), s.userID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestSetAvailability
// ================================================================================

func (s *SpotHandlerTestSuite) TestSetAvailability() {
	view := builder.NewSpotBuilder().BuildViewQuery()
	url := "/spots/" + view.ID.String() + "/availability"

	s.Run("success: toggles availability off", func() {
		s.mockCommands.EXPECT().SetAvailability(gomock.Any(), view.ID, false, s.userID).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"is_available": false}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 when the flag is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 403 for non-owners", func() {
		s.mockCommands.EXPECT().SetAvailability(gomock.Any(), view.ID, true, s.userID).
			Return(commands.ErrNotSpotOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"is_available": true}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *SpotHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/spots/" + id.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.userID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 for non-owners", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.userID).
			Return(commands.ErrNotSpotOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 404 when spot does not exist", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.userID).
			Return(commands.ErrSpotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/spots/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
