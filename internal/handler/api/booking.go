package api

import (
	"context"
	"errors"
	"net/http"

	reqdto "parkbroker/internal/handler/dto/request"
	resdto "parkbroker/internal/handler/dto/response"
	"parkbroker/internal/handler/httperr"
	"parkbroker/internal/handler/middleware"
	"parkbroker/internal/usecase/commands"
	"parkbroker/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Request booking
// @Description Request a spot for a time slot; the request waits for the owner's decision
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Request(c *gin.Context) {
	finderID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.Request(c.Request.Context(), req, finderID)
	if err != nil {
		h.abortBookingErr(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, finderID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Description List every booking the caller requested as a finder
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings/my-bookings [get]
func (h *BookingHandler) MyBookings(c *gin.Context) {
	finderID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}
	views, err := h.q.ListByFinder(c.Request.Context(), finderID)
	if err != nil {
		h.abortBookingErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": resdto.FromBookingViews(views)})
}

// @Summary List pending requests
// @Description List undecided requests across the caller's spots, oldest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings/pending-requests [get]
func (h *BookingHandler) PendingRequests(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}
	views, err := h.q.ListPendingByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.abortBookingErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": resdto.FromBookingViews(views)})
}

// @Summary List owner bookings
// @Description List every booking on the caller's spots
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings/owner-bookings [get]
func (h *BookingHandler) OwnerBookings(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}
	views, err := h.q.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.abortBookingErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": resdto.FromBookingViews(views)})
}

// @Summary Get booking
// @Description Get a booking by ID; participants only
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, actorID, ok := h.idAndActor(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, actorID)
	if err != nil {
		h.abortBookingErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Approve booking
// @Description Approve a pending request on an owned spot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.DecideBookingRequest false "Optional owner response"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/approve [put]
func (h *BookingHandler) Approve(c *gin.Context) {
	h.decide(c, h.cmds.Approve)
}

// @Summary Reject booking
// @Description Reject a pending request on an owned spot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.DecideBookingRequest false "Optional owner response"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/reject [put]
func (h *BookingHandler) Reject(c *gin.Context) {
	h.decide(c, h.cmds.Reject)
}

func (h *BookingHandler) decide(c *gin.Context, apply func(ctx context.Context, id uuid.UUID, req reqdto.DecideBookingRequest, actorID uuid.UUID) error) {
	id, actorID, ok := h.idAndActor(c)
	if !ok {
		return
	}
	var req reqdto.DecideBookingRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
			return
		}
	}
	if err := apply(c.Request.Context(), id, req, actorID); err != nil {
		h.abortBookingErr(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, actorID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel a booking; finders may cancel before confirmation, owners may revoke approvals
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [put]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, actorID, ok := h.idAndActor(c)
	if !ok {
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), id, actorID); err != nil {
		h.abortBookingErr(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, actorID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Delete booking
// @Description Remove a finished booking from the caller's history
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	id, actorID, ok := h.idAndActor(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id, actorID); err != nil {
		h.abortBookingErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) idAndActor(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return id, actorID, true
}

func (h *BookingHandler) abortBookingErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidTimeSlot),
		errors.Is(err, commands.ErrBookingValidation),
		errors.Is(err, commands.ErrSpotNotBookable):
		// A paused spot fails the request's validation; conflicts are
		// reserved for overlapping slots.
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	case errors.Is(err, commands.ErrOwnSpotBooking),
		errors.Is(err, commands.ErrNotBookingParticipant),
		errors.Is(err, queries.ErrBookingAccessDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
	case errors.Is(err, commands.ErrBookingNotFound),
		errors.Is(err, commands.ErrSpotNotFound),
		errors.Is(err, queries.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, commands.ErrSlotConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot conflict", nil)
	case errors.Is(err, commands.ErrInvalidBookingState), errors.Is(err, commands.ErrBookingNotTerminal):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid booking state", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
