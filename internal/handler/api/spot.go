package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "parkbroker/internal/handler/dto/request"
	resdto "parkbroker/internal/handler/dto/response"
	"parkbroker/internal/handler/httperr"
	"parkbroker/internal/handler/middleware"
	"parkbroker/internal/usecase/commands"
	"parkbroker/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SpotHandler struct {
	cmds commands.SpotCommands
	q    queries.SpotQueries
}

func NewSpotHandler(cmds commands.SpotCommands, q queries.SpotQueries) *SpotHandler {
	return &SpotHandler{cmds: cmds, q: q}
}

// @Summary Create spot
// @Description Register a new parking spot owned by the caller
// @Tags spots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSpotRequest true "Create spot request"
// @Success 201 {object} resdto.SpotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /spots [post]
func (h *SpotHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}
	var req reqdto.CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), req, ownerID)
	if err != nil {
		h.abortSpotErr(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load spot", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSpotView(view))
}

// @Summary Search spots
// @Description List bookable spots with optional price, vehicle size and time slot filters
// @Tags spots
// @Produce json
// @Param max_price_cents query int false "Maximum hourly rate in cents"
// @Param vehicle_size query string false "Requested vehicle size"
// @Param start_time query string false "Slot start (RFC3339)"
// @Param end_time query string false "Slot end (RFC3339)"
// @Param limit query int false "Max items (default 20)"
// @Param offset query int false "Items to skip"
// @Success 200 {array} resdto.SpotResponse
// @Failure 400 {object} map[string]string
// @Router /spots [get]
func (h *SpotHandler) Search(c *gin.Context) {
	f, err := parseSearchFilters(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid search filters", nil)
		return
	}
	views, err := h.q.Search(c.Request.Context(), f)
	if err != nil {
		h.abortSpotErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spots": resdto.FromSpotViews(views)})
}

// @Summary Nearby spots
// @Description List bookable spots around a point, closest first
// @Tags spots
// @Produce json
// @Param latitude query number true "Search origin latitude"
// @Param longitude query number true "Search origin longitude"
// @Param radius_m query number false "Search radius in meters (default 2000)"
// @Param limit query int false "Max items (default 20)"
// @Success 200 {array} resdto.NearbySpotResponse
// @Failure 400 {object} map[string]string
// @Router /spots/nearby [get]
func (h *SpotHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid latitude", nil)
		return
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid longitude", nil)
		return
	}
	p := queries.NearbyParams{Latitude: lat, Longitude: lon}
	if v := c.Query("radius_m"); v != "" {
		if fv, e := strconv.ParseFloat(v, 64); e == nil {
			p.RadiusM = fv
		}
	}
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			p.Limit = int32(queries.ValidateLimit(iv))
		}
	}
	views, err := h.q.Nearby(c.Request.Context(), p)
	if err != nil {
		h.abortSpotErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spots": resdto.FromNearbySpotViews(views)})
}

// @Summary List own spots
// @Description List every spot owned by the caller
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.SpotResponse
// @Failure 401 {object} map[string]string
// @Router /spots/my-spots [get]
func (h *SpotHandler) MySpots(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}
	views, err := h.q.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.abortSpotErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spots": resdto.FromSpotViews(views)})
}

// @Summary Get spot
// @Description Get a spot by ID
// @Tags spots
// @Produce json
// @Param id path string true "Spot ID"
// @Success 200 {object} resdto.SpotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /spots/{id} [get]
func (h *SpotHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		h.abortSpotErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpotView(view))
}

// @Summary Update spot
// @Description Partially update an owned spot
// @Tags spots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Param request body reqdto.UpdateSpotRequest true "Update spot request"
// @Success 200 {object} resdto.SpotResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /spots/{id} [put]
func (h *SpotHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}
	var req reqdto.UpdateSpotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err := h.cmds.Update(c.Request.Context(), id, req, actorID); err != nil {
		h.abortSpotErr(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load spot", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpotView(view))
}

// @Summary Toggle spot availability
// @Description Turn bookability of an owned spot on or off
// @Tags spots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Param request body reqdto.SetSpotAvailabilityRequest true "Availability request"
// @Success 200 {object} resdto.SpotResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /spots/{id}/availability [put]
func (h *SpotHandler) SetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}
	var req reqdto.SetSpotAvailabilityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err := h.cmds.SetAvailability(c.Request.Context(), id, *req.IsAvailable, actorID); err != nil {
		h.abortSpotErr(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load spot", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpotView(view))
}

// @Summary Delete spot
// @Description Delete an owned spot, cancelling its active bookings
// @Tags spots
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /spots/{id} [delete]
func (h *SpotHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing identity"), "Unauthorized", nil)
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id, actorID); err != nil {
		h.abortSpotErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SpotHandler) abortSpotErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSpotValidation), errors.Is(err, queries.ErrInvalidFilter):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	case errors.Is(err, commands.ErrNotSpotOwner):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Only the owner can manage this spot", nil)
	case errors.Is(err, commands.ErrSpotNotFound), errors.Is(err, queries.ErrSpotNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Spot not found", nil)
	case errors.Is(err, commands.ErrWindowHasBookings):
		httperr.AbortWithError(c, http.StatusConflict, err, "Active bookings fall outside the new availability window", nil)
	case errors.Is(err, commands.ErrSpotBusy):
		httperr.AbortWithError(c, http.StatusConflict, err, "Spot is busy, try again", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}

func parseSearchFilters(c *gin.Context) (queries.SpotSearchFilters, error) {
	var f queries.SpotSearchFilters
	if v := c.Query("max_price_cents"); v != "" {
		iv, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, err
		}
		f.MaxPriceCents = &iv
	}
	if v := c.Query("vehicle_size"); v != "" {
		f.VehicleSize = &v
	}
	if v := c.Query("start_time"); v != "" {
		t, err := parseRFC3339(v)
		if err != nil {
			return f, err
		}
		f.SlotStart = &t
	}
	if v := c.Query("end_time"); v != "" {
		t, err := parseRFC3339(v)
		if err != nil {
			return f, err
		}
		f.SlotEnd = &t
	}
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			f.Limit = int32(queries.ValidateLimit(iv))
		}
	}
	if v := c.Query("offset"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil && iv > 0 {
			f.Offset = int32(iv)
		}
	}
	return f, nil
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
