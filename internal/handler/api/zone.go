package api

import (
	"net/http"
	"time"

	reqdto "campus-parking/internal/handler/dto/request"
	resdto "campus-parking/internal/handler/dto/response"
	"campus-parking/internal/usecase/commands"
	"campus-parking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ZoneHandler struct {
	zoneCommands   commands.ZoneCommands
	zoneQueries    queries.ZoneQueries
	bookingQueries queries.BookingQueries
}

func NewZoneHandler(
	zoneCommands commands.ZoneCommands,
	zoneQueries queries.ZoneQueries,
	bookingQueries queries.BookingQueries,
) *ZoneHandler {
	return &ZoneHandler{
		zoneCommands:   zoneCommands,
		zoneQueries:    zoneQueries,
		bookingQueries: bookingQueries,
	}
}

// @Summary List zones
// @Description List active zones with availability for a date (defaults to today)
// @Tags zones
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {array} queries.ZoneView
// @Failure 400 {object} httperr.Response
// @Router /zones [get]
func (h *ZoneHandler) ListZones(c *gin.Context) {
	date, err := dateQuery(c)
	if err != nil {
		badRequest(c, err, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	zones, err := h.zoneQueries.ListZones(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, zones)
}

// @Summary Get zone
// @Description Get one zone with availability for a date (defaults to today)
// @Tags zones
// @Produce json
// @Param id path string true "Zone ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} queries.ZoneView
// @Failure 404 {object} httperr.Response
// @Router /zones/{id} [get]
func (h *ZoneHandler) GetZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid zone ID")
		return
	}
	date, err := dateQuery(c)
	if err != nil {
		badRequest(c, err, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	z, err := h.zoneQueries.GetZone(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, z)
}

// @Summary Zone availability
// @Description Free slot count for a zone on a date (defaults to today)
// @Tags zones
// @Produce json
// @Param id path string true "Zone ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 404 {object} httperr.Response
// @Router /zones/{id}/availability [get]
func (h *ZoneHandler) GetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid zone ID")
		return
	}
	date, err := dateQuery(c)
	if err != nil {
		badRequest(c, err, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	available, err := h.zoneQueries.AvailableSlots(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		ZoneID:         id,
		Date:           date.Format(dateLayout),
		AvailableSlots: available,
	})
}

// @Summary List zone bookings
// @Description List bookings in a zone, admin only
// @Tags zones
// @Security BearerAuth
// @Produce json
// @Param id path string true "Zone ID"
// @Param status query string false "Status filter"
// @Success 200 {array} queries.BookingView
// @Failure 403 {object} httperr.Response
// @Router /zones/{id}/bookings [get]
func (h *ZoneHandler) ListZoneBookings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid zone ID")
		return
	}
	filter, err := bookingFilterQuery(c)
	if err != nil {
		badRequest(c, err, "Invalid filter")
		return
	}

	bookings, err := h.bookingQueries.ListZoneBookings(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// @Summary Create zone
// @Description Create a parking zone, admin only
// @Tags zones
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateZoneRequest true "Zone"
// @Success 201 {object} queries.ZoneView
// @Failure 422 {object} httperr.Response
// @Router /zones [post]
func (h *ZoneHandler) CreateZone(c *gin.Context) {
	var req reqdto.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	z, err := h.zoneCommands.CreateZone(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, z)
}

// @Summary Update zone
// @Description Patch a zone, admin only
// @Tags zones
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Zone ID"
// @Param request body reqdto.UpdateZoneRequest true "Patch"
// @Success 200 {object} queries.ZoneView
// @Failure 404 {object} httperr.Response
// @Router /zones/{id} [patch]
func (h *ZoneHandler) UpdateZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid zone ID")
		return
	}
	var req reqdto.UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	z, err := h.zoneCommands.UpdateZone(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, z)
}

// @Summary Delete zone
// @Description Delete a zone without active bookings, admin only
// @Tags zones
// @Security BearerAuth
// @Param id path string true "Zone ID"
// @Success 204 "No Content"
// @Failure 409 {object} httperr.Response
// @Router /zones/{id} [delete]
func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid zone ID")
		return
	}

	if err := h.zoneCommands.DeleteZone(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func dateQuery(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(dateLayout, raw)
}
