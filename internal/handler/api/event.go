package api

import (
	"net/http"

	reqdto "campus-parking/internal/handler/dto/request"
	resdto "campus-parking/internal/handler/dto/response"
	"campus-parking/internal/handler/middleware"
	"campus-parking/internal/usecase/commands"
	"campus-parking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandler struct {
	eventCommands commands.EventCommands
	eventQueries  queries.EventQueries
}

func NewEventHandler(eventCommands commands.EventCommands, eventQueries queries.EventQueries) *EventHandler {
	return &EventHandler{
		eventCommands: eventCommands,
		eventQueries:  eventQueries,
	}
}

// @Summary List events
// @Description List capacity-reserving events, optionally for one zone
// @Tags events
// @Produce json
// @Param zone_id query string false "Zone ID"
// @Success 200 {array} queries.EventView
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	var zoneID *uuid.UUID
	if raw := c.Query("zone_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, err, "Invalid zone ID")
			return
		}
		zoneID = &id
	}

	events, err := h.eventQueries.ListEvents(c.Request.Context(), zoneID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// @Summary Create event
// @Description Reserve zone capacity for an event, admin only
// @Tags events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateEventRequest true "Event"
// @Success 201 {object} resdto.IDResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req reqdto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	id, err := h.eventCommands.CreateEvent(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary Update event
// @Description Patch an event, admin only
// @Tags events
// @Security BearerAuth
// @Accept json
// @Param id path string true "Event ID"
// @Param request body reqdto.UpdateEventRequest true "Patch"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /events/{id} [patch]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid event ID")
		return
	}

	var req reqdto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	if err := h.eventCommands.UpdateEvent(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete event
// @Description Delete an event and release its allocation, admin only
// @Tags events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid event ID")
		return
	}

	if err := h.eventCommands.DeleteEvent(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
