package api

import (
	"context"
	"net/http"
	"time"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/domain/user"
	reqdto "campus-parking/internal/handler/dto/request"
	"campus-parking/internal/handler/middleware"
	"campus-parking/internal/usecase/commands"
	"campus-parking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Reserve a slot in a zone for one date
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} queries.BookingView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	view, err := h.bookingCommands.Reserve(c.Request.Context(), req, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary List my bookings
// @Description List the caller's bookings, optionally filtered
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Param from query string false "Earliest date (YYYY-MM-DD)"
// @Param to query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {array} queries.BookingView
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, _, ok := requireIdentity(c)
	if !ok {
		return
	}
	filter, err := bookingFilterQuery(c)
	if err != nil {
		badRequest(c, err, "Invalid filter")
		return
	}

	bookings, err := h.bookingQueries.ListMyBookings(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// @Summary Get booking
// @Description Get one booking; owner or admin only
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid booking ID")
		return
	}

	view, err := h.bookingQueries.GetBooking(c.Request.Context(), id, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Cancel booking
// @Description Cancel a booking and free its slot
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.bookingCommands.Cancel)
}

// @Summary Check in
// @Description Mark arrival for an active booking
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/check-in [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.bookingCommands.CheckIn)
}

// @Summary Check out
// @Description Complete a checked-in booking and free its slot
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/check-out [post]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.bookingCommands.CheckOut)
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, bookingID, userID uuid.UUID, role user.Role) error) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid booking ID")
		return
	}

	if err := op(c.Request.Context(), id, userID, role); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func requireIdentity(c *gin.Context) (uuid.UUID, user.Role, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, "", false
	}
	return userID, role, true
}

func bookingFilterQuery(c *gin.Context) (queries.BookingFilter, error) {
	var filter queries.BookingFilter

	if raw := c.Query("status"); raw != "" {
		status := booking.Status(raw)
		filter.Status = &status
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		filter.To = &t
	}
	return filter, nil
}
