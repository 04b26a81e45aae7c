package api

import (
	"errors"
	"net/http"

	"campus-parking/internal/handler/httperr"
	"campus-parking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	sentinel error
	status   int
	message  string
}

var errorMappings = []errorMapping{
	{errs.ErrZoneNotFound, http.StatusNotFound, "Zone not found"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrEventNotFound, http.StatusNotFound, "Event not found"},
	{errs.ErrNotificationNotFound, http.StatusNotFound, "Notification not found"},
	{errs.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{errs.ErrNoSlotsAvailable, http.StatusConflict, "No slots available"},
	{errs.ErrDuplicateBooking, http.StatusConflict, "You already hold a slot in this zone for that date"},
	{errs.ErrZoneInUse, http.StatusConflict, "Zone has active bookings"},
	{errs.ErrAlreadyCancelled, http.StatusConflict, "Booking is already cancelled"},
	{errs.ErrEventOverAllocated, http.StatusConflict, "Event allocation exceeds zone capacity"},
	{errs.ErrConflict, http.StatusConflict, "Conflicting concurrent update, please retry"},
	{errs.ErrInvalidTransition, http.StatusUnprocessableEntity, "Operation not allowed in the booking's current status"},
	{errs.ErrCheckInRequired, http.StatusUnprocessableEntity, "Check-in required before check-out"},
	{errs.ErrDomainValidation, http.StatusUnprocessableEntity, "Invalid request data"},
	{errs.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{errs.ErrAccessDenied, http.StatusForbidden, "Access denied"},
}

// respondError translates usecase sentinels into the HTTP error envelope.
// Anything unmapped is an internal error; details stay out of the response.
func respondError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func badRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}
