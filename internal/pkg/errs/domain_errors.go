package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Zone errors
	ErrZoneNotFound = errors.New("zone not found")
	ErrZoneInUse    = errors.New("zone has active bookings")

	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNoSlotsAvailable  = errors.New("no slots available")
	ErrDuplicateBooking  = errors.New("duplicate booking")
	ErrAlreadyCancelled  = errors.New("booking already cancelled")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrCheckInRequired   = errors.New("check-in required before check-out")

	// Event errors
	ErrEventNotFound      = errors.New("event not found")
	ErrEventOverAllocated = errors.New("event allocation exceeds zone capacity")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Auth / access errors
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrConflict                = errors.New("conflicting concurrent update")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
