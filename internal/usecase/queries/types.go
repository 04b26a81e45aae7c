package queries

import (
	"time"

	"campus-parking/internal/domain/booking"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ZoneView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ZoneType       string    `json:"zone_type"`
	TotalSlots     int       `json:"total_slots"`
	AvailableSlots int       `json:"available_slots"`
	Location       string    `json:"location"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BookingView struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	ZoneID        uuid.UUID  `json:"zone_id"`
	ZoneName      string     `json:"zone_name"`
	Date          time.Time  `json:"date"`
	Duration      int        `json:"duration_hours"`
	Status        string     `json:"status"`
	QRCode        string     `json:"qr_code"`
	VehicleNumber string     `json:"vehicle_number"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	CheckInTime   *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime  *time.Time `json:"check_out_time,omitempty"`
	Violations    []string   `json:"violations,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type EventView struct {
	ID             uuid.UUID `json:"id"`
	ZoneID         uuid.UUID `json:"zone_id"`
	ZoneName       string    `json:"zone_name"`
	Name           string    `json:"name"`
	Date           time.Time `json:"date"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	AllocatedSlots int       `json:"allocated_slots"`
	CreatedAt      time.Time `json:"created_at"`
}

type NotificationView struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

type UserView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

// BookingFilter narrows booking lists; nil fields are not applied.
type BookingFilter struct {
	Status *booking.Status
	From   *time.Time
	To     *time.Time
}
