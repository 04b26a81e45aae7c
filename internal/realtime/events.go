// Package realtime fans committed state changes out to websocket observers.
// Observers get change pushes only; they refetch over the REST surface when
// they need full state.
package realtime

import "github.com/google/uuid"

const (
	MessageZoneUpdate       = "zone_update"
	MessageZoneCreated      = "zone_created"
	MessageZoneDeleted      = "zone_deleted"
	MessageBookingCreated   = "booking_created"
	MessageBookingCancelled = "booking_cancelled"
	MessageNotification     = "notification"
)

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type ZoneUpdatePayload struct {
	ZoneID         uuid.UUID `json:"zone_id"`
	AvailableSlots int       `json:"available_slots"`
}

type ZoneCreatedPayload struct {
	ZoneID     uuid.UUID `json:"zone_id"`
	Name       string    `json:"name"`
	ZoneType   string    `json:"zone_type"`
	TotalSlots int       `json:"total_slots"`
}

type ZoneDeletedPayload struct {
	ZoneID uuid.UUID `json:"zone_id"`
}

type BookingCreatedPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
	ZoneID    uuid.UUID `json:"zone_id"`
	Status    string    `json:"status"`
	Date      string    `json:"date"`
}

type BookingCancelledPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
	ZoneID    uuid.UUID `json:"zone_id"`
}

type NotificationPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"notification_type"`
}
