package shared

import (
	"context"

	"github.com/google/uuid"
)

type ZoneBroadcast struct {
	ZoneID     uuid.UUID
	Name       string
	ZoneType   string
	TotalSlots int
}

type BookingBroadcast struct {
	BookingID uuid.UUID
	ZoneID    uuid.UUID
	UserID    uuid.UUID
	Status    string
	Date      string
}

type NotificationBroadcast struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Type    string
}

// EventPublisher fans committed state changes out to connected observers.
// Implementations must not block the caller; publishing happens after commit
// and a slow observer must never hold up a booking.
type EventPublisher interface {
	PublishZoneUpdate(zoneID uuid.UUID, availableSlots int)
	PublishZoneCreated(z ZoneBroadcast)
	PublishZoneDeleted(zoneID uuid.UUID)
	PublishBookingCreated(b BookingBroadcast)
	PublishBookingCancelled(bookingID, zoneID uuid.UUID)
	PublishNotification(n NotificationBroadcast)
}

// PushSender forwards a user notification to an external delivery channel.
// Best effort: callers log failures and move on.
type PushSender interface {
	Send(ctx context.Context, userID uuid.UUID, title, message, kind string) error
}
