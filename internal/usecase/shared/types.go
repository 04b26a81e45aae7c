package shared

import (
	"time"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/domain/event"
	"campus-parking/internal/domain/notification"
	"campus-parking/internal/domain/user"
	"campus-parking/internal/domain/zone"

	"github.com/google/uuid"
)

type ZoneSnapshot struct {
	ID         uuid.UUID
	Name       string
	ZoneType   zone.Type
	TotalSlots int
	Location   string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *ZoneSnapshot) ToEntity() *zone.Zone {
	return zone.Reconstruct(s.ID, s.Name, s.ZoneType, s.TotalSlots, s.Location, s.Active, s.CreatedAt, s.UpdatedAt)
}

type BookingSnapshot struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ZoneID        uuid.UUID
	Date          time.Time
	Duration      int
	Status        booking.Status
	QRCode        string
	VehicleNumber string
	StartTime     time.Time
	EndTime       time.Time
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
	Violations    []booking.ViolationKind
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *BookingSnapshot) ToEntity() *booking.Booking {
	return booking.Reconstruct(
		s.ID, s.UserID, s.ZoneID,
		s.Date, s.Duration, s.Status,
		s.QRCode, s.VehicleNumber,
		s.StartTime, s.EndTime,
		s.CheckInTime, s.CheckOutTime,
		s.Violations,
		s.CreatedAt, s.UpdatedAt,
	)
}

type EventSnapshot struct {
	ID             uuid.UUID
	ZoneID         uuid.UUID
	Name           string
	Date           time.Time
	StartTime      time.Time
	EndTime        time.Time
	AllocatedSlots int
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s *EventSnapshot) ToEntity() *event.Event {
	return event.Reconstruct(s.ID, s.ZoneID, s.Name, s.Date, s.StartTime, s.EndTime, s.AllocatedSlots, s.CreatedBy, s.CreatedAt, s.UpdatedAt)
}

type NotificationSnapshot struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BookingID *uuid.UUID
	Title     string
	Message   string
	Type      notification.Type
	IsRead    bool
	CreatedAt time.Time
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         user.Role
}
