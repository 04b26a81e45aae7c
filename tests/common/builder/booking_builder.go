//go:build unit || e2e

package builder

import (
	"time"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ZoneID        uuid.UUID
	Date          time.Time
	Duration      int
	Status        booking.Status
	QRCode        string
	VehicleNumber string
	StartHour     int
	CheckInTime   *time.Time
	CreatedAt     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		ZoneID:        uuid.New(),
		Date:          time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Duration:      4,
		Status:        booking.StatusActive,
		QRCode:        "PKG-" + uuid.NewString()[:12],
		VehicleNumber: "ABC-1234",
		StartHour:     8,
		CreatedAt:     time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) WithUser(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithZone(id uuid.UUID) *BookingBuilder {
	b.ZoneID = id
	return b
}

func (b *BookingBuilder) WithDate(date time.Time) *BookingBuilder {
	b.Date = booking.StartOfDay(date)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) CheckedInAt(t time.Time) *BookingBuilder {
	b.Status = booking.StatusCheckedIn
	b.CheckInTime = &t
	return b
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	start := b.Date.Add(time.Duration(b.StartHour) * time.Hour)
	return &shared.BookingSnapshot{
		ID:            b.ID,
		UserID:        b.UserID,
		ZoneID:        b.ZoneID,
		Date:          b.Date,
		Duration:      b.Duration,
		Status:        b.Status,
		QRCode:        b.QRCode,
		VehicleNumber: b.VehicleNumber,
		StartTime:     start,
		EndTime:       start.Add(time.Duration(b.Duration) * time.Hour),
		CheckInTime:   b.CheckInTime,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.CreatedAt,
	}
}
