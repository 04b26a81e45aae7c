package shared

import (
	"context"
	"time"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/domain/event"
	"campus-parking/internal/domain/notification"
	"campus-parking/internal/domain/zone"
	"campus-parking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Zones() ZoneRepository
	Events() EventRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type BookingRepository interface {
	Create(ctx context.Context, db db.DBTX, b *booking.Booking) (uuid.UUID, error)
	Update(ctx context.Context, db db.DBTX, b *booking.Booking) error
}

type ZoneRepository interface {
	Create(ctx context.Context, db db.DBTX, z *zone.Zone) (uuid.UUID, error)
	Update(ctx context.Context, db db.DBTX, z *zone.Zone) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
}

type EventRepository interface {
	Create(ctx context.Context, db db.DBTX, e *event.Event) (uuid.UUID, error)
	Update(ctx context.Context, db db.DBTX, e *event.Event) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
}

type NotificationRepository interface {
	Create(ctx context.Context, db db.DBTX, n *notification.Notification) (uuid.UUID, error)
	MarkRead(ctx context.Context, db db.DBTX, id uuid.UUID) error
	MarkAllRead(ctx context.Context, db db.DBTX, userID uuid.UUID) error
}

// CommandReads are the in-transaction reads the write side depends on. The
// capacity-gating reads (ZoneForUpdate, CountSlotHolders) must run on the same
// transaction as the insert they gate.
type CommandReads interface {
	// ZoneForUpdate locks the zone row, serializing concurrent writers on the
	// same zone for the remainder of the transaction.
	ZoneForUpdate(ctx context.Context, db db.DBTX, id uuid.UUID) (*ZoneSnapshot, error)
	ZoneByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*ZoneSnapshot, error)
	ZoneHasSlotHolders(ctx context.Context, db db.DBTX, zoneID uuid.UUID) (bool, error)

	// BookingForUpdate locks the booking row, serializing concurrent status
	// changes to the same booking.
	BookingForUpdate(ctx context.Context, db db.DBTX, id uuid.UUID) (*BookingSnapshot, error)
	// CountSlotHolders counts active and checked-in bookings for the zone whose
	// date falls within [from, to].
	CountSlotHolders(ctx context.Context, db db.DBTX, zoneID uuid.UUID, from, to time.Time) (int, error)
	UserHoldsSlot(ctx context.Context, db db.DBTX, userID, zoneID uuid.UUID, from, to time.Time) (bool, error)
	OverdueBookings(ctx context.Context, db db.DBTX, before time.Time, limit int) ([]*BookingSnapshot, error)
	UpcomingBookings(ctx context.Context, db db.DBTX, from, to time.Time) ([]*BookingSnapshot, error)

	EventByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*EventSnapshot, error)
	// SumEventAllocations sums allocated slots over the zone's events dated
	// from or later, irrespective of the day being queried.
	SumEventAllocations(ctx context.Context, db db.DBTX, zoneID uuid.UUID, from time.Time) (int, error)

	NotificationByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*NotificationSnapshot, error)
	HasNotificationSince(ctx context.Context, db db.DBTX, bookingID uuid.UUID, title string, since time.Time) (bool, error)

	UserByEmail(ctx context.Context, db db.DBTX, email string) (*UserSnapshot, error)
	UserByID(ctx context.Context, db db.DBTX, id uuid.UUID) (*UserSnapshot, error)
}
