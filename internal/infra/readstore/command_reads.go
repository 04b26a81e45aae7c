package readstore

import (
	"context"
	"errors"
	"time"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/infra"
	"campus-parking/internal/infra/db"
	"campus-parking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads serves the write side's in-transaction reads. Run on the same
// DBTX as the write it gates, or the capacity check is racy.
type CommandReads struct{}

func NewCommandReads() *CommandReads {
	return &CommandReads{}
}

const zoneSnapshotColumns = `id, name, zone_type, total_slots, location, active, created_at, updated_at`

func (r *CommandReads) ZoneForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.ZoneSnapshot, error) {
	query := `SELECT ` + zoneSnapshotColumns + ` FROM zones WHERE id = $1 FOR UPDATE`
	return scanZoneSnapshot(dbtx.QueryRow(ctx, query, id))
}

func (r *CommandReads) ZoneByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.ZoneSnapshot, error) {
	query := `SELECT ` + zoneSnapshotColumns + ` FROM zones WHERE id = $1`
	return scanZoneSnapshot(dbtx.QueryRow(ctx, query, id))
}

func (r *CommandReads) ZoneHasSlotHolders(ctx context.Context, dbtx db.DBTX, zoneID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE zone_id = $1 AND status IN ('active', 'checked-in')
		)`

	var exists bool
	if err := dbtx.QueryRow(ctx, query, zoneID).Scan(&exists); err != nil {
		return false, infra.Translate("failed to check zone bookings", err)
	}
	return exists, nil
}

const bookingSnapshotColumns = `
	id, user_id, zone_id, date, duration_hours, status,
	qr_code, vehicle_number, start_time, end_time,
	check_in_time, check_out_time, violations, created_at, updated_at`

func (r *CommandReads) BookingForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.BookingSnapshot, error) {
	query := `SELECT ` + bookingSnapshotColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return scanBookingSnapshot(dbtx.QueryRow(ctx, query, id))
}

func (r *CommandReads) CountSlotHolders(ctx context.Context, dbtx db.DBTX, zoneID uuid.UUID, from, to time.Time) (int, error) {
	const query = `
		SELECT COUNT(*) FROM bookings
		WHERE zone_id = $1
		  AND date >= $2 AND date <= $3
		  AND status IN ('active', 'checked-in')`

	var count int
	if err := dbtx.QueryRow(ctx, query, zoneID, from, to).Scan(&count); err != nil {
		return 0, infra.Translate("failed to count slot holders", err)
	}
	return count, nil
}

func (r *CommandReads) UserHoldsSlot(ctx context.Context, dbtx db.DBTX, userID, zoneID uuid.UUID, from, to time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND zone_id = $2
			  AND date >= $3 AND date <= $4
			  AND status IN ('active', 'checked-in')
		)`

	var exists bool
	if err := dbtx.QueryRow(ctx, query, userID, zoneID, from, to).Scan(&exists); err != nil {
		return false, infra.Translate("failed to check duplicate booking", err)
	}
	return exists, nil
}

// OverdueBookings locks candidate rows for the sweeper's transaction.
// SKIP LOCKED keeps concurrent sweeps (or user cancellations) from stalling
// each other.
func (r *CommandReads) OverdueBookings(ctx context.Context, dbtx db.DBTX, before time.Time, limit int) ([]*shared.BookingSnapshot, error) {
	query := `
		SELECT ` + bookingSnapshotColumns + `
		FROM bookings
		WHERE status IN ('active', 'checked-in') AND end_time < $1
		ORDER BY end_time
		LIMIT $2
		FOR UPDATE SKIP LOCKED`

	rows, err := dbtx.Query(ctx, query, before, limit)
	if err != nil {
		return nil, infra.Translate("failed to list overdue bookings", err)
	}
	defer rows.Close()

	return scanBookingSnapshots(rows)
}

func (r *CommandReads) UpcomingBookings(ctx context.Context, dbtx db.DBTX, from, to time.Time) ([]*shared.BookingSnapshot, error) {
	query := `
		SELECT ` + bookingSnapshotColumns + `
		FROM bookings
		WHERE status IN ('active', 'checked-in')
		  AND (start_time BETWEEN $1 AND $2 OR end_time BETWEEN $1 AND $2)
		ORDER BY start_time`

	rows, err := dbtx.Query(ctx, query, from, to)
	if err != nil {
		return nil, infra.Translate("failed to list upcoming bookings", err)
	}
	defer rows.Close()

	return scanBookingSnapshots(rows)
}

func (r *CommandReads) EventByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.EventSnapshot, error) {
	const query = `
		SELECT id, zone_id, name, date, start_time, end_time, allocated_slots, created_by, created_at, updated_at
		FROM events WHERE id = $1`

	var s shared.EventSnapshot
	err := dbtx.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ZoneID, &s.Name, &s.Date, &s.StartTime, &s.EndTime,
		&s.AllocatedSlots, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, infra.Translate("failed to find event", err)
	}
	return &s, nil
}

// Sums allocations over all of the zone's events dated from or later,
// regardless of the day being queried. Booking counts are per-day; event
// deductions are not.
func (r *CommandReads) SumEventAllocations(ctx context.Context, dbtx db.DBTX, zoneID uuid.UUID, from time.Time) (int, error) {
	const query = `
		SELECT COALESCE(SUM(allocated_slots), 0) FROM events
		WHERE zone_id = $1 AND date >= $2`

	var sum int
	if err := dbtx.QueryRow(ctx, query, zoneID, from).Scan(&sum); err != nil {
		return 0, infra.Translate("failed to sum event allocations", err)
	}
	return sum, nil
}

func (r *CommandReads) NotificationByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.NotificationSnapshot, error) {
	const query = `
		SELECT id, user_id, booking_id, title, message, type, is_read, created_at
		FROM notifications WHERE id = $1`

	var s shared.NotificationSnapshot
	var nType string
	err := dbtx.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.BookingID, &s.Title, &s.Message, &nType, &s.IsRead, &s.CreatedAt,
	)
	if err != nil {
		return nil, infra.Translate("failed to find notification", err)
	}
	s.Type = notificationType(nType)
	return &s, nil
}

func (r *CommandReads) HasNotificationSince(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID, title string, since time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE booking_id = $1 AND title = $2 AND created_at >= $3
		)`

	var exists bool
	if err := dbtx.QueryRow(ctx, query, bookingID, title, since).Scan(&exists); err != nil {
		return false, infra.Translate("failed to check recent notification", err)
	}
	return exists, nil
}

func (r *CommandReads) UserByEmail(ctx context.Context, dbtx db.DBTX, email string) (*shared.UserSnapshot, error) {
	const query = `SELECT id, email, name, password_hash, role FROM users WHERE email = $1`
	return scanUserSnapshot(dbtx.QueryRow(ctx, query, email))
}

func (r *CommandReads) UserByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.UserSnapshot, error) {
	const query = `SELECT id, email, name, password_hash, role FROM users WHERE id = $1`
	return scanUserSnapshot(dbtx.QueryRow(ctx, query, id))
}

func scanZoneSnapshot(row pgx.Row) (*shared.ZoneSnapshot, error) {
	var s shared.ZoneSnapshot
	var zoneType string
	err := row.Scan(&s.ID, &s.Name, &zoneType, &s.TotalSlots, &s.Location, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, infra.Translate("failed to find zone", err)
	}
	s.ZoneType = zoneTypeFromString(zoneType)
	return &s, nil
}

func scanBookingSnapshot(row pgx.Row) (*shared.BookingSnapshot, error) {
	s, err := scanBookingRow(row)
	if err != nil {
		return nil, infra.Translate("failed to find booking", err)
	}
	return s, nil
}

func scanBookingSnapshots(rows pgx.Rows) ([]*shared.BookingSnapshot, error) {
	var out []*shared.BookingSnapshot
	for rows.Next() {
		s, err := scanBookingRow(rows)
		if err != nil {
			return nil, infra.Translate("failed to scan booking row", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.Translate("failed to iterate booking rows", err)
	}
	return out, nil
}

func scanBookingRow(row pgx.Row) (*shared.BookingSnapshot, error) {
	var s shared.BookingSnapshot
	var status string
	var violations []string
	err := row.Scan(
		&s.ID, &s.UserID, &s.ZoneID, &s.Date, &s.Duration, &status,
		&s.QRCode, &s.VehicleNumber, &s.StartTime, &s.EndTime,
		&s.CheckInTime, &s.CheckOutTime, &violations, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = booking.Status(status)
	s.Violations = violationKinds(violations)
	return &s, nil
}

func scanUserSnapshot(row pgx.Row) (*shared.UserSnapshot, error) {
	var s shared.UserSnapshot
	var role string
	err := row.Scan(&s.ID, &s.Email, &s.Name, &s.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "user not found", err)
		}
		return nil, infra.Translate("failed to find user", err)
	}
	s.Role = userRole(role)
	return &s, nil
}
