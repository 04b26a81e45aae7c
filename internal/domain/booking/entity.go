package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDuration    = errors.New("duration out of range")
	ErrDateInPast         = errors.New("booking date is in the past")
	ErrEmptyVehicleNumber = errors.New("vehicle number is required")
	ErrNotActive          = errors.New("booking is not active")
	ErrNotCheckedIn       = errors.New("booking is not checked in")
	ErrNotExpirable       = errors.New("booking cannot expire from its current status")
	ErrTerminalStatus     = errors.New("booking is in a terminal status")
)

type Booking struct {
	id            uuid.UUID
	userID        uuid.UUID
	zoneID        uuid.UUID
	date          time.Time
	duration      int
	status        Status
	qrCode        string
	vehicleNumber string
	startTime     time.Time
	endTime       time.Time
	checkInTime   *time.Time
	checkOutTime  *time.Time
	violations    []ViolationKind
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking builds an active claim for one calendar date. The booking window
// runs from dayStartHour on that date for duration hours.
func NewBooking(
	userID, zoneID uuid.UUID,
	date time.Time,
	durationHours int,
	vehicleNumber string,
	qrCode string,
	dayStartHour int,
	maxDurationHours int,
	now time.Time,
) (*Booking, error) {
	if durationHours < 1 || durationHours > maxDurationHours {
		return nil, ErrInvalidDuration
	}
	vehicleNumber = strings.ToUpper(strings.TrimSpace(vehicleNumber))
	if vehicleNumber == "" {
		return nil, ErrEmptyVehicleNumber
	}

	day := StartOfDay(date)
	if day.Before(StartOfDay(now)) {
		return nil, ErrDateInPast
	}

	start := day.Add(time.Duration(dayStartHour) * time.Hour)
	end := start.Add(time.Duration(durationHours) * time.Hour)

	return &Booking{
		id:            uuid.New(),
		userID:        userID,
		zoneID:        zoneID,
		date:          day,
		duration:      durationHours,
		status:        StatusActive,
		qrCode:        qrCode,
		vehicleNumber: vehicleNumber,
		startTime:     start,
		endTime:       end,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func Reconstruct(
	id, userID, zoneID uuid.UUID,
	date time.Time,
	duration int,
	status Status,
	qrCode, vehicleNumber string,
	startTime, endTime time.Time,
	checkInTime, checkOutTime *time.Time,
	violations []ViolationKind,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		userID:        userID,
		zoneID:        zoneID,
		date:          date,
		duration:      duration,
		status:        status,
		qrCode:        qrCode,
		vehicleNumber: vehicleNumber,
		startTime:     startTime,
		endTime:       endTime,
		checkInTime:   checkInTime,
		checkOutTime:  checkOutTime,
		violations:    violations,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// CheckIn is permitted from active only.
func (b *Booking) CheckIn(now time.Time) error {
	if b.status != StatusActive {
		return ErrNotActive
	}
	t := now
	b.checkInTime = &t
	b.status = StatusCheckedIn
	b.updatedAt = now
	return nil
}

// CheckOut completes a checked-in booking and frees its slot.
func (b *Booking) CheckOut(now time.Time) error {
	if b.checkInTime == nil {
		return ErrNotCheckedIn
	}
	if b.status != StatusCheckedIn {
		return ErrNotCheckedIn
	}
	t := now
	b.checkOutTime = &t
	b.status = StatusCompleted
	b.updatedAt = now
	return nil
}

// Cancel rejects terminal statuses rather than silently succeeding, so a
// double cancel can never double-free a slot.
func (b *Booking) Cancel(now time.Time) error {
	if b.status.IsTerminal() {
		return ErrTerminalStatus
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

// Expire closes out an overdue booking and records the violation the sweeper
// observed: no-show when it was never checked in, no-checkout otherwise.
func (b *Booking) Expire(now time.Time) (ViolationKind, error) {
	if !b.status.CountsAgainstCapacity() {
		return "", ErrNotExpirable
	}

	kind := ViolationNoShow
	if b.checkInTime != nil {
		kind = ViolationNoCheckout
	}
	b.violations = append(b.violations, kind)
	b.status = StatusExpired
	b.updatedAt = now
	return kind, nil
}

func (b *Booking) IsOverdue(now time.Time) bool {
	return b.status.CountsAgainstCapacity() && now.After(b.endTime)
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) UserID() uuid.UUID           { return b.userID }
func (b *Booking) ZoneID() uuid.UUID           { return b.zoneID }
func (b *Booking) Date() time.Time             { return b.date }
func (b *Booking) Duration() int               { return b.duration }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) QRCode() string              { return b.qrCode }
func (b *Booking) VehicleNumber() string       { return b.vehicleNumber }
func (b *Booking) StartTime() time.Time        { return b.startTime }
func (b *Booking) EndTime() time.Time          { return b.endTime }
func (b *Booking) CheckInTime() *time.Time     { return b.checkInTime }
func (b *Booking) CheckOutTime() *time.Time    { return b.checkOutTime }
func (b *Booking) Violations() []ViolationKind { return b.violations }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
