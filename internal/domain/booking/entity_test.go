//go:build unit

package booking_test

import (
	"testing"
	"time"

	"campus-parking/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dayStartHour     = 8
	maxDurationHours = 12
)

var now = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func newBooking(t *testing.T, mutate func(c *bookingCase)) (*booking.Booking, error) {
	t.Helper()
	c := &bookingCase{
		date:          now.Add(24 * time.Hour),
		duration:      4,
		vehicleNumber: "abc-1234",
	}
	if mutate != nil {
		mutate(c)
	}
	return booking.NewBooking(
		uuid.New(), uuid.New(),
		c.date, c.duration, c.vehicleNumber, "PKG-token",
		dayStartHour, maxDurationHours, now,
	)
}

type bookingCase struct {
	date          time.Time
	duration      int
	vehicleNumber string
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusActive, b.Status())
		assert.Equal(t, "ABC-1234", b.VehicleNumber(), "vehicle number is normalized to upper case")
		assert.Equal(t, booking.StartOfDay(now.Add(24*time.Hour)), b.Date())

		wantStart := b.Date().Add(dayStartHour * time.Hour)
		assert.Equal(t, wantStart, b.StartTime())
		assert.Equal(t, wantStart.Add(4*time.Hour), b.EndTime())
		assert.Nil(t, b.CheckInTime())
		assert.Empty(t, b.Violations())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(c *bookingCase)
			errIs  error
		}{
			{
				name:   "duration below minimum",
				mutate: func(c *bookingCase) { c.duration = 0 },
				errIs:  booking.ErrInvalidDuration,
			},
			{
				name:   "duration at maximum",
				mutate: func(c *bookingCase) { c.duration = maxDurationHours },
			},
			{
				name:   "duration above maximum",
				mutate: func(c *bookingCase) { c.duration = maxDurationHours + 1 },
				errIs:  booking.ErrInvalidDuration,
			},
			{
				name:   "empty vehicle number",
				mutate: func(c *bookingCase) { c.vehicleNumber = "" },
				errIs:  booking.ErrEmptyVehicleNumber,
			},
			{
				name:   "whitespace only vehicle number",
				mutate: func(c *bookingCase) { c.vehicleNumber = "   " },
				errIs:  booking.ErrEmptyVehicleNumber,
			},
			{
				name:   "date in the past",
				mutate: func(c *bookingCase) { c.date = now.Add(-24 * time.Hour) },
				errIs:  booking.ErrDateInPast,
			},
			{
				name: "today is not in the past",
				// Earlier clock time on the same calendar day still books.
				mutate: func(c *bookingCase) { c.date = now.Add(-time.Hour) },
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				b, err := newBooking(t, tc.mutate)
				if tc.errIs != nil {
					require.ErrorIs(t, err, tc.errIs)
					assert.Nil(t, b)
					return
				}
				require.NoError(t, err)
				require.NotNil(t, b)
			})
		}
	})
}

func TestBookingTransitions(t *testing.T) {
	later := now.Add(time.Hour)

	t.Run("check in from active", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)

		require.NoError(t, b.CheckIn(later))
		assert.Equal(t, booking.StatusCheckedIn, b.Status())
		require.NotNil(t, b.CheckInTime())
		assert.Equal(t, later, *b.CheckInTime())
	})

	t.Run("check in twice fails", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)

		require.NoError(t, b.CheckIn(later))
		assert.ErrorIs(t, b.CheckIn(later), booking.ErrNotActive)
	})

	t.Run("check out completes a checked-in booking", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)

		require.NoError(t, b.CheckIn(later))
		require.NoError(t, b.CheckOut(later.Add(time.Hour)))
		assert.Equal(t, booking.StatusCompleted, b.Status())
		require.NotNil(t, b.CheckOutTime())
	})

	t.Run("check out without check in fails", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)

		assert.ErrorIs(t, b.CheckOut(later), booking.ErrNotCheckedIn)
	})

	t.Run("cancel active booking", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)

		require.NoError(t, b.Cancel(later))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("cancel checked-in booking", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)

		require.NoError(t, b.CheckIn(later))
		require.NoError(t, b.Cancel(later))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("cancel is rejected from every terminal status", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)

		require.NoError(t, b.Cancel(later))
		assert.ErrorIs(t, b.Cancel(later), booking.ErrTerminalStatus)
	})

	t.Run("cancel after completion fails", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)

		require.NoError(t, b.CheckIn(later))
		require.NoError(t, b.CheckOut(later))
		assert.ErrorIs(t, b.Cancel(later), booking.ErrTerminalStatus)
	})
}

func TestBookingExpire(t *testing.T) {
	later := now.Add(time.Hour)

	t.Run("expiring an active booking records a no-show", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)

		kind, err := b.Expire(later)
		require.NoError(t, err)
		assert.Equal(t, booking.ViolationNoShow, kind)
		assert.Equal(t, booking.StatusExpired, b.Status())
		assert.Equal(t, []booking.ViolationKind{booking.ViolationNoShow}, b.Violations())
	})

	t.Run("expiring a checked-in booking records a missed checkout", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)
		require.NoError(t, b.CheckIn(later))

		kind, err := b.Expire(later.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, booking.ViolationNoCheckout, kind)
		assert.Equal(t, booking.StatusExpired, b.Status())
	})

	t.Run("cancelled booking cannot expire", func(t *testing.T) {
		b, err := newBooking(t, nil)
		require.NoError(t, err)
		require.NoError(t, b.Cancel(later))

		_, err = b.Expire(later)
		assert.ErrorIs(t, err, booking.ErrNotExpirable)
	})
}

func TestBookingIsOverdue(t *testing.T) {
	b, err := newBooking(t, nil)
	require.NoError(t, err)

	assert.False(t, b.IsOverdue(b.EndTime()), "end time itself is not overdue")
	assert.True(t, b.IsOverdue(b.EndTime().Add(time.Second)))

	require.NoError(t, b.Cancel(now))
	assert.False(t, b.IsOverdue(b.EndTime().Add(time.Hour)), "cancelled bookings hold no slot")
}

func TestStatus(t *testing.T) {
	assert.True(t, booking.StatusActive.CountsAgainstCapacity())
	assert.True(t, booking.StatusCheckedIn.CountsAgainstCapacity())
	assert.False(t, booking.StatusCompleted.CountsAgainstCapacity())
	assert.False(t, booking.StatusCancelled.CountsAgainstCapacity())
	assert.False(t, booking.StatusExpired.CountsAgainstCapacity())

	assert.True(t, booking.StatusCompleted.IsTerminal())
	assert.True(t, booking.StatusCancelled.IsTerminal())
	assert.True(t, booking.StatusExpired.IsTerminal())
	assert.False(t, booking.StatusActive.IsTerminal())
	assert.False(t, booking.StatusCheckedIn.IsTerminal())

	assert.False(t, booking.Status("unknown").IsValid())
	assert.True(t, booking.StatusActive.IsValid())
}
