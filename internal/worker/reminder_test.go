//go:build unit

package worker_test

import (
	"context"
	"testing"
	"time"

	"campus-parking/internal/pkg/clock"
	"campus-parking/internal/pkg/config"
	"campus-parking/internal/pkg/metrics"
	"campus-parking/internal/worker"
	"campus-parking/tests/common/builder"
	"campus-parking/tests/common/fakes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type ReminderTestSuite struct {
	suite.Suite
	store     *fakes.Store
	publisher *fakes.Publisher
	push      *fakes.PushRecorder
	clock     *clock.MockClock
	metrics   *metrics.Metrics
	reminder  *worker.Reminder
}

func TestReminderSuite(t *testing.T) {
	suite.Run(t, new(ReminderTestSuite))
}

func (s *ReminderTestSuite) SetupTest() {
	s.store = fakes.NewStore()
	s.publisher = fakes.NewPublisher()
	s.push = fakes.NewPushRecorder()
	s.clock = clock.NewMockClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	s.metrics = metrics.NewWith(prometheus.NewRegistry(), "test")

	s.reminder = worker.NewReminder(
		fakes.NewUnitOfWork(s.store),
		s.publisher,
		s.push,
		s.metrics,
		config.NewTestConfig().Worker,
		s.clock,
	)
}

func (s *ReminderTestSuite) titles() []string {
	var out []string
	for _, n := range s.publisher.Notifications {
		out = append(out, n.Title)
	}
	return out
}

func (s *ReminderTestSuite) TestRemindOnce() {
	ctx := context.Background()

	// The default booking window is 08:00 to 12:00.
	tomorrow := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	s.Run("booking within a day gets a day-ahead nudge", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithDate(tomorrow)
		s.store.SeedBooking(b.BuildSnapshot())

		s.Require().NoError(s.reminder.RemindOnce(ctx))

		s.Equal([]string{"Booking Tomorrow"}, s.titles())
		s.Contains(s.store.NotificationTitles(b.UserID), "Booking Tomorrow")
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.RemindersSent))
	})

	s.Run("start nudge wins inside the final hour", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithDate(tomorrow)
		s.store.SeedBooking(b.BuildSnapshot())
		s.clock.Set(time.Date(2026, 9, 1, 7, 30, 0, 0, time.UTC))

		s.Require().NoError(s.reminder.RemindOnce(ctx))

		s.Equal([]string{"Booking Starts Soon"}, s.titles())
	})

	s.Run("checked-in booking near its end gets a checkout nudge", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithDate(tomorrow).
			CheckedInAt(time.Date(2026, 9, 1, 8, 5, 0, 0, time.UTC))
		s.store.SeedBooking(b.BuildSnapshot())
		s.clock.Set(time.Date(2026, 9, 1, 11, 50, 0, 0, time.UTC))

		s.Require().NoError(s.reminder.RemindOnce(ctx))

		s.Equal([]string{"Booking Ending Soon"}, s.titles())
	})

	s.Run("checked-in booking mid-window stays quiet", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithDate(tomorrow).
			CheckedInAt(time.Date(2026, 9, 1, 8, 5, 0, 0, time.UTC))
		s.store.SeedBooking(b.BuildSnapshot())
		s.clock.Set(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))

		s.Require().NoError(s.reminder.RemindOnce(ctx))

		s.Empty(s.publisher.Notifications)
	})

	s.Run("the same nudge never fires twice", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithDate(tomorrow)
		s.store.SeedBooking(b.BuildSnapshot())

		s.Require().NoError(s.reminder.RemindOnce(ctx))
		s.Require().NoError(s.reminder.RemindOnce(ctx))

		s.Equal([]string{"Booking Tomorrow"}, s.titles())
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.RemindersSent))
	})

	s.Run("a later nudge kind still fires after an earlier one", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithDate(tomorrow)
		s.store.SeedBooking(b.BuildSnapshot())

		s.Require().NoError(s.reminder.RemindOnce(ctx))
		s.clock.Set(time.Date(2026, 9, 1, 7, 30, 0, 0, time.UTC))
		s.Require().NoError(s.reminder.RemindOnce(ctx))

		s.Equal([]string{"Booking Tomorrow", "Booking Starts Soon"}, s.titles())
	})

	s.Run("bookings beyond the day lead are ignored", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithDate(time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC))
		s.store.SeedBooking(b.BuildSnapshot())

		s.Require().NoError(s.reminder.RemindOnce(ctx))

		s.Empty(s.publisher.Notifications)
	})
}
