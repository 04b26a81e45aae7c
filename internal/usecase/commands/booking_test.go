//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"campus-parking/internal/domain/booking"
	"campus-parking/internal/domain/user"
	"campus-parking/internal/domain/zone"
	reqdto "campus-parking/internal/handler/dto/request"
	"campus-parking/internal/pkg/clock"
	"campus-parking/internal/pkg/config"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/usecase/commands"
	"campus-parking/tests/common/builder"
	"campus-parking/tests/common/fakes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	store     *fakes.Store
	publisher *fakes.Publisher
	push      *fakes.PushRecorder
	clock     *clock.MockClock
	commands  commands.BookingCommands

	userID uuid.UUID
	zoneID uuid.UUID
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.store = fakes.NewStore()
	s.publisher = fakes.NewPublisher()
	s.push = fakes.NewPushRecorder()
	s.clock = clock.NewMockClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	z := builder.NewZoneBuilder().WithTotalSlots(2)
	s.zoneID = z.ID
	s.store.SeedZone(z.BuildSnapshot())

	u := builder.NewUserBuilder()
	s.userID = u.ID
	s.store.SeedUser(u.BuildSnapshot())

	uow := fakes.NewUnitOfWork(s.store)
	s.commands = commands.NewBookingUseCase(
		uow,
		fakes.NewReads(s.store),
		fakes.NewBookingReadStore(s.store),
		s.publisher,
		s.push,
		config.NewTestConfig().Booking,
		s.clock,
	)
}

func (s *BookingCommandsTestSuite) reserveRequest() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ZoneID:        s.zoneID,
		Date:          "2026-09-01",
		DurationHours: 4,
		VehicleNumber: "abc-1234",
	}
}

func (s *BookingCommandsTestSuite) TestReserve() {
	ctx := context.Background()

	s.Run("success", func() {
		s.SetupTest()

		view, err := s.commands.Reserve(ctx, s.reserveRequest(), s.userID, user.RoleStudent)
		s.Require().NoError(err)
		s.Require().NotNil(view)

		s.Equal(booking.StatusActive.String(), view.Status)
		s.Equal("ABC-1234", view.VehicleNumber)
		s.Equal("North Lot", view.ZoneName)
		s.NotEmpty(view.QRCode)

		s.Require().Len(s.publisher.BookingsCreated, 1)
		s.Equal(view.ID, s.publisher.BookingsCreated[0].BookingID)

		last, ok := s.publisher.LastZoneUpdate()
		s.Require().True(ok)
		s.Equal(s.zoneID, last.ZoneID)
		s.Equal(1, last.AvailableSlots, "one of two slots is now held")

		s.Contains(s.store.NotificationTitles(s.userID), "Booking Confirmed")
		s.Require().Len(s.push.Calls, 1)
		s.Equal("Booking Confirmed", s.push.Calls[0].Title)
	})

	s.Run("unknown zone", func() {
		s.SetupTest()

		req := s.reserveRequest()
		req.ZoneID = uuid.New()
		_, err := s.commands.Reserve(ctx, req, s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrZoneNotFound)
	})

	s.Run("inactive zone is not bookable", func() {
		s.SetupTest()

		z := builder.NewZoneBuilder().Inactive()
		s.store.SeedZone(z.BuildSnapshot())

		req := s.reserveRequest()
		req.ZoneID = z.ID
		_, err := s.commands.Reserve(ctx, req, s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrZoneNotFound)
	})

	s.Run("role not permitted for zone type", func() {
		s.SetupTest()

		z := builder.NewZoneBuilder().WithType(zone.TypeStaff)
		s.store.SeedZone(z.BuildSnapshot())

		req := s.reserveRequest()
		req.ZoneID = z.ID
		_, err := s.commands.Reserve(ctx, req, s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrAccessDenied)
	})

	s.Run("admin may book any zone type", func() {
		s.SetupTest()

		z := builder.NewZoneBuilder().WithType(zone.TypeStaff)
		s.store.SeedZone(z.BuildSnapshot())

		req := s.reserveRequest()
		req.ZoneID = z.ID
		_, err := s.commands.Reserve(ctx, req, s.userID, user.RoleAdmin)
		s.NoError(err)
	})

	s.Run("malformed date", func() {
		s.SetupTest()

		req := s.reserveRequest()
		req.Date = "September 1st"
		_, err := s.commands.Reserve(ctx, req, s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrDomainValidation)
	})

	s.Run("duration beyond maximum", func() {
		s.SetupTest()

		req := s.reserveRequest()
		req.DurationHours = config.NewTestConfig().Booking.MaxDurationHours + 1
		_, err := s.commands.Reserve(ctx, req, s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrDomainValidation)
	})

	s.Run("one booking per user per zone per day", func() {
		s.SetupTest()

		_, err := s.commands.Reserve(ctx, s.reserveRequest(), s.userID, user.RoleStudent)
		s.Require().NoError(err)

		_, err = s.commands.Reserve(ctx, s.reserveRequest(), s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrDuplicateBooking)
	})

	s.Run("same user may book a different day", func() {
		s.SetupTest()

		_, err := s.commands.Reserve(ctx, s.reserveRequest(), s.userID, user.RoleStudent)
		s.Require().NoError(err)

		req := s.reserveRequest()
		req.Date = "2026-09-02"
		_, err = s.commands.Reserve(ctx, req, s.userID, user.RoleStudent)
		s.NoError(err)
	})

	s.Run("zone full", func() {
		s.SetupTest()

		date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 2; i++ {
			s.store.SeedBooking(builder.NewBookingBuilder().WithZone(s.zoneID).WithDate(date).BuildSnapshot())
		}

		_, err := s.commands.Reserve(ctx, s.reserveRequest(), s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrNoSlotsAvailable)
	})

	s.Run("event allocations reduce capacity", func() {
		s.SetupTest()

		date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		s.store.SeedBooking(builder.NewBookingBuilder().WithZone(s.zoneID).WithDate(date).BuildSnapshot())
		s.store.SeedEvent(builder.NewEventBuilder().WithZone(s.zoneID).WithDate(date).WithAllocatedSlots(1).BuildSnapshot())

		_, err := s.commands.Reserve(ctx, s.reserveRequest(), s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrNoSlotsAvailable)
	})

	s.Run("cancelled bookings free their slot", func() {
		s.SetupTest()

		date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 2; i++ {
			b := builder.NewBookingBuilder().WithZone(s.zoneID).WithDate(date).WithStatus(booking.StatusCancelled)
			s.store.SeedBooking(b.BuildSnapshot())
		}

		_, err := s.commands.Reserve(ctx, s.reserveRequest(), s.userID, user.RoleStudent)
		s.NoError(err)
	})

	s.Run("entry token collision retries with a fresh token", func() {
		s.SetupTest()
		s.store.CreateBookingFailures = 1

		view, err := s.commands.Reserve(ctx, s.reserveRequest(), s.userID, user.RoleStudent)
		s.Require().NoError(err)
		s.NotNil(view)
		s.Len(s.publisher.BookingsCreated, 1)
	})

	s.Run("token retries exhausted", func() {
		s.SetupTest()
		s.store.CreateBookingFailures = 3

		_, err := s.commands.Reserve(ctx, s.reserveRequest(), s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrConflict)
	})

	s.Run("contending requests never exceed capacity", func() {
		s.SetupTest()

		const contenders = 8
		users := make([]*builder.UserBuilder, contenders)
		for i := range users {
			users[i] = builder.NewUserBuilder()
			s.store.SeedUser(users[i].BuildSnapshot())
		}

		results := make([]error, contenders)
		var wg sync.WaitGroup
		for i := range users {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = s.commands.Reserve(ctx, s.reserveRequest(), users[i].ID, user.RoleStudent)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
			} else {
				s.ErrorIs(err, errs.ErrNoSlotsAvailable)
			}
		}
		s.Equal(2, succeeded, "exactly as many winners as the zone has slots")

		holders := 0
		for _, b := range s.store.Bookings {
			if b.Status.CountsAgainstCapacity() {
				holders++
			}
		}
		s.Equal(2, holders)
	})
}

func (s *BookingCommandsTestSuite) TestCancel() {
	ctx := context.Background()

	s.Run("owner cancels an active booking", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithUser(s.userID).WithZone(s.zoneID)
		s.store.SeedBooking(b.BuildSnapshot())

		s.Require().NoError(s.commands.Cancel(ctx, b.ID, s.userID, user.RoleStudent))
		s.Equal(booking.StatusCancelled, s.store.Bookings[b.ID].Status)

		s.Require().Len(s.publisher.BookingsCancelled, 1)
		s.Equal(b.ID, s.publisher.BookingsCancelled[0])
		s.Contains(s.store.NotificationTitles(s.userID), "Booking Cancelled")

		last, ok := s.publisher.LastZoneUpdate()
		s.Require().True(ok)
		s.Equal(2, last.AvailableSlots, "cancelling frees the slot")
	})

	s.Run("someone else's booking is off limits", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithZone(s.zoneID)
		s.store.SeedBooking(b.BuildSnapshot())

		err := s.commands.Cancel(ctx, b.ID, s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrAccessDenied)
	})

	s.Run("admin may cancel any booking", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithZone(s.zoneID)
		s.store.SeedBooking(b.BuildSnapshot())

		s.NoError(s.commands.Cancel(ctx, b.ID, s.userID, user.RoleAdmin))
	})

	s.Run("already cancelled", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithUser(s.userID).WithStatus(booking.StatusCancelled)
		s.store.SeedBooking(b.BuildSnapshot())

		err := s.commands.Cancel(ctx, b.ID, s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrAlreadyCancelled)
	})

	s.Run("completed booking cannot be cancelled", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithUser(s.userID).WithStatus(booking.StatusCompleted)
		s.store.SeedBooking(b.BuildSnapshot())

		err := s.commands.Cancel(ctx, b.ID, s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrInvalidTransition)
	})

	s.Run("unknown booking", func() {
		s.SetupTest()

		err := s.commands.Cancel(ctx, uuid.New(), s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("concurrent cancels settle exactly one winner", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithUser(s.userID).WithZone(s.zoneID)
		s.store.SeedBooking(b.BuildSnapshot())

		results := make([]error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = s.commands.Cancel(ctx, b.ID, s.userID, user.RoleStudent)
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range results {
			if err == nil {
				winners++
			} else {
				s.ErrorIs(err, errs.ErrAlreadyCancelled)
			}
		}
		s.Equal(1, winners, "the second cancel observes the cancelled status and fails")

		s.Len(s.publisher.BookingsCancelled, 1)
		cancelled := 0
		for _, title := range s.store.NotificationTitles(s.userID) {
			if title == "Booking Cancelled" {
				cancelled++
			}
		}
		s.Equal(1, cancelled, "one cancellation notification, not two")
	})
}

func (s *BookingCommandsTestSuite) TestCheckInAndOut() {
	ctx := context.Background()

	s.Run("check in then check out", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithUser(s.userID).WithZone(s.zoneID)
		s.store.SeedBooking(b.BuildSnapshot())

		s.Require().NoError(s.commands.CheckIn(ctx, b.ID, s.userID, user.RoleStudent))
		s.Equal(booking.StatusCheckedIn, s.store.Bookings[b.ID].Status)
		s.NotNil(s.store.Bookings[b.ID].CheckInTime)

		s.Require().NoError(s.commands.CheckOut(ctx, b.ID, s.userID, user.RoleStudent))
		s.Equal(booking.StatusCompleted, s.store.Bookings[b.ID].Status)
		s.NotNil(s.store.Bookings[b.ID].CheckOutTime)
	})

	s.Run("check in from cancelled", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithUser(s.userID).WithStatus(booking.StatusCancelled)
		s.store.SeedBooking(b.BuildSnapshot())

		err := s.commands.CheckIn(ctx, b.ID, s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrInvalidTransition)
	})

	s.Run("check out requires a prior check in", func() {
		s.SetupTest()

		b := builder.NewBookingBuilder().WithUser(s.userID).WithZone(s.zoneID)
		s.store.SeedBooking(b.BuildSnapshot())

		err := s.commands.CheckOut(ctx, b.ID, s.userID, user.RoleStudent)
		s.ErrorIs(err, errs.ErrCheckInRequired)
	})
}
