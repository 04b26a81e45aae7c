//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"campus-parking/internal/domain/zone"
	reqdto "campus-parking/internal/handler/dto/request"
	"campus-parking/internal/pkg/clock"
	"campus-parking/internal/pkg/errs"
	"campus-parking/internal/usecase/commands"
	"campus-parking/internal/usecase/queries"
	"campus-parking/tests/common/builder"
	"campus-parking/tests/common/fakes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ZoneCommandsTestSuite struct {
	suite.Suite
	store     *fakes.Store
	publisher *fakes.Publisher
	commands  commands.ZoneCommands
}

func TestZoneCommandsSuite(t *testing.T) {
	suite.Run(t, new(ZoneCommandsTestSuite))
}

func (s *ZoneCommandsTestSuite) SetupTest() {
	s.store = fakes.NewStore()
	s.publisher = fakes.NewPublisher()
	clk := clock.NewMockClock(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	uow := fakes.NewUnitOfWork(s.store)
	zoneQueries := queries.NewZoneQueries(fakes.NewZoneReadStore(s.store), clk)
	s.commands = commands.NewZoneUseCase(uow, fakes.NewReads(s.store), zoneQueries, s.publisher, clk)
}

func (s *ZoneCommandsTestSuite) TestCreateZone() {
	ctx := context.Background()

	s.Run("success", func() {
		s.SetupTest()

		view, err := s.commands.CreateZone(ctx, reqdto.CreateZoneRequest{
			Name:       "Visitor Lot",
			ZoneType:   "visitor",
			TotalSlots: 8,
			Location:   "Main Gate",
		})
		s.Require().NoError(err)

		s.Equal("Visitor Lot", view.Name)
		s.Equal(8, view.TotalSlots)
		s.Equal(8, view.AvailableSlots, "a fresh zone is fully available")
		s.True(view.Active)

		s.Require().Len(s.publisher.ZonesCreated, 1)
		s.Equal(view.ID, s.publisher.ZonesCreated[0].ZoneID)
		s.Contains(s.store.Zones, view.ID)
	})

	s.Run("invalid zone type", func() {
		s.SetupTest()

		_, err := s.commands.CreateZone(ctx, reqdto.CreateZoneRequest{
			Name:       "Rooftop",
			ZoneType:   "rooftop",
			TotalSlots: 8,
		})
		s.ErrorIs(err, errs.ErrDomainValidation)
		s.Empty(s.store.Zones)
	})
}

func (s *ZoneCommandsTestSuite) TestUpdateZone() {
	ctx := context.Background()

	s.Run("capacity change is broadcast", func() {
		s.SetupTest()

		z := builder.NewZoneBuilder().WithTotalSlots(10)
		s.store.SeedZone(z.BuildSnapshot())

		slots := 4
		view, err := s.commands.UpdateZone(ctx, z.ID, reqdto.UpdateZoneRequest{TotalSlots: &slots})
		s.Require().NoError(err)
		s.Equal(4, view.TotalSlots)

		last, ok := s.publisher.LastZoneUpdate()
		s.Require().True(ok)
		s.Equal(z.ID, last.ZoneID)
		s.Equal(4, last.AvailableSlots)
	})

	s.Run("shrinking below current holders never yields negative availability", func() {
		s.SetupTest()

		z := builder.NewZoneBuilder().WithTotalSlots(10)
		s.store.SeedZone(z.BuildSnapshot())
		today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			s.store.SeedBooking(builder.NewBookingBuilder().WithZone(z.ID).WithDate(today).BuildSnapshot())
		}

		slots := 2
		view, err := s.commands.UpdateZone(ctx, z.ID, reqdto.UpdateZoneRequest{TotalSlots: &slots})
		s.Require().NoError(err)
		s.Equal(0, view.AvailableSlots)
	})

	s.Run("unknown zone", func() {
		s.SetupTest()

		name := "New Name"
		_, err := s.commands.UpdateZone(ctx, uuid.New(), reqdto.UpdateZoneRequest{Name: &name})
		s.ErrorIs(err, errs.ErrZoneNotFound)
	})

	s.Run("invalid patch", func() {
		s.SetupTest()

		z := builder.NewZoneBuilder()
		s.store.SeedZone(z.BuildSnapshot())

		zero := 0
		_, err := s.commands.UpdateZone(ctx, z.ID, reqdto.UpdateZoneRequest{TotalSlots: &zero})
		s.ErrorIs(err, errs.ErrDomainValidation)
		s.Equal(10, s.store.Zones[z.ID].TotalSlots, "rejected patch leaves the zone untouched")
	})
}

func (s *ZoneCommandsTestSuite) TestDeleteZone() {
	ctx := context.Background()

	s.Run("success", func() {
		s.SetupTest()

		z := builder.NewZoneBuilder()
		s.store.SeedZone(z.BuildSnapshot())

		s.Require().NoError(s.commands.DeleteZone(ctx, z.ID))
		s.NotContains(s.store.Zones, z.ID)
		s.Require().Len(s.publisher.ZonesDeleted, 1)
		s.Equal(z.ID, s.publisher.ZonesDeleted[0])
	})

	s.Run("zone with slot holders is protected", func() {
		s.SetupTest()

		z := builder.NewZoneBuilder().WithType(zone.TypeGeneral)
		s.store.SeedZone(z.BuildSnapshot())
		s.store.SeedBooking(builder.NewBookingBuilder().WithZone(z.ID).BuildSnapshot())

		err := s.commands.DeleteZone(ctx, z.ID)
		s.ErrorIs(err, errs.ErrZoneInUse)
		s.Contains(s.store.Zones, z.ID)
	})

	s.Run("unknown zone", func() {
		s.SetupTest()

		s.ErrorIs(s.commands.DeleteZone(ctx, uuid.New()), errs.ErrZoneNotFound)
	})
}
