package components

import (
	"campus-parking/internal/infra/readstore"
	"campus-parking/internal/infra/uow"
	"campus-parking/internal/usecase/queries"
	"campus-parking/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Write-side reads, shared by commands and workers
		fx.Annotate(
			readstore.NewCommandReads,
			fx.As(new(shared.CommandReads)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewZoneReadStore,
			fx.As(new(queries.ZoneReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewEventReadStore,
			fx.As(new(queries.EventReadStore)),
		),
		fx.Annotate(
			readstore.NewNotificationReadStore,
			fx.As(new(queries.NotificationReadStore)),
		),
	),
)
