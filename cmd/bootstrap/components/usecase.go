package components

import (
	"campus-parking/internal/pkg/clock"
	"campus-parking/internal/pkg/config"
	"campus-parking/internal/usecase"
	"campus-parking/internal/usecase/commands"
	"campus-parking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.BookingConfig { return cfg.Booking },
	func(cfg config.Config) config.WorkerConfig { return cfg.Worker },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthUseCase,
		commands.NewBookingUseCase,
		commands.NewZoneUseCase,
		commands.NewEventUseCase,
		commands.NewNotificationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewZoneQueries,
		queries.NewBookingQueries,
		queries.NewEventQueries,
		queries.NewNotificationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
