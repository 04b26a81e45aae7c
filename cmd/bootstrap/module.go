package bootstrap

import (
	"campus-parking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.RealtimeModule,
	components.HandlerModule,
	components.WorkerModule,
)
