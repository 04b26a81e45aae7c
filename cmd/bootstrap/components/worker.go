package components

import (
	"context"

	"campus-parking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewSweeper,
		worker.NewReminder,
	),
	fx.Invoke(startWorkers),
)

func startWorkers(lc fx.Lifecycle, sweeper *worker.Sweeper, reminder *worker.Reminder) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start(context.Background())
			reminder.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			reminder.Stop()
			return nil
		},
	})
}
