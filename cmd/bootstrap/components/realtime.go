package components

import (
	"context"
	"log/slog"

	"campus-parking/internal/infra/push"
	"campus-parking/internal/pkg/config"
	"campus-parking/internal/pkg/metrics"
	"campus-parking/internal/realtime"
	"campus-parking/internal/usecase/shared"

	"go.uber.org/fx"
)

var RealtimeModule = fx.Module("realtime",
	fx.Provide(
		NewMetrics,
		NewHub,
		fx.Annotate(
			func(h *realtime.Hub) *realtime.Hub { return h },
			fx.As(new(shared.EventPublisher)),
		),
		NewPushSender,
	),
)

func NewMetrics() *metrics.Metrics {
	return metrics.New("campus_parking")
}

func NewHub(lc fx.Lifecycle, cfg config.Config, m *metrics.Metrics) *realtime.Hub {
	hub := realtime.NewHub(cfg.Realtime, m)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go hub.Run()
			return nil
		},
		OnStop: func(_ context.Context) error {
			hub.Stop()
			return nil
		},
	})

	return hub
}

// NewPushSender wires the RabbitMQ bridge when configured and a noop
// otherwise; booking flows are identical either way.
func NewPushSender(lc fx.Lifecycle, cfg config.Config) (shared.PushSender, error) {
	if !cfg.Push.Enabled {
		return push.NoopSender{}, nil
	}

	publisher, err := push.NewPublisher(cfg.Push)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	slog.Info("push publisher connected", "exchange", cfg.Push.Exchange)
	return publisher, nil
}
