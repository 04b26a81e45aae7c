package components

import (
	"campus-parking/internal/handler"
	"campus-parking/internal/handler/api"
	"campus-parking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewZoneHandler,
		api.NewBookingHandler,
		api.NewEventHandler,
		api.NewNotificationHandler,
		api.NewWSHandler,
		middleware.NewAuthMiddleware,
		func(
			auth *api.AuthHandler,
			zone *api.ZoneHandler,
			booking *api.BookingHandler,
			event *api.EventHandler,
			notification *api.NotificationHandler,
			ws *api.WSHandler,
		) handler.Handlers {
			return handler.Handlers{
				Auth:         auth,
				Zone:         zone,
				Booking:      booking,
				Event:        event,
				Notification: notification,
				WS:           ws,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
