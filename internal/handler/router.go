package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"campus-parking/internal/handler/api"
	"campus-parking/internal/handler/middleware"
	"campus-parking/internal/pkg/config"
	"campus-parking/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth         *api.AuthHandler
	Zone         *api.ZoneHandler
	Booking      *api.BookingHandler
	Event        *api.EventHandler
	Notification *api.NotificationHandler
	WS           *api.WSHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, m *metrics.Metrics, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, m)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(m.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/ws", h.WS.Serve)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		zones := apiGroup.Group("/zones")
		zones.Use(authMiddleware.RequireAuth())
		{
			addRoutes(zones, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Zone.ListZones},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Zone.GetZone},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Zone.GetAvailability},
			})

			admin := authMiddleware.RequireAdmin()
			addRoutes(zones, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Zone.CreateZone, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Zone.UpdateZone, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Zone.DeleteZone, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: h.Zone.ListZoneBookings, Mw: []gin.HandlerFunc{admin}},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListMyBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.GetBooking},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Booking.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: h.Booking.CheckIn},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: h.Booking.CheckOut},
			})
		}

		events := apiGroup.Group("/events")
		events.Use(authMiddleware.RequireAuth())
		{
			admin := authMiddleware.RequireAdmin()
			addRoutes(events, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Event.ListEvents},
				{Method: http.MethodPost, Path: "", Handler: h.Event.CreateEvent, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Event.UpdateEvent, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Event.DeleteEvent, Mw: []gin.HandlerFunc{admin}},
			})
		}

		notifications := apiGroup.Group("/notifications")
		notifications.Use(authMiddleware.RequireAuth())
		{
			addRoutes(notifications, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Notification.ListNotifications},
				{Method: http.MethodGet, Path: "/unread-count", Handler: h.Notification.UnreadCount},
				{Method: http.MethodPost, Path: "/:id/read", Handler: h.Notification.MarkRead},
				{Method: http.MethodPost, Path: "/read-all", Handler: h.Notification.MarkAllRead},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
