package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	BroadcastsSent     prometheus.Counter
	BroadcastsDropped  prometheus.Counter
	ConnectedObservers prometheus.Gauge
	BookingsExpired    prometheus.Counter
	RemindersSent      prometheus.Counter
}

func New(serviceName string) *Metrics {
	return NewWith(prometheus.DefaultRegisterer, serviceName)
}

// NewWith registers on the given registerer so tests can use an isolated
// registry instead of the process-global one.
func NewWith(reg prometheus.Registerer, serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		BroadcastsSent: factory.NewCounter(prometheus.CounterOpts{
			Name:        "realtime_broadcasts_sent_total",
			Help:        "Change events delivered to observers.",
			ConstLabels: labels,
		}),
		BroadcastsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name:        "realtime_broadcasts_dropped_total",
			Help:        "Change events dropped for slow or dead observers.",
			ConstLabels: labels,
		}),
		ConnectedObservers: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "realtime_connected_observers",
			Help:        "Currently registered websocket observers.",
			ConstLabels: labels,
		}),
		BookingsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name:        "sweeper_bookings_expired_total",
			Help:        "Bookings transitioned to expired by the sweeper.",
			ConstLabels: labels,
		}),
		RemindersSent: factory.NewCounter(prometheus.CounterOpts{
			Name:        "reminder_notifications_sent_total",
			Help:        "Reminder notifications created by the reminder scanner.",
			ConstLabels: labels,
		}),
	}
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// FullPath is empty for unmatched routes; keep cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
