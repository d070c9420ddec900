package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the bot. Each instance owns
// its own registry so tests can construct collectors freely.
type Metrics struct {
	registry *prometheus.Registry

	TicksTotal   *prometheus.CounterVec
	FeedFailures prometheus.Counter
	LastTickUnix prometheus.Gauge
	TickDuration prometheus.Histogram
}

// New creates and registers the bot's metrics.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "threadbot_ticks_total",
			Help: "Reconciliation ticks by action and status",
		},
		[]string{"action", "status"},
	)

	m.FeedFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "threadbot_feed_fetch_failures_total",
			Help: "Stream feed fetches that failed",
		},
	)

	m.LastTickUnix = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "threadbot_last_tick_timestamp_seconds",
			Help: "Unix time of the most recent completed tick",
		},
	)

	m.TickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "threadbot_tick_duration_seconds",
			Help:    "Tick duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.registry.MustRegister(m.TicksTotal, m.FeedFailures, m.LastTickUnix, m.TickDuration)
	return m
}

// ObserveTick records the outcome of one tick.
func (m *Metrics) ObserveTick(action string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.TicksTotal.WithLabelValues(action, status).Inc()
	m.LastTickUnix.SetToCurrentTime()
	m.TickDuration.Observe(elapsed.Seconds())
}

// Handler returns the metrics endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
