// Package metrics provides Prometheus metrics collection for the engraving service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// SessionsCreatedTotal tracks total editor sessions created.
	SessionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "editor_sessions_created_total",
			Help: "Total number of editor sessions created",
		},
	)

	// ActiveSessions tracks the current number of live editor sessions.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "editor_sessions_active",
			Help: "Current number of active editor sessions",
		},
	)

	// EditorMutationsTotal tracks editor mutations by operation and outcome.
	EditorMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "editor_mutations_total",
			Help: "Total number of editor mutations",
		},
		[]string{"operation", "status"},
	)

	// HistoryDepth tracks per-zone undo history depth at commit time.
	HistoryDepth = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "editor_history_depth",
			Help:    "Undo history depth per zone at commit time",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200},
		},
	)

	// PricingRecomputeDuration tracks price recomputation duration.
	PricingRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricing_recompute_duration_seconds",
			Help:    "Price recomputation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	// ExternalCallDuration tracks external service call duration by service and outcome.
	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "external_call_duration_seconds",
			Help:    "External service call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)

	// CheckoutsTotal tracks checkouts by outcome.
	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "Total number of checkout attempts",
		},
		[]string{"status"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordSessionCreated records a newly created editor session.
func RecordSessionCreated() {
	SessionsCreatedTotal.Inc()
}

// UpdateActiveSessions updates the active session gauge.
func UpdateActiveSessions(count int) {
	ActiveSessions.Set(float64(count))
}

// RecordEditorMutation records an editor mutation by operation and outcome.
func RecordEditorMutation(operation, status string) {
	EditorMutationsTotal.WithLabelValues(operation, status).Inc()
}

// ObserveHistoryDepth records the undo history depth after a commit.
func ObserveHistoryDepth(depth int) {
	HistoryDepth.Observe(float64(depth))
}

// RecordPricingRecompute records the duration of a price recomputation.
func RecordPricingRecompute(duration time.Duration) {
	PricingRecomputeDuration.Observe(duration.Seconds())
}

// RecordExternalCall records an external service call.
func RecordExternalCall(service, status string, duration time.Duration) {
	ExternalCallDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

// RecordCheckout records a checkout attempt by outcome.
func RecordCheckout(status string) {
	CheckoutsTotal.WithLabelValues(status).Inc()
}
