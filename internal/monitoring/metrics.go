package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the console admin API
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_http_requests_total",
			Help: "Total HTTP requests handled by the admin API",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Event admin activity
	EventMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_event_mutations_total",
			Help: "Event create/update/model-replacement operations",
		},
		[]string{"operation"},
	)

	EventMetricsFetches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "console_event_metrics_fetches_total",
			Help: "Completed event metrics aggregations",
		},
	)
)
