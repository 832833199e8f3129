package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_query_duration_seconds",
			Help:    "Duration of analytics store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_query_errors_total",
			Help: "Total number of failed analytics store queries",
		},
		[]string{"query", "kind"}, // kind: connection, prepare, execution
	)

	OpenConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analytics_store_open_connections",
			Help: "Connections currently held open to the analytics store",
		},
	)

	// Marshaling
	CoercionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_coercion_fallbacks_total",
			Help: "Cells replaced by their schema default because they were missing or unparsable",
		},
		[]string{"schema", "field"},
	)

	SkippedRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_skipped_rows_total",
			Help: "Rows dropped because their grouping key column was absent",
		},
		[]string{"schema"},
	)

	// HTTP
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
)

func ObserveQuery(query string, start time.Time) {
	QueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

func ObserveRequest(route string, status int, start time.Time) {
	RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
