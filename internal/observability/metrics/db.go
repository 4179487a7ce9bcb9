package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pool gauges are refreshed by db.StartPoolMetrics.
var (
	DBPoolAcquiredConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_db_pool_acquired_connections",
			Help: "Connections currently checked out of the registry pool",
		},
	)

	DBPoolIdleConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_db_pool_idle_connections",
			Help: "Idle connections held by the registry pool",
		},
	)

	DBPoolMaxConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_db_pool_max_connections",
			Help: "Configured upper bound of the registry pool",
		},
	)

	DBPoolTotalConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_db_pool_total_connections",
			Help: "Open connections in the registry pool",
		},
	)
)

// Query metrics are labelled with the operation and the table it touches
// (apps or app_users).
var (
	DBQueryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registry_db_query_duration_seconds",
			Help:    "Duration of registry storage queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_db_query_errors_total",
			Help: "Failed registry storage queries",
		},
		[]string{"operation", "table", "error_type"},
	)
)
