package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RateLimitBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_rate_limit_blocked_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
		[]string{"path", "limiter_type"},
	)

	// CircuitBreakerState is 0 while the breaker is closed and 1 while open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "registry_circuit_breaker_state",
			Help: "Storage circuit breaker state (0=closed, 1=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_circuit_breaker_failures_total",
			Help: "Storage failures recorded by the circuit breaker",
		},
		[]string{"name"},
	)

	DomainErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_domain_errors_total",
			Help: "Registry errors answered to clients, by category and code",
		},
		[]string{"category", "code", "status"},
	)

	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_http_errors_total",
			Help: "Error responses by status code and normalized path",
		},
		[]string{"status", "path", "method"},
	)
)
