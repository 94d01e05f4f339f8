package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts individual attempts against the employee
	// provider, labeled by operation and classified result.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_gateway_upstream_requests_total",
			Help: "Total number of upstream employee API attempts",
		},
		[]string{"operation", "result"},
	)

	// UpstreamRetries counts waits scheduled between attempts.
	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_gateway_upstream_retries_total",
			Help: "Total number of upstream retries scheduled",
		},
		[]string{"operation"},
	)

	// UpstreamLatency tracks per-attempt latency against the provider.
	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "employee_gateway_upstream_request_duration_seconds",
			Help:    "Upstream employee API attempt latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Attempt result labels.
const (
	ResultSuccess   = "success"
	ResultRetryable = "retryable"
	ResultTerminal  = "terminal"
)
