package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequests counts outbound Riot API calls by endpoint and result.
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lolsync",
		Subsystem: "provider",
		Name:      "requests_total",
		Help:      "Outbound provider requests by endpoint and result.",
	}, []string{"endpoint", "result"})

	// ProviderThrottled counts calls rejected or delayed by the shared
	// request budget before any network traffic happened.
	ProviderThrottled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lolsync",
		Subsystem: "provider",
		Name:      "throttled_total",
		Help:      "Provider calls stopped by the local request budget.",
	}, []string{"endpoint"})

	// SyncOutcomes counts finished sync units of work by job type and
	// outcome (success, retried, terminal_failure).
	SyncOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lolsync",
		Subsystem: "sync",
		Name:      "outcomes_total",
		Help:      "Sync job outcomes by job type.",
	}, []string{"job", "outcome"})

	// SyncDuration observes wall time of one orchestrator run, including
	// retries.
	SyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lolsync",
		Subsystem: "sync",
		Name:      "duration_seconds",
		Help:      "Duration of one sync unit of work.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})
)
