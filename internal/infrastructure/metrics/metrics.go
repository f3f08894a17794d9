package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gift-server metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giftfinder",
			Subsystem: "gift_server",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "giftfinder",
			Subsystem: "gift_server",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Provider errors
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giftfinder",
			Subsystem: "gift_server",
			Name:      "provider_errors_total",
			Help:      "Total provider call failures",
		},
		[]string{"provider", "error_type"},
	)

	// Recommendation flow
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giftfinder",
			Subsystem: "gift_server",
			Name:      "recommendations_total",
			Help:      "Total recommendation requests served",
		},
		[]string{"ai_requested"},
	)

	AIGiftsGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "giftfinder",
			Subsystem: "gift_server",
			Name:      "ai_gifts_generated_total",
			Help:      "Total AI-generated gifts persisted",
		},
	)

	AIGenerationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "giftfinder",
			Subsystem: "gift_server",
			Name:      "ai_generation_failures_total",
			Help:      "Total background generation batches that ended in error",
		},
	)

	// Status registry
	StatusEntriesSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "giftfinder",
			Subsystem: "gift_server",
			Name:      "status_entries_swept_total",
			Help:      "Status registry entries evicted by the TTL sweep",
		},
	)

	// Auth requests
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giftfinder",
			Subsystem: "gift_server",
			Name:      "auth_requests_total",
			Help:      "Total authentication requests",
		},
		[]string{"kind", "outcome"},
	)
)
