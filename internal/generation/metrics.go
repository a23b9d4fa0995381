package generation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quill",
			Name:      "generation_calls_total",
			Help:      "Total generation calls to the LLM provider",
		},
		[]string{"kind", "status"}, // kind: "text", "json"
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "quill",
			Name:      "generation_duration_seconds",
			Help:      "Duration of generation calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~50s
		},
		[]string{"kind"},
	)

	generationParseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quill",
			Name:      "generation_parse_failures_total",
			Help:      "Total structured generation responses that failed to parse as JSON",
		},
	)
)
