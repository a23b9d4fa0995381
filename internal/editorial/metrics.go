package editorial

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lifecycleOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quill",
			Name:      "lifecycle_ops_total",
			Help:      "Total idea lifecycle operations",
		},
		[]string{"op", "status"}, // op: "scout", "approve", "draft"
	)

	lifecycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "quill",
			Name:      "lifecycle_duration_seconds",
			Help:      "Duration of idea lifecycle operations in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		},
		[]string{"op"},
	)

	ideasApprovedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quill",
			Name:      "ideas_approved_total",
			Help:      "Total ideas persisted via the approval endpoint",
		},
	)
)
