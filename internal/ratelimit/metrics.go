package ratelimit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "quill",
		Name:      "ratelimit_rejections_total",
		Help:      "Total requests rejected by the per-actor rate limiter",
	},
)
