package guard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var violationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "quill",
		Name:      "guard_violations_total",
		Help:      "Total policy violations by rule",
	},
	[]string{"rule"},
)
