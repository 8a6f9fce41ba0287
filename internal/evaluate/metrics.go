package evaluate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_evaluations_total",
			Help: "Total number of prompt evaluations by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	upstreamSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prompt_evaluation_upstream_seconds",
			Help:    "Latency of model API calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 9),
		},
	)
)

func observe(mode, outcome string) {
	evaluationCounter.With(prometheus.Labels{"mode": mode, "outcome": outcome}).Inc()
}
