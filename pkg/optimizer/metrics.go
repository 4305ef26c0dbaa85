package optimizer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	optimizeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "batchplan_optimize_duration_seconds",
			Help:    "Duration of schedule optimization runs in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	constructionRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batchplan_construction_runs_total",
			Help: "Total number of construction-phase schedule builds",
		},
	)

	movesAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batchplan_improvement_moves_accepted_total",
			Help: "Total number of improvement-phase moves accepted",
		},
	)
	movesRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batchplan_improvement_moves_rejected_total",
			Help: "Total number of improvement-phase moves rejected",
		},
	)
)
