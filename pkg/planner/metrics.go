package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

var (
	planDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "batchplan_plan_duration_seconds",
			Help:    "End-to-end duration of planning runs in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	plansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batchplan_plans_total",
			Help: "Total number of planning runs by status",
		},
		[]string{"status"},
	)
)
