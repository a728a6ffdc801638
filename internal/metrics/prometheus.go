package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Stage metrics
	StageRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_stage_runs_total",
			Help: "Total number of agent stage executions",
		},
		[]string{"stage"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hermes_stage_duration_seconds",
			Help:    "Agent stage execution duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"stage"},
	)

	// Completion client metrics
	CompletionCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_completion_calls_total",
			Help: "Total number of text completion calls",
		},
		[]string{"provider", "stage", "status"}, // status: success|error
	)

	CompletionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hermes_completion_latency_seconds",
			Help:    "Completion call latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "stage"},
	)

	// Search metrics
	SearchLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_search_lookups_total",
			Help: "Total number of web snippet lookups",
		},
		[]string{"status"}, // status: success|empty|cache_hit
	)

	// Run metrics
	RunsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_runs_total",
			Help: "Total number of full orchestration runs",
		},
		[]string{"status"}, // status: success|error
	)

	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hermes_run_duration_seconds",
			Help:    "Full orchestration run duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)
)

func init() {
	prometheus.MustRegister(
		StageRuns,
		StageDuration,
		CompletionCalls,
		CompletionLatency,
		SearchLookups,
		RunsCompleted,
		RunDuration,
	)
}

// Handler returns the HTTP handler exposing registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
