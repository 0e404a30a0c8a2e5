// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_runs_started_total",
			Help: "Total number of generation runs started",
		},
	)

	RunsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_runs_completed_total",
			Help: "Total number of generation runs completed successfully",
		},
	)

	RunsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_runs_failed_total",
			Help: "Total number of generation runs terminated by an error event",
		},
		[]string{"error_code"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "generation_stage_duration_seconds",
			Help: "Duration of pipeline stages in seconds",
		},
		[]string{"stage"},
	)

	BlocksGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_blocks_total",
			Help: "Blocks generated by type and outcome",
		},
		[]string{"block_type", "outcome"}, // outcome: generated | fallback | dropped | placeholder
	)

	SafetyFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_safety_fallbacks_total",
			Help: "Safety-pattern detections by block type",
		},
		[]string{"block_type"},
	)

	ModelCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_gateway_calls_total",
			Help: "Model gateway calls by role and result",
		},
		[]string{"role", "result"},
	)

	ContextStoreOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "context_store_operations_total",
			Help: "Context store operations by kind and result",
		},
		[]string{"operation", "result"}, // result: ok | miss | malformed | error
	)
)
