// Package metrics exposes prometheus instruments for the media pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PipelineRunsTotal counts finished runs.
	// Labels: path (captions/direct-audio/transcribe/transcript-only), status (success/error)
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lectureflow_pipeline_runs_total",
			Help: "Total number of pipeline runs by path and status",
		},
		[]string{"path", "status"},
	)

	// StageErrorsTotal counts failures per stage and error kind.
	StageErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lectureflow_stage_errors_total",
			Help: "Total number of pipeline stage errors by stage and error kind",
		},
		[]string{"stage", "kind"},
	)

	// StageDuration observes wall time per stage.
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lectureflow_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 900},
		},
		[]string{"stage"},
	)

	// ProviderAttemptsTotal counts transcription/acquisition strategy attempts.
	ProviderAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lectureflow_provider_attempts_total",
			Help: "Total number of provider or strategy attempts by component, name and status",
		},
		[]string{"component", "name", "status"},
	)

	// RateLimitRetriesTotal counts summarizer waits after a rate-limit signal.
	RateLimitRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lectureflow_rate_limit_retries_total",
			Help: "Total number of summarization retries after a rate-limit response",
		},
	)

	// CleanupErrorsTotal counts transient files that could not be removed.
	CleanupErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lectureflow_cleanup_errors_total",
			Help: "Total number of transient files that failed to be removed",
		},
	)
)

// RecordRun records a finished pipeline run.
func RecordRun(path string, success bool) {
	PipelineRunsTotal.WithLabelValues(path, status(success)).Inc()
}

// RecordStageError records a stage failure.
func RecordStageError(stage, kind string) {
	StageErrorsTotal.WithLabelValues(stage, kind).Inc()
}

// RecordStageDuration records how long a stage took.
func RecordStageDuration(stage string, seconds float64) {
	StageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordAttempt records one provider or strategy attempt.
func RecordAttempt(component, name string, success bool) {
	ProviderAttemptsTotal.WithLabelValues(component, name, status(success)).Inc()
}

// RecordRateLimitRetry records one rate-limit wait.
func RecordRateLimitRetry() {
	RateLimitRetriesTotal.Inc()
}

// RecordCleanupErrors adds n failed removals.
func RecordCleanupErrors(n int) {
	if n > 0 {
		CleanupErrorsTotal.Add(float64(n))
	}
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
