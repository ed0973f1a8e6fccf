package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	ScoresComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_scores_computed_total",
			Help: "Candidate scores computed, by readiness tier",
		},
		[]string{"tier"},
	)

	SignalLookupFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_signal_lookup_failures_total",
			Help: "Community signal lookups that failed and degraded to zero",
		},
		[]string{"signal"},
	)

	RankingBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_ranking_batch_size",
			Help:    "Number of applications scored per ranking request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		},
	)
)
