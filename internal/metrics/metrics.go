package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	GoalsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "goals_created_total",
			Help: "Total number of goals created",
		},
	)

	GoalsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "goals_deleted_total",
			Help: "Total number of goals deleted",
		},
	)

	// ProgressLogs is labelled with the streak outcome of the log event:
	// started, extended, kept, reset.
	ProgressLogs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_logs_total",
			Help: "Total number of progress log events",
		},
		[]string{"streak"},
	)

	MilestoneToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "milestone_toggles_total",
			Help: "Total number of milestone completion toggles",
		},
		[]string{"completed"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
