package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	adminRequestsTotal     *prometheus.CounterVec
	adminLatencySeconds    *prometheus.HistogramVec
	adminErrorsTotal       *prometheus.CounterVec
	publicCacheTotal       *prometheus.CounterVec
	scheduleSyncGamesTotal *prometheus.CounterVec
	pingSweepResultsTotal  *prometheus.CounterVec
	jobRunsTotal           *prometheus.CounterVec
	uploadRequestsTotal    *prometheus.CounterVec
	uploadRejectedTotal    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used for admin observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_errors_total",
			Help: "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		publicCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "public_cache_requests_total",
			Help: "Public content reads split by cache hit or miss.",
		}, []string{"result"})

		scheduleSyncGamesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_sync_games_total",
			Help: "Games processed by schedule sync, by outcome.",
		}, []string{"outcome"})

		pingSweepResultsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ping_sweep_results_total",
			Help: "Domain health-check results, by outcome.",
		}, []string{"outcome"})

		jobRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "job_runs_total",
			Help: "Scheduled job executions, by job name and outcome.",
		}, []string{"job", "outcome"})

		uploadRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upload_requests_total",
			Help: "Accepted uploads, by detected MIME type.",
		}, []string{"mime"})

		uploadRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upload_rejected_total",
			Help: "Rejected uploads, by rejection reason.",
		}, []string{"reason"})

		prometheus.MustRegister(
			adminRequestsTotal,
			adminLatencySeconds,
			adminErrorsTotal,
			publicCacheTotal,
			scheduleSyncGamesTotal,
			pingSweepResultsTotal,
			jobRunsTotal,
			uploadRequestsTotal,
			uploadRejectedTotal,
		)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// PublicCacheRequests exposes the hit/miss counter for public content caching.
func PublicCacheRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return publicCacheTotal
}

// ScheduleSyncGames exposes the per-outcome counter for schedule sync runs.
func ScheduleSyncGames() *prometheus.CounterVec {
	RegisterMetrics()
	return scheduleSyncGamesTotal
}

// PingSweepResults exposes the per-outcome counter for domain ping sweeps.
func PingSweepResults() *prometheus.CounterVec {
	RegisterMetrics()
	return pingSweepResultsTotal
}

// JobRuns exposes the counter for scheduled job executions.
func JobRuns() *prometheus.CounterVec {
	RegisterMetrics()
	return jobRunsTotal
}

// UploadRequests exposes the counter for accepted uploads.
func UploadRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRequestsTotal
}

// UploadRejected exposes the counter for rejected uploads.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejectedTotal
}
