package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MaintenanceMetrics records scheduled retention runs.
type MaintenanceMetrics struct {
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	purged   *prometheus.CounterVec
}

// NewMaintenanceMetrics registers the maintenance metrics. A nil registerer
// yields a no-op recorder.
func NewMaintenanceMetrics(reg prometheus.Registerer) *MaintenanceMetrics {
	if reg == nil {
		return &MaintenanceMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_maintenance_job_duration_seconds",
		Help:    "Duration of maintenance jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_maintenance_job_runs_total",
		Help: "Maintenance job runs by outcome.",
	}, []string{"job", "result"})
	purged := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_maintenance_rows_purged_total",
		Help: "Rows removed by retention jobs.",
	}, []string{"job"})
	reg.MustRegister(duration, runs, purged)
	return &MaintenanceMetrics{duration: duration, runs: runs, purged: purged}
}

// Observe records one job run. A non-nil err counts as a failure.
func (m *MaintenanceMetrics) Observe(job string, err error, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.duration.WithLabelValues(normalizeLabel(job)).Observe(elapsed.Seconds())
	m.runs.WithLabelValues(normalizeLabel(job), result).Inc()
}

func (m *MaintenanceMetrics) AddPurged(job string, rows int64) {
	if m == nil || m.purged == nil || rows <= 0 {
		return
	}
	m.purged.WithLabelValues(normalizeLabel(job)).Add(float64(rows))
}
