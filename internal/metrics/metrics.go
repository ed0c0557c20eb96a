// Package metrics exposes the Prometheus instrumentation for the
// planning engine and its HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPDurationSeconds *prometheus.HistogramVec
	HTTPErrorsTotal     *prometheus.CounterVec

	// Generation metrics
	GenerationsTotal     *prometheus.CounterVec
	GenerationDuration   prometheus.Histogram
	ThemesAssignedTotal  *prometheus.CounterVec
	ContentEntriesActive prometheus.Gauge

	// Import metrics
	ImportsTotal          *prometheus.CounterVec
	ImportMutationsTotal  prometheus.Counter
	ImportDurationSeconds prometheus.Histogram

	// Ideas generator metrics
	IdeasRequestsTotal   *prometheus.CounterVec
	IdeasDurationSeconds *prometheus.HistogramVec

	// Backup metrics
	BackupsTotal   *prometheus.CounterVec
	BackupDuration prometheus.Histogram
}

// New creates a Metrics instance with all metrics registered.
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rcm_http_requests_total",
				Help: "Total HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),

		HTTPDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rcm_http_duration_seconds",
				Help:    "HTTP request duration in seconds by route",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"route"},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rcm_http_errors_total",
				Help: "Total HTTP errors by type and route",
			},
			[]string{"type", "route"}, // type: validation, not_found, internal
		),

		GenerationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rcm_generations_total",
				Help: "Total week generations by month and status",
			},
			[]string{"month", "status"}, // status: success, error
		),

		GenerationDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rcm_generation_duration_seconds",
				Help:    "Week generation duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2},
			},
		),

		ThemesAssignedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rcm_themes_assigned_total",
				Help: "Total central themes assigned by source",
			},
			[]string{"source"}, // source: commemoration, history, mandatory, fallback
		),

		ContentEntriesActive: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "rcm_content_entries_active",
				Help: "Number of daily content entries currently stored",
			},
		),

		ImportsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rcm_imports_total",
				Help: "Total bulk imports by status",
			},
			[]string{"status"}, // status: applied, empty, error
		),

		ImportMutationsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "rcm_import_mutations_total",
				Help: "Total mutations applied by bulk imports",
			},
		),

		ImportDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rcm_import_duration_seconds",
				Help:    "Bulk import duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
		),

		IdeasRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rcm_ideas_requests_total",
				Help: "Total ideas generator requests by provider and status",
			},
			[]string{"provider", "status"}, // status: success, error, fallback
		),

		IdeasDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rcm_ideas_duration_seconds",
				Help:    "Ideas generator request duration in seconds by provider",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"provider"},
		),

		BackupsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rcm_backups_total",
				Help: "Total snapshot backups by status",
			},
			[]string{"status"}, // status: success, error
		),

		BackupDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rcm_backup_duration_seconds",
				Help:    "Snapshot backup duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
	}
}
