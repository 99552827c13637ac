package metrics

import (
	"time"

	"github.com/superstrong/yaml-io/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LoadMetrics tracks whole-load outcomes.
//
// Metrics:
//   - yamlio_loader_loads_total: Loads by status and error kind
//   - yamlio_loader_load_duration_seconds: Load duration histogram
//   - yamlio_loader_load_documents: Documents per import graph
//   - yamlio_loader_artifact_bytes: Size of assembled artifacts
//   - yamlio_loader_reloads_total: Watch-triggered reloads by status
type LoadMetrics struct {
	loadsTotal *prometheus.CounterVec

	loadDuration *prometheus.HistogramVec

	documents prometheus.Histogram

	artifactBytes prometheus.Histogram

	reloadsTotal *prometheus.CounterVec
}

// NewLoadMetrics creates and registers load metrics with the provided registry.
func NewLoadMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LoadMetrics {
	lm := &LoadMetrics{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "loads_total",
				Help:      "Total number of documents loaded through the import resolver",
			},
			[]string{"status", "kind"},
		),

		loadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "load_duration_seconds",
				Help:      "Duration of resolve and assemble in seconds",
				Buckets:   cfg.LoadDurationBuckets,
			},
			[]string{"status"},
		),

		documents: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "load_documents",
				Help:      "Number of distinct documents in a resolved import graph",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 8), // 1 to 128
			},
		),

		artifactBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "artifact_bytes",
				Help:      "Size of assembled YAML artifacts in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8), // 256B to 4MB
			},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reloads_total",
				Help:      "Total number of reloads triggered by file changes",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		lm.loadsTotal,
		lm.loadDuration,
		lm.documents,
		lm.artifactBytes,
		lm.reloadsTotal,
	)

	return lm
}

// RecordLoad records a completed load. kind is empty for successful loads.
func (lm *LoadMetrics) RecordLoad(status, kind string, duration time.Duration, documents, artifactBytes int) {
	lm.loadsTotal.WithLabelValues(status, kind).Inc()
	lm.loadDuration.WithLabelValues(status).Observe(duration.Seconds())

	if documents > 0 {
		lm.documents.Observe(float64(documents))
	}
	if artifactBytes > 0 {
		lm.artifactBytes.Observe(float64(artifactBytes))
	}
}

// RecordReload records a reload triggered by the watcher.
func (lm *LoadMetrics) RecordReload(status string) {
	lm.reloadsTotal.WithLabelValues(status).Inc()
}
