package metrics

import (
	"github.com/superstrong/yaml-io/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ResolverMetrics tracks per-document resolver activity.
//
// Metrics:
//   - yamlio_loader_documents_read_total: Documents read from the source
//   - yamlio_loader_document_bytes: Last observed size of each document
//   - yamlio_loader_cache_hits_total: Imports served from the per-call cache
//   - yamlio_loader_nodes_resolved_total: Nodes whose namespace was built
//   - yamlio_loader_import_depth: Depth at which nodes were resolved
type ResolverMetrics struct {
	documentsRead prometheus.Counter

	documentBytes *prometheus.GaugeVec

	cacheHits prometheus.Counter

	nodesResolved prometheus.Counter

	importDepth prometheus.Histogram
}

// NewResolverMetrics creates and registers resolver metrics with the provided registry.
func NewResolverMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ResolverMetrics {
	rm := &ResolverMetrics{
		documentsRead: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "documents_read_total",
				Help:      "Total number of documents read from the document source",
			},
		),

		documentBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "document_bytes",
				Help:      "Size in bytes of the most recent read of each document",
			},
			[]string{"document"},
		),

		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of imports served from the resolution cache",
			},
		),

		nodesResolved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "nodes_resolved_total",
				Help:      "Total number of import graph nodes resolved",
			},
		),

		importDepth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "import_depth",
				Help:      "Import depth of resolved nodes (0 for the root document)",
				Buckets:   prometheus.LinearBuckets(0, 1, 10),
			},
		),
	}

	registry.MustRegister(
		rm.documentsRead,
		rm.documentBytes,
		rm.cacheHits,
		rm.nodesResolved,
		rm.importDepth,
	)

	return rm
}
