// Package metrics provides Prometheus metrics collection for yaml-io.
//
// # Overview
//
// The Collector counts what the import resolver does while a document is
// loaded. It implements resolver.Observer, so it can be passed straight to
// resolver.WithObserver, and it records whole-load outcomes labelled with
// the import error kind.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	r := resolver.New(resolver.WithObserver(collector))
//
//	start := time.Now()
//	graph, err := r.Resolve(ctx, "main.yaml")
//	collector.RecordLoad(time.Since(start), len(graph.Order), 0, err)
//
//	http.Handle("/metrics", collector.Handler())
//
// # Prometheus Endpoint
//
//	# HELP yamlio_loader_loads_total Total number of documents loaded through the import resolver
//	# TYPE yamlio_loader_loads_total counter
//	yamlio_loader_loads_total{kind="cyclic_import",status="error"} 2
//	yamlio_loader_loads_total{kind="",status="success"} 41
//
// # Cardinality Management
//
// The per-document size gauge is labelled by path. Once 1,000 distinct
// paths have been seen, further documents are aggregated into "other".
package metrics
