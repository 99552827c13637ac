package metrics

import (
	"sync"
	"time"

	"github.com/superstrong/yaml-io/pkg/config"
	importErrors "github.com/superstrong/yaml-io/pkg/imports/errors"
	"github.com/superstrong/yaml-io/pkg/imports/resolver"

	"github.com/prometheus/client_golang/prometheus"
)

// Load status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// otherDocument is the label used once the document cardinality limit is hit.
const otherDocument = "other"

// defaultMaxDocuments bounds the number of distinct document labels.
const defaultMaxDocuments = 1000

// Collector is the main orchestrator for all Prometheus metrics in yaml-io.
// It manages metric registration and implements resolver.Observer so a
// resolver can report directly into it.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	loadMetrics *LoadMetrics

	resolverMetrics *ResolverMetrics

	// Cardinality tracking for the per-document gauge
	cardinalityLimiter *CardinalityLimiter
}

var _ resolver.Observer = (*Collector)(nil)

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := config.Default().Telemetry.Metrics
//	cfg.Enabled = true
//	collector := metrics.NewCollector(&cfg, nil)
//	r := resolver.New(resolver.WithObserver(collector))
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Fill what the caller left empty without touching their config
	c := *cfg
	if c.Namespace == "" {
		c.Namespace = config.DefaultMetricsNamespace
	}
	if c.Subsystem == "" {
		c.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(c.LoadDurationBuckets) == 0 {
		c.LoadDurationBuckets = config.DefaultLoadDurationBuckets
	}

	return &Collector{
		config:             &c,
		registry:           registry,
		loadMetrics:        NewLoadMetrics(&c, registry),
		resolverMetrics:    NewResolverMetrics(&c, registry),
		cardinalityLimiter: NewCardinalityLimiter(defaultMaxDocuments),
	}
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordLoad records the outcome of one load. A nil err counts as success;
// otherwise the error kind is taken from the import error taxonomy.
//
// Parameters:
//   - duration: Time spent resolving and assembling
//   - documents: Distinct documents in the import graph (0 if resolution failed)
//   - artifactBytes: Size of the assembled text (0 if assembly failed)
//   - err: The load error, if any
func (c *Collector) RecordLoad(duration time.Duration, documents, artifactBytes int, err error) {
	if !c.config.Enabled {
		return
	}

	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	c.loadMetrics.RecordLoad(status, importErrors.Kind(err), duration, documents, artifactBytes)
}

// RecordReload records a reload triggered by a file change.
func (c *Collector) RecordReload(err error) {
	if !c.config.Enabled {
		return
	}

	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	c.loadMetrics.RecordReload(status)
}

// DocumentRead implements resolver.Observer.
func (c *Collector) DocumentRead(path string, size int) {
	if !c.config.Enabled {
		return
	}

	c.resolverMetrics.documentsRead.Inc()

	if !c.cardinalityLimiter.Allow(path) {
		// Aggregate into "other" to prevent cardinality explosion
		path = otherDocument
	}
	c.resolverMetrics.documentBytes.WithLabelValues(path).Set(float64(size))
}

// CacheHit implements resolver.Observer.
func (c *Collector) CacheHit(string) {
	if !c.config.Enabled {
		return
	}

	c.resolverMetrics.cacheHits.Inc()
}

// NodeResolved implements resolver.Observer.
func (c *Collector) NodeResolved(node *resolver.Node) {
	if !c.config.Enabled {
		return
	}

	c.resolverMetrics.nodesResolved.Inc()
	c.resolverMetrics.importDepth.Observe(float64(node.Depth))
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
