package yamlio

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/superstrong/yaml-io/pkg/config"
	"github.com/superstrong/yaml-io/pkg/imports/assembler"
	"github.com/superstrong/yaml-io/pkg/imports/resolver"
	"github.com/superstrong/yaml-io/pkg/telemetry/logging"
	"github.com/superstrong/yaml-io/pkg/telemetry/metrics"
	"github.com/superstrong/yaml-io/pkg/telemetry/tracing"
)

// Result is one resolved and assembled load.
type Result struct {
	// LoadID identifies this load in logs, traces and reports
	LoadID string

	// Path is the canonical path of the root document
	Path string

	// Graph is the resolved import graph
	Graph *resolver.Graph

	// Artifact is the assembled YAML text
	Artifact *assembler.Artifact

	// Duration is the time spent resolving and assembling
	Duration time.Duration
}

// Loader resolves, assembles and decodes import-aware YAML documents.
// A Loader holds no per-load state and is safe to reuse; every Resolve
// call gets a fresh resolution cache.
type Loader struct {
	resolver  *resolver.Resolver
	assembler *assembler.Assembler
	logger    *slog.Logger
	metrics   *metrics.Collector
	tracer    *tracing.Tracer
}

// Option configures a Loader.
type Option func(*Loader)

// WithResolver sets the resolver. By default a resolver with default limits
// is created, reporting to the metrics collector if one is set.
func WithResolver(r *resolver.Resolver) Option {
	return func(l *Loader) {
		l.resolver = r
	}
}

// WithAssembler sets the assembler. The default uses the wrapped layout.
func WithAssembler(a *assembler.Assembler) Option {
	return func(l *Loader) {
		l.assembler = a
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithMetrics records every load in collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(l *Loader) {
		l.metrics = collector
	}
}

// WithTracer wraps every load in spans from tracer.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(l *Loader) {
		l.tracer = tracer
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.resolver == nil {
		ropts := []resolver.Option{resolver.WithLogger(l.logger)}
		if l.metrics != nil {
			ropts = append(ropts, resolver.WithObserver(l.metrics))
		}
		l.resolver = resolver.New(ropts...)
	}
	if l.assembler == nil {
		l.assembler = assembler.New(assembler.WithLogger(l.logger))
	}
	if l.tracer == nil {
		// A disabled tracing config never fails.
		l.tracer, _ = tracing.New(&config.TracingConfig{})
	}

	return l
}

// Resolve resolves the import graph rooted at path and assembles it. Errors
// from the resolver and assembler are returned unmodified.
func (l *Loader) Resolve(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	loadID := uuid.NewString()

	ctx = logging.WithLoadID(ctx, loadID)
	ctx = logging.WithDocument(ctx, path)

	ctx, span := l.tracer.StartLoad(ctx, loadID, path)
	defer span.End()

	graph, artifact, err := l.build(ctx, path)
	duration := time.Since(start)

	documents, size := 0, 0
	if graph != nil {
		documents = len(graph.Order)
	}
	if artifact != nil {
		size = len(artifact.Text)
	}
	if l.metrics != nil {
		l.metrics.RecordLoad(duration, documents, size, err)
	}
	tracing.RecordLoadError(span, err)

	if err != nil {
		l.logger.DebugContext(ctx, "load failed", "error", err)
		return nil, err
	}

	l.logger.InfoContext(ctx, "document loaded",
		"path", graph.Root.Path,
		"documents", documents,
		"duration_ms", duration.Milliseconds(),
	)

	return &Result{
		LoadID:   loadID,
		Path:     graph.Root.Path,
		Graph:    graph,
		Artifact: artifact,
		Duration: duration,
	}, nil
}

// build runs the resolve and assemble phases under their own spans.
func (l *Loader) build(ctx context.Context, path string) (*resolver.Graph, *assembler.Artifact, error) {
	rctx, rspan := l.tracer.Start(ctx, tracing.SpanResolve)
	graph, err := l.resolver.Resolve(rctx, path)
	if graph != nil {
		tracing.SetGraphAttributes(rspan, len(graph.Order), graph.Reads, graph.CacheHits)
	}
	tracing.RecordLoadError(rspan, err)
	rspan.End()
	if err != nil {
		return nil, nil, err
	}

	_, aspan := l.tracer.Start(ctx, tracing.SpanAssemble)
	artifact, err := l.assembler.Assemble(graph)
	if artifact != nil {
		tracing.SetArtifactAttributes(aspan, artifact.Layout.String(), len(artifact.Text), len(artifact.Renamed()))
	}
	tracing.RecordLoadError(aspan, err)
	aspan.End()
	if err != nil {
		return graph, nil, err
	}

	return graph, artifact, nil
}

// Load resolves the document at path and decodes its content into out.
func (l *Loader) Load(ctx context.Context, path string, out any) error {
	result, err := l.Resolve(ctx, path)
	if err != nil {
		return err
	}
	return result.Decode(out)
}
