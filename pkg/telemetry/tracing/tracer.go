package tracing

import (
	"context"
	"errors"
	"fmt"

	"github.com/superstrong/yaml-io/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// instrumentationName names the tracer used for every yaml-io span.
const instrumentationName = "github.com/superstrong/yaml-io"

// Span names. Every load is one SpanLoad with SpanResolve and SpanAssemble
// as its children.
const (
	SpanLoad     = "yamlio.load"
	SpanResolve  = "yamlio.resolve"
	SpanAssemble = "yamlio.assemble"
)

// Tracer creates the spans of document loads. A Tracer built from a
// disabled configuration hands out noop spans.
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	sampler  string
}

// Option configures a Tracer.
type Option func(*options)

type options struct {
	exporter       sdktrace.SpanExporter
	syncExport     bool
	global         bool
	serviceVersion string
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(v string) Option {
	return func(o *options) {
		o.serviceVersion = v
	}
}

// WithSpanExporter replaces the configured exporter. Spans are exported
// synchronously as they end, which suits tests and short CLI runs.
func WithSpanExporter(exporter sdktrace.SpanExporter) Option {
	return func(o *options) {
		o.exporter = exporter
		o.syncExport = true
	}
}

// WithoutGlobal keeps the tracer provider out of the otel globals.
func WithoutGlobal() Option {
	return func(o *options) {
		o.global = false
	}
}

// New builds a Tracer from the telemetry.tracing section. Unless
// WithSpanExporter is given, spans are batched to the OTLP gRPC endpoint.
// Call Shutdown before exiting so batched spans are flushed.
func New(cfg *config.TracingConfig, opts ...Option) (*Tracer, error) {
	if cfg == nil {
		return nil, errors.New("tracing config is nil")
	}
	if !cfg.Enabled {
		return &Tracer{tracer: noop.NewTracerProvider().Tracer(instrumentationName)}, nil
	}

	o := options{global: true, serviceVersion: "dev"}
	for _, opt := range opts {
		opt(&o)
	}

	sampler, err := newSampler(cfg)
	if err != nil {
		return nil, err
	}

	exporter := o.exporter
	if exporter == nil {
		if exporter, err = newExporter(cfg, o.serviceVersion); err != nil {
			return nil, err
		}
	}

	res, err := newResource(cfg.ServiceName, o.serviceVersion)
	if err != nil {
		return nil, err
	}

	processor := sdktrace.WithBatcher(exporter)
	if o.syncExport {
		processor = sdktrace.WithSyncer(exporter)
	}
	provider := sdktrace.NewTracerProvider(processor, sdktrace.WithResource(res), sdktrace.WithSampler(sampler))

	if o.global {
		otel.SetTracerProvider(provider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	return &Tracer{
		tracer:   provider.Tracer(instrumentationName),
		provider: provider,
		sampler:  sampler.Description(),
	}, nil
}

func newResource(serviceName, serviceVersion string) (*resource.Resource, error) {
	if serviceName == "" {
		serviceName = config.DefaultTracingServiceName
	}
	res, err := resource.New(context.Background(), resource.WithAttributes(
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// newExporter connects lazily, so an unreachable collector does not fail
// the load that is being traced.
func newExporter(cfg *config.TracingConfig, serviceVersion string) (sdktrace.SpanExporter, error) {
	if cfg.Exporter != "" && cfg.Exporter != "otlp" {
		return nil, fmt.Errorf("unsupported exporter: %s", cfg.Exporter)
	}

	timeout := cfg.OTLP.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTracingOTLPTimeout
	}
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithTimeout(timeout),
		otlptracegrpc.WithDialOption(grpc.WithUserAgent("yamlio/" + serviceVersion)),
	}
	if cfg.OTLP.Insecure {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}
	return exporter, nil
}

// Start starts a span as a child of the span in ctx, if any.
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// StartLoad starts the SpanLoad span of one load of document.
func (t *Tracer) StartLoad(ctx context.Context, loadID, document string) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, SpanLoad)
	SetLoadAttributes(span, loadID, document)
	return ctx, span
}

// Shutdown flushes pending spans. It is a no-op for a disabled tracer.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// Enabled reports whether spans are recorded and exported.
func (t *Tracer) Enabled() bool {
	return t.provider != nil
}

// Sampler describes the sampler in use, or returns "" when disabled.
func (t *Tracer) Sampler() string {
	return t.sampler
}

// TraceID returns the trace ID of the span in ctx, or "".
func TraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}

// SpanID returns the span ID of the span in ctx, or "".
func SpanID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.SpanID().String()
	}
	return ""
}
