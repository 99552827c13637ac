package tracing

import (
	"context"
	"strings"
	"testing"

	"github.com/superstrong/yaml-io/pkg/config"

	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewSampler(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		ratio    float64
		wantRoot string
		wantErr  bool
	}{
		{name: "always", strategy: SamplerAlways, wantRoot: "AlwaysOnSampler"},
		{name: "never", strategy: SamplerNever, wantRoot: "AlwaysOffSampler"},
		{name: "ratio 0", strategy: SamplerRatio, ratio: 0, wantRoot: "AlwaysOffSampler"},
		{name: "ratio 0.5", strategy: SamplerRatio, ratio: 0.5, wantRoot: "TraceIDRatioBased{0.5}"},
		{name: "ratio 1", strategy: SamplerRatio, ratio: 1, wantRoot: "AlwaysOnSampler"},
		{name: "negative ratio", strategy: SamplerRatio, ratio: -0.1, wantErr: true},
		{name: "ratio above 1", strategy: SamplerRatio, ratio: 1.5, wantErr: true},
		{name: "unknown strategy", strategy: "sometimes", ratio: 0.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler, err := newSampler(&config.TracingConfig{Sampler: tt.strategy, SampleRatio: tt.ratio})
			if (err != nil) != tt.wantErr {
				t.Fatalf("newSampler() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			desc := sampler.Description()
			if !strings.HasPrefix(desc, "ParentBased{") || !strings.Contains(desc, "root:"+tt.wantRoot) {
				t.Errorf("Description() = %q, want parent based with root %s", desc, tt.wantRoot)
			}
		})
	}
}

// loadSpans runs one traced load shape under parent and returns the number
// of exported spans.
func loadSpans(t *testing.T, cfg *config.TracingConfig, parent context.Context) int {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tracer, err := New(cfg, WithSpanExporter(exporter), WithoutGlobal())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer tracer.Shutdown(context.Background())

	ctx, load := tracer.StartLoad(parent, "load-1", "/docs/main.yaml")
	_, resolve := tracer.Start(ctx, SpanResolve)
	resolve.End()
	_, assemble := tracer.Start(ctx, SpanAssemble)
	assemble.End()
	load.End()

	return len(exporter.GetSpans())
}

func TestSampling_DecidedOncePerLoad(t *testing.T) {
	envWith := func(traceparent string) func(string) string {
		return func(key string) string {
			if key == EnvTraceParent {
				return traceparent
			}
			return ""
		}
	}
	sampledParent := ExtractFromEnv(context.Background(), envWith(validTraceParent))
	unsampledParent := ExtractFromEnv(context.Background(),
		envWith("00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-00"))

	ratioZero := enabledConfig(SamplerRatio)
	ratioZero.SampleRatio = 0

	tests := []struct {
		name   string
		cfg    *config.TracingConfig
		parent context.Context
		want   int
	}{
		{name: "always samples the whole load", cfg: enabledConfig(SamplerAlways), parent: context.Background(), want: 3},
		{name: "ratio 0 drops the whole load", cfg: ratioZero, parent: context.Background(), want: 0},
		{name: "sampled TRACEPARENT overrides never", cfg: enabledConfig(SamplerNever), parent: sampledParent, want: 3},
		{name: "unsampled TRACEPARENT overrides always", cfg: enabledConfig(SamplerAlways), parent: unsampledParent, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loadSpans(t, tt.cfg, tt.parent); got != tt.want {
				t.Errorf("exported %d spans, want %d", got, tt.want)
			}
		})
	}
}
