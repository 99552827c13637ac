package tracing

import (
	"fmt"

	"github.com/superstrong/yaml-io/pkg/config"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Values of telemetry.tracing.sampler.
const (
	SamplerAlways = "always"
	SamplerNever  = "never"
	SamplerRatio  = "ratio"
)

// newSampler builds the sampler for telemetry.tracing.
//
// A load is traced as one yamlio.load span with yamlio.resolve and
// yamlio.assemble as children, so the strategy only ever decides on the
// yamlio.load span and the children inherit that decision. When the
// process was started with a TRACEPARENT, the parent's sampled flag decides
// instead and sampler is not consulted:
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    sampler: ratio
//	    sample_ratio: 0.25 # one load in four
func newSampler(cfg *config.TracingConfig) (sdktrace.Sampler, error) {
	load, err := loadSampler(cfg.Sampler, cfg.SampleRatio)
	if err != nil {
		return nil, err
	}
	return sdktrace.ParentBased(load), nil
}

// loadSampler decides for a yamlio.load span that has no parent.
func loadSampler(strategy string, ratio float64) (sdktrace.Sampler, error) {
	switch strategy {
	case SamplerAlways:
		return sdktrace.AlwaysSample(), nil
	case SamplerNever:
		return sdktrace.NeverSample(), nil
	case SamplerRatio:
		switch {
		case ratio < 0 || ratio > 1:
			return nil, fmt.Errorf("telemetry.tracing.sample_ratio %v is outside [0, 1]", ratio)
		case ratio == 1:
			return sdktrace.AlwaysSample(), nil
		case ratio == 0:
			return sdktrace.NeverSample(), nil
		}
		return sdktrace.TraceIDRatioBased(ratio), nil
	default:
		return nil, fmt.Errorf("telemetry.tracing.sampler %q is not one of %s, %s, %s",
			strategy, SamplerAlways, SamplerNever, SamplerRatio)
	}
}
