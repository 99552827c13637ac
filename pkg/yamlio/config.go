package yamlio

import (
	"fmt"
	"log/slog"

	"github.com/superstrong/yaml-io/pkg/config"
	"github.com/superstrong/yaml-io/pkg/imports/assembler"
	"github.com/superstrong/yaml-io/pkg/imports/resolver"
	"github.com/superstrong/yaml-io/pkg/telemetry/metrics"
	"github.com/superstrong/yaml-io/pkg/telemetry/tracing"
)

// FromConfig creates a Loader whose resolver limits and assembly layout
// come from cfg. collector and tracer may be nil.
func FromConfig(cfg *config.Config, logger *slog.Logger, collector *metrics.Collector, tracer *tracing.Tracer) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}

	layout, err := assembler.ParseLayout(cfg.Assembly.Layout)
	if err != nil {
		return nil, fmt.Errorf("invalid assembly configuration: %w", err)
	}

	ropts := []resolver.Option{
		resolver.WithLogger(logger),
		resolver.WithSource(resolver.FileSource{MaxFileSize: cfg.Resolver.MaxFileSize}),
		resolver.WithMaxImportDepth(cfg.Resolver.MaxImportDepth),
	}
	if cfg.Resolver.RootDir != "" {
		ropts = append(ropts, resolver.WithRootDir(cfg.Resolver.RootDir))
	}
	if collector != nil {
		ropts = append(ropts, resolver.WithObserver(collector))
	}

	opts := []Option{
		WithLogger(logger),
		WithResolver(resolver.New(ropts...)),
		WithAssembler(assembler.New(assembler.WithLayout(layout), assembler.WithLogger(logger))),
	}
	if collector != nil {
		opts = append(opts, WithMetrics(collector))
	}
	if tracer != nil {
		opts = append(opts, WithTracer(tracer))
	}

	return NewLoader(opts...), nil
}
