package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/superstrong/yaml-io/pkg/cli"
	"github.com/superstrong/yaml-io/pkg/config"
	"github.com/superstrong/yaml-io/pkg/telemetry/logging"
	"github.com/superstrong/yaml-io/pkg/telemetry/metrics"
	"github.com/superstrong/yaml-io/pkg/telemetry/tracing"
	"github.com/superstrong/yaml-io/pkg/yamlio"
)

// app holds the components shared by the commands of one invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	loader  *yamlio.Loader
}

// newApp loads the configuration, applies the global flags and command
// specific overrides, and builds the telemetry stack and loader. The
// returned context carries a parent span from TRACEPARENT when one is set.
func newApp(cmd *cobra.Command, overrides ...func(*config.Config)) (*app, context.Context, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, nil, cli.NewConfigError("config", fmt.Sprintf("failed to load config: %v", err))
	}

	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if logFormat != "" {
		cfg.Telemetry.Logging.Format = logFormat
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(logging.FromConfig(&cfg.Telemetry.Logging, cmd.ErrOrStderr()))
	if err != nil {
		return nil, nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, tracing.WithServiceVersion(Version))
	if err != nil {
		return nil, nil, cli.NewConfigError("telemetry.tracing", err.Error())
	}
	if tracer.Enabled() {
		logger.Debug("tracing enabled",
			"endpoint", cfg.Telemetry.Tracing.Endpoint,
			"sampler", tracer.Sampler(),
		)
	}

	loader, err := yamlio.FromConfig(cfg, logger, collector, tracer)
	if err != nil {
		return nil, nil, cli.NewConfigError("assembly.layout", err.Error())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = tracing.ExtractFromEnv(ctx, os.Getenv)

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
		tracer:  tracer,
		loader:  loader,
	}, ctx, nil
}

// close flushes pending spans.
func (a *app) close(ctx context.Context) {
	if err := a.tracer.Shutdown(context.WithoutCancel(ctx)); err != nil {
		a.logger.Warn("failed to shut down tracer", "error", err)
	}
}
