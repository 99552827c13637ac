package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/superstrong/yaml-io/pkg/cli"
	"github.com/superstrong/yaml-io/pkg/config"
	"github.com/superstrong/yaml-io/pkg/telemetry/health"
	"github.com/superstrong/yaml-io/pkg/telemetry/metrics"
	"github.com/superstrong/yaml-io/pkg/watch"
	"github.com/superstrong/yaml-io/pkg/yamlio"
)

const shutdownTimeout = 5 * time.Second

var watchFlags struct {
	metricsAddr string
	print       bool
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Resolve a document again whenever it or an import changes",
	Long: `Resolve a document, then watch every document of its import graph and
resolve again after each change. A failing load is reported and watching
continues; the next change is retried.

With --metrics-addr an HTTP server exposes Prometheus metrics on the
configured path together with /health and /ready probes. Readiness fails
while the last load failed.

Examples:
  # Report every reload
  yamlio watch app.yaml

  # Print the assembled YAML after every successful reload
  yamlio watch app.yaml --print

  # Serve metrics and health probes
  yamlio watch app.yaml --metrics-addr 127.0.0.1:9464`,
	Args: cobra.ExactArgs(1),
	RunE: watchDocument,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve metrics and health probes on this address")
	watchCmd.Flags().BoolVar(&watchFlags.print, "print", false, "print the assembled YAML after every successful load")
}

func watchDocument(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd, func(cfg *config.Config) {
		if watchFlags.metricsAddr != "" {
			cfg.Telemetry.Metrics.Enabled = true
			cfg.Telemetry.Metrics.ListenAddress = watchFlags.metricsAddr
		}
	})
	if err != nil {
		return err
	}
	defer a.close(ctx)

	ctx, stop := cli.SetupSignalHandler(ctx)
	defer stop()

	w, err := watch.NewWatcher(a.loader, watch.FromConfig(&a.cfg.Watch, args[0]), a.logger, watch.WithRecorder(a.metrics))
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer func() { _ = w.Stop() }()

	var srv *http.Server
	if a.metrics.Enabled() {
		checker := health.New(0)
		checker.RegisterCheck("reload", w.LastError)

		srv = &http.Server{
			Addr:              a.cfg.Telemetry.Metrics.ListenAddress,
			Handler:           newTelemetryMux(a.metrics, a.cfg.Telemetry.Metrics.Path, checker),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			a.logger.Info("starting metrics server",
				"address", srv.Addr,
				"path", a.cfg.Telemetry.Metrics.Path,
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server failed", "error", err)
				stop()
			}
		}()
	}

	out := cmd.OutOrStdout()
	var outMu sync.Mutex
	err = w.Watch(ctx, func(res *yamlio.Result, err error) {
		outMu.Lock()
		defer outMu.Unlock()

		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", args[0], err)
			return
		}
		if watchFlags.print {
			fmt.Fprintf(out, "---\n%s", res.Artifact.Text)
			return
		}
		fmt.Fprintf(out, "✓ %s: %d documents in %s (load %s)\n",
			res.Path, len(res.Graph.Order), res.Duration.Round(time.Microsecond), res.LoadID)
	})

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			a.logger.Error("error during metrics server shutdown", "error", shutdownErr)
		}
	}

	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// newTelemetryMux serves metrics on metricsPath and the health probes.
func newTelemetryMux(collector *metrics.Collector, metricsPath string, checker *health.Checker) *http.ServeMux {
	if metricsPath == "" {
		metricsPath = config.DefaultPrometheusPath
	}
	mux := http.NewServeMux()
	mux.Handle(metricsPath, collector.Handler())
	health.Register(mux, checker)
	return mux
}
