package config

import "time"

// Default values for configuration fields.
const (
	// Resolver defaults
	DefaultMaxFileSize    = int64(10 * 1024 * 1024) // 10MB
	DefaultMaxImportDepth = 32

	// Assembly defaults
	DefaultAssemblyLayout = "wrapped"

	// Watch defaults
	DefaultWatchDebounceInterval = 100 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "text"
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultPrometheusPath       = "/metrics"
	DefaultMetricsNamespace     = "yamlio"
	DefaultMetricsSubsystem     = "loader"
	DefaultTracingSampler       = "ratio"
	DefaultTracingSamplingRate  = 1.0
	DefaultTracingExporter      = "otlp"
	DefaultTracingServiceName   = "yamlio"
	DefaultTracingOTLPTimeout   = 10 * time.Second
)

// DefaultWatchExtensions are the file extensions watched by default.
var DefaultWatchExtensions = []string{".yaml", ".yml"}

// DefaultLoadDurationBuckets are the default histogram buckets for load
// duration, in seconds.
var DefaultLoadDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for every unset configuration field.
func ApplyDefaults(cfg *Config) {
	// Resolver defaults
	if cfg.Resolver.MaxFileSize == 0 {
		cfg.Resolver.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Resolver.MaxImportDepth == 0 {
		cfg.Resolver.MaxImportDepth = DefaultMaxImportDepth
	}

	// Assembly defaults
	if cfg.Assembly.Layout == "" {
		cfg.Assembly.Layout = DefaultAssemblyLayout
	}

	// Watch defaults
	if cfg.Watch.DebounceInterval == 0 {
		cfg.Watch.DebounceInterval = DefaultWatchDebounceInterval
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}

	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	// Metrics defaults
	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Metrics.LoadDurationBuckets) == 0 {
		cfg.Metrics.LoadDurationBuckets = append([]float64(nil), DefaultLoadDurationBuckets...)
	}

	// Tracing defaults. An explicit sampler keeps its ratio, including 0.
	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
		if cfg.Tracing.SampleRatio == 0 {
			cfg.Tracing.SampleRatio = DefaultTracingSamplingRate
		}
	}
	if cfg.Tracing.Exporter == "" {
		cfg.Tracing.Exporter = DefaultTracingExporter
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Tracing.OTLP.Timeout == 0 {
		cfg.Tracing.OTLP.Timeout = DefaultTracingOTLPTimeout
	}
}
