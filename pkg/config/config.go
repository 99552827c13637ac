package config

import "time"

// Config is the root configuration structure for yaml-io.
// It contains the resolver limits, the assembly layout, watch mode settings
// and telemetry.
type Config struct {
	// Resolver contains limits applied while walking the import graph.
	Resolver ResolverConfig `yaml:"resolver"`

	// Assembly controls how resolved documents are combined.
	Assembly AssemblyConfig `yaml:"assembly"`

	// Watch contains configuration for watch mode.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ResolverConfig contains import resolution limits.
type ResolverConfig struct {
	// MaxFileSize is the largest document the resolver reads, in bytes.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxImportDepth is the longest import chain allowed, counted from the
	// root document.
	// Default: 32
	MaxImportDepth int `yaml:"max_import_depth"`

	// RootDir confines every imported document to a directory tree.
	// Empty means no confinement.
	// Default: ""
	RootDir string `yaml:"root_dir"`
}

// AssemblyConfig contains document assembly configuration.
type AssemblyConfig struct {
	// Layout selects how document bodies are combined.
	// Options: "wrapped", "concatenated"
	// Default: "wrapped"
	Layout string `yaml:"layout"`
}

// WatchConfig contains watch mode configuration.
type WatchConfig struct {
	// DebounceInterval is how long to wait after the last file change
	// before resolving again.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Extensions are the file extensions whose changes trigger a reload.
	// Default: [".yaml", ".yml"]
	Extensions []string `yaml:"extensions"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address the metrics endpoint is served on in
	// watch mode.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "yamlio"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "loader"
	Subsystem string `yaml:"subsystem"`

	// LoadDurationBuckets defines histogram buckets for load duration (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0]
	LoadDurationBuckets []float64 `yaml:"load_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Exporter determines the trace exporter to use.
	// Options: "otlp"
	// Default: "otlp"
	Exporter string `yaml:"exporter"`

	// Endpoint is the trace collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "yamlio"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
