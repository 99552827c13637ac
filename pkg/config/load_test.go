package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yamlio.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	configPath := writeConfig(t, `
resolver:
  max_file_size: 2048
  max_import_depth: 4
assembly:
  layout: concatenated
watch:
  debounce_interval: 250ms
  extensions: [".yaml"]
telemetry:
  logging:
    level: "debug"
    format: "json"
  metrics:
    enabled: true
    listen_address: "0.0.0.0:9100"
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Resolver.MaxFileSize != 2048 {
		t.Errorf("expected max file size 2048, got %d", cfg.Resolver.MaxFileSize)
	}
	if cfg.Resolver.MaxImportDepth != 4 {
		t.Errorf("expected max import depth 4, got %d", cfg.Resolver.MaxImportDepth)
	}
	if cfg.Assembly.Layout != "concatenated" {
		t.Errorf("expected layout %q, got %q", "concatenated", cfg.Assembly.Layout)
	}
	if cfg.Watch.DebounceInterval != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.DebounceInterval)
	}
	if len(cfg.Watch.Extensions) != 1 || cfg.Watch.Extensions[0] != ".yaml" {
		t.Errorf("expected extensions [.yaml], got %v", cfg.Watch.Extensions)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Telemetry.Logging)
	}
	if !cfg.Telemetry.Metrics.Enabled || cfg.Telemetry.Metrics.ListenAddress != "0.0.0.0:9100" {
		t.Errorf("unexpected metrics config %+v", cfg.Telemetry.Metrics)
	}

	// Defaults fill what the file leaves out
	if cfg.Telemetry.Metrics.Path != DefaultPrometheusPath {
		t.Errorf("expected default metrics path, got %q", cfg.Telemetry.Metrics.Path)
	}
	if cfg.Telemetry.Tracing.ServiceName != DefaultTracingServiceName {
		t.Errorf("expected default service name, got %q", cfg.Telemetry.Tracing.ServiceName)
	}
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Resolver.MaxImportDepth != DefaultMaxImportDepth {
		t.Errorf("expected default import depth, got %d", cfg.Resolver.MaxImportDepth)
	}
	if cfg.Assembly.Layout != DefaultAssemblyLayout {
		t.Errorf("expected default layout, got %q", cfg.Assembly.Layout)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name        string
		path        func(t *testing.T) string
		errContains string
	}{
		{
			name:        "missing file",
			path:        func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
			errContains: "failed to read configuration file",
		},
		{
			name:        "invalid yaml",
			path:        func(t *testing.T) string { return writeConfig(t, "resolver: [unclosed") },
			errContains: "failed to parse configuration file",
		},
		{
			name:        "invalid values",
			path:        func(t *testing.T) string { return writeConfig(t, "assembly:\n  layout: merged\n") },
			errContains: "assembly.layout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path(t))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
			}
		})
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	configPath := writeConfig(t, "resolver:\n  max_import_depth: 4\n")

	t.Setenv("YAMLIO_RESOLVER_MAX_IMPORT_DEPTH", "8")
	t.Setenv("YAMLIO_RESOLVER_MAX_FILE_SIZE", "4096")
	t.Setenv("YAMLIO_ASSEMBLY_LAYOUT", "concatenated")
	t.Setenv("YAMLIO_WATCH_DEBOUNCE_INTERVAL", "1s")
	t.Setenv("YAMLIO_WATCH_EXTENSIONS", ".yaml, .yml ,.tpl")
	t.Setenv("YAMLIO_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("YAMLIO_TELEMETRY_TRACING_SAMPLE_RATIO", "0.25")
	t.Setenv("YAMLIO_TELEMETRY_METRICS_ENABLED", "not-a-bool")

	cfg, err := LoadConfigWithEnvOverrides(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Resolver.MaxImportDepth != 8 {
		t.Errorf("expected env to override import depth to 8, got %d", cfg.Resolver.MaxImportDepth)
	}
	if cfg.Resolver.MaxFileSize != 4096 {
		t.Errorf("expected max file size 4096, got %d", cfg.Resolver.MaxFileSize)
	}
	if cfg.Assembly.Layout != "concatenated" {
		t.Errorf("expected layout concatenated, got %q", cfg.Assembly.Layout)
	}
	if cfg.Watch.DebounceInterval != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.DebounceInterval)
	}
	if want := []string{".yaml", ".yml", ".tpl"}; strings.Join(cfg.Watch.Extensions, ",") != strings.Join(want, ",") {
		t.Errorf("expected extensions %v, got %v", want, cfg.Watch.Extensions)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 0.25 {
		t.Errorf("expected sample ratio 0.25, got %v", cfg.Telemetry.Tracing.SampleRatio)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected malformed boolean override to be ignored")
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	t.Setenv("YAMLIO_TELEMETRY_LOGGING_FORMAT", "json")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("expected format json, got %q", cfg.Telemetry.Logging.Format)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	t.Setenv("YAMLIO_TELEMETRY_LOGGING_LEVEL", "verbose")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if validationErr.Errors[0].Field != "telemetry.logging.level" {
		t.Errorf("expected field telemetry.logging.level, got %q", validationErr.Errors[0].Field)
	}
}
