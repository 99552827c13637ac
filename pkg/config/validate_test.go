package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(cfg *Config)
		wantField string
	}{
		{
			name:   "defaults are valid",
			modify: func(cfg *Config) {},
		},
		{
			name:      "non-positive file size",
			modify:    func(cfg *Config) { cfg.Resolver.MaxFileSize = -1 },
			wantField: "resolver.max_file_size",
		},
		{
			name:      "non-positive import depth",
			modify:    func(cfg *Config) { cfg.Resolver.MaxImportDepth = -3 },
			wantField: "resolver.max_import_depth",
		},
		{
			name:      "missing root directory",
			modify:    func(cfg *Config) { cfg.Resolver.RootDir = filepath.Join(os.TempDir(), "yamlio-does-not-exist") },
			wantField: "resolver.root_dir",
		},
		{
			name:      "unknown layout",
			modify:    func(cfg *Config) { cfg.Assembly.Layout = "merged" },
			wantField: "assembly.layout",
		},
		{
			name:      "negative debounce",
			modify:    func(cfg *Config) { cfg.Watch.DebounceInterval = -time.Second },
			wantField: "watch.debounce_interval",
		},
		{
			name:      "excessive debounce",
			modify:    func(cfg *Config) { cfg.Watch.DebounceInterval = time.Hour },
			wantField: "watch.debounce_interval",
		},
		{
			name:      "extension without dot",
			modify:    func(cfg *Config) { cfg.Watch.Extensions = []string{".yaml", "yml"} },
			wantField: "watch.extensions[1]",
		},
		{
			name:      "invalid log level",
			modify:    func(cfg *Config) { cfg.Telemetry.Logging.Level = "trace" },
			wantField: "telemetry.logging.level",
		},
		{
			name:      "invalid log format",
			modify:    func(cfg *Config) { cfg.Telemetry.Logging.Format = "xml" },
			wantField: "telemetry.logging.format",
		},
		{
			name: "metrics path without slash",
			modify: func(cfg *Config) {
				cfg.Telemetry.Metrics.Enabled = true
				cfg.Telemetry.Metrics.Path = "metrics"
			},
			wantField: "telemetry.metrics.path",
		},
		{
			name:      "unordered buckets",
			modify:    func(cfg *Config) { cfg.Telemetry.Metrics.LoadDurationBuckets = []float64{1, 0.5} },
			wantField: "telemetry.metrics.load_duration_buckets",
		},
		{
			name:      "tracing without endpoint",
			modify:    func(cfg *Config) { cfg.Telemetry.Tracing.Enabled = true },
			wantField: "telemetry.tracing.endpoint",
		},
		{
			name:      "invalid sampler",
			modify:    func(cfg *Config) { cfg.Telemetry.Tracing.Sampler = "sometimes" },
			wantField: "telemetry.tracing.sampler",
		},
		{
			name:      "sample ratio out of range",
			modify:    func(cfg *Config) { cfg.Telemetry.Tracing.SampleRatio = 1.5 },
			wantField: "telemetry.tracing.sample_ratio",
		},
		{
			name:      "unsupported exporter",
			modify:    func(cfg *Config) { cfg.Telemetry.Tracing.Exporter = "zipkin" },
			wantField: "telemetry.tracing.exporter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}

			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, fe := range validationErr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error for field %q, got %v", tt.wantField, validationErr.Errors)
			}
		})
	}
}

func TestValidate_RootDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.yaml")
	if err := os.WriteFile(file, []byte("a: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	cfg := Default()
	cfg.Resolver.RootDir = file

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "is not a directory") {
		t.Errorf("expected not-a-directory error, got %v", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if got := single.Error(); got != "configuration validation failed: a: bad" {
		t.Errorf("unexpected single error message %q", got)
	}

	multi := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	if got := multi.Error(); !strings.Contains(got, "2 errors") || !strings.Contains(got, "  - b: worse") {
		t.Errorf("unexpected multi error message %q", got)
	}
}
