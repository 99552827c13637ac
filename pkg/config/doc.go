// Package config provides configuration management for yaml-io.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in three ways:
//
//  1. Defaults only:
//     cfg := config.Default()
//
//  2. From a YAML file only:
//     cfg, err := config.LoadConfig("yamlio.yaml")
//
//  3. From a YAML file (or defaults, when path is empty) with environment
//     variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("yamlio.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention YAMLIO_SECTION_FIELD.
// For example:
//
//   - YAMLIO_RESOLVER_MAX_IMPORT_DEPTH overrides resolver.max_import_depth
//   - YAMLIO_ASSEMBLY_LAYOUT overrides assembly.layout
//   - YAMLIO_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example
//
//	resolver:
//	  max_file_size: 10485760
//	  max_import_depth: 32
//	  root_dir: ./config
//	assembly:
//	  layout: wrapped
//	watch:
//	  debounce_interval: 250ms
//	  extensions: [".yaml", ".yml"]
//	telemetry:
//	  logging:
//	    level: debug
//	    format: json
//	  metrics:
//	    enabled: true
//	    listen_address: 127.0.0.1:9464
//	  tracing:
//	    enabled: true
//	    endpoint: localhost:4317
//	    sampler: ratio
//	    sample_ratio: 0.5
//	    otlp:
//	      insecure: true
package config
