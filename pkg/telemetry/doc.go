// Package telemetry groups the observability packages used by yaml-io.
//
// # Components
//
//   - logging: slog loggers carrying load ID, document and trace fields
//   - metrics: Prometheus collector fed by the import resolver
//   - tracing: OpenTelemetry spans for resolve and assemble
//   - health: Liveness and readiness probes for watch mode
//
// All components are configured from the telemetry section of
// config.Config and are optional: a disabled component costs a branch.
package telemetry
