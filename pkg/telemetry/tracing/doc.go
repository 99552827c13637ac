// Package tracing provides OpenTelemetry tracing for yaml-io loads.
//
// # Overview
//
// Each load produces a "yamlio.load" span with "yamlio.resolve" and
// "yamlio.assemble" children. Spans are exported over OTLP/gRPC and carry
// the load ID, the root document and the shape of the import graph.
//
// # Trace Context Propagation
//
// When yaml-io runs under a traced job, the parent exports TRACEPARENT:
//
//	TRACEPARENT=00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//
// ExtractFromEnv turns that into a parent span context.
//
// # Sampling
//
// telemetry.tracing.sampler is "always", "never" or "ratio" (with
// sample_ratio). It decides once per load on the yamlio.load span, and a
// sampled flag in TRACEPARENT takes precedence over it.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.StartLoad(ctx, loadID, path)
//	defer span.End()
//
// If tracing is disabled, New returns a tracer backed by the otel noop
// provider.
package tracing
