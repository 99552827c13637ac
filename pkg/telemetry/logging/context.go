package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Context keys for common log fields.
type contextKey string

const (
	// LoadIDKey is the context key for the identifier of a single load.
	LoadIDKey contextKey = "load_id"

	// DocumentKey is the context key for the root document path of a load.
	DocumentKey contextKey = "document"
)

// WithLoadID adds a load ID to the context.
func WithLoadID(ctx context.Context, loadID string) context.Context {
	return context.WithValue(ctx, LoadIDKey, loadID)
}

// GetLoadID retrieves the load ID from the context.
func GetLoadID(ctx context.Context) string {
	if loadID, ok := ctx.Value(LoadIDKey).(string); ok {
		return loadID
	}
	return ""
}

// WithDocument adds the root document path to the context.
func WithDocument(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, DocumentKey, path)
}

// GetDocument retrieves the root document path from the context.
func GetDocument(ctx context.Context) string {
	if path, ok := ctx.Value(DocumentKey).(string); ok {
		return path
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
func extractContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var fields []slog.Attr
	if loadID := GetLoadID(ctx); loadID != "" {
		fields = append(fields, slog.String("load_id", loadID))
	}
	if path := GetDocument(ctx); path != "" {
		fields = append(fields, slog.String("document", path))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return fields
}
