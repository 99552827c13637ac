// Package logging builds the structured loggers used by yaml-io.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Configurable log levels (debug, info, warn, error)
//   - Context-aware records carrying the load ID, root document and trace
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx = logging.WithLoadID(ctx, "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
//	logger.InfoContext(ctx, "document loaded", "documents", 3)
//	// {"level":"INFO","msg":"document loaded","documents":3,"load_id":"1b4e..."}
//
// The returned *slog.Logger is accepted by the resolver and assembler
// packages, so every package logs through the same handler.
package logging
