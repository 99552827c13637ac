package tracing

import (
	importErrors "github.com/superstrong/yaml-io/pkg/imports/errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys. Custom keys use the "yamlio.*" namespace.
const (
	// Load attributes
	AttrLoadID   = "yamlio.load_id"
	AttrDocument = "yamlio.document"

	// Graph attributes
	AttrDocuments = "yamlio.graph.documents"
	AttrReads     = "yamlio.graph.reads"
	AttrCacheHits = "yamlio.graph.cache_hits"

	// Artifact attributes
	AttrLayout        = "yamlio.artifact.layout"
	AttrArtifactBytes = "yamlio.artifact.bytes"
	AttrRenamed       = "yamlio.artifact.renamed_anchors"

	// Error attributes
	AttrErrorKind    = "yamlio.error.kind"
	AttrErrorMessage = "error.message"
)

// SetLoadAttributes sets the load identity on a span.
func SetLoadAttributes(span trace.Span, loadID, document string) {
	span.SetAttributes(
		attribute.String(AttrLoadID, loadID),
		attribute.String(AttrDocument, document),
	)
}

// SetGraphAttributes records the shape of a resolved import graph.
func SetGraphAttributes(span trace.Span, documents, reads, cacheHits int) {
	span.SetAttributes(
		attribute.Int(AttrDocuments, documents),
		attribute.Int(AttrReads, reads),
		attribute.Int(AttrCacheHits, cacheHits),
	)
}

// SetArtifactAttributes records the assembled artifact.
func SetArtifactAttributes(span trace.Span, layout string, size, renamed int) {
	span.SetAttributes(
		attribute.String(AttrLayout, layout),
		attribute.Int(AttrArtifactBytes, size),
		attribute.Int(AttrRenamed, renamed),
	)
}

// RecordLoadError sets the span status from err. A failed span carries the
// import error kind and message and an exception event.
func RecordLoadError(span trace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.SetAttributes(
		attribute.String(AttrErrorKind, importErrors.Kind(err)),
		attribute.String(AttrErrorMessage, err.Error()),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
