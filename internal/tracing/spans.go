package tracing

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanStatusRefresh = "status.refresh"
	SpanDocumentLoad  = "document.load"
)

// Span attribute keys.
const (
	AttrEncoding      = "charcode.encoding"
	AttrStrategy      = "charcode.strategy"
	AttrCaretUnits    = "charcode.caret.units"
	AttrCaretLen      = "charcode.caret.len"
	AttrCacheHit      = "charcode.cache.hit"
	AttrDocumentPath  = "document.path"
	AttrDocumentLines = "document.lines"
	AttrInputEncoding = "document.input_encoding"
)

// RecordError marks span as failed with err.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
