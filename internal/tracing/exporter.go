package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var errExporterClosed = errors.New("trace exporter is shut down")

// FileExporter appends finished spans to a JSONL trace log. Status refresh
// spans get their charcode attributes lifted into top level fields so the
// log can be grepped by encoding or strategy.
type FileExporter struct {
	mu  sync.Mutex
	f   *os.File
	buf *bufio.Writer
}

var _ sdktrace.SpanExporter = (*FileExporter)(nil)

// NewFileExporter opens path for appending, creating parent directories.
func NewFileExporter(path string) (*FileExporter, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- user configured path
	if err != nil {
		return nil, fmt.Errorf("opening trace log: %w", err)
	}
	return &FileExporter{f: f, buf: bufio.NewWriter(f)}, nil
}

// ExportSpans writes one line per span and flushes once per batch.
func (e *FileExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	if len(spans) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return errExporterClosed
	}

	enc := json.NewEncoder(e.buf)
	for _, s := range spans {
		if err := enc.Encode(newSpanRecord(s)); err != nil {
			return fmt.Errorf("writing span %s: %w", s.Name(), err)
		}
	}
	return e.buf.Flush()
}

// Shutdown flushes and closes the log. It is safe to call twice.
func (e *FileExporter) Shutdown(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return nil
	}
	err := errors.Join(e.buf.Flush(), e.f.Close())
	e.f, e.buf = nil, nil
	return err
}

// SpanRecord is one line of the trace log.
type SpanRecord struct {
	TraceID    string  `json:"trace_id"`
	SpanID     string  `json:"span_id"`
	ParentID   string  `json:"parent_id,omitempty"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Start      string  `json:"start"`
	DurationMs float64 `json:"duration_ms"`
	Status     string  `json:"status"`
	StatusMsg  string  `json:"status_message,omitempty"`

	// Lifted from the charcode.* attributes when present.
	Encoding string `json:"encoding,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	CacheHit *bool  `json:"cache_hit,omitempty"`

	Attributes map[string]any `json:"attributes,omitempty"`
	Events     []EventRecord  `json:"events,omitempty"`
}

// EventRecord is a span event inside a SpanRecord.
type EventRecord struct {
	Name       string         `json:"name"`
	OffsetMs   float64        `json:"offset_ms"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func newSpanRecord(s sdktrace.ReadOnlySpan) SpanRecord {
	sc := s.SpanContext()
	st := s.Status()
	start := s.StartTime()

	rec := SpanRecord{
		TraceID:    sc.TraceID().String(),
		SpanID:     sc.SpanID().String(),
		Name:       s.Name(),
		Kind:       strings.ToUpper(s.SpanKind().String()),
		Start:      start.Format(time.RFC3339Nano),
		DurationMs: millis(s.EndTime().Sub(start)),
		Status:     strings.ToUpper(st.Code.String()),
		StatusMsg:  st.Description,
		Attributes: attrMap(s.Attributes()),
	}
	if p := s.Parent(); p.IsValid() {
		rec.ParentID = p.SpanID().String()
	}

	if v, ok := rec.Attributes[AttrEncoding].(string); ok {
		rec.Encoding = v
	}
	if v, ok := rec.Attributes[AttrStrategy].(string); ok {
		rec.Strategy = v
	}
	if v, ok := rec.Attributes[AttrCacheHit].(bool); ok {
		rec.CacheHit = &v
	}

	for _, ev := range s.Events() {
		rec.Events = append(rec.Events, EventRecord{
			Name:       ev.Name,
			OffsetMs:   millis(ev.Time.Sub(start)),
			Attributes: attrMap(ev.Attributes),
		})
	}
	return rec
}

func attrMap(kvs []attribute.KeyValue) map[string]any {
	if len(kvs) == 0 {
		return nil
	}
	m := make(map[string]any, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value.AsInterface()
	}
	return m
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
