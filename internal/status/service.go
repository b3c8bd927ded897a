// Package status turns the caret text into the status bar text, caching
// resolutions and tracing each refresh.
package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/charcode/internal/cachemanager"
	"github.com/zjrosen/charcode/internal/charcode"
	"github.com/zjrosen/charcode/internal/log"
	"github.com/zjrosen/charcode/internal/tracing"
)

// Resolver is the part of charcode.Resolver the service needs.
type Resolver interface {
	Resolve(text charcode.CaretText, target charcode.Encoding) (charcode.Resolution, error)
}

// Key identifies a cached resolution: "<ENCODING>:<hex units>".
type Key string

// CacheKey builds the cache key for text under target.
func CacheKey(text charcode.CaretText, target charcode.Encoding) Key {
	var b strings.Builder
	b.WriteString(target.String())
	b.WriteByte(':')
	for _, u := range text.Units() {
		fmt.Fprintf(&b, "%04X", u)
	}
	return Key(b.String())
}

type request struct {
	text   charcode.CaretText
	target charcode.Encoding
}

// Service resolves caret text with an optional read-through cache.
type Service struct {
	resolver Resolver
	manager  cachemanager.CacheManager[Key, charcode.Resolution]
	cache    *cachemanager.ReadThroughCache[Key, charcode.Resolution, request]
	ttl      time.Duration
	tracer   trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables caching in manager for ttl.
func WithCache(manager cachemanager.CacheManager[Key, charcode.Resolution], ttl time.Duration) Option {
	return func(s *Service) {
		s.manager = manager
		s.ttl = ttl
	}
}

// WithTracer sets the tracer used for refresh spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// NewService returns a Service. Without WithCache every refresh resolves.
func NewService(resolver Resolver, opts ...Option) *Service {
	s := &Service{
		resolver: resolver,
		tracer:   noop.NewTracerProvider().Tracer("status"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = cachemanager.NewReadThroughCache[Key, charcode.Resolution, request](s.manager, s.resolve, s.manager == nil)
	return s
}

// NewDefaultService wires the standard resolver and an in-memory cache.
// ttl <= 0 disables caching.
func NewDefaultService(ttl time.Duration, tracer trace.Tracer) *Service {
	opts := []Option{WithTracer(tracer)}
	if ttl > 0 {
		manager := cachemanager.NewInMemoryCacheManager[Key, charcode.Resolution]("status", ttl, cachemanager.DefaultCleanupInterval)
		opts = append(opts, WithCache(manager, ttl))
	}
	return NewService(charcode.NewResolver(charcode.NewTextConverter()), opts...)
}

func (s *Service) resolve(_ context.Context, req request) (charcode.Resolution, error) {
	return s.resolver.Resolve(req.text, req.target)
}

// Refresh resolves text for target. Empty text returns an empty Resolution
// without touching the cache.
func (s *Service) Refresh(ctx context.Context, text charcode.CaretText, target charcode.Encoding) (charcode.Resolution, error) {
	log.Debug(log.CatResolve, "caret", "len", text.Len(), "char", text.String(), "enc", target.String())

	if text.IsEmpty() {
		return charcode.Resolution{}, nil
	}

	key := CacheKey(text, target)
	ctx, span := s.tracer.Start(ctx, tracing.SpanStatusRefresh, trace.WithAttributes(
		attribute.String(tracing.AttrEncoding, target.String()),
		attribute.String(tracing.AttrCaretUnits, string(key)),
		attribute.Int(tracing.AttrCaretLen, text.Len()),
	))
	defer span.End()

	res, hit, err := s.cache.GetWithRefresh(ctx, key, request{text: text, target: target}, s.ttl)
	if err != nil {
		tracing.RecordError(span, err)
		log.ErrorErr(log.CatResolve, "Resolve failed", err, "key", string(key))
		return charcode.Resolution{}, fmt.Errorf("refreshing status: %w", err)
	}

	span.SetAttributes(
		attribute.String(tracing.AttrStrategy, res.Strategy),
		attribute.Bool(tracing.AttrCacheHit, hit),
	)
	log.Debug(log.CatResolve, "resolved", "key", string(key), "strategy", res.Strategy, "status", res.Status, "cached", hit)
	return res, nil
}

// Flush drops cached resolutions.
func (s *Service) Flush(ctx context.Context) error {
	return s.cache.Flush(ctx)
}

// Stats reports cache hits and misses. Without a cache every refresh of a
// non-empty caret text counts as a miss.
func (s *Service) Stats() cachemanager.Stats {
	return s.cache.Stats()
}
