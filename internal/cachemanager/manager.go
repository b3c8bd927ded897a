// Package cachemanager provides a generic TTL cache and a read-through
// wrapper around it.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager stores values with a per-item TTL.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	// GetWithRefresh is Get, restarting the item's TTL on a hit.
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}

// Loader computes the value of a missed key from input.
type Loader[V any, I any] func(ctx context.Context, input I) (V, error)

// Stats counts read-through outcomes since creation.
type Stats struct {
	Hits     uint64
	Misses   uint64
	Failures uint64 // loader errors; a subset of Misses
}
