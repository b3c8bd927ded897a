package cachemanager

import (
	"context"
	"sync/atomic"
	"time"
)

// ReadThroughCache answers from a CacheManager and fills misses with a
// Loader. Loader errors are returned and never stored.
type ReadThroughCache[K comparable, V any, I any] struct {
	manager CacheManager[K, V]
	load    Loader[V, I]
	bypass  bool

	hits     atomic.Uint64
	misses   atomic.Uint64
	failures atomic.Uint64
}

// NewReadThroughCache wraps manager. With bypass set, or a nil manager,
// every lookup calls load.
func NewReadThroughCache[K comparable, V any, I any](manager CacheManager[K, V], load Loader[V, I], bypass bool) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		manager: manager,
		load:    load,
		bypass:  bypass || manager == nil,
	}
}

// Get returns the value for key, loading it from input on a miss.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (value V, hit bool, err error) {
	return r.lookup(ctx, key, input, ttl, false)
}

// GetWithRefresh is Get, restarting the TTL of a cached value.
func (r *ReadThroughCache[K, V, I]) GetWithRefresh(ctx context.Context, key K, input I, ttl time.Duration) (value V, hit bool, err error) {
	return r.lookup(ctx, key, input, ttl, true)
}

func (r *ReadThroughCache[K, V, I]) lookup(ctx context.Context, key K, input I, ttl time.Duration, refresh bool) (V, bool, error) {
	if !r.bypass {
		var (
			value V
			ok    bool
		)
		if refresh {
			value, ok = r.manager.GetWithRefresh(ctx, key, ttl)
		} else {
			value, ok = r.manager.Get(ctx, key)
		}
		if ok {
			r.hits.Add(1)
			return value, true, nil
		}
	}

	r.misses.Add(1)
	value, err := r.load(ctx, input)
	if err != nil {
		r.failures.Add(1)
		return value, false, err
	}
	if !r.bypass {
		r.manager.Set(ctx, key, value, ttl)
	}
	return value, false, nil
}

// Flush clears the underlying cache. Counters are kept.
func (r *ReadThroughCache[K, V, I]) Flush(ctx context.Context) error {
	if r.manager == nil {
		return nil
	}
	return r.manager.Flush(ctx)
}

// Stats returns the lookup counters.
func (r *ReadThroughCache[K, V, I]) Stats() Stats {
	return Stats{
		Hits:     r.hits.Load(),
		Misses:   r.misses.Load(),
		Failures: r.failures.Load(),
	}
}
