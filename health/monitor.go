// Package health serves TTL-cached replica connectivity counts. Probing a
// pool touches every replica over the network, so callers that need the
// count often (status endpoints, schedulers) read it through a Monitor
// instead of hitting Pool.ConnectedCount directly.
package health

import (
	"context"
	"time"

	"github.com/shrek82/replica/pool"
)

const defaultCacheKey = "replica:health:connected"

// Cache stores probe results for a bounded time. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get returns the cached count for key, and whether a fresh value exists.
	Get(ctx context.Context, key string) (int, bool)
	// Set stores count under key for ttl. A zero ttl stores without expiry.
	Set(ctx context.Context, key string, count int, ttl time.Duration)
	// Delete drops the entry for key; absent keys are a no-op.
	Delete(ctx context.Context, key string)
	Close() error
}

// Monitor wraps a pool with a cached view of its connectivity.
type Monitor struct {
	pool  *pool.Pool
	cache Cache
	ttl   time.Duration

	// Key namespaces the cached count, so monitors for different pools can
	// share one cache backend.
	Key string
}

// NewMonitor creates a monitor that answers from cache for up to ttl before
// probing the pool again.
func NewMonitor(p *pool.Pool, cache Cache, ttl time.Duration) *Monitor {
	return &Monitor{pool: p, cache: cache, ttl: ttl, Key: defaultCacheKey}
}

// ConnectedCount returns the number of live replicas, at most ttl stale.
func (m *Monitor) ConnectedCount(ctx context.Context) int {
	if count, ok := m.cache.Get(ctx, m.Key); ok {
		return count
	}
	count := m.pool.ConnectedCount(ctx)
	m.cache.Set(ctx, m.Key, count, m.ttl)
	return count
}

// Healthy reports whether at least one replica was live at the last probe.
func (m *Monitor) Healthy(ctx context.Context) bool {
	return m.ConnectedCount(ctx) > 0
}

// Invalidate drops the cached count so the next read probes the pool.
func (m *Monitor) Invalidate(ctx context.Context) {
	m.cache.Delete(ctx, m.Key)
}
