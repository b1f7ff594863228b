package health

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process Cache with a background janitor that evicts
// expired entries.
type MemoryCache struct {
	mu        sync.RWMutex
	items     map[string]memoryEntry
	stopClean chan struct{}
	stopOnce  sync.Once
}

type memoryEntry struct {
	count     int
	expiresAt time.Time // zero means no expiry
}

// NewMemoryCache creates an in-process cache and starts its cleanup loop.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		items:     make(map[string]memoryEntry),
		stopClean: make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) (int, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return 0, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.Delete(context.Background(), key)
		return 0, false
	}
	return entry.count, true
}

func (c *MemoryCache) Set(_ context.Context, key string, count int, ttl time.Duration) {
	entry := memoryEntry{count: count}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = entry
	c.mu.Unlock()
}

func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Close stops the cleanup loop.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stopClean) })
	return nil
}

func (c *MemoryCache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopClean:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *MemoryCache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	for key, entry := range c.items {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(c.items, key)
		}
	}
	c.mu.Unlock()
}
