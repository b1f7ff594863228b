package health

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/shrek82/replica/dsn"
	"github.com/shrek82/replica/pool"
)

// mockOpen hands out handles that answer exactly pings pings, the first of
// which is consumed by the pool's connect.
func mockOpen(t *testing.T, pings int) pool.OpenFunc {
	t.Helper()
	return func(driver, dataSource string) (*sql.DB, error) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		if err != nil {
			t.Fatalf("sqlmock.New failed: %v", err)
		}
		for i := 0; i < pings; i++ {
			mock.ExpectPing()
		}
		mock.ExpectClose()
		return db, nil
	}
}

func TestMonitorCachesConnectedCount(t *testing.T) {
	ctx := context.Background()

	// Handle answers the connect ping plus exactly one probe; a second
	// probe would find it dead, so a stable second reading proves the
	// cache was hit.
	p := pool.New(&pool.Options{Open: mockOpen(t, 2)})
	defer p.Close()
	if _, err := p.Register(ctx, []dsn.Descriptor{{DSN: "dbi:mysql:dbname=replica1"}}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	cache := NewMemoryCache()
	defer cache.Close()
	m := NewMonitor(p, cache, time.Minute)

	if got := m.ConnectedCount(ctx); got != 1 {
		t.Fatalf("Expected 1 on first probe, got %d", got)
	}
	if got := m.ConnectedCount(ctx); got != 1 {
		t.Errorf("Expected cached 1 on second read, got %d", got)
	}
	if !m.Healthy(ctx) {
		t.Error("Expected Healthy with a cached live replica")
	}

	m.Invalidate(ctx)
	if got := m.ConnectedCount(ctx); got != 0 {
		t.Errorf("Expected fresh probe to find 0 after Invalidate, got %d", got)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	cache.Set(ctx, "k", 3, 10*time.Millisecond)
	if got, ok := cache.Get(ctx, "k"); !ok || got != 3 {
		t.Fatalf("Expected fresh value 3, got %d (ok=%v)", got, ok)
	}

	time.Sleep(25 * time.Millisecond)
	if _, ok := cache.Get(ctx, "k"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestMemoryCacheNoExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	cache.Set(ctx, "k", 7, 0)
	time.Sleep(5 * time.Millisecond)
	if got, ok := cache.Get(ctx, "k"); !ok || got != 7 {
		t.Errorf("Expected zero-ttl entry to persist, got %d (ok=%v)", got, ok)
	}

	cache.Delete(ctx, "k")
	if _, ok := cache.Get(ctx, "k"); ok {
		t.Error("Expected entry removed after Delete")
	}
}
