package pool

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/shrek82/replica/dsn"
)

// Handle is the connection surface a replica exposes to query-routing code.
// *sql.DB satisfies it; tests substitute mock implementations.
type Handle interface {
	PingContext(ctx context.Context) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Close() error
}

// OpenFunc opens a database handle for a driver name and data source name.
// The default is sql.Open; tests inject sqlmock-backed handles.
type OpenFunc func(driverName, dataSourceName string) (*sql.DB, error)

// Replica wraps one read-only database connection. The handle is established
// by Connect and owned by the replica until Close.
type Replica struct {
	desc dsn.Descriptor
	open OpenFunc

	mu sync.RWMutex
	db Handle
}

// NewReplica creates an unconnected replica for the given descriptor.
// A nil open falls back to sql.Open.
func NewReplica(desc dsn.Descriptor, open OpenFunc) *Replica {
	if open == nil {
		open = sql.Open
	}
	return &Replica{desc: desc, open: open}
}

// Descriptor returns the connection descriptor this replica was built from.
func (r *Replica) Descriptor() dsn.Descriptor {
	return r.desc
}

// Handle returns the underlying database handle, or nil before Connect.
func (r *Replica) Handle() Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.db
}

// Connect resolves the descriptor to a driver DSN, opens the handle and
// verifies it with a ping bounded by ctx. Reconnecting an already connected
// replica closes the previous handle first.
func (r *Replica) Connect(ctx context.Context) error {
	driver, err := r.desc.DriverName()
	if err != nil {
		return err
	}
	dataSource, err := r.desc.DriverDSN()
	if err != nil {
		return err
	}
	db, err := r.open(driver, dataSource)
	if err != nil {
		return fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping %s: %w", driver, err)
	}

	r.mu.Lock()
	old := r.db
	r.db = db
	r.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

// Connected reports whether the replica currently holds a live connection.
// It pings the server, so each call carries real network cost; bound it
// with ctx.
func (r *Replica) Connected(ctx context.Context) bool {
	h := r.Handle()
	return h != nil && h.PingContext(ctx) == nil
}

// Close releases the underlying handle. Safe to call on an unconnected
// replica.
func (r *Replica) Close() error {
	r.mu.Lock()
	db := r.db
	r.db = nil
	r.mu.Unlock()

	if db == nil {
		return nil
	}
	return db.Close()
}
