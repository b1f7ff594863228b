// Package pool manages a keyed collection of read-only database replicas:
// bulk registration from connection descriptors, keyed lookup and removal,
// and live connectivity counting.
package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shrek82/replica/dsn"
	"github.com/shrek82/replica/logger"
)

// ErrConnect wraps a failed connect attempt during registration.
var ErrConnect = errors.New("replica connect failed")

// Options defines the configuration for a replica pool.
type Options struct {
	// Open overrides how database handles are opened. Nil means sql.Open.
	Open OpenFunc
	// Logger receives connect and probe events. Nil disables logging.
	Logger logger.Logger
	// ConnectTimeout bounds each connect attempt and liveness probe.
	// Zero means no bound beyond the caller's context.
	ConnectTimeout time.Duration
}

// Pool is a keyed collection of replicas. All methods are safe for
// concurrent use; the map is guarded internally.
type Pool struct {
	mu       sync.RWMutex
	replicas map[string]*Replica

	open    OpenFunc
	logger  logger.Logger
	timeout time.Duration
}

// New creates an empty pool.
func New(opts *Options) *Pool {
	p := &Pool{replicas: make(map[string]*Replica)}
	if opts != nil {
		p.open = opts.Open
		p.logger = opts.Logger
		p.timeout = opts.ConnectTimeout
	}
	return p
}

// Register creates, connects and stores one replica per descriptor, keyed by
// the descriptor's database-identifying segment. Descriptors are processed
// independently: a malformed descriptor or failed connect skips that replica
// but never aborts the batch. The successfully registered replicas are
// returned in registration order, alongside the joined per-descriptor
// errors (nil if all succeeded). A key collision overwrites the existing
// entry and closes its handle.
func (p *Pool) Register(ctx context.Context, descs []dsn.Descriptor) ([]*Replica, error) {
	var created []*Replica
	var errs []error
	for i, desc := range descs {
		key, err := desc.Key()
		if err != nil {
			errs = append(errs, fmt.Errorf("descriptor %d: %w", i, err))
			continue
		}
		r := NewReplica(desc, p.open)
		if err := p.connect(ctx, r); err != nil {
			p.warnf("replica %s: %v", key, err)
			errs = append(errs, fmt.Errorf("descriptor %d (%s): %w: %v", i, key, ErrConnect, err))
			continue
		}
		p.Set(key, r)
		p.infof("replica %s registered", key)
		created = append(created, r)
	}
	return created, errors.Join(errs...)
}

func (p *Pool) connect(ctx context.Context, r *Replica) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return r.Connect(ctx)
}

// Get returns the replica stored under key, and whether it exists.
func (p *Pool) Get(key string) (*Replica, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, ok := p.replicas[key]
	return r, ok
}

// Set inserts or overwrites the replica under key. An overwritten replica's
// handle is closed; the pool owns entry lifetimes.
func (p *Pool) Set(key string, r *Replica) {
	p.mu.Lock()
	old := p.replicas[key]
	p.replicas[key] = r
	p.mu.Unlock()

	if old != nil && old != r {
		old.Close()
	}
}

// Delete removes the replica under key and closes its handle. Deleting an
// absent key is a no-op.
func (p *Pool) Delete(key string) {
	p.mu.Lock()
	old := p.replicas[key]
	delete(p.replicas, key)
	p.mu.Unlock()

	if old != nil {
		old.Close()
	}
}

// Len returns the number of registered replicas.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.replicas)
}

// Empty reports whether the pool holds no replicas.
func (p *Pool) Empty() bool {
	return p.Len() == 0
}

// All returns the current replicas in no particular order.
func (p *Pool) All() []*Replica {
	p.mu.RLock()
	defer p.mu.RUnlock()
	all := make([]*Replica, 0, len(p.replicas))
	for _, r := range p.replicas {
		all = append(all, r)
	}
	return all
}

// ConnectedCount probes every replica and returns how many report a live
// connection. Each probe is a real network round trip, so this is O(n) with
// per-entry I/O cost — do not call it in a tight loop; cache the result if
// it is needed often. The replica set is snapshotted before probing, so
// concurrent Register/Delete calls cannot skew the iteration.
func (p *Pool) ConnectedCount(ctx context.Context) int {
	count := 0
	for _, r := range p.All() {
		if p.connected(ctx, r) {
			count++
		}
	}
	return count
}

// HasConnected reports whether at least one replica is live. It probes
// replicas until one answers, so it is cheaper than ConnectedCount but
// still carries network cost.
func (p *Pool) HasConnected(ctx context.Context) bool {
	for _, r := range p.All() {
		if p.connected(ctx, r) {
			return true
		}
	}
	return false
}

func (p *Pool) connected(ctx context.Context, r *Replica) bool {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return r.Connected(ctx)
}

// Close closes every replica and empties the pool.
func (p *Pool) Close() error {
	p.mu.Lock()
	replicas := p.replicas
	p.replicas = make(map[string]*Replica)
	p.mu.Unlock()

	var errs []error
	for key, r := range replicas {
		if err := r.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (p *Pool) infof(format string, args ...any) {
	if p.logger != nil {
		p.logger.Info(format, args...)
	}
}

func (p *Pool) warnf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(format, args...)
	}
}
