// Package replica distributes read traffic across a pool of read-only
// database replicas and generates dialect-correct pagination SQL for the
// engines they run on.
package replica

import (
	"github.com/shrek82/replica/dialect"
	"github.com/shrek82/replica/dsn"
	"github.com/shrek82/replica/health"
	"github.com/shrek82/replica/logger"
	"github.com/shrek82/replica/pool"
)

// Re-export pool types and functions
type Pool = pool.Pool
type PoolOptions = pool.Options
type Replica = pool.Replica
type Handle = pool.Handle

var NewPool = pool.New
var NewReplica = pool.NewReplica

// Re-export descriptor types
type Descriptor = dsn.Descriptor

// Re-export dialect types and functions
type Dialect = dialect.Dialect
type OrderBy = dialect.OrderBy
type OrderColumn = dialect.OrderColumn

var DialectByName = dialect.Get

// Re-export health types and functions
type Monitor = health.Monitor

var (
	NewMonitor     = health.NewMonitor
	NewMemoryCache = health.NewMemoryCache
	NewRedisCache  = health.NewRedisCache
)

// Re-export logger types and functions
type Logger = logger.Logger

var NewStdLogger = logger.NewStdLogger
