package dialect

import "errors"

var (
	// ErrInvalidRowCount is returned when a page is requested with a
	// non-positive row count.
	ErrInvalidRowCount = errors.New("row count must be positive")
	// ErrInvalidOffset is returned when a page is requested with a
	// negative offset.
	ErrInvalidOffset = errors.New("offset must not be negative")
)

// Dialect represents the interface for database-specific SQL generation.
// Each database (MySQL, SQL Server, etc.) must implement this interface to
// be supported.
type Dialect interface {
	// Name returns the registered dialect name
	Name() string
	// Quote wraps a name (table or column) in database-specific quotes
	Quote(name string) string
	// Placeholder returns the parameter placeholder for the index-th
	// parameter (1-based)
	Placeholder(index int) string
	// PageSQL wraps an already-built SELECT statement so that it returns
	// rowCount rows starting offset rows in. The order spec may be nil.
	// Fails if rowCount <= 0 or offset < 0.
	PageSQL(baseSQL string, order *OrderBy, rowCount, offset int) (string, error)
}

var dialects = make(map[string]Dialect)

// Register registers a new dialect for a given driver name
func Register(name string, d Dialect) {
	dialects[name] = d
}

// Get retrieves a registered dialect by driver name
func Get(name string) (Dialect, bool) {
	d, ok := dialects[name]
	return d, ok
}

// checkPage validates the page bounds shared by every dialect.
func checkPage(rowCount, offset int) error {
	if rowCount <= 0 {
		return ErrInvalidRowCount
	}
	if offset < 0 {
		return ErrInvalidOffset
	}
	return nil
}
