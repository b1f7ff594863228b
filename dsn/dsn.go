// Package dsn parses DBI-style connection descriptors of the form
// "dbi:<driver>:<params>" and maps them onto database/sql drivers.
package dsn

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMalformed is returned when a connection string does not match the
	// dbi:<driver>:<params> shape.
	ErrMalformed = errors.New("malformed connection descriptor")
	// ErrUnknownDriver is returned when the DBI driver token has no
	// registered database/sql driver mapping.
	ErrUnknownDriver = errors.New("unknown driver")
)

// driverNames maps DBI driver tokens to database/sql driver names.
// The corresponding drivers must be imported by the final binary.
var driverNames = map[string]string{
	"mysql":  "mysql",    // github.com/go-sql-driver/mysql
	"Pg":     "postgres", // github.com/lib/pq
	"SQLite": "sqlite3",  // github.com/mattn/go-sqlite3
}

// Descriptor is the tuple needed to establish one replica connection.
// DSN is the DBI-style connection string; User, Password and Options are
// passed through to the driver.
type Descriptor struct {
	DSN      string
	User     string
	Password string
	Options  map[string]string
}

// split breaks the DSN into its driver token and parameter section.
func (d Descriptor) split() (driver, params string, err error) {
	rest, ok := strings.CutPrefix(d.DSN, "dbi:")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrMalformed, d.DSN)
	}
	driver, params, ok = strings.Cut(rest, ":")
	if !ok || driver == "" || params == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformed, d.DSN)
	}
	return driver, params, nil
}

// Key returns the stable pool key for this descriptor: the text following
// the second colon-delimited segment of the connection string. A DSN that
// does not match the expected shape is an explicit error, never an empty key.
func (d Descriptor) Key() (string, error) {
	_, params, err := d.split()
	if err != nil {
		return "", err
	}
	return params, nil
}

// DriverName returns the database/sql driver name for this descriptor.
func (d Descriptor) DriverName() (string, error) {
	driver, _, err := d.split()
	if err != nil {
		return "", err
	}
	name, ok := driverNames[driver]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	return name, nil
}

// DriverDSN renders the driver-native data source name, folding the
// credentials and options into the form each driver expects.
func (d Descriptor) DriverDSN() (string, error) {
	driver, params, err := d.split()
	if err != nil {
		return "", err
	}
	switch driver {
	case "mysql":
		return d.mysqlDSN(params), nil
	case "Pg":
		return d.postgresDSN(params), nil
	case "SQLite":
		return d.sqliteDSN(params), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}

// mysqlDSN renders [user[:password]@]tcp(host:port)/dbname from DBI params
// shaped as key=value pairs separated by ";".
func (d Descriptor) mysqlDSN(params string) string {
	attrs := parseAttrs(params)
	host := attrs["host"]
	if host == "" {
		host = "127.0.0.1"
	}
	port := attrs["port"]
	if port == "" {
		port = "3306"
	}
	var b strings.Builder
	if d.User != "" {
		b.WriteString(d.User)
		if d.Password != "" {
			b.WriteString(":")
			b.WriteString(d.Password)
		}
		b.WriteString("@")
	}
	fmt.Fprintf(&b, "tcp(%s:%s)/%s", host, port, attrs["dbname"])
	sep := "?"
	for _, k := range sortedKeys(d.Options) {
		fmt.Fprintf(&b, "%s%s=%s", sep, k, d.Options[k])
		sep = "&"
	}
	return b.String()
}

// postgresDSN renders the space-separated key=value form lib/pq accepts.
// DBI Pg params already use key=value pairs, separated by ";".
func (d Descriptor) postgresDSN(params string) string {
	pairs := strings.Split(params, ";")
	if d.User != "" {
		pairs = append(pairs, "user="+d.User)
	}
	if d.Password != "" {
		pairs = append(pairs, "password="+d.Password)
	}
	for _, k := range sortedKeys(d.Options) {
		pairs = append(pairs, k+"="+d.Options[k])
	}
	return strings.Join(pairs, " ")
}

// sqliteDSN returns the database file path; DBI uses dbname=<path>.
func (d Descriptor) sqliteDSN(params string) string {
	attrs := parseAttrs(params)
	if path, ok := attrs["dbname"]; ok {
		return path
	}
	return params
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseAttrs(params string) map[string]string {
	attrs := make(map[string]string)
	for _, pair := range strings.Split(params, ";") {
		if k, v, ok := strings.Cut(pair, "="); ok {
			attrs[k] = v
		}
	}
	return attrs
}
