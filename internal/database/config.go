package database

import (
	"fmt"
	"strings"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds database configuration
type Config struct {
	Driver string
	DSN    string
}

// ParseURL turns a DATABASE_URL into a driver and DSN. Accepted forms are
// sqlite:///path/to/file.db, sqlite://:memory:, postgres://... and
// postgresql://..., or a bare path which is treated as a sqlite file.
func ParseURL(url string) (*Config, error) {
	url = strings.TrimSpace(url)
	switch {
	case url == "":
		return nil, fmt.Errorf("database URL is empty")
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return &Config{Driver: DriverPostgres, DSN: url}, nil
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		// sqlite:///trading.db is a relative path, sqlite:////abs/x.db an absolute one.
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			return nil, fmt.Errorf("sqlite URL %q has no path", url)
		}
		return &Config{Driver: DriverSQLite, DSN: path}, nil
	case strings.Contains(url, "://"):
		return nil, fmt.Errorf("unsupported database URL scheme in %q", url)
	default:
		return &Config{Driver: DriverSQLite, DSN: url}, nil
	}
}

// sqliteDSN appends the connection options the sqlite store is opened with.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	// Foreign keys are declared by the schema but not enforced.
	return path + sep + "_foreign_keys=off&_busy_timeout=5000"
}
