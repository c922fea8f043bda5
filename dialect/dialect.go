// Package dialect provides the database dialect abstraction used by the
// SQL generator (C5): the set of supported backend names and the
// minimal driver surface dialect/sql builds on.
package dialect

import "context"

// Supported dialect names, used both as driver names (database/sql) and
// as dispatch keys for dialect-specific SQL rendering (placeholder
// style, identifier quoting, date/time functions).
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite3"
)

// ExecQuerier is implemented by both Driver and Tx.
type ExecQuerier interface {
	Exec(ctx context.Context, query string, args, v any) error
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the minimal database driver surface the SQL generator's
// emitted code and the runtime query/exec helpers bind against.
type Driver interface {
	ExecQuerier
	Tx(ctx context.Context) (Tx, error)
	Close() error
	Dialect() string
}

// Tx extends Driver with transaction control.
type Tx interface {
	Driver
	Commit() error
	Rollback() error
}
