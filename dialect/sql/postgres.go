package sql

import (
	_ "github.com/lib/pq"
)

// Importing this package registers the "postgres" database/sql driver
// name, so Open(dialect.Postgres, dsn) and OpenWithStats("postgres", dsn,
// ...) work without callers having to remember their own blank import of
// a Postgres driver.
