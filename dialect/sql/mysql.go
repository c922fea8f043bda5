package sql

import (
	_ "github.com/go-sql-driver/mysql"
)

// Importing this package registers the "mysql" database/sql driver name.
// Dialect parity (§ Non-goals: dialect completeness) means the generator
// itself never targets MySQL, but Open(dialect.MySQL, dsn) still needs a
// registered driver to be usable at all by anything that calls it.
