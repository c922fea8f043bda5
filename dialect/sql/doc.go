// Package sql provides SQL query building primitives and database dialect abstraction.
//
// This package is the foundation for generating and executing SQL queries across
// different database systems (PostgreSQL, MySQL, SQLite). It provides a fluent API
// for constructing type-safe SQL statements.
//
// # Builder Types
//
// The package provides specialized builders for different SQL operations:
//
//   - Builder: Low-level SQL string builder with identifier quoting
//   - Selector: SELECT query builder with joins, predicates, and pagination
//   - InsertBuilder: INSERT statement builder with RETURNING support
//   - UpdateBuilder: UPDATE statement builder with SET and WHERE clauses
//   - DeleteBuilder: DELETE statement builder with WHERE predicates
//
// # Dialect Support
//
// SQL generation adapts to different database dialects:
//
//	import "github.com/tql-go/tql/dialect"
//
//	// PostgreSQL
//	b := sql.Dialect(dialect.Postgres)
//	b.Select("id", "name").From("users").Where(sql.EQ("status", "active"))
//
//	// MySQL
//	b := sql.Dialect(dialect.MySQL)
//
// # Predicates
//
// The package provides predicate functions. Each binds its value as a
// placeholder argument (`?`, or `$n` on PostgreSQL); the comments below
// write the value inline for readability:
//
//	// Equality
//	sql.EQ("name", "john")           // name = 'john'
//	sql.NEQ("status", "deleted")     // status <> 'deleted'
//
//	// Comparison
//	sql.GT("age", 18)                // age > 18
//	sql.LTE("price", 100.0)          // price <= 100.0
//
//	// String matching
//	sql.Contains("name", "john")     // name LIKE '%john%'
//	sql.HasPrefix("email", "admin")  // email LIKE 'admin%'
//
//	// NULL checks
//	sql.IsNull("deleted_at")         // deleted_at IS NULL
//	sql.NotNull("email")             // email IS NOT NULL
//
//	// IN clauses
//	sql.In("status", "active", "pending")  // status IN ('active', 'pending')
//
// # Joins
//
// Selector.Join takes the joined table and its ON condition as strings:
//
//	sql.Dialect(dialect.Postgres).Select("u.id", "u.name", "p.title").
//	    From("users AS u").
//	    Join("posts AS p", "u.id = p.user_id").
//	    Where(sql.EQ("u.status", "active"))
//
// # Pagination
//
// Offset-based pagination uses Limit and Offset. The Selector has no
// cursor-based pagination and no row-locking (FOR UPDATE) clause:
//
//	sql.Dialect(dialect.Postgres).Select().From("users").Offset(20).Limit(10)
//
// # Usage
//
// The code cmd/tqlc generates does not use these builders: it passes its
// SQL text directly to a tql.Conn. The builders can be used directly for
// custom queries:
//
//	query, args := sql.Dialect(dialect.SQLite).Select().From("users").
//	    Where(sql.GT("age", 18)).
//	    Query()
package sql
