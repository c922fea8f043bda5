// Package field provides fluent builders for the closed column type set
// the query language understands (tql.Type): one constructor per type,
// plus chainable modifiers shared across all of them.
//
//	field.String("name")
//	field.I64("view_count").Default(int64(0))
//	field.DateTime("created_at").Immutable()
//	field.String("bio").Optional().Nillable()
//	field.ForeignKey("author_id", "users")
//
// # Field Types
//
//   - Serial: auto-incrementing primary key
//   - I32, I64: signed integers
//   - F32, F64: floating point
//   - Bool: boolean
//   - String, ByteString: UTF-8 text and binary
//   - DateTime, Date, Time: temporal columns
//   - ForeignKey: a column referencing another table's primary key
//   - Custom: a dialect-specific column with a named Go representation
//   - Unsupported: recorded for diagnostics, never usable in a query
//
// # Modifiers
//
//	field.String("email").Optional().Comment("user email")
//	field.Time("deleted_at").Optional().Nillable()
//	field.I64("login_count").Default(int64(0))
//
// Optional wraps the declared type as TypeOptional (the wrapped type is
// kept in FieldDescriptor.Of so the analyzer still knows which method
// predicates apply); Nillable only affects the Go representation
// compiler/load emits, not the SQL type.
package field
