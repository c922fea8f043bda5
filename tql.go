// Package tql implements a compile-time embedded query language: schema
// declarations written as ordinary Go structs are registered into a
// process-global schema registry, and query expressions written with
// [Query] are lowered ahead of time (via cmd/tqlc) into parameterized SQL.
//
// This package holds the vocabulary shared by every stage of the pipeline:
// the closed column [Type] set, the [Field]/[Schema]/[Mixin] declaration
// interfaces consumed by compiler/load, and the marker function used to
// tag query-macro call sites inside ordinary Go source.
package tql

import "github.com/tql-go/tql/schema"

// Type is the closed set of column types the schema registry accepts.
// It intentionally mirrors a tagged union: Optional, ForeignKey, Custom
// and UnsupportedType carry an auxiliary payload in FieldDescriptor
// (Of/Target) rather than becoming separate Go types, so that the whole
// set stays a single comparable, switchable value.
type Type int

// The closed column type set.
const (
	TypeInvalid Type = iota
	TypeSerial
	TypeI32
	TypeI64
	TypeF32
	TypeF64
	TypeBool
	TypeString
	TypeByteString
	TypeDateTime
	TypeDate
	TypeTime
	TypeOptional
	TypeForeignKey
	TypeCustom
	TypeUnsupported
)

// String renders the type's name in diagnostics and generated code.
func (t Type) String() string {
	switch t {
	case TypeSerial:
		return "Serial"
	case TypeI32:
		return "I32"
	case TypeI64:
		return "I64"
	case TypeF32:
		return "F32"
	case TypeF64:
		return "F64"
	case TypeBool:
		return "Bool"
	case TypeString:
		return "String"
	case TypeByteString:
		return "ByteString"
	case TypeDateTime:
		return "DateTime"
	case TypeDate:
		return "Date"
	case TypeTime:
		return "Time"
	case TypeOptional:
		return "Optional"
	case TypeForeignKey:
		return "ForeignKey"
	case TypeCustom:
		return "Custom"
	case TypeUnsupported:
		return "UnsupportedType"
	default:
		return "Invalid"
	}
}

// Numeric reports whether values of this type participate in the integer
// or floating-point comparison families (used by the analyzer to type
// literal operands).
func (t Type) Numeric() bool {
	switch t {
	case TypeSerial, TypeI32, TypeI64, TypeF32, TypeF64:
		return true
	default:
		return false
	}
}

// Textual reports whether the type is string-like (accepts the String
// method predicates: contains, starts_with, ends_with, regex, len).
func (t Type) Textual() bool {
	return t == TypeString || t == TypeByteString
}

// Temporal reports whether the type supports datetime-part extraction.
func (t Type) Temporal() bool {
	return t == TypeDateTime || t == TypeDate || t == TypeTime
}

// FieldDescriptor is the fully-resolved shape of one declared column,
// produced by a schema/field builder and deposited into the registry by
// compiler/load.
type FieldDescriptor struct {
	// Name is the column name, as written in the schema declaration.
	Name string
	// Type is the field's declared Type.
	Type Type
	// Of is the wrapped type when Type == TypeOptional.
	Of Type
	// Target is the referenced table name when Type == TypeForeignKey or
	// TypeCustom, or the original (unsupported) type's printed form when
	// Type == TypeUnsupported.
	Target string
	// Comment is a free-form description surfaced in generated DDL.
	Comment string
	// Default, when non-nil, is the value (or zero-arg func() T) used for
	// an omitted column on insert.
	Default any
	// UpdateDefault, when non-nil, is the value (or zero-arg func() T)
	// applied on every update, regardless of an explicit assignment.
	UpdateDefault any
	// Immutable marks a field that insert may set but update may not.
	Immutable bool
	// Nillable marks an Optional field whose Go representation is a
	// pointer rather than a zero-value sentinel.
	Nillable bool
	// Annotations lets downstream consumers (the generator, contrib
	// packages) attach additional, generator-specific metadata.
	Annotations []schema.Annotation
}

// Field is implemented by every schema/field builder value. Descriptor
// captures the builder's accumulated configuration as an immutable value.
type Field interface {
	Descriptor() *FieldDescriptor
}

// Schema is embedded by every table declaration struct, e.g.:
//
//	type User struct{ tql.Schema }
//
// Embedding supplies the zero-value Mixin/Annotations methods; a
// declaration only needs to implement Fields().
type Schema struct{}

// Mixin returns the mixins applied before this schema's own fields.
// Override to compose reusable field groups (see schema/mixin).
func (Schema) Mixin() []Mixin { return nil }

// Annotations returns table-level annotations.
func (Schema) Annotations() []schema.Annotation { return nil }

// TableName overrides the default (pluralized, snake_case) table name.
// Override to customize; the zero value means "use the default".
func (Schema) TableName() string { return "" }

// Declaration is implemented by every `type X struct{ tql.Schema }` table
// declaration; compiler/load discovers types satisfying this interface.
type Declaration interface {
	Fields() []Field
}

// Mixin is a reusable, named group of fields that can be embedded into
// multiple schema declarations.
type Mixin interface {
	Fields() []Field
}

// Query is the marker function recognized by cmd/tqlc: a call
//
//	tql.Query(conn, `User.filter(name == "ada").sort(-created_at)[0..10]`)
//
// is replaced at generation time with the lowered SQL and its argument
// list, bound to conn. It is never called at runtime — the generator
// rewrites the call site; a source file that still contains an
// unrewritten call (e.g. because generation failed) gets this fallback,
// which always reports an error so the mistake can't pass silently.
func Query(conn Conn, expr string, args ...any) (Rows, error) {
	return nil, &GenerationError{Expr: expr}
}

// Conn is the minimal connection shape the generated code binds queries
// against: a database/sql-compatible ExecContext/QueryContext pair.
type Conn interface {
	ExecContext(query string, args ...any) (Result, error)
	QueryContext(query string, args ...any) (Rows, error)
}

// Result mirrors database/sql.Result to avoid an import cycle with the
// generated code's own driver wiring.
type Result interface {
	LastInsertId() (int64, error)
	RowsAffected() (int64, error)
}

// Rows mirrors the subset of database/sql.Rows that the generated query
// functions return; they return it undecoded.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// GenerationError is returned by an un-rewritten Query call site.
type GenerationError struct {
	Expr string
}

func (e *GenerationError) Error() string {
	return "tql: query expression was not lowered by cmd/tqlc: " + e.Expr
}
