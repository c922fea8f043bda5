// Package field provides fluent builders for the closed column type set
// (tql.Type): one constructor per type, plus chainable modifiers shared
// across all of them (Optional, Default, Comment, ...).
//
// Field names follow database conventions (snake_case); compiler/load
// maps them to PascalCase Go struct field names.
//
//	field.String("name")
//	field.I64("view_count").Default(int64(0))
//	field.DateTime("created_at").Immutable()
//	field.ForeignKey("author_id", "users")
package field

import (
	"github.com/tql-go/tql"
	"github.com/tql-go/tql/schema"
)

// Builder accumulates a FieldDescriptor's configuration. The zero value
// is not useful; use one of the type constructors below.
type Builder struct {
	desc tql.FieldDescriptor
}

// Descriptor returns the accumulated, immutable descriptor. Builder
// satisfies tql.Field through this method.
func (b *Builder) Descriptor() *tql.FieldDescriptor {
	d := b.desc
	return &d
}

func newBuilder(name string, t tql.Type) *Builder {
	return &Builder{desc: tql.FieldDescriptor{Name: name, Type: t}}
}

// Serial declares an auto-incrementing primary key column.
func Serial(name string) *Builder { return newBuilder(name, tql.TypeSerial) }

// I32 declares a 32-bit integer column.
func I32(name string) *Builder { return newBuilder(name, tql.TypeI32) }

// I64 declares a 64-bit integer column.
func I64(name string) *Builder { return newBuilder(name, tql.TypeI64) }

// F32 declares a 32-bit floating point column.
func F32(name string) *Builder { return newBuilder(name, tql.TypeF32) }

// F64 declares a 64-bit floating point column.
func F64(name string) *Builder { return newBuilder(name, tql.TypeF64) }

// Bool declares a boolean column.
func Bool(name string) *Builder { return newBuilder(name, tql.TypeBool) }

// String declares a UTF-8 text column.
func String(name string) *Builder { return newBuilder(name, tql.TypeString) }

// ByteString declares a binary (blob) column; len() counts raw bytes.
func ByteString(name string) *Builder { return newBuilder(name, tql.TypeByteString) }

// DateTime declares a combined date and time column.
func DateTime(name string) *Builder { return newBuilder(name, tql.TypeDateTime) }

// Date declares a date-only column.
func Date(name string) *Builder { return newBuilder(name, tql.TypeDate) }

// Time declares a time-of-day column.
func Time(name string) *Builder { return newBuilder(name, tql.TypeTime) }

// ForeignKey declares a column referencing the primary key of target.
func ForeignKey(name, target string) *Builder {
	b := newBuilder(name, tql.TypeForeignKey)
	b.desc.Target = target
	return b
}

// Custom declares a column whose storage type is left to the dialect
// and whose Go representation is named by target (e.g. a package-
// qualified type name for generated code to import and scan into).
func Custom(name, target string) *Builder {
	b := newBuilder(name, tql.TypeCustom)
	b.desc.Target = target
	return b
}

// Unsupported declares a column the schema registry records but the SQL
// generator refuses to use in any operation, carrying original for
// diagnostics (e.g. the host type name compiler/load saw).
func Unsupported(name, original string) *Builder {
	b := newBuilder(name, tql.TypeUnsupported)
	b.desc.Target = original
	return b
}

// Optional wraps the field's type as TypeOptional, recording the
// wrapped type in Of so the analyzer can still apply the original
// type's method predicates.
func (b *Builder) Optional() *Builder {
	b.desc.Of = b.desc.Type
	b.desc.Type = tql.TypeOptional
	return b
}

// Nillable marks an Optional field's Go representation as a pointer
// rather than a zero-value sentinel.
func (b *Builder) Nillable() *Builder {
	b.desc.Nillable = true
	return b
}

// Immutable marks a field that insert may set but update may not.
func (b *Builder) Immutable() *Builder {
	b.desc.Immutable = true
	return b
}

// Default sets the value (or zero-arg func() T) used for an omitted
// column on insert.
func (b *Builder) Default(v any) *Builder {
	b.desc.Default = v
	return b
}

// UpdateDefault sets the value (or zero-arg func() T) applied on every
// update, regardless of an explicit assignment.
func (b *Builder) UpdateDefault(v any) *Builder {
	b.desc.UpdateDefault = v
	return b
}

// Comment attaches a free-form description to the field's descriptor;
// the generated DDL does not include it.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Annotations attaches generator-specific metadata to the field.
func (b *Builder) Annotations(annotations ...schema.Annotation) *Builder {
	b.desc.Annotations = append(b.desc.Annotations, annotations...)
	return b
}
