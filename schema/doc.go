// Package schema provides the building blocks for defining tql entity
// schemas, and the generator-facing Annotation vocabulary that schema
// declarations and mixins attach metadata through.
//
// The type declarations themselves live in tql (Schema, Mixin, Field,
// FieldDescriptor); this package and its subpackages supply the builders:
//
//   - [field]: builders for the closed column type set
//   - [mixin]: reusable groups of fields
//
// # Quick Start
//
// Define an entity schema by embedding tql.Schema and implementing
// Fields():
//
//	type User struct{ tql.Schema }
//
//	func (User) Mixin() []tql.Mixin {
//	    return []tql.Mixin{
//	        mixin.ID{},   // UUID primary key
//	        mixin.Time{}, // created_at and updated_at timestamps
//	    }
//	}
//
//	func (User) Fields() []tql.Field {
//	    return []tql.Field{
//	        field.String("email"),
//	        field.String("name"),
//	        field.I32("status"),
//	    }
//	}
//
// # Annotations
//
// Annotations attach metadata without affecting the column's SQL type.
// This package defines one, CommentAnnotation:
//
//	schema.Comment("User represents a user in the system.")
//
// A schema's own Annotations() override annotations contributed by its
// mixins; see schema.Merger for annotations that combine instead.
package schema
