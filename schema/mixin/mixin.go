// Package mixin provides the base mixin implementation for tql schemas.
//
// A mixin is a reusable set of fields that can be embedded in multiple
// schema declarations.
//
// Core Components:
//
//   - Schema: Base mixin struct that all mixins should embed
//   - AnnotateFields: Adds annotations to a mixin's fields
//
// Creating Custom Mixins:
//
// To create a custom mixin, embed Schema and override the methods you need:
//
//	type AuditMixin struct {
//	    mixin.Schema
//	}
//
//	func (AuditMixin) Fields() []tql.Field {
//	    return []tql.Field{
//	        field.DateTime("created_at").Default(time.Now).Immutable(),
//	        field.DateTime("updated_at").Default(time.Now).UpdateDefault(time.Now),
//	    }
//	}
//
// Using Mixins:
//
//	func (User) Mixin() []tql.Mixin {
//	    return []tql.Mixin{
//	        AuditMixin{},
//	    }
//	}
//
// Common Mixins:
//
// For common patterns (timestamps, soft delete, tenant ID), see the
// contrib/mixin package which provides optional, ready-to-use mixins:
//
//	import "github.com/tql-go/tql/contrib/mixin"
//
//	func (User) Mixin() []tql.Mixin {
//	    return []tql.Mixin{
//	        mixin.Time{},       // created_at, updated_at
//	        mixin.SoftDelete{}, // deleted_at
//	    }
//	}
package mixin

import (
	"time"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/schema"
	"github.com/tql-go/tql/schema/field"
)

// Schema is the default implementation of the tql.Mixin interface.
// It should be embedded in all custom mixin definitions.
//
// Example:
//
//	type MyMixin struct {
//	    mixin.Schema
//	}
//
//	func (MyMixin) Fields() []tql.Field {
//	    return []tql.Field{
//	        field.String("custom_field"),
//	    }
//	}
type Schema struct{}

// Fields returns the fields of the mixin.
// Override this method to add custom fields.
func (Schema) Fields() []tql.Field { return nil }

// Annotations returns the annotations of the mixin.
// Override this method to add custom annotations for code generators.
func (Schema) Annotations() []schema.Annotation { return nil }

// schema mixin must implement `Mixin` interface.
var _ tql.Mixin = (*Schema)(nil)

// =============================================================================
// Built-in Mixins
// =============================================================================

// Time adds created_at and updated_at timestamp fields to a schema.
// created_at is set automatically on creation and is immutable.
// updated_at is set on creation and updated automatically on each update.
//
// Example:
//
//	func (User) Mixin() []tql.Mixin {
//	    return []tql.Mixin{
//	        mixin.Time{},
//	    }
//	}
type Time struct {
	Schema
}

// Fields returns the time tracking fields.
func (Time) Fields() []tql.Field {
	return []tql.Field{
		field.DateTime("created_at").
			Default(time.Now).
			Immutable().
			Comment("Timestamp when the entity was created"),
		field.DateTime("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Timestamp when the entity was last updated"),
	}
}

// CreateTime adds only the created_at timestamp field to a schema.
// Useful when you only need creation tracking without update tracking.
type CreateTime struct {
	Schema
}

// Fields returns the created_at field.
func (CreateTime) Fields() []tql.Field {
	return []tql.Field{
		field.DateTime("created_at").
			Default(time.Now).
			Immutable().
			Comment("Timestamp when the entity was created"),
	}
}

// UpdateTime adds only the updated_at timestamp field to a schema.
// Useful when you only need update tracking without creation tracking.
type UpdateTime struct {
	Schema
}

// Fields returns the updated_at field.
func (UpdateTime) Fields() []tql.Field {
	return []tql.Field{
		field.DateTime("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Timestamp when the entity was last updated"),
	}
}

// SoftDelete adds a deleted_at field for soft deletion support.
// When set, the entity is considered deleted but remains in the database.
//
// Example:
//
//	func (User) Mixin() []tql.Mixin {
//	    return []tql.Mixin{
//	        mixin.SoftDelete{},
//	    }
//	}
type SoftDelete struct {
	Schema
}

// Fields returns the soft delete field.
func (SoftDelete) Fields() []tql.Field {
	return []tql.Field{
		field.DateTime("deleted_at").
			Optional().
			Nillable().
			Comment("Timestamp when the entity was soft deleted (nil means not deleted)"),
	}
}

// TimeSoftDelete combines Time and SoftDelete mixins.
// Adds created_at, updated_at, and deleted_at fields.
type TimeSoftDelete struct {
	Schema
}

// Fields returns all timestamp and soft delete fields.
func (TimeSoftDelete) Fields() []tql.Field {
	return append(Time{}.Fields(), SoftDelete{}.Fields()...)
}

// AnnotateFields wraps a mixin and adds annotations to all its fields.
// This is useful for applying cross-cutting annotations.
//
// Example:
//
//	mixin.AnnotateFields(
//	    MyMixin{},
//	    schema.Comment("audit field"),
//	)
func AnnotateFields(m tql.Mixin, annotations ...schema.Annotation) tql.Mixin {
	return fieldAnnotator{Mixin: m, annotations: annotations}
}

type fieldAnnotator struct {
	tql.Mixin
	annotations []schema.Annotation
}

func (a fieldAnnotator) Fields() []tql.Field {
	fields := a.Mixin.Fields()
	out := make([]tql.Field, len(fields))
	for i, f := range fields {
		out[i] = annotatedField{Field: f, extra: a.annotations}
	}
	return out
}

// annotatedField wraps a Field to append extra annotations onto a fresh
// copy of its descriptor, without mutating the wrapped field's own state.
type annotatedField struct {
	tql.Field
	extra []schema.Annotation
}

func (a annotatedField) Descriptor() *tql.FieldDescriptor {
	d := *a.Field.Descriptor()
	d.Annotations = append(append([]schema.Annotation{}, d.Annotations...), a.extra...)
	return &d
}
