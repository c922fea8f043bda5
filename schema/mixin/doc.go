// Package mixin provides the base mixin implementation for tql schemas
// (see contrib/mixin for ready-to-use field mixins like Time and
// SoftDelete).
//
// Mixins let schemas share a common set of fields without repeating the
// builder calls in every declaration.
//
// # Using Mixins
//
// Mixins are applied to schemas via the Mixin() method:
//
//	type User struct{ tql.Schema }
//
//	func (User) Mixin() []tql.Mixin {
//	    return []tql.Mixin{
//	        mixin.Time{},
//	        mixin.SoftDelete{},
//	    }
//	}
//
// # Creating Custom Mixins
//
// Custom mixins embed Schema and implement Fields():
//
//	type AuditMixin struct {
//	    mixin.Schema
//	}
//
//	func (AuditMixin) Fields() []tql.Field {
//	    return []tql.Field{
//	        field.String("created_by").Immutable(),
//	        field.String("updated_by"),
//	    }
//	}
//
// # Mixin Order
//
// Mixins are applied in the order they are listed; a schema's own
// fields are appended last.
//
//	func (User) Mixin() []tql.Mixin {
//	    return []tql.Mixin{
//	        BaseMixin{},   // Applied first
//	        AuditMixin{},  // Applied second
//	    }
//	}
//
// # Annotating a Mixin's Fields
//
// AnnotateFields wraps a mixin, attaching extra annotations (e.g. a
// schema.Comment) to every field it returns, without disturbing the
// wrapped mixin's own Fields() implementation:
//
//	mixin.AnnotateFields(mixin.Time{}, schema.Comment("timestamp"))
//
// Row-level authorization for fields a mixin adds (e.g. filtering by a
// tenant_id mixin field, or excluding soft-deleted rows) belongs in a
// privacy.Rule, not in the mixin itself — see the privacy package.
package mixin
