package privacy

import (
	"context"
	"fmt"
	"slices"

	"github.com/tql-go/tql/ir"
)

// Viewer represents the authenticated user making a request.
// This interface should be implemented by application-specific user types.
type Viewer interface {
	// GetID returns the viewer's unique identifier.
	GetID() string
	// GetRoles returns the viewer's roles.
	GetRoles() []string
	// GetTenantID returns the viewer's tenant identifier for multi-tenancy.
	// Returns empty string if not applicable.
	GetTenantID() string
}

// viewerCtxKey is the context key for storing the viewer.
type viewerCtxKey struct{}

// WithViewer returns a new context with the viewer attached.
func WithViewer(ctx context.Context, viewer Viewer) context.Context {
	return context.WithValue(ctx, viewerCtxKey{}, viewer)
}

// ViewerFromContext retrieves the viewer from the context.
// Returns nil if no viewer is present.
func ViewerFromContext(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerCtxKey{}).(Viewer)
	return v
}

// SimpleViewer is a basic implementation of the Viewer interface.
// Use this for testing or simple use cases.
type SimpleViewer struct {
	UserID   string
	Roles    []string
	TenantID string
}

// GetID returns the user ID.
func (v *SimpleViewer) GetID() string {
	return v.UserID
}

// GetRoles returns the user's roles.
func (v *SimpleViewer) GetRoles() []string {
	return v.Roles
}

// GetTenantID returns the tenant ID.
func (v *SimpleViewer) GetTenantID() string {
	return v.TenantID
}

// DenyIfNoViewer returns a rule that denies access if no viewer is present in the context.
// This is typically used as the first rule in a policy to require authentication.
//
// Example:
//
//	privacy.Policy{
//	    privacy.DenyIfNoViewer(),
//	    privacy.HasRole("admin"),
//	    privacy.AlwaysDenyRule(),
//	}
func DenyIfNoViewer() Rule {
	return ContextRule(func(ctx context.Context) error {
		if ViewerFromContext(ctx) == nil {
			return Denyf("privacy: viewer required")
		}
		return Skip
	})
}

// HasRole returns a rule that allows access if the viewer has the specified role.
// Skips if the viewer doesn't have the role (allows next rule to evaluate).
func HasRole(role string) Rule {
	return ContextRule(func(ctx context.Context) error {
		viewer := ViewerFromContext(ctx)
		if viewer == nil {
			return Skip
		}
		if slices.Contains(viewer.GetRoles(), role) {
			return Allow
		}
		return Skip
	})
}

// HasAnyRole returns a rule that allows access if the viewer has any of the specified roles.
// Skips if the viewer doesn't have any of the roles (allows next rule to evaluate).
func HasAnyRole(roles ...string) Rule {
	return ContextRule(func(ctx context.Context) error {
		viewer := ViewerFromContext(ctx)
		if viewer == nil {
			return Skip
		}
		viewerRoles := viewer.GetRoles()
		for _, role := range roles {
			if slices.Contains(viewerRoles, role) {
				return Allow
			}
		}
		return Skip
	})
}

// assignmentValue returns the literal value assigned to field in an
// Insert/Update query, if one was bound as a literal operand (a
// host-expression operand can't be inspected before execution).
func assignmentValue(q *ir.Query, field string) (any, bool) {
	for _, a := range q.Assignments {
		if a.Field == field && a.Operand.Kind == ir.OperandLiteral {
			return a.Operand.Literal.Value, true
		}
	}
	return nil, false
}

func stringifyValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}

// IsOwner returns a rule that allows an Insert/Update whose named field
// value matches the viewer's ID.
//
// Example:
//
//	privacy.Policy{
//	    privacy.DenyIfNoViewer(),
//	    privacy.IsOwner("user_id"),
//	    privacy.AlwaysDenyRule(),
//	}
func IsOwner(field string) Rule {
	return RuleFunc(func(ctx context.Context, q *ir.Query) error {
		viewer := ViewerFromContext(ctx)
		if viewer == nil {
			return Skip
		}
		value, ok := assignmentValue(q, field)
		if !ok {
			return Skip
		}
		if stringifyValue(value) == viewer.GetID() {
			return Allow
		}
		return Skip
	})
}

// OwnerQueryRule returns a rule that denies Select queries unless a
// viewer is present. This only guards the absence of a viewer; use
// WhereRule alongside it to actually scope rows to the viewer's own.
func OwnerQueryRule() Rule {
	return OnOperation(ContextRule(func(ctx context.Context) error {
		if ViewerFromContext(ctx) == nil {
			return Denyf("privacy: viewer required for owner-filtered query")
		}
		return Skip
	}), ir.Select)
}

// TenantRule returns a rule that allows an Insert/Update whose tenant
// field matches the viewer's tenant, denying on mismatch. Used for
// multi-tenant isolation.
func TenantRule(field string) Rule {
	return RuleFunc(func(ctx context.Context, q *ir.Query) error {
		viewer := ViewerFromContext(ctx)
		if viewer == nil {
			return Skip
		}
		viewerTenant := viewer.GetTenantID()
		if viewerTenant == "" {
			return Skip
		}
		value, ok := assignmentValue(q, field)
		if !ok {
			return Skip
		}
		if stringifyValue(value) == viewerTenant {
			return Allow
		}
		return Denyf("privacy: tenant mismatch")
	})
}

// TenantQueryRule returns a rule that denies Select queries if no
// viewer or tenant is present. Use this as a guard for tenant-filtered
// queries.
func TenantQueryRule() Rule {
	return OnOperation(ContextRule(func(ctx context.Context) error {
		viewer := ViewerFromContext(ctx)
		if viewer == nil {
			return Denyf("privacy: viewer required for tenant-filtered query")
		}
		if viewer.GetTenantID() == "" {
			return Denyf("privacy: tenant required")
		}
		return Skip
	}), ir.Select)
}

// AllowOperationRule returns a rule allowing the given operation kinds
// unconditionally.
func AllowOperationRule(kinds ...ir.Kind) Rule {
	return OnOperation(RuleFunc(func(context.Context, *ir.Query) error {
		return Allow
	}), kinds...)
}
