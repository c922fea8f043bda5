// Package privacy provides privacy layer types and rule implementations.
//
// The privacy layer enables authorization that evaluates before a query
// reaches the database. Because every operation (Select, Insert,
// Update, Delete) lowers to the same IR shape, a single Rule can guard
// reads and writes alike by inspecting the query's Kind.
//
// # Core Concepts
//
// The privacy layer is built around three main concepts:
//
//   - Policy: An ordered list of rules that determine access to a table
//   - Rule: A function that returns Allow, Deny, or Skip for a given *ir.Query
//   - Viewer: An interface representing the current user/context
//
// # Defining Policies
//
// Policies are defined on schema types using a Policy() method:
//
//	func (User) Policy() privacy.Policy {
//	    return privacy.Policy{
//	        privacy.DenyIfNoViewer(),
//	        privacy.HasRole("admin"),
//	        privacy.OnOperation(privacy.IsOwner("user_id"), ir.Insert, ir.Update),
//	        privacy.AlwaysDenyRule(),
//	    }
//	}
//
// # Rule Evaluation
//
// Rules are evaluated in order until one returns a final decision:
//
//   - Allow: Grants access and stops evaluation
//   - Deny: Denies access and stops evaluation
//   - Skip: Continues to the next rule
//
// If all rules return Skip, the default behavior is to deny access.
//
// # Built-in Rules
//
// The package provides several built-in rules:
//
//   - DenyIfNoViewer: Denies if no viewer is present in context
//   - AlwaysAllowRule: Always allows access
//   - AlwaysDenyRule: Always denies access
//   - HasRole: Allows if viewer has the specified role
//   - HasAnyRole: Allows if viewer has any of the specified roles
//   - IsOwner: Allows if viewer owns the entity
//   - TenantRule: Allows if viewer belongs to the same tenant
//   - OnOperation / DenyOperationRule / AllowOperationRule: gate a rule by ir.Kind
//   - WhereRule: inject an extra predicate into the query's filter tree
//
// # Viewer Interface
//
// The Viewer interface represents the authenticated user:
//
//	type Viewer interface {
//	    GetID() string       // Unique user identifier
//	    GetRoles() []string  // User's roles
//	    GetTenantID() string // Tenant ID for multi-tenancy
//	}
//
// A SimpleViewer implementation is provided for basic use cases:
//
//	viewer := &privacy.SimpleViewer{
//	    UserID:   "user-123",
//	    Roles:    []string{"admin", "user"},
//	    TenantID: "tenant-abc",
//	}
//
// # Context Integration
//
// The viewer is stored in context and retrieved during policy evaluation:
//
//	ctx := privacy.WithViewer(ctx, &privacy.SimpleViewer{
//	    UserID: "user-123",
//	    Roles:  []string{"user"},
//	})
//	err := policy.Eval(ctx, q)
//
// # Error Handling
//
// When access is denied, Eval returns an error that wraps privacy.Deny;
// a rule built with Denyf puts its reason in the error message:
//
//	if errors.Is(err, privacy.Deny) {
//	    log.Printf("Access denied: %v", err)
//	}
package privacy
