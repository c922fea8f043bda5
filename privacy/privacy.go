// Package privacy provides sets of types and helpers for writing privacy
// rules in user schemas, and deal with their evaluation at runtime.
//
// Unlike a generated ORM client, tql has no per-entity Query/Mutation
// type: every operation (Select, Insert, Update, Delete) lowers to the
// same *ir.Query shape, distinguished by its Kind. A rule therefore
// evaluates directly against the IR the analyzer produced, which lets a
// single policy guard both read and write access to a table.
package privacy

import (
	"context"
	"errors"
	"fmt"

	"github.com/tql-go/tql/dialect/sql"
	"github.com/tql-go/tql/ir"
)

// Policy decision sentinel errors.
//
// These errors are used as return values from policy rules to indicate
// how the policy evaluation should proceed. Use errors.Is() to check
// for these values:
//
//	if errors.Is(err, privacy.Allow) { ... }
//	if errors.Is(err, privacy.Deny) { ... }
//	if errors.Is(err, privacy.Skip) { ... }
var (
	// Allow may be returned by rules to indicate that the policy
	// evaluation should terminate with an allow decision.
	Allow = errors.New("tql/privacy: allow rule")

	// Deny may be returned by rules to indicate that the policy
	// evaluation should terminate with a deny decision.
	Deny = errors.New("tql/privacy: deny rule")

	// Skip may be returned by rules to indicate that the policy
	// evaluation should continue to the next rule in the chain.
	Skip = errors.New("tql/privacy: skip rule")
)

// Allowf returns a formatted wrapped Allow decision.
func Allowf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Allow)...)
}

// Denyf returns a formatted wrapped Deny decision.
func Denyf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Deny)...)
}

// Skipf returns a formatted wrapped Skip decision.
func Skipf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Skip)...)
}

// Rule decides whether an operation against a table is allowed. It
// receives the fully-parsed IR, so a rule can inspect Kind, Table,
// Filter, and Assignments before returning a decision.
type Rule interface {
	Eval(context.Context, *ir.Query) error
}

// RuleFunc adapts an ordinary function to a Rule.
type RuleFunc func(context.Context, *ir.Query) error

// Eval calls f(ctx, q).
func (f RuleFunc) Eval(ctx context.Context, q *ir.Query) error {
	return f(ctx, q)
}

// Policy combines multiple rules into a single evaluation, in order,
// until one yields a non-Skip decision.
type Policy []Rule

// Eval evaluates the policy. If every rule returns nil or Skip, the
// overall decision is deny: privacy rules must opt in, not opt out.
func (p Policy) Eval(ctx context.Context, q *ir.Query) error {
	if decision, ok := DecisionFromContext(ctx); ok {
		return decision
	}
	for _, rule := range p {
		switch decision := rule.Eval(ctx, q); {
		case decision == nil || errors.Is(decision, Skip):
		case errors.Is(decision, Allow):
			return nil
		default:
			return decision
		}
	}
	return Denyf("tql/privacy: no rule decided for %s %s", q.Kind, q.Table)
}

// AlwaysAllowRule returns a rule that always returns an Allow decision.
func AlwaysAllowRule() Rule {
	return fixedDecision{Allow}
}

// AlwaysDenyRule returns a rule that always returns a Deny decision.
func AlwaysDenyRule() Rule {
	return fixedDecision{Deny}
}

type fixedDecision struct{ decision error }

func (f fixedDecision) Eval(context.Context, *ir.Query) error { return f.decision }

// ContextRule creates a rule from a context-only evaluation function,
// for guards that don't need to inspect the query itself. Returning nil
// is equivalent to returning Skip.
func ContextRule(eval func(context.Context) error) Rule {
	return contextDecision{eval}
}

type contextDecision struct{ eval func(context.Context) error }

func (c contextDecision) Eval(ctx context.Context, _ *ir.Query) error { return c.eval(ctx) }

// OnOperation evaluates rule only when q.Kind matches one of kinds.
func OnOperation(rule Rule, kinds ...ir.Kind) Rule {
	return RuleFunc(func(ctx context.Context, q *ir.Query) error {
		for _, k := range kinds {
			if q.Kind == k {
				return rule.Eval(ctx, q)
			}
		}
		return Skip
	})
}

// DenyOperationRule returns a rule denying the given operation kinds
// unconditionally.
func DenyOperationRule(kinds ...ir.Kind) Rule {
	rule := RuleFunc(func(_ context.Context, q *ir.Query) error {
		return Denyf("tql/privacy: operation %s is not allowed", q.Kind)
	})
	return OnOperation(rule, kinds...)
}

// PolicyProvider is implemented by schema types that define a Policy()
// method.
type PolicyProvider interface {
	Policy() Policy
}

// NewPolicy flattens the policies of several PolicyProvider values (e.g.
// a schema's own policy plus its mixins') into a single Policy.
func NewPolicy(providers ...PolicyProvider) Policy {
	var combined Policy
	for _, p := range providers {
		combined = append(combined, p.Policy()...)
	}
	return combined
}

type decisionCtxKey struct{}

// DecisionContext creates a new context from the given parent context
// with a policy decision attached to it, so a caller can short-circuit
// re-evaluation for nested calls on the same request.
func DecisionContext(parent context.Context, decision error) context.Context {
	if decision == nil || errors.Is(decision, Skip) {
		return parent
	}
	return context.WithValue(parent, decisionCtxKey{}, decision)
}

// DecisionFromContext retrieves the policy decision from the context.
func DecisionFromContext(ctx context.Context) (error, bool) {
	decision, ok := ctx.Value(decisionCtxKey{}).(error)
	if ok && errors.Is(decision, Allow) {
		decision = nil
	}
	return decision, ok
}

// WhereRule returns a rule that injects an extra predicate into the
// query's filter tree and then skips, letting later rules still decide
// allow/deny. Use it for row-level scoping (e.g. restrict to the
// viewer's own rows) rather than an outright allow/deny.
func WhereRule(build func(context.Context) (*ir.FilterTree, error)) Rule {
	return RuleFunc(func(ctx context.Context, q *ir.Query) error {
		extra, err := build(ctx)
		if err != nil {
			return err
		}
		if extra == nil {
			return Skip
		}
		if q.Filter == nil {
			q.Filter = extra
		} else {
			q.Filter = &ir.FilterTree{Kind: ir.TreeAnd, Children: []*ir.FilterTree{q.Filter, extra}}
		}
		return Skip
	})
}

// Filter is implemented by types that can append dialect-level
// predicates directly, for rules that need to reach below the IR (e.g.
// a predicate sqlgen has no IR shape for). Nothing in this module
// implements it; cmd/tqlc emits no filter helpers.
type Filter interface {
	WhereP(...func(*sql.Selector))
}
