package privacy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tql-go/tql/ir"
	"github.com/tql-go/tql/privacy"
)

func selectQuery(table string) *ir.Query {
	return &ir.Query{Kind: ir.Select, Table: table}
}

func insertQuery(table string, assignments ...ir.Assignment) *ir.Query {
	return &ir.Query{Kind: ir.Insert, Table: table, Assignments: assignments}
}

func TestPolicyDeniesByDefault(t *testing.T) {
	p := privacy.Policy{}
	err := p.Eval(context.Background(), selectQuery("users"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, privacy.Deny))
}

func TestPolicyStopsAtAllow(t *testing.T) {
	p := privacy.Policy{
		privacy.AlwaysAllowRule(),
		privacy.AlwaysDenyRule(),
	}
	err := p.Eval(context.Background(), selectQuery("users"))
	assert.NoError(t, err)
}

func TestPolicyStopsAtDeny(t *testing.T) {
	p := privacy.Policy{
		privacy.AlwaysDenyRule(),
		privacy.AlwaysAllowRule(),
	}
	err := p.Eval(context.Background(), selectQuery("users"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, privacy.Deny))
}

func TestPolicySkipFallsThrough(t *testing.T) {
	skipRule := privacy.RuleFunc(func(context.Context, *ir.Query) error { return privacy.Skip })
	p := privacy.Policy{skipRule, privacy.AlwaysAllowRule()}
	err := p.Eval(context.Background(), selectQuery("users"))
	assert.NoError(t, err)
}

func TestOnOperationGatesByKind(t *testing.T) {
	rule := privacy.OnOperation(privacy.AlwaysDenyRule(), ir.Insert, ir.Update)
	p := privacy.Policy{rule, privacy.AlwaysAllowRule()}

	err := p.Eval(context.Background(), selectQuery("users"))
	assert.NoError(t, err, "select is not gated, falls through to allow")

	err = p.Eval(context.Background(), insertQuery("users"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, privacy.Deny))
}

func TestDenyOperationRule(t *testing.T) {
	p := privacy.Policy{privacy.DenyOperationRule(ir.Delete), privacy.AlwaysAllowRule()}
	err := p.Eval(context.Background(), &ir.Query{Kind: ir.Delete, Table: "users"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, privacy.Deny))
}

func TestDecisionContextShortCircuits(t *testing.T) {
	ctx := privacy.DecisionContext(context.Background(), privacy.Deny)
	p := privacy.Policy{privacy.AlwaysAllowRule()}
	err := p.Eval(ctx, selectQuery("users"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, privacy.Deny))
}

func TestDecisionContextNormalizesAllow(t *testing.T) {
	ctx := privacy.DecisionContext(context.Background(), privacy.Allow)
	decision, ok := privacy.DecisionFromContext(ctx)
	require.True(t, ok)
	assert.NoError(t, decision)
}

func TestWhereRuleInjectsFilter(t *testing.T) {
	rule := privacy.WhereRule(func(context.Context) (*ir.FilterTree, error) {
		return &ir.FilterTree{Kind: ir.TreeLeaf, Leaf: &ir.Condition{
			Field: ir.FieldPath{Segments: []string{"tenant_id"}},
			Op:    ir.EQ,
		}}, nil
	})
	q := selectQuery("users")
	q.Filter = &ir.FilterTree{Kind: ir.TreeLeaf, Leaf: &ir.Condition{Field: ir.FieldPath{Segments: []string{"active"}}, Op: ir.EQ}}

	err := rule.Eval(context.Background(), q)
	assert.True(t, errors.Is(err, privacy.Skip))
	require.NotNil(t, q.Filter)
	assert.Equal(t, ir.TreeAnd, q.Filter.Kind)
	require.Len(t, q.Filter.Children, 2)
}

func TestNewPolicyFlattensProviders(t *testing.T) {
	a := stubProvider{privacy.Policy{privacy.AlwaysDenyRule()}}
	b := stubProvider{privacy.Policy{privacy.AlwaysAllowRule()}}
	p := privacy.NewPolicy(a, b)
	require.Len(t, p, 2)
	err := p.Eval(context.Background(), selectQuery("users"))
	assert.True(t, errors.Is(err, privacy.Deny))
}

type stubProvider struct{ policy privacy.Policy }

func (s stubProvider) Policy() privacy.Policy { return s.policy }
