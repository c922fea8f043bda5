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

func TestDenyIfNoViewer(t *testing.T) {
	rule := privacy.DenyIfNoViewer()

	err := rule.Eval(context.Background(), selectQuery("users"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, privacy.Deny))

	ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "u1"})
	err = rule.Eval(ctx, selectQuery("users"))
	assert.True(t, errors.Is(err, privacy.Skip))
}

func TestHasRole(t *testing.T) {
	rule := privacy.HasRole("admin")
	ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "u1", Roles: []string{"admin"}})
	err := rule.Eval(ctx, selectQuery("users"))
	assert.True(t, errors.Is(err, privacy.Allow))

	ctx = privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "u2", Roles: []string{"member"}})
	err = rule.Eval(ctx, selectQuery("users"))
	assert.True(t, errors.Is(err, privacy.Skip))
}

func TestHasAnyRole(t *testing.T) {
	rule := privacy.HasAnyRole("admin", "moderator")
	ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "u1", Roles: []string{"moderator"}})
	err := rule.Eval(ctx, selectQuery("users"))
	assert.True(t, errors.Is(err, privacy.Allow))
}

func TestIsOwner(t *testing.T) {
	rule := privacy.IsOwner("user_id")
	q := insertQuery("posts", ir.Assignment{
		Field:   "user_id",
		Operand: ir.Operand{Kind: ir.OperandLiteral, Literal: ir.Literal{Value: "u1"}},
	})

	ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "u1"})
	err := rule.Eval(ctx, q)
	assert.True(t, errors.Is(err, privacy.Allow))

	ctx = privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "other"})
	err = rule.Eval(ctx, q)
	assert.True(t, errors.Is(err, privacy.Skip))
}

func TestIsOwnerSkipsWithoutField(t *testing.T) {
	rule := privacy.IsOwner("user_id")
	ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "u1"})
	err := rule.Eval(ctx, insertQuery("posts"))
	assert.True(t, errors.Is(err, privacy.Skip))
}

func TestOwnerQueryRule(t *testing.T) {
	rule := privacy.OwnerQueryRule()
	err := rule.Eval(context.Background(), selectQuery("posts"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, privacy.Deny))

	ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "u1"})
	err = rule.Eval(ctx, selectQuery("posts"))
	assert.True(t, errors.Is(err, privacy.Skip))

	// Non-select operations are not gated by this rule.
	err = rule.Eval(context.Background(), insertQuery("posts"))
	assert.True(t, errors.Is(err, privacy.Skip))
}

func TestTenantRule(t *testing.T) {
	rule := privacy.TenantRule("tenant_id")
	q := insertQuery("posts", ir.Assignment{
		Field:   "tenant_id",
		Operand: ir.Operand{Kind: ir.OperandLiteral, Literal: ir.Literal{Value: "t1"}},
	})

	ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "u1", TenantID: "t1"})
	assert.True(t, errors.Is(rule.Eval(ctx, q), privacy.Allow))

	ctx = privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "u1", TenantID: "t2"})
	err := rule.Eval(ctx, q)
	require.Error(t, err)
	assert.True(t, errors.Is(err, privacy.Deny))
}

func TestTenantQueryRule(t *testing.T) {
	rule := privacy.TenantQueryRule()

	err := rule.Eval(context.Background(), selectQuery("posts"))
	require.Error(t, err)

	ctx := privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "u1"})
	err = rule.Eval(ctx, selectQuery("posts"))
	require.Error(t, err, "viewer with no tenant is still denied")

	ctx = privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "u1", TenantID: "t1"})
	err = rule.Eval(ctx, selectQuery("posts"))
	assert.True(t, errors.Is(err, privacy.Skip))
}

func TestAllowOperationRule(t *testing.T) {
	rule := privacy.AllowOperationRule(ir.Select)
	err := rule.Eval(context.Background(), selectQuery("posts"))
	assert.True(t, errors.Is(err, privacy.Allow))

	err = rule.Eval(context.Background(), insertQuery("posts"))
	assert.True(t, errors.Is(err, privacy.Skip))
}
