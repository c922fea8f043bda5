package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tql-go/tql/diag"
	"github.com/tql-go/tql/ir"
)

func TestUnknownTableSuggestion(t *testing.T) {
	d := diag.UnknownTable("Usre", ir.Span{Start: 0, End: 4}, "User")
	assert.Equal(t, diag.Error, d.Kind)
	assert.Contains(t, d.Message, "unknown table `Usre`")
	assert.Contains(t, d.Message, "did you mean `User`?")
}

func TestUnknownFieldNoSuggestion(t *testing.T) {
	d := diag.UnknownField("nonexistent", "TableSelectExpr", ir.Span{}, "")
	assert.Equal(t, "attempted access of field `nonexistent` on type `TableSelectExpr`", d.Message)
}

func TestTypeMismatchCarriesCode(t *testing.T) {
	d := diag.TypeMismatch("expected String, found I32", ir.Span{Start: 10, End: 13})
	assert.Equal(t, diag.CodeTypeMismatch, d.Code)
	assert.Equal(t, diag.Error, d.Kind)
}

func TestUnsupportedTypeCode(t *testing.T) {
	d := diag.UnsupportedType("weird", "map[string]string", ir.Span{})
	assert.Equal(t, diag.CodeUnsupportedType, d.Code)
}

func TestNoPrimaryKeyIsWarning(t *testing.T) {
	d := diag.NoPrimaryKey("Widgets", ir.Span{})
	assert.Equal(t, diag.Warning, d.Kind)
	assert.Contains(t, d.Message, "Widgets")
}

func TestResOKWithOnlyWarnings(t *testing.T) {
	r := diag.Res(42, []diag.Diagnostic{diag.NoPrimaryKey("T", ir.Span{})})
	assert.True(t, r.OK())
	assert.Equal(t, 42, r.Value)
	assert.Empty(t, r.Errors())
}

func TestResFailsOnAnyError(t *testing.T) {
	diags := []diag.Diagnostic{
		diag.NoPrimaryKey("T", ir.Span{}),
		diag.UnknownTable("T2", ir.Span{}, ""),
	}
	r := diag.Res(nil, diags)
	assert.False(t, r.OK())
	assert.Len(t, r.Errors(), 1)
}

func TestResSuccessWithNoDiagnostics(t *testing.T) {
	r := diag.Res("sql", nil)
	assert.True(t, r.OK())
	assert.Equal(t, "sql", r.Value)
}

func TestDiagnosticString(t *testing.T) {
	d := diag.TypeMismatch("boom", ir.Span{Start: 1, End: 2})
	s := d.String()
	assert.Contains(t, s, "error")
	assert.Contains(t, s, diag.CodeTypeMismatch)
	assert.Contains(t, s, "boom")
}
