package verifier_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/analyzer"
	"github.com/tql-go/tql/ir"
	"github.com/tql-go/tql/registry"
	"github.com/tql-go/tql/verifier"
)

func setup(t *testing.T) *registry.Registry {
	t.Helper()
	verifier.Reset()
	reg := registry.New()
	require.NoError(t, reg.Register("Widgets", []tql.FieldDescriptor{
		{Name: "id", Type: tql.TypeSerial},
		{Name: "name", Type: tql.TypeString},
		{Name: "count", Type: tql.TypeI64},
		{Name: "created_at", Type: tql.TypeDateTime},
	}))
	return reg
}

func TestVerifyAcceptsMatchingTypes(t *testing.T) {
	reg := setup(t)
	span := ir.Span{Start: 1, End: 2}
	verifier.Register(span, verifier.Entry{
		Table: "Widgets",
		Placeholders: []analyzer.Placeholder{
			{Ordinal: 0, Column: "name", Type: tql.TypeString},
			{Ordinal: 1, Column: "count", Type: tql.TypeI64},
		},
	})
	r := verifier.Verify(reg, span, ir.Span{}, []reflect.Type{
		reflect.TypeOf(""), reflect.TypeOf(int64(0)),
	})
	assert.True(t, r.OK(), "diagnostics: %v", r.Diagnostics)
}

func TestVerifyRejectsTypeMismatch(t *testing.T) {
	reg := setup(t)
	span := ir.Span{Start: 3, End: 4}
	verifier.Register(span, verifier.Entry{
		Table: "Widgets",
		Placeholders: []analyzer.Placeholder{
			{Ordinal: 0, Column: "count", Type: tql.TypeI64},
		},
	})
	r := verifier.Verify(reg, span, ir.Span{Start: 0, End: 1}, []reflect.Type{reflect.TypeOf("oops")})
	require.False(t, r.OK())
	assert.Contains(t, r.Errors()[0].Code, "E0308")
}

func TestVerifyAcceptsTimeForDateTime(t *testing.T) {
	reg := setup(t)
	span := ir.Span{Start: 5, End: 6}
	verifier.Register(span, verifier.Entry{
		Table: "Widgets",
		Placeholders: []analyzer.Placeholder{
			{Ordinal: 0, Column: "created_at", Type: tql.TypeDateTime},
		},
	})
	r := verifier.Verify(reg, span, ir.Span{}, []reflect.Type{reflect.TypeOf(time.Time{})})
	assert.True(t, r.OK(), "diagnostics: %v", r.Diagnostics)
}

func TestVerifyUnknownColumnSuggestsNearest(t *testing.T) {
	reg := setup(t)
	span := ir.Span{Start: 7, End: 8}
	verifier.Register(span, verifier.Entry{
		Table: "Widgets",
		Placeholders: []analyzer.Placeholder{
			{Ordinal: 0, Column: "nam", Type: tql.TypeString},
		},
	})
	r := verifier.Verify(reg, span, ir.Span{}, []reflect.Type{reflect.TypeOf("")})
	require.False(t, r.OK())
	assert.Contains(t, r.Errors()[0].Message, "attempted access of field `nam`")
}

func TestVerifyUnregisteredSpanIsNoOp(t *testing.T) {
	reg := setup(t)
	r := verifier.Verify(reg, ir.Span{Start: 999, End: 1000}, ir.Span{}, nil)
	assert.True(t, r.OK())
}

func TestVerifyI64RangePlaceholder(t *testing.T) {
	reg := setup(t)
	span := ir.Span{Start: 9, End: 10}
	verifier.Register(span, verifier.Entry{
		Table: "Widgets",
		Placeholders: []analyzer.Placeholder{
			{Ordinal: 0, Column: "i64", Type: tql.TypeI64},
		},
	})
	r := verifier.Verify(reg, span, ir.Span{}, []reflect.Type{reflect.TypeOf("not an int")})
	require.False(t, r.OK())
	assert.Equal(t, "E0308", r.Errors()[0].Code)
}
