package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/registry"
)

func userFields() []tql.FieldDescriptor {
	return []tql.FieldDescriptor{
		{Name: "id", Type: tql.TypeSerial},
		{Name: "field1", Type: tql.TypeString},
		{Name: "field2", Type: tql.TypeI32},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("users", userFields()))

	tbl, ok := r.Lookup("users")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "field1", "field2"}, tbl.Names())

	f, ok := tbl.Field("field2")
	require.True(t, ok)
	assert.Equal(t, tql.TypeI32, f.Type)

	_, ok = tbl.Field("nope")
	assert.False(t, ok)
}

func TestRegisterIdempotent(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("users", userFields()))
	require.NoError(t, r.Register("users", userFields()))
}

func TestRegisterDuplicateMismatch(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("users", userFields()))
	err := r.Register("users", []tql.FieldDescriptor{{Name: "id", Type: tql.TypeSerial}})
	require.Error(t, err)
	var dup *registry.DuplicateTableError
	assert.ErrorAs(t, err, &dup)
	assert.Equal(t, "users", dup.Name)
}

func TestLookupUnknown(t *testing.T) {
	r := registry.New()
	_, ok := r.Lookup("ghost")
	assert.False(t, ok)
}

func TestSerial(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("users", userFields()))
	tbl, _ := r.Lookup("users")
	f, ok := tbl.Serial()
	require.True(t, ok)
	assert.Equal(t, "id", f.Name)

	require.NoError(t, r.Register("nopk", []tql.FieldDescriptor{{Name: "field1", Type: tql.TypeString}}))
	tbl2, _ := r.Lookup("nopk")
	_, ok = tbl2.Serial()
	assert.False(t, ok)
}

func TestIterateDeterministicOrder(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("zebra", userFields()))
	require.NoError(t, r.Register("apple", userFields()))

	var seen []string
	r.Iterate(func(tbl *registry.Table) {
		seen = append(seen, tbl.Name)
	})
	assert.Equal(t, []string{"apple", "zebra"}, seen)
}

func TestNames(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("b_table", userFields()))
	require.NoError(t, r.Register("a_table", userFields()))
	assert.Equal(t, []string{"a_table", "b_table"}, r.Names())
}

func TestResolveForeign(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("users", userFields()))
	tbl, ok := r.ResolveForeign("users")
	require.True(t, ok)
	assert.Equal(t, "users", tbl.Name)

	_, ok = r.ResolveForeign("ghost")
	assert.False(t, ok)
}

func TestDefaultTableName(t *testing.T) {
	assert.Equal(t, "users", registry.DefaultTableName("User"))
	assert.Equal(t, "table_select_exprs", registry.DefaultTableName("TableSelectExpr"))
}

func TestDefaultRegistryConcurrentReset(t *testing.T) {
	registry.Default().Reset()
	require.NoError(t, registry.Default().Register("users", userFields()))
	_, ok := registry.Default().Lookup("users")
	assert.True(t, ok)
	registry.Default().Reset()
	_, ok = registry.Default().Lookup("users")
	assert.False(t, ok)
}
