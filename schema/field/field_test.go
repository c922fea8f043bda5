package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/schema/field"
)

func TestBasicTypes(t *testing.T) {
	cases := []struct {
		f    tql.Field
		want tql.Type
	}{
		{field.Serial("id"), tql.TypeSerial},
		{field.I32("count"), tql.TypeI32},
		{field.I64("big_count"), tql.TypeI64},
		{field.F32("ratio"), tql.TypeF32},
		{field.F64("price"), tql.TypeF64},
		{field.Bool("active"), tql.TypeBool},
		{field.String("name"), tql.TypeString},
		{field.ByteString("payload"), tql.TypeByteString},
		{field.DateTime("created_at"), tql.TypeDateTime},
		{field.Date("birthday"), tql.TypeDate},
		{field.Time("alarm"), tql.TypeTime},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.f.Descriptor().Type)
	}
}

func TestForeignKey(t *testing.T) {
	d := field.ForeignKey("author_id", "users").Descriptor()
	assert.Equal(t, tql.TypeForeignKey, d.Type)
	assert.Equal(t, "users", d.Target)
}

func TestCustom(t *testing.T) {
	d := field.Custom("amount", "decimal.Decimal").Descriptor()
	assert.Equal(t, tql.TypeCustom, d.Type)
	assert.Equal(t, "decimal.Decimal", d.Target)
}

func TestUnsupported(t *testing.T) {
	d := field.Unsupported("legacy_blob", "unsafe.Pointer").Descriptor()
	assert.Equal(t, tql.TypeUnsupported, d.Type)
	assert.Equal(t, "unsafe.Pointer", d.Target)
}

func TestOptionalWrapsType(t *testing.T) {
	d := field.String("bio").Optional().Descriptor()
	assert.Equal(t, tql.TypeOptional, d.Type)
	assert.Equal(t, tql.TypeString, d.Of)
}

func TestModifiers(t *testing.T) {
	d := field.I64("login_count").
		Default(int64(0)).
		Immutable().
		Comment("number of logins").
		Descriptor()
	require.Equal(t, int64(0), d.Default)
	assert.True(t, d.Immutable)
	assert.Equal(t, "number of logins", d.Comment)
}

func TestNillableOptional(t *testing.T) {
	d := field.Time("deleted_at").Optional().Nillable().Descriptor()
	assert.Equal(t, tql.TypeOptional, d.Type)
	assert.Equal(t, tql.TypeTime, d.Of)
	assert.True(t, d.Nillable)
}

func TestUpdateDefault(t *testing.T) {
	d := field.DateTime("updated_at").UpdateDefault("now").Descriptor()
	assert.Equal(t, "now", d.UpdateDefault)
}

func TestDescriptorIsASnapshot(t *testing.T) {
	b := field.String("name")
	d1 := b.Descriptor()
	b.Comment("changed later")
	d2 := b.Descriptor()
	assert.Empty(t, d1.Comment)
	assert.Equal(t, "changed later", d2.Comment)
}
