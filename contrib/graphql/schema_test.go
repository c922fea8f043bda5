package graphql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/contrib/graphql"
	"github.com/tql-go/tql/registry"
)

func TestGenerateSDLRendersTypesAndScalars(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register("users", []tql.FieldDescriptor{
		{Name: "id", Type: tql.TypeSerial},
		{Name: "name", Type: tql.TypeString},
		{Name: "bio", Type: tql.TypeOptional, Of: tql.TypeString},
		{Name: "created_at", Type: tql.TypeDateTime},
		{Name: "team_id", Type: tql.TypeForeignKey, Target: "teams"},
	}))

	sdl, err := graphql.GenerateSDL(reg)
	require.NoError(t, err)
	assert.Contains(t, sdl, "scalar DateTime")
	assert.Contains(t, sdl, "scalar JSON")
	assert.Contains(t, sdl, "type User {")
	assert.Contains(t, sdl, "id: Int!")
	assert.Contains(t, sdl, "name: String!")
	assert.Contains(t, sdl, "createdAt: DateTime!")
	assert.Contains(t, sdl, "teamId: ID!")
}

func TestGenerateSDLOptionalFieldIsNullable(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register("widgets", []tql.FieldDescriptor{
		{Name: "id", Type: tql.TypeSerial},
		{Name: "note", Type: tql.TypeOptional, Of: tql.TypeString},
	}))

	sdl, err := graphql.GenerateSDL(reg)
	require.NoError(t, err)
	assert.Contains(t, sdl, "note: String\n")
	assert.NotContains(t, sdl, "note: String!")
}

func TestGenerateSDLUnknownTypeDegradesToJSON(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register("blobs", []tql.FieldDescriptor{
		{Name: "id", Type: tql.TypeSerial},
		{Name: "payload", Type: tql.TypeCustom, Target: "net.IP"},
	}))

	sdl, err := graphql.GenerateSDL(reg)
	require.NoError(t, err)
	assert.Contains(t, sdl, "payload: JSON!")
}
