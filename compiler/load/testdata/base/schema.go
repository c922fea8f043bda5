package base

import (
	"github.com/tql-go/tql"
	"github.com/tql-go/tql/schema/field"
)

// BaseFields returns common base fields.
// This is a helper function, not a schema type.
func BaseFields() []tql.Field {
	return []tql.Field{
		field.I32("base_field"),
	}
}

// User holds the schema definition for the User entity.
type User struct {
	tql.Schema
}

// Fields of the User.
func (User) Fields() []tql.Field {
	return append(
		BaseFields(),
		field.String("user_field"),
	)
}
