package buildflags

import (
	"github.com/tql-go/tql"
	"github.com/tql-go/tql/schema/field"
)

// User holds the schema definition for the User entity.
type User struct {
	tql.Schema
}

// Fields of the User.
func (User) Fields() []tql.Field {
	return []tql.Field{
		field.String("name"),
	}
}
