package valid

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
		field.String("email"),
		field.I32("age").Optional(),
	}
}

// Group holds the schema definition for the Group entity.
type Group struct {
	tql.Schema
}

// Fields of the Group.
func (Group) Fields() []tql.Field {
	return []tql.Field{
		field.String("name"),
		field.String("description").Optional(),
	}
}

// Tag holds the schema definition for the Tag entity.
type Tag struct {
	tql.Schema
}

// Fields of the Tag.
func (Tag) Fields() []tql.Field {
	return []tql.Field{
		field.String("value"),
	}
}
