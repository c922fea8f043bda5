package cycle

import (
	"github.com/tql-go/tql"
	"github.com/tql-go/tql/compiler/load/testdata/cycle/faketql"
	"github.com/tql-go/tql/schema/field"
)

// Enum is a custom type that creates a cycle.
type Enum = faketql.Enum

// Used is another custom type that creates a cycle.
type Used = faketql.Used

// User holds the schema definition for the User entity.
type User struct {
	tql.Schema
}

// Fields of the User.
// Uses Enum and Used types which create an import cycle.
func (User) Fields() []tql.Field {
	var _ Enum // Reference Enum type
	var _ Used // Reference Used type
	return []tql.Field{
		field.String("name"),
	}
}
