//go:build !hidegroups

package buildflags

import (
	"github.com/tql-go/tql"
	"github.com/tql-go/tql/schema/field"
)

// Group holds the schema definition for the Group entity.
type Group struct {
	tql.Schema
}

// Fields of the Group.
func (Group) Fields() []tql.Field {
	return []tql.Field{
		field.String("name"),
	}
}
