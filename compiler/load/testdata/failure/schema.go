package failure

import (
	"github.com/tql-go/tql"
	"github.com/tql-go/tql/schema/field"
)

// User holds a schema that causes a failure during load.
type User struct {
	tql.Schema
}

// Fields panics intentionally to test error handling during schema loading.
func (User) Fields() []tql.Field {
	// This panic will be caught by safeFields and returned as an error.
	panic("intentional panic in Fields() for testing error handling")
	return []tql.Field{
		field.String("name"),
	}
}
