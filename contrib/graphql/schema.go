package graphql

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/registry"
)

// titleCaser title-cases a single word using Unicode case-folding rules
// rather than byte-slicing the first rune, so a column name containing a
// non-ASCII letter still capitalizes correctly.
var titleCaser = cases.Title(language.Und)

// scalarFor maps a closed tql.Type to the GraphQL scalar GenerateSDL
// renders for it. TypeCustom's target Go type is open-ended and can't be
// mapped generically, so it (and anything else unrecognized) degrades to
// the generic JSON scalar rather than inventing one scalar per Go type.
func scalarFor(t tql.Type) string {
	switch t {
	case tql.TypeSerial, tql.TypeI32, tql.TypeI64:
		return "Int"
	case tql.TypeF32, tql.TypeF64:
		return "Float"
	case tql.TypeBool:
		return "Boolean"
	case tql.TypeString, tql.TypeByteString:
		return "String"
	case tql.TypeDateTime, tql.TypeDate, tql.TypeTime:
		return "DateTime"
	default:
		return "JSON"
	}
}

// GenerateSDL renders one GraphQL object type per registered table, in the
// registry's own lexicographic iteration order, field order matching
// declaration order. A ForeignKey field renders as a plain ID rather than
// a nested object field: this design registers no edge/relation graph to
// traverse (registry.Table.Field only resolves by name), so there is
// nothing to expose a nested resolver against.
//
// The rendered document is parsed with gqlparser before being returned, so
// a bug in this generator is caught here rather than surfacing later as a
// gqlgen failure with the line numbers of a file the caller hasn't
// written to disk yet.
func GenerateSDL(reg *registry.Registry) (string, error) {
	var b strings.Builder
	b.WriteString("scalar DateTime\nscalar JSON\n\n")

	reg.Iterate(func(t *registry.Table) {
		fmt.Fprintf(&b, "type %s {\n", gqlTypeName(t.Name))
		for _, f := range t.Fields {
			gqlType := scalarFor(f.Type)
			if f.Type == tql.TypeOptional {
				gqlType = scalarFor(f.Of)
			}
			if f.Type == tql.TypeForeignKey {
				gqlType = "ID"
			}
			bang := "!"
			if f.Type == tql.TypeOptional || f.Nillable {
				bang = ""
			}
			fmt.Fprintf(&b, "  %s: %s%s\n", lowerCamel(f.Name), gqlType, bang)
		}
		b.WriteString("}\n\n")
	})

	sdl := b.String()
	if _, err := parser.ParseSchema(&ast.Source{Name: "tql.graphql", Input: sdl}); err != nil {
		return "", fmt.Errorf("tql/contrib/graphql: generated schema is invalid: %w", err)
	}
	return sdl, nil
}

// gqlTypeName derives a GraphQL object type name from a registered
// (plural, snake_case) table name, e.g. "active_users" -> "ActiveUser".
func gqlTypeName(table string) string {
	return inflect.Camelize(inflect.Singularize(table))
}

// lowerCamel converts a snake_case field name to the lowerCamelCase
// convention GraphQL field names use, e.g. "created_at" -> "createdAt".
func lowerCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = titleCaser.String(parts[i])
	}
	return strings.Join(parts, "")
}
