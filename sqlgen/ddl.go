package sqlgen

import (
	"fmt"
	"strings"

	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/registry"
)

// CreateTableDDL emits `CREATE TABLE` for table under dialect. Column type
// spelling is delegated to atlas's per-dialect FormatType — the same
// formatter atlas's own migration planner uses — rather than hand-rolled
// type-name strings, since a schema-migration differ is out of scope here
// but its column-type vocabulary is exactly what's needed.
func CreateTableDDL(dialect Dialect, table *registry.Table) (string, error) {
	var cols []string
	var pk string
	for _, f := range table.Fields {
		ct, err := columnType(dialect, f)
		if err != nil {
			return "", fmt.Errorf("sqlgen: column %q: %w", f.Name, err)
		}
		def := fmt.Sprintf("%s %s", f.Name, ct)
		if f.Type == tql.TypeSerial {
			pk = f.Name
		}
		if f.Type != tql.TypeOptional && f.Type != tql.TypeSerial {
			def += " NOT NULL"
		}
		cols = append(cols, def)
	}
	if pk != "" {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", pk))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", table.Name, strings.Join(cols, ",\n  ")), nil
}

// columnType maps a field's declared tql.Type to an atlas schema.Type and
// formats it for dialect.
func columnType(dialect Dialect, f tql.FieldDescriptor) (string, error) {
	typ := f.Type
	if typ == tql.TypeOptional {
		typ = f.Of
	}

	var st schema.Type
	switch typ {
	case tql.TypeSerial, tql.TypeForeignKey:
		st = &schema.IntegerType{T: "bigint"}
	case tql.TypeI32:
		st = &schema.IntegerType{T: "int"}
	case tql.TypeI64:
		st = &schema.IntegerType{T: "bigint"}
	case tql.TypeF32:
		st = &schema.FloatType{T: "real"}
	case tql.TypeF64:
		st = &schema.FloatType{T: "double"}
	case tql.TypeBool:
		st = &schema.BoolType{T: "boolean"}
	case tql.TypeString:
		st = &schema.StringType{T: "varchar", Size: 255}
	case tql.TypeDateTime:
		st = &schema.TimeType{T: "timestamp"}
	default:
		return "", fmt.Errorf("unsupported column type %s", typ)
	}

	if dialect == Postgres {
		return postgres.FormatType(st)
	}
	return sqlite.FormatType(st)
}
