package graphql

import (
	"fmt"

	"github.com/99designs/gqlgen/graphql"

	"github.com/tql-go/tql"
)

// MarshalRow adapts one scanned row into gqlgen's built-in JSON object
// scalar — the same graphql.Map type InjectSchemaBindings binds to the
// "JSON" GraphQL type — so a resolver can return a generated query's
// result row without a hand-written GraphQL type for every query's result
// shape.
func MarshalRow(row map[string]any) graphql.Marshaler {
	return graphql.MarshalMap(row)
}

// UnmarshalRow is the matching scalar-unmarshal hook, for a resolver
// argument shaped like a Row (e.g. a generic filter object).
func UnmarshalRow(v any) (map[string]any, error) {
	return graphql.UnmarshalMap(v)
}

// ScanRows drains rows into one map per row, keyed by columns. tql.Rows
// has no Columns() method of its own — the generated function that
// produced rows already knows its SELECT list at compile time, so the
// caller passes it through rather than this package re-deriving it at
// runtime via reflection.
func ScanRows(rows tql.Rows, columns []string) ([]map[string]any, error) {
	defer rows.Close()
	var out []map[string]any
	for rows.Next() {
		dest := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("tql/contrib/graphql: scan: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = dest[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tql/contrib/graphql: rows: %w", err)
	}
	return out, nil
}
