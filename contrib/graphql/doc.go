// Package graphql exposes generated query results over GraphQL.
//
// This design has no entity graph and no generated per-table Go types —
// cmd/tqlc lowers each tql.Query call site to a standalone function
// returning tql.Rows, not an ORM client. GraphQL exposure follows from
// that shape rather than from a schema-to-resolver code generator: this
// package derives a GraphQL SDL document directly from the schema
// registry (GenerateSDL), and adapts a generated query's result rows into
// gqlgen's built-in JSON scalar (MarshalRow) so a resolver can return them
// without a hand-written GraphQL type for every query's result shape.
//
// A typical wiring:
//
//	sdl, err := graphql.GenerateSDL(registry.Default())
//	// write sdl to schema.graphql, run gqlgen against it
//
//	cfg, _ := graphql.LoadGQLGenConfig("gqlgen.yml")
//	cfg.InjectSchemaBindings("myapp/db", "schema.graphql")
//	graphql.SaveGQLGenConfig("gqlgen.yml", cfg)
//
//	rows, _ := myapp.QueryActiveUsers(conn, 10)
//	results, _ := graphql.ScanRows(rows, []string{"id", "name", "created_at"})
//	return graphql.MarshalRow(results[0]), nil // from a resolver
package graphql
