// Package sqlgen implements the SQL generator (C5): given an analyzed
// query and a target dialect, it walks the IR and emits a parameterized
// SQL string plus the stable, ordered placeholder list the analyzer (C4)
// already allocated ordinals for.
//
// Grounded on the teacher's dialect/sql package: predicate.go's operator
// spelling table and driver.go's identifier/quoting helpers are the
// closest analogue to a dialect-aware SQL text builder, adapted
// here from that generated-predicate style (a func(*Selector) closure
// per predicate) to a direct IR-to-string walk, since there is no
// generated predicate type per entity in this design.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/tql-go/tql/analyzer"
	"github.com/tql-go/tql/ir"
	"github.com/tql-go/tql/registry"
)

// Dialect selects the target SQL flavor (§6: SQLite is the default,
// Postgres is enabled by a build-time flag in the host compiler — here,
// a constructor argument).
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// Generated is the generator's output: the SQL text and the placeholder
// list in the order their markers appear in SQL, matching the
// argument list the caller must supply positionally.
type Generated struct {
	SQL          string
	Placeholders []analyzer.Placeholder
}

// Generate walks res (the analyzer's output) for dialect and produces the
// SQL text. The generator trusts the analyzer completely (§7: "the
// generator trusts the analyzer and does not re-check") — a Result that
// reached here is assumed error-free.
func Generate(dialect Dialect, res *analyzer.Result) (*Generated, error) {
	g := &generator{dialect: dialect, table: res.Table, ph: res.Placeholders}
	var b strings.Builder

	q := res.Query
	switch q.Kind {
	case ir.Select, ir.Aggregate:
		if err := g.genSelect(&b, q); err != nil {
			return nil, err
		}
	case ir.Insert:
		if err := g.genInsert(&b, q); err != nil {
			return nil, err
		}
	case ir.Update:
		if err := g.genUpdate(&b, q); err != nil {
			return nil, err
		}
	case ir.Delete:
		if err := g.genDelete(&b, q); err != nil {
			return nil, err
		}
	case ir.CreateTable:
		s, err := CreateTableDDL(dialect, res.Table)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
	case ir.DropTable:
		fmt.Fprintf(&b, "DROP TABLE %s", res.Table.Name)
	default:
		return nil, fmt.Errorf("sqlgen: unsupported query kind %v", q.Kind)
	}

	return &Generated{SQL: b.String(), Placeholders: g.ph}, nil
}

type generator struct {
	dialect Dialect
	table   *registry.Table
	ph      []analyzer.Placeholder
	next    int // index into ph, consumed left-to-right as markers are written
}

func (g *generator) placeholder() string {
	n := g.next + 1
	g.next++
	if g.dialect == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
