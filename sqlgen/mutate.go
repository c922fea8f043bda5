package sqlgen

import (
	"fmt"
	"strings"

	"github.com/tql-go/tql/ir"
)

// genInsert emits `INSERT INTO table (cols...) VALUES (vals...)`, in the
// field order given to `.insert(...)` (§4.5: INSERT/UPDATE placeholders
// precede any WHERE, so the assignment list is written before anything
// else consumes a marker).
func (g *generator) genInsert(b *strings.Builder, q *ir.Query) error {
	cols := make([]string, len(q.Assignments))
	vals := make([]string, len(q.Assignments))
	for i, a := range q.Assignments {
		cols[i] = a.Field
		vals[i] = g.operandText(a.Operand)
	}
	fmt.Fprintf(b, "INSERT INTO %s (%s) VALUES (%s)",
		g.table.Name, strings.Join(cols, ", "), strings.Join(vals, ", "))
	return nil
}

// genUpdate emits `UPDATE table SET col = val, ... [WHERE ...]`.
func (g *generator) genUpdate(b *strings.Builder, q *ir.Query) error {
	sets := make([]string, len(q.Assignments))
	for i, a := range q.Assignments {
		sets[i] = fmt.Sprintf("%s = %s", a.Field, g.operandText(a.Operand))
	}
	fmt.Fprintf(b, "UPDATE %s SET %s", g.table.Name, strings.Join(sets, ", "))
	if q.Filter != nil {
		b.WriteString(" WHERE ")
		return g.writeTree(b, q.Filter, false)
	}
	return nil
}

// genDelete emits `DELETE FROM table [WHERE ...]`.
func (g *generator) genDelete(b *strings.Builder, q *ir.Query) error {
	fmt.Fprintf(b, "DELETE FROM %s", g.table.Name)
	if q.Filter != nil {
		b.WriteString(" WHERE ")
		return g.writeTree(b, q.Filter, false)
	}
	return nil
}
