package sqlgen

import (
	"fmt"
	"strings"

	"github.com/tql-go/tql/ir"
)

// genSelect emits §4.5's SELECT emission order:
//
//	SELECT <columns> FROM <table> [JOIN ...]* [WHERE ...] [GROUP BY ...]
//	[HAVING ...] [ORDER BY ...] [LIMIT n OFFSET m]
func (g *generator) genSelect(b *strings.Builder, q *ir.Query) error {
	b.WriteString("SELECT ")
	if q.Kind == ir.Aggregate {
		g.writeAggregateColumnList(b, q)
	} else {
		b.WriteString(strings.Join(g.table.Names(), ", "))
	}
	fmt.Fprintf(b, " FROM %s", g.table.Name)

	for _, j := range q.Joins {
		name, _ := j.Field.Head()
		fd, ok := g.table.Field(name)
		if !ok {
			return fmt.Errorf("sqlgen: join field %q not found on %q", name, g.table.Name)
		}
		fmt.Fprintf(b, " JOIN %s ON %s.%s = %s.id", fd.Target, g.table.Name, name, fd.Target)
	}

	if q.Filter != nil {
		b.WriteString(" WHERE ")
		if err := g.writeTree(b, q.Filter, false); err != nil {
			return err
		}
	}

	if len(q.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		for i, gb := range q.GroupBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(gb.String())
		}
	}

	if q.Having != nil {
		b.WriteString(" HAVING ")
		if err := g.writeTree(b, q.Having, false); err != nil {
			return err
		}
	}

	if len(q.Order) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range q.Order {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(o.Field.String())
			if o.Dir == ir.Desc {
				b.WriteString(" DESC")
			} else {
				b.WriteString(" ASC")
			}
		}
	}

	g.writeLimitOffset(b, q)
	return nil
}

// writeAggregateColumnList projects the grouped fields followed by each
// `alias = fn(field)` aggregate expression (§4.4 step 7).
func (g *generator) writeAggregateColumnList(b *strings.Builder, q *ir.Query) {
	cols := make([]string, 0, len(q.GroupBy)+len(q.Aggregates))
	for _, gb := range q.GroupBy {
		cols = append(cols, gb.String())
	}
	for _, a := range q.Aggregates {
		field := a.Field.String()
		if field == "" {
			field = "*"
		}
		cols = append(cols, fmt.Sprintf("%s(%s) AS %s", strings.ToUpper(a.Fn), field, a.Alias))
	}
	b.WriteString(strings.Join(cols, ", "))
}

func (g *generator) writeLimitOffset(b *strings.Builder, q *ir.Query) {
	if q.LimitOffset == nil {
		return
	}
	// A range whose bounds are both integer literals is folded here to
	// `LIMIT b-a OFFSET a`. Otherwise each marker consumes exactly one
	// analyzer-allocated placeholder (§4.4 step 6), so a range's count is
	// bound as End directly rather than a `b-a` SQL expression that would
	// need Start's value twice — the host-side binding code computes
	// `end-start` before passing it as the LIMIT argument.
	lo := q.LimitOffset
	switch {
	case lo.Single:
		fmt.Fprintf(b, " LIMIT 1 OFFSET %s", g.operandText(*lo.Start))
	case lo.Start != nil && lo.End != nil:
		start, sok := lo.Start.Literal.Value.(int64)
		end, eok := lo.End.Literal.Value.(int64)
		if sok && eok && lo.Start.Kind == ir.OperandLiteral && lo.End.Kind == ir.OperandLiteral {
			fmt.Fprintf(b, " LIMIT %d OFFSET %d", end-start, start)
			return
		}
		fmt.Fprintf(b, " LIMIT %s OFFSET %s", g.operandText(*lo.End), g.operandText(*lo.Start))
	case lo.End != nil:
		fmt.Fprintf(b, " LIMIT %s", g.operandText(*lo.End))
	case lo.Start != nil:
		fmt.Fprintf(b, " OFFSET %s", g.operandText(*lo.Start))
	}
}

// operandText renders a bound literal inline, quoting/escaping strings the
// way driver.go's escapeStringValue does, or consumes the next ordered
// placeholder marker for a host-expression operand.
func (g *generator) operandText(op ir.Operand) string {
	if op.Kind != ir.OperandLiteral {
		return g.placeholder()
	}
	switch v := op.Literal.Value.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", v)
	}
}
