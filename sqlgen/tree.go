package sqlgen

import (
	"fmt"
	"strings"

	"github.com/tql-go/tql/ir"
)

// writeTree renders a FilterTree, parenthesizing only where precedence
// would otherwise be ambiguous: a nested And/Or directly under a
// different boolean connective (§4.5 — no implicit operator precedence
// leaks between `&&` and `||` once lowered to SQL).
func (g *generator) writeTree(b *strings.Builder, t *ir.FilterTree, parent bool) error {
	switch t.Kind {
	case ir.TreeLeaf:
		return g.writeCondition(b, t.Leaf)
	case ir.TreeNot:
		b.WriteString("NOT (")
		if err := g.writeTree(b, t.Children[0], false); err != nil {
			return err
		}
		b.WriteString(")")
		return nil
	default:
		conn := " AND "
		if t.Kind == ir.TreeOr {
			conn = " OR "
		}
		needParens := parent && len(t.Children) > 1
		if needParens {
			b.WriteString("(")
		}
		for i, c := range t.Children {
			if i > 0 {
				b.WriteString(conn)
			}
			childParent := c.Kind == ir.TreeAnd || c.Kind == ir.TreeOr
			if err := g.writeTree(b, c, childParent && c.Kind != t.Kind); err != nil {
				return err
			}
		}
		if needParens {
			b.WriteString(")")
		}
		return nil
	}
}

func (g *generator) writeCondition(b *strings.Builder, cond *ir.Condition) error {
	col := cond.Field.String()

	var inner strings.Builder
	switch {
	case cond.Part != "":
		fmt.Fprintf(&inner, "%s %s %s", g.extractPart(col, cond.Part), cond.Op, g.operandText(cond.Operand))
	case cond.Method != "":
		if err := g.writeMethodCondition(&inner, cond, col); err != nil {
			return err
		}
	default:
		fmt.Fprintf(&inner, "%s %s %s", col, cond.Op, g.operandText(cond.Operand))
	}

	if cond.Negated {
		fmt.Fprintf(b, "NOT (%s)", inner.String())
	} else {
		b.WriteString(inner.String())
	}
	return nil
}

// extractPart emits the dialect's datetime-component extraction (§4.5):
// Postgres uses EXTRACT(part FROM col), SQLite uses strftime with the
// matching format code.
func (g *generator) extractPart(col string, part ir.DatetimePart) string {
	if g.dialect == Postgres {
		return fmt.Sprintf("EXTRACT(%s FROM %s)", strings.ToUpper(string(part)), col)
	}
	return fmt.Sprintf("CAST(strftime(%q, %s) AS INTEGER)", strftimeFormat(part), col)
}

func strftimeFormat(part ir.DatetimePart) string {
	switch part {
	case ir.Year:
		return "%Y"
	case ir.Month:
		return "%m"
	case ir.Day:
		return "%d"
	case ir.Hour:
		return "%H"
	case ir.Minute:
		return "%M"
	case ir.Second:
		return "%S"
	default:
		return "%Y"
	}
}

func (g *generator) writeMethodCondition(b *strings.Builder, cond *ir.Condition, col string) error {
	switch cond.Method {
	case ir.Contains:
		fmt.Fprintf(b, "%s LIKE '%%' || %s || '%%'", col, g.operandText(cond.MethodArgs[0]))
	case ir.StartsWith:
		fmt.Fprintf(b, "%s LIKE %s || '%%'", col, g.operandText(cond.MethodArgs[0]))
	case ir.EndsWith:
		fmt.Fprintf(b, "%s LIKE '%%' || %s", col, g.operandText(cond.MethodArgs[0]))
	case ir.Regex:
		if g.dialect != Postgres {
			return fmt.Errorf("sqlgen: `.regex()` is not supported on SQLite")
		}
		fmt.Fprintf(b, "%s ~ %s", col, g.operandText(cond.MethodArgs[0]))
	case ir.IRegex:
		if g.dialect != Postgres {
			return fmt.Errorf("sqlgen: `.iregex()` is not supported on SQLite")
		}
		fmt.Fprintf(b, "%s ~* %s", col, g.operandText(cond.MethodArgs[0]))
	case ir.IsNone:
		fmt.Fprintf(b, "%s IS NULL", col)
	case ir.IsSome:
		fmt.Fprintf(b, "%s IS NOT NULL", col)
	case ir.Len:
		fmt.Fprintf(b, "CHAR_LENGTH(%s) %s %s", col, cond.Op, g.operandText(cond.Operand))
	default:
		return fmt.Errorf("sqlgen: unsupported method predicate %q", cond.Method)
	}
	return nil
}
