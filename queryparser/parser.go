// Package queryparser is the query parser (C3): it takes the raw query
// string captured at a tql.Query marker call site and produces the Query
// IR (ir.Query) that the analyzer and SQL generator consume.
//
// The outer `Root.method(args).method(args)...[trailer]` chain is not
// valid Go syntax (the `[a..b]` range in particular), so it is tokenized
// by the hand-written scanner in lexer.go. Everything inside a method
// call's parentheses, and every filter/assignment expression, is
// ordinary Go-expression syntax and is handed to astadapter.
package queryparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tql-go/tql/astadapter"
	"github.com/tql-go/tql/ir"
)

// Parse lowers a query expression string into its IR form.
func Parse(src string) (*ir.Query, error) {
	root, calls, trailer, trailerPos, err := splitChain(src)
	if err != nil {
		return nil, err
	}

	q := &ir.Query{Table: root, Kind: ir.Select, Span: ir.Span{Start: 0, End: len(src)}}

	for _, c := range calls {
		if err := applyCall(q, c); err != nil {
			return nil, err
		}
	}

	if trailer != "" || hasExplicitBrackets(src) {
		lo, err := parseTrailer(trailer, trailerPos)
		if err != nil {
			return nil, err
		}
		q.LimitOffset = lo
		if lo.Single {
			q.GetMode = ir.One
		}
	}

	return q, nil
}

// hasExplicitBrackets reports whether the source contains a `[...]`
// trailer at all, since an empty `[]` parses to an empty trailer string
// that is otherwise indistinguishable from "no trailer".
func hasExplicitBrackets(src string) bool {
	return strings.Contains(src, "[")
}

func applyCall(q *ir.Query, c chainCall) error {
	switch c.name {
	case "filter":
		args := splitTopLevelCommas(c.args)
		if len(args) != 1 {
			return fmt.Errorf("queryparser: filter expects exactly one expression, got %d", len(args))
		}
		tree, err := lowerFilterExpr(args[0])
		if err != nil {
			return err
		}
		q.Filter = andTrees(q.Filter, tree)
		return nil

	case "get":
		args := splitTopLevelCommas(c.args)
		q.GetMode = ir.One
		if len(args) == 0 {
			return nil
		}
		if len(args) != 1 {
			return fmt.Errorf("queryparser: get expects at most one expression, got %d", len(args))
		}
		tree, err := lowerFilterExpr(args[0])
		if err != nil {
			return err
		}
		q.Filter = andTrees(q.Filter, tree)
		return nil

	case "all":
		q.GetMode = ir.All
		return nil

	case "sort":
		for _, term := range splitTopLevelCommas(c.args) {
			st, err := parseSortTerm(term)
			if err != nil {
				return err
			}
			q.Order = append(q.Order, st)
		}
		return nil

	case "join":
		for _, term := range splitTopLevelCommas(c.args) {
			n, err := astadapter.ParseAndAdapt(term)
			if err != nil {
				return fmt.Errorf("queryparser: join field %q: %w", term, err)
			}
			path, err := fieldPathOf(n)
			if err != nil {
				return fmt.Errorf("queryparser: join field %q: %w", term, err)
			}
			q.Joins = append(q.Joins, ir.Join{Field: path})
		}
		return nil

	case "insert":
		q.Kind = ir.Insert
		return parseAssignments(q, c.args)

	case "update":
		q.Kind = ir.Update
		return parseAssignments(q, c.args)

	case "delete":
		q.Kind = ir.Delete
		return nil

	case "create":
		q.Kind = ir.CreateTable
		return nil

	case "drop":
		q.Kind = ir.DropTable
		return nil

	case "aggregate":
		q.Kind = ir.Aggregate
		for _, term := range splitTopLevelCommas(c.args) {
			alias, expr, ok := splitAssign(term)
			if !ok {
				return fmt.Errorf("queryparser: aggregate term %q: expected alias = fn(field)", term)
			}
			n, err := astadapter.ParseAndAdapt(expr)
			if err != nil {
				return fmt.Errorf("queryparser: aggregate term %q: %w", term, err)
			}
			call, ok := n.(*astadapter.MethodCall)
			if !ok || call.Receiver != nil {
				return fmt.Errorf("queryparser: aggregate term %q: expected a free function call", term)
			}
			var field ir.FieldPath
			if len(call.Args) == 1 {
				field, err = fieldPathOf(call.Args[0])
				if err != nil {
					return fmt.Errorf("queryparser: aggregate term %q: %w", term, err)
				}
			} else if len(call.Args) > 1 {
				return fmt.Errorf("queryparser: aggregate term %q: expected a single field argument", term)
			}
			q.Aggregates = append(q.Aggregates, ir.AggregateExpr{Alias: alias, Fn: call.Name, Field: field})
		}
		return nil

	case "group_by":
		for _, term := range splitTopLevelCommas(c.args) {
			n, err := astadapter.ParseAndAdapt(term)
			if err != nil {
				return fmt.Errorf("queryparser: group_by field %q: %w", term, err)
			}
			path, err := fieldPathOf(n)
			if err != nil {
				return fmt.Errorf("queryparser: group_by field %q: %w", term, err)
			}
			q.GroupBy = append(q.GroupBy, path)
		}
		return nil

	case "having":
		args := splitTopLevelCommas(c.args)
		if len(args) != 1 {
			return fmt.Errorf("queryparser: having expects exactly one expression, got %d", len(args))
		}
		tree, err := lowerFilterExpr(args[0])
		if err != nil {
			return err
		}
		q.Having = andTrees(q.Having, tree)
		return nil

	default:
		return fmt.Errorf("queryparser: unsupported method .%s", c.name)
	}
}

func parseAssignments(q *ir.Query, raw string) error {
	for _, term := range splitTopLevelCommas(raw) {
		name, expr, ok := splitAssign(term)
		if !ok {
			return fmt.Errorf("queryparser: assignment %q: expected name = expr", term)
		}
		n, err := astadapter.ParseAndAdapt(expr)
		if err != nil {
			return fmt.Errorf("queryparser: assignment %q: %w", term, err)
		}
		q.Assignments = append(q.Assignments, ir.Assignment{Field: name, Operand: operandFromNode(n, expr)})
	}
	return nil
}

func parseSortTerm(term string) (ir.SortTerm, error) {
	dir := ir.Asc
	rest := term
	if strings.HasPrefix(rest, "-") {
		dir = ir.Desc
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "+") {
		rest = rest[1:]
	}
	n, err := astadapter.ParseAndAdapt(rest)
	if err != nil {
		return ir.SortTerm{}, fmt.Errorf("queryparser: sort term %q: %w", term, err)
	}
	path, err := fieldPathOf(n)
	if err != nil {
		return ir.SortTerm{}, fmt.Errorf("queryparser: sort term %q: %w", term, err)
	}
	return ir.SortTerm{Field: path, Dir: dir}, nil
}

func andTrees(existing, added *ir.FilterTree) *ir.FilterTree {
	if existing == nil {
		return added
	}
	return &ir.FilterTree{Kind: ir.TreeAnd, Children: []*ir.FilterTree{existing, added}}
}

// parseTrailer parses the bracket content of an `[index_or_range]`
// trailer: a bare index `i`, or a range `a..b`, `..b`, `a..`, `..`.
func parseTrailer(trailer string, pos int) (*ir.LimitOffset, error) {
	trailer = strings.TrimSpace(trailer)
	if idx := strings.Index(trailer, ".."); idx >= 0 {
		startText := strings.TrimSpace(trailer[:idx])
		endText := strings.TrimSpace(trailer[idx+2:])
		lo := &ir.LimitOffset{}
		if startText != "" {
			op, err := parseOperandText(startText)
			if err != nil {
				return nil, fmt.Errorf("queryparser: range start %q: %w", startText, err)
			}
			lo.Start = &op
		}
		if endText != "" {
			op, err := parseOperandText(endText)
			if err != nil {
				return nil, fmt.Errorf("queryparser: range end %q: %w", endText, err)
			}
			lo.End = &op
		}
		return lo, nil
	}
	if trailer == "" {
		return &ir.LimitOffset{}, nil
	}
	op, err := parseOperandText(trailer)
	if err != nil {
		return nil, fmt.Errorf("queryparser: index %q: %w", trailer, err)
	}
	return &ir.LimitOffset{Start: &op, Single: true}, nil
}

func parseOperandText(text string) (ir.Operand, error) {
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return ir.Operand{Kind: ir.OperandLiteral, Literal: ir.Literal{Value: v}}, nil
	}
	n, err := astadapter.ParseAndAdapt(text)
	if err != nil {
		return ir.Operand{}, err
	}
	return operandFromNode(n, text), nil
}
