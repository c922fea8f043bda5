package queryparser

import (
	"fmt"

	"github.com/tql-go/tql/astadapter"
	"github.com/tql-go/tql/ir"
)

// lowerFilterExpr parses a single Go-syntax boolean expression (the
// argument to `.filter(...)`, `.get(...)`, or `.having(...)`) and lowers
// it to a FilterTree.
func lowerFilterExpr(src string) (*ir.FilterTree, error) {
	n, err := astadapter.ParseAndAdapt(src)
	if err != nil {
		return nil, fmt.Errorf("queryparser: filter expression %q: %w", src, err)
	}
	return lowerNode(n, src)
}

func lowerNode(n astadapter.Node, src string) (*ir.FilterTree, error) {
	switch v := n.(type) {
	case *astadapter.Paren:
		return lowerNode(v.Inner, src)

	case *astadapter.UnaryOp:
		if v.Op != "!" {
			return nil, fmt.Errorf("queryparser: unsupported unary operator %q", v.Op)
		}
		child, err := lowerNode(v.Expr, src)
		if err != nil {
			return nil, err
		}
		return &ir.FilterTree{Kind: ir.TreeNot, Children: []*ir.FilterTree{child}}, nil

	case *astadapter.BinOp:
		switch v.Op {
		case "&&":
			l, err := lowerNode(v.LHS, src)
			if err != nil {
				return nil, err
			}
			r, err := lowerNode(v.RHS, src)
			if err != nil {
				return nil, err
			}
			return &ir.FilterTree{Kind: ir.TreeAnd, Children: []*ir.FilterTree{l, r}}, nil
		case "||":
			l, err := lowerNode(v.LHS, src)
			if err != nil {
				return nil, err
			}
			r, err := lowerNode(v.RHS, src)
			if err != nil {
				return nil, err
			}
			return &ir.FilterTree{Kind: ir.TreeOr, Children: []*ir.FilterTree{l, r}}, nil
		case "==", "!=", "<", "<=", ">", ">=":
			cond, err := lowerComparison(v, src)
			if err != nil {
				return nil, err
			}
			return &ir.FilterTree{Kind: ir.TreeLeaf, Leaf: cond}, nil
		default:
			return nil, fmt.Errorf("queryparser: unsupported operator %q", v.Op)
		}

	case *astadapter.MethodCall:
		cond, err := lowerMethodCondition(v, src)
		if err != nil {
			return nil, err
		}
		return &ir.FilterTree{Kind: ir.TreeLeaf, Leaf: cond}, nil

	default:
		return nil, fmt.Errorf("queryparser: unsupported filter expression node %T", n)
	}
}

var relOps = map[string]ir.RelOp{
	"==": ir.EQ, "!=": ir.NEQ, "<": ir.LT, "<=": ir.LTE, ">": ir.GT, ">=": ir.GTE,
}

func lowerComparison(v *astadapter.BinOp, src string) (*ir.Condition, error) {
	relOp := relOps[v.Op]

	if call, ok := v.LHS.(*astadapter.MethodCall); ok && call.Name == string(ir.Len) {
		path, err := fieldPathOf(call.Receiver)
		if err != nil {
			return nil, err
		}
		return &ir.Condition{
			Field:   path,
			Method:  ir.Len,
			Op:      relOp,
			Operand: operandFromNode(v.RHS, src),
		}, nil
	}

	path, err := fieldPathOf(v.LHS)
	if err != nil {
		return nil, err
	}
	cond := &ir.Condition{Op: relOp, Operand: operandFromNode(v.RHS, src)}

	if len(path.Segments) >= 2 {
		if part, ok := ir.LookupDatetimePart(path.Segments[len(path.Segments)-1]); ok {
			cond.Part = part
			path.Segments = path.Segments[:len(path.Segments)-1]
		}
	}
	cond.Field = path
	return cond, nil
}

var methodOps = map[string]ir.MethodOp{
	string(ir.Contains): ir.Contains, string(ir.StartsWith): ir.StartsWith,
	string(ir.EndsWith): ir.EndsWith, string(ir.Regex): ir.Regex,
	string(ir.IRegex): ir.IRegex, string(ir.IsNone): ir.IsNone, string(ir.IsSome): ir.IsSome,
}

func lowerMethodCondition(v *astadapter.MethodCall, src string) (*ir.Condition, error) {
	op, ok := methodOps[v.Name]
	if !ok {
		return nil, fmt.Errorf("queryparser: unsupported predicate method %q", v.Name)
	}
	path, err := fieldPathOf(v.Receiver)
	if err != nil {
		return nil, err
	}
	args := make([]ir.Operand, len(v.Args))
	for i, a := range v.Args {
		args[i] = operandFromNode(a, src)
	}
	return &ir.Condition{Field: path, Method: op, MethodArgs: args}, nil
}

// fieldPathOf walks a chain of bare identifiers and zero-argument
// selector calls (e.g. `related.field`, `datetime.year`) into a
// FieldPath. A method call carrying arguments is not a field path.
func fieldPathOf(n astadapter.Node) (ir.FieldPath, error) {
	switch v := n.(type) {
	case *astadapter.Ident:
		return ir.FieldPath{Segments: []string{v.Name}, Span: v.Span()}, nil
	case *astadapter.MethodCall:
		if len(v.Args) > 0 {
			return ir.FieldPath{}, fmt.Errorf("queryparser: %q is not a field path", v.Name)
		}
		if v.Receiver == nil {
			return ir.FieldPath{Segments: []string{v.Name}, Span: v.Span()}, nil
		}
		base, err := fieldPathOf(v.Receiver)
		if err != nil {
			return ir.FieldPath{}, err
		}
		base.Segments = append(base.Segments, v.Name)
		base.Span = v.Span()
		return base, nil
	default:
		return ir.FieldPath{}, fmt.Errorf("queryparser: expected a field path, got %T", n)
	}
}

// operandFromNode converts a leaf node to a bound Literal, or anything
// else to a HostExpr carrying its original source text (sliced from src
// by span, since src is exactly what was fed to astadapter.ParseAndAdapt).
func operandFromNode(n astadapter.Node, src string) ir.Operand {
	switch v := n.(type) {
	case *astadapter.IntLit:
		return ir.Operand{Kind: ir.OperandLiteral, Literal: ir.Literal{Value: v.Value}}
	case *astadapter.FloatLit:
		return ir.Operand{Kind: ir.OperandLiteral, Literal: ir.Literal{Value: v.Value}}
	case *astadapter.StrLit:
		return ir.Operand{Kind: ir.OperandLiteral, Literal: ir.Literal{Value: v.Value}}
	case *astadapter.BoolLit:
		return ir.Operand{Kind: ir.OperandLiteral, Literal: ir.Literal{Value: v.Value}}
	default:
		sp := n.Span()
		source := src
		if sp.Start >= 0 && sp.End <= len(src) && sp.End >= sp.Start {
			source = src[sp.Start:sp.End]
		}
		return ir.Operand{Kind: ir.OperandHostExpr, Expr: ir.HostExpr{Source: source, Span: sp}}
	}
}
