package astadapter

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"

	"github.com/tql-go/tql/ir"
)

// Adapt walks a go/ast.Expr (typically produced by go/parser.ParseExprFrom
// against fset) and produces the corresponding astadapter.Node, or an
// error naming the unsupported construct.
func Adapt(fset *token.FileSet, expr ast.Expr) (Node, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		switch e.Name {
		case "true":
			return &BoolLit{Value: true, span: span(fset, e.Pos(), e.End())}, nil
		case "false":
			return &BoolLit{Value: false, span: span(fset, e.Pos(), e.End())}, nil
		default:
			return &Ident{Name: e.Name, span: span(fset, e.Pos(), e.End())}, nil
		}
	case *ast.BasicLit:
		sp := span(fset, e.Pos(), e.End())
		switch e.Kind {
		case token.INT:
			v, err := strconv.ParseInt(e.Value, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("astadapter: invalid integer literal %q: %w", e.Value, err)
			}
			return &IntLit{Value: v, span: sp}, nil
		case token.FLOAT:
			v, err := strconv.ParseFloat(e.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("astadapter: invalid float literal %q: %w", e.Value, err)
			}
			return &FloatLit{Value: v, span: sp}, nil
		case token.STRING:
			v, err := strconv.Unquote(e.Value)
			if err != nil {
				return nil, fmt.Errorf("astadapter: invalid string literal %s: %w", e.Value, err)
			}
			return &StrLit{Value: v, span: sp}, nil
		default:
			return nil, fmt.Errorf("astadapter: unsupported literal kind %v", e.Kind)
		}
	case *ast.UnaryExpr:
		inner, err := Adapt(fset, e.X)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: e.Op.String(), Expr: inner, span: span(fset, e.Pos(), e.End())}, nil
	case *ast.BinaryExpr:
		lhs, err := Adapt(fset, e.X)
		if err != nil {
			return nil, err
		}
		rhs, err := Adapt(fset, e.Y)
		if err != nil {
			return nil, err
		}
		return &BinOp{Op: e.Op.String(), LHS: lhs, RHS: rhs, span: span(fset, e.Pos(), e.End())}, nil
	case *ast.ParenExpr:
		inner, err := Adapt(fset, e.X)
		if err != nil {
			return nil, err
		}
		return &Paren{Inner: inner, span: span(fset, e.Pos(), e.End())}, nil
	case *ast.SelectorExpr:
		recv, err := Adapt(fset, e.X)
		if err != nil {
			return nil, err
		}
		// A bare selector with no call, e.g. `related.field`, adapts as a
		// zero-argument MethodCall; queryparser distinguishes a trailing
		// field-path segment from a true method call by checking Args.
		return &MethodCall{Receiver: recv, Name: e.Sel.Name, Args: nil, span: span(fset, e.Pos(), e.End())}, nil
	case *ast.CallExpr:
		args := make([]Node, len(e.Args))
		for i, a := range e.Args {
			an, err := Adapt(fset, a)
			if err != nil {
				return nil, err
			}
			args[i] = an
		}
		switch fn := e.Fun.(type) {
		case *ast.SelectorExpr:
			recv, err := Adapt(fset, fn.X)
			if err != nil {
				return nil, err
			}
			return &MethodCall{Receiver: recv, Name: fn.Sel.Name, Args: args, span: span(fset, e.Pos(), e.End())}, nil
		case *ast.Ident:
			// A free function call, e.g. `count(field)` in `.aggregate(...)`,
			// adapts as a receiver-less MethodCall.
			return &MethodCall{Receiver: nil, Name: fn.Name, Args: args, span: span(fset, e.Pos(), e.End())}, nil
		default:
			return nil, fmt.Errorf("astadapter: unsupported call target %T", e.Fun)
		}
	case *ast.IndexExpr:
		recv, err := Adapt(fset, e.X)
		if err != nil {
			return nil, err
		}
		idx, err := Adapt(fset, e.Index)
		if err != nil {
			return nil, err
		}
		return &Index{Receiver: recv, IndexExp: idx, span: span(fset, e.Pos(), e.End())}, nil
	default:
		return nil, fmt.Errorf("astadapter: unsupported node %T", expr)
	}
}

// ParseAndAdapt parses src as a single Go expression and adapts it,
// convenient for tests and for standalone filter-expression leaves.
func ParseAndAdapt(src string) (Node, error) {
	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "", src, 0)
	if err != nil {
		return nil, fmt.Errorf("astadapter: parse %q: %w", src, err)
	}
	return Adapt(fset, expr)
}

func span(fset *token.FileSet, start, end token.Pos) ir.Span {
	return ir.Span{Start: fset.Position(start).Offset, End: fset.Position(end).Offset}
}
