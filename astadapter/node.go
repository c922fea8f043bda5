// Package astadapter is the narrow facade over the host compiler's syntax
// tree (C2): it exposes only the node shapes the query DSL recognizes,
// so that queryparser depends on this package's small interface instead
// of on go/ast directly. Swapping the host frontend only touches this
// package.
package astadapter

import "github.com/tql-go/tql/ir"

// Node is implemented by every adapted syntax tree shape.
type Node interface {
	Span() ir.Span
}

// Ident is a bare identifier, e.g. a field name or table name.
type Ident struct {
	Name string
	span ir.Span
}

func (n *Ident) Span() ir.Span { return n.span }

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	span  ir.Span
}

func (n *IntLit) Span() ir.Span { return n.span }

// FloatLit is a floating-point literal.
type FloatLit struct {
	Value float64
	span  ir.Span
}

func (n *FloatLit) Span() ir.Span { return n.span }

// StrLit is a (double-quoted, Go-escaped) string literal.
type StrLit struct {
	Value string
	span  ir.Span
}

func (n *StrLit) Span() ir.Span { return n.span }

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
	span  ir.Span
}

func (n *BoolLit) Span() ir.Span { return n.span }

// MethodCall is `receiver.name(args...)`.
type MethodCall struct {
	Receiver Node
	Name     string
	Args     []Node
	span     ir.Span
}

func (n *MethodCall) Span() ir.Span { return n.span }

// BinOp is a binary operator expression: `lhs op rhs`.
type BinOp struct {
	Op       string
	LHS, RHS Node
	span     ir.Span
}

func (n *BinOp) Span() ir.Span { return n.span }

// UnaryOp is a prefix operator expression: `op expr`.
type UnaryOp struct {
	Op   string
	Expr Node
	span ir.Span
}

func (n *UnaryOp) Span() ir.Span { return n.span }

// Index is `receiver[indexExpr]`.
type Index struct {
	Receiver Node
	IndexExp Node
	span     ir.Span
}

func (n *Index) Span() ir.Span { return n.span }

// Range is `start..end`, with either bound optional (`..b`, `a..`, `..`).
type Range struct {
	Start, End Node // nil when omitted
	span       ir.Span
}

func (n *Range) Span() ir.Span { return n.span }

// Paren is a parenthesized sub-expression, kept distinct from its inner
// node so the parser can tell an explicit grouping from precedence alone.
type Paren struct {
	Inner Node
	span  ir.Span
}

func (n *Paren) Span() ir.Span { return n.span }

// Tuple is a comma-separated argument list standing alone (used for
// `.insert(name = expr, ...)`-style keyword-argument lists, represented
// as a Tuple of BinOp{Op: "="} nodes).
type Tuple struct {
	Items []Node
	span  ir.Span
}

func (n *Tuple) Span() ir.Span { return n.span }
