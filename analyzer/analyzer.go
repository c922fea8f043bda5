// Package analyzer implements the analyzer (C4): it validates a parsed
// Query IR against the schema registry, resolves field identifiers
// (including one-hop foreign-key paths), classifies method predicates and
// datetime-part extraction, types comparison operands, and allocates an
// ordinal for every non-literal operand so the generator and the late
// verifier (C7) can agree on placeholder numbering.
//
// Grounded on the teacher's schema-validation pass (compiler/gen's type
// resolution walks a graph of declared fields/edges checking references
// exist before code generation) but rebuilt against ir.Query/registry
// instead of a generated schema graph, since there is no per-entity
// generated type here to validate against.
package analyzer

import (
	"fmt"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/diag"
	"github.com/tql-go/tql/ir"
	"github.com/tql-go/tql/registry"
)

// Placeholder records one non-literal operand: its position in emission
// order, the column it is bound to (or "i64" for index/range operands),
// the expected Type (TypeInvalid when the column could not be resolved),
// and the span used to report late mismatches.
type Placeholder struct {
	Ordinal int
	Column  string
	Type    tql.Type
	Span    ir.Span
}

// Result is the analyzer's output: the same Query (now safe to hand to
// the generator) plus its ordered placeholder table.
type Result struct {
	Query        *ir.Query
	Table        *registry.Table
	Placeholders []Placeholder
}

type state struct {
	reg   *registry.Registry
	table *registry.Table
	diags []diag.Diagnostic
	ord   int
	ph    []Placeholder
}

// Analyze validates q against reg and returns the annotated result, or a
// failing SqlResult carrying every diagnostic collected (§4.4 step 8:
// errors accumulate, the analyzer never stops at the first problem).
func Analyze(reg *registry.Registry, q *ir.Query) diag.SqlResult[*Result] {
	table, ok := reg.Lookup(q.Table)
	if !ok {
		d := diag.UnknownTable(q.Table, q.Span, nearest(q.Table, reg.Names()))
		return diag.Res[*Result](nil, []diag.Diagnostic{d})
	}

	s := &state{reg: reg, table: table}

	for _, j := range q.Joins {
		s.resolveJoin(j)
	}

	// Placeholder ordinals must match the left-to-right order of the SQL
	// text the generator (C5) emits, which differs by statement kind:
	// INSERT/UPDATE emit their SET/VALUES list before any WHERE clause,
	// Select/Aggregate emit WHERE, then HAVING, then LIMIT/OFFSET.
	switch q.Kind {
	case ir.Insert, ir.Update:
		for i := range q.Assignments {
			s.analyzeAssignment(&q.Assignments[i])
		}
		if q.Filter != nil {
			s.analyzeTree(q.Filter)
		}
	default:
		if q.Filter != nil {
			s.analyzeTree(q.Filter)
		}
		if q.Kind == ir.Aggregate {
			s.analyzeAggregate(q)
		}
		if q.LimitOffset != nil {
			// A range is emitted as LIMIT <End> OFFSET <Start>, so End's
			// placeholder comes first.
			s.analyzeOperandPtr(q.LimitOffset.End, "i64", tql.TypeI64)
			s.analyzeOperandPtr(q.LimitOffset.Start, "i64", tql.TypeI64)
		}
	}

	for _, term := range q.Order {
		s.resolvePath(term.Field)
	}

	res := &Result{Query: q, Table: table, Placeholders: s.ph}
	return diag.Res(res, s.diags)
}

// ValidateSchema runs the declaration-time checks (§7 NoPrimaryKey) that
// don't depend on any particular query, against every registered table.
func ValidateSchema(reg *registry.Registry) []diag.Diagnostic {
	var diags []diag.Diagnostic
	reg.Iterate(func(t *registry.Table) {
		if _, ok := t.Serial(); !ok {
			diags = append(diags, diag.NoPrimaryKey(t.Name, ir.Span{}))
		}
	})
	return diags
}

func (s *state) resolveJoin(j ir.Join) {
	name, ok := j.Field.Head()
	if !ok {
		return
	}
	fd, ok := s.table.Field(name)
	if !ok {
		s.diags = append(s.diags, diag.UnknownField(name, s.table.Name, j.Field.Span, nearest(name, s.table.Names())))
		return
	}
	if fd.Type != tql.TypeForeignKey {
		s.diags = append(s.diags, diag.JoinOnNonFK(name, s.table.Name, j.Field.Span))
	}
}

// resolvePath resolves a FieldPath against the root table, following a
// single foreign-key hop for two-segment paths (§4.4 step 2). It returns
// the resolved field's descriptor and whether resolution succeeded.
func (s *state) resolvePath(path ir.FieldPath) (tql.FieldDescriptor, bool) {
	head, ok := path.Head()
	if !ok {
		return tql.FieldDescriptor{}, false
	}
	fd, ok := s.table.Field(head)
	if !ok {
		s.diags = append(s.diags, diag.UnknownField(head, s.table.Name, path.Span, nearest(head, s.table.Names())))
		return tql.FieldDescriptor{}, false
	}
	if len(path.Segments) == 1 {
		return fd, true
	}
	if fd.Type != tql.TypeForeignKey {
		s.diags = append(s.diags, diag.ParseFailure(
			fmt.Sprintf("`%s` is not a foreign key, cannot follow path `%s`", head, path.String()), path.Span))
		return tql.FieldDescriptor{}, false
	}
	target, ok := s.reg.ResolveForeign(fd.Target)
	if !ok {
		s.diags = append(s.diags, diag.UnknownTable(fd.Target, path.Span, nearest(fd.Target, s.reg.Names())))
		return tql.FieldDescriptor{}, false
	}
	tail := path.Segments[1]
	tfd, ok := target.Field(tail)
	if !ok {
		s.diags = append(s.diags, diag.UnknownField(tail, target.Name, path.Span, nearest(tail, target.Names())))
		return tql.FieldDescriptor{}, false
	}
	return tfd, true
}

func (s *state) analyzeTree(t *ir.FilterTree) {
	switch t.Kind {
	case ir.TreeLeaf:
		s.analyzeCondition(t.Leaf)
	default:
		for _, c := range t.Children {
			s.analyzeTree(c)
		}
	}
}

func (s *state) analyzeCondition(cond *ir.Condition) {
	if cond.Part != "" {
		fd, ok := s.resolvePath(cond.Field)
		if ok && !fd.Type.Temporal() {
			s.diags = append(s.diags, diag.ParseFailure(
				fmt.Sprintf("datetime part `%s` requires a DateTime/Date/Time field, `%s` is `%s`", cond.Part, cond.Field.String(), fd.Type), cond.Field.Span))
		}
		s.analyzeOperand(&cond.Operand, cond.Field.String(), tql.TypeI32)
		return
	}

	if cond.Method != "" {
		s.analyzeMethodCondition(cond)
		return
	}

	fd, ok := s.resolvePath(cond.Field)
	if !ok {
		s.analyzeOperand(&cond.Operand, cond.Field.String(), tql.TypeInvalid)
		return
	}
	s.analyzeOperand(&cond.Operand, cond.Field.String(), fd.Type)
	s.checkLiteralType(cond.Operand, fd, cond.Field.Span)
}

func (s *state) analyzeMethodCondition(cond *ir.Condition) {
	fd, ok := s.resolvePath(cond.Field)

	switch cond.Method {
	case ir.Contains, ir.StartsWith, ir.EndsWith, ir.Regex, ir.IRegex:
		if ok && !fd.Type.Textual() {
			s.diags = append(s.diags, diag.ParseFailure(
				fmt.Sprintf("`.%s(...)` requires a String receiver, `%s` is `%s`", cond.Method, cond.Field.String(), fd.Type), cond.Field.Span))
		}
		for i := range cond.MethodArgs {
			s.analyzeOperand(&cond.MethodArgs[i], cond.Field.String(), tql.TypeString)
		}
	case ir.IsNone, ir.IsSome:
		if ok && fd.Type != tql.TypeOptional {
			s.diags = append(s.diags, diag.ParseFailure(
				fmt.Sprintf("`.%s()` requires an Optional receiver, `%s` is `%s`", cond.Method, cond.Field.String(), fd.Type), cond.Field.Span))
		}
	case ir.Len:
		if ok && !fd.Type.Textual() {
			s.diags = append(s.diags, diag.ParseFailure(
				fmt.Sprintf("`.len()` requires a String receiver, `%s` is `%s`", cond.Field.String(), fd.Type), cond.Field.Span))
		}
		s.analyzeOperand(&cond.Operand, cond.Field.String(), tql.TypeI64)
	}
}

func (s *state) analyzeOperandPtr(op *ir.Operand, column string, typ tql.Type) {
	if op == nil {
		return
	}
	s.analyzeOperand(op, column, typ)
}

func (s *state) analyzeOperand(op *ir.Operand, column string, typ tql.Type) {
	if op.Kind != ir.OperandHostExpr {
		return
	}
	s.ph = append(s.ph, Placeholder{Ordinal: s.ord, Column: column, Type: typ, Span: op.Expr.Span})
	s.ord++
}

// checkLiteralType verifies a bound literal operand's Go value is
// compatible with the column's declared Type (§4.4 step 5).
func (s *state) checkLiteralType(op ir.Operand, fd tql.FieldDescriptor, span ir.Span) {
	if op.Kind != ir.OperandLiteral {
		return
	}
	typ := fd.Type
	if typ == tql.TypeOptional {
		typ = fd.Of
	}
	switch v := op.Literal.Value.(type) {
	case int64:
		if !typ.Numeric() && typ != tql.TypeForeignKey {
			s.diags = append(s.diags, diag.TypeMismatch(
				fmt.Sprintf("expected %s, found integer literal %d", typ, v), span))
		}
	case float64:
		if typ != tql.TypeF32 && typ != tql.TypeF64 {
			s.diags = append(s.diags, diag.TypeMismatch(
				fmt.Sprintf("expected %s, found float literal %v", typ, v), span))
		}
	case string:
		if !typ.Textual() {
			s.diags = append(s.diags, diag.TypeMismatch(
				fmt.Sprintf("expected %s, found string literal %q", typ, v), span))
		}
	case bool:
		if typ != tql.TypeBool {
			s.diags = append(s.diags, diag.TypeMismatch(
				fmt.Sprintf("expected %s, found bool literal %v", typ, v), span))
		}
	}
}

func (s *state) analyzeAssignment(a *ir.Assignment) {
	fd, ok := s.table.Field(a.Field)
	if !ok {
		s.diags = append(s.diags, diag.UnknownField(a.Field, s.table.Name, ir.Span{}, nearest(a.Field, s.table.Names())))
		s.analyzeOperand(&a.Operand, a.Field, tql.TypeInvalid)
		return
	}
	s.analyzeOperand(&a.Operand, a.Field, fd.Type)
	s.checkLiteralType(a.Operand, fd, ir.Span{})
}

// analyzeAggregate enforces §4.4 step 7: a `.filter()` attached before
// `.aggregate()` (ir.Query.Filter) refers to plain columns (WHERE), a
// `.having()` attached after (ir.Query.Having) refers to aggregate
// aliases, and every grouped field/aggregate field must resolve.
func (s *state) analyzeAggregate(q *ir.Query) {
	for _, g := range q.GroupBy {
		s.resolvePath(g)
	}
	aliases := make(map[string]bool, len(q.Aggregates))
	for _, a := range q.Aggregates {
		if a.Field.String() != "" {
			s.resolvePath(a.Field)
		}
		aliases[a.Alias] = true
	}
	if q.Having == nil {
		return
	}
	s.checkHavingAliases(q.Having, aliases)
}

func (s *state) checkHavingAliases(t *ir.FilterTree, aliases map[string]bool) {
	if t.Kind == ir.TreeLeaf {
		name, _ := t.Leaf.Field.Head()
		if name != "" && !aliases[name] {
			s.diags = append(s.diags, diag.AggregateShape(
				fmt.Sprintf("`.having(%s ...)`: `%s` is not an aggregate alias", name, name), t.Leaf.Field.Span))
		}
		s.analyzeOperand(&t.Leaf.Operand, name, tql.TypeI64)
		return
	}
	for _, c := range t.Children {
		s.checkHavingAliases(c, aliases)
	}
}
