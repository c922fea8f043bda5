package sql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tql-go/tql/dialect"
)

// Querier wraps the Query method that returns the SQL string and its
// positional argument list, ready to be passed to a Conn.
type Querier interface {
	Query() (string, []any)
}

// Builder is the low-level SQL string builder shared by every statement
// builder in this package. It accumulates SQL text, bound arguments and
// the running placeholder count for the active dialect.
type Builder struct {
	sb      *strings.Builder
	args    []any
	dialect string
	total   int
}

// Dialect returns a DialectBuilder bound to the given dialect name.
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{dialect: name}
}

// DialectBuilder constructs statement builders for a fixed dialect.
type DialectBuilder struct {
	dialect string
}

// Select returns a new Selector for the given columns.
func (d *DialectBuilder) Select(columns ...string) *Selector {
	return (&Selector{Builder: Builder{dialect: d.dialect}}).Select(columns...)
}

// Insert returns a new InsertBuilder for the given table.
func (d *DialectBuilder) Insert(table string) *InsertBuilder {
	return &InsertBuilder{Builder: Builder{dialect: d.dialect}, table: table}
}

// Update returns a new UpdateBuilder for the given table.
func (d *DialectBuilder) Update(table string) *UpdateBuilder {
	return &UpdateBuilder{Builder: Builder{dialect: d.dialect}, table: table}
}

// Delete returns a new DeleteBuilder for the given table.
func (d *DialectBuilder) Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{Builder: Builder{dialect: d.dialect}, table: table}
}

func (b *Builder) init() {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
}

func (b *Builder) writeByte(c byte) *Builder {
	b.init()
	b.sb.WriteByte(c)
	return b
}

func (b *Builder) writeString(s string) *Builder {
	b.init()
	b.sb.WriteString(s)
	return b
}

func (b *Builder) pad() *Builder {
	b.init()
	if n := b.sb.Len(); n > 0 && b.sb.String()[n-1] != ' ' {
		b.sb.WriteByte(' ')
	}
	return b
}

// Ident writes a quoted identifier using the current dialect's quoting rule.
func (b *Builder) Ident(name string) *Builder {
	switch {
	case name == "" || name == "*":
		b.writeString(name)
	case strings.ContainsAny(name, "(`\"'. "):
		// Already an expression, alias, or qualified name; pass through.
		b.writeString(name)
	default:
		b.writeString(b.quote(name))
	}
	return b
}

func (b *Builder) quote(name string) string {
	switch b.dialect {
	case dialect.MySQL:
		return "`" + name + "`"
	default:
		return `"` + name + `"`
	}
}

// Arg writes a placeholder for v and records it in the argument list.
func (b *Builder) Arg(v any) *Builder {
	b.init()
	b.total++
	switch b.dialect {
	case dialect.Postgres:
		b.sb.WriteString("$" + strconv.Itoa(b.total))
	default:
		b.sb.WriteByte('?')
	}
	b.args = append(b.args, v)
	return b
}

// Args reports the bound argument list so far.
func (b *Builder) Args() []any { return b.args }

// String returns the accumulated SQL text.
func (b *Builder) String() string {
	b.init()
	return b.sb.String()
}

// P is a predicate: a function that writes boolean SQL into a Builder.
type P func(*Builder)

// Predicate is the exported form of P used by Selector.Where and friends.
type Predicate = P

func (p P) Query() (string, []any) {
	b := &Builder{}
	p(b)
	return b.String(), b.args
}

func binary(col, op string, v any) P {
	return func(b *Builder) {
		b.Ident(col).pad().writeString(op).writeByte(' ').Arg(v)
	}
}

// EQ returns a predicate that checks col = v.
func EQ(col string, v any) P { return binary(col, "=", v) }

// NEQ returns a predicate that checks col <> v.
func NEQ(col string, v any) P { return binary(col, "<>", v) }

// GT returns a predicate that checks col > v.
func GT(col string, v any) P { return binary(col, ">", v) }

// GTE returns a predicate that checks col >= v.
func GTE(col string, v any) P { return binary(col, ">=", v) }

// LT returns a predicate that checks col < v.
func LT(col string, v any) P { return binary(col, "<", v) }

// LTE returns a predicate that checks col <= v.
func LTE(col string, v any) P { return binary(col, "<=", v) }

// In returns a predicate that checks col IN (vs...).
func In(col string, vs ...any) P {
	return func(b *Builder) {
		if len(vs) == 0 {
			b.writeString("false")
			return
		}
		b.Ident(col).writeString(" IN (")
		for i, v := range vs {
			if i > 0 {
				b.writeString(", ")
			}
			b.Arg(v)
		}
		b.writeByte(')')
	}
}

// NotIn returns a predicate that checks col NOT IN (vs...).
func NotIn(col string, vs ...any) P {
	return func(b *Builder) {
		if len(vs) == 0 {
			b.writeString("true")
			return
		}
		b.Ident(col).writeString(" NOT IN (")
		for i, v := range vs {
			if i > 0 {
				b.writeString(", ")
			}
			b.Arg(v)
		}
		b.writeByte(')')
	}
}

// Contains returns a predicate that checks col LIKE '%v%'.
func Contains(col, v string) P { return like(col, "%"+v+"%", false) }

// ContainsFold is a case-insensitive Contains.
func ContainsFold(col, v string) P { return like(col, "%"+v+"%", true) }

// HasPrefix returns a predicate that checks col LIKE 'v%'.
func HasPrefix(col, v string) P { return like(col, v+"%", false) }

// HasSuffix returns a predicate that checks col LIKE '%v'.
func HasSuffix(col, v string) P { return like(col, "%"+v, false) }

// EqualFold returns a case-insensitive equality predicate.
func EqualFold(col, v string) P {
	return func(b *Builder) {
		b.writeString("LOWER(").Ident(col).writeString(") = LOWER(").Arg(v).writeByte(')')
	}
}

func like(col, pattern string, fold bool) P {
	return func(b *Builder) {
		op := "LIKE"
		if fold {
			b.writeString("LOWER(").Ident(col).writeString(") " + op + " LOWER(").Arg(pattern).writeByte(')')
			return
		}
		b.Ident(col).writeString(" " + op + " ").Arg(pattern)
	}
}

// IsNull returns a predicate that checks col IS NULL.
func IsNull(col string) P {
	return func(b *Builder) { b.Ident(col).writeString(" IS NULL") }
}

// NotNull returns a predicate that checks col IS NOT NULL.
func NotNull(col string) P {
	return func(b *Builder) { b.Ident(col).writeString(" IS NOT NULL") }
}

// And combines predicates with AND, parenthesizing when there's more than one.
func And(ps ...P) P {
	return boolOp(ps, " AND ")
}

// Or combines predicates with OR, parenthesizing when there's more than one.
func Or(ps ...P) P {
	return boolOp(ps, " OR ")
}

func boolOp(ps []P, op string) P {
	return func(b *Builder) {
		switch len(ps) {
		case 0:
			return
		case 1:
			ps[0](b)
			return
		}
		b.writeByte('(')
		for i, p := range ps {
			if i > 0 {
				b.writeString(op)
			}
			p(b)
		}
		b.writeByte(')')
	}
}

// Not negates a predicate.
func Not(p P) P {
	return func(b *Builder) {
		b.writeString("NOT (")
		p(b)
		b.writeByte(')')
	}
}

// Package-level Field* helpers used by the generic predicate.Field types.

func FieldEQ(name string, v any) func(*Selector)  { return fieldPred(EQ(name, v)) }
func FieldNEQ(name string, v any) func(*Selector) { return fieldPred(NEQ(name, v)) }
func FieldGT(name string, v any) func(*Selector)  { return fieldPred(GT(name, v)) }
func FieldGTE(name string, v any) func(*Selector) { return fieldPred(GTE(name, v)) }
func FieldLT(name string, v any) func(*Selector)  { return fieldPred(LT(name, v)) }
func FieldLTE(name string, v any) func(*Selector) { return fieldPred(LTE(name, v)) }

func FieldIn(name string, vs ...any) func(*Selector) {
	return func(s *Selector) { s.Where(In(name, vs...)) }
}

func FieldNotIn(name string, vs ...any) func(*Selector) {
	return func(s *Selector) { s.Where(NotIn(name, vs...)) }
}

func FieldContains(name, v string) func(*Selector)     { return fieldPred(Contains(name, v)) }
func FieldContainsFold(name, v string) func(*Selector) { return fieldPred(ContainsFold(name, v)) }
func FieldHasPrefix(name, v string) func(*Selector)    { return fieldPred(HasPrefix(name, v)) }
func FieldHasSuffix(name, v string) func(*Selector)    { return fieldPred(HasSuffix(name, v)) }
func FieldEqualFold(name, v string) func(*Selector)    { return fieldPred(EqualFold(name, v)) }
func FieldIsNull(name string) func(*Selector)          { return fieldPred(IsNull(name)) }
func FieldNotNull(name string) func(*Selector)         { return fieldPred(NotNull(name)) }

func fieldPred(p P) func(*Selector) {
	return func(s *Selector) { s.Where(p) }
}

// join describes a single JOIN clause attached to a Selector.
type join struct {
	table, on string
}

// Selector builds a SELECT statement.
type Selector struct {
	Builder
	columns []string
	table   string
	joins   []join
	where   P
	group   []string
	having  P
	order   []string
	limit   *int
	offset  *int
}

// Select starts (or resets) the column list of the Selector.
func (s *Selector) Select(columns ...string) *Selector {
	s.columns = columns
	return s
}

// From sets the source table.
func (s *Selector) From(table string) *Selector {
	s.table = table
	return s
}

// C returns the column name unchanged; it does not qualify it with the
// selector's table.
func (s *Selector) C(column string) string {
	return column
}

// Join adds an inner join clause: JOIN table ON on.
func (s *Selector) Join(table, on string) *Selector {
	s.joins = append(s.joins, join{table, on})
	return s
}

// Where attaches (AND-combining) a predicate to the WHERE clause.
func (s *Selector) Where(p P) *Selector {
	if s.where == nil {
		s.where = p
	} else {
		s.where = And(s.where, p)
	}
	return s
}

// GroupBy sets the GROUP BY column list.
func (s *Selector) GroupBy(columns ...string) *Selector {
	s.group = columns
	return s
}

// Having attaches the HAVING predicate.
func (s *Selector) Having(p P) *Selector {
	s.having = p
	return s
}

// OrderBy appends ORDER BY terms, each already spelled with ASC/DESC.
func (s *Selector) OrderBy(terms ...string) *Selector {
	s.order = append(s.order, terms...)
	return s
}

// Limit sets the LIMIT clause.
func (s *Selector) Limit(n int) *Selector {
	s.limit = &n
	return s
}

// Offset sets the OFFSET clause.
func (s *Selector) Offset(n int) *Selector {
	s.offset = &n
	return s
}

// Query renders the accumulated SELECT statement and argument list.
func (s *Selector) Query() (string, []any) {
	s.sb = &strings.Builder{}
	s.args = nil
	s.total = 0
	s.writeString("SELECT ")
	if len(s.columns) == 0 {
		s.writeByte('*')
	} else {
		for i, c := range s.columns {
			if i > 0 {
				s.writeString(", ")
			}
			s.Ident(c)
		}
	}
	s.writeString(" FROM ")
	s.Ident(s.table)
	for _, j := range s.joins {
		s.writeString(" JOIN ")
		s.Ident(j.table)
		s.writeString(" ON ")
		s.writeString(j.on)
	}
	if s.where != nil {
		s.writeString(" WHERE ")
		s.where(&s.Builder)
	}
	if len(s.group) > 0 {
		s.writeString(" GROUP BY ")
		for i, c := range s.group {
			if i > 0 {
				s.writeString(", ")
			}
			s.Ident(c)
		}
	}
	if s.having != nil {
		s.writeString(" HAVING ")
		s.having(&s.Builder)
	}
	if len(s.order) > 0 {
		s.writeString(" ORDER BY ")
		s.writeString(strings.Join(s.order, ", "))
	}
	if s.limit != nil {
		s.writeString(fmt.Sprintf(" LIMIT %d", *s.limit))
	}
	if s.offset != nil {
		s.writeString(fmt.Sprintf(" OFFSET %d", *s.offset))
	}
	return s.String(), s.Args()
}

// InsertBuilder builds an INSERT statement.
type InsertBuilder struct {
	Builder
	table     string
	columns   []string
	values    [][]any
	returning []string
	isDefault bool
}

// Columns sets the column list.
func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = columns
	return i
}

// Values appends a row of values matching Columns order.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.values = append(i.values, values)
	return i
}

// Default marks the statement as a DEFAULT VALUES insert.
func (i *InsertBuilder) Default() *InsertBuilder {
	i.isDefault = true
	return i
}

// Returning sets the RETURNING column list (Postgres/SQLite only).
func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	i.returning = columns
	return i
}

// Query renders the INSERT statement and argument list.
func (i *InsertBuilder) Query() (string, []any) {
	i.sb = &strings.Builder{}
	i.args = nil
	i.total = 0
	i.writeString("INSERT INTO ")
	i.Ident(i.table)
	switch {
	case i.isDefault:
		i.writeString(" DEFAULT VALUES")
	default:
		i.writeString(" (")
		for idx, c := range i.columns {
			if idx > 0 {
				i.writeString(", ")
			}
			i.Ident(c)
		}
		i.writeString(") VALUES ")
		for r, row := range i.values {
			if r > 0 {
				i.writeString(", ")
			}
			i.writeByte('(')
			for idx, v := range row {
				if idx > 0 {
					i.writeString(", ")
				}
				i.Arg(v)
			}
			i.writeByte(')')
		}
	}
	if len(i.returning) > 0 && i.dialect != dialect.MySQL {
		i.writeString(" RETURNING ")
		i.writeString(strings.Join(i.returning, ", "))
	}
	return i.String(), i.Args()
}

// UpdateBuilder builds an UPDATE statement.
type UpdateBuilder struct {
	Builder
	table string
	sets  []string
	setAt []any
	where P
}

// Set appends a `column = value` assignment.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.sets = append(u.sets, column)
	u.setAt = append(u.setAt, v)
	return u
}

// Where attaches the WHERE predicate.
func (u *UpdateBuilder) Where(p P) *UpdateBuilder {
	if u.where == nil {
		u.where = p
	} else {
		u.where = And(u.where, p)
	}
	return u
}

// Query renders the UPDATE statement and argument list.
func (u *UpdateBuilder) Query() (string, []any) {
	u.sb = &strings.Builder{}
	u.args = nil
	u.total = 0
	u.writeString("UPDATE ")
	u.Ident(u.table)
	u.writeString(" SET ")
	for idx, c := range u.sets {
		if idx > 0 {
			u.writeString(", ")
		}
		u.Ident(c).writeString(" = ")
		u.Arg(u.setAt[idx])
	}
	if u.where != nil {
		u.writeString(" WHERE ")
		u.where(&u.Builder)
	}
	return u.String(), u.Args()
}

// DeleteBuilder builds a DELETE statement.
type DeleteBuilder struct {
	Builder
	table string
	where P
}

// Where attaches the WHERE predicate.
func (d *DeleteBuilder) Where(p P) *DeleteBuilder {
	if d.where == nil {
		d.where = p
	} else {
		d.where = And(d.where, p)
	}
	return d
}

// Query renders the DELETE statement and argument list.
func (d *DeleteBuilder) Query() (string, []any) {
	d.sb = &strings.Builder{}
	d.args = nil
	d.total = 0
	d.writeString("DELETE FROM ")
	d.Ident(d.table)
	if d.where != nil {
		d.writeString(" WHERE ")
		d.where(&d.Builder)
	}
	return d.String(), d.Args()
}

var _ Querier = (*Selector)(nil)
var _ Querier = (*InsertBuilder)(nil)
var _ Querier = (*UpdateBuilder)(nil)
var _ Querier = (*DeleteBuilder)(nil)
