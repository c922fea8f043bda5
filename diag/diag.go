// Package diag implements the error model & diagnostic sink (C6): a
// single Diagnostic shape shared by the analyzer, generator and late
// verifier, and a SqlResult wrapper that carries a value alongside any
// diagnostics collected while producing it.
//
// Grounded on the teacher's own errors.go sentinel/typed-error vocabulary
// for the general shape (small, comparable, Error()-returning values) but
// built against a different domain: these are compile-time diagnostics
// with source spans and codes, not runtime driver errors, so the type
// actually has no close analogue to copy from.
package diag

import (
	"fmt"
	"strings"

	"github.com/tql-go/tql/ir"
)

// Kind classifies a Diagnostic the way a host compiler's diagnostic
// surface does.
type Kind int

const (
	Error Kind = iota
	Warning
	Note
	Help
)

func (k Kind) String() string {
	switch k {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	case Help:
		return "help"
	default:
		return "unknown"
	}
}

// Error kind codes (§7). Not every Kind carries a code; ParseFailure,
// UnknownTable/UnknownField and the structural join/aggregate errors are
// identified by message alone, the way the source leaves them uncoded.
const (
	CodeTypeMismatch    = "E0308"
	CodeUnsupportedType = "E0412"
)

// Diagnostic is one compile-time message attached to a source span.
type Diagnostic struct {
	Kind    Kind
	Code    string // optional, e.g. CodeTypeMismatch
	Message string
	Span    ir.Span
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Kind.String())
	if d.Code != "" {
		fmt.Fprintf(&b, "[%s]", d.Code)
	}
	fmt.Fprintf(&b, " at %d:%d: %s", d.Span.Start, d.Span.End, d.Message)
	return b.String()
}

func newDiag(kind Kind, code, msg string, span ir.Span) Diagnostic {
	return Diagnostic{Kind: kind, Code: code, Message: msg, Span: span}
}

// UnknownTable reports a root or foreign-key target that isn't registered,
// optionally suggesting the nearest registered name.
func UnknownTable(name string, span ir.Span, suggestion string) Diagnostic {
	msg := fmt.Sprintf("unknown table `%s`", name)
	if suggestion != "" {
		msg += fmt.Sprintf(" (did you mean `%s`?)", suggestion)
	}
	return newDiag(Error, "", msg, span)
}

// UnknownField reports an identifier that isn't a column of typeName,
// optionally suggesting the nearest field name.
func UnknownField(field, typeName string, span ir.Span, suggestion string) Diagnostic {
	msg := fmt.Sprintf("attempted access of field `%s` on type `%s`", field, typeName)
	if suggestion != "" {
		msg += fmt.Sprintf(" (did you mean `%s`?)", suggestion)
	}
	return newDiag(Error, "", msg, span)
}

// ParseFailure reports an expression that didn't match the DSL grammar.
func ParseFailure(msg string, span ir.Span) Diagnostic {
	return newDiag(Error, "", msg, span)
}

// TypeMismatch reports a placeholder argument type that doesn't match the
// expected column type (§4.7), anchored at the argument's span. The
// companion note at the call site is built separately by TypeMismatchNote.
func TypeMismatch(msg string, argSpan ir.Span) Diagnostic {
	return newDiag(Error, CodeTypeMismatch, msg, argSpan)
}

// TypeMismatchNote is the companion note attached at the macro call site.
func TypeMismatchNote(callSpan ir.Span) Diagnostic {
	return newDiag(Note, "", "in this expansion of query!", callSpan)
}

// UnsupportedType reports a table declaration naming a type outside the
// closed Type set.
func UnsupportedType(field, typeName string, span ir.Span) Diagnostic {
	msg := fmt.Sprintf("field `%s` has unsupported type `%s`", field, typeName)
	return newDiag(Error, CodeUnsupportedType, msg, span)
}

// NoPrimaryKey warns when a table has no Serial field.
func NoPrimaryKey(table string, span ir.Span) Diagnostic {
	return newDiag(Warning, "", fmt.Sprintf("no primary key found on table `%s`", table), span)
}

// AggregateShape reports a `.values()`/`.aggregate()`/`.filter()` ordering
// or alias-reference violation.
func AggregateShape(msg string, span ir.Span) Diagnostic {
	return newDiag(Error, "", msg, span)
}

// JoinOnNonFK reports a `.join(field)` argument that isn't a foreign key.
func JoinOnNonFK(field, table string, span ir.Span) Diagnostic {
	msg := fmt.Sprintf("`.join(%s)`: %s is not a foreign key field of `%s`", field, field, table)
	return newDiag(Error, "", msg, span)
}

// DidYouMeanHelp is the companion help diagnostic for a near-match
// suggestion, used by the late verifier's unknown-placeholder-field case.
func DidYouMeanHelp(suggestion string, span ir.Span) Diagnostic {
	return newDiag(Help, "", fmt.Sprintf("did you mean `%s`?", suggestion), span)
}

// SqlResult is either a successful value or a non-empty collection of
// diagnostics (§4.6). Diagnostics of kind Note/Help/Warning may coexist
// with a successful Value; only an Error diagnostic fails the result.
type SqlResult[T any] struct {
	Value       T
	Diagnostics []Diagnostic
}

// Res constructs a SqlResult the way the source's `res(value, diags)`
// does: success iff no diagnostic in diags has Kind == Error.
func Res[T any](value T, diags []Diagnostic) SqlResult[T] {
	return SqlResult[T]{Value: value, Diagnostics: diags}
}

// OK reports whether the result succeeded (no Error-kind diagnostic).
func (r SqlResult[T]) OK() bool {
	for _, d := range r.Diagnostics {
		if d.Kind == Error {
			return false
		}
	}
	return true
}

// Errors returns only the Error-kind diagnostics.
func (r SqlResult[T]) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind == Error {
			out = append(out, d)
		}
	}
	return out
}
