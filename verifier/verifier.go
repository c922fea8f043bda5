package verifier

import (
	"fmt"
	"reflect"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/analyzer"
	"github.com/tql-go/tql/diag"
	"github.com/tql-go/tql/ir"
	"github.com/tql-go/tql/registry"
)

// acceptedArgType maps a column Type to the predicate deciding whether a
// bound argument's reflect.Type is compatible with it (§4.7's table).
// reflect.Type stands in for "the host compiler's resolved static type of
// the argument expression" — Go code generation runs ahead of, and
// separately from, any expression-level type inference, so the concrete
// type only becomes available once the caller supplies the bound value.
var acceptedArgType = map[tql.Type]func(reflect.Type) bool{
	tql.TypeSerial: is32BitInt,
	tql.TypeI32:    is32BitInt,
	tql.TypeI64:    is64BitInt,
	tql.TypeF32:    func(t reflect.Type) bool { return t.Kind() == reflect.Float32 },
	tql.TypeF64:    func(t reflect.Type) bool { return t.Kind() == reflect.Float64 || t.Kind() == reflect.Float32 },
	tql.TypeBool:   func(t reflect.Type) bool { return t.Kind() == reflect.Bool },
	tql.TypeString: func(t reflect.Type) bool {
		return t.Kind() == reflect.String || (t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8)
	},
	tql.TypeByteString: func(t reflect.Type) bool {
		return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
	},
	tql.TypeDateTime: isTimeLike,
	tql.TypeDate:     isTimeLike,
	tql.TypeTime:     isTimeLike,
}

func is32BitInt(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Uint, reflect.Uint32:
		return true
	default:
		return false
	}
}

func is64BitInt(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isTimeLike(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.PkgPath() == "time" && t.Name() == "Time"
}

// accepts reports whether argType satisfies column, following Optional's
// "nullable wrapper over T, or T itself" rule and ForeignKey's "record
// with the same structural shape as T, or the bare foreign id" rule.
func accepts(column tql.FieldDescriptor, argType reflect.Type) bool {
	typ := column.Type
	if typ == tql.TypeOptional {
		if argType.Kind() == reflect.Ptr {
			argType = argType.Elem()
		}
		typ = column.Of
	}
	if typ == tql.TypeForeignKey {
		return argType.Kind() == reflect.Struct || argType.Kind() == reflect.Ptr || is64BitInt(argType)
	}
	fn, ok := acceptedArgType[typ]
	if !ok {
		return true // no opinion on this type (e.g. Custom/Unsupported) — nothing to check
	}
	return fn(argType)
}

// Verify re-checks the placeholder table registered for span against the
// now-known concrete argTypes of the call site's arguments, in
// placeholder-ordinal order.
func Verify(reg *registry.Registry, span ir.Span, callSpan ir.Span, argTypes []reflect.Type) diag.SqlResult[struct{}] {
	entry, ok := Lookup(span)
	if !ok {
		return diag.Res(struct{}{}, nil)
	}
	table, ok := reg.Lookup(entry.Table)
	if !ok {
		return diag.Res(struct{}{}, []diag.Diagnostic{diag.UnknownTable(entry.Table, span, "")})
	}

	var diags []diag.Diagnostic
	for _, ph := range entry.Placeholders {
		if ph.Ordinal >= len(argTypes) {
			continue
		}
		argType := argTypes[ph.Ordinal]

		if ph.Column == "i64" {
			if !is64BitInt(argType) {
				diags = append(diags, diag.TypeMismatch(
					fmt.Sprintf("expected I64, found %s", argType), ph.Span))
				diags = append(diags, diag.TypeMismatchNote(callSpan))
			}
			continue
		}

		fd, ok := table.Field(ph.Column)
		if !ok {
			// §4.7: the unknown-field message and its "did you mean" are
			// separate diagnostics here (unlike the analyzer's inline
			// form), matching the source's distinct error + help pair.
			suggestion := analyzer.Suggest(ph.Column, table.Names())
			diags = append(diags, diag.UnknownField(ph.Column, table.Name, ph.Span, ""))
			if suggestion != "" {
				diags = append(diags, diag.DidYouMeanHelp(suggestion, ph.Span))
			}
			continue
		}

		if !accepts(fd, argType) {
			diags = append(diags, diag.TypeMismatch(
				fmt.Sprintf("expected %s, found %s", fd.Type, argType), ph.Span))
			diags = append(diags, diag.TypeMismatchNote(callSpan))
		}
	}
	return diag.Res(struct{}{}, diags)
}
