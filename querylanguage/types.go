package querylanguage

import (
	"database/sql/driver"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

// Fielder defers a predicate to a specific field name. It mirrors the
// teacher's generic `StringField[P]`/`IntField[P]` binding in
// dialect/sql/predicate.go, but inverted: there the field name is fixed at
// construction and the comparison value supplied per call; here a
// predicate is built value-first, independent of any schema, and bound to
// a field name last, once the target column is actually known.
type Fielder interface {
	Field(name string) P
}

// predicate is the shared representation behind every typed predicate
// family below: a value-bound comparison waiting on a field name.
type predicate[T any] func(field string) P

func (f predicate[T]) Field(name string) P { return f(name) }

func orP[T any](ps ...predicate[T]) predicate[T] {
	return func(field string) P {
		children := make([]P, len(ps))
		for i, p := range ps {
			children[i] = p(field)
		}
		return naryExpr{op: "||", children: children}
	}
}

func andP[T any](ps ...predicate[T]) predicate[T] {
	return func(field string) P {
		children := make([]P, len(ps))
		for i, p := range ps {
			children[i] = p(field)
		}
		return naryExpr{op: "&&", children: children}
	}
}

func notP[T any](p predicate[T]) predicate[T] {
	return func(field string) P { return Not(p(field)) }
}

func nilP[T any]() predicate[T]    { return func(field string) P { return FieldNil(field) } }
func notNilP[T any]() predicate[T] { return func(field string) P { return FieldNotNil(field) } }

// rawCompareExpr is a comparison whose value text has already been
// rendered by the caller (quoted, base64-encoded, float-formatted, ...),
// so it writes field/op/text verbatim instead of running renderValue.
type rawCompareExpr struct{ field, op, text string }

func (r rawCompareExpr) String() string { return fmt.Sprintf("%s %s %s", r.field, r.op, r.text) }
func (r rawCompareExpr) Negate() P      { return Not(r) }

func cmp[T any](op, text string) predicate[T] {
	return func(field string) P { return rawCompareExpr{field: field, op: op, text: text} }
}

func numCmp[T any](op string, v T) predicate[T] { return cmp[T](op, fmt.Sprint(v)) }

// StringP is a deferred predicate over a string field.
type StringP = predicate[string]

func StringEQ(v string) StringP       { return cmp[string]("==", fmt.Sprintf("%q", v)) }
func StringNEQ(v string) StringP      { return cmp[string]("!=", fmt.Sprintf("%q", v)) }
func StringLT(v string) StringP       { return cmp[string]("<", fmt.Sprintf("%q", v)) }
func StringLTE(v string) StringP      { return cmp[string]("<=", fmt.Sprintf("%q", v)) }
func StringGT(v string) StringP       { return cmp[string](">", fmt.Sprintf("%q", v)) }
func StringGTE(v string) StringP      { return cmp[string](">=", fmt.Sprintf("%q", v)) }
func StringNil() StringP              { return nilP[string]() }
func StringNotNil() StringP           { return notNilP[string]() }
func StringOr(ps ...StringP) StringP  { return orP(ps...) }
func StringAnd(ps ...StringP) StringP { return andP(ps...) }
func StringNot(p StringP) StringP     { return notP(p) }

// BoolP is a deferred predicate over a bool field.
type BoolP = predicate[bool]

func BoolEQ(v bool) BoolP         { return cmp[bool]("==", fmt.Sprint(v)) }
func BoolNEQ(v bool) BoolP        { return cmp[bool]("!=", fmt.Sprint(v)) }
func BoolNil() BoolP              { return nilP[bool]() }
func BoolNotNil() BoolP           { return notNilP[bool]() }
func BoolOr(ps ...BoolP) BoolP    { return orP(ps...) }
func BoolAnd(ps ...BoolP) BoolP   { return andP(ps...) }
func BoolNot(p BoolP) BoolP       { return notP(p) }

// BytesP is a deferred predicate over a []byte field; values render as
// base64 text, since raw bytes have no query-language literal syntax.
type BytesP = predicate[[]byte]

func bytesText(v []byte) string { return fmt.Sprintf("%q", base64.StdEncoding.EncodeToString(v)) }

func BytesEQ(v []byte) BytesP     { return cmp[[]byte]("==", bytesText(v)) }
func BytesNEQ(v []byte) BytesP    { return cmp[[]byte]("!=", bytesText(v)) }
func BytesNil() BytesP            { return nilP[[]byte]() }
func BytesNotNil() BytesP         { return notNilP[[]byte]() }
func BytesOr(ps ...BytesP) BytesP  { return orP(ps...) }
func BytesAnd(ps ...BytesP) BytesP { return andP(ps...) }
func BytesNot(p BytesP) BytesP     { return notP(p) }

// TimeP is a deferred predicate over a time.Time field; values render as
// RFC 3339 text.
type TimeP = predicate[time.Time]

func timeText(v time.Time) string { return fmt.Sprintf("%q", v.Format(time.RFC3339)) }

func TimeEQ(v time.Time) TimeP  { return cmp[time.Time]("==", timeText(v)) }
func TimeNEQ(v time.Time) TimeP { return cmp[time.Time]("!=", timeText(v)) }
func TimeLT(v time.Time) TimeP  { return cmp[time.Time]("<", timeText(v)) }
func TimeLTE(v time.Time) TimeP { return cmp[time.Time]("<=", timeText(v)) }
func TimeGT(v time.Time) TimeP  { return cmp[time.Time](">", timeText(v)) }
func TimeGTE(v time.Time) TimeP { return cmp[time.Time](">=", timeText(v)) }
func TimeNil() TimeP            { return nilP[time.Time]() }
func TimeNotNil() TimeP         { return notNilP[time.Time]() }
func TimeOr(ps ...TimeP) TimeP  { return orP(ps...) }
func TimeAnd(ps ...TimeP) TimeP { return andP(ps...) }
func TimeNot(p TimeP) TimeP     { return notP(p) }

// UintP is a deferred predicate over a uint field.
type UintP = predicate[uint]

func UintEQ(v uint) UintP     { return numCmp[uint]("==", v) }
func UintNEQ(v uint) UintP    { return numCmp[uint]("!=", v) }
func UintLT(v uint) UintP     { return numCmp[uint]("<", v) }
func UintLTE(v uint) UintP    { return numCmp[uint]("<=", v) }
func UintGT(v uint) UintP     { return numCmp[uint](">", v) }
func UintGTE(v uint) UintP    { return numCmp[uint](">=", v) }
func UintNil() UintP          { return nilP[uint]() }
func UintNotNil() UintP       { return notNilP[uint]() }
func UintOr(ps ...UintP) UintP  { return orP(ps...) }
func UintAnd(ps ...UintP) UintP { return andP(ps...) }
func UintNot(p UintP) UintP     { return notP(p) }

// Uint8P is a deferred predicate over a uint8 field.
type Uint8P = predicate[uint8]

func Uint8EQ(v uint8) Uint8P     { return numCmp[uint8]("==", v) }
func Uint8NEQ(v uint8) Uint8P    { return numCmp[uint8]("!=", v) }
func Uint8LT(v uint8) Uint8P     { return numCmp[uint8]("<", v) }
func Uint8LTE(v uint8) Uint8P    { return numCmp[uint8]("<=", v) }
func Uint8GT(v uint8) Uint8P     { return numCmp[uint8](">", v) }
func Uint8GTE(v uint8) Uint8P    { return numCmp[uint8](">=", v) }
func Uint8Nil() Uint8P           { return nilP[uint8]() }
func Uint8NotNil() Uint8P        { return notNilP[uint8]() }
func Uint8Or(ps ...Uint8P) Uint8P  { return orP(ps...) }
func Uint8And(ps ...Uint8P) Uint8P { return andP(ps...) }
func Uint8Not(p Uint8P) Uint8P     { return notP(p) }

// Uint16P is a deferred predicate over a uint16 field.
type Uint16P = predicate[uint16]

func Uint16EQ(v uint16) Uint16P     { return numCmp[uint16]("==", v) }
func Uint16NEQ(v uint16) Uint16P    { return numCmp[uint16]("!=", v) }
func Uint16LT(v uint16) Uint16P     { return numCmp[uint16]("<", v) }
func Uint16LTE(v uint16) Uint16P    { return numCmp[uint16]("<=", v) }
func Uint16GT(v uint16) Uint16P     { return numCmp[uint16](">", v) }
func Uint16GTE(v uint16) Uint16P    { return numCmp[uint16](">=", v) }
func Uint16Nil() Uint16P            { return nilP[uint16]() }
func Uint16NotNil() Uint16P         { return notNilP[uint16]() }
func Uint16Or(ps ...Uint16P) Uint16P  { return orP(ps...) }
func Uint16And(ps ...Uint16P) Uint16P { return andP(ps...) }
func Uint16Not(p Uint16P) Uint16P     { return notP(p) }

// Uint32P is a deferred predicate over a uint32 field.
type Uint32P = predicate[uint32]

func Uint32EQ(v uint32) Uint32P     { return numCmp[uint32]("==", v) }
func Uint32NEQ(v uint32) Uint32P    { return numCmp[uint32]("!=", v) }
func Uint32LT(v uint32) Uint32P     { return numCmp[uint32]("<", v) }
func Uint32LTE(v uint32) Uint32P    { return numCmp[uint32]("<=", v) }
func Uint32GT(v uint32) Uint32P     { return numCmp[uint32](">", v) }
func Uint32GTE(v uint32) Uint32P    { return numCmp[uint32](">=", v) }
func Uint32Nil() Uint32P            { return nilP[uint32]() }
func Uint32NotNil() Uint32P         { return notNilP[uint32]() }
func Uint32Or(ps ...Uint32P) Uint32P  { return orP(ps...) }
func Uint32And(ps ...Uint32P) Uint32P { return andP(ps...) }
func Uint32Not(p Uint32P) Uint32P     { return notP(p) }

// Uint64P is a deferred predicate over a uint64 field.
type Uint64P = predicate[uint64]

func Uint64EQ(v uint64) Uint64P     { return numCmp[uint64]("==", v) }
func Uint64NEQ(v uint64) Uint64P    { return numCmp[uint64]("!=", v) }
func Uint64LT(v uint64) Uint64P     { return numCmp[uint64]("<", v) }
func Uint64LTE(v uint64) Uint64P    { return numCmp[uint64]("<=", v) }
func Uint64GT(v uint64) Uint64P     { return numCmp[uint64](">", v) }
func Uint64GTE(v uint64) Uint64P    { return numCmp[uint64](">=", v) }
func Uint64Nil() Uint64P            { return nilP[uint64]() }
func Uint64NotNil() Uint64P         { return notNilP[uint64]() }
func Uint64Or(ps ...Uint64P) Uint64P  { return orP(ps...) }
func Uint64And(ps ...Uint64P) Uint64P { return andP(ps...) }
func Uint64Not(p Uint64P) Uint64P     { return notP(p) }

// IntP is a deferred predicate over an int field.
type IntP = predicate[int]

func IntEQ(v int) IntP     { return numCmp[int]("==", v) }
func IntNEQ(v int) IntP    { return numCmp[int]("!=", v) }
func IntLT(v int) IntP     { return numCmp[int]("<", v) }
func IntLTE(v int) IntP    { return numCmp[int]("<=", v) }
func IntGT(v int) IntP     { return numCmp[int](">", v) }
func IntGTE(v int) IntP    { return numCmp[int](">=", v) }
func IntNil() IntP         { return nilP[int]() }
func IntNotNil() IntP      { return notNilP[int]() }
func IntOr(ps ...IntP) IntP  { return orP(ps...) }
func IntAnd(ps ...IntP) IntP { return andP(ps...) }
func IntNot(p IntP) IntP     { return notP(p) }

// Int8P is a deferred predicate over an int8 field.
type Int8P = predicate[int8]

func Int8EQ(v int8) Int8P     { return numCmp[int8]("==", v) }
func Int8NEQ(v int8) Int8P    { return numCmp[int8]("!=", v) }
func Int8LT(v int8) Int8P     { return numCmp[int8]("<", v) }
func Int8LTE(v int8) Int8P    { return numCmp[int8]("<=", v) }
func Int8GT(v int8) Int8P     { return numCmp[int8](">", v) }
func Int8GTE(v int8) Int8P    { return numCmp[int8](">=", v) }
func Int8Nil() Int8P          { return nilP[int8]() }
func Int8NotNil() Int8P       { return notNilP[int8]() }
func Int8Or(ps ...Int8P) Int8P  { return orP(ps...) }
func Int8And(ps ...Int8P) Int8P { return andP(ps...) }
func Int8Not(p Int8P) Int8P     { return notP(p) }

// Int16P is a deferred predicate over an int16 field.
type Int16P = predicate[int16]

func Int16EQ(v int16) Int16P     { return numCmp[int16]("==", v) }
func Int16NEQ(v int16) Int16P    { return numCmp[int16]("!=", v) }
func Int16LT(v int16) Int16P     { return numCmp[int16]("<", v) }
func Int16LTE(v int16) Int16P    { return numCmp[int16]("<=", v) }
func Int16GT(v int16) Int16P     { return numCmp[int16](">", v) }
func Int16GTE(v int16) Int16P    { return numCmp[int16](">=", v) }
func Int16Nil() Int16P           { return nilP[int16]() }
func Int16NotNil() Int16P        { return notNilP[int16]() }
func Int16Or(ps ...Int16P) Int16P  { return orP(ps...) }
func Int16And(ps ...Int16P) Int16P { return andP(ps...) }
func Int16Not(p Int16P) Int16P     { return notP(p) }

// Int32P is a deferred predicate over an int32 field.
type Int32P = predicate[int32]

func Int32EQ(v int32) Int32P     { return numCmp[int32]("==", v) }
func Int32NEQ(v int32) Int32P    { return numCmp[int32]("!=", v) }
func Int32LT(v int32) Int32P     { return numCmp[int32]("<", v) }
func Int32LTE(v int32) Int32P    { return numCmp[int32]("<=", v) }
func Int32GT(v int32) Int32P     { return numCmp[int32](">", v) }
func Int32GTE(v int32) Int32P    { return numCmp[int32](">=", v) }
func Int32Nil() Int32P           { return nilP[int32]() }
func Int32NotNil() Int32P        { return notNilP[int32]() }
func Int32Or(ps ...Int32P) Int32P  { return orP(ps...) }
func Int32And(ps ...Int32P) Int32P { return andP(ps...) }
func Int32Not(p Int32P) Int32P     { return notP(p) }

// Int64P is a deferred predicate over an int64 field.
type Int64P = predicate[int64]

func Int64EQ(v int64) Int64P     { return numCmp[int64]("==", v) }
func Int64NEQ(v int64) Int64P    { return numCmp[int64]("!=", v) }
func Int64LT(v int64) Int64P     { return numCmp[int64]("<", v) }
func Int64LTE(v int64) Int64P    { return numCmp[int64]("<=", v) }
func Int64GT(v int64) Int64P     { return numCmp[int64](">", v) }
func Int64GTE(v int64) Int64P    { return numCmp[int64](">=", v) }
func Int64Nil() Int64P           { return nilP[int64]() }
func Int64NotNil() Int64P        { return notNilP[int64]() }
func Int64Or(ps ...Int64P) Int64P  { return orP(ps...) }
func Int64And(ps ...Int64P) Int64P { return andP(ps...) }
func Int64Not(p Int64P) Int64P     { return notP(p) }

// Float32P is a deferred predicate over a float32 field; values render in
// fixed notation so they never leak Go's scientific-notation formatting
// into query-language text.
type Float32P = predicate[float32]

func float32Text(v float32) string { return strconv.FormatFloat(float64(v), 'f', -1, 32) }

func Float32EQ(v float32) Float32P     { return cmp[float32]("==", float32Text(v)) }
func Float32NEQ(v float32) Float32P    { return cmp[float32]("!=", float32Text(v)) }
func Float32LT(v float32) Float32P     { return cmp[float32]("<", float32Text(v)) }
func Float32LTE(v float32) Float32P    { return cmp[float32]("<=", float32Text(v)) }
func Float32GT(v float32) Float32P     { return cmp[float32](">", float32Text(v)) }
func Float32GTE(v float32) Float32P    { return cmp[float32](">=", float32Text(v)) }
func Float32Nil() Float32P             { return nilP[float32]() }
func Float32NotNil() Float32P          { return notNilP[float32]() }
func Float32Or(ps ...Float32P) Float32P  { return orP(ps...) }
func Float32And(ps ...Float32P) Float32P { return andP(ps...) }
func Float32Not(p Float32P) Float32P     { return notP(p) }

// Float64P is a deferred predicate over a float64 field; values render in
// fixed notation for the same reason as Float32P.
type Float64P = predicate[float64]

func float64Text(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func Float64EQ(v float64) Float64P     { return cmp[float64]("==", float64Text(v)) }
func Float64NEQ(v float64) Float64P    { return cmp[float64]("!=", float64Text(v)) }
func Float64LT(v float64) Float64P     { return cmp[float64]("<", float64Text(v)) }
func Float64LTE(v float64) Float64P    { return cmp[float64]("<=", float64Text(v)) }
func Float64GT(v float64) Float64P     { return cmp[float64](">", float64Text(v)) }
func Float64GTE(v float64) Float64P    { return cmp[float64](">=", float64Text(v)) }
func Float64Nil() Float64P             { return nilP[float64]() }
func Float64NotNil() Float64P          { return notNilP[float64]() }
func Float64Or(ps ...Float64P) Float64P  { return orP(ps...) }
func Float64And(ps ...Float64P) Float64P { return andP(ps...) }
func Float64Not(p Float64P) Float64P     { return notP(p) }

// ValueP and OtherP wrap a database/sql/driver.Valuer — a host expression
// whose literal value can't be rendered into query-language text, so it
// prints as an opaque placeholder (`{}`), the same way a host expression
// operand would in the untyped DSL.
type ValueP = predicate[driver.Valuer]
type OtherP = predicate[driver.Valuer]

func ValueEQ(driver.Valuer) ValueP    { return cmp[driver.Valuer]("==", "{}") }
func ValueNEQ(driver.Valuer) ValueP   { return cmp[driver.Valuer]("!=", "{}") }
func ValueNil() ValueP                { return nilP[driver.Valuer]() }
func ValueNotNil() ValueP             { return notNilP[driver.Valuer]() }
func ValueOr(ps ...ValueP) ValueP     { return orP(ps...) }
func ValueAnd(ps ...ValueP) ValueP    { return andP(ps...) }
func ValueNot(p ValueP) ValueP        { return notP(p) }

func OtherEQ(driver.Valuer) OtherP  { return cmp[driver.Valuer]("==", "{}") }
func OtherNEQ(driver.Valuer) OtherP { return cmp[driver.Valuer]("!=", "{}") }
func OtherNil() OtherP              { return nilP[driver.Valuer]() }
func OtherNotNil() OtherP           { return notNilP[driver.Valuer]() }
func OtherOr(ps ...OtherP) OtherP   { return orP(ps...) }
func OtherAnd(ps ...OtherP) OtherP  { return andP(ps...) }
func OtherNot(p OtherP) OtherP      { return notP(p) }
