// Package verifier implements the late type verifier (C7): once the host
// compiler has resolved the concrete Go types of a query's argument
// expressions, it re-checks them against the placeholder table the
// analyzer (C4) built at the query's call site and emits any remaining
// type-mismatch diagnostics.
package verifier

import (
	"sync"

	"github.com/tql-go/tql/analyzer"
	"github.com/tql-go/tql/ir"
)

// Entry is what C4/C5 deposit for one query call site: the table the
// query targets and its ordered placeholder list.
type Entry struct {
	Table        string
	Placeholders []analyzer.Placeholder
}

// table is the process-global placeholder cache (§3 "Lifecycle": "the
// placeholder list is retained in a second process-global map keyed by
// the query's source position"), a sync.Map since macro invocations may
// be reordered by the host compiler and reads must tolerate arriving in
// any order relative to sibling writes (§5).
var table sync.Map // map[ir.Span]Entry

// Register deposits the placeholder table for one query call site,
// called once generation succeeds for that site.
func Register(span ir.Span, e Entry) {
	table.Store(span, e)
}

// Lookup retrieves the placeholder table for span, if any query was
// generated there.
func Lookup(span ir.Span) (Entry, bool) {
	v, ok := table.Load(span)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// Reset clears the placeholder table. Exists for tests; a real compiler
// run never needs to forget a call site mid-compilation.
func Reset() {
	table = sync.Map{}
}
