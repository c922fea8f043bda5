// Package registry implements the schema registry (C1): the process-wide,
// append-mostly mapping from table name to field set that table
// declarations are deposited into and the analyzer/generator read from.
//
// Mirrors the single global instance pattern the teacher codebase uses for
// its schema graph, but narrowed to the closed field model in package tql
// and guarded for concurrent macro-style registration (see the package's
// concurrency note).
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-openapi/inflect"

	"github.com/tql-go/tql"
)

// Table is a registered table: its name and its fields in declaration
// order (insertion order determines `SELECT *` column order).
type Table struct {
	Name   string
	Fields []tql.FieldDescriptor

	byName map[string]int
}

// Field looks up a field by name, reporting whether it exists.
func (t *Table) Field(name string) (tql.FieldDescriptor, bool) {
	i, ok := t.byName[name]
	if !ok {
		return tql.FieldDescriptor{}, false
	}
	return t.Fields[i], true
}

// Names returns the table's field names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// Serial returns the table's Serial (primary key) field, if any.
func (t *Table) Serial() (tql.FieldDescriptor, bool) {
	for _, f := range t.Fields {
		if f.Type == tql.TypeSerial {
			return f, true
		}
	}
	return tql.FieldDescriptor{}, false
}

// DuplicateTableError is returned by Register when a table name is
// re-registered with a field set that differs from the first registration.
type DuplicateTableError struct {
	Name string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("registry: table %q already registered with a different schema", e.Name)
}

// Registry is the schema registry. The zero value is usable; Default
// returns the process-wide singleton used by compiler/load and cmd/tqlc.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

var def = New()

// Default returns the process-global registry instance.
func Default() *Registry { return def }

// New returns an empty, independent Registry (used by tests and by
// cmd/tqlc when isolating one generation run from another).
func New() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Reset clears the registry. Exists for tests; production code never
// needs to un-register a table mid-compilation.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = make(map[string]*Table)
}

// Register deposits a table's field set under name. Re-registering the
// same name with an identical field set is a no-op (harmless re-expansion
// of the same declaration); registering it with a different field set
// returns a *DuplicateTableError.
func (r *Registry) Register(name string, fields []tql.FieldDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tables == nil {
		r.tables = make(map[string]*Table)
	}
	if existing, ok := r.tables[name]; ok {
		if sameFields(existing.Fields, fields) {
			return nil
		}
		return &DuplicateTableError{Name: name}
	}
	t := &Table{
		Name:   name,
		Fields: append([]tql.FieldDescriptor(nil), fields...),
		byName: make(map[string]int, len(fields)),
	}
	for i, f := range t.Fields {
		t.byName[f.Name] = i
	}
	r.tables[name] = t
	return nil
}

func sameFields(a, b []tql.FieldDescriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Type != b[i].Type || a[i].Target != b[i].Target {
			return false
		}
	}
	return true
}

// Lookup returns the table registered under name, if any.
func (r *Registry) Lookup(name string) (*Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[name]
	return t, ok
}

// ResolveForeign resolves a ForeignKey/Custom target name to its table,
// deferring resolution to lookup time since registration order is not
// controlled (a table may reference one declared later in the source).
func (r *Registry) ResolveForeign(target string) (*Table, bool) {
	return r.Lookup(target)
}

// Iterate calls fn for every registered table, in a deterministic
// (lexicographic by name) order so diagnostics and generated output are
// stable across runs.
func (r *Registry) Iterate(fn func(*Table)) {
	r.mu.RLock()
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	tables := make([]*Table, len(names))
	for i, name := range names {
		tables[i] = r.tables[name]
	}
	r.mu.RUnlock()
	for _, t := range tables {
		fn(t)
	}
}

// Names returns the registered table names in lexicographic order, used
// by the analyzer's near-match suggestions.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultTableName derives the default storage table name for a Go
// declaration type name, pluralizing and lower-casing it the way
// compiler/load does for schemas that don't override Schema.TableName.
func DefaultTableName(typeName string) string {
	return inflect.Pluralize(toSnake(typeName))
}

func toSnake(s string) string {
	out := make([]byte, 0, len(s)+4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			c = c - 'A' + 'a'
		}
		out = append(out, c)
	}
	return string(out)
}
