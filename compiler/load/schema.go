// Package load discovers tql.Declaration types in a compiled user package
// and marshals their schema (fields, mixins, annotations) into a form the
// rest of the generator pipeline can consume without re-running the Go
// type checker.
package load

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/schema"
)

// Schema represents a tql.Declaration loaded from a compiled user package.
type Schema struct {
	Name        string         `json:"name,omitempty"`
	Pos         string         `json:"-"`
	TableName   string         `json:"table_name,omitempty"`
	Fields      []*Field       `json:"fields,omitempty"`
	Annotations map[string]any `json:"annotations,omitempty"`
}

// Position describes where a field came from: its own index, and — if it
// arrived via a mixin — which mixin and which index within it.
type Position struct {
	Index      int  // Index in the field list.
	MixedIn    bool // Indicates if the field came from a mixin.
	MixinIndex int  // Mixin index in the mixin list.
}

// Field represents a tql.FieldDescriptor loaded from a compiled user
// package.
type Field struct {
	Name          string         `json:"name,omitempty"`
	Type          string         `json:"type,omitempty"`
	Of            string         `json:"of,omitempty"`
	Target        string         `json:"target,omitempty"`
	Comment       string         `json:"comment,omitempty"`
	Default       bool           `json:"default,omitempty"`
	DefaultValue  any            `json:"default_value,omitempty"`
	DefaultKind   reflect.Kind   `json:"default_kind,omitempty"`
	UpdateDefault bool           `json:"update_default,omitempty"`
	Immutable     bool           `json:"immutable,omitempty"`
	Nillable      bool           `json:"nillable,omitempty"`
	Position      *Position      `json:"position,omitempty"`
	Annotations   map[string]any `json:"annotations,omitempty"`
}

// NewField creates a loaded field from a field descriptor.
func NewField(fd *tql.FieldDescriptor) (*Field, error) {
	if fd.Name == "" {
		return nil, fmt.Errorf("field descriptor missing a name")
	}
	if fd.Type == tql.TypeInvalid {
		return nil, fmt.Errorf("field %q: invalid type", fd.Name)
	}
	sf := &Field{
		Name:          fd.Name,
		Type:          fd.Type.String(),
		Target:        fd.Target,
		Comment:       fd.Comment,
		Default:       fd.Default != nil,
		UpdateDefault: fd.UpdateDefault != nil,
		Immutable:     fd.Immutable,
		Nillable:      fd.Nillable,
		Annotations:   make(map[string]any),
	}
	if fd.Type == tql.TypeOptional {
		sf.Of = fd.Of.String()
	}
	for _, at := range fd.Annotations {
		sf.addAnnotation(at)
	}
	if sf.Default {
		sf.DefaultKind = reflect.TypeOf(fd.Default).Kind()
		// If the default value can be encoded for the generator (i.e. it's
		// not a function like time.Now), carry it through as a literal.
		if sf.DefaultKind != reflect.Func {
			if _, err := json.Marshal(fd.Default); err == nil {
				sf.DefaultValue = fd.Default
			}
		}
	}
	return sf, nil
}

// MarshalSchema encodes the tql.Declaration interface into JSON that can
// be decoded back into the Schema objects declared above.
func MarshalSchema(decl tql.Declaration) (b []byte, err error) {
	s := &Schema{
		Name:        indirect(reflect.TypeOf(decl)).Name(),
		Annotations: make(map[string]any),
	}
	if named, ok := decl.(interface{ TableName() string }); ok {
		s.TableName = named.TableName()
	}
	if err = s.loadMixins(decl); err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	if named, ok := decl.(interface{ Annotations() []schema.Annotation }); ok {
		for _, at := range named.Annotations() {
			if e, ok := at.(interface{ Err() error }); ok && e.Err() != nil {
				return nil, fmt.Errorf("schema %q: %w", s.Name, e.Err())
			}
			s.addAnnotation(at)
		}
	}
	if err = s.loadFields(decl); err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	return json.Marshal(s)
}

// UnmarshalSchema decodes the given buffer into a loaded schema.
func UnmarshalSchema(buf []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(buf, s); err != nil {
		return nil, err
	}
	for _, f := range s.Fields {
		if err := f.resolveDefault(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// loadMixins loads the fields contributed by every mixin a declaration
// embeds, in order, before the declaration's own fields are appended.
func (s *Schema) loadMixins(decl tql.Declaration) error {
	named, ok := decl.(interface{ Mixin() []tql.Mixin })
	if !ok {
		return nil
	}
	mixins, err := safeMixins(named)
	if err != nil {
		return err
	}
	for i, mx := range mixins {
		name := indirect(reflect.TypeOf(mx)).Name()
		fields, ferr := safeFields(mx)
		if ferr != nil {
			return fmt.Errorf("mixin %q: %w", name, ferr)
		}
		for j, f := range fields {
			sf, ferr := NewField(f.Descriptor())
			if ferr != nil {
				return fmt.Errorf("mixin %q: %w", name, ferr)
			}
			sf.Position = &Position{Index: j, MixedIn: true, MixinIndex: i}
			s.Fields = append(s.Fields, sf)
		}
		if named, ok := mx.(interface{ Annotations() []schema.Annotation }); ok {
			for _, at := range named.Annotations() {
				s.addAnnotation(at)
			}
		}
	}
	return nil
}

// loadFields loads a declaration's own fields (after its mixins').
func (s *Schema) loadFields(decl tql.Declaration) error {
	fields, err := safeFields(decl)
	if err != nil {
		return err
	}
	base := len(s.Fields)
	for i, f := range fields {
		sf, err := NewField(f.Descriptor())
		if err != nil {
			return err
		}
		sf.Position = &Position{Index: i}
		s.Fields = append(s.Fields, sf)
	}
	_ = base
	return nil
}

func (s *Schema) addAnnotation(an schema.Annotation) {
	addAnnotation(s.Annotations, an)
}

func (f *Field) addAnnotation(an schema.Annotation) {
	addAnnotation(f.Annotations, an)
}

func addAnnotation(annotations map[string]any, an schema.Annotation) {
	curr, ok := annotations[an.Name()]
	if !ok {
		annotations[an.Name()] = an
		return
	}
	if m, ok := curr.(schema.Merger); ok {
		annotations[an.Name()] = m.Merge(an)
	}
}

// resolveDefault normalizes a JSON-decoded numeric default back to its Go
// kind (JSON numbers decode to float64 regardless of the original type).
func (f *Field) resolveDefault() error {
	if !f.Default || f.DefaultValue == nil || f.DefaultKind == reflect.Func {
		return nil
	}
	n, ok := f.DefaultValue.(float64)
	if !ok {
		return nil
	}
	switch f.Type {
	case "I32":
		f.DefaultValue = int32(n)
	case "I64", "Serial":
		f.DefaultValue = int64(n)
	case "F32":
		f.DefaultValue = float32(n)
	case "F64":
		f.DefaultValue = n
	}
	return nil
}

// safeFields wraps a schema/mixin's Fields method with recover, so one
// panicking declaration doesn't take down the whole load pass.
func safeFields(fd interface{ Fields() []tql.Field }) (fields []tql.Field, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%T.Fields panics: %v", fd, v)
			fields = nil
		}
	}()
	return fd.Fields(), nil
}

// safeMixins wraps the declaration's Mixin method with recover.
func safeMixins(decl interface{ Mixin() []tql.Mixin }) (mixins []tql.Mixin, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("schema.Mixin panics: %v", v)
			mixins = nil
		}
	}()
	return decl.Mixin(), nil
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
