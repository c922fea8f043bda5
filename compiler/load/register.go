package load

import (
	"fmt"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/registry"
)

var typeByName = map[string]tql.Type{
	tql.TypeSerial.String():     tql.TypeSerial,
	tql.TypeI32.String():        tql.TypeI32,
	tql.TypeI64.String():        tql.TypeI64,
	tql.TypeF32.String():        tql.TypeF32,
	tql.TypeF64.String():        tql.TypeF64,
	tql.TypeBool.String():       tql.TypeBool,
	tql.TypeString.String():     tql.TypeString,
	tql.TypeByteString.String(): tql.TypeByteString,
	tql.TypeDateTime.String():   tql.TypeDateTime,
	tql.TypeDate.String():       tql.TypeDate,
	tql.TypeTime.String():       tql.TypeTime,
	tql.TypeOptional.String():   tql.TypeOptional,
	tql.TypeForeignKey.String(): tql.TypeForeignKey,
	tql.TypeCustom.String():     tql.TypeCustom,
	tql.TypeUnsupported.String(): tql.TypeUnsupported,
}

// Descriptor reconstructs the tql.FieldDescriptor this loaded field was
// marshaled from. Default/UpdateDefault are only carried through when
// MarshalSchema judged the value JSON-encodable (see NewField); a
// func()-valued default degrades to "present but unknown", which is
// enough for the generator (it only needs to know a default exists) but
// not for re-deriving the exact Go value.
func (f *Field) Descriptor() (tql.FieldDescriptor, error) {
	t, ok := typeByName[f.Type]
	if !ok {
		return tql.FieldDescriptor{}, fmt.Errorf("load: field %q: unknown type %q", f.Name, f.Type)
	}
	d := tql.FieldDescriptor{
		Name:          f.Name,
		Type:          t,
		Target:        f.Target,
		Comment:       f.Comment,
		Immutable:     f.Immutable,
		Nillable:      f.Nillable,
		UpdateDefault: updateDefaultMarker(f.UpdateDefault),
	}
	if f.Default {
		if f.DefaultValue != nil {
			d.Default = f.DefaultValue
		} else {
			d.Default = struct{}{}
		}
	}
	if f.Of != "" {
		of, ok := typeByName[f.Of]
		if !ok {
			return tql.FieldDescriptor{}, fmt.Errorf("load: field %q: unknown wrapped type %q", f.Name, f.Of)
		}
		d.Of = of
	}
	return d, nil
}

func updateDefaultMarker(present bool) any {
	if !present {
		return nil
	}
	return struct{}{}
}

// TableNameOrDefault returns the table name this schema should register under:
// its own TableName() override if non-empty, otherwise the registry's
// default pluralized, snake_case derivation.
func (s *Schema) TableNameOrDefault() string {
	if s.TableName != "" {
		return s.TableName
	}
	return registry.DefaultTableName(s.Name)
}

// Register deposits every schema in g into reg under its resolved table
// name, field position order preserved (mixin fields first, per
// loadMixins/loadFields).
func Register(reg *registry.Registry, g *Graph) error {
	for _, s := range g.Schemas {
		fields := make([]tql.FieldDescriptor, len(s.Fields))
		for i, f := range s.Fields {
			fd, err := f.Descriptor()
			if err != nil {
				return fmt.Errorf("schema %q: %w", s.Name, err)
			}
			fields[i] = fd
		}
		if err := reg.Register(s.TableNameOrDefault(), fields); err != nil {
			return fmt.Errorf("schema %q: %w", s.Name, err)
		}
	}
	return nil
}
