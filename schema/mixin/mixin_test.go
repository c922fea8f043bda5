package mixin_test

import (
	"testing"

	"github.com/tql-go/tql"
	"github.com/tql-go/tql/schema"
	"github.com/tql-go/tql/schema/field"
	"github.com/tql-go/tql/schema/mixin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSchemaBaseMixin tests the base Schema mixin.
func TestSchemaBaseMixin(t *testing.T) {
	m := mixin.Schema{}

	t.Run("returns_nil_fields", func(t *testing.T) {
		assert.Nil(t, m.Fields())
	})

	t.Run("returns_nil_annotations", func(t *testing.T) {
		assert.Nil(t, m.Annotations())
	})
}

// TestMixinImplementsInterface tests that Schema implements tql.Mixin.
func TestMixinImplementsInterface(t *testing.T) {
	var _ tql.Mixin = mixin.Schema{}
	var _ tql.Mixin = &mixin.Schema{}
}

// TestAnnotation is a test annotation type.
type TestAnnotation string

func (TestAnnotation) Name() string { return "TestAnnotation" }

// TestCustomMixin is a custom mixin for testing.
type TestCustomMixin struct {
	mixin.Schema
}

func (TestCustomMixin) Fields() []tql.Field {
	return []tql.Field{
		field.String("field1"),
		field.String("field2"),
	}
}

// TestAnnotateFields tests the AnnotateFields function.
func TestAnnotateFields(t *testing.T) {
	tests := []struct {
		name        string
		mixin       tql.Mixin
		annotations []schema.Annotation
		validate    func(t *testing.T, fields []tql.Field)
	}{
		{
			name:        "annotate_custom_mixin",
			mixin:       TestCustomMixin{},
			annotations: []schema.Annotation{TestAnnotation("foo")},
			validate: func(t *testing.T, fields []tql.Field) {
				require.Len(t, fields, 2)
				for _, f := range fields {
					desc := f.Descriptor()
					require.Len(t, desc.Annotations, 1)
					assert.Equal(t, TestAnnotation("foo"), desc.Annotations[0])
				}
			},
		},
		{
			name:  "multiple_annotations",
			mixin: TestCustomMixin{},
			annotations: []schema.Annotation{
				TestAnnotation("foo"),
				TestAnnotation("bar"),
				TestAnnotation("baz"),
			},
			validate: func(t *testing.T, fields []tql.Field) {
				require.Len(t, fields, 2)
				for _, f := range fields {
					desc := f.Descriptor()
					require.Len(t, desc.Annotations, 3)
				}
			},
		},
		{
			name:        "empty_annotations",
			mixin:       TestCustomMixin{},
			annotations: []schema.Annotation{},
			validate: func(t *testing.T, fields []tql.Field) {
				for _, f := range fields {
					assert.Empty(t, f.Descriptor().Annotations)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annotated := mixin.AnnotateFields(tt.mixin, tt.annotations...)
			fields := annotated.Fields()
			tt.validate(t, fields)
		})
	}
}

// TestAnnotateFieldsDoesNotMutateOriginal tests that AnnotateFields leaves
// the wrapped mixin's own descriptors untouched.
func TestAnnotateFieldsDoesNotMutateOriginal(t *testing.T) {
	original := TestCustomMixin{}
	annotated := mixin.AnnotateFields(original, TestAnnotation("test"))

	fields := annotated.Fields()
	require.Len(t, fields, 2)
	for _, f := range fields {
		require.Len(t, f.Descriptor().Annotations, 1)
	}

	for _, f := range original.Fields() {
		assert.Empty(t, f.Descriptor().Annotations)
	}
}

// TestCustomMixinWithSchema tests creating a custom mixin by embedding Schema.
func TestCustomMixinWithSchema(t *testing.T) {
	t.Run("custom_mixin_embeds_schema", func(t *testing.T) {
		type AuditMixin struct {
			mixin.Schema
		}

		// Verify it implements Mixin interface
		var _ tql.Mixin = (*AuditMixin)(nil)

		// Test that it can define fields
		fields := func(AuditMixin) []tql.Field {
			return []tql.Field{
				field.String("created_by"),
				field.String("updated_by").Optional(),
			}
		}

		f := fields(AuditMixin{})
		require.Len(t, f, 2)
		assert.Equal(t, "created_by", f[0].Descriptor().Name)
		assert.Equal(t, "updated_by", f[1].Descriptor().Name)
	})
}

// TestBuiltinMixins exercises the built-in Time/SoftDelete family.
func TestBuiltinMixins(t *testing.T) {
	t.Run("Time_has_created_and_updated", func(t *testing.T) {
		fields := mixin.Time{}.Fields()
		require.Len(t, fields, 2)
		assert.Equal(t, "created_at", fields[0].Descriptor().Name)
		assert.Equal(t, "updated_at", fields[1].Descriptor().Name)
	})

	t.Run("TimeSoftDelete_has_three_fields", func(t *testing.T) {
		fields := mixin.TimeSoftDelete{}.Fields()
		require.Len(t, fields, 3)
		assert.Equal(t, "deleted_at", fields[2].Descriptor().Name)
		assert.Equal(t, tql.TypeOptional, fields[2].Descriptor().Type)
	})
}

// BenchmarkMixin benchmarks mixin operations.
func BenchmarkMixin(b *testing.B) {
	b.Run("AnnotateFields", func(b *testing.B) {
		m := TestCustomMixin{}
		annotations := []schema.Annotation{
			TestAnnotation("foo"),
			TestAnnotation("bar"),
		}
		for i := 0; i < b.N; i++ {
			annotated := mixin.AnnotateFields(m, annotations...)
			_ = annotated.Fields()
		}
	})
}
