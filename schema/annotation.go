// Package schema provides the building blocks for defining tql entity
// schemas: the Annotation/Merger contracts used by fields and mixins, plus
// a small set of built-in annotations.
package schema

// Annotation is a piece of metadata attached to a field, table, or mixin
// that the generator (cmd/tqlc) or a downstream consumer can act on
// without changing the field's declared Type.
type Annotation interface {
	// Name returns the annotation's unique name, used to locate it among
	// a field or schema's annotation list.
	Name() string
}

// Merger is implemented by annotations that know how to combine with a
// previous annotation of the same name, e.g. when a mixin and the schema
// that embeds it both set the same annotation.
type Merger interface {
	Annotation
	// Merge combines the receiver with another annotation. Implementations
	// should return the receiver unchanged if other is not a compatible type.
	Merge(other Annotation) Annotation
}

// CommentAnnotation attaches a human-readable comment. No generator in
// this module reads it; the generated DDL does not include it.
type CommentAnnotation struct {
	Text string
}

// Name implements the Annotation interface.
func (*CommentAnnotation) Name() string { return "Comment" }

// Comment returns a CommentAnnotation with the given text.
func Comment(text string) *CommentAnnotation {
	return &CommentAnnotation{Text: text}
}
