package dsl

import goshape "github.com/reoring/goshape"

// ShapeOf embeds a built shape as a nested object type.
func ShapeOf(s *goshape.Shape) goshape.Type {
	return goshape.Type{Kind: goshape.KindObject, Shape: s}
}

// Nullable wraps a type to accept JSON null.
func Nullable(t goshape.Type) goshape.Type {
	t.Nullable = true
	return t
}

// Optional is optional-of-T: the value may be null, and a field declared
// with it may be absent (it then reads as null and is reported unset).
func Optional(t goshape.Type) goshape.Type { return Nullable(t) }
