package dsl

import goshape "github.com/reoring/goshape"

// ArrayOf returns an ordered sequence of elem.
// Example: Field("tags", dsl.ArrayOf(dsl.String()))
func ArrayOf(elem goshape.Type) goshape.Type {
	e := elem
	return goshape.Type{Kind: goshape.KindList, Elem: &e}
}

// SetOf returns a sequence of elem with duplicates removed (first occurrence wins).
func SetOf(elem goshape.Type) goshape.Type {
	e := elem
	return goshape.Type{Kind: goshape.KindSet, Elem: &e}
}
