// Package dsl provides a builder DSL for goshape Shapes.
//
// Overview
//   - Builder API: declare object fields in order with Object(name).Field(...) and
//     chain Required/Optional/Default/Nullable per field, then Build()/MustBuild().
//   - Types: String/Number/Int/Bool/URL/Any scalars, ArrayOf/SetOf sequences,
//     ShapeOf for nested shapes, Nullable/Optional for optional-of-T.
//   - Requiredness: a field is required unless it has a default or is optional.
//     Declaring a nullable type (Optional(t)) makes the field optional.
//
// Example (quickstart)
//
//	image := dsl.Object("Image").
//		Field("url", dsl.URL()).
//		Field("name", dsl.String()).
//		MustBuild()
//
//	item := dsl.Object("Item").
//		Field("name", dsl.String()).
//		Field("description", dsl.Optional(dsl.String())).
//		Field("price", dsl.Number()).
//		Field("tax", dsl.Number()).Default(10.5).
//		Field("tags", dsl.ArrayOf(dsl.String())).Default([]any{}).
//		Field("image", dsl.Optional(dsl.ArrayOf(dsl.ShapeOf(image)))).
//		MustBuild()
//
// File layout (roles)
//   - primitives.go: scalar type constructors.
//   - array.go: list and set constructors.
//   - adapter.go: nullable/optional wrappers and nested shapes.
//   - object_builder.go: objectBuilder/fieldStep and Build/MustBuild.
package dsl
