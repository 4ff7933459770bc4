package goshape

// Package goshape provides:
//
// - Declarative Shapes (ordered, typed fields with defaults and requiredness)
// - Validate: coerce an untyped decoded record onto a Shape and record presence
// - Project: copy a validated Record onto another Shape by field name (secrets drop out)
// - SerializeWithUnsetOmission: emit only the fields the caller explicitly set
// - A stable error model via Issues (field path, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the builder DSL under dsl/, YAML shape files under shapefile/, HTTP glue under middleware/.
// - Every operation is a pure function of its arguments; Shapes and Records are immutable.
//
// Typical usage:
//
//	item := dsl.Object("Item").
//		Field("name", dsl.String()).
//		Field("price", dsl.Number()).
//		Field("tax", dsl.Number()).Default(10.5).
//		MustBuild()
//
//	rec, err := goshape.ValidateJSON([]byte(`{"name":"Foo","price":50.2}`), item)
//	out := goshape.SerializeWithUnsetOmission(rec) // {"name":"Foo","price":50.2}
//
//	pub, err := goshape.Project(userIn, userOutShape) // password dropped
