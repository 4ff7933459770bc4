package dsl

import (
	goshape "github.com/reoring/goshape"
)

type objectBuilder struct {
	name          string
	fields        []goshape.Field
	index         map[string]int
	unknownPolicy goshape.UnknownPolicy
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder. Unknown keys are ignored by default.
func Object(name string) *objectBuilder {
	return &objectBuilder{
		name:          name,
		index:         map[string]int{},
		unknownPolicy: goshape.UnknownStrip,
	}
}

// Field registers a field in declaration order. A nullable type makes the
// field optional. Registering a name twice keeps the position of the first
// registration and reports a duplicate at Build.
func (b *objectBuilder) Field(name string, t goshape.Type) *fieldStep {
	if _, dup := b.index[name]; !dup {
		b.index[name] = len(b.fields)
	}
	b.fields = append(b.fields, goshape.Field{Name: name, Type: t, Optional: t.Nullable})
	return &fieldStep{b: b, name: name}
}

func (f *fieldStep) field() *goshape.Field { return &f.b.fields[len(f.b.fields)-1] }

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	fd := f.field()
	fd.Optional = false
	fd.HasDefault = false
	fd.Default = nil
	return f.b
}

// Optional marks the field as optional (absent reads as null). The field
// type becomes nullable so the null representation is valid.
func (f *fieldStep) Optional() *objectBuilder {
	fd := f.field()
	fd.Optional = true
	fd.Type.Nullable = true
	return f.b
}

// Nullable accepts JSON null without changing requiredness.
func (f *fieldStep) Nullable() *fieldStep {
	f.field().Type.Nullable = true
	return f
}

// Default sets a default for the current field. The value is coerced to
// the field type at Build.
func (f *fieldStep) Default(v any) *objectBuilder {
	fd := f.field()
	fd.HasDefault = true
	fd.Default = v
	return f.b
}

func (f *fieldStep) Field(name string, t goshape.Type) *fieldStep { return f.b.Field(name, t) }
func (f *fieldStep) UnknownStrict() *objectBuilder                { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *objectBuilder                 { return f.b.UnknownStrip() }
func (f *fieldStep) Build() (*goshape.Shape, error)               { return f.b.Build() }
func (f *fieldStep) MustBuild() *goshape.Shape                    { return f.b.MustBuild() }

// Require marks one or more already registered fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		if i, ok := b.index[n]; ok {
			b.fields[i].Optional = false
			b.fields[i].HasDefault = false
			b.fields[i].Default = nil
		}
	}
	return b
}

// UnknownStrict rejects keys the shape does not declare.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = goshape.UnknownStrict
	return b
}

// UnknownStrip ignores keys the shape does not declare.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy = goshape.UnknownStrip
	return b
}

// Extend starts a new builder with a copy of the fields of base, the usual
// way to derive UserOut from UserIn before dropping the secret.
func Extend(name string, base *goshape.Shape, omit ...string) *objectBuilder {
	skip := make(map[string]struct{}, len(omit))
	for _, n := range omit {
		skip[n] = struct{}{}
	}
	b := Object(name)
	b.unknownPolicy = base.Unknown()
	for _, f := range base.Fields() {
		if _, ok := skip[f.Name]; ok {
			continue
		}
		b.index[f.Name] = len(b.fields)
		b.fields = append(b.fields, f)
	}
	return b
}

// Build validates the builder and returns a Shape.
func (b *objectBuilder) Build() (*goshape.Shape, error) {
	return goshape.NewShape(b.name, b.fields, goshape.WithUnknownPolicy(b.unknownPolicy))
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() *goshape.Shape {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
