package goshape

import (
	"fmt"

	"github.com/reoring/goshape/i18n"
)

// Shape is an ordered set of uniquely named fields. Shapes are immutable
// after construction and safe for concurrent use.
type Shape struct {
	name    string
	fields  []Field
	index   map[string]int
	unknown UnknownPolicy
}

// ShapeOption customizes NewShape.
type ShapeOption func(*Shape)

// WithUnknownPolicy sets how undeclared keys are handled (UnknownStrip by default).
func WithUnknownPolicy(p UnknownPolicy) ShapeOption {
	return func(s *Shape) { s.unknown = p }
}

// NewShape validates the field declarations and returns an immutable Shape.
// Defaults are coerced to their field type once here, so validation only
// copies them.
func NewShape(name string, fields []Field, opts ...ShapeOption) (*Shape, error) {
	s := &Shape{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, o := range opts {
		o(s)
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("shape %q: empty field name", name)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("shape %q: duplicate field %q", name, f.Name)
		}
		if err := checkType(f.Type); err != nil {
			return nil, fmt.Errorf("shape %q: field %q: %w", name, f.Name, err)
		}
		if f.HasDefault {
			dv, iss := coerce(f.Type, f.Default, Root().Field(f.Name), ParseOpt{})
			if len(iss) > 0 {
				return nil, fmt.Errorf("shape %q: default for %q: %w", name, f.Name, iss)
			}
			f.Default = dv
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustShape is like NewShape but panics on error.
func MustShape(name string, fields []Field, opts ...ShapeOption) *Shape {
	s, err := NewShape(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func checkType(t Type) error {
	switch t.Kind {
	case KindList, KindSet:
		if t.Elem == nil {
			return fmt.Errorf("%s without element type", t.Kind)
		}
		return checkType(*t.Elem)
	case KindObject:
		if t.Shape == nil {
			return fmt.Errorf("object without shape")
		}
	case KindAny, KindString, KindNumber, KindInteger, KindBool, KindURL:
	default:
		return fmt.Errorf("unknown kind %d", t.Kind)
	}
	return nil
}

// Name returns the declared shape name (may be empty).
func (s *Shape) Name() string { return s.name }

// Unknown returns the unknown-key policy.
func (s *Shape) Unknown() UnknownPolicy { return s.unknown }

// Len returns the number of fields.
func (s *Shape) Len() int { return len(s.fields) }

// Fields returns a copy of the fields in declaration order.
func (s *Shape) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns field names in declaration order.
func (s *Shape) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Field looks up a field by name.
func (s *Shape) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether the shape declares name.
func (s *Shape) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// RequiredNames returns required field names in declaration order.
func (s *Shape) RequiredNames() []string {
	var out []string
	for _, f := range s.fields {
		if f.Required() {
			out = append(out, f.Name)
		}
	}
	return out
}

// String renders "Name{a: string, b: number=1}".
func (s *Shape) String() string {
	b := []byte(s.name + "{")
	for i, f := range s.fields {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, f.Name...)
		b = append(b, ": "...)
		b = append(b, f.Type.String()...)
		if f.HasDefault {
			b = fmt.Appendf(b, "=%v", f.Default)
		}
	}
	return string(append(b, '}'))
}

func missingIssue(p Path) Issue {
	return Issue{Path: p.String(), Code: CodeRequired, Message: i18n.T(CodeRequired, nil), Hint: "required property missing"}
}
