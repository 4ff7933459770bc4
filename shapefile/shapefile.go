// Package shapefile loads shape declarations from YAML.
//
//	shapes:
//	  Image:
//	    fields:
//	      - {name: url, type: url}
//	      - {name: name, type: string}
//	  Item:
//	    unknown: strip
//	    fields:
//	      - {name: name, type: string}
//	      - {name: description, type: string?}
//	      - {name: price, type: number}
//	      - {name: tax, type: number, default: 10.5}
//	      - {name: tags, type: list<string>, default: []}
//	      - {name: image, type: list<Image>?}
//
// Type expressions are string, number, integer, boolean, url, any,
// list<T>, set<T>, a shape name, and any of those suffixed with ? (nullable,
// which also makes the field optional). Shapes may reference shapes declared
// later in the file; reference cycles are rejected.
package shapefile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	goshape "github.com/reoring/goshape"
)

// Registry holds the shapes of one file by name.
type Registry struct {
	order  []string
	shapes map[string]*goshape.Shape
}

// Get returns the shape declared under name.
func (r *Registry) Get(name string) (*goshape.Shape, bool) {
	s, ok := r.shapes[name]
	return s, ok
}

// MustGet is like Get but panics when name is not declared.
func (r *Registry) MustGet(name string) *goshape.Shape {
	s, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("shapefile: shape %q not declared", name))
	}
	return s
}

// Names lists shape names in file order.
func (r *Registry) Names() []string { return append([]string(nil), r.order...) }

// Len returns the number of shapes.
func (r *Registry) Len() int { return len(r.order) }

type fieldDecl struct {
	name       string
	typ        string
	optional   bool
	required   bool
	hasDefault bool
	def        any
	line       int
}

type shapeDecl struct {
	name    string
	unknown goshape.UnknownPolicy
	fields  []fieldDecl
	line    int
}

// LoadFile reads and parses a shape file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shapefile: %w", err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Parse builds every shape declared in data.
func Parse(data []byte) (*Registry, error) {
	root, err := decodeNode(data)
	if err != nil {
		return nil, fmt.Errorf("shapefile: %w", err)
	}
	if root == nil {
		return nil, fmt.Errorf("shapefile: empty document")
	}
	decls, order, err := readDecls(root)
	if err != nil {
		return nil, fmt.Errorf("shapefile: %w", err)
	}
	b := &builder{decls: decls, built: map[string]*goshape.Shape{}, state: map[string]int{}}
	for _, name := range order {
		if _, err := b.build(name, nil); err != nil {
			return nil, fmt.Errorf("shapefile: %w", err)
		}
	}
	return &Registry{order: order, shapes: b.built}, nil
}

func readDecls(root *yaml.Node) (map[string]*shapeDecl, []string, error) {
	top, err := mappingPairs(root)
	if err != nil {
		return nil, nil, err
	}
	var shapesNode *yaml.Node
	for _, kv := range top {
		switch kv[0].Value {
		case "shapes":
			shapesNode = kv[1]
		default:
			return nil, nil, fmt.Errorf("line %d: unknown key %q", kv[0].Line, kv[0].Value)
		}
	}
	if shapesNode == nil {
		return nil, nil, fmt.Errorf("missing top-level shapes")
	}
	pairs, err := mappingPairs(shapesNode)
	if err != nil {
		return nil, nil, err
	}
	decls := make(map[string]*shapeDecl, len(pairs))
	order := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		d, err := readShape(kv[0].Value, kv[1])
		if err != nil {
			return nil, nil, err
		}
		d.line = kv[0].Line
		decls[d.name] = d
		order = append(order, d.name)
	}
	return decls, order, nil
}

func readShape(name string, n *yaml.Node) (*shapeDecl, error) {
	pairs, err := mappingPairs(n)
	if err != nil {
		return nil, fmt.Errorf("shape %s: %w", name, err)
	}
	d := &shapeDecl{name: name}
	for _, kv := range pairs {
		switch kv[0].Value {
		case "unknown":
			switch kv[1].Value {
			case "strip", "":
				d.unknown = goshape.UnknownStrip
			case "strict":
				d.unknown = goshape.UnknownStrict
			default:
				return nil, fmt.Errorf("shape %s line %d: unknown policy %q (want strip|strict)", name, kv[1].Line, kv[1].Value)
			}
		case "fields":
			if kv[1].Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("shape %s line %d: fields must be a list", name, kv[1].Line)
			}
			for _, fn := range kv[1].Content {
				fd, err := readField(fn)
				if err != nil {
					return nil, fmt.Errorf("shape %s: %w", name, err)
				}
				d.fields = append(d.fields, fd)
			}
		default:
			return nil, fmt.Errorf("shape %s line %d: unknown key %q", name, kv[0].Line, kv[0].Value)
		}
	}
	return d, nil
}

func readField(n *yaml.Node) (fieldDecl, error) {
	pairs, err := mappingPairs(n)
	if err != nil {
		return fieldDecl{}, err
	}
	fd := fieldDecl{line: n.Line}
	for _, kv := range pairs {
		k, v := kv[0], kv[1]
		switch k.Value {
		case "name":
			fd.name = v.Value
		case "type":
			fd.typ = v.Value
		case "optional":
			if err := v.Decode(&fd.optional); err != nil {
				return fd, fmt.Errorf("line %d: optional: %w", v.Line, err)
			}
		case "required":
			if err := v.Decode(&fd.required); err != nil {
				return fd, fmt.Errorf("line %d: required: %w", v.Line, err)
			}
		case "default":
			dv, err := nodeValue(v)
			if err != nil {
				return fd, err
			}
			fd.hasDefault = true
			fd.def = dv
		default:
			return fd, fmt.Errorf("line %d: unknown field key %q", k.Line, k.Value)
		}
	}
	if fd.name == "" {
		return fd, fmt.Errorf("line %d: field without name", n.Line)
	}
	if fd.typ == "" {
		return fd, fmt.Errorf("line %d: field %q without type", n.Line, fd.name)
	}
	return fd, nil
}

const (
	unvisited = iota
	visiting
	done
)

type builder struct {
	decls map[string]*shapeDecl
	built map[string]*goshape.Shape
	state map[string]int
}

func (b *builder) build(name string, chain []string) (*goshape.Shape, error) {
	switch b.state[name] {
	case done:
		return b.built[name], nil
	case visiting:
		return nil, fmt.Errorf("reference cycle %s -> %s", strings.Join(chain, " -> "), name)
	}
	d, ok := b.decls[name]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q", name)
	}
	b.state[name] = visiting
	chain = append(chain, name)
	fields := make([]goshape.Field, 0, len(d.fields))
	for _, fd := range d.fields {
		t, err := b.parseType(fd.typ, chain)
		if err != nil {
			return nil, fmt.Errorf("shape %s field %s (line %d): %w", name, fd.name, fd.line, err)
		}
		f := goshape.Field{
			Name:       fd.name,
			Type:       t,
			Optional:   t.Nullable || fd.optional,
			HasDefault: fd.hasDefault,
			Default:    fd.def,
		}
		if fd.optional {
			f.Type.Nullable = true
		}
		if fd.required {
			f.Optional = false
			f.HasDefault = false
			f.Default = nil
		}
		fields = append(fields, f)
	}
	s, err := goshape.NewShape(name, fields, goshape.WithUnknownPolicy(d.unknown))
	if err != nil {
		return nil, err
	}
	b.built[name] = s
	b.state[name] = done
	return s, nil
}

// parseType resolves a type expression. Shape references are built on demand.
func (b *builder) parseType(expr string, chain []string) (goshape.Type, error) {
	expr = strings.TrimSpace(expr)
	if strings.HasSuffix(expr, "?") {
		t, err := b.parseType(strings.TrimSuffix(expr, "?"), chain)
		t.Nullable = true
		return t, err
	}
	for _, c := range []struct {
		prefix string
		kind   goshape.Kind
	}{{"list<", goshape.KindList}, {"set<", goshape.KindSet}} {
		if strings.HasPrefix(expr, c.prefix) {
			if !strings.HasSuffix(expr, ">") {
				return goshape.Type{}, fmt.Errorf("unterminated %q", expr)
			}
			elem, err := b.parseType(expr[len(c.prefix):len(expr)-1], chain)
			if err != nil {
				return goshape.Type{}, err
			}
			return goshape.Type{Kind: c.kind, Elem: &elem}, nil
		}
	}
	switch expr {
	case "string":
		return goshape.Type{Kind: goshape.KindString}, nil
	case "number", "float":
		return goshape.Type{Kind: goshape.KindNumber}, nil
	case "integer", "int":
		return goshape.Type{Kind: goshape.KindInteger}, nil
	case "boolean", "bool":
		return goshape.Type{Kind: goshape.KindBool}, nil
	case "url":
		return goshape.Type{Kind: goshape.KindURL}, nil
	case "any":
		return goshape.Type{Kind: goshape.KindAny}, nil
	case "":
		return goshape.Type{}, fmt.Errorf("empty type expression")
	}
	s, err := b.build(expr, chain)
	if err != nil {
		return goshape.Type{}, err
	}
	return goshape.Type{Kind: goshape.KindObject, Shape: s}, nil
}
