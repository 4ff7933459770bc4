package goshape

import js "github.com/reoring/goshape/jsonschema"

// JSONSchema projects the shape into a JSON Schema document.
func (s *Shape) JSONSchema() *js.Schema {
	out := shapeSchema(s)
	out.Schema = js.Draft
	return out
}

func shapeSchema(s *Shape) *js.Schema {
	props := make(map[string]*js.Schema, len(s.fields))
	order := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		ps := typeSchema(f.Type)
		if f.HasDefault && f.Default != nil {
			ps.Default = plain(f.Default)
		}
		props[f.Name] = ps
		order = append(order, f.Name)
	}
	var additional any = true
	if s.unknown == UnknownStrict {
		additional = false
	}
	return &js.Schema{
		Title:                s.name,
		Type:                 "object",
		Properties:           props,
		Required:             s.RequiredNames(),
		AdditionalProperties: additional,
		PropertyOrder:        order,
	}
}

func typeSchema(t Type) *js.Schema {
	var out *js.Schema
	switch t.Kind {
	case KindString:
		out = &js.Schema{Type: "string"}
	case KindNumber:
		out = &js.Schema{Type: "number"}
	case KindInteger:
		out = &js.Schema{Type: "integer"}
	case KindBool:
		out = &js.Schema{Type: "boolean"}
	case KindURL:
		out = &js.Schema{Type: "string", Format: "uri"}
	case KindList, KindSet:
		out = &js.Schema{Type: "array", Items: typeSchema(*t.Elem), UniqueItems: t.Kind == KindSet}
	case KindObject:
		out = shapeSchema(t.Shape)
	default:
		out = &js.Schema{}
	}
	if t.Nullable && out.Type != nil {
		out.Type = []string{out.Type.(string), "null"}
	}
	return out
}
