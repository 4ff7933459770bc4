package goshape_test

import (
	"testing"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

func tutorialItem() *goshape.Shape {
	img := g.Object("Image").Field("url", g.URL()).Field("name", g.String()).MustBuild()
	return g.Object("Item").
		Field("name", g.String()).
		Field("description", g.Optional(g.String())).
		Field("price", g.Number()).
		Field("tax", g.Number()).Default(10.5).
		Field("tags", g.ArrayOf(g.String())).Default([]any{}).
		Field("image", g.Optional(g.ArrayOf(g.ShapeOf(img)))).
		MustBuild()
}

func marshal(t *testing.T, m *goshape.OrderedMap) string {
	t.Helper()
	b, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestSerializeWithUnsetOmission_Item(t *testing.T) {
	rec, err := goshape.Validate(map[string]any{"name": "Foo", "price": 50.2}, tutorialItem())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := marshal(t, goshape.SerializeWithUnsetOmission(rec)); got != `{"name":"Foo","price":50.2}` {
		t.Fatalf("unexpected output %s", got)
	}
}

func TestSerializeWithUnsetOmission_KeepsExplicitDefaultsAndNulls(t *testing.T) {
	rec, err := goshape.Validate(map[string]any{
		"price":       62,
		"name":        "Bar",
		"description": nil,
		"tax":         10.5,
	}, tutorialItem())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// declaration order, not input order; explicit default value and null kept
	want := `{"name":"Bar","description":null,"price":62,"tax":10.5}`
	if got := marshal(t, goshape.SerializeWithUnsetOmission(rec)); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestSerialize_Canonical(t *testing.T) {
	rec, _ := goshape.Validate(map[string]any{"name": "Foo", "price": 50.2}, tutorialItem())
	want := `{"name":"Foo","description":null,"price":50.2,"tax":10.5,"tags":[],"image":null}`
	if got := marshal(t, goshape.Serialize(rec, goshape.EncodeOpt{})); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
	b, err := rec.MarshalJSON()
	if err != nil || string(b) != want {
		t.Fatalf("Record.MarshalJSON should be canonical: %s %v", b, err)
	}
	if got := marshal(t, goshape.SerializeMode(rec, goshape.EncodeCanonical)); got != want {
		t.Fatalf("canonical mode mismatch: %s", got)
	}
	if got := marshal(t, goshape.SerializeMode(rec, goshape.EncodePreserve)); got != `{"name":"Foo","price":50.2}` {
		t.Fatalf("preserve mode mismatch: %s", got)
	}
}

func TestSerialize_ExcludeDefaultsAndNone(t *testing.T) {
	rec, _ := goshape.Validate(map[string]any{"name": "Baz", "price": 50.2, "tax": 10.5, "tags": []any{}}, tutorialItem())
	if got := marshal(t, goshape.Serialize(rec, goshape.EncodeOpt{ExcludeDefaults: true})); got != `{"name":"Baz","description":null,"price":50.2,"image":null}` {
		t.Fatalf("exclude defaults: %s", got)
	}
	if got := marshal(t, goshape.Serialize(rec, goshape.EncodeOpt{ExcludeNone: true})); got != `{"name":"Baz","price":50.2,"tax":10.5,"tags":[]}` {
		t.Fatalf("exclude none: %s", got)
	}
}

func TestSerializeWithUnsetOmission_Nested(t *testing.T) {
	rec, err := goshape.Validate(map[string]any{
		"name":  "Foo",
		"price": 1,
		"image": []any{
			map[string]any{"url": "https://a.io/1.png", "name": "one"},
		},
	}, tutorialItem())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := `{"name":"Foo","price":1,"image":[{"url":"https://a.io/1.png","name":"one"}]}`
	if got := marshal(t, goshape.SerializeWithUnsetOmission(rec)); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
	list := goshape.SerializeList([]*goshape.Record{rec, rec}, goshape.EncodeOpt{ExcludeUnset: true})
	if len(list) != 2 || marshal(t, list[1]) != want {
		t.Fatalf("SerializeList mismatch")
	}
}

func TestSerialize_DoesNotAliasRecord(t *testing.T) {
	rec, _ := goshape.Validate(map[string]any{"name": "Foo", "price": 1, "tags": []any{"a"}}, tutorialItem())
	out := goshape.Serialize(rec, goshape.EncodeOpt{})
	tags, _ := out.Get("tags")
	tags.([]any)[0] = "changed"
	if v, _ := rec.Get("tags"); v.([]any)[0] != "a" {
		t.Fatalf("serialized output aliases record storage")
	}
}

func TestOrderedMap(t *testing.T) {
	m := goshape.NewOrderedMap()
	m.Set("b", 1)
	m.Set("a", "x")
	m.Set("b", 2)
	if got := marshal(t, m); got != `{"b":2,"a":"x"}` {
		t.Fatalf("unexpected output %s", got)
	}
	if m.Len() != 2 || m.Keys()[0] != "b" {
		t.Fatalf("unexpected keys %v", m.Keys())
	}
	inner := goshape.NewOrderedMap()
	inner.Set("k", true)
	m.Set("c", []any{inner})
	plain := m.Map()
	if _, ok := plain["c"].([]any)[0].(map[string]any); !ok {
		t.Fatalf("Map should flatten nested ordered maps: %#v", plain["c"])
	}
}
