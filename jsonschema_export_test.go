package goshape_test

import (
	"reflect"
	"testing"

	json "github.com/goccy/go-json"

	g "github.com/reoring/goshape/dsl"
	js "github.com/reoring/goshape/jsonschema"
)

func TestJSONSchema_Item(t *testing.T) {
	sch := tutorialItem().JSONSchema()
	if sch.Schema != js.Draft || sch.Title != "Item" || sch.Type != "object" {
		t.Fatalf("unexpected root: %+v", sch)
	}
	if !reflect.DeepEqual(sch.Required, []string{"name", "price"}) {
		t.Fatalf("unexpected required %v", sch.Required)
	}
	if !reflect.DeepEqual(sch.PropertyOrder, []string{"name", "description", "price", "tax", "tags", "image"}) {
		t.Fatalf("unexpected order %v", sch.PropertyOrder)
	}
	if sch.Properties["tax"].Default != 10.5 {
		t.Fatalf("tax default missing: %+v", sch.Properties["tax"])
	}
	if sch.Properties["tags"].UniqueItems {
		t.Fatalf("list should not export uniqueItems")
	}
	labels := g.Object("Labels").Field("labels", g.SetOf(g.String())).MustBuild().JSONSchema()
	if !labels.Properties["labels"].UniqueItems {
		t.Fatalf("set should export uniqueItems")
	}
	desc := sch.Properties["description"].Type
	if !reflect.DeepEqual(desc, []string{"string", "null"}) {
		t.Fatalf("optional should be nullable: %#v", desc)
	}
	url := sch.Properties["image"].Items.Properties["url"]
	if url.Type != "string" || url.Format != "uri" {
		t.Fatalf("url field: %+v", url)
	}
	if sch.Properties["image"].Items.Schema != "" {
		t.Fatalf("$schema only on the root")
	}
	if _, err := json.Marshal(sch); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}
