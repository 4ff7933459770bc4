package goshape_test

import (
	"encoding/json"
	"strings"
	"testing"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

func TestValidateJSON_Item(t *testing.T) {
	rec, err := goshape.ValidateJSON([]byte(`{"name":"Foo","price":50.2,"extra":1}`), tutorialItem())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v, _ := rec.Get("price"); v != 50.2 {
		t.Fatalf("price not coerced from json number: %#v", v)
	}
}

func TestDecodeJSON_UsesNumber(t *testing.T) {
	v, err := goshape.DecodeJSON([]byte(`{"n":12345678901234567890}`), goshape.ParseOpt{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := v.(map[string]any)["n"].(json.Number); !ok {
		t.Fatalf("numbers should decode as json.Number: %#v", v)
	}
}

func TestDecodeJSON_DuplicateKeys(t *testing.T) {
	data := []byte(`{"a":1,"b":{"x":1,"x":2},"a":3}`)

	if _, err := goshape.DecodeJSON(data, goshape.ParseOpt{}); err != nil {
		t.Fatalf("duplicates are ignored by default: %v", err)
	}

	_, err := goshape.DecodeJSON(data, goshape.ParseOpt{Strictness: goshape.Strictness{OnDuplicateKey: goshape.Error}})
	iss, ok := goshape.AsIssues(err)
	if !ok || iss[0].Code != goshape.CodeDuplicateKey || iss[0].Path != "b.x" {
		t.Fatalf("expected duplicate_key at b.x, got %v", err)
	}

	var warned []goshape.Issue
	_, err = goshape.DecodeJSON(data, goshape.ParseOpt{Strictness: goshape.Strictness{OnDuplicateKey: goshape.Warn}},
		func(it goshape.Issue) { warned = append(warned, it) })
	if err != nil {
		t.Fatalf("warn mode must not fail: %v", err)
	}
	if len(warned) != 2 || warned[0].Path != "b.x" || warned[1].Path != "a" {
		t.Fatalf("unexpected warnings: %#v", warned)
	}
}

func TestDecodeJSON_DuplicateInsideArray(t *testing.T) {
	data := []byte(`{"items":[{"p":1},{"p":1,"p":2}]}`)
	_, err := goshape.DecodeJSON(data, goshape.ParseOpt{Strictness: goshape.Strictness{OnDuplicateKey: goshape.Error}})
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "items[1].p" {
		t.Fatalf("unexpected issues: %#v", iss)
	}
}

func TestDecodeJSON_Limits(t *testing.T) {
	_, err := goshape.DecodeJSON([]byte(`{"name":"x"}`), goshape.ParseOpt{MaxBytes: 4})
	if iss, _ := goshape.AsIssues(err); len(iss) != 1 || iss[0].Code != goshape.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}

	_, err = goshape.DecodeJSON([]byte(`{"a":{"b":{"c":1}}}`), goshape.ParseOpt{MaxDepth: 2})
	if iss, _ := goshape.AsIssues(err); len(iss) != 1 || iss[0].Code != goshape.CodeTooDeep || iss[0].Path != "a.b" {
		t.Fatalf("expected too_deep at a.b, got %v", err)
	}

	if _, err := goshape.DecodeJSON([]byte(`{"a":{"b":1}}`), goshape.ParseOpt{MaxDepth: 2}); err != nil {
		t.Fatalf("depth 2 should pass: %v", err)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	for _, in := range []string{`{"a":`, `{"a":1} {"b":2}`, `nope`} {
		_, err := goshape.DecodeJSON([]byte(in), goshape.ParseOpt{})
		if iss, _ := goshape.AsIssues(err); len(iss) != 1 || iss[0].Code != goshape.CodeParseError {
			t.Fatalf("%q: expected parse_error, got %v", in, err)
		}
	}
}

func TestValidateReader_BoundedRead(t *testing.T) {
	body := `{"name":"Foo","price":1,"description":"` + strings.Repeat("x", 64) + `"}`
	if _, err := goshape.ValidateReader(strings.NewReader(body), tutorialItem(), goshape.ParseOpt{MaxBytes: 32}); err == nil {
		t.Fatalf("oversized body should fail")
	}
	if _, err := goshape.ValidateReader(strings.NewReader(body), tutorialItem(), goshape.ParseOpt{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestValidateReader_ForwardsWarnings(t *testing.T) {
	var warned []goshape.Issue
	opt := goshape.ParseOpt{Strictness: goshape.Strictness{OnDuplicateKey: goshape.Warn}}
	rec, err := goshape.ValidateReader(strings.NewReader(`{"name":"a","name":"b","price":1}`), tutorialItem(), opt,
		func(it goshape.Issue) { warned = append(warned, it) })
	if err != nil {
		t.Fatalf("warn must not fail: %v", err)
	}
	if len(warned) != 1 || warned[0].Code != goshape.CodeDuplicateKey || warned[0].Path != "name" {
		t.Fatalf("unexpected warnings %+v", warned)
	}
	if v, _ := rec.Get("name"); v != "b" {
		t.Fatalf("last duplicate should win, got %v", v)
	}
}

func TestValidateJSON_NotAnObject(t *testing.T) {
	if _, err := goshape.ValidateJSON([]byte(`[1,2]`), tutorialItem()); !goshape.IsTypeMismatch(err) {
		t.Fatalf("expected type_mismatch for array body, got %v", err)
	}
}

func TestValidateJSONList_Images(t *testing.T) {
	img := g.Object("Image").Field("url", g.URL()).Field("name", g.String()).MustBuild()
	recs, err := goshape.ValidateJSONList([]byte(`[{"url":"https://a.io/1","name":"one"},{"url":"https://a.io/2","name":"two"}]`), img)
	if err != nil || len(recs) != 2 {
		t.Fatalf("unexpected result: %v %v", recs, err)
	}
	_, err = goshape.ValidateJSONList([]byte(`{"url":"https://a.io/1","name":"one"}`), img)
	if !goshape.IsTypeMismatch(err) {
		t.Fatalf("object body for list endpoint should be a type mismatch, got %v", err)
	}
}
