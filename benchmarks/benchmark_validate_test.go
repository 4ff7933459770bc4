package benchmarks_test

import (
	"bytes"
	"strconv"
	"testing"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

// ---- Helpers ----

func itemShape(tb testing.TB) *goshape.Shape {
	tb.Helper()
	img, err := g.Object("Image").Field("url", g.URL()).Field("name", g.String()).Build()
	if err != nil {
		tb.Fatalf("shape build failed: %v", err)
	}
	s, err := g.Object("Item").
		Field("name", g.String()).
		Field("description", g.Optional(g.String())).
		Field("price", g.Number()).
		Field("tax", g.Number()).Default(10.5).
		Field("tags", g.ArrayOf(g.String())).Default([]any{}).
		Field("image", g.Optional(g.ArrayOf(g.ShapeOf(img)))).
		Build()
	if err != nil {
		tb.Fatalf("shape build failed: %v", err)
	}
	return s
}

func smallItemJSON() []byte {
	return []byte(`{"name":"Foo","price":50.2,"tags":["a","b","a"]}`)
}

// generateItemArray returns [{"name":"n0","price":0,"image":[{"url":"https://x.io/0","name":"i0"}, ...]}, ...]
func generateItemArray(numItems, imagesPerItem int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < numItems; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"name":"n` + strconv.Itoa(i) + `","price":` + strconv.Itoa(i) + `,"image":[`)
		for j := 0; j < imagesPerItem; j++ {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(`{"url":"https://x.io/` + strconv.Itoa(j) + `","name":"i` + strconv.Itoa(j) + `"}`)
		}
		buf.WriteString(`]}`)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// ---- Benchmarks ----

func BenchmarkValidateJSON_Small(b *testing.B) {
	s := itemShape(b)
	data := smallItemJSON()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := goshape.ValidateJSON(data, s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateJSON_DuplicateCheck(b *testing.B) {
	s := itemShape(b)
	data := smallItemJSON()
	opt := goshape.ParseOpt{Strictness: goshape.Strictness{OnDuplicateKey: goshape.Error}, MaxDepth: 64}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := goshape.ValidateJSON(data, s, opt); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateJSONList_1k(b *testing.B) {
	s := itemShape(b)
	data := generateItemArray(1000, 3)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := goshape.ValidateJSONList(data, s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProjectAndSerialize(b *testing.B) {
	s := itemShape(b)
	out := g.Extend("ItemOut", s, "tax").MustBuild()
	rec, err := goshape.ValidateJSON(smallItemJSON(), s)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pr, err := goshape.Project(rec, out)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := goshape.SerializeWithUnsetOmission(pr).MarshalJSON(); err != nil {
			b.Fatal(err)
		}
	}
}
