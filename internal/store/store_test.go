package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goshape/internal/store"
)

func TestTutorial(t *testing.T) {
	s := store.Tutorial()
	assert.Equal(t, []string{"bar", "baz", "foo"}, s.Keys())

	foo, ok := s.Get("foo")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "Foo", "price": 50.2}, foo)

	_, ok = s.Get("nope")
	assert.False(t, ok)
}

func TestNewStatic_IsolatedFromCallers(t *testing.T) {
	src := map[string]map[string]any{"a": {"tags": []any{"x"}}}
	s := store.NewStatic(src)
	src["a"]["tags"].([]any)[0] = "changed"

	got, _ := s.Get("a")
	assert.Equal(t, "x", got["tags"].([]any)[0])

	got["tags"] = nil
	again, _ := s.Get("a")
	assert.NotNil(t, again["tags"])
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "items.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
foo:
  name: Foo
  price: 50.2
bar:
  name: Bar
  description: The bartenders
  price: 62
  tax: 20.2
`), 0o600))

	s, err := store.LoadYAML(p)
	require.NoError(t, err)
	bar, ok := s.Get("bar")
	require.True(t, ok)
	assert.Equal(t, int64(62), bar["price"])
	assert.Equal(t, "The bartenders", bar["description"])

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("foo: 1\n"), 0o600))
	_, err = store.LoadYAML(bad)
	assert.Error(t, err)

	dup := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte("foo: {name: a}\nfoo: {name: b}\n"), 0o600))
	_, err = store.LoadYAML(dup)
	assert.Error(t, err)
}
