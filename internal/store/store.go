// Package store is the read-only item table served by GET /items/:item_id.
package store

import (
	"fmt"
	"os"
	"sort"

	"github.com/reoring/goshape/shapefile"
)

// Store is a fixed key-value table of raw records. Implementations are safe
// for concurrent reads.
type Store interface {
	Get(id string) (map[string]any, bool)
	Keys() []string
}

type static struct {
	items map[string]map[string]any
	keys  []string
}

// NewStatic copies items; the store never changes afterwards.
func NewStatic(items map[string]map[string]any) Store {
	s := &static{items: make(map[string]map[string]any, len(items))}
	for k, v := range items {
		s.items[k] = deepCopy(v).(map[string]any)
		s.keys = append(s.keys, k)
	}
	sort.Strings(s.keys)
	return s
}

// Get returns a copy of the raw record stored under id.
func (s *static) Get(id string) (map[string]any, bool) {
	v, ok := s.items[id]
	if !ok {
		return nil, false
	}
	return deepCopy(v).(map[string]any), true
}

// Keys returns ids in sorted order.
func (s *static) Keys() []string { return append([]string(nil), s.keys...) }

// Tutorial returns the three items of the response-model tutorial.
func Tutorial() Store {
	return NewStatic(map[string]map[string]any{
		"foo": {"name": "Foo", "price": 50.2},
		"bar": {"name": "Bar", "description": "The bartenders", "price": 62, "tax": 20.2},
		"baz": {"name": "Baz", "description": nil, "price": 50.2, "tax": 10.5, "tags": []any{}},
	})
}

// LoadYAML seeds a store from a YAML mapping of id to record. Duplicate ids
// are rejected.
func LoadYAML(path string) (Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	v, err := shapefile.DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("store: %s: %w", path, err)
	}
	root, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("store: %s: expected a mapping of id to record", path)
	}
	items := make(map[string]map[string]any, len(root))
	for id, rec := range root {
		m, ok := rec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("store: %s: item %q is not a mapping", path, id)
		}
		items[id] = m
	}
	return NewStatic(items), nil
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}
