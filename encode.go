package goshape

import (
	"bytes"
	"reflect"

	json "github.com/goccy/go-json"
)

// EncodeMode exposes canonical vs preserving output intent at call sites.
type EncodeMode int

const (
	// EncodeCanonical emits every declared field, defaults included.
	EncodeCanonical EncodeMode = iota
	// EncodePreserve emits only the fields the caller explicitly set.
	EncodePreserve
)

// EncodeOpt selects which fields Serialize leaves out.
type EncodeOpt struct {
	ExcludeUnset    bool // drop fields that were not explicitly set
	ExcludeDefaults bool // drop fields whose value equals the declared default
	ExcludeNone     bool // drop fields whose value is null
}

// OrderedMap is a JSON object that keeps insertion order.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap returns an empty map.
func NewOrderedMap() *OrderedMap { return &OrderedMap{values: map[string]any{}} }

// Set appends key (or replaces its value, keeping the original position).
func (m *OrderedMap) Set(key string, v any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns keys in insertion order.
func (m *OrderedMap) Keys() []string { return append([]string(nil), m.keys...) }

// Len returns the number of keys.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Map returns a deep plain map (nested OrderedMaps become maps).
func (m *OrderedMap) Map() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = plainOrdered(m.values[k])
	}
	return out
}

func plainOrdered(v any) any {
	switch t := v.(type) {
	case *OrderedMap:
		return t.Map()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainOrdered(e)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON writes keys in insertion order.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Serialize renders r in shape declaration order, recursively, honoring opt.
func Serialize(r *Record, opt EncodeOpt) *OrderedMap {
	if r == nil {
		return nil
	}
	out := NewOrderedMap()
	for _, f := range r.shape.fields {
		v := r.values[f.Name]
		pres := r.presence[f.Name]
		if opt.ExcludeUnset && !pres.Set() {
			continue
		}
		if opt.ExcludeNone && v == nil {
			continue
		}
		if opt.ExcludeDefaults && f.HasDefault && reflect.DeepEqual(plain(v), plain(f.Default)) {
			continue
		}
		out.Set(f.Name, serializeValue(v, opt))
	}
	return out
}

func serializeValue(v any, opt EncodeOpt) any {
	switch t := v.(type) {
	case *Record:
		return Serialize(t, opt)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = serializeValue(e, opt)
		}
		return out
	default:
		return copyValue(v)
	}
}

// SerializeWithUnsetOmission emits only explicitly set fields, in
// declaration order, recursively for nested records.
func SerializeWithUnsetOmission(r *Record) *OrderedMap {
	return Serialize(r, EncodeOpt{ExcludeUnset: true})
}

// SerializeMode renders r canonically or with unset omission.
func SerializeMode(r *Record, mode EncodeMode) *OrderedMap {
	if mode == EncodePreserve {
		return SerializeWithUnsetOmission(r)
	}
	return Serialize(r, EncodeOpt{})
}

// SerializeList renders every record with the same options.
func SerializeList(rs []*Record, opt EncodeOpt) []*OrderedMap {
	out := make([]*OrderedMap, len(rs))
	for i, r := range rs {
		out[i] = Serialize(r, opt)
	}
	return out
}

// MarshalJSON encodes the record canonically.
func (r *Record) MarshalJSON() ([]byte, error) {
	return Serialize(r, EncodeOpt{}).MarshalJSON()
}
