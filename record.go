package goshape

import (
	"github.com/go-viper/mapstructure/v2"
)

// Record is a validated instance of a Shape. Every declared field has a
// value (possibly nil) and a Presence bit set. Records are immutable; nested
// object values are *Record and list values are []any.
type Record struct {
	shape    *Shape
	values   map[string]any
	presence map[string]Presence
}

func newRecord(s *Shape) *Record {
	return &Record{
		shape:    s,
		values:   make(map[string]any, len(s.fields)),
		presence: make(map[string]Presence, len(s.fields)),
	}
}

// Shape returns the shape the record conforms to.
func (r *Record) Shape() *Shape { return r.shape }

// Get returns the value of a declared field. Lists are returned as copies.
func (r *Record) Get(name string) (any, bool) {
	if !r.shape.Has(name) {
		return nil, false
	}
	return copyValue(r.values[name]), true
}

// Presence returns the presence flags of a field.
func (r *Record) Presence(name string) Presence { return r.presence[name] }

// IsSet reports whether the field was explicitly provided by the caller.
func (r *Record) IsSet(name string) bool { return r.presence[name].Set() }

// SetFields lists explicitly provided fields in declaration order.
func (r *Record) SetFields() []string {
	var out []string
	for _, f := range r.shape.fields {
		if r.IsSet(f.Name) {
			out = append(out, f.Name)
		}
	}
	return out
}

// Map returns a deep plain-map copy of the record (nested records become maps).
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for _, f := range r.shape.fields {
		out[f.Name] = plain(r.values[f.Name])
	}
	return out
}

// PresenceMap flattens presence for this record and every nested record
// under dotted paths (items[0].price).
func (r *Record) PresenceMap() PresenceMap {
	pm := make(PresenceMap)
	collectPresence(r, Root(), pm)
	return pm
}

// Decode binds the record onto a Go value (typically a pointer to a struct
// with json tags).
func (r *Record) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(r.Map())
}

func plain(v any) any {
	switch t := v.(type) {
	case *Record:
		return t.Map()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

// copyValue deep-copies lists and maps; records are immutable and shared.
func copyValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
