package goshape

// Presence is the per-field bit set recorded by Validate.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Default value was applied.
)

// Set reports whether the caller explicitly provided the field.
func (p Presence) Set() bool { return p&PresenceSeen != 0 }

// DefaultOnly reports whether the value exists only because of a default.
func (p Presence) DefaultOnly() bool {
	return p&PresenceDefaultApplied != 0 && p&PresenceSeen == 0 && p&PresenceWasNull == 0
}

func (p Presence) String() string {
	if p == 0 {
		return "unset"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if p&PresenceSeen != 0 {
		add("seen")
	}
	if p&PresenceWasNull != 0 {
		add("null")
	}
	if p&PresenceDefaultApplied != 0 {
		add("default")
	}
	return s
}

// MarshalText renders the flags for JSON payloads.
func (p Presence) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// PresenceMap maps dotted field paths to Presence flags.
type PresenceMap map[string]Presence

// collectPresence walks r and its nested records, recording every field under
// its dotted path.
func collectPresence(r *Record, base Path, pm PresenceMap) {
	for _, f := range r.shape.fields {
		p := base.Field(f.Name)
		pm[p.String()] = r.presence[f.Name]
		collectPresenceValue(r.values[f.Name], p, pm)
	}
}

func collectPresenceValue(v any, p Path, pm PresenceMap) {
	switch t := v.(type) {
	case *Record:
		collectPresence(t, p, pm)
	case []any:
		for i, e := range t {
			collectPresenceValue(e, p.Index(i), pm)
		}
	}
}
