package goshape

import (
	"strconv"
	"strings"
)

type segment struct {
	name  string
	index int
	isIdx bool
}

// Path identifies a location inside a record, rendered as items[2].price.
// The zero value is the root. Paths are immutable; Field and Index return
// extended copies.
type Path struct {
	parts []segment
}

// Root returns the empty path.
func Root() Path { return Path{} }

// Field appends a field segment.
func (p Path) Field(name string) Path {
	return Path{parts: append(append([]segment{}, p.parts...), segment{name: name})}
}

// Index appends a list index segment.
func (p Path) Index(i int) Path {
	return Path{parts: append(append([]segment{}, p.parts...), segment{index: i, isIdx: true})}
}

// Join appends all segments of q.
func (p Path) Join(q Path) Path {
	if len(q.parts) == 0 {
		return p
	}
	return Path{parts: append(append([]segment{}, p.parts...), q.parts...)}
}

// Depth counts field segments; list indexes do not add depth.
func (p Path) Depth() int {
	n := 0
	for _, s := range p.parts {
		if !s.isIdx {
			n++
		}
	}
	return n
}

// Last returns the name of the final field segment, or "" when the path is
// the root or ends in an index.
func (p Path) Last() string {
	if len(p.parts) == 0 {
		return ""
	}
	s := p.parts[len(p.parts)-1]
	if s.isIdx {
		return ""
	}
	return s.name
}

// Segments returns field names as strings and list indexes as ints.
func (p Path) Segments() []any {
	out := make([]any, len(p.parts))
	for i, s := range p.parts {
		if s.isIdx {
			out[i] = s.index
		} else {
			out[i] = s.name
		}
	}
	return out
}

func (p Path) String() string {
	b := &strings.Builder{}
	for i, s := range p.parts {
		if s.isIdx {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.name)
	}
	return b.String()
}

// Pointer renders the path as an RFC 6901 JSON Pointer.
func (p Path) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, s := range p.parts {
		b.WriteByte('/')
		if s.isIdx {
			b.WriteString(strconv.Itoa(s.index))
			continue
		}
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s.name, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// ParsePath parses the dotted notation produced by Path.String.
func ParsePath(s string) Path {
	var p Path
	for len(s) > 0 {
		switch s[0] {
		case '.':
			s = s[1:]
		case '[':
			end := strings.IndexByte(s, ']')
			if end < 0 {
				return p.Field(s)
			}
			i, err := strconv.Atoi(s[1:end])
			if err != nil {
				p = p.Field(s[:end+1])
			} else {
				p = p.Index(i)
			}
			s = s[end+1:]
		default:
			end := strings.IndexAny(s, ".[")
			if end < 0 {
				end = len(s)
			}
			p = p.Field(s[:end])
			s = s[end:]
		}
	}
	return p
}
