package goshape

// UnknownPolicy controls how keys that a Shape does not declare are handled.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Ignore unknown keys.
	UnknownStrict                      // Reject unknown keys with an error.
)

// Kind is the type tag of a field.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindNumber  // float64
	KindInteger // int64
	KindBool
	KindURL // absolute http(s) URL, stored as its normalized string
	KindList
	KindSet // list with duplicates removed, first occurrence wins
	KindObject
)

var kindNames = [...]string{
	KindAny:     "any",
	KindString:  "string",
	KindNumber:  "number",
	KindInteger: "integer",
	KindBool:    "boolean",
	KindURL:     "url",
	KindList:    "list",
	KindSet:     "set",
	KindObject:  "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Type describes the semantic type of a field value. Elem is set for
// KindList and KindSet; Shape is set for KindObject.
type Type struct {
	Kind     Kind
	Elem     *Type
	Shape    *Shape
	Nullable bool
}

// String renders the type in the shape file notation, e.g. "list<Image>?".
func (t Type) String() string {
	var s string
	switch t.Kind {
	case KindList, KindSet:
		elem := "any"
		if t.Elem != nil {
			elem = t.Elem.String()
		}
		s = t.Kind.String() + "<" + elem + ">"
	case KindObject:
		s = "object"
		if t.Shape != nil && t.Shape.Name() != "" {
			s = t.Shape.Name()
		}
	default:
		s = t.Kind.String()
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

// Field is a single named entry of a Shape.
type Field struct {
	Name string
	Type Type
	// Optional fields may be absent from input. A field is required iff it
	// has no default and is not optional.
	Optional   bool
	HasDefault bool
	Default    any
}

// Required reports whether the field must be present in the input.
func (f Field) Required() bool { return !f.HasDefault && !f.Optional }

// Severity expresses the severity level for wire-level findings.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys and NaN handling.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
	AllowNaN       bool     // Allow NaN/±Inf values for numbers.
}

// ParseOpt bundles validation options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int   // 0 means unlimited
	MaxBytes   int64 // 0 means unlimited
	FailFast   bool
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
