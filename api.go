package goshape

// Mapper is the capability the HTTP layer consumes: validate an untyped
// decoded record, project it onto an outward shape, and render it with
// unset fields omitted. Implementations must be safe for concurrent use.
type Mapper interface {
	Validate(raw map[string]any, s *Shape) (*Record, error)
	Project(r *Record, target *Shape) (*Record, error)
	SerializeWithUnsetOmission(r *Record) *OrderedMap
}

// NewMapper returns a Mapper that applies opt to every validation.
func NewMapper(opt ParseOpt) Mapper { return mapper{opt: opt} }

type mapper struct{ opt ParseOpt }

func (m mapper) Validate(raw map[string]any, s *Shape) (*Record, error) {
	return Validate(raw, s, m.opt)
}

func (m mapper) Project(r *Record, target *Shape) (*Record, error) { return Project(r, target) }

func (m mapper) SerializeWithUnsetOmission(r *Record) *OrderedMap {
	return SerializeWithUnsetOmission(r)
}

// SafeValidate validates raw, returning (nil, false) on any issue.
func SafeValidate(raw map[string]any, s *Shape) (*Record, bool) {
	r, err := Validate(raw, s)
	if err != nil {
		return nil, false
	}
	return r, true
}

// Is returns true if raw conforms to s.
func Is(raw map[string]any, s *Shape) bool {
	_, ok := SafeValidate(raw, s)
	return ok
}

// ValidateAndProject validates raw against in and projects the result onto
// out, the usual request-to-response path (UserIn -> UserOut).
func ValidateAndProject(raw map[string]any, in, out *Shape, opts ...ParseOpt) (*Record, error) {
	r, err := Validate(raw, in, opts...)
	if err != nil {
		return nil, err
	}
	return Project(r, out)
}
