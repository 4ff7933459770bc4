package goshape

import (
	"sort"

	"github.com/reoring/goshape/i18n"
)

// Validate coerces raw onto s. Fields are processed in declaration order:
// present values are coerced to the field type, absent fields take their
// default (PresenceDefaultApplied), absent optional fields become nil, and
// absent required fields produce a missing_required issue. Unknown keys are
// ignored unless the shape is UnknownStrict. All issues are returned
// together unless opt.FailFast is set.
func Validate(raw map[string]any, s *Shape, opts ...ParseOpt) (*Record, error) {
	if s == nil {
		return nil, singleIssue(CodeParseError, "nil shape")
	}
	if raw == nil {
		raw = map[string]any{}
	}
	r, iss := validateObject(raw, s, Root(), lastOpt(opts))
	if len(iss) > 0 {
		return nil, iss
	}
	return r, nil
}

// ValidateValue validates an arbitrary decoded value that must be an object.
func ValidateValue(v any, s *Shape, opts ...ParseOpt) (*Record, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{mismatch(Root(), Type{Kind: KindObject, Shape: s}, "expected object")}
	}
	return Validate(m, s, opts...)
}

// ValidateList validates a top-level array whose elements must conform to s.
// Issue paths start with the element index ([2].url).
func ValidateList(raw any, s *Shape, opts ...ParseOpt) ([]*Record, error) {
	if s == nil {
		return nil, singleIssue(CodeParseError, "nil shape")
	}
	opt := lastOpt(opts)
	t := Type{Kind: KindList, Elem: &Type{Kind: KindObject, Shape: s}}
	v, iss := coerceList(t, raw, Root(), opt)
	if len(iss) > 0 {
		return nil, iss
	}
	items := v.([]any)
	out := make([]*Record, len(items))
	for i, e := range items {
		out[i] = e.(*Record)
	}
	return out, nil
}

func validateObject(raw map[string]any, s *Shape, base Path, opt ParseOpt) (*Record, Issues) {
	r := newRecord(s)
	var iss Issues
	for _, f := range s.fields {
		p := base.Field(f.Name)
		val, present := raw[f.Name]
		if present {
			pres := PresenceSeen
			if val == nil {
				pres |= PresenceWasNull
			}
			cv, i2 := coerce(f.Type, val, p, opt)
			if len(i2) > 0 {
				iss = AppendIssues(iss, i2...)
				if opt.FailFast {
					return nil, iss
				}
				continue
			}
			r.values[f.Name] = cv
			r.presence[f.Name] = pres
			continue
		}
		switch {
		case f.HasDefault:
			r.values[f.Name] = copyValue(f.Default)
			r.presence[f.Name] = PresenceDefaultApplied
		case f.Optional:
			r.values[f.Name] = nil
		default:
			iss = AppendIssues(iss, missingIssue(p))
			if opt.FailFast {
				return nil, iss
			}
		}
	}
	if s.unknown == UnknownStrict {
		iss = AppendIssues(iss, unknownIssues(raw, s, base)...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return r, nil
}

// unknownIssues reports undeclared keys in key-sorted order.
func unknownIssues(raw map[string]any, s *Shape, base Path) Issues {
	var uks []string
	for k := range raw {
		if !s.Has(k) {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	var iss Issues
	for _, k := range uks {
		iss = append(iss, Issue{Path: base.Field(k).String(), Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil)})
	}
	return iss
}
