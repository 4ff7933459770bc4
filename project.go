package goshape

import "github.com/reoring/goshape/i18n"

// Project copies the fields of r that target declares, by name, into a new
// Record of target. Fields of r absent from target are dropped. A target
// field missing from r takes the target default, or nil when optional;
// a required one is reported as projection_missing_field. Copied values
// keep their presence flags and are re-checked against the target type;
// nested records are projected onto the target's nested shapes. r is not
// modified.
func Project(r *Record, target *Shape) (*Record, error) {
	if r == nil || target == nil {
		return nil, singleIssue(CodeParseError, "nil record or shape")
	}
	out, iss := projectRecord(r, target, Root())
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// ProjectAll projects every record, stopping at the first failure. Issue
// paths are prefixed with the element index.
func ProjectAll(rs []*Record, target *Shape) ([]*Record, error) {
	out := make([]*Record, len(rs))
	for i, r := range rs {
		pr, iss := projectRecord(r, target, Root().Index(i))
		if len(iss) > 0 {
			return nil, iss
		}
		out[i] = pr
	}
	return out, nil
}

func projectRecord(r *Record, target *Shape, base Path) (*Record, Issues) {
	if r.shape == target {
		return r, nil
	}
	out := newRecord(target)
	var iss Issues
	for _, f := range target.fields {
		p := base.Field(f.Name)
		v, has := r.values[f.Name]
		pres := r.presence[f.Name]
		if has && (v != nil || pres != 0) {
			pv, i2 := projectValue(f.Type, v, p)
			if len(i2) > 0 {
				iss = AppendIssues(iss, i2...)
				continue
			}
			out.values[f.Name] = pv
			out.presence[f.Name] = pres
			continue
		}
		switch {
		case f.HasDefault:
			out.values[f.Name] = copyValue(f.Default)
			out.presence[f.Name] = PresenceDefaultApplied
		case f.Optional:
			out.values[f.Name] = nil
		default:
			iss = AppendIssues(iss, Issue{
				Path:    p.String(),
				Code:    CodeProjectionMissing,
				Message: i18n.T(CodeProjectionMissing, nil),
				Hint:    "source record has no value for required target field",
			})
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func projectValue(t Type, v any, p Path) (any, Issues) {
	switch src := v.(type) {
	case *Record:
		if t.Kind == KindObject && t.Shape != nil {
			return projectRecord(src, t.Shape, p)
		}
	case []any:
		if (t.Kind == KindList || t.Kind == KindSet) && t.Elem != nil && t.Elem.Kind == KindObject {
			out := make([]any, 0, len(src))
			var iss Issues
			for i, e := range src {
				ev, i2 := projectValue(*t.Elem, e, p.Index(i))
				if len(i2) > 0 {
					iss = AppendIssues(iss, i2...)
					continue
				}
				out = append(out, ev)
			}
			if len(iss) > 0 {
				return nil, iss
			}
			return out, nil
		}
	}
	return coerce(t, v, p, ParseOpt{})
}
