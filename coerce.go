package goshape

import (
	"encoding/json"
	"math"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/reoring/goshape/i18n"
)

// coerce converts v to the representation of t. Already-coerced values are
// returned unchanged, so coerce is idempotent.
func coerce(t Type, v any, p Path, opt ParseOpt) (any, Issues) {
	if v == nil {
		if t.Nullable || t.Kind == KindAny {
			return nil, nil
		}
		return nil, Issues{mismatch(p, t, "null is not allowed")}
	}
	switch t.Kind {
	case KindAny:
		return copyValue(v), nil
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, Issues{mismatch(p, t, "expected string")}
	case KindNumber:
		f, ok := toFloat(v)
		if !ok {
			return nil, Issues{mismatch(p, t, "expected number")}
		}
		if (math.IsNaN(f) || math.IsInf(f, 0)) && !opt.Strictness.AllowNaN {
			return nil, Issues{mismatch(p, t, "finite number required")}
		}
		return f, nil
	case KindInteger:
		n, ok := toInt(v)
		if !ok {
			return nil, Issues{mismatch(p, t, "expected integer")}
		}
		return n, nil
	case KindBool:
		b, ok := toBool(v)
		if !ok {
			return nil, Issues{mismatch(p, t, "expected boolean")}
		}
		return b, nil
	case KindURL:
		s, ok := v.(string)
		if !ok {
			return nil, Issues{mismatch(p, t, "expected url string")}
		}
		u, ok := toURL(s)
		if !ok {
			return nil, Issues{mismatch(p, t, "invalid or missing URL scheme")}
		}
		return u, nil
	case KindList, KindSet:
		return coerceList(t, v, p, opt)
	case KindObject:
		return coerceObject(t, v, p, opt)
	}
	return nil, Issues{mismatch(p, t, "unsupported type")}
}

func mismatch(p Path, t Type, hint string) Issue {
	return Issue{
		Path:    p.String(),
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, map[string]string{"expected": t.String()}),
		Hint:    hint,
		Params:  map[string]any{"expected": t.String()},
	}
}

func coerceList(t Type, v any, p Path, opt ParseOpt) (any, Issues) {
	items, ok := asSlice(v)
	if !ok {
		return nil, Issues{mismatch(p, t, "expected array")}
	}
	out := make([]any, 0, len(items))
	var iss Issues
	for i, e := range items {
		ev, i2 := coerce(*t.Elem, e, p.Index(i), opt)
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			if opt.FailFast {
				return nil, iss
			}
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	if t.Kind == KindSet {
		out = dedupe(out)
	}
	return out, nil
}

func coerceObject(t Type, v any, p Path, opt ParseOpt) (any, Issues) {
	switch src := v.(type) {
	case *Record:
		if src.shape == t.Shape {
			return src, nil
		}
		return validateObject(setValues(src), t.Shape, p, opt)
	case map[string]any:
		return validateObject(src, t.Shape, p, opt)
	default:
		return nil, Issues{mismatch(p, t, "expected object")}
	}
}

// setValues returns the explicitly set fields of r as raw input. Fields that
// r only defaulted are left out so t's own defaults and presence apply.
func setValues(r *Record) map[string]any {
	names := r.SetFields()
	out := make(map[string]any, len(names))
	for _, name := range names {
		out[name] = r.values[name]
	}
	return out
}

func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// dedupe drops repeated elements, keeping the first occurrence. Scalars are
// compared by value through a map; anything else by reflect.DeepEqual.
func dedupe(in []any) []any {
	seen := make(map[any]struct{}, len(in))
	var others []any
	out := in[:0]
	for _, e := range in {
		if !isScalar(e) {
			if containsDeep(others, e) {
				continue
			}
			others = append(others, e)
			out = append(out, e)
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func isScalar(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func containsDeep(vs []any, v any) bool {
	for _, x := range vs {
		if reflect.DeepEqual(x, v) {
			return true
		}
	}
	return false
}

var (
	// decimalNumber accepts plain decimal notation with an optional exponent;
	// hex, underscores, inf and nan spellings are rejected.
	decimalNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	// decimalInteger accepts integral decimal strings such as "5" or "5.0".
	decimalInteger = regexp.MustCompile(`^[+-]?\d+(\.0*)?$`)
)

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if !decimalNumber.MatchString(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int, int8, int16, int32:
		return reflect.ValueOf(n).Int(), true
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(n).Uint()
		return int64(u), u <= math.MaxInt64
	case float32, float64:
		return floatToInt(reflect.ValueOf(n).Float())
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if !decimalInteger.MatchString(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "on", "t", "y":
			return true, true
		case "false", "0", "no", "off", "f", "n":
			return false, true
		}
		return false, false
	}
	if f, ok := toFloat(v); ok {
		switch f {
		case 0:
			return false, true
		case 1:
			return true, true
		}
	}
	return false, false
}

func toURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	if u.Hostname() == "" {
		return "", false
	}
	return u.String(), true
}
