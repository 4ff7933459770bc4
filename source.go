package goshape

import (
	"bytes"
	"errors"
	"io"

	json "github.com/goccy/go-json"

	eng "github.com/reoring/goshape/internal/engine"
	"github.com/reoring/goshape/i18n"
)

// DecodeJSON decodes a JSON payload into untyped values (objects as
// map[string]any, arrays as []any, numbers as json.Number) after applying
// wire-level enforcement from opt: size cap, depth cap, duplicate keys.
// Duplicate keys under Warn are reported to sink when it is non-nil.
func DecodeJSON(data []byte, opt ParseOpt, sink ...func(Issue)) (any, error) {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, singleIssue(CodeTruncated, i18n.T(CodeTruncated, nil))
	}
	var forward func(eng.SimpleIssue)
	if len(sink) > 0 && sink[0] != nil {
		forward = func(si eng.SimpleIssue) {
			sink[0](Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	if err := eng.Enforce(data, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		IssueSink:   forward,
	}); err != nil {
		return nil, toIssues(err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, AppendIssues(nil, Issue{Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: err.Error(), Cause: err})
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, AppendIssues(nil, Issue{Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: "trailing data after JSON value"})
	}
	return v, nil
}

// ReadJSON reads r fully (bounded by opt.MaxBytes) and decodes it.
func ReadJSON(r io.Reader, opt ParseOpt, sink ...func(Issue)) (any, error) {
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	return DecodeJSON(data, opt, sink...)
}

// ValidateJSON decodes data and validates the resulting object against s.
func ValidateJSON(data []byte, s *Shape, opts ...ParseOpt) (*Record, error) {
	opt := lastOpt(opts)
	v, err := DecodeJSON(data, opt)
	if err != nil {
		return nil, err
	}
	return ValidateValue(v, s, opt)
}

// ValidateReader is ValidateJSON over an io.Reader. Wire-level warnings
// (duplicate keys under Warn) are passed to sink.
func ValidateReader(r io.Reader, s *Shape, opt ParseOpt, sink ...func(Issue)) (*Record, error) {
	v, err := ReadJSON(r, opt, sink...)
	if err != nil {
		return nil, err
	}
	return ValidateValue(v, s, opt)
}

// ValidateJSONList decodes data as an array of s.
func ValidateJSONList(data []byte, s *Shape, opts ...ParseOpt) ([]*Record, error) {
	opt := lastOpt(opts)
	v, err := DecodeJSON(data, opt)
	if err != nil {
		return nil, err
	}
	return ValidateList(v, s, opt)
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: i18n.T(ie.Code, nil), Hint: ie.Message})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error(), Cause: err})
}
