package engine

import (
	"errors"
	"testing"
)

func TestEnforce_Off(t *testing.T) {
	if err := Enforce([]byte(`{"a":1,"a":2`), EnforceOptions{}); err != nil {
		t.Fatalf("no checks requested, got %v", err)
	}
}

func TestEnforce_DuplicateError(t *testing.T) {
	err := Enforce([]byte(`{"x":[{"k":1},{"k":1,"k":2}]}`), EnforceOptions{OnDuplicate: DupError})
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %v", err)
	}
	if ie.Code != "duplicate_key" || ie.Path != "x[1].k" {
		t.Fatalf("unexpected issue %+v", ie.SimpleIssue)
	}
}

func TestEnforce_DuplicateWarnSink(t *testing.T) {
	var got []SimpleIssue
	err := Enforce([]byte(`{"a":{"b":1,"b":2},"a":0}`), EnforceOptions{
		OnDuplicate: DupWarn,
		IssueSink:   func(si SimpleIssue) { got = append(got, si) },
	})
	if err != nil {
		t.Fatalf("warn must not fail: %v", err)
	}
	if len(got) != 2 || got[0].Path != "a.b" || got[1].Path != "a" {
		t.Fatalf("unexpected warnings %+v", got)
	}
}

func TestEnforce_SameKeyInSiblingsIsFine(t *testing.T) {
	if err := Enforce([]byte(`[{"k":1},{"k":2}]`), EnforceOptions{OnDuplicate: DupError}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestEnforce_MaxDepth(t *testing.T) {
	err := Enforce([]byte(`[[[1]]]`), EnforceOptions{MaxDepth: 2})
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != "too_deep" || ie.Path != "[0][0]" {
		t.Fatalf("expected too_deep at [0][0], got %v", err)
	}
	if err := Enforce([]byte(`[[1]]`), EnforceOptions{MaxDepth: 2}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestEnforce_Malformed(t *testing.T) {
	err := Enforce([]byte(`{"a":tru}`), EnforceOptions{OnDuplicate: DupError})
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != "parse_error" {
		t.Fatalf("expected parse_error, got %v", err)
	}
}
