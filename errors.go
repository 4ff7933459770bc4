package goshape

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeRequired          = "missing_required"
	CodeInvalidType       = "type_mismatch"
	CodeProjectionMissing = "projection_missing_field"
	CodeUnknownKey        = "unknown_key"
	CodeDuplicateKey      = "duplicate_key"
	CodeParseError        = "parse_error"
	CodeTruncated         = "truncated"
	CodeTooDeep           = "too_deep"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Field path (for example: items[2].price). Empty for the root.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected type, format names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"number"})
	// for i18n and observability.
	Params map[string]any
}

// Pointer renders the issue path as a JSON Pointer (items[2].price -> /items/2/price).
func (it Issue) Pointer() string { return ParsePath(it.Path).Pointer() }

// Field returns the last path segment name, or "" for root and index segments.
func (it Issue) Field() string { return ParsePath(it.Path).Last() }

// Nested reports whether the issue was raised below the top level of the record.
func (it Issue) Nested() bool { return ParsePath(it.Path).Depth() > 1 }

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		path := it.Path
		if path == "" {
			path = "(root)"
		}
		// e.g. type_mismatch at items[2].price
		fmt.Fprintf(b, "%s at %s", it.Code, path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// HasCode reports whether any issue carries the given code.
func (iss Issues) HasCode(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IsMissingRequired reports whether err contains a missing_required issue.
func IsMissingRequired(err error) bool { return hasCode(err, CodeRequired) }

// IsTypeMismatch reports whether err contains a type_mismatch issue.
func IsTypeMismatch(err error) bool { return hasCode(err, CodeInvalidType) }

// IsProjectionMissing reports whether err contains a projection_missing_field issue.
func IsProjectionMissing(err error) bool { return hasCode(err, CodeProjectionMissing) }

func hasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	return ok && iss.HasCode(code)
}

func singleIssue(code, msg string) Issues { return AppendIssues(nil, Issue{Code: code, Message: msg}) }
