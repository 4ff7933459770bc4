package engine

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// EnforceOptions controls wire-level enforcement.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn).
	IssueSink func(SimpleIssue)
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
}

// Enforce walks the JSON tokens of data once, reporting duplicate object keys
// and nesting deeper than MaxDepth. It is a no-op when both checks are off.
func Enforce(data []byte, opt EnforceOptions) error {
	if opt.OnDuplicate == DupIgnore && opt.MaxDepth <= 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var stack []frame
	pending := ""

	// childPath computes the path of the value about to start inside the top frame.
	childPath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			p := top.path + "[" + strconv.Itoa(top.nextIndex) + "]"
			top.nextIndex++
			return p
		}
		top.expectingKey = true
		if top.path == "" {
			return pending
		}
		return top.path + "." + pending
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return IssueError{SimpleIssue{Code: "parse_error", Path: "", Message: err.Error()}}
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				p := childPath()
				k := kindObject
				if d == '[' {
					k = kindArray
				}
				stack = append(stack, frame{kind: k, keys: map[string]struct{}{}, expectingKey: true, path: p})
				if opt.MaxDepth > 0 && len(stack) > opt.MaxDepth {
					return IssueError{SimpleIssue{Code: "too_deep", Path: p, Message: "max depth exceeded"}}
				}
			case '}', ']':
				if n := len(stack); n > 0 {
					stack = stack[:n-1]
				}
			}
			continue
		}
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.kind == kindObject && top.expectingKey {
				key, _ := tok.(string)
				if _, dup := top.keys[key]; dup && opt.OnDuplicate != DupIgnore {
					p := key
					if top.path != "" {
						p = top.path + "." + key
					}
					si := SimpleIssue{Code: "duplicate_key", Path: p, Message: "key '" + key + "' duplicated"}
					if opt.OnDuplicate == DupError {
						return IssueError{si}
					}
					if opt.IssueSink != nil {
						opt.IssueSink(si)
					}
				}
				top.keys[key] = struct{}{}
				top.expectingKey = false
				pending = key
				continue
			}
		}
		// scalar value: consume its slot
		childPath()
	}
}
