package middleware

import (
	"context"

	goshape "github.com/reoring/goshape"
)

type ctxKeyRecord struct{}

type ctxKeyRecords struct{}

// ContextWithRecord attaches a validated Record to the context.
func ContextWithRecord(ctx context.Context, r *goshape.Record) context.Context {
	return context.WithValue(ctx, ctxKeyRecord{}, r)
}

// RecordFromContext retrieves the Record stored by ContextWithRecord.
func RecordFromContext(ctx context.Context) (*goshape.Record, bool) {
	r, ok := ctx.Value(ctxKeyRecord{}).(*goshape.Record)
	return r, ok && r != nil
}

// ContextWithRecords attaches a validated list body to the context.
func ContextWithRecords(ctx context.Context, rs []*goshape.Record) context.Context {
	return context.WithValue(ctx, ctxKeyRecords{}, rs)
}

// RecordsFromContext retrieves the list stored by ContextWithRecords.
func RecordsFromContext(ctx context.Context) ([]*goshape.Record, bool) {
	rs, ok := ctx.Value(ctxKeyRecords{}).([]*goshape.Record)
	return rs, ok
}

// DefaultParseOpt returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors
// - Bodies are capped at 1 MiB and 64 levels of nesting
func DefaultParseOpt() goshape.ParseOpt {
	return goshape.ParseOpt{
		Strictness: goshape.Strictness{OnDuplicateKey: goshape.Error},
		MaxBytes:   1 << 20,
		MaxDepth:   64,
	}
}

// IsZeroOpt reports whether opt is the zero value, in which case adapters
// substitute DefaultParseOpt.
func IsZeroOpt(opt goshape.ParseOpt) bool { return opt == goshape.ParseOpt{} }

// WarningHeader carries wire-level warnings (duplicate keys under Warn) on
// responses to bodies that were accepted anyway.
const WarningHeader = "Warning-Issue"

// WarningValue renders a warning as "duplicate_key at items[0].name".
func WarningValue(it goshape.Issue) string {
	if it.Path == "" {
		return it.Code
	}
	return it.Code + " at " + it.Path
}

// Detail is one entry of an error response.
type Detail struct {
	Loc     []any  `json:"loc"`
	Pointer string `json:"pointer"`
	Type    string `json:"type"`
	Msg     string `json:"msg"`
}

// ErrorPayload shapes Issues for JSON responses:
// {"detail":[{"loc":["body","items",2,"price"],"pointer":"/items/2/price","type":"type_mismatch","msg":"..."}]}
func ErrorPayload(issues []goshape.Issue) map[string]any {
	return ErrorPayloadAt("body", issues)
}

// ErrorPayloadAt is ErrorPayload with a custom location root (body, query, path).
func ErrorPayloadAt(root string, issues []goshape.Issue) map[string]any {
	out := make([]Detail, 0, len(issues))
	for _, it := range issues {
		out = append(out, Detail{
			Loc:     loc(root, it.Path),
			Pointer: it.Pointer(),
			Type:    it.Code,
			Msg:     it.Message,
		})
	}
	return map[string]any{"detail": out}
}

// IsParseFailure reports whether issues describe an unreadable body rather
// than a body that failed validation.
func IsParseFailure(issues goshape.Issues) bool {
	for _, it := range issues {
		switch it.Code {
		case goshape.CodeParseError, goshape.CodeTruncated, goshape.CodeTooDeep, goshape.CodeDuplicateKey:
			return true
		}
	}
	return false
}

func loc(root, path string) []any {
	out := []any{root}
	for _, seg := range goshape.ParsePath(path).Segments() {
		out = append(out, seg)
	}
	return out
}
