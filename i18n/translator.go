package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"missing_required":         "field required",
		"type_mismatch":            "value is not a valid {expected}",
		"projection_missing_field": "field missing from source record",
		"unknown_key":              "extra fields not permitted",
		"duplicate_key":            "duplicate key",
		"parse_error":              "invalid JSON",
		"truncated":                "request body too large",
		"too_deep":                 "nesting too deep",
	},
	"ja": {
		"missing_required":         "必須プロパティが不足しています",
		"type_mismatch":            "型が不正です ({expected})",
		"projection_missing_field": "射影元のレコードにフィールドがありません",
		"unknown_key":              "未知のキーです",
		"duplicate_key":            "キーが重複しています",
		"parse_error":              "解析エラー",
		"truncated":                "打ち切られました",
		"too_deep":                 "ネストが深すぎます",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dict[t.lang][code]
	if !ok {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	if strings.Contains(msg, "{expected}") {
		msg = strings.ReplaceAll(msg, "{expected}", "type")
	}
	return msg
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
