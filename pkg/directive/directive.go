// Package directive reads configuration rows authored inside a document-based
// block. Rows have the form "<key>: <value>"; the style directive row is
// consumed so it is never mistaken for a data row.
package directive

import (
	"strings"
)

// Rows is the mutable row container the parsers operate on. *block.Block
// satisfies it.
type Rows interface {
	Len() int
	RowText(i int) string
	RemoveRow(i int)
}

// StyleKeys are the recognised style directive keys, matched
// case-insensitively.
var StyleKeys = []string{"style", "css"}

// ParseStyle scans rows in order for the first style directive. On a match
// the trimmed value after the separator is returned with ok set, and that row
// is removed from rows. An empty value is still reported as present. When
// rows is nil, empty or has no directive, ok is false and rows is untouched.
func ParseStyle(rows Rows) (value string, ok bool) {
	if rows == nil || rows.Len() == 0 {
		return "", false
	}

	match := -1
	for i := 0; i < rows.Len(); i++ {
		key, val, found := splitRow(rows.RowText(i))
		if !found || !isStyleKey(key) {
			continue
		}
		match, value = i, val
		break
	}
	if match < 0 {
		return "", false
	}

	rows.RemoveRow(match)
	return value, true
}

// ParseConfig returns every "<key>: <value>" row keyed by its lower-cased key.
// Rows without a separator are ignored and rows are never modified. Later rows
// do not overwrite earlier ones.
func ParseConfig(rows Rows, skip ...int) map[string]string {
	if rows == nil || rows.Len() == 0 {
		return nil
	}

	skipped := make(map[int]struct{}, len(skip))
	for _, idx := range skip {
		skipped[idx] = struct{}{}
	}

	out := make(map[string]string)
	for i := 0; i < rows.Len(); i++ {
		if _, ok := skipped[i]; ok {
			continue
		}
		key, val, found := splitRow(rows.RowText(i))
		if !found {
			continue
		}
		key = strings.ToLower(key)
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// splitRow separates a row into key and value at the first colon. The key
// must be a single token with no surrounding whitespace before the colon.
func splitRow(text string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(text)
	idx := strings.IndexByte(trimmed, ':')
	if idx <= 0 {
		return "", "", false
	}
	key = trimmed[:idx]
	if strings.ContainsAny(key, " \t\r\n") {
		return "", "", false
	}
	return key, strings.TrimSpace(trimmed[idx+1:]), true
}

func isStyleKey(key string) bool {
	for _, candidate := range StyleKeys {
		if strings.EqualFold(key, candidate) {
			return true
		}
	}
	return false
}
