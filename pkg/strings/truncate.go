// Package strings holds text helpers for terminal output.
package strings

import (
	"strings"
)

// DefaultMaxLen is the width used for table cells such as plugin errors.
const DefaultMaxLen = 60

// minLen leaves room for one character plus the ellipsis.
const minLen = 4

const ellipsis = "..."

// Truncate collapses s onto one line and shortens it to maxLen runes, ending
// in "..." when cut.
func Truncate(s string, maxLen int) string {
	maxLen = max(maxLen, minLen)
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-len(ellipsis)]) + ellipsis
	}
	return s
}

// TruncateLeft shortens s to maxLen runes by cutting from the front, so the
// end of a file path stays visible.
func TruncateLeft(s string, maxLen int) string {
	maxLen = max(maxLen, minLen)

	runes := []rune(s)
	if len(runes) > maxLen {
		return ellipsis + string(runes[len(runes)-(maxLen-len(ellipsis)):])
	}
	return s
}
