// Package textutil holds string helpers for on-screen text.
package textutil

import "unicode/utf8"

const ellipsis = "..."

// Truncate shortens s to at most limit runes, replacing the tail with "..." when it cuts.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= len(ellipsis) {
		return ellipsis[:max(limit, 0)]
	}
	r := []rune(s)
	return string(r[:limit-len(ellipsis)]) + ellipsis
}
