// Package normalize provides the comparison form used for substring matching.
//
// Matching in muninn is case-insensitive and whitespace-insensitive: both the
// query and the scanned text are folded before comparison. Folding must
// preserve the rune count of its input, because snippet extraction computes
// match offsets on the folded line and then slices the raw line at the same
// rune offsets.
package normalize

import (
	"strings"
	"unicode"
)

// Placeholder is the rune every whitespace rune folds to. It is itself a
// legal query character, so "cat_sat" and "cat sat" fold to the same form.
const Placeholder = '_'

// Fold returns the comparison form of s: lowercased, with each whitespace
// rune replaced by Placeholder. The result has the same rune count as s.
// Folding is for comparison only; folded text is never displayed.
func Fold(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return Placeholder
		}
		return unicode.ToLower(r)
	}, s)
}

// QueryEmpty reports whether a raw query should be treated as "no search".
// A query consisting only of whitespace folds to placeholder runs, which
// would match every line; trimming first avoids that.
func QueryEmpty(rawQuery string) bool {
	return strings.TrimSpace(rawQuery) == ""
}
