// Package search implements muninn's linear scan-and-match engine: substring
// matching over folded text, snippet extraction around matches, the
// per-document scanner, and the debounced interactive session that drives it.
package search

import (
	"strings"

	"github.com/aidanlsb/muninn/internal/normalize"
)

// Matches reports whether rawHaystack contains foldedNeedle after folding.
// An empty needle never matches; callers treat an empty query as "no search".
func Matches(rawHaystack, foldedNeedle string) bool {
	if foldedNeedle == "" {
		return false
	}
	return strings.Contains(normalize.Fold(rawHaystack), foldedNeedle)
}

// Locate returns the byte index of the first occurrence of foldedNeedle in
// foldedHaystack, or -1. Both arguments must already be folded.
func Locate(foldedHaystack, foldedNeedle string) int {
	if foldedNeedle == "" {
		return -1
	}
	return strings.Index(foldedHaystack, foldedNeedle)
}
