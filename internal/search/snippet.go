package search

import (
	"unicode/utf8"

	"github.com/aidanlsb/muninn/internal/normalize"
)

// SnippetContext is the default number of runes kept on each side of a match.
const SnippetContext = 50

// Snippet is a bounded excerpt of a raw line around the first match.
// The matched span is carried separately so the presentation layer can
// highlight it. All three parts are raw (unfolded) text.
type Snippet struct {
	Before string
	Match  string
	After  string
}

// String renders the snippet with the match marked for non-styled output.
func (s Snippet) String() string {
	if s.Match == "" {
		return s.Before
	}
	return s.Before + "»" + s.Match + "«" + s.After
}

// BuildSnippet extracts an excerpt of rawLine around the first match of
// rawQuery, with at most SnippetContext runes of context on each side.
//
// The match is located on the folded forms; because folding preserves rune
// count, the folded offset is valid as a rune offset into the raw line. All
// slicing is done in runes so multi-byte text stays intact.
//
// If the query cannot be located (the caller should only ask after a
// confirmed match), the raw line is returned unmarked rather than failing.
func BuildSnippet(rawLine, rawQuery string) Snippet {
	return buildSnippet(rawLine, rawQuery, SnippetContext)
}

// buildSnippet is BuildSnippet with a configurable context width.
func buildSnippet(rawLine, rawQuery string, context int) Snippet {
	if context <= 0 {
		context = SnippetContext
	}

	foldedLine := normalize.Fold(rawLine)
	foldedQuery := normalize.Fold(rawQuery)

	byteIdx := Locate(foldedLine, foldedQuery)
	if byteIdx < 0 {
		return Snippet{Before: rawLine}
	}

	// Convert the byte offset on the folded line to a rune offset, which is
	// also the rune offset on the raw line.
	start := utf8.RuneCountInString(foldedLine[:byteIdx])
	matchLen := utf8.RuneCountInString(rawQuery)

	runes := []rune(rawLine)
	end := start + matchLen
	if end > len(runes) {
		end = len(runes)
	}

	beforeStart := start - context
	if beforeStart < 0 {
		beforeStart = 0
	}
	afterEnd := end + context
	if afterEnd > len(runes) {
		afterEnd = len(runes)
	}

	return Snippet{
		Before: string(runes[beforeStart:start]),
		Match:  string(runes[start:end]),
		After:  string(runes[end:afterEnd]),
	}
}
