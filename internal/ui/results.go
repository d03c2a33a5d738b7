package ui

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/muninn/internal/search"
)

// RenderSnippet renders a snippet with the matched span highlighted.
// When styled is false the span is marked with »…« instead (for pipes and
// JSON-adjacent plain output).
func RenderSnippet(s search.Snippet, styled bool) string {
	if s.Match == "" {
		return s.Before
	}
	if !styled {
		return s.String()
	}
	return s.Before + Highlight.Render(s.Match) + s.After
}

// RenderRecord renders one match record as a result block: a header line with
// the note's title and path, then one line per matching snippet.
func RenderRecord(rec search.MatchRecord, styled bool) string {
	var b strings.Builder

	title := rec.Title
	if title == "" {
		title = rec.Doc.Name
	}

	if styled {
		b.WriteString(Bold.Render(title))
		b.WriteString("  ")
		b.WriteString(FilePath(rec.Doc.RelPath))
	} else {
		b.WriteString(title)
		b.WriteString("  ")
		b.WriteString(rec.Doc.RelPath)
	}
	if rec.NameMatch {
		note := "(filename match)"
		if styled {
			note = Muted.Render(note)
		}
		b.WriteString("  ")
		b.WriteString(note)
	}
	b.WriteString("\n")

	width := 0
	for _, lm := range rec.Lines {
		if n := len(fmt.Sprintf("%d", lm.Num)); n > width {
			width = n
		}
	}

	for _, lm := range rec.Lines {
		num := fmt.Sprintf("%*d", width, lm.Num)
		if styled {
			num = Muted.Render(num)
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", num, RenderSnippet(lm.Snippet, styled)))
	}

	return b.String()
}
