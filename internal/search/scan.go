package search

import (
	"context"
	"strings"

	"github.com/aidanlsb/muninn/internal/normalize"
	"github.com/aidanlsb/muninn/internal/vault"
)

// LineMatch is one matching line of a document.
type LineMatch struct {
	// Num is the 1-based line number in the document.
	Num int

	Snippet Snippet
}

// MatchRecord is the per-document result of a scan. A document qualifies when
// its filename matches, or at least one content line matches, or both.
type MatchRecord struct {
	Doc vault.Document

	// Title is the note's display title, "" when the note has none.
	Title string

	// NameMatch is true when the filename itself matched the query.
	NameMatch bool

	// Lines holds a snippet per matching content line, in line order.
	Lines []LineMatch
}

// Scanner performs one linear sweep over a document source for a fixed query.
// The zero value is usable.
type Scanner struct {
	// OnSkip, if set, is called for documents whose content could not be
	// read. A skipped document never aborts the scan.
	OnSkip func(doc vault.Document, err error)

	// Context is the number of runes of context kept on each side of a
	// snippet match. Zero or less means SnippetContext.
	Context int
}

// Scan iterates docs in order, reading content through src, and calls onMatch
// synchronously for each qualifying document before moving to the next one.
//
// The context is checked before and after every content read; once ctx is
// cancelled no further matches are reported and Scan returns ctx.Err().
// Callers treat cancellation as a silent truncation, not a failure.
//
// An empty (or whitespace-only) query performs no work and reports nothing.
func (s *Scanner) Scan(ctx context.Context, src vault.Source, docs []vault.Document, rawQuery string, onMatch func(MatchRecord)) error {
	if normalize.QueryEmpty(rawQuery) {
		return nil
	}
	foldedQuery := normalize.Fold(rawQuery)

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		nameMatch := Matches(doc.Name, foldedQuery)

		content, err := src.Read(ctx, doc)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if s.OnSkip != nil {
				s.OnSkip(doc, err)
			}
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		var lines []LineMatch
		for i, line := range strings.Split(content, "\n") {
			if Matches(line, foldedQuery) {
				lines = append(lines, LineMatch{
					Num:     i + 1,
					Snippet: buildSnippet(line, rawQuery, s.Context),
				})
			}
		}

		if !nameMatch && len(lines) == 0 {
			continue
		}

		onMatch(MatchRecord{
			Doc:       doc,
			Title:     vault.Title(content),
			NameMatch: nameMatch,
			Lines:     lines,
		})
	}

	return nil
}
