package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/muninn/internal/search"
	"github.com/aidanlsb/muninn/internal/ui"
	"github.com/aidanlsb/muninn/internal/vault"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Scan the vault once and print matching notes",
	Long: `Search scans every markdown file in the vault for the query and prints
matching notes as they are found. Matching is case-insensitive and treats
whitespace and underscores as equivalent.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Join all args as the search query
		query := strings.Join(args, " ")

		src := vault.NewDirSource(getVaultPath(), cfg.Search.IgnoreDirs)
		docs, err := src.List()
		if err != nil {
			if isJSONOutput() {
				outputError(ErrScanFailed, err)
				return nil
			}
			return fmt.Errorf("failed to enumerate vault: %w", err)
		}

		// Ctrl-C cancels the scan mid-corpus.
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if isJSONOutput() {
			return runSearchJSON(ctx, src, docs, query)
		}
		return runSearchText(ctx, src, docs, query)
	},
}

func runSearchText(ctx context.Context, src vault.Source, docs []vault.Document, query string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	spin := ui.NewSpinner(fmt.Sprintf("Searching for: %s", query))
	spin.Start()
	spinning := true
	stopSpinner := func() {
		if spinning {
			spin.Stop()
			spinning = false
		}
	}
	defer stopSpinner()

	styled := ui.IsTTY()
	count := 0
	limitHit := false
	var skipped []string

	scanner := search.Scanner{
		Context: cfg.SnippetContext(),
		OnSkip: func(doc vault.Document, err error) {
			skipped = append(skipped, doc.RelPath)
		},
	}

	err := scanner.Scan(ctx, src, docs, query, func(rec search.MatchRecord) {
		stopSpinner()
		fmt.Println(ui.RenderRecord(rec, styled))
		count++
		if searchLimit > 0 && count >= searchLimit {
			limitHit = true
			cancel()
		}
	})
	stopSpinner()

	if err != nil && !limitHit {
		// Interrupted by the user; what was printed stands.
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	for _, path := range skipped {
		fmt.Println(ui.Warningf("skipped unreadable note: %s", path))
	}

	if count == 0 {
		fmt.Printf("No results found for: %s\n", query)
		return nil
	}
	if limitHit {
		fmt.Println(ui.Muted.Render(fmt.Sprintf("Stopped after %d notes (use --limit to change)", count)))
	} else {
		fmt.Printf("Found %d matching notes\n", count)
	}
	return nil
}

func runSearchJSON(ctx context.Context, src vault.Source, docs []vault.Document, query string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	var results []map[string]interface{}
	var warnings []Warning
	limitHit := false

	scanner := search.Scanner{
		Context: cfg.SnippetContext(),
		OnSkip: func(doc vault.Document, err error) {
			warnings = append(warnings, Warning{
				Code:    ErrFileReadError,
				Message: fmt.Sprintf("%v", err),
				Path:    doc.RelPath,
			})
		},
	}

	err := scanner.Scan(ctx, src, docs, query, func(rec search.MatchRecord) {
		results = append(results, formatMatchRecord(rec))
		if searchLimit > 0 && len(results) >= searchLimit {
			limitHit = true
			cancel()
		}
	})
	if err != nil && !limitHit && !errors.Is(err, context.Canceled) {
		outputError(ErrScanFailed, err)
		return nil
	}

	outputSuccess(map[string]interface{}{
		"query":   query,
		"results": results,
	}, warnings, &Meta{
		Count:      len(results),
		ScanTimeMs: time.Since(start).Milliseconds(),
	})
	return nil
}

func formatMatchRecord(rec search.MatchRecord) map[string]interface{} {
	lines := make([]map[string]interface{}, len(rec.Lines))
	for i, lm := range rec.Lines {
		lines[i] = map[string]interface{}{
			"line":    lm.Num,
			"snippet": lm.Snippet.String(),
		}
	}
	return map[string]interface{}{
		"name":       rec.Doc.Name,
		"path":       rec.Doc.RelPath,
		"title":      rec.Title,
		"name_match": rec.NameMatch,
		"lines":      lines,
	}
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Stop after this many matching notes (0 = no limit)")
	rootCmd.AddCommand(searchCmd)
}
