package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aidanlsb/muninn/internal/config"
	"github.com/aidanlsb/muninn/internal/search"
	"github.com/aidanlsb/muninn/internal/vault"
	"github.com/aidanlsb/muninn/internal/watcher"
)

// Options configures the live search screen.
type Options struct {
	VaultPath string
	Config    *config.Config

	// Watch re-runs the current query when notes change on disk.
	Watch bool
	Debug bool
}

// Run starts the live search and blocks until the user quits.
func Run(opts Options) error {
	src := vault.NewDirSource(opts.VaultPath, opts.Config.Search.IgnoreDirs)

	sink := newProgramSink()
	session := search.NewSession(src, sink, opts.Config.Debounce(), opts.Config.SnippetContext())
	defer session.Close()

	model := NewModel(session, opts.Config.GetEditor())
	program := tea.NewProgram(model, tea.WithAltScreen())
	sink.attach(program.Send)

	if opts.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w, err := watcher.New(watcher.Config{
			VaultPath: opts.VaultPath,
			Debug:     opts.Debug,
			OnChange: func(paths []string) {
				program.Send(VaultChangedMsg{Paths: paths})
			},
		})
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		go func() {
			// Start returns when ctx is cancelled on exit.
			_ = w.Start(ctx)
		}()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("live search failed: %w", err)
	}
	return nil
}
