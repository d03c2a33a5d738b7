// Package watcher monitors a vault for note changes during a live search.
//
// Edits made while a search is on screen would otherwise leave stale results;
// the watcher coalesces filesystem events and notifies the session so it can
// re-run the current query.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a vault directory and reports settled change bursts.
type Watcher struct {
	vaultPath string

	// Configuration
	coalesceDelay time.Duration
	debug         bool

	// Internal state
	fsWatcher *fsnotify.Watcher
	pending   map[string]time.Time
	mu        sync.Mutex

	// Callbacks
	onChange func(paths []string)
}

// Config holds configuration options for the Watcher.
type Config struct {
	VaultPath     string
	CoalesceDelay time.Duration // Default: 250ms
	Debug         bool

	// OnChange is called once per settled burst of note changes.
	OnChange func(paths []string)
}

// New creates a new Watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.VaultPath == "" {
		return nil, fmt.Errorf("vault path is required")
	}
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("change callback is required")
	}

	delay := cfg.CoalesceDelay
	if delay == 0 {
		delay = 250 * time.Millisecond
	}

	return &Watcher{
		vaultPath:     cfg.VaultPath,
		coalesceDelay: delay,
		debug:         cfg.Debug,
		pending:       make(map[string]time.Time),
		onChange:      cfg.OnChange,
	}, nil
}

// Start begins watching the vault for note changes.
// It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	if err := w.addWatchRecursive(w.vaultPath); err != nil {
		return fmt.Errorf("failed to watch vault: %w", err)
	}

	w.logDebug("Watching vault: %s", w.vaultPath)

	// Sweep pending changes on a short tick
	go w.processCoalesced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logDebug("Watcher error: %v", err)
		}
	}
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !strings.HasSuffix(path, ".md") {
		// But watch new directories
		if event.Op&fsnotify.Create != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.addWatchRecursive(path)
			}
		}
		return
	}

	if w.shouldIgnore(path) {
		return
	}

	w.logDebug("Event: %s %s", event.Op, path)

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
		w.mu.Lock()
		w.pending[path] = time.Now()
		w.mu.Unlock()
	}
}

// processCoalesced flushes settled changes on a short tick.
func (w *Watcher) processCoalesced(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.flushPending()
		}
	}
}

// flushPending reports paths whose last event is older than the coalesce delay.
func (w *Watcher) flushPending() {
	w.mu.Lock()
	now := time.Now()
	ready := make([]string, 0)

	for path, lastEvent := range w.pending {
		if now.Sub(lastEvent) >= w.coalesceDelay {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	if len(ready) > 0 {
		w.logDebug("Changed: %v", ready)
		w.onChange(ready)
	}
}

// addWatchRecursive adds a directory and all subdirectories to the watcher.
func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() {
			if w.shouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			if err := w.fsWatcher.Add(path); err != nil {
				w.logDebug("Failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
}

// shouldIgnore returns true if the path should be ignored.
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.vaultPath, path)
	if err != nil {
		return false
	}

	parts := strings.Split(rel, string(filepath.Separator))
	for _, part := range parts {
		if part == ".muninn" || part == ".git" || part == ".trash" || part == "node_modules" {
			return true
		}
	}
	return false
}

// shouldIgnoreDir returns true if the directory should not be watched.
func (w *Watcher) shouldIgnoreDir(path string) bool {
	if path == w.vaultPath {
		return false
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	return base == "node_modules"
}

// logDebug logs a debug message if debug mode is enabled.
func (w *Watcher) logDebug(format string, args ...interface{}) {
	if w.debug {
		fmt.Fprintf(os.Stderr, "[watcher] "+format+"\n", args...)
	}
}
