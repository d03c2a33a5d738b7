// Package vault enumerates the markdown notes a search runs over.
//
// The vault is a plain directory of .md files. Enumeration returns cheap
// handles; content is read lazily per document so that at most one note's
// text is resident during a scan.
package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Document is a handle to a single note. It carries no content.
type Document struct {
	// Name is the base filename, used for filename matching (e.g. "shopping-list.md").
	Name string

	// Path is the absolute path to the file.
	Path string

	// RelPath is the path relative to the vault root, used for display.
	RelPath string
}

// Source provides the document set and content reads for a scan.
type Source interface {
	// List returns the current document set. Order is whatever the source
	// produces; callers must not assume it is stable across calls.
	List() ([]Document, error)

	// Read returns the full text of a document. It honors ctx cancellation.
	Read(ctx context.Context, doc Document) (string, error)
}

// Directories that are never part of a vault's searchable content.
var ignoredDirs = map[string]bool{
	".git":         true,
	".muninn":      true,
	".trash":       true,
	"node_modules": true,
}

// DirSource enumerates markdown files under a vault directory.
type DirSource struct {
	root string

	// extraIgnores are additional directory names to skip (from config).
	extraIgnores map[string]bool
}

// NewDirSource creates a Source rooted at the given vault directory.
func NewDirSource(root string, ignoreDirs []string) *DirSource {
	extra := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		if d != "" {
			extra[d] = true
		}
	}
	return &DirSource{root: root, extraIgnores: extra}
}

// Root returns the vault directory this source enumerates.
func (s *DirSource) Root() string { return s.root }

// List walks the vault and returns a handle per markdown file.
// Unreadable subtrees are skipped rather than failing the whole walk.
func (s *DirSource) List() ([]Document, error) {
	var docs []Document

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if s.shouldSkipDir(d.Name(), path) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, ".md") {
			return nil
		}

		relPath, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			relPath = path
		}

		docs = append(docs, Document{
			Name:    d.Name(),
			Path:    path,
			RelPath: relPath,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault %s: %w", s.root, err)
	}

	return docs, nil
}

// Read loads a document's full text. A cancelled context wins over a
// successful read so a cancelled scan never observes fresh content.
func (s *DirSource) Read(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := os.ReadFile(doc.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", doc.RelPath, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(content), nil
}

func (s *DirSource) shouldSkipDir(name, path string) bool {
	if path == s.root {
		return false
	}
	if ignoredDirs[name] || s.extraIgnores[name] {
		return true
	}
	// Hidden directories are never searched.
	return strings.HasPrefix(name, ".")
}
