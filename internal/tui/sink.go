// Package tui implements the interactive live-search screen.
//
// The search session runs on its own goroutines; its sink events are adapted
// into bubbletea messages so all screen state changes flow through Update.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aidanlsb/muninn/internal/search"
	"github.com/aidanlsb/muninn/internal/vault"
)

// Messages produced by the session sink. Sink calls are serialized by the
// session and Program.Send preserves order, so the model can trust that a
// SearchStartedMsg invalidates everything before it.
type (
	// SearchStartedMsg marks the beginning of a new scan.
	SearchStartedMsg struct{ Query string }

	// MatchMsg delivers one result record, in enumeration order.
	MatchMsg struct{ Record search.MatchRecord }

	// SkippedMsg reports an unreadable note the scan stepped over.
	SkippedMsg struct {
		Doc vault.Document
		Err error
	}

	// EmptyMsg marks a completed scan with zero matches.
	EmptyMsg struct{}

	// DoneMsg marks a completed scan with at least one match.
	DoneMsg struct{ Count int }

	// FailedMsg reports a scan that could not run.
	FailedMsg struct{ Err error }

	// ClearedMsg marks a cleared query: drop any displayed results.
	ClearedMsg struct{}

	// VaultChangedMsg reports note edits noticed by the watcher.
	VaultChangedMsg struct{ Paths []string }
)

// programSink bridges search.Sink to a running bubbletea program.
// The send function is attached after the program exists; events arriving
// before that are impossible because the session only scans on input.
type programSink struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func newProgramSink() *programSink {
	return &programSink{}
}

// attach connects the sink to a program's Send function.
func (s *programSink) attach(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

func (s *programSink) post(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (s *programSink) SearchStarted(query string) { s.post(SearchStartedMsg{Query: query}) }

func (s *programSink) Match(rec search.MatchRecord) { s.post(MatchMsg{Record: rec}) }

func (s *programSink) DocumentSkipped(doc vault.Document, err error) {
	s.post(SkippedMsg{Doc: doc, Err: err})
}

func (s *programSink) SearchEmpty() { s.post(EmptyMsg{}) }

func (s *programSink) SearchDone(count int) { s.post(DoneMsg{Count: count}) }

func (s *programSink) SearchFailed(err error) { s.post(FailedMsg{Err: err}) }

func (s *programSink) SearchCleared() { s.post(ClearedMsg{}) }
