package search

import (
	"context"
	"sync"
	"time"

	"github.com/romdo/go-debounce"

	"github.com/aidanlsb/muninn/internal/normalize"
	"github.com/aidanlsb/muninn/internal/vault"
)

// DefaultDebounce is how long input must settle before a scan starts.
const DefaultDebounce = 200 * time.Millisecond

// Sink receives the session's output. All calls are serialized by the
// session; implementations must not call back into the Session from within a
// sink method.
type Sink interface {
	// SearchStarted is called when a scan begins for the given query.
	SearchStarted(query string)

	// Match is called per qualifying document, in enumeration order.
	Match(rec MatchRecord)

	// DocumentSkipped is called when a document's content could not be read.
	// The scan continues past it.
	DocumentSkipped(doc vault.Document, err error)

	// SearchEmpty is called when a scan completes with zero matches.
	SearchEmpty()

	// SearchDone is called when a scan completes with at least one match.
	SearchDone(count int)

	// SearchFailed is called when a scan could not run at all
	// (document enumeration failed).
	SearchFailed(err error)

	// SearchCleared is called when the query is emptied: any running scan is
	// cancelled and displayed results should be dropped.
	SearchCleared()
}

// pass is one scan over the vault for a fixed query. A pass is superseded,
// never resumed: starting a new pass cancels the old one.
type pass struct {
	query   string
	ctx     context.Context
	cancel  context.CancelFunc
	matched int
}

// Session owns one interactive search: it debounces query changes, runs at
// most one scan at a time, and guarantees a superseded scan's results never
// reach the sink after its successor has started.
type Session struct {
	src  vault.Source
	sink Sink

	debounced      func()
	cancelDebounce func()
	snippetContext int

	mu      sync.Mutex
	pending string
	current *pass
	closed  bool
	wg      sync.WaitGroup
}

// NewSession creates a search session over src reporting to sink.
// A wait of zero or less uses DefaultDebounce; a snippetContext of zero
// or less uses SnippetContext.
func NewSession(src vault.Source, sink Sink, wait time.Duration, snippetContext int) *Session {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	s := &Session{src: src, sink: sink, snippetContext: snippetContext}
	s.debounced, s.cancelDebounce = debounce.New(wait, s.fire)
	return s
}

// SetQuery records a query change from the user.
//
// An empty (or whitespace-only) query cancels any running scan and clears
// the display immediately; no timer is started. A non-empty query restarts
// the debounce wait from zero, so only settled input triggers a scan.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	if normalize.QueryEmpty(query) {
		s.pending = ""
		if s.current != nil {
			s.current.cancel()
			s.current = nil
		}
		s.sink.SearchCleared()
		s.mu.Unlock()
		return
	}

	s.pending = query
	s.mu.Unlock()
	s.debounced()
}

// Requery immediately re-runs the current query, superseding any running
// scan. It is a no-op when there is no query. Used when the vault changes
// underneath an active search.
func (s *Session) Requery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.pending == "" {
		return
	}
	s.startScanLocked(s.pending)
}

// Query returns the most recent non-cleared query.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Close cancels any pending debounce and in-flight scan, then waits for the
// scan goroutine to finish. The session must not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.current != nil {
		s.current.cancel()
		s.current = nil
	}
	s.mu.Unlock()

	s.cancelDebounce()
	s.wg.Wait()
}

// fire runs on the debounce timer goroutine once input has settled.
func (s *Session) fire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.pending == "" {
		return
	}
	s.startScanLocked(s.pending)
}

// startScanLocked supersedes the current pass and starts a new one.
// Caller holds s.mu.
func (s *Session) startScanLocked(query string) {
	if s.current != nil {
		s.current.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &pass{query: query, ctx: ctx, cancel: cancel}
	s.current = p

	s.wg.Add(1)
	go s.run(p)
}

// run executes one pass. Every sink call is guarded by deliver, so nothing
// from this pass escapes once it has been superseded or cleared.
func (s *Session) run(p *pass) {
	defer s.wg.Done()
	defer p.cancel()

	s.deliver(p, func() { s.sink.SearchStarted(p.query) })

	docs, err := s.src.List()
	if err != nil {
		s.deliver(p, func() { s.sink.SearchFailed(err) })
		return
	}

	scanner := Scanner{
		Context: s.snippetContext,
		OnSkip: func(doc vault.Document, err error) {
			s.deliver(p, func() { s.sink.DocumentSkipped(doc, err) })
		},
	}

	scanErr := scanner.Scan(p.ctx, s.src, docs, p.query, func(rec MatchRecord) {
		if s.deliver(p, func() { s.sink.Match(rec) }) {
			p.matched++
		}
	})
	if scanErr != nil {
		// Cancellation: a superseded or cleared pass ends silently.
		return
	}

	if p.matched == 0 {
		s.deliver(p, func() { s.sink.SearchEmpty() })
	} else {
		s.deliver(p, func() { s.sink.SearchDone(p.matched) })
	}
}

// deliver invokes f only while p is still the session's current pass and has
// not been cancelled. The check and the sink call happen under one lock
// acquisition, so a successor pass installed in the meantime wins the race.
func (s *Session) deliver(p *pass, f func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != p || p.ctx.Err() != nil {
		return false
	}
	f()
	return true
}
