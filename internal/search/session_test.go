package search

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aidanlsb/muninn/internal/vault"
)

// recordingSink captures sink calls as ordered event strings.
type recordingSink struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingSink) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) SearchStarted(query string) { r.add("started:" + query) }

func (r *recordingSink) Match(rec MatchRecord) { r.add("match:" + rec.Doc.Name) }

func (r *recordingSink) DocumentSkipped(d vault.Document, _ error) { r.add("skip:" + d.Name) }

func (r *recordingSink) SearchEmpty() { r.add("empty") }

func (r *recordingSink) SearchDone(count int) { r.add(fmt.Sprintf("done:%d", count)) }

func (r *recordingSink) SearchFailed(err error) { r.add("failed") }

func (r *recordingSink) SearchCleared() { r.add("cleared") }

func (r *recordingSink) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recordingSink) count(prefix string) int {
	n := 0
	for _, e := range r.snapshot() {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

// waitFor polls until pred is satisfied or the deadline passes.
func waitFor(t *testing.T, pred func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

const testDebounce = 30 * time.Millisecond

func TestSessionDebounceCoalescing(t *testing.T) {
	src := newMemSource(
		[2]string{"a.md", "the cat sat"},
		[2]string{"b.md", "dogs everywhere"},
	)
	sink := &recordingSink{}
	s := NewSession(src, sink, testDebounce, 0)
	defer s.Close()

	// Five rapid keystrokes inside the debounce window.
	for _, q := range []string{"d", "do", "dog", "dogs", "dogs e"} {
		s.SetQuery(q)
		time.Sleep(2 * time.Millisecond)
	}

	waitFor(t, func() bool { return sink.count("done:") == 1 }, "scan completion")

	if got := sink.count("started:"); got != 1 {
		t.Errorf("expected exactly one scan, got %d: %v", got, sink.snapshot())
	}

	events := sink.snapshot()
	if events[0] != "started:dogs e" {
		t.Errorf("expected scan for last input 'dogs e', got %q", events[0])
	}
	if sink.count("match:") != 1 || events[1] != "match:b.md" {
		t.Errorf("expected single match for b.md, got %v", events)
	}
}

func TestSessionEmptyQueryClears(t *testing.T) {
	src := newMemSource([2]string{"a.md", "cat"})
	sink := &recordingSink{}
	s := NewSession(src, sink, testDebounce, 0)
	defer s.Close()

	s.SetQuery("cat")
	s.SetQuery("") // cleared before debounce fires

	waitFor(t, func() bool { return sink.count("cleared") == 1 }, "cleared event")

	// Give any stray debounce timer a chance to misfire.
	time.Sleep(4 * testDebounce)

	if got := sink.count("started:"); got != 0 {
		t.Errorf("expected no scan after clearing, got %d: %v", got, sink.snapshot())
	}
}

func TestSessionEmptyResult(t *testing.T) {
	src := newMemSource([2]string{"a.md", "nothing relevant"})
	sink := &recordingSink{}
	s := NewSession(src, sink, testDebounce, 0)
	defer s.Close()

	s.SetQuery("zebra")
	waitFor(t, func() bool { return sink.count("empty") == 1 }, "empty event")

	if sink.count("match:") != 0 {
		t.Errorf("expected no matches, got %v", sink.snapshot())
	}
	if sink.count("done:") != 0 {
		t.Errorf("empty scan must not also report done: %v", sink.snapshot())
	}
}

func TestSessionSupersession(t *testing.T) {
	src := newMemSource(
		[2]string{"cats.md", "a cat"},
		[2]string{"dogs.md", "a dog"},
	)
	src.readWait = make(chan struct{})

	sink := &recordingSink{}
	s := NewSession(src, sink, testDebounce, 0)
	defer s.Close()

	s.SetQuery("cat")
	waitFor(t, func() bool { return sink.count("started:cat") == 1 }, "first scan start")

	// First pass is now blocked in its first read. Supersede it.
	s.SetQuery("dog")
	waitFor(t, func() bool { return sink.count("started:dog") == 1 }, "second scan start")

	// Unblock reads; only the second pass may deliver from here on.
	close(src.readWait)
	waitFor(t, func() bool { return sink.count("done:") == 1 }, "second scan completion")

	events := sink.snapshot()
	for _, e := range events {
		if e == "match:cats.md" {
			t.Errorf("superseded scan leaked a match: %v", events)
		}
	}
	if sink.count("match:dogs.md") != 1 {
		t.Errorf("expected dogs.md match from second scan, got %v", events)
	}

	// The cancelled pass must not report completion either.
	if sink.count("empty") != 0 || sink.count("done:") != 1 {
		t.Errorf("superseded scan reported completion: %v", events)
	}
}

func TestSessionClearCancelsInFlight(t *testing.T) {
	src := newMemSource([2]string{"a.md", "cat"})
	src.readWait = make(chan struct{})

	sink := &recordingSink{}
	s := NewSession(src, sink, testDebounce, 0)
	defer s.Close()

	s.SetQuery("cat")
	waitFor(t, func() bool { return sink.count("started:") == 1 }, "scan start")

	s.SetQuery("")
	waitFor(t, func() bool { return sink.count("cleared") == 1 }, "cleared event")

	close(src.readWait)
	time.Sleep(4 * testDebounce)

	if sink.count("match:") != 0 || sink.count("done:") != 0 || sink.count("empty") != 0 {
		t.Errorf("cleared scan still delivered results: %v", sink.snapshot())
	}
}

func TestSessionRequery(t *testing.T) {
	src := newMemSource([2]string{"a.md", "cat"})
	sink := &recordingSink{}
	s := NewSession(src, sink, testDebounce, 0)
	defer s.Close()

	s.SetQuery("cat")
	waitFor(t, func() bool { return sink.count("done:") == 1 }, "first scan")

	// Requery bypasses the debounce entirely.
	s.Requery()
	waitFor(t, func() bool { return sink.count("done:") == 2 }, "requery scan")

	if got := sink.count("started:cat"); got != 2 {
		t.Errorf("expected two scans for same query, got %d", got)
	}
}

func TestSessionRequeryWithoutQuery(t *testing.T) {
	src := newMemSource([2]string{"a.md", "cat"})
	sink := &recordingSink{}
	s := NewSession(src, sink, testDebounce, 0)
	defer s.Close()

	s.Requery()
	time.Sleep(2 * testDebounce)

	if len(sink.snapshot()) != 0 {
		t.Errorf("expected no events, got %v", sink.snapshot())
	}
}

func TestSessionListFailure(t *testing.T) {
	src := newMemSource([2]string{"a.md", "cat"})
	src.listErr = fmt.Errorf("vault unavailable")

	sink := &recordingSink{}
	s := NewSession(src, sink, testDebounce, 0)
	defer s.Close()

	s.SetQuery("cat")
	waitFor(t, func() bool { return sink.count("failed") == 1 }, "failure event")

	if sink.count("match:") != 0 {
		t.Errorf("failed scan delivered matches: %v", sink.snapshot())
	}
}

func TestSessionClose(t *testing.T) {
	src := newMemSource([2]string{"a.md", "cat"})
	src.readWait = make(chan struct{})

	sink := &recordingSink{}
	s := NewSession(src, sink, testDebounce, 0)

	s.SetQuery("cat")
	waitFor(t, func() bool { return sink.count("started:") == 1 }, "scan start")

	// Close must cancel the blocked scan and return; a hang fails the test
	// via the suite timeout.
	s.Close()

	// Safe to call twice.
	s.Close()

	if sink.count("match:") != 0 {
		t.Errorf("closed session delivered results: %v", sink.snapshot())
	}
}
