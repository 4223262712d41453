package faq

import (
	"sync"
	"time"

	"github.com/syedisami/financial-ai-assistant/internal/protocol"
)

// Filter debounces filter passes over the FAQ corpus: rapid input
// triggers at most one pass per quiescence window. The timer is owned
// by the filter and cancellable, so tests can assert exact pass
// counts.
type Filter struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	entries  []protocol.FAQ
	pending  string
	onResult func(term string, matches []protocol.FAQ)
}

// NewFilter creates a filter over the given entries. onResult is
// invoked with the matching entries once input has been quiescent for
// the full delay.
func NewFilter(entries []protocol.FAQ, delay time.Duration, onResult func(string, []protocol.FAQ)) *Filter {
	f := &Filter{delay: delay, onResult: onResult}
	f.SetEntries(entries)
	return f
}

// SetEntries replaces the corpus, e.g. after a file reload. A pending
// pass picks up the new corpus.
func (f *Filter) SetEntries(entries []protocol.FAQ) {
	set := make([]protocol.FAQ, len(entries))
	copy(set, entries)
	f.mu.Lock()
	f.entries = set
	f.mu.Unlock()
}

// Entries returns a copy of the current corpus.
func (f *Filter) Entries() []protocol.FAQ {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]protocol.FAQ, len(f.entries))
	copy(out, f.entries)
	return out
}

// Input records a new filter term and restarts the quiescence timer.
// Only the last term of a rapid burst produces a pass.
func (f *Filter) Input(term string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pending = term
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.delay, f.run)
}

// Immediate runs the pass for the term right away, cancelling any
// pending timer.
func (f *Filter) Immediate(term string) {
	f.mu.Lock()
	f.pending = term
	f.mu.Unlock()
	f.Cancel()
	f.run()
}

// Cancel drops any pending pass.
func (f *Filter) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Filter) run() {
	f.mu.Lock()
	term := f.pending
	entries := f.entries
	onResult := f.onResult
	f.mu.Unlock()

	if onResult != nil {
		onResult(term, Match(entries, term))
	}
}
