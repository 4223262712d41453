package chat

import (
	"context"
	"strings"
	"sync"
	"time"
)

// State is the chat-side submission state.
type State int

const (
	// StateIdle accepts new submissions.
	StateIdle State = iota
	// StateDispatching has one exchange outstanding; further submit
	// calls are no-ops until it terminates.
	StateDispatching
)

// Sink receives the timeline mutations produced while an exchange is
// in flight. Session is the canonical implementation; the dispatcher
// and renderer only ever talk to this interface.
type Sink interface {
	AppendBot(content string, confidence float64, table *Table)
	ReplaceSuggestions(suggestions []string)
	ShowTyping()
	HideTyping()
}

// Exchanger runs one complete request/response exchange for a user
// question, writing every outcome through the sink. Implementations
// must not panic or return before the typing placeholder is hidden.
type Exchanger interface {
	Exchange(ctx context.Context, question string, sink Sink)
}

// Recorder persists a completed exchange. Optional.
type Recorder interface {
	Record(ctx context.Context, question, answer string, confidence float64, elapsed time.Duration) error
}

// Session owns the timeline, the active suggestion set, and the
// Idle/Dispatching state machine. All mutations are serialized by an
// internal mutex; events are emitted outside the lock.
type Session struct {
	mu          sync.Mutex
	timeline    Timeline
	suggestions []string
	state       State

	exchanger Exchanger
	recorder  Recorder
	notify    func(Event)

	// capture of the current exchange, for the recorder
	pendingQuestion string
	pendingStart    time.Time
	lastAnswer      string
	lastConfidence  float64
	answered        bool
}

// NewSession creates a session around the given exchanger.
func NewSession(exchanger Exchanger) *Session {
	return &Session{exchanger: exchanger}
}

// Subscribe registers the single event consumer. The handler runs on
// whichever goroutine produced the event and must not call back into
// the session.
func (s *Session) Subscribe(fn func(Event)) {
	s.mu.Lock()
	s.notify = fn
	s.mu.Unlock()
}

// SetRecorder attaches an optional exchange recorder.
func (s *Session) SetRecorder(r Recorder) {
	s.mu.Lock()
	s.recorder = r
	s.mu.Unlock()
}

// State returns the current submission state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the timeline.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.Messages()
}

// Suggestions returns a copy of the active suggestion set.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// Seed installs the canonical default suggestions when the timeline is
// empty. Called once at startup.
func (s *Session) Seed() {
	s.mu.Lock()
	empty := s.timeline.Len() == 0
	s.mu.Unlock()
	if empty {
		s.ReplaceSuggestions(DefaultSuggestions())
	}
}

// Submit stages one exchange for the given text. It returns false
// without touching the timeline when the trimmed text is empty or an
// exchange is already outstanding. On acceptance the user message is
// appended synchronously and the exchange runs in the background;
// ExchangeFinished is emitted on every termination path.
func (s *Session) Submit(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return false
	}
	s.state = StateDispatching
	s.pendingQuestion = text
	s.pendingStart = time.Now()
	s.answered = false
	msg := s.timeline.Append(SenderUser, text, nil, nil)
	s.mu.Unlock()

	s.emit(MessageAppended{Message: msg})

	go func() {
		defer s.finish(ctx)
		s.exchanger.Exchange(ctx, text, s)
	}()
	return true
}

func (s *Session) finish(ctx context.Context) {
	s.mu.Lock()
	s.state = StateIdle
	recorder := s.recorder
	question := s.pendingQuestion
	answer := s.lastAnswer
	confidence := s.lastConfidence
	elapsed := time.Since(s.pendingStart)
	answered := s.answered
	s.mu.Unlock()

	if recorder != nil && answered {
		// Recording failures never surface into the chat flow.
		_ = recorder.Record(ctx, question, answer, confidence, elapsed)
	}
	s.emit(ExchangeFinished{})
}

// Clear wipes the timeline and restores the canonical default
// suggestions in one action.
func (s *Session) Clear() {
	s.mu.Lock()
	s.timeline.Clear()
	s.mu.Unlock()
	s.emit(TimelineCleared{})
	s.ReplaceSuggestions(DefaultSuggestions())
}

// AppendBot implements Sink.
func (s *Session) AppendBot(content string, confidence float64, table *Table) {
	c := confidence
	s.mu.Lock()
	msg := s.timeline.Append(SenderBot, content, &c, table)
	if s.state == StateDispatching {
		s.lastAnswer = content
		s.lastConfidence = confidence
		s.answered = true
	}
	s.mu.Unlock()
	s.emit(MessageAppended{Message: msg})
}

// ReplaceSuggestions implements Sink.
func (s *Session) ReplaceSuggestions(suggestions []string) {
	set := make([]string, len(suggestions))
	copy(set, suggestions)
	s.mu.Lock()
	s.suggestions = set
	s.mu.Unlock()
	s.emit(SuggestionsReplaced{Suggestions: set})
}

// ShowTyping implements Sink.
func (s *Session) ShowTyping() { s.emit(TypingShown{}) }

// HideTyping implements Sink.
func (s *Session) HideTyping() { s.emit(TypingHidden{}) }

func (s *Session) emit(ev Event) {
	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()
	if notify != nil {
		notify(ev)
	}
}
