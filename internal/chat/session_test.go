package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// scriptedExchanger lets tests control when an exchange terminates.
type scriptedExchanger struct {
	release chan struct{} // closed by the test to let Exchange return
	script  func(sink Sink)
}

func (e *scriptedExchanger) Exchange(ctx context.Context, question string, sink Sink) {
	sink.ShowTyping()
	defer sink.HideTyping()
	if e.script != nil {
		e.script(sink)
	}
	if e.release != nil {
		<-e.release
	}
}

// collectEvents subscribes and returns the channel the session's
// events land on.
func collectEvents(s *Session) <-chan Event {
	ch := make(chan Event, 64)
	s.Subscribe(func(ev Event) { ch <- ev })
	return ch
}

func waitFor[T Event](t *testing.T, ch <-chan Event) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			if typed, ok := ev.(T); ok {
				return typed
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event")
		}
	}
}

func TestSubmitAppendsUserMessageSynchronously(t *testing.T) {
	defer goleak.VerifyNone(t)

	ex := &scriptedExchanger{}
	s := NewSession(ex)
	ch := collectEvents(s)

	require.True(t, s.Submit(context.Background(), "  What is the revenue for 2024-25?  "))

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, SenderUser, msgs[0].Sender)
	require.Equal(t, "What is the revenue for 2024-25?", msgs[0].Content)

	waitFor[ExchangeFinished](t, ch)
	require.Equal(t, StateIdle, s.State())
}

func TestSubmitRejectsEmptyInput(t *testing.T) {
	s := NewSession(&scriptedExchanger{})
	require.False(t, s.Submit(context.Background(), ""))
	require.False(t, s.Submit(context.Background(), "   \n\t "))
	require.Empty(t, s.Messages())
}

func TestSubmitWhileDispatchingIsNoOp(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	ex := &scriptedExchanger{release: release}
	s := NewSession(ex)
	ch := collectEvents(s)

	require.True(t, s.Submit(context.Background(), "first"))
	waitFor[TypingShown](t, ch)

	// Second submission while the exchange is outstanding leaves the
	// timeline untouched.
	require.False(t, s.Submit(context.Background(), "second"))
	require.Len(t, s.Messages(), 1)
	require.Equal(t, StateDispatching, s.State())

	close(release)
	waitFor[ExchangeFinished](t, ch)

	// Idle again: the next submission is accepted.
	ex.release = nil
	require.True(t, s.Submit(context.Background(), "third"))
	waitFor[ExchangeFinished](t, ch)
	require.Len(t, s.Messages(), 2)
}

func TestExchangeFinishedOnEveryPath(t *testing.T) {
	defer goleak.VerifyNone(t)

	ex := &scriptedExchanger{script: func(sink Sink) {
		sink.AppendBot("answer", 0.95, nil)
	}}
	s := NewSession(ex)
	ch := collectEvents(s)

	require.True(t, s.Submit(context.Background(), "question"))

	var shown, hidden, finished int
	deadline := time.After(2 * time.Second)
	for finished == 0 {
		select {
		case ev := <-ch:
			switch ev.(type) {
			case TypingShown:
				shown++
			case TypingHidden:
				hidden++
			case ExchangeFinished:
				finished++
			}
		case <-deadline:
			t.Fatal("timed out")
		}
	}

	require.Equal(t, 1, shown)
	require.Equal(t, 1, hidden)
	require.Equal(t, 1, finished)
}

func TestExactlyOneBotMessagePerSubmission(t *testing.T) {
	ex := &scriptedExchanger{script: func(sink Sink) {
		sink.AppendBot("the answer", 0.97, nil)
	}}
	s := NewSession(ex)
	ch := collectEvents(s)

	require.True(t, s.Submit(context.Background(), "q"))
	waitFor[ExchangeFinished](t, ch)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, SenderUser, msgs[0].Sender)
	require.Equal(t, SenderBot, msgs[1].Sender)
	require.NotNil(t, msgs[1].Confidence)
	require.InDelta(t, 0.97, *msgs[1].Confidence, 1e-9)
}

func TestClearResetsTimelineAndSuggestions(t *testing.T) {
	ex := &scriptedExchanger{script: func(sink Sink) {
		sink.AppendBot("answer", 0.95, nil)
		sink.ReplaceSuggestions([]string{"follow-up"})
	}}
	s := NewSession(ex)
	ch := collectEvents(s)

	require.True(t, s.Submit(context.Background(), "q"))
	waitFor[ExchangeFinished](t, ch)
	require.Equal(t, []string{"follow-up"}, s.Suggestions())

	s.Clear()
	require.Empty(t, s.Messages())
	require.Equal(t, DefaultSuggestions(), s.Suggestions())

	waitFor[TimelineCleared](t, ch)
	replaced := waitFor[SuggestionsReplaced](t, ch)
	require.Equal(t, DefaultSuggestions(), replaced.Suggestions)
}

func TestSeedOnlyWhenTimelineEmpty(t *testing.T) {
	s := NewSession(&scriptedExchanger{})

	s.Seed()
	require.Equal(t, DefaultSuggestions(), s.Suggestions())

	ch := collectEvents(s)
	require.True(t, s.Submit(context.Background(), "q"))
	waitFor[ExchangeFinished](t, ch)

	s.ReplaceSuggestions([]string{"custom"})
	s.Seed()
	require.Equal(t, []string{"custom"}, s.Suggestions())
}

type memoryRecorder struct {
	mu       sync.Mutex
	question string
	answer   string
	conf     float64
	calls    int
}

func (r *memoryRecorder) Record(ctx context.Context, question, answer string, confidence float64, elapsed time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.question = question
	r.answer = answer
	r.conf = confidence
	r.calls++
	return nil
}

func TestRecorderReceivesCompletedExchange(t *testing.T) {
	ex := &scriptedExchanger{script: func(sink Sink) {
		sink.AppendBot("recorded answer", 0.95, nil)
	}}
	s := NewSession(ex)
	rec := &memoryRecorder{}
	s.SetRecorder(rec)
	ch := collectEvents(s)

	require.True(t, s.Submit(context.Background(), "recorded question"))
	waitFor[ExchangeFinished](t, ch)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Equal(t, 1, rec.calls)
	require.Equal(t, "recorded question", rec.question)
	require.Equal(t, "recorded answer", rec.answer)
	require.InDelta(t, 0.95, rec.conf, 1e-9)
}

func TestRecorderSkippedWhenNoBotMessage(t *testing.T) {
	// The swallowed-payload branch appends nothing; nothing to record.
	ex := &scriptedExchanger{}
	s := NewSession(ex)
	rec := &memoryRecorder{}
	s.SetRecorder(rec)
	ch := collectEvents(s)

	require.True(t, s.Submit(context.Background(), "q"))
	waitFor[ExchangeFinished](t, ch)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Equal(t, 0, rec.calls)
}
