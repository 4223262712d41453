// Package chat holds the core conversation state: the append-only
// timeline of messages, the active suggestion set, and the session
// state machine that gates one request/response exchange at a time.
// The package is UI-agnostic; presentation adapters consume the event
// stream emitted by Session.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single timeline entry. Messages are immutable once
// appended; the only way to remove one is the bulk Clear.
type Message struct {
	ID         string
	Order      int
	Sender     Sender
	Content    string
	Confidence *float64 // bot messages only, in [0,1]
	Table      *Table   // bot messages only, nil unless the reply carried rows
	Time       time.Time
}

// HasTable reports whether a tabular artifact is attached.
func (m Message) HasTable() bool {
	return m.Table != nil && len(m.Table.Rows) > 0
}

// Table is a tabular artifact attached to a bot message.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Timeline is the ordered, append-only message sequence. It is not
// safe for concurrent use on its own; Session serializes access.
type Timeline struct {
	messages []Message
	nextOrd  int
}

// Append creates a message with the next monotonic order number and
// returns the stored copy.
func (t *Timeline) Append(sender Sender, content string, confidence *float64, table *Table) Message {
	msg := Message{
		ID:         uuid.NewString(),
		Order:      t.nextOrd,
		Sender:     sender,
		Content:    content,
		Confidence: confidence,
		Table:      table,
		Time:       time.Now(),
	}
	t.nextOrd++
	t.messages = append(t.messages, msg)
	return msg
}

// Messages returns a copy of the current timeline.
func (t *Timeline) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the timeline.
func (t *Timeline) Len() int { return len(t.messages) }

// Clear empties the timeline. Order numbering restarts from zero.
func (t *Timeline) Clear() {
	t.messages = nil
	t.nextOrd = 0
}

// DefaultSuggestions returns the canonical four-item suggestion set
// used to seed an empty timeline and to reseed after a bulk clear.
func DefaultSuggestions() []string {
	return []string{
		"What is the revenue for 2024-25?",
		"Show me operating expenses for 2025-26",
		"Compare revenue between 2024-25 and 2025-26",
		"What are the total assets for 2024-25?",
	}
}

// ErrorFallbackSuggestions returns the canonical three-item set used
// when an exchange fails.
func ErrorFallbackSuggestions() []string {
	return DefaultSuggestions()[:3]
}
