// Package render maps one success payload into timeline entries: the
// bot message, its optional tabular artifact, the displayed
// confidence, and the suggestion update.
package render

import (
	"time"

	"go.uber.org/zap"

	"github.com/syedisami/financial-ai-assistant/internal/chat"
	"github.com/syedisami/financial-ai-assistant/internal/protocol"
)

const (
	// DefaultConfidence substitutes a missing server confidence.
	DefaultConfidence = 0.95
	// ConfidenceFloor is the display boundary: anything reported
	// below it is snapped up to DefaultConfidence, not clamped.
	ConfidenceFloor = 0.9
	// FollowUpConfidence is attached to the greeting follow-up.
	FollowUpConfidence = 1.0
)

// FollowUpText is the fixed greeting follow-up message.
const FollowUpText = "Feel free to ask about revenue, expenses, assets, or cash flow. " +
	"For example: \"What is the revenue for 2024-25?\""

// Renderer converts success envelopes into sink calls.
type Renderer struct {
	followUpDelay time.Duration
	logger        *zap.Logger
}

// NewRenderer creates a renderer. followUpDelay is the fixed wait
// before the greeting follow-up message appears.
func NewRenderer(followUpDelay time.Duration, logger *zap.Logger) *Renderer {
	return &Renderer{followUpDelay: followUpDelay, logger: logger}
}

// Render emits one bot message for the payload, attaching a table
// when the reply carried rows, and replaces the suggestion set when
// the payload brought a non-empty one. A greeting reply additionally
// schedules the fixed follow-up, independent of further user action.
func (r *Renderer) Render(resp *protocol.AskResponse, sink chat.Sink) {
	confidence := DisplayConfidence(resp.Intent)

	if resp.IsConversational() {
		sink.AppendBot(resp.Answer, confidence, nil)
		if resp.IsGreeting() {
			time.AfterFunc(r.followUpDelay, func() {
				sink.AppendBot(FollowUpText, FollowUpConfidence, nil)
			})
		}
	} else {
		table := BuildTable(resp.Data)
		sink.AppendBot(resp.Answer, confidence, table)
		if table != nil {
			r.logger.Debug("attached table",
				zap.Int("headers", len(table.Headers)),
				zap.Int("rows", len(table.Rows)))
		}
	}

	if len(resp.Suggestions) > 0 {
		sink.ReplaceSuggestions(resp.Suggestions)
	}
}

// DisplayConfidence computes the confidence shown to the user. The
// reported value defaults to DefaultConfidence when absent; a value
// below ConfidenceFloor is replaced by DefaultConfidence rather than
// clamped to the floor.
func DisplayConfidence(intent *protocol.Intent) float64 {
	c := DefaultConfidence
	if intent != nil && intent.Confidence != nil {
		c = *intent.Confidence
	}
	if c < ConfidenceFloor {
		return DefaultConfidence
	}
	return c
}

// BuildTable converts payload table data into a timeline table. It
// returns nil unless at least one row is present. Rows shorter than
// the header count are padded with empty cells.
func BuildTable(data *protocol.TableData) *chat.Table {
	if data == nil || len(data.Rows) == 0 {
		return nil
	}

	headers := make([]string, len(data.Headers))
	copy(headers, data.Headers)

	width := len(headers)
	for _, row := range data.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	rows := make([][]string, len(data.Rows))
	for i, row := range data.Rows {
		cells := make([]string, width)
		for j := range cells {
			if j < len(row) {
				cells[j] = row[j]
			}
		}
		rows[i] = cells
	}
	return &chat.Table{Headers: headers, Rows: rows}
}
