// Package protocol defines the wire format shared with the financial
// assistant backend. The shapes mirror the backend's JSON responses
// exactly; nothing here carries client-side state.
package protocol

// Status values carried in every response envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Intent action and conversation subtype markers.
const (
	ActionConversation = "conversation"
	ConversationHello  = "hello"
)

// AskRequest is the body of a question submission.
type AskRequest struct {
	Question string `json:"question"`
}

// Intent describes how the backend classified the question.
type Intent struct {
	Entity           string   `json:"entity,omitempty"`
	Action           string   `json:"action"`
	Years            []string `json:"years,omitempty"`
	Confidence       *float64 `json:"confidence,omitempty"`
	ConversationType string   `json:"conversation_type,omitempty"`
}

// TableData is the optional tabular artifact of a data reply.
type TableData struct {
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows,omitempty"`
}

// AskResponse is the full response envelope. A success envelope has
// Status "success" and an Answer; an error envelope has Status
// "error" and an optional Error string. Both may carry suggestions.
type AskResponse struct {
	Status      string         `json:"status"`
	Answer      string         `json:"answer,omitempty"`
	SQL         string         `json:"sql,omitempty"`
	Error       string         `json:"error,omitempty"`
	Intent      *Intent        `json:"intent,omitempty"`
	Data        *TableData     `json:"data,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// IsConversational reports whether the backend marked the reply as
// conversation rather than data.
func (r *AskResponse) IsConversational() bool {
	return r.Intent != nil && r.Intent.Action == ActionConversation
}

// IsGreeting reports whether a conversational reply is the greeting
// subtype, which triggers the delayed follow-up message.
func (r *AskResponse) IsGreeting() bool {
	return r.IsConversational() && r.Intent.ConversationType == ConversationHello
}

// FAQ is one static question/answer entry.
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// FAQResponse is the envelope of the FAQ listing endpoint.
type FAQResponse struct {
	FAQs  []FAQ `json:"faqs"`
	Total int   `json:"total"`
}

// Health is the response of the health probe endpoint.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Healthy reports whether the backend declared itself fully healthy.
func (h *Health) Healthy() bool { return h.Status == "healthy" }
