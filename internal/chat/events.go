package chat

// Event is a structured timeline event. The presentation adapter
// consumes these instead of reaching into Session state, so the state
// machine stays decoupled from any concrete UI toolkit.
type Event interface {
	event()
}

// MessageAppended is emitted for every message added to the timeline,
// whether from the user, the renderer, or an error branch.
type MessageAppended struct {
	Message Message
}

// SuggestionsReplaced is emitted when the active chip set is swapped
// wholesale. The previous set is always discarded in full.
type SuggestionsReplaced struct {
	Suggestions []string
}

// TypingShown marks the start of an exchange's typing placeholder.
type TypingShown struct{}

// TypingHidden marks its removal. Exactly one TypingHidden follows
// every TypingShown, on every termination branch.
type TypingHidden struct{}

// TimelineCleared is emitted by the bulk clear action.
type TimelineCleared struct{}

// ExchangeFinished is emitted after an exchange has fully terminated,
// success or failure. Input re-enabling keys off this event.
type ExchangeFinished struct{}

func (MessageAppended) event()     {}
func (SuggestionsReplaced) event() {}
func (TypingShown) event()         {}
func (TypingHidden) event()        {}
func (TimelineCleared) event()     {}
func (ExchangeFinished) event()    {}
