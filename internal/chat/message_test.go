package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimelineAppendOrder(t *testing.T) {
	var tl Timeline

	first := tl.Append(SenderUser, "hello", nil, nil)
	second := tl.Append(SenderBot, "hi there", nil, nil)
	third := tl.Append(SenderUser, "what is revenue?", nil, nil)

	require.Equal(t, 0, first.Order)
	require.Equal(t, 1, second.Order)
	require.Equal(t, 2, third.Order)
	require.Equal(t, 3, tl.Len())

	msgs := tl.Messages()
	for i := 1; i < len(msgs); i++ {
		require.Greater(t, msgs[i].Order, msgs[i-1].Order)
	}
}

func TestTimelineMessagesReturnsCopy(t *testing.T) {
	var tl Timeline
	tl.Append(SenderUser, "hello", nil, nil)

	msgs := tl.Messages()
	msgs[0].Content = "mutated"

	require.Equal(t, "hello", tl.Messages()[0].Content)
}

func TestTimelineClearRestartsOrdering(t *testing.T) {
	var tl Timeline
	tl.Append(SenderUser, "one", nil, nil)
	tl.Append(SenderBot, "two", nil, nil)

	tl.Clear()
	require.Equal(t, 0, tl.Len())

	msg := tl.Append(SenderUser, "fresh", nil, nil)
	require.Equal(t, 0, msg.Order)
}

func TestCanonicalSuggestionSets(t *testing.T) {
	def := DefaultSuggestions()
	require.Len(t, def, 4)

	fallback := ErrorFallbackSuggestions()
	require.Len(t, fallback, 3)
	require.Equal(t, def[:3], fallback)

	// Returned slices are independent copies of the canonical sets.
	def[0] = "mutated"
	require.NotEqual(t, "mutated", DefaultSuggestions()[0])
}

func TestMessageHasTable(t *testing.T) {
	msg := Message{}
	require.False(t, msg.HasTable())

	msg.Table = &Table{Headers: []string{"Name"}}
	require.False(t, msg.HasTable())

	msg.Table.Rows = [][]string{{"A"}}
	require.True(t, msg.HasTable())
}
