package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestRecordAndRecent(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	require.NoError(t, h.Record(ctx, "What is the revenue for 2024-25?", "Revenue was $1.2M.", 0.95, 800*time.Millisecond))
	require.NoError(t, h.Record(ctx, "Show me operating expenses for 2025-26", "Expenses were $900K.", 0.92, 1200*time.Millisecond))

	got, err := h.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	require.Equal(t, "Show me operating expenses for 2025-26", got[0].Question)
	require.Equal(t, "Expenses were $900K.", got[0].Answer)
	require.Equal(t, 0.92, got[0].Confidence)
	require.Equal(t, 1200*time.Millisecond, got[0].Elapsed)
	require.NotEmpty(t, got[0].ID)

	require.Equal(t, "What is the revenue for 2024-25?", got[1].Question)
}

func TestRecentLimit(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Record(ctx, "question", "answer", 0.95, time.Second))
	}

	got, err := h.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestRecentEmpty(t *testing.T) {
	h := openTestHistory(t)

	got, err := h.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	h, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, h.Close())
}
