package faq

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syedisami/financial-ai-assistant/internal/protocol"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("faqs:\n  - question: q1\n    answer: a1\n"), 0644))

	reloads := make(chan []protocol.FAQ, 4)
	w, err := NewWatcher(path, func(entries []protocol.FAQ) {
		reloads <- entries
	}, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("faqs:\n  - question: q1\n    answer: a1\n  - question: q2\n    answer: a2\n"), 0644))

	select {
	case entries := <-reloads:
		require.Len(t, entries, 2)
		require.Equal(t, "q2", entries[1].Question)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherCloseAfterFailedStart(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "absent.yaml"), func([]protocol.FAQ) {}, zap.NewNop())
	require.NoError(t, err)
	require.Error(t, w.Start(context.Background()))

	closed := make(chan struct{})
	go func() {
		w.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked after a failed Start")
	}
}

func TestWatcherKeepsCorpusOnBadReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("faqs:\n  - question: q1\n    answer: a1\n"), 0644))

	reloads := make(chan []protocol.FAQ, 4)
	w, err := NewWatcher(path, func(entries []protocol.FAQ) {
		reloads <- entries
	}, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	// A broken file must not reach the callback.
	require.NoError(t, os.WriteFile(path, []byte("faqs: [unclosed"), 0644))

	select {
	case <-reloads:
		t.Fatal("callback fired for an unparseable file")
	case <-time.After(500 * time.Millisecond):
	}
}
