package faq

import (
	"context"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/syedisami/financial-ai-assistant/internal/protocol"
)

// Watcher reloads the local FAQ file whenever it changes on disk and
// hands the fresh corpus to onReload. Reload failures keep the
// previous corpus.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	onReload func([]protocol.FAQ)
	logger   *zap.Logger
	running  bool
	done     chan struct{}
}

// NewWatcher creates a watcher for the given FAQ file.
func NewWatcher(path string, onReload func([]protocol.FAQ), logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fsw,
		path:     path,
		onReload: onReload,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the watcher runs until the
// context is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	// running flips only once the path is registered, so Close never
	// waits for a goroutine that was never launched.
	if err := w.watcher.Add(w.path); err != nil {
		return err
	}
	w.running = true

	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			entries, err := LoadFile(w.path)
			if err != nil {
				w.logger.Warn("FAQ reload failed, keeping previous entries",
					zap.String("path", w.path),
					zap.Error(err))
				continue
			}
			w.logger.Debug("FAQ file reloaded",
				zap.String("path", w.path),
				zap.Int("entries", len(entries)))
			w.onReload(entries)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("FAQ watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if running {
		<-w.done
	}
	return err
}
