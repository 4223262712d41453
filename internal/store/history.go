// Package store keeps the append-only conversation log: one row per
// completed exchange. The log is an audit record; the chat timeline
// is never restored from it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Exchange is one recorded question/answer pair.
type Exchange struct {
	ID         string
	Question   string
	Answer     string
	Confidence float64
	Elapsed    time.Duration
	CreatedAt  time.Time
}

// History is the SQLite-backed conversation log.
type History struct {
	db *sql.DB
	mu sync.Mutex
}

// Open initializes the log database at the given path.
func Open(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	h := &History{db: db}
	if err := h.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exchanges (
		id TEXT PRIMARY KEY,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		confidence REAL NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_exchanges_created ON exchanges(created_at);
	`
	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Record implements chat.Recorder.
func (h *History) Record(ctx context.Context, question, answer string, confidence float64, elapsed time.Duration) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.db.ExecContext(ctx,
		`INSERT INTO exchanges (id, question, answer, confidence, elapsed_ms) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), question, answer, confidence, elapsed.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to record exchange: %w", err)
	}
	return nil
}

// Recent returns the most recent exchanges, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]Exchange, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rows, err := h.db.QueryContext(ctx,
		`SELECT id, question, answer, confidence, elapsed_ms, created_at
		 FROM exchanges ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Exchange
	for rows.Next() {
		var e Exchange
		var elapsedMS int64
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &e.Confidence, &elapsedMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the database.
func (h *History) Close() error { return h.db.Close() }
