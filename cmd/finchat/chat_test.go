package main

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/syedisami/financial-ai-assistant/internal/chat"
	"github.com/syedisami/financial-ai-assistant/internal/config"
)

// Event publication must never block the session, even when the TUI
// has quit and nothing drains the queue anymore.
func TestEventPublicationNeverBlocks(t *testing.T) {
	cfg = config.DefaultConfig()
	logger = zap.NewNop()

	session := chat.NewSession(nil)
	m := initChat(session, newClient(), "")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 2*cap(m.events); i++ {
			session.ReplaceSuggestions([]string{"What is the revenue for 2024-25?"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event publication blocked with no consumer")
	}
}
