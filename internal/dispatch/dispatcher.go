package dispatch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/syedisami/financial-ai-assistant/internal/chat"
	"github.com/syedisami/financial-ai-assistant/internal/protocol"
)

// Fixed user-facing texts for the failure branches.
const (
	NetworkErrorText        = "Sorry, I encountered a network error. Please try again."
	ServerErrorFallbackText = "Sorry, something went wrong. Please try again."
)

// ErrorConfidence is attached to every synthesized error message.
const ErrorConfidence = 0.1

// Asker runs the raw HTTP exchange. Client is the production
// implementation.
type Asker interface {
	Ask(ctx context.Context, question string) (*protocol.AskResponse, error)
}

// Renderer interprets a success envelope into timeline entries.
type Renderer interface {
	Render(resp *protocol.AskResponse, sink chat.Sink)
}

// Dispatcher runs one exchange and maps every failure shape onto a
// fixed outcome. It implements chat.Exchanger.
type Dispatcher struct {
	client   Asker
	renderer Renderer
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(client Asker, renderer Renderer, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{client: client, renderer: renderer, logger: logger}
}

// Exchange implements chat.Exchanger. The typing placeholder is shown
// for the whole exchange and hidden exactly once on every branch.
// Nothing escapes this boundary: every failure becomes either a bot
// message or a log line.
func (d *Dispatcher) Exchange(ctx context.Context, question string, sink chat.Sink) {
	sink.ShowTyping()
	defer sink.HideTyping()

	resp, err := d.client.Ask(ctx, question)
	if err != nil {
		d.fail(err, sink)
		return
	}

	if resp.Status == protocol.StatusError {
		text := resp.Error
		if text == "" {
			text = ServerErrorFallbackText
		}
		d.logger.Info("server reported error", zap.String("error", resp.Error))
		sink.AppendBot(text, ErrorConfidence, nil)
		sink.ReplaceSuggestions(chat.ErrorFallbackSuggestions())
		return
	}

	d.renderer.Render(resp, sink)
}

func (d *Dispatcher) fail(err error, sink chat.Sink) {
	var httpErr *HTTPError
	var payloadErr *PayloadError

	switch {
	case errors.As(err, &payloadErr):
		// Cosmetic parsing gaps stay out of the timeline.
		d.logger.Warn("swallowing malformed success payload", zap.Error(payloadErr))

	case errors.As(err, &httpErr):
		d.logger.Warn("backend HTTP error",
			zap.Int("status", httpErr.StatusCode),
			zap.String("body", httpErr.Body))
		sink.AppendBot(
			fmt.Sprintf("Sorry, the server returned an error (HTTP %d): %s", httpErr.StatusCode, httpErr.Body),
			ErrorConfidence, nil)
		sink.ReplaceSuggestions(chat.ErrorFallbackSuggestions())

	default:
		d.logger.Warn("transport failure", zap.Error(err))
		sink.AppendBot(NetworkErrorText, ErrorConfidence, nil)
	}
}
