// Package dispatch issues the single in-flight request/response
// exchange against the financial assistant backend and normalizes
// every failure shape into the fixed error taxonomy.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/syedisami/financial-ai-assistant/internal/protocol"
)

// ClientConfig configures the backend HTTP client.
type ClientConfig struct {
	BaseURL    string
	AskPath    string
	FAQPath    string
	HealthPath string
	Timeout    time.Duration
}

// Client talks to the backend API. It carries no exchange state; the
// single-in-flight guarantee lives in chat.Session.
type Client struct {
	baseURL string
	ask     string
	faqs    string
	health  string
	http    *http.Client
	csrf    TokenSource
	logger  *zap.Logger
}

// NewClient creates a backend client.
func NewClient(cfg ClientConfig, csrf TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		ask:     cfg.AskPath,
		faqs:    cfg.FAQPath,
		health:  cfg.HealthPath,
		http:    &http.Client{Timeout: cfg.Timeout},
		csrf:    csrf,
		logger:  logger,
	}
}

// Ask submits one question. Failures map onto the taxonomy:
// *NetworkError for transport failures, *HTTPError for non-2xx
// statuses, *PayloadError for undecodable 2xx bodies. A decoded
// envelope with status "error" is returned as a value, not an error;
// the dispatcher classifies it.
func (c *Client) Ask(ctx context.Context, question string) (*protocol.AskResponse, error) {
	body, err := json.Marshal(protocol.AskRequest{Question: question})
	if err != nil {
		return nil, &PayloadError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.ask, bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRFToken", c.csrf.Token(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var envelope protocol.AskResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &PayloadError{Err: err}
	}
	if envelope.Status != protocol.StatusSuccess && envelope.Status != protocol.StatusError {
		return nil, &PayloadError{Err: fmt.Errorf("unknown envelope status %q", envelope.Status)}
	}
	return &envelope, nil
}

// FAQs fetches the static question/answer list.
func (c *Client) FAQs(ctx context.Context) ([]protocol.FAQ, error) {
	var out protocol.FAQResponse
	if err := c.getJSON(ctx, c.faqs, &out); err != nil {
		return nil, err
	}
	return out.FAQs, nil
}

// Health probes the backend health endpoint.
func (c *Client) Health(ctx context.Context) (*protocol.Health, error) {
	var out protocol.Health
	if err := c.getJSON(ctx, c.health, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &PayloadError{Err: err}
	}
	c.logger.Debug("backend GET ok", zap.String("path", path))
	return nil
}
