package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// TokenSource supplies the anti-forgery token sent with every ask
// request.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a fixed token, used in tests and for backends with
// CSRF protection disabled.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token(context.Context) string { return string(t) }

// PageTokenSource extracts the token from the chat page: the hidden
// csrfmiddlewaretoken form input first, then the csrf-token meta tag.
// When neither is present it logs a warning once and yields the empty
// token. The lookup runs at most once per process.
type PageTokenSource struct {
	PageURL string
	Client  *http.Client
	Logger  *zap.Logger

	once  sync.Once
	token string
}

// Token implements TokenSource.
func (p *PageTokenSource) Token(ctx context.Context) string {
	p.once.Do(func() {
		token, err := p.fetch(ctx)
		if err != nil {
			p.Logger.Warn("CSRF token lookup failed, sending empty token",
				zap.String("page", p.PageURL),
				zap.Error(err))
			return
		}
		p.token = token
	})
	return p.token
}

func (p *PageTokenSource) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.PageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat page returned HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse chat page: %w", err)
	}

	if token := findToken(doc); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("no csrfmiddlewaretoken input or csrf-token meta tag in page")
}

// findToken walks the document for the form field, falling back to
// the meta tag. The form field wins when both are present.
func findToken(doc *html.Node) string {
	if v := findAttr(doc, "input", "name", "csrfmiddlewaretoken", "value"); v != "" {
		return v
	}
	return findAttr(doc, "meta", "name", "csrf-token", "content")
}

func findAttr(n *html.Node, element, matchKey, matchVal, wantKey string) string {
	if n.Type == html.ElementNode && n.Data == element {
		matched := false
		want := ""
		for _, a := range n.Attr {
			if a.Key == matchKey && strings.EqualFold(a.Val, matchVal) {
				matched = true
			}
			if a.Key == wantKey {
				want = a.Val
			}
		}
		if matched && want != "" {
			return want
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v := findAttr(c, element, matchKey, matchVal, wantKey); v != "" {
			return v
		}
	}
	return ""
}
