package dispatch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pageSource(t *testing.T, body string) *PageTokenSource {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return &PageTokenSource{
		PageURL: srv.URL + "/chatbot/chat/",
		Client:  &http.Client{Timeout: 5 * time.Second},
		Logger:  zap.NewNop(),
	}
}

func TestPageTokenFromFormField(t *testing.T) {
	src := pageSource(t, `<html><body>
		<form><input type="hidden" name="csrfmiddlewaretoken" value="form-token"></form>
		<meta name="csrf-token" content="meta-token">
	</body></html>`)

	require.Equal(t, "form-token", src.Token(context.Background()))
}

func TestPageTokenFallsBackToMetaTag(t *testing.T) {
	src := pageSource(t, `<html><head>
		<meta name="csrf-token" content="meta-token">
	</head><body></body></html>`)

	require.Equal(t, "meta-token", src.Token(context.Background()))
}

func TestPageTokenEmptyWhenNeitherPresent(t *testing.T) {
	src := pageSource(t, `<html><body><p>no tokens here</p></body></html>`)

	require.Equal(t, "", src.Token(context.Background()))
}

func TestPageTokenFetchedOnce(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`<input name="csrfmiddlewaretoken" value="tok">`))
	}))
	t.Cleanup(srv.Close)

	src := &PageTokenSource{
		PageURL: srv.URL,
		Client:  &http.Client{Timeout: 5 * time.Second},
		Logger:  zap.NewNop(),
	}

	require.Equal(t, "tok", src.Token(context.Background()))
	require.Equal(t, "tok", src.Token(context.Background()))
	require.Equal(t, 1, calls)
}

func TestPageTokenUnreachablePageYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	src := &PageTokenSource{
		PageURL: srv.URL,
		Client:  &http.Client{Timeout: time.Second},
		Logger:  zap.NewNop(),
	}
	require.Equal(t, "", src.Token(context.Background()))
}
