package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brieflabs/brief/internal/auth"
	"github.com/brieflabs/brief/internal/config"
	"github.com/brieflabs/brief/internal/news"
	"github.com/brieflabs/brief/internal/sentiment"
	"github.com/brieflabs/brief/internal/summary"
)

// newWebhookServer simulates the remote article/summary webhook. The
// summarise endpoint rejects the flat payload, forcing the nested retry.
func newWebhookServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()

	var seenAuth []string
	mux := http.NewServeMux()

	mux.HandleFunc("/webhook/article", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		category := r.URL.Query().Get("category")
		articles := []map[string]any{
			{"title": "Stocks close higher", "description": "a broad rally lifts markets", "url": "https://example.org/1", "category": category},
			{"title": "Retail results disappoint", "description": "shares slump after weak earnings", "url": "https://example.org/2", "category": category},
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": articles})
	})

	mux.HandleFunc("/webhook/article/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/webhook/article/")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data": {"id": %q, "title": "Refetched", "description": "single article"}}`, id)
	})

	mux.HandleFunc("/webhook/summarise", func(w http.ResponseWriter, r *http.Request) {
		seenAuth = append(seenAuth, r.Header.Get("Authorization"))

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if _, nested := body["article"]; !nested {
			http.Error(w, "flat payload not accepted", http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": {"summary": "two sentences at most"}}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &seenAuth
}

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "integration-token", "refresh_token": "refresh", "expires_in": 3600}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchClassifySummarizeFlow(t *testing.T) {
	webhook, seenAuth := newWebhookServer(t)
	idp := newAuthServer(t)

	cfg := config.TestConfig()
	cfg.API.BaseURL = webhook.URL
	cfg.Auth.URL = idp.URL
	cfg.Auth.SessionPath = filepath.Join(t.TempDir(), "session.db")

	store, err := auth.NewSessionStore(cfg.Auth.SessionPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	authClient, err := auth.NewClient(cfg, store)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, authClient.SignIn(ctx, "reader@example.org", "hunter2"))
	require.True(t, authClient.IsAuthenticated())

	// fetch and normalize
	newsClient := news.NewClient(cfg)
	articles, err := newsClient.Fetch(ctx, news.Filter{Category: "business", Limit: 10})
	require.NoError(t, err)
	require.Len(t, articles, 2)

	for _, a := range articles {
		assert.NotEmpty(t, a.ID, "ids synthesized when absent")
		assert.Equal(t, a.Description, a.Content, "content filled from description")
		assert.Equal(t, "business", a.Category)
	}
	assert.NotEqual(t, articles[0].ID, articles[1].ID)

	// classify
	assert.Equal(t, sentiment.Positive, sentiment.Classify(articles[0].BestText()))
	assert.Equal(t, sentiment.Negative, sentiment.Classify(articles[1].BestText()))

	// summarize: flat rejected, nested retried, token attached to both
	summarizer := summary.NewClient(cfg, authClient)
	text, err := summarizer.Summarize(ctx, articles[0])
	require.NoError(t, err)
	assert.Equal(t, "two sentences at most", text)

	require.Len(t, *seenAuth, 2, "both attempts reach the endpoint")
	for _, h := range *seenAuth {
		assert.Equal(t, "Bearer integration-token", h)
	}

	// single-article refetch
	one, err := newsClient.FetchByID(ctx, articles[0].ID)
	require.NoError(t, err)
	assert.Equal(t, articles[0].ID, one.ID)
	assert.Equal(t, "Refetched", one.Title)
}
