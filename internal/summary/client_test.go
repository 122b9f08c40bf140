package summary

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brieflabs/brief/internal/config"
	"github.com/brieflabs/brief/internal/news"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func testArticle() *news.Article {
	return &news.Article{
		ID:          "a1",
		Title:       "Test Article",
		URL:         "http://example.com/a1",
		Description: "a description",
		Content:     "some content",
		Source:      "example",
		Category:    "technology",
	}
}

func newTestSummaryClient(serverURL string, tokens TokenSource) *Client {
	cfg := config.TestConfig()
	cfg.API.BaseURL = serverURL
	return NewClient(cfg, tokens)
}

func TestSummarize_FlatPayloadAccepted(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.Write([]byte(`{"summary": "a fine summary"}`))
	}))
	defer server.Close()

	client := newTestSummaryClient(server.URL, staticToken("tok-123"))
	got, err := client.Summarize(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if got != "a fine summary" {
		t.Errorf("summary = %q, want 'a fine summary'", got)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}

	// Flat shape: article fields at the top level.
	if gotBody["title"] != "Test Article" {
		t.Errorf("flat body title = %v", gotBody["title"])
	}
	if _, nested := gotBody["article"]; nested {
		t.Error("first attempt should use the flat payload, not the nested one")
	}
}

func TestSummarize_FallsBackToNestedPayload(t *testing.T) {
	var bodies []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var m map[string]any
		json.Unmarshal(body, &m)
		bodies = append(bodies, m)

		if len(bodies) == 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"summary": "nested worked"}`))
	}))
	defer server.Close()

	client := newTestSummaryClient(server.URL, nil)
	got, err := client.Summarize(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if got != "nested worked" {
		t.Errorf("summary = %q, want 'nested worked'", got)
	}
	if len(bodies) != 2 {
		t.Fatalf("got %d requests, want 2 (flat then nested)", len(bodies))
	}
	if _, nested := bodies[0]["article"]; nested {
		t.Error("first request should be flat")
	}
	inner, ok := bodies[1]["article"].(map[string]any)
	if !ok {
		t.Fatal("second request should nest fields under 'article'")
	}
	if inner["title"] != "Test Article" {
		t.Errorf("nested body title = %v", inner["title"])
	}
}

func TestSummarize_BothAttemptsFail(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "nope"}`))
	}))
	defer server.Close()

	client := newTestSummaryClient(server.URL, nil)
	_, err := client.Summarize(context.Background(), testArticle())

	if err == nil {
		t.Fatal("expected error when both attempts fail")
	}
	if requests != 2 {
		t.Errorf("got %d requests, want exactly 2", requests)
	}
	// The error must carry the final status and body for diagnosis.
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error %q does not mention the HTTP status", err)
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error %q does not carry the response body", err)
	}
}

func TestSummarize_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"summary": "ok"}`))
	}))
	defer server.Close()

	client := newTestSummaryClient(server.URL, staticToken(""))
	if _, err := client.Summarize(context.Background(), testArticle()); err != nil {
		t.Fatal(err)
	}

	if gotAuth != "" {
		t.Errorf("Authorization = %q, want no header without a token", gotAuth)
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bare string", `"just the text"`, "just the text"},
		{"summary field", `{"summary": "s1"}`, "s1"},
		{"content field", `{"content": "c1"}`, "c1"},
		{"result field", `{"result": "r1"}`, "r1"},
		{"data.summary", `{"data": {"summary": "ds1"}}`, "ds1"},
		{"response.summary", `{"response": {"summary": "rs1"}}`, "rs1"},
		{"summary wins over content", `{"content": "c", "summary": "s"}`, "s"},
		{"content wins over data.summary", `{"data": {"summary": "ds"}, "content": "c"}`, "c"},
		{"nothing usable", `{"status": "ok"}`, NoSummary},
		{"empty summary falls through", `{"summary": "", "content": "c2"}`, "c2"},
		{"not json", `plain text`, NoSummary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract([]byte(tt.body)); got != tt.want {
				t.Errorf("extract(%s) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
