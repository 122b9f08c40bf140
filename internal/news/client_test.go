package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/brieflabs/brief/internal/config"
)

func newTestClient(serverURL string) *Client {
	cfg := config.TestConfig()
	cfg.API.BaseURL = serverURL
	return NewClient(cfg)
}

func TestClient_Fetch_QueryConstruction(t *testing.T) {
	tests := []struct {
		name       string
		filter     Filter
		wantParams map[string]string
		absent     []string
	}{
		{
			name:       "no filter sends no parameters",
			filter:     Filter{},
			wantParams: map[string]string{},
			absent:     []string{"category", "limit", "offset"},
		},
		{
			name:       "category only",
			filter:     Filter{Category: "sports"},
			wantParams: map[string]string{"category": "sports"},
			absent:     []string{"limit", "offset"},
		},
		{
			name:       "all parameters",
			filter:     Filter{Category: "technology", Limit: 25, Offset: 50},
			wantParams: map[string]string{"category": "technology", "limit": "25", "offset": "50"},
		},
		{
			name:       "cleared category restores unfiltered request",
			filter:     Filter{Category: "", Limit: 10},
			wantParams: map[string]string{"limit": "10"},
			absent:     []string{"category"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery url.Values
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"data": []}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			if _, err := client.Fetch(context.Background(), tt.filter); err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}

			for key, want := range tt.wantParams {
				if got := gotQuery.Get(key); got != want {
					t.Errorf("query[%s] = %q, want %q", key, got, want)
				}
			}
			for _, key := range tt.absent {
				if _, present := gotQuery[key]; present {
					t.Errorf("query parameter %s should be absent, got %q", key, gotQuery.Get(key))
				}
			}
		})
	}
}

func TestClient_Fetch_Path(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Fetch(context.Background(), Filter{}); err != nil {
		t.Fatal(err)
	}

	if gotPath != "/webhook/article" {
		t.Errorf("path = %q, want /webhook/article", gotPath)
	}
}

func TestClient_Fetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	articles, err := client.Fetch(context.Background(), Filter{Category: "health"})

	if err == nil {
		t.Fatal("expected error for HTTP 502, got nil")
	}
	if articles != nil {
		t.Errorf("expected nil articles on error, got %d", len(articles))
	}
}

func TestClient_Fetch_Normalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"title": "A", "description": "da"}, {"title": "B", "description": "db"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	articles, err := client.Fetch(context.Background(), Filter{})
	if err != nil {
		t.Fatal(err)
	}

	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[0].ID == articles[1].ID {
		t.Error("synthesized ids are not distinct")
	}
	for _, a := range articles {
		if a.Content != a.Description {
			t.Errorf("Content = %q, want %q", a.Content, a.Description)
		}
	}
}

func TestClient_FetchByID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data": {"id": "a-17", "title": "Single", "description": "sd"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	article, err := client.FetchByID(context.Background(), "a-17")
	if err != nil {
		t.Fatalf("FetchByID() error = %v", err)
	}

	if gotPath != "/webhook/article/a-17" {
		t.Errorf("path = %q, want /webhook/article/a-17", gotPath)
	}
	if article.ID != "a-17" {
		t.Errorf("ID = %q, want a-17", article.ID)
	}
	if article.Content != "sd" {
		t.Errorf("Content = %q, want description copied", article.Content)
	}
}

func TestClient_FetchByID_EmptyID(t *testing.T) {
	client := newTestClient("http://localhost:0")
	if _, err := client.FetchByID(context.Background(), ""); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false, want true", c)
		}
	}
	for _, c := range []string{"", "Sports", "politics"} {
		if ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = true, want false", c)
		}
	}
}
