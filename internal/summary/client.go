// Package summary asks the webhook for an AI summary of one article. The
// webhook's accepted request shape has changed under us before, so the
// client tries a flat payload first and falls back to a nested one; treat
// the field names as configuration of an unstable upstream, not contract.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/brieflabs/brief/internal/config"
	"github.com/brieflabs/brief/internal/debuglog"
	"github.com/brieflabs/brief/internal/news"
)

const summarisePath = "/webhook/summarise"

// NoSummary is returned when the webhook answers successfully but none of
// the known response fields carry a summary.
const NoSummary = "No summary available"

// TokenSource supplies a bearer token for the summarization request. A nil
// source, or an empty token, means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type Client struct {
	endpoint string
	client   *http.Client
	tokens   TokenSource
	ua       string
}

func NewClient(cfg *config.Config, tokens TokenSource) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.API.BaseURL, "/") + summarisePath,
		client:   &http.Client{Timeout: cfg.API.SummaryTimeout},
		tokens:   tokens,
		ua:       cfg.API.UserAgent,
	}
}

type request struct {
	Content  string `json:"content"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

type nestedRequest struct {
	Article request `json:"article"`
}

// Summarize requests a summary for the article. The flat payload goes
// first; a rejection triggers exactly one retry with the nested payload.
// When both are rejected the error carries the final status and body.
func (c *Client) Summarize(ctx context.Context, article *news.Article) (string, error) {
	flat := request{
		Content:  article.BestText(),
		Title:    article.Title,
		URL:      article.URL,
		Source:   article.Source,
		Category: article.Category,
	}

	status, body, err := c.post(ctx, flat)
	if err != nil {
		return "", fmt.Errorf("summarize request: %w", err)
	}
	if status >= 200 && status < 300 {
		return extract(body), nil
	}

	debuglog.Warnf("summarize: flat payload rejected with HTTP %d, retrying with nested shape", status)

	status, body, err = c.post(ctx, nestedRequest{Article: flat})
	if err != nil {
		return "", fmt.Errorf("summarize retry: %w", err)
	}
	if status >= 200 && status < 300 {
		return extract(body), nil
	}

	return "", fmt.Errorf("summarize failed: HTTP %d: %s", status, strings.TrimSpace(string(body)))
}

func (c *Client) post(ctx context.Context, payload any) (int, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(b))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.ua)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// extract pulls the summary text from a successful response. The webhook
// has answered in several layouts; these are tried in priority order.
func extract(body []byte) string {
	// A bare JSON string is the whole summary.
	var s string
	if err := json.Unmarshal(body, &s); err == nil && s != "" {
		return s
	}

	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		debuglog.Warnf("summarize: response is not JSON, treating as missing summary")
		return NoSummary
	}

	for _, key := range []string{"summary", "content", "result"} {
		if v, ok := m[key].(string); ok && v != "" {
			return v
		}
	}
	for _, key := range []string{"data", "response"} {
		if inner, ok := m[key].(map[string]any); ok {
			if v, ok := inner["summary"].(string); ok && v != "" {
				return v
			}
		}
	}

	return NoSummary
}
