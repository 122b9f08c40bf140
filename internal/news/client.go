package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/brieflabs/brief/internal/config"
	"github.com/brieflabs/brief/internal/debuglog"
)

const articlePath = "/webhook/article"

// Filter narrows a batch fetch. Zero values mean "don't send the
// parameter": the webhook applies its own defaults, and sending explicit
// ones changes its behavior.
type Filter struct {
	Category string
	Limit    int
	Offset   int
}

// Client fetches articles from the webhook and normalizes whatever shape
// comes back.
type Client struct {
	baseURL string
	client  *http.Client
	ua      string
	now     func() time.Time
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.API.HTTPTimeout},
		ua:      cfg.API.UserAgent,
		now:     time.Now,
	}
}

// Fetch retrieves a filtered batch of articles.
func (c *Client) Fetch(ctx context.Context, filter Filter) ([]*Article, error) {
	endpoint := c.baseURL + articlePath
	if qs := filter.query(); qs != "" {
		endpoint += "?" + qs
	}

	payload, err := c.get(ctx, endpoint)
	if err != nil {
		debuglog.Errorf("article fetch failed: %v", err)
		return nil, err
	}

	articles, shape := DecodeArticles(payload, c.now())
	if shape == ShapeFallback {
		debuglog.Warnf("article fetch: unrecognized response shape, wrapped whole payload")
	} else {
		debuglog.Debugf("article fetch: %d articles via %s shape", len(articles), shape)
	}
	return articles, nil
}

// FetchByID retrieves and normalizes a single article.
func (c *Client) FetchByID(ctx context.Context, id string) (*Article, error) {
	if id == "" {
		return nil, fmt.Errorf("article id cannot be empty")
	}

	payload, err := c.get(ctx, c.baseURL+articlePath+"/"+url.PathEscape(id))
	if err != nil {
		debuglog.Errorf("article fetch by id %s failed: %v", id, err)
		return nil, err
	}

	article, shape := DecodeArticle(payload, c.now())
	if shape == ShapeFallback {
		debuglog.Warnf("article %s: unrecognized response shape", id)
	}
	return article, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching articles: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching articles: HTTP %d", resp.StatusCode)
	}

	return body, nil
}

func (f Filter) query() string {
	params := url.Values{}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		params.Set("offset", strconv.Itoa(f.Offset))
	}
	return params.Encode()
}
