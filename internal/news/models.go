package news

import "time"

// Article is one news item as delivered by the webhook. The upstream feed
// is loose about which fields it fills in; everything except Title should
// be treated as optional.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Source      string `json:"source"`
	Author      string `json:"author"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	Country     string `json:"country"`
	PublishedAt string `json:"published_at"`
}

// PublishedTime parses PublishedAt. The second return is false when the
// field is empty or not a recognizable timestamp.
func (a *Article) PublishedTime() (time.Time, bool) {
	if a.PublishedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, a.PublishedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BestText returns the text most worth classifying or summarizing:
// content when present, otherwise description, otherwise the title.
func (a *Article) BestText() string {
	if a.Content != "" {
		return a.Content
	}
	if a.Description != "" {
		return a.Description
	}
	return a.Title
}
