package search

import "github.com/brieflabs/brief/internal/news"

// Result is a single hit against the current article batch.
type Result struct {
	Article *news.Article
	Score   float64
}

// Searcher defines the minimal search API used by the TUI.
type Searcher interface {
	Search(query string, limit int) ([]*Result, error)
	Reindex(articles []*news.Article, summaries map[string]string) error
}

// DebugStatser provides lightweight stats for visibility/debugging.
type DebugStatser interface {
	DocCount() (int, error)
}
