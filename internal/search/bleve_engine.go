package search

import (
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/brieflabs/brief/internal/news"
)

type bleveEngine struct {
	mu       sync.RWMutex
	idx      bleve.Index
	articles map[string]*news.Article
}

// NewBleveEngine creates an in-memory index over the current article batch.
// The index lives for the lifetime of the session and is rebuilt on every
// fetch via Reindex.
func NewBleveEngine() (Searcher, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return &bleveEngine{idx: idx, articles: map[string]*news.Article{}}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true
	title.IncludeTermVectors = true

	desc := bleve.NewTextFieldMapping()
	desc.Analyzer = standard.Name
	desc.Store = true
	desc.IncludeTermVectors = false

	summary := bleve.NewTextFieldMapping()
	summary.Analyzer = standard.Name
	summary.Store = false

	source := bleve.NewTextFieldMapping()
	source.Analyzer = standard.Name
	source.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("description", desc)
	dm.AddFieldMappingsAt("summary", summary)
	dm.AddFieldMappingsAt("source", source)

	im.DefaultMapping = dm
	return im
}

// Reindex replaces the index contents with the given batch. Summaries,
// keyed by article ID, are indexed alongside their article when present.
func (b *bleveEngine) Reindex(articles []*news.Article, summaries map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id := range b.articles {
		_ = b.idx.Delete(id)
	}
	b.articles = make(map[string]*news.Article, len(articles))

	batch := b.idx.NewBatch()
	for _, a := range articles {
		if a == nil || a.ID == "" {
			continue
		}
		doc := map[string]any{
			"title":       a.Title,
			"description": a.Description,
			"source":      a.Source,
		}
		if s, ok := summaries[a.ID]; ok {
			doc["summary"] = s
		}
		if err := batch.Index(a.ID, doc); err != nil {
			return err
		}
		b.articles[a.ID] = a
	}
	return b.idx.Batch(batch)
}

func (b *bleveEngine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}

	// OR of per-term matches across key fields with boosts
	tokens := tokenize(query)
	var qs []bleveQuery.Query
	for _, tok := range tokens {
		qt := bleve.NewMatchQuery(tok)
		qt.SetField("title")
		qt.SetBoost(4.0)
		qs = append(qs, qt)
		qtp := bleve.NewPrefixQuery(strings.ToLower(tok))
		qtp.SetField("title")
		qtp.SetBoost(3.5)
		qs = append(qs, qtp)

		qd := bleve.NewMatchQuery(tok)
		qd.SetField("description")
		qd.SetBoost(2.0)
		qs = append(qs, qd)
		qdp := bleve.NewPrefixQuery(strings.ToLower(tok))
		qdp.SetField("description")
		qdp.SetBoost(1.8)
		qs = append(qs, qdp)

		qsm := bleve.NewMatchQuery(tok)
		qsm.SetField("summary")
		qsm.SetBoost(1.5)
		qs = append(qs, qsm)

		qsrc := bleve.NewMatchQuery(tok)
		qsrc.SetField("source")
		qsrc.SetBoost(1.0)
		qs = append(qs, qsrc)
	}
	if len(qs) == 0 {
		return []*Result{}, nil
	}

	q := bleve.NewDisjunctionQuery(qs...)
	srch := bleve.NewSearchRequestOptions(q, limit, 0, false)

	b.mu.RLock()
	defer b.mu.RUnlock()

	res, err := b.idx.Search(srch)
	if err != nil {
		return nil, err
	}
	out := make([]*Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		a, ok := b.articles[h.ID]
		if !ok {
			continue
		}
		out = append(out, &Result{Article: a, Score: h.Score})
	}
	return out, nil
}

// DocCount reports total documents in the index.
func (b *bleveEngine) DocCount() (int, error) {
	q := bleve.NewMatchAllQuery()
	req := bleve.NewSearchRequestOptions(q, 0, 0, false)

	b.mu.RLock()
	defer b.mu.RUnlock()

	res, err := b.idx.Search(req)
	if err != nil {
		return 0, err
	}
	return int(res.Total), nil
}

func tokenize(query string) []string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
