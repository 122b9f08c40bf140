package tui

import (
	"github.com/brieflabs/brief/internal/news"
	"github.com/brieflabs/brief/internal/sentiment"
)

// entry is the per-article reading state. It lives only as long as the
// current batch; the next fetch replaces it wholesale.
type entry struct {
	article     *news.Article
	sentiment   sentiment.Label
	read        bool
	saved       bool
	summarizing bool
	summary     string
}

// readingState tracks per-article UI state for the current batch, keyed by
// article id. Updates are keyed writes, last-write-wins, so concurrent
// summarize completions for different articles cannot interfere.
type readingState struct {
	entries map[string]*entry
	order   []string
}

func newReadingState() *readingState {
	return &readingState{entries: map[string]*entry{}}
}

// replace swaps in a new batch, discarding all previous state. Sentiment is
// classified once per article here rather than on every render.
func (s *readingState) replace(articles []*news.Article) {
	s.entries = make(map[string]*entry, len(articles))
	s.order = s.order[:0]
	for _, a := range articles {
		if a == nil || a.ID == "" {
			continue
		}
		if _, seen := s.entries[a.ID]; seen {
			continue
		}
		s.entries[a.ID] = &entry{
			article:   a,
			sentiment: sentiment.Classify(a.BestText()),
		}
		s.order = append(s.order, a.ID)
	}
}

func (s *readingState) get(id string) *entry {
	return s.entries[id]
}

func (s *readingState) len() int { return len(s.order) }

// all returns entries in fetch order.
func (s *readingState) all() []*entry {
	out := make([]*entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out
}

// saved returns saved entries in fetch order.
func (s *readingState) saved() []*entry {
	var out []*entry
	for _, id := range s.order {
		if e := s.entries[id]; e.saved {
			out = append(out, e)
		}
	}
	return out
}

func (s *readingState) markRead(id string) {
	if e := s.entries[id]; e != nil {
		e.read = true
	}
}

func (s *readingState) toggleRead(id string) {
	if e := s.entries[id]; e != nil {
		e.read = !e.read
	}
}

func (s *readingState) toggleSaved(id string) {
	if e := s.entries[id]; e != nil {
		e.saved = !e.saved
	}
}

// beginSummarize marks the entry as in flight. It reports false when the
// entry is unknown or a request for it is already outstanding, which is how
// re-invocation gets suppressed.
func (s *readingState) beginSummarize(id string) bool {
	e := s.entries[id]
	if e == nil || e.summarizing {
		return false
	}
	e.summarizing = true
	return true
}

func (s *readingState) finishSummarize(id, summary string) {
	if e := s.entries[id]; e != nil {
		e.summary = summary
		e.summarizing = false
	}
}

// failSummarize clears the in-flight flag without touching any previous
// summary, so the action stays available after an error.
func (s *readingState) failSummarize(id string) {
	if e := s.entries[id]; e != nil {
		e.summarizing = false
	}
}

// summaries returns the collected summaries keyed by article id.
func (s *readingState) summaries() map[string]string {
	out := map[string]string{}
	for id, e := range s.entries {
		if e.summary != "" {
			out[id] = e.summary
		}
	}
	return out
}
