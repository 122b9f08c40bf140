// Package prefs handles reading preferences. The backend side of this is
// still a placeholder: fetch falls back to defaults when the endpoint has
// nothing to say, and save is a simulated round trip that persists
// nothing. The editing surface is real so the backend can land under it.
package prefs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brieflabs/brief/internal/config"
	"github.com/brieflabs/brief/internal/debuglog"
	"github.com/brieflabs/brief/internal/news"
)

const preferencesPath = "/webhook/preferences"

// Preferences are the user's reading interests. Each field is a set kept
// as a slice for stable display order.
type Preferences struct {
	Topics     []string `json:"topics"`
	Keywords   []string `json:"keywords"`
	Sources    []string `json:"sources"`
	Categories []string `json:"categories"`
}

// Defaults returns the starting preferences for a new user: every category
// on, nothing else.
func Defaults() *Preferences {
	return &Preferences{
		Topics:     []string{},
		Keywords:   []string{},
		Sources:    []string{},
		Categories: append([]string{}, news.Categories...),
	}
}

// HasCategory reports whether c is enabled.
func (p *Preferences) HasCategory(c string) bool {
	for _, have := range p.Categories {
		if have == c {
			return true
		}
	}
	return false
}

// ToggleCategory flips a category in or out of the set.
func (p *Preferences) ToggleCategory(c string) {
	for i, have := range p.Categories {
		if have == c {
			p.Categories = append(p.Categories[:i], p.Categories[i+1:]...)
			return
		}
	}
	p.Categories = append(p.Categories, c)
}

// AddKeyword appends a keyword unless it is already present or blank.
func (p *Preferences) AddKeyword(kw string) {
	kw = strings.TrimSpace(kw)
	if kw == "" {
		return
	}
	for _, have := range p.Keywords {
		if have == kw {
			return
		}
	}
	p.Keywords = append(p.Keywords, kw)
}

// RemoveKeyword deletes a keyword if present.
func (p *Preferences) RemoveKeyword(kw string) {
	for i, have := range p.Keywords {
		if have == kw {
			p.Keywords = append(p.Keywords[:i], p.Keywords[i+1:]...)
			return
		}
	}
}

// Service fetches and "saves" preferences.
type Service struct {
	endpoint  string
	client    *http.Client
	saveDelay time.Duration
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		endpoint:  strings.TrimRight(cfg.API.BaseURL, "/") + preferencesPath,
		client:    &http.Client{Timeout: cfg.API.HTTPTimeout},
		saveDelay: 750 * time.Millisecond,
	}
}

// Fetch loads preferences from the placeholder endpoint. Any failure —
// transport, status, or shape — degrades to defaults rather than blocking
// the preferences view.
func (s *Service) Fetch(ctx context.Context) *Preferences {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return Defaults()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		debuglog.Debugf("prefs: fetch failed (%v), using defaults", err)
		return Defaults()
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		debuglog.Debugf("prefs: endpoint answered HTTP %d, using defaults", resp.StatusCode)
		return Defaults()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Defaults()
	}

	var p Preferences
	if err := json.Unmarshal(body, &p); err != nil {
		debuglog.Debugf("prefs: unparseable response, using defaults")
		return Defaults()
	}
	if p.Categories == nil {
		p.Categories = Defaults().Categories
	}
	return &p
}

// Save pretends to persist preferences: it waits the simulated round-trip
// time and succeeds. Nothing is written anywhere until the backend exists.
func (s *Service) Save(ctx context.Context, _ *Preferences) error {
	select {
	case <-time.After(s.saveDelay):
		debuglog.Infof("prefs: save simulated, nothing persisted")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
