package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brieflabs/brief/internal/config"
	"github.com/brieflabs/brief/internal/news"
	"github.com/brieflabs/brief/internal/search"
)

// categoryRows is the toggle list shown in the preferences editor.
func categoryRows() []string { return news.Categories }

type KeyHandler struct {
	app  *App
	keys config.KeyBindings
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{app: app, keys: cfg.Keys.Bindings}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(key); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.view {
	case ViewLogin:
		return true
	case ViewSearch:
		return kh.app.searchInput.Focused()
	case ViewPrefs:
		return kh.app.keywordInput.Focused()
	default:
		return false
	}
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return kh.app, tea.Quit
	case "esc":
		return kh.handleTextInputEscape()
	case "enter":
		return kh.handleTextInputEnter()
	case "tab", "down":
		if kh.app.view == ViewLogin {
			kh.focusLoginField(1)
			return kh.app, nil
		}
		if kh.app.view == ViewSearch {
			if len(kh.app.searchList.Items()) > 0 {
				kh.app.searchInput.Blur()
				kh.app.searchList.Select(0)
			}
			return kh.app, nil
		}
		return kh.delegateToTextInput(msg)
	case "up", "shift+tab":
		if kh.app.view == ViewLogin {
			kh.focusLoginField(0)
			return kh.app, nil
		}
		return kh.delegateToTextInput(msg)
	default:
		return kh.delegateToTextInput(msg)
	}
}

func (kh *KeyHandler) focusLoginField(idx int) {
	if idx == 0 {
		kh.app.passwordInput.Blur()
		kh.app.emailInput.Focus()
		return
	}
	kh.app.emailInput.Blur()
	kh.app.passwordInput.Focus()
}

func (kh *KeyHandler) handleTextInputEscape() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewLogin:
		return kh.app, tea.Quit
	case ViewPrefs:
		kh.app.keywordInput.Blur()
		kh.app.keywordInput.Reset()
		return kh.app, nil
	default:
		return kh.navigateBack()
	}
}

func (kh *KeyHandler) handleTextInputEnter() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewLogin:
		if kh.app.emailInput.Focused() {
			kh.focusLoginField(1)
			return kh.app, nil
		}
		email := strings.TrimSpace(kh.app.emailInput.Value())
		password := kh.app.passwordInput.Value()
		if email == "" || password == "" {
			return kh.app, nil
		}
		kh.app.loading = true
		kh.app.status = MsgSigningIn
		return kh.app, kh.app.signIn(email, password)

	case ViewPrefs:
		kw := strings.TrimSpace(kh.app.keywordInput.Value())
		if kw != "" {
			kh.app.preferences.AddKeyword(kw)
		}
		kh.app.keywordInput.Reset()
		kh.app.keywordInput.Blur()
		return kh.app, nil

	case ViewSearch:
		if items := kh.app.searchList.Items(); len(items) > 0 {
			if i, ok := items[0].(searchResultItem); ok {
				return kh.openReader(i.e, true)
			}
		}
		return kh.app, nil

	default:
		return kh.app, nil
	}
}

// delegateToTextInput passes the key to the focused text input.
func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewLogin:
		var cmd tea.Cmd
		if kh.app.emailInput.Focused() {
			kh.app.emailInput, cmd = kh.app.emailInput.Update(msg)
		} else {
			kh.app.passwordInput, cmd = kh.app.passwordInput.Update(msg)
		}
		return kh.app, cmd

	case ViewPrefs:
		var cmd tea.Cmd
		kh.app.keywordInput, cmd = kh.app.keywordInput.Update(msg)
		return kh.app, cmd

	case ViewSearch:
		prev := kh.app.searchInput.Value()
		newSearchInput, cmd := kh.app.searchInput.Update(msg)
		kh.app.searchInput = newSearchInput

		query := sanitizeSearchInput(kh.app.searchInput.Value())
		if query != prev && len(query) > 1 {
			return kh.app, tea.Batch(cmd, kh.app.performSearch(query))
		}
		if query == "" && prev != "" {
			kh.app.searchList.SetItems([]list.Item{})
		}
		return kh.app, cmd

	default:
		return kh.app, nil
	}
}

// handleCustomKeys handles only our custom action keys
func (kh *KeyHandler) handleCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "ctrl+c", kh.keys.Quit:
		return kh.app, tea.Quit, true
	case kh.keys.Back:
		model, cmd := kh.navigateBack()
		return model, cmd, true
	}

	// Keys available on every signed-in screen
	if kh.app.view != ViewLogin {
		switch key {
		case kh.keys.Search:
			model, cmd := kh.enterSearchMode()
			return model, cmd, true
		case kh.keys.SavedView:
			kh.app.rebuildSavedItems()
			kh.app.view = ViewSaved
			return kh.app, nil, true
		case kh.keys.Preferences:
			kh.app.prefCursor = 0
			kh.app.view = ViewPrefs
			return kh.app, kh.app.loadPreferences(), true
		case kh.keys.SignOut:
			return kh.app, kh.app.signOut(), true
		case kh.keys.Help:
			show := !kh.app.articleList.ShowHelp()
			kh.app.articleList.SetShowHelp(show)
			kh.app.savedList.SetShowHelp(show)
			return kh.app, nil, true
		}
	}

	switch kh.app.view {
	case ViewArticles:
		return kh.handleArticlesCustomKeys(key)
	case ViewSaved:
		return kh.handleSavedCustomKeys(key)
	case ViewReader:
		return kh.handleReaderCustomKeys(key)
	case ViewPrefs:
		return kh.handlePrefsCustomKeys(key)
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) handleArticlesCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case kh.keys.Refresh:
		kh.app.loading = true
		kh.app.status = MsgFetching
		return kh.app, kh.app.loadArticles(), true
	case kh.keys.NextCategory:
		kh.app.categoryIdx = (kh.app.categoryIdx + 1) % len(kh.app.categories)
		kh.app.loading = true
		kh.app.status = MsgFetching
		return kh.app, kh.app.loadArticles(), true
	case kh.keys.PrevCategory:
		kh.app.categoryIdx = (kh.app.categoryIdx + len(kh.app.categories) - 1) % len(kh.app.categories)
		kh.app.loading = true
		kh.app.status = MsgFetching
		return kh.app, kh.app.loadArticles(), true
	case kh.keys.ToggleRead:
		if i, ok := kh.app.articleList.SelectedItem().(articleItem); ok {
			kh.app.state.toggleRead(i.e.article.ID)
		}
		return kh.app, nil, true
	case kh.keys.ToggleSaved:
		if i, ok := kh.app.articleList.SelectedItem().(articleItem); ok {
			kh.app.state.toggleSaved(i.e.article.ID)
		}
		return kh.app, nil, true
	case kh.keys.Summarize:
		if i, ok := kh.app.articleList.SelectedItem().(articleItem); ok {
			return kh.app, kh.startSummarize(i.e), true
		}
		return kh.app, nil, true
	case kh.keys.OpenLink:
		if i, ok := kh.app.articleList.SelectedItem().(articleItem); ok {
			if i.e.article.URL != "" {
				return kh.app, kh.app.openURL(i.e.article.URL), true
			}
		}
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleSavedCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case kh.keys.ToggleSaved:
		if i, ok := kh.app.savedList.SelectedItem().(articleItem); ok {
			kh.app.state.toggleSaved(i.e.article.ID)
			kh.app.rebuildSavedItems()
		}
		return kh.app, nil, true
	case kh.keys.ToggleRead:
		if i, ok := kh.app.savedList.SelectedItem().(articleItem); ok {
			kh.app.state.toggleRead(i.e.article.ID)
		}
		return kh.app, nil, true
	case kh.keys.Summarize:
		if i, ok := kh.app.savedList.SelectedItem().(articleItem); ok {
			return kh.app, kh.startSummarize(i.e), true
		}
		return kh.app, nil, true
	case kh.keys.OpenLink:
		if i, ok := kh.app.savedList.SelectedItem().(articleItem); ok {
			if i.e.article.URL != "" {
				return kh.app, kh.app.openURL(i.e.article.URL), true
			}
		}
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleReaderCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	e := kh.app.state.get(kh.app.currentID)
	if e == nil {
		return kh.app, nil, false
	}

	switch key {
	case kh.keys.Refresh:
		kh.app.status = "Refreshing article…"
		return kh.app, kh.app.refreshArticle(e.article.ID), true
	case kh.keys.Summarize:
		return kh.app, kh.startSummarize(e), true
	case kh.keys.ToggleSaved:
		kh.app.state.toggleSaved(e.article.ID)
		return kh.app, nil, true
	case kh.keys.ToggleRead:
		kh.app.state.toggleRead(e.article.ID)
		return kh.app, nil, true
	case kh.keys.OpenLink:
		if e.article.URL != "" {
			return kh.app, kh.app.openURL(e.article.URL), true
		}
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handlePrefsCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	p := kh.app.preferences

	switch key {
	case "up", "k":
		if kh.app.prefCursor > 0 {
			kh.app.prefCursor--
		}
		return kh.app, nil, true
	case "down", "j":
		if kh.app.prefCursor < len(categoryRows())-1 {
			kh.app.prefCursor++
		}
		return kh.app, nil, true
	case " ", "enter":
		p.ToggleCategory(categoryRows()[kh.app.prefCursor])
		return kh.app, nil, true
	case "a":
		kh.app.keywordInput.Reset()
		kh.app.keywordInput.Focus()
		return kh.app, nil, true
	case "x":
		if n := len(p.Keywords); n > 0 {
			p.RemoveKeyword(p.Keywords[n-1])
		}
		return kh.app, nil, true
	case "w":
		kh.app.status = MsgSavingPrefs
		return kh.app, kh.app.savePreferences(), true
	}
	return kh.app, nil, false
}

// startSummarize flips the in-flight flag and fires the request. A second
// press while the first request is outstanding is a no-op.
func (kh *KeyHandler) startSummarize(e *entry) tea.Cmd {
	if !kh.app.state.beginSummarize(e.article.ID) {
		return nil
	}
	kh.app.status = MsgSummarizing
	return kh.app.summarize(e)
}

// delegateToCharm lets Charm handle all keys we don't intercept
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch kh.app.view {
	case ViewArticles:
		kh.app.articleList, cmd = kh.app.articleList.Update(msg)
		if msg.String() == "enter" {
			if i, ok := kh.app.articleList.SelectedItem().(articleItem); ok {
				return kh.openReader(i.e, false)
			}
		}
		return kh.app, cmd

	case ViewSaved:
		kh.app.savedList, cmd = kh.app.savedList.Update(msg)
		if msg.String() == "enter" {
			if i, ok := kh.app.savedList.SelectedItem().(articleItem); ok {
				return kh.openReader(i.e, false)
			}
		}
		return kh.app, cmd

	case ViewSearch:
		if !kh.app.searchInput.Focused() {
			switch msg.String() {
			case "tab", "shift+tab":
				kh.app.searchInput.Focus()
				return kh.app, nil
			case "up":
				if len(kh.app.searchList.Items()) > 0 && kh.app.searchList.Index() == 0 {
					kh.app.searchInput.Focus()
					return kh.app, nil
				}
			case "/", "i":
				kh.app.searchInput.Focus()
				return kh.app, nil
			}
		}

		kh.app.searchList, cmd = kh.app.searchList.Update(msg)
		if msg.String() == "enter" && !kh.app.searchInput.Focused() {
			if i, ok := kh.app.searchList.SelectedItem().(searchResultItem); ok {
				return kh.openReader(i.e, true)
			}
		}
		return kh.app, cmd

	case ViewReader:
		kh.app.viewport, cmd = kh.app.viewport.Update(msg)
		return kh.app, cmd

	default:
		return kh.app, nil
	}
}

// openReader switches to the reader for the given entry, marking it read.
func (kh *KeyHandler) openReader(e *entry, fromSearch bool) (tea.Model, tea.Cmd) {
	kh.app.currentID = e.article.ID
	kh.app.cameFromSearch = fromSearch
	if !fromSearch {
		kh.app.readerFrom = kh.app.view
	}
	kh.app.state.markRead(e.article.ID)
	kh.app.loadingArticle = true
	kh.app.view = ViewReader
	return kh.app, kh.app.renderReader(e)
}

// navigateBack implements smart back navigation
func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewSearch:
		kh.app.view = kh.app.previousView
		kh.app.searchInput.Reset()
		kh.app.searchList.SetItems([]list.Item{})
		return kh.app, nil

	case ViewReader:
		if kh.app.cameFromSearch {
			kh.app.view = ViewSearch
			kh.app.cameFromSearch = false
			kh.app.searchInput.Blur()
			return kh.app, nil
		}
		if kh.app.readerFrom == ViewSaved {
			kh.app.rebuildSavedItems()
			kh.app.view = ViewSaved
			return kh.app, nil
		}
		kh.app.view = ViewArticles
		return kh.app, nil

	case ViewSaved, ViewPrefs:
		kh.app.view = ViewArticles
		return kh.app, nil

	default:
		return kh.app, tea.Quit
	}
}

// enterSearchMode transitions to search view
func (kh *KeyHandler) enterSearchMode() (tea.Model, tea.Cmd) {
	kh.app.previousView = kh.app.view
	kh.app.view = ViewSearch
	kh.app.searchInput.Reset()
	kh.app.searchInput.Focus()
	kh.app.searchList.SetItems([]list.Item{})
	if ds, ok := kh.app.searchEngine.(search.DebugStatser); ok {
		if n, err := ds.DocCount(); err == nil {
			kh.app.status = fmt.Sprintf("Searching %d articles", n)
		}
	}
	return kh.app, nil
}

// sanitizeSearchInput sanitizes and limits search input length
func sanitizeSearchInput(input string) string {
	input = strings.TrimSpace(input)

	if len(input) > 256 {
		input = input[:256]
	}

	input = strings.ReplaceAll(input, "\n", " ")
	input = strings.ReplaceAll(input, "\r", " ")
	input = strings.ReplaceAll(input, "\t", " ")

	for strings.Contains(input, "  ") {
		input = strings.ReplaceAll(input, "  ", " ")
	}

	return strings.TrimSpace(input)
}

// GetHelpForCurrentView returns only our custom help text (Charm handles the rest)
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	k := kh.keys
	switch kh.app.view {
	case ViewArticles:
		return []string{
			k.Refresh + ": refresh",
			k.NextCategory + ": category",
			k.Summarize + ": summarize",
			k.ToggleSaved + ": save",
			k.Search + ": search",
		}

	case ViewSaved:
		return []string{k.ToggleSaved + ": unsave", k.Summarize + ": summarize", k.Back + ": back"}

	case ViewReader:
		return []string{k.Summarize + ": summarize", k.OpenLink + ": open", k.Refresh + ": refresh", k.Back + ": back"}

	case ViewPrefs:
		return []string{"space: toggle", "a: keyword", "w: save", k.Back + ": back"}

	case ViewSearch:
		return []string{k.Back + ": back"}

	case ViewLogin:
		return []string{"enter: sign in", "ctrl+c: quit"}

	default:
		return []string{}
	}
}
