package tui

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/brieflabs/brief/internal/auth"
	"github.com/brieflabs/brief/internal/browser"
	"github.com/brieflabs/brief/internal/config"
	"github.com/brieflabs/brief/internal/news"
	"github.com/brieflabs/brief/internal/prefs"
	"github.com/brieflabs/brief/internal/search"
	"github.com/brieflabs/brief/internal/sentiment"
	"github.com/brieflabs/brief/internal/summary"
)

type App struct {
	config       *config.Config
	newsClient   *news.Client
	summarizer   *summary.Client
	authClient   *auth.Client
	prefsService *prefs.Service
	launcher     *browser.Launcher
	searchEngine search.Searcher
	keyHandler   *KeyHandler

	articleList   list.Model
	savedList     list.Model
	searchList    list.Model
	viewport      viewport.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	searchInput   textinput.Model
	keywordInput  textinput.Model

	view           View
	previousView   View
	readerFrom     View
	cameFromSearch bool

	state      *readingState
	categories []string // "" means all, then the fixed category set
	categoryIdx int
	currentID  string

	preferences *prefs.Preferences
	prefCursor  int

	htmlConverter *md.Converter

	width  int
	height int
	err    error
	status string

	loading        bool
	loadingArticle bool

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func NewApp(cfg *config.Config, authClient *auth.Client, newsClient *news.Client, summarizer *summary.Client, prefsService *prefs.Service, engine search.Searcher) *App {
	articleList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	articleList.Title = "› articles"
	articleList.SetShowStatusBar(false)
	articleList.SetFilteringEnabled(false)
	articleList.SetShowHelp(true)

	savedList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	savedList.Title = "› saved"
	savedList.SetShowStatusBar(false)
	savedList.SetFilteringEnabled(false)
	savedList.SetShowHelp(true)

	searchList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	searchList.Title = "› search results"
	searchList.SetShowStatusBar(false)
	searchList.SetShowHelp(false)
	searchList.SetFilteringEnabled(false)

	vp := viewport.New(0, 0)

	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	si := textinput.New()
	si.Placeholder = "Search current articles..."

	ki := textinput.New()
	ki.Placeholder = "Add keyword..."

	app := &App{
		config:        cfg,
		newsClient:    newsClient,
		summarizer:    summarizer,
		authClient:    authClient,
		prefsService:  prefsService,
		launcher:      browser.NewLauncher(cfg),
		searchEngine:  engine,
		articleList:   articleList,
		savedList:     savedList,
		searchList:    searchList,
		viewport:      vp,
		emailInput:    email,
		passwordInput: password,
		searchInput:   si,
		keywordInput:  ki,
		view:          ViewLogin,
		previousView:  ViewLogin,
		state:         newReadingState(),
		categories:    append([]string{""}, news.Categories...),
		preferences:   prefs.Defaults(),
		htmlConverter: md.NewConverter("", true, nil),
	}

	if authClient.IsAuthenticated() {
		app.view = ViewArticles
		app.previousView = ViewArticles
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

func (a *App) category() string {
	return a.categories[a.categoryIdx]
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > a.config.UI.Article.WordWrapMaxWidth {
		wordWrapWidth = a.config.UI.Article.WordWrapMaxWidth
	}
	if wordWrapWidth < a.config.UI.Article.WordWrapMinWidth {
		wordWrapWidth = a.config.UI.Article.WordWrapMinWidth
	}
	if a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tea.EnterAltScreen}
	if a.view == ViewArticles {
		cmds = append(cmds, a.loadArticles(), a.loadPreferences())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.articleList.SetSize(msg.Width, msg.Height-3)
		a.savedList.SetSize(msg.Width, msg.Height-3)
		searchListHeight := msg.Height - 10
		if searchListHeight < 5 {
			searchListHeight = 5
		}
		a.searchList.SetSize(msg.Width, searchListHeight)
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 3

		inputWidth := msg.Width - 8
		if inputWidth < 20 {
			inputWidth = msg.Width
		}
		a.emailInput.Width = inputWidth / 2
		a.passwordInput.Width = inputWidth / 2
		a.keywordInput.Width = inputWidth / 2

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case signedInMsg:
		a.err = nil
		a.status = "Signed in as " + msg.email
		a.view = ViewArticles
		a.previousView = ViewArticles
		a.passwordInput.Reset()
		return a, tea.Batch(a.loadArticles(), a.loadPreferences())

	case signInFailedMsg:
		a.loading = false
		a.err = msg.err

	case articlesLoadedMsg:
		a.loading = false
		a.err = nil
		a.state.replace(msg.articles)
		a.rebuildArticleItems()
		a.reindex()
		a.status = MsgFetched(a.state.len(), a.category())

	case articleRefreshedMsg:
		if e := a.state.get(msg.article.ID); e != nil {
			e.article = msg.article
			e.sentiment = sentiment.Classify(msg.article.BestText())
			if a.view == ViewReader && a.currentID == msg.article.ID {
				return a, a.renderReader(e)
			}
		}

	case readerRenderedMsg:
		if a.view == ViewReader {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.loadingArticle = false
		}

	case summaryMsg:
		a.state.finishSummarize(msg.id, msg.summary)
		a.reindex()
		if a.view == ViewReader && a.currentID == msg.id {
			if e := a.state.get(msg.id); e != nil {
				return a, a.renderReader(e)
			}
		}
		a.status = "Summary ready"

	case summaryFailedMsg:
		a.state.failSummarize(msg.id)
		a.err = msg.err

	case prefsLoadedMsg:
		a.preferences = msg.prefs

	case prefsSavedMsg:
		if msg.err != nil {
			a.err = msg.err
		} else {
			a.status = MsgPrefsSaved
		}

	case searchResultsMsg:
		if a.view == ViewSearch {
			items := make([]list.Item, 0, len(msg.results))
			for _, r := range msg.results {
				if e := a.state.get(r.Article.ID); e != nil {
					items = append(items, searchResultItem{e: e, score: r.Score, maxDesc: a.config.UI.Article.MaxDescriptionLength})
				}
			}
			a.searchList.SetItems(items)
			a.status = MsgResultsCount(len(items))
		}

	case signedOutMsg:
		a.state = newReadingState()
		a.articleList.SetItems([]list.Item{})
		a.savedList.SetItems([]list.Item{})
		a.currentID = ""
		a.view = ViewLogin
		a.emailInput.Focus()
		a.status = MsgSignedOut

	case errorMsg:
		a.loading = false
		a.err = msg.err
	}

	switch a.view {
	case ViewLogin:
		var cmd tea.Cmd
		a.emailInput, cmd = a.emailInput.Update(msg)
		cmds = append(cmds, cmd)
		a.passwordInput, cmd = a.passwordInput.Update(msg)
		cmds = append(cmds, cmd)
	case ViewArticles:
		newListModel, cmd := a.articleList.Update(msg)
		a.articleList = newListModel
		cmds = append(cmds, cmd)
	case ViewSaved:
		newListModel, cmd := a.savedList.Update(msg)
		a.savedList = newListModel
		cmds = append(cmds, cmd)
	case ViewReader:
		switch msg.(type) {
		case tea.KeyMsg, tea.WindowSizeMsg, tea.MouseMsg:
			newViewport, cmd := a.viewport.Update(msg)
			a.viewport = newViewport
			cmds = append(cmds, cmd)
		}
	case ViewPrefs:
		var cmd tea.Cmd
		a.keywordInput, cmd = a.keywordInput.Update(msg)
		cmds = append(cmds, cmd)
	case ViewSearch:
		newSearchInput, cmd := a.searchInput.Update(msg)
		a.searchInput = newSearchInput
		cmds = append(cmds, cmd)

		newSearchList, listCmd := a.searchList.Update(msg)
		a.searchList = newSearchList
		cmds = append(cmds, listCmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) rebuildArticleItems() {
	maxDesc := a.config.UI.Article.MaxDescriptionLength
	entries := a.state.all()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, articleItem{e: e, maxDesc: maxDesc})
	}
	a.articleList.SetItems(items)

	title := "› articles"
	if c := a.category(); c != "" {
		title += " — " + c
	}
	a.articleList.Title = title
}

func (a *App) rebuildSavedItems() {
	maxDesc := a.config.UI.Article.MaxDescriptionLength
	entries := a.state.saved()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, articleItem{e: e, maxDesc: maxDesc})
	}
	a.savedList.SetItems(items)
}

func (a *App) reindex() {
	if a.searchEngine == nil {
		return
	}
	entries := a.state.all()
	articles := make([]*news.Article, 0, len(entries))
	for _, e := range entries {
		articles = append(articles, e.article)
	}
	_ = a.searchEngine.Reindex(articles, a.state.summaries())
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewLogin:
		content = a.loginView()
	case ViewArticles:
		if a.state.len() == 0 {
			msg := GetWelcomeMessage()
			if a.loading {
				msg = renderMuted(MsgFetching)
			}
			content = renderCentered(a.width, a.height-3, msg)
		} else {
			content = a.articleList.View()
		}
	case ViewSaved:
		if len(a.savedList.Items()) == 0 {
			content = renderCentered(a.width, a.height-3, renderMuted("Nothing saved yet"))
		} else {
			content = a.savedList.View()
		}
	case ViewReader:
		if a.loadingArticle {
			content = renderCentered(a.width, a.height-3, renderMuted("Loading article…"))
		} else {
			content = a.viewport.View()
		}
	case ViewPrefs:
		content = a.prefsView()
	case ViewSearch:
		content = a.searchView()
	}

	customStatus := a.getCustomStatusBar()
	if customStatus != "" {
		separatorWidth := a.width - 2
		if separatorWidth < 0 {
			separatorWidth = 0
		}
		separator := SeparatorStyle.Render("─" + strings.Repeat("─", separatorWidth))

		return lipgloss.JoinVertical(lipgloss.Top, content, separator, customStatus)
	}

	return content
}

func (a *App) loginView() string {
	form := lipgloss.JoinVertical(
		lipgloss.Center,
		GetCompactBanner("Sign in to read your briefing"),
		"",
		renderInputFrame(a.emailInput.View(), a.emailInput.Focused(), a.emailInput.Width),
		renderInputFrame(a.passwordInput.View(), a.passwordInput.Focused(), a.passwordInput.Width),
		"",
		renderHelp("Tab: switch field • Enter: sign in • Ctrl+c: quit"),
	)
	return renderCentered(a.width, a.height-3, form)
}

func (a *App) prefsView() string {
	if a.preferences == nil {
		a.preferences = prefs.Defaults()
	}

	var rows []string
	rows = append(rows, HeaderStyle.Render("› preferences"), "")

	rows = append(rows, renderMuted("categories"))
	for i, c := range news.Categories {
		cursor := "  "
		if i == a.prefCursor && !a.keywordInput.Focused() {
			cursor = "› "
		}
		mark := "[ ]"
		if a.preferences.HasCategory(c) {
			mark = "[x]"
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, mark, c))
	}

	rows = append(rows, "", renderMuted("keywords"))
	if len(a.preferences.Keywords) == 0 {
		rows = append(rows, renderMuted("  (none)"))
	}
	for _, kw := range a.preferences.Keywords {
		rows = append(rows, "  • "+kw)
	}

	rows = append(rows, "", renderInputFrame(a.keywordInput.View(), a.keywordInput.Focused(), a.keywordInput.Width))

	help := "↑↓: move • Space: toggle • a: add keyword • x: remove last keyword • w: save • Esc: back"
	if a.keywordInput.Focused() {
		help = "Enter: add • Esc: cancel"
	}
	rows = append(rows, renderHelp(help))

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height - 3).
		MaxHeight(a.height - 3).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a *App) searchView() string {
	searchInputWidth := a.width - 8
	if searchInputWidth < 10 {
		searchInputWidth = a.width - 4
	}
	a.searchInput.Width = searchInputWidth

	searchInput := renderInputFrame(a.searchInput.View(), a.searchInput.Focused(), searchInputWidth)

	helpText := ""
	if a.searchInput.Focused() {
		helpText = "Type to search • Tab/↓: results • Esc: back"
	} else if len(a.searchList.Items()) > 0 {
		helpText = "↑↓: navigate • Enter: read • Tab/↑: search box • Esc: back"
	} else {
		helpText = "No results found • Tab/↑: search box • Esc: back"
	}

	searchContent := lipgloss.JoinVertical(
		lipgloss.Top,
		HeaderStyle.Render("› search"),
		"",
		searchInput,
		renderMuted(helpText),
		"",
		a.searchList.View(),
	)

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height - 3).
		MaxHeight(a.height - 3).
		Render(searchContent)
}

func (a *App) getCustomStatusBar() string {
	if a.err != nil {
		errText := ErrorMessageStyle.Render(fmt.Sprintf("✗ %v", a.err))
		return lipgloss.NewStyle().
			Width(a.width).
			Padding(0, 1).
			Foreground(MutedColor).
			Render(errText)
	}

	parts := a.keyHandler.GetHelpForCurrentView()
	if a.status != "" {
		parts = append([]string{a.status}, parts...)
	}
	if len(parts) == 0 {
		return ""
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Foreground(MutedColor).
		Render(strings.Join(parts, " • "))
}

func sentimentGlyph(label sentiment.Label) string {
	switch label {
	case sentiment.Positive:
		return PositiveStyle.Render("▲")
	case sentiment.Negative:
		return NegativeStyle.Render("▼")
	default:
		return NeutralStyle.Render("•")
	}
}

type articleItem struct {
	e       *entry
	maxDesc int
}

func (i articleItem) Title() string {
	title := sentimentGlyph(i.e.sentiment) + " "
	if i.e.saved {
		title += SavedMarkStyle.Render("★ ")
	}
	if i.e.read {
		return title + ReadItemStyle.Render(i.e.article.Title)
	}
	return title + UnreadItemStyle.Render("● "+i.e.article.Title)
}

func (i articleItem) Description() string {
	desc := i.e.article.Description
	maxDescLength := i.maxDesc
	if maxDescLength < 40 {
		maxDescLength = 40
	}
	desc = truncateEnd(desc, maxDescLength)

	meta := ""
	if i.e.article.Source != "" {
		meta += " • " + i.e.article.Source
	}
	if t, ok := i.e.article.PublishedTime(); ok {
		meta += TimeStyle.Render(" • " + t.Format("Jan 2, 15:04"))
	}

	return renderMuted(desc) + meta
}

func (i articleItem) FilterValue() string { return i.e.article.Title }

type searchResultItem struct {
	e       *entry
	score   float64
	maxDesc int
}

func (i searchResultItem) Title() string {
	if i.e.read {
		return ReadItemStyle.Render(i.e.article.Title)
	}
	return UnreadItemStyle.Render("● " + i.e.article.Title)
}

func (i searchResultItem) Description() string {
	desc := truncateEnd(i.e.article.Description, 50)
	if i.e.summary != "" {
		desc += " • summarized"
	}
	return renderMuted(desc)
}

func (i searchResultItem) FilterValue() string {
	return i.e.article.Title + " " + i.e.article.Description
}

type signedInMsg struct {
	email string
}

type signInFailedMsg struct {
	err error
}

type articlesLoadedMsg struct {
	articles []*news.Article
}

type articleRefreshedMsg struct {
	article *news.Article
}

type readerRenderedMsg struct {
	content string
}

type summaryMsg struct {
	id      string
	summary string
}

type summaryFailedMsg struct {
	id  string
	err error
}

type prefsLoadedMsg struct {
	prefs *prefs.Preferences
}

type prefsSavedMsg struct {
	err error
}

type searchResultsMsg struct {
	results []*search.Result
}

type signedOutMsg struct{}

type errorMsg struct {
	err error
}
