package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brieflabs/brief/internal/news"
)

func (a *App) signIn(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.config.API.HTTPTimeout)
		defer cancel()

		if err := a.authClient.SignIn(ctx, email, password); err != nil {
			return signInFailedMsg{err: wrapErr("sign in", err)}
		}
		return signedInMsg{email: email}
	}
}

// loadArticles fetches the current batch. On failure the previous list is
// left untouched; only the error surfaces.
func (a *App) loadArticles() tea.Cmd {
	filter := news.Filter{
		Category: a.category(),
		Limit:    a.config.UI.Article.FetchLimit,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.config.API.HTTPTimeout)
		defer cancel()

		articles, err := a.newsClient.Fetch(ctx, filter)
		if err != nil {
			return errorMsg{err: err}
		}
		return articlesLoadedMsg{articles: articles}
	}
}

func (a *App) refreshArticle(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.config.API.HTTPTimeout)
		defer cancel()

		article, err := a.newsClient.FetchByID(ctx, id)
		if err != nil {
			return errorMsg{err: wrapErr("refreshing article", err)}
		}
		return articleRefreshedMsg{article: article}
	}
}

func (a *App) summarize(e *entry) tea.Cmd {
	article := e.article
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.config.API.SummaryTimeout)
		defer cancel()

		text, err := a.summarizer.Summarize(ctx, article)
		if err != nil {
			return summaryFailedMsg{id: article.ID, err: err}
		}
		return summaryMsg{id: article.ID, summary: text}
	}
}

func (a *App) renderReader(e *entry) tea.Cmd {
	return func() tea.Msg {
		article := e.article

		var content strings.Builder
		content.WriteString(fmt.Sprintf("# %s\n\n", article.Title))

		var meta []string
		if article.Source != "" {
			meta = append(meta, article.Source)
		}
		if article.Author != "" {
			meta = append(meta, article.Author)
		}
		if t, ok := article.PublishedTime(); ok {
			meta = append(meta, t.Format(time.RFC1123))
		}
		meta = append(meta, "sentiment: "+string(e.sentiment))
		content.WriteString(fmt.Sprintf("*%s*\n\n", strings.Join(meta, " • ")))

		if article.URL != "" {
			content.WriteString(fmt.Sprintf("[Read Online](%s)\n\n", article.URL))
		}

		if e.summary != "" {
			content.WriteString("## Summary\n\n")
			content.WriteString(e.summary)
			content.WriteString("\n\n")
		}

		content.WriteString("---\n\n")
		content.WriteString(a.articleBody(article))

		r, err := a.getRenderer()
		if err != nil {
			return readerRenderedMsg{content: "Error initializing renderer: " + err.Error()}
		}

		rendered, err := r.Render(content.String())
		if err != nil {
			// Keep the message flowing so loadingArticle always clears.
			return readerRenderedMsg{content: fmt.Sprintf("# Error\n\nFailed to render article: %s\n\nPress Escape to go back.", err.Error())}
		}

		return readerRenderedMsg{content: rendered}
	}
}

// articleBody returns the article text as markdown. Webhook payloads carry
// HTML in content/description often enough that anything tag-shaped goes
// through the converter first.
func (a *App) articleBody(article *news.Article) string {
	body := article.Content
	if body == "" {
		body = article.Description
	}
	if body == "" {
		return renderFallbackBody(article)
	}

	if strings.Contains(body, "<") && strings.Contains(body, ">") {
		if converted, err := a.htmlConverter.ConvertString(body); err == nil {
			return converted
		}
	}
	return body
}

func renderFallbackBody(article *news.Article) string {
	if article.URL != "" {
		return "*No content available; follow the link above.*"
	}
	return "*No content available.*"
}

func (a *App) loadPreferences() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.config.API.HTTPTimeout)
		defer cancel()

		return prefsLoadedMsg{prefs: a.prefsService.Fetch(ctx)}
	}
}

func (a *App) savePreferences() tea.Cmd {
	p := a.preferences
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.config.API.HTTPTimeout)
		defer cancel()

		return prefsSavedMsg{err: a.prefsService.Save(ctx, p)}
	}
}

func (a *App) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.searchEngine.Search(query, 20)
		if err != nil {
			return errorMsg{err: wrapErr("search", err)}
		}
		return searchResultsMsg{results: results}
	}
}

func (a *App) openURL(url string) tea.Cmd {
	return func() tea.Msg {
		if err := a.launcher.Open(url); err != nil {
			return errorMsg{err: fmt.Errorf("failed to open %s: %w", url, err)}
		}
		return nil
	}
}

func (a *App) signOut() tea.Cmd {
	return func() tea.Msg {
		if err := a.authClient.SignOut(); err != nil {
			return errorMsg{err: wrapErr("sign out", err)}
		}
		return signedOutMsg{}
	}
}
