package tui

import "fmt"

// Canonical short status messages used across the app.
const (
	MsgSigningIn   = "Signing in…"
	MsgFetching    = "Fetching articles…"
	MsgSummarizing = "Summarizing…"
	MsgSavingPrefs = "Saving preferences…"
	MsgPrefsSaved  = "Preferences saved"
	MsgSignedOut   = "Signed out"
	MsgNoResults   = "No results"
)

func MsgFetched(count int, category string) string {
	if category == "" {
		return fmt.Sprintf("%d articles", count)
	}
	return fmt.Sprintf("%d articles • %s", count, category)
}

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}
