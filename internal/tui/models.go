package tui

type View int

const (
	ViewLogin View = iota
	ViewArticles
	ViewReader
	ViewSaved
	ViewPrefs
	ViewSearch
)
