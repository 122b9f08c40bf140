// Package sentiment derives a coarse tone label from headline text. It is
// a keyword heuristic, not a model: good enough to color a list entry,
// nothing more.
package sentiment

import "strings"

// Label is the classification result.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

var positiveWords = map[string]bool{
	"surge":    true,
	"gain":     true,
	"gains":    true,
	"rise":     true,
	"rises":    true,
	"improve":  true,
	"improves": true,
	"up":       true,
	"growth":   true,
	"rally":    true,
	"record":   true,
	"boost":    true,
}

var negativeWords = map[string]bool{
	"plunge":   true,
	"plunges":  true,
	"dive":     true,
	"dives":    true,
	"fall":     true,
	"falls":    true,
	"down":     true,
	"backlash": true,
	"crash":    true,
	"slump":    true,
	"loss":     true,
	"losses":   true,
}

// Classify maps free text to a label by counting keyword hits,
// case-insensitively. Positive wins when it outnumbers negative, negative
// when the reverse holds; ties (including zero hits) are neutral.
func Classify(text string) Label {
	positive, negative := 0, 0
	for _, word := range tokenize(text) {
		if positiveWords[word] {
			positive++
		}
		if negativeWords[word] {
			negative++
		}
	}

	switch {
	case positive > negative:
		return Positive
	case negative > positive:
		return Negative
	default:
		return Neutral
	}
}

// tokenize splits on anything that isn't a letter or digit so that "up,"
// and "Up" both count, and "group" doesn't count as "up".
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '\''
}
