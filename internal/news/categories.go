package news

// Categories the webhook understands as filter values. These strings go on
// the wire verbatim, so the set and spelling must not drift.
var Categories = []string{
	"general",
	"business",
	"entertainment",
	"health",
	"science",
	"sports",
	"technology",
}

// ValidCategory reports whether c is one of the webhook's category values.
// The empty string is not a category; it means "no filter".
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
