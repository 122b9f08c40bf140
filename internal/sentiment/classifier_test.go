package sentiment

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Label
	}{
		{"positive headline", "stocks surge on growth", Positive},
		{"negative headline", "markets plunge amid backlash", Negative},
		{"neutral headline", "quarterly report released", Neutral},
		{"empty text", "", Neutral},
		{"tie favors neutral", "shares rise then fall", Neutral},
		{"case insensitive", "MARKETS SURGE ON RECORD GROWTH", Positive},
		{"punctuation ignored", "backlash, plunge: a rough day", Negative},
		{"substring does not match", "the group meets tomorrow", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	texts := []string{
		"stocks surge on growth",
		"markets plunge amid backlash",
		"quarterly report released",
	}

	for _, text := range texts {
		first := Classify(text)
		for i := 0; i < 10; i++ {
			if got := Classify(text); got != first {
				t.Fatalf("Classify(%q) not deterministic: %s then %s", text, first, got)
			}
		}
	}
}
