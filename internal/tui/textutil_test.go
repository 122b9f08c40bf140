package tui

import "testing"

func TestTruncateEnd(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "fits", in: "hello", limit: 10, want: "hello"},
		{name: "exact", in: "hello", limit: 5, want: "hello"},
		{name: "truncated", in: "hello world", limit: 8, want: "hello w…"},
		{name: "zero limit", in: "hello", limit: 0, want: ""},
		{name: "negative limit", in: "hello", limit: -3, want: ""},
		{name: "limit one", in: "hello", limit: 1, want: "…"},
		{name: "multibyte", in: "héllø wörld", limit: 6, want: "héllø…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateEnd(tt.in, tt.limit); got != tt.want {
				t.Errorf("truncateEnd(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "fits", in: "short", limit: 10, want: "short"},
		{name: "truncated", in: "https://example.com/some/long/path", limit: 11, want: "https…/path"},
		{name: "zero limit", in: "hello", limit: 0, want: ""},
		{name: "limit one", in: "hello", limit: 1, want: "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateMiddle(tt.in, tt.limit); got != tt.want {
				t.Errorf("truncateMiddle(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}
