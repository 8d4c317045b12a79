package utils

import "testing"

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ascii title", "Freshman Orientation 2026", "freshman-orientation-2026"},
		{"cyrillic title", "Посвящение первокурсников", "posvyaschenie-pervokursnikov"},
		{"punctuation collapsed", "News -- & updates!", "news-updates"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateSlug(tt.input); got != tt.want {
				t.Fatalf("GenerateSlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetailLink(t *testing.T) {
	if got := DetailLink(42, "Launch Party"); got != "42-launch-party" {
		t.Fatalf("unexpected detail link: %q", got)
	}
	if got := DetailLink(7, "!!!"); got != "7" {
		t.Fatalf("expected bare id when slug is empty, got %q", got)
	}
}
