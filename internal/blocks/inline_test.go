package blocks

import (
	"strings"
	"testing"
)

func TestFormatInlineBoldItalic(t *testing.T) {
	got := FormatInline("a **bold** and *italic* word")
	want := "a <strong>bold</strong> and <em>italic</em> word"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatInlineEscapesBeforeSubstitution(t *testing.T) {
	got := FormatInline(`<script>alert(1)</script> **x**`)
	if strings.Contains(got, "<script>") {
		t.Fatalf("raw script tag survived formatting: %q", got)
	}
	if !strings.Contains(got, "<strong>x</strong>") {
		t.Fatalf("bold formatting missing: %q", got)
	}
}

func TestFormatInlineExternalLink(t *testing.T) {
	got := FormatInline("[site](https://example.com)")
	want := `<a href="https://example.com" target="_blank" rel="noopener noreferrer">site</a>`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatInlineAppRouteLink(t *testing.T) {
	got := FormatInline("[upcoming](@events)")
	want := `<a href="#/events">upcoming</a>`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatInlineRejectsJavascriptScheme(t *testing.T) {
	tests := []string{
		"[click](javascript:doEvil)",
		"[click](JAVASCRIPT:doEvil)",
		"[click](java\tscript:doEvil)",
	}
	for _, input := range tests {
		got := FormatInline(input)
		if got != "[click]" {
			t.Fatalf("FormatInline(%q) = %q, want the bare bracketed text", input, got)
		}
		if strings.Contains(got, "<a") {
			t.Fatalf("javascript URL produced an anchor: %q", got)
		}
	}
}

func TestFormatInlineEscapedAsterisk(t *testing.T) {
	got := FormatInline(`\*not italic\*`)
	if got != "*not italic*" {
		t.Fatalf("got %q, want literal asterisks", got)
	}
}

func TestFormatInlineIdempotentOnPlainText(t *testing.T) {
	inputs := []string{
		"hello world",
		"5 &gt; 3 &amp; 2 &lt; 4",
		"plain text with numbers 123",
	}
	for _, x := range inputs {
		once := FormatInline(x)
		twice := FormatInline(once)
		if once != twice {
			t.Fatalf("FormatInline not idempotent on %q: %q != %q", x, once, twice)
		}
	}
}
