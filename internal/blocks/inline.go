package blocks

import (
	"regexp"
	"strings"
)

var (
	reEntity      = regexp.MustCompile(`&[a-zA-Z]+;|&#\d+;|&#x[0-9a-fA-F]+;|&`)
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic      = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineLink  = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reCtrlOrSpace = regexp.MustCompile(`[\x00-\x20]+`)
)

// escapedStar protects backslash-escaped asterisks from the bold and italic
// passes; it is restored as a literal asterisk at the very end.
const escapedStar = "\x00"

// FormatInline applies the inline markup supported inside text attributes:
// HTML escaping first, then **bold**, *italic* and [text](url) links, and
// finally un-escaping of \* into a literal asterisk. The escape step runs
// before any substitution, so author input can never smuggle markup through.
func FormatInline(text string) string {
	out := escapeHTML(text)

	out = strings.ReplaceAll(out, `\*`, escapedStar)
	out = reBold.ReplaceAllString(out, "<strong>$1</strong>")
	out = reItalic.ReplaceAllString(out, "<em>$1</em>")

	out = reInlineLink.ReplaceAllStringFunc(out, func(match string) string {
		groups := reInlineLink.FindStringSubmatch(match)
		return formatLink(groups[1], groups[2])
	})

	return strings.ReplaceAll(out, escapedStar, "*")
}

// escapeHTML escapes text for safe embedding in markup. Unlike
// html.EscapeString it leaves existing character references alone, which
// makes it idempotent.
func escapeHTML(text string) string {
	out := reEntity.ReplaceAllStringFunc(text, func(m string) string {
		if m == "&" {
			return "&amp;"
		}
		return m
	})

	replacer := strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		`"`, "&#34;",
		"'", "&#39;",
	)
	return replacer.Replace(out)
}

func formatLink(label, target string) string {
	target = strings.TrimSpace(target)

	// Scheme check on a normalized form: embedded whitespace and control
	// characters must not hide "javascript:".
	normalized := strings.ToLower(reCtrlOrSpace.ReplaceAllString(target, ""))
	if strings.HasPrefix(normalized, "javascript:") {
		return "[" + label + "]"
	}

	// "@route" links stay inside the app and become fragment routes.
	if strings.HasPrefix(target, "@") {
		route := strings.TrimPrefix(target, "@")
		return `<a href="#/` + route + `">` + label + `</a>`
	}

	return `<a href="` + target + `" target="_blank" rel="noopener noreferrer">` + label + `</a>`
}
