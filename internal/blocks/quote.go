package blocks

import (
	"fmt"
	"strings"

	"union-site-backend/internal/models"
)

// RegisterQuote registers the default quote renderer on the provided registry.
func RegisterQuote(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(TypeQuote, renderQuote)
}

func renderQuote(ctx RenderContext, prefix string, block models.Block) string {
	data := blockData(block)

	text := strings.TrimSpace(getString(data, KeyText))
	if text == "" {
		return ""
	}
	caption := strings.TrimSpace(getString(data, KeyCaption))

	quoteClass := fmt.Sprintf("%s__quote", prefix)

	var sb strings.Builder
	sb.WriteString(`<blockquote class="` + quoteClass + `">`)
	sb.WriteString(`<p class="` + quoteClass + `-text">` + ctx.FormatInline(text) + `</p>`)
	if caption != "" {
		sb.WriteString(`<cite class="` + quoteClass + `-caption">` + ctx.FormatInline(caption) + `</cite>`)
	}
	sb.WriteString(`</blockquote>`)

	return sb.String()
}
