package blocks

import (
	"fmt"
	"strings"

	"union-site-backend/internal/models"
)

// RegisterParagraph registers the default paragraph renderer on the provided registry.
func RegisterParagraph(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(TypeParagraph, renderParagraph)
}

func renderParagraph(ctx RenderContext, prefix string, block models.Block) string {
	data := blockData(block)

	text := strings.TrimSpace(getString(data, KeyText))
	if text == "" {
		return ""
	}

	paragraphClass := fmt.Sprintf("%s__paragraph", prefix)
	return fmt.Sprintf(`<p class="%s">%s</p>`, paragraphClass, ctx.FormatInline(text))
}
