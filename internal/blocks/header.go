package blocks

import (
	"fmt"
	"strings"

	"union-site-backend/internal/models"
)

// RegisterHeader registers the default header renderer on the provided registry.
func RegisterHeader(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(TypeHeader, renderHeader)
}

func renderHeader(ctx RenderContext, prefix string, block models.Block) string {
	data := blockData(block)

	text := strings.TrimSpace(getString(data, KeyText))
	if text == "" {
		return ""
	}

	level := ctx.ClampHeading(parseLevel(data[KeyLevel], 2))
	headerClass := fmt.Sprintf("%s__header", prefix)
	formatted := ctx.FormatInline(text)

	return fmt.Sprintf(`<h%d class="%s">%s</h%d>`, level, headerClass, formatted, level)
}
