package blocks

import (
	"fmt"
	"strings"

	"union-site-backend/internal/models"
)

// RegisterList registers the default list renderer on the provided registry.
func RegisterList(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(TypeList, renderList)
}

func renderList(ctx RenderContext, prefix string, block models.Block) string {
	data := blockData(block)

	items := stringSlice(data[KeyItems])
	if len(items) == 0 {
		return ""
	}

	ordered := strings.TrimSpace(strings.ToLower(getString(data, KeyStyle))) == StyleOrdered

	listTag := "ul"
	listClass := fmt.Sprintf("%s__list", prefix)
	if ordered {
		listTag = "ol"
		listClass += " " + listClass + "--ordered"
	}

	itemClass := fmt.Sprintf("%s__list-item", prefix)

	var sb strings.Builder
	sb.WriteString(`<` + listTag + ` class="` + listClass + `">`)
	for _, item := range items {
		sb.WriteString(`<li class="` + itemClass + `">` + ctx.FormatInline(item) + `</li>`)
	}
	sb.WriteString(`</` + listTag + `>`)

	return sb.String()
}
