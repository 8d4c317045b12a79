package blocks

import (
	"fmt"
	"html/template"
	"strings"

	"union-site-backend/internal/models"
)

// RegisterImage registers the default image renderer on the provided registry.
func RegisterImage(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(TypeImage, renderImage)
}

func renderImage(ctx RenderContext, prefix string, block models.Block) string {
	data := blockData(block)

	url := strings.TrimSpace(getString(data, KeyURL))
	if url == "" {
		return ""
	}
	caption := strings.TrimSpace(getString(data, KeyCaption))

	figureClass := fmt.Sprintf("%s__image", prefix)
	imageClass := fmt.Sprintf("%s__image-img", prefix)

	var sb strings.Builder
	sb.WriteString(`<figure class="` + figureClass + `">`)
	sb.WriteString(`<img class="` + imageClass + `" src="` + template.HTMLEscapeString(url) + `" alt="` + template.HTMLEscapeString(caption) + `" />`)
	if caption != "" {
		captionClass := fmt.Sprintf("%s__image-caption", prefix)
		sb.WriteString(`<figcaption class="` + captionClass + `">` + ctx.FormatInline(caption) + `</figcaption>`)
	}
	sb.WriteString(`</figure>`)

	return sb.String()
}
