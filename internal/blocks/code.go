package blocks

import (
	"fmt"
	"html/template"
	"strings"

	"union-site-backend/internal/models"
)

// RegisterCode registers the default code renderer on the provided registry.
func RegisterCode(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(TypeCode, renderCode)
}

// renderCode escapes the code text verbatim. Inline markup does not apply
// inside code blocks; the language label is display-only.
func renderCode(ctx RenderContext, prefix string, block models.Block) string {
	data := blockData(block)

	code := getString(data, KeyCode)
	if strings.TrimSpace(code) == "" {
		return ""
	}
	language := strings.TrimSpace(getString(data, KeyLanguage))

	codeClass := fmt.Sprintf("%s__code", prefix)

	var sb strings.Builder
	sb.WriteString(`<div class="` + codeClass + `">`)
	if language != "" {
		sb.WriteString(`<span class="` + codeClass + `-language">` + template.HTMLEscapeString(language) + `</span>`)
	}
	sb.WriteString(`<pre class="` + codeClass + `-pre"><code>` + template.HTMLEscapeString(code) + `</code></pre>`)
	sb.WriteString(`</div>`)

	return sb.String()
}
