package blocks

import (
	"fmt"
	"strings"

	"union-site-backend/internal/models"
)

// RegisterTable registers the default table renderer on the provided registry.
func RegisterTable(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(TypeTable, renderTable)
}

func renderTable(ctx RenderContext, prefix string, block models.Block) string {
	data := blockData(block)

	rows := tableRows(data[KeyContent])
	if len(rows) == 0 {
		return ""
	}

	withHeadings := parseBool(data[KeyWithHeadings], false)
	tableClass := fmt.Sprintf("%s__table", prefix)
	cellClass := fmt.Sprintf("%s__table-cell", prefix)

	var sb strings.Builder
	sb.WriteString(`<table class="` + tableClass + `">`)

	body := rows
	if withHeadings {
		sb.WriteString(`<thead><tr>`)
		for _, cell := range rows[0] {
			sb.WriteString(`<th class="` + cellClass + `">` + ctx.SanitizeHTML(cell) + `</th>`)
		}
		sb.WriteString(`</tr></thead>`)
		body = rows[1:]
	}

	sb.WriteString(`<tbody>`)
	for _, row := range body {
		sb.WriteString(`<tr>`)
		for _, cell := range row {
			sb.WriteString(`<td class="` + cellClass + `">` + ctx.SanitizeHTML(cell) + `</td>`)
		}
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</tbody></table>`)

	return sb.String()
}
