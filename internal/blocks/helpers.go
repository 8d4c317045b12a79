package blocks

import (
	"strconv"
	"strings"

	"union-site-backend/internal/models"
)

func blockData(block models.Block) map[string]interface{} {
	if block.Data != nil {
		return block.Data
	}
	return map[string]interface{}{}
}

func getString(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	if value, ok := data[key]; ok {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return ""
}

func parseBool(value interface{}, fallback bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(strings.ToLower(v))
		if trimmed == "" {
			return fallback
		}
		switch trimmed {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		default:
			return fallback
		}
	default:
		return fallback
	}
}

// parseLevel accepts the heading level however it was serialized: the editor
// passes form values through as strings, stored JSON decodes numbers as
// float64.
func parseLevel(value interface{}, fallback int) int {
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}

func stringSlice(value interface{}) []string {
	items := make([]string, 0)
	switch values := value.(type) {
	case []interface{}:
		for _, item := range values {
			str, ok := item.(string)
			if !ok {
				continue
			}
			if trimmed := strings.TrimSpace(str); trimmed != "" {
				items = append(items, trimmed)
			}
		}
	case []string:
		for _, item := range values {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				items = append(items, trimmed)
			}
		}
	}
	return items
}

// tableRows normalises the table content attribute into rows of cell strings.
func tableRows(value interface{}) [][]string {
	rows := make([][]string, 0)
	switch values := value.(type) {
	case [][]string:
		for _, row := range values {
			rows = append(rows, append([]string(nil), row...))
		}
	case []interface{}:
		for _, rawRow := range values {
			switch cells := rawRow.(type) {
			case []interface{}:
				row := make([]string, 0, len(cells))
				for _, cell := range cells {
					if str, ok := cell.(string); ok {
						row = append(row, str)
					} else {
						row = append(row, "")
					}
				}
				rows = append(rows, row)
			case []string:
				rows = append(rows, append([]string(nil), cells...))
			}
		}
	}
	return rows
}
