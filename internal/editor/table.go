package editor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"union-site-backend/internal/blocks"
	"union-site-backend/internal/models"
)

var (
	// ErrNoFocusedCell is returned by row/column deletion when no cell was
	// focused to identify the target.
	ErrNoFocusedCell = errors.New("focus a table cell first")
	// ErrMinRows guards the two-row floor of table blocks.
	ErrMinRows = errors.New("a table keeps at least 2 rows")
	// ErrMinColumns guards the two-column floor of table blocks.
	ErrMinColumns = errors.New("a table keeps at least 2 columns")
)

const (
	minTableRows    = 2
	minTableColumns = 2
)

// tableWidget edits a table block: rows of cells plus the headings flag.
// Deletion targets are identified by the most recently focused cell.
type tableWidget struct {
	id           string
	rows         [][]string
	withHeadings bool

	focusRow int
	focusCol int
}

func newTableWidget() *tableWidget {
	return &tableWidget{
		id:       uuid.New().String(),
		rows:     [][]string{{"", ""}, {"", ""}},
		focusRow: -1,
		focusCol: -1,
	}
}

func (w *tableWidget) ID() string   { return w.id }
func (w *tableWidget) Type() string { return blocks.TypeTable }

func (w *tableWidget) Field(key string) (string, bool) {
	if key == blocks.KeyWithHeadings {
		return fmt.Sprintf("%t", w.withHeadings), true
	}
	return "", false
}

func (w *tableWidget) SetField(key, value string) error {
	if key != blocks.KeyWithHeadings {
		return fmt.Errorf("table block has no editable attribute %q", key)
	}
	w.withHeadings = value == "true" || value == "1"
	return nil
}

func (w *tableWidget) Serialize() models.Block {
	content := make([][]string, len(w.rows))
	for i, row := range w.rows {
		content[i] = append([]string(nil), row...)
	}
	return models.Block{
		Type: blocks.TypeTable,
		Data: map[string]interface{}{
			blocks.KeyWithHeadings: w.withHeadings,
			blocks.KeyContent:      content,
		},
	}
}

func (w *tableWidget) load(data map[string]interface{}) {
	if data == nil {
		return
	}
	if rows := tableRowsFromData(data[blocks.KeyContent]); len(rows) > 0 {
		w.rows = rows
	}
	if raw, ok := data[blocks.KeyWithHeadings]; ok {
		switch v := raw.(type) {
		case bool:
			w.withHeadings = v
		case string:
			w.withHeadings = v == "true" || v == "1"
		}
	}
}

func (w *tableWidget) columns() int {
	if len(w.rows) == 0 {
		return 0
	}
	return len(w.rows[0])
}

// FocusCell records which cell subsequent row/column operations target.
func (w *tableWidget) FocusCell(row, col int) error {
	if row < 0 || row >= len(w.rows) || col < 0 || col >= w.columns() {
		return fmt.Errorf("cell %d,%d is out of range", row, col)
	}
	w.focusRow, w.focusCol = row, col
	return nil
}

func (w *tableWidget) SetCell(row, col int, value string) error {
	if row < 0 || row >= len(w.rows) || col < 0 || col >= w.columns() {
		return fmt.Errorf("cell %d,%d is out of range", row, col)
	}
	w.rows[row][col] = value
	return nil
}

func (w *tableWidget) AddRow() {
	w.rows = append(w.rows, make([]string, w.columns()))
}

func (w *tableWidget) AddColumn() {
	for i := range w.rows {
		w.rows[i] = append(w.rows[i], "")
	}
}

func (w *tableWidget) DeleteRow() error {
	if w.focusRow < 0 {
		return ErrNoFocusedCell
	}
	if len(w.rows) <= minTableRows {
		return ErrMinRows
	}
	w.rows = append(w.rows[:w.focusRow], w.rows[w.focusRow+1:]...)
	w.focusRow, w.focusCol = -1, -1
	return nil
}

func (w *tableWidget) DeleteColumn() error {
	if w.focusCol < 0 {
		return ErrNoFocusedCell
	}
	if w.columns() <= minTableColumns {
		return ErrMinColumns
	}
	for i := range w.rows {
		w.rows[i] = append(w.rows[i][:w.focusCol], w.rows[i][w.focusCol+1:]...)
	}
	w.focusRow, w.focusCol = -1, -1
	return nil
}

// ToggleHeadings flips the first row between header and body representation.
// Cell contents are untouched either way; only the interpretation changes.
func (w *tableWidget) ToggleHeadings() {
	w.withHeadings = !w.withHeadings
}

func tableRowsFromData(value interface{}) [][]string {
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
