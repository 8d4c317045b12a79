package editor

import (
	"errors"
	"fmt"

	"union-site-backend/internal/models"
)

var (
	// ErrNoSelection is returned when link formatting is attempted without a
	// selected text range; the message doubles as the user-facing prompt.
	ErrNoSelection = errors.New("select the text to turn into a link first")
	// ErrNotTable is returned when a table operation targets a widget of a
	// different type.
	ErrNotTable = errors.New("the focused block is not a table")
)

// focusState tracks the currently focused editable region and the selected
// range inside it. Formatting operations apply there and nowhere else.
type focusState struct {
	widget   int
	field    string
	selStart int
	selEnd   int
}

// Editor maintains one widget per block, in visual order matching the
// underlying sequence. All operations mutate that order directly; Serialize
// walks it widget by widget.
type Editor struct {
	widgets []Widget
	focus   *focusState

	onChange func()
}

func New() *Editor {
	return &Editor{}
}

// NewFromBlocks builds an editor session pre-loaded with stored content.
func NewFromBlocks(list models.BlockList) (*Editor, error) {
	e := New()
	for i, block := range list {
		w, err := WidgetFromBlock(block)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		e.widgets = append(e.widgets, w)
	}
	return e, nil
}

// OnChange registers a callback fired after every content-changing operation.
func (e *Editor) OnChange(fn func()) {
	e.onChange = fn
}

func (e *Editor) changed() {
	if e.onChange != nil {
		e.onChange()
	}
}

func (e *Editor) Len() int {
	return len(e.widgets)
}

func (e *Editor) Widget(i int) (Widget, error) {
	if i < 0 || i >= len(e.widgets) {
		return nil, fmt.Errorf("no block at position %d", i)
	}
	return e.widgets[i], nil
}

// AddBlock appends a default-initialized widget of the given type to the end
// of the sequence.
func (e *Editor) AddBlock(blockType string) (Widget, error) {
	w, err := NewWidget(blockType)
	if err != nil {
		return nil, err
	}
	e.widgets = append(e.widgets, w)
	e.changed()
	return w, nil
}

// MoveUp swaps a block with the one before it. At the top boundary the call
// is a no-op.
func (e *Editor) MoveUp(i int) error {
	if i < 0 || i >= len(e.widgets) {
		return fmt.Errorf("no block at position %d", i)
	}
	if i == 0 {
		return nil
	}
	e.widgets[i-1], e.widgets[i] = e.widgets[i], e.widgets[i-1]
	e.changed()
	return nil
}

// MoveDown swaps a block with the one after it. At the bottom boundary the
// call is a no-op.
func (e *Editor) MoveDown(i int) error {
	if i < 0 || i >= len(e.widgets) {
		return fmt.Errorf("no block at position %d", i)
	}
	if i == len(e.widgets)-1 {
		return nil
	}
	e.widgets[i], e.widgets[i+1] = e.widgets[i+1], e.widgets[i]
	e.changed()
	return nil
}

// Delete removes the widget at the given position. No confirmation: the
// effect is local and recoverable only by re-adding the block manually.
func (e *Editor) Delete(i int) error {
	if i < 0 || i >= len(e.widgets) {
		return fmt.Errorf("no block at position %d", i)
	}
	e.widgets = append(e.widgets[:i], e.widgets[i+1:]...)
	if e.focus != nil && e.focus.widget == i {
		e.focus = nil
	}
	e.changed()
	return nil
}

// SetField replaces the editable value of one attribute of one widget.
func (e *Editor) SetField(i int, key, value string) error {
	w, err := e.Widget(i)
	if err != nil {
		return err
	}
	if err := w.SetField(key, value); err != nil {
		return err
	}
	e.changed()
	return nil
}

// Focus records the editable region and selection that formatting operations
// apply to.
func (e *Editor) Focus(i int, field string, selStart, selEnd int) error {
	w, err := e.Widget(i)
	if err != nil {
		return err
	}
	value, ok := w.Field(field)
	if !ok {
		return fmt.Errorf("block type %s has no attribute %q", w.Type(), field)
	}
	if selStart < 0 || selEnd > len(value) || selStart > selEnd {
		return fmt.Errorf("selection %d..%d is out of range", selStart, selEnd)
	}
	e.focus = &focusState{widget: i, field: field, selStart: selStart, selEnd: selEnd}
	return nil
}

// FormatBold wraps the current selection in bold markers.
func (e *Editor) FormatBold() error {
	return e.wrapSelection("**", "**", false)
}

// FormatItalic wraps the current selection in italic markers.
func (e *Editor) FormatItalic() error {
	return e.wrapSelection("*", "*", false)
}

// FormatLink turns the current selection into a markdown link. Unlike bold
// and italic it refuses an empty selection.
func (e *Editor) FormatLink(url string) error {
	return e.wrapSelection("[", "]("+url+")", true)
}

func (e *Editor) wrapSelection(before, after string, requireSelection bool) error {
	if e.focus == nil {
		return ErrNoSelection
	}
	w, err := e.Widget(e.focus.widget)
	if err != nil {
		return err
	}
	value, ok := w.Field(e.focus.field)
	if !ok || e.focus.selEnd > len(value) {
		return ErrNoSelection
	}

	selected := value[e.focus.selStart:e.focus.selEnd]
	if requireSelection && selected == "" {
		return ErrNoSelection
	}

	updated := value[:e.focus.selStart] + before + selected + after + value[e.focus.selEnd:]
	if err := w.SetField(e.focus.field, updated); err != nil {
		return err
	}
	e.focus.selEnd = e.focus.selStart + len(before) + len(selected) + len(after)
	e.changed()
	return nil
}

// Serialize walks the widgets in visual order and reads each one's declared
// attributes into the block sequence.
func (e *Editor) Serialize() models.BlockList {
	list := make(models.BlockList, 0, len(e.widgets))
	for _, w := range e.widgets {
		list = append(list, w.Serialize())
	}
	return list
}

func (e *Editor) table(i int) (*tableWidget, error) {
	w, err := e.Widget(i)
	if err != nil {
		return nil, err
	}
	table, ok := w.(*tableWidget)
	if !ok {
		return nil, ErrNotTable
	}
	return table, nil
}

// FocusTableCell records the deletion target for row/column operations.
func (e *Editor) FocusTableCell(i, row, col int) error {
	table, err := e.table(i)
	if err != nil {
		return err
	}
	return table.FocusCell(row, col)
}

// SetTableCell replaces one cell's content.
func (e *Editor) SetTableCell(i, row, col int, value string) error {
	table, err := e.table(i)
	if err != nil {
		return err
	}
	if err := table.SetCell(row, col, value); err != nil {
		return err
	}
	e.changed()
	return nil
}

func (e *Editor) TableAddRow(i int) error {
	table, err := e.table(i)
	if err != nil {
		return err
	}
	table.AddRow()
	e.changed()
	return nil
}

func (e *Editor) TableAddColumn(i int) error {
	table, err := e.table(i)
	if err != nil {
		return err
	}
	table.AddColumn()
	e.changed()
	return nil
}

func (e *Editor) TableDeleteRow(i int) error {
	table, err := e.table(i)
	if err != nil {
		return err
	}
	if err := table.DeleteRow(); err != nil {
		return err
	}
	e.changed()
	return nil
}

func (e *Editor) TableDeleteColumn(i int) error {
	table, err := e.table(i)
	if err != nil {
		return err
	}
	if err := table.DeleteColumn(); err != nil {
		return err
	}
	e.changed()
	return nil
}

func (e *Editor) TableToggleHeadings(i int) error {
	table, err := e.table(i)
	if err != nil {
		return err
	}
	table.ToggleHeadings()
	e.changed()
	return nil
}
