package editor

import (
	"encoding/json"
	"errors"
	"testing"

	"union-site-backend/internal/blocks"
	"union-site-backend/internal/models"
)

func TestAddHeaderBlockSerializes(t *testing.T) {
	e := New()

	if _, err := e.AddBlock(blocks.TypeHeader); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.SetField(0, blocks.KeyLevel, "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.SetField(0, blocks.KeyText, "Hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := json.Marshal(e.Serialize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `[{"type":"header","data":{"level":"2","text":"Hello"}}]`
	if string(got) != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestAddBlockRejectsUnknownType(t *testing.T) {
	e := New()
	if _, err := e.AddBlock("jumbotron"); err == nil {
		t.Fatalf("expected error for unknown block type")
	}
}

func TestMoveUpThenDownRestoresOrder(t *testing.T) {
	e := New()
	e.AddBlock(blocks.TypeHeader)
	e.AddBlock(blocks.TypeParagraph)
	e.AddBlock(blocks.TypeQuote)

	original := typesOf(e)

	if err := e.MoveUp(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.MoveDown(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := typesOf(e); !equalStrings(got, original) {
		t.Fatalf("move up then down did not restore order: %v != %v", got, original)
	}
}

func TestMoveIsNoOpAtBoundaries(t *testing.T) {
	e := New()
	e.AddBlock(blocks.TypeHeader)
	e.AddBlock(blocks.TypeParagraph)

	original := typesOf(e)

	if err := e.MoveUp(0); err != nil {
		t.Fatalf("boundary move up errored: %v", err)
	}
	if err := e.MoveDown(1); err != nil {
		t.Fatalf("boundary move down errored: %v", err)
	}
	if got := typesOf(e); !equalStrings(got, original) {
		t.Fatalf("boundary moves changed order: %v != %v", got, original)
	}
}

func TestDeleteRemovesWidget(t *testing.T) {
	e := New()
	e.AddBlock(blocks.TypeHeader)
	e.AddBlock(blocks.TypeParagraph)

	if err := e.Delete(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Len() != 1 {
		t.Fatalf("expected 1 widget, got %d", e.Len())
	}
	w, _ := e.Widget(0)
	if w.Type() != blocks.TypeParagraph {
		t.Fatalf("wrong widget deleted, got %s", w.Type())
	}
}

func TestFormatLinkRequiresSelection(t *testing.T) {
	e := New()
	e.AddBlock(blocks.TypeParagraph)
	e.SetField(0, blocks.KeyText, "visit the site")

	if err := e.Focus(0, blocks.KeyText, 6, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.FormatLink("https://example.com"); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection for empty selection, got %v", err)
	}

	if err := e.Focus(0, blocks.KeyText, 6, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.FormatLink("https://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, _ := e.Widget(0)
	got, _ := w.Field(blocks.KeyText)
	want := "visit [the](https://example.com) site"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatBoldWrapsSelection(t *testing.T) {
	e := New()
	e.AddBlock(blocks.TypeParagraph)
	e.SetField(0, blocks.KeyText, "important note")

	if err := e.Focus(0, blocks.KeyText, 0, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.FormatBold(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, _ := e.Widget(0)
	got, _ := w.Field(blocks.KeyText)
	if got != "**important** note" {
		t.Fatalf("got %q", got)
	}
}

func TestListItemsSplitPerNonblankLine(t *testing.T) {
	e := New()
	e.AddBlock(blocks.TypeList)
	e.SetField(0, blocks.KeyItems, "  first \n\n second\n   \nthird")

	serialized := e.Serialize()
	items, ok := serialized[0].Data[blocks.KeyItems].([]string)
	if !ok {
		t.Fatalf("items did not serialize as a string list: %T", serialized[0].Data[blocks.KeyItems])
	}
	want := []string{"first", "second", "third"}
	if !equalStrings(items, want) {
		t.Fatalf("got %v, want %v", items, want)
	}
}

func TestTableDeleteRowFloor(t *testing.T) {
	e := New()
	e.AddBlock(blocks.TypeTable)

	if err := e.FocusTableCell(0, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.TableDeleteRow(0); !errors.Is(err, ErrMinRows) {
		t.Fatalf("expected ErrMinRows on a 2-row table, got %v", err)
	}

	serialized := e.Serialize()
	rows := serialized[0].Data[blocks.KeyContent].([][]string)
	if len(rows) != 2 {
		t.Fatalf("row count changed, got %d rows", len(rows))
	}
}

func TestTableDeleteColumnFloor(t *testing.T) {
	e := New()
	e.AddBlock(blocks.TypeTable)

	if err := e.TableDeleteColumn(0); !errors.Is(err, ErrNoFocusedCell) {
		t.Fatalf("expected ErrNoFocusedCell without focus, got %v", err)
	}

	e.FocusTableCell(0, 0, 1)
	if err := e.TableDeleteColumn(0); !errors.Is(err, ErrMinColumns) {
		t.Fatalf("expected ErrMinColumns on a 2-column table, got %v", err)
	}
}

func TestTableAddThenDeleteRow(t *testing.T) {
	e := New()
	e.AddBlock(blocks.TypeTable)
	e.TableAddRow(0)

	if err := e.FocusTableCell(0, 2, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.TableDeleteRow(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := e.Serialize()[0].Data[blocks.KeyContent].([][]string)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after delete, got %d", len(rows))
	}
}

func TestTableToggleHeadingsPreservesFirstRow(t *testing.T) {
	e := New()
	e.AddBlock(blocks.TypeTable)
	e.TableAddRow(0)

	cells := [][]string{{"Name", "Group"}, {"Ivan", "B21"}, {"Anna", "B22"}}
	for r, row := range cells {
		for c, cell := range row {
			if err := e.SetTableCell(0, r, c, cell); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	}

	if err := e.TableToggleHeadings(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	renderer := blocks.NewRenderer(blocks.Options{Prefix: "article"})
	html, err := renderer.Render(e.Serialize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := countOccurrences(html, "<tr>"); got != 3 {
		t.Fatalf("expected 3 rows total, got %d in %q", got, html)
	}
	if got := countOccurrences(html, "<th "); got != 2 {
		t.Fatalf("expected the former first row as 2 header cells, got %d", got)
	}
	for _, cell := range []string{"Name", "Group", "Ivan", "Anna"} {
		if !contains(html, cell) {
			t.Fatalf("cell %q lost in toggle: %q", cell, html)
		}
	}
}

func TestRoundTripStability(t *testing.T) {
	source := models.BlockList{
		{Type: blocks.TypeHeader, Data: map[string]interface{}{blocks.KeyLevel: "3", blocks.KeyText: "Agenda"}},
		{Type: blocks.TypeParagraph, Data: map[string]interface{}{blocks.KeyText: "Plain **bold** text"}},
		{Type: blocks.TypeList, Data: map[string]interface{}{blocks.KeyStyle: blocks.StyleOrdered, blocks.KeyItems: []interface{}{"one", "two"}}},
		{Type: blocks.TypeQuote, Data: map[string]interface{}{blocks.KeyText: "said once", blocks.KeyCaption: "someone"}},
		{Type: blocks.TypeImage, Data: map[string]interface{}{blocks.KeyURL: "https://cdn.example.com/a.png", blocks.KeyCaption: "poster"}},
		{Type: blocks.TypeTable, Data: map[string]interface{}{blocks.KeyWithHeadings: true, blocks.KeyContent: []interface{}{
			[]interface{}{"A", "B"},
			[]interface{}{"1", "2"},
		}}},
		{Type: blocks.TypeVideo, Data: map[string]interface{}{blocks.KeyYouTube: "https://youtu.be/dQw4w9WgXcQ", blocks.KeyVK: ""}},
	}

	e, err := NewFromBlocks(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	renderer := blocks.NewRenderer(blocks.Options{Prefix: "article"})
	fromEditor, err := renderer.Render(e.Serialize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fromSource, err := renderer.Render(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fromEditor != fromSource {
		t.Fatalf("round trip is not stable:\n%s\n!=\n%s", fromEditor, fromSource)
	}
}

func typesOf(e *Editor) []string {
	out := make([]string, 0, e.Len())
	for i := 0; i < e.Len(); i++ {
		w, _ := e.Widget(i)
		out = append(out, w.Type())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}

func contains(s, sub string) bool {
	return countOccurrences(s, sub) > 0
}
