package blocks

import (
	"strings"
	"testing"

	"union-site-backend/internal/models"
)

func TestRenderHeader(t *testing.T) {
	r := NewRenderer(Options{Prefix: "article"})

	got, err := r.Render(models.BlockList{
		{Type: TypeHeader, Data: map[string]interface{}{KeyLevel: "2", KeyText: "Hello"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<h2 class="article__header">Hello</h2>`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderHeaderClampedForEvents(t *testing.T) {
	r := NewRenderer(Options{Prefix: "event", MinHeadingLevel: 2})

	got, err := r.Render(models.BlockList{
		{Type: TypeHeader, Data: map[string]interface{}{KeyLevel: "1", KeyText: "Top"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "<h2") {
		t.Fatalf("expected h1 to clamp to h2 in event content, got %q", got)
	}
}

func TestRenderOrderFollowsSequence(t *testing.T) {
	r := NewRenderer(Options{Prefix: "article"})

	got, err := r.Render(models.BlockList{
		{Type: TypeParagraph, Data: map[string]interface{}{KeyText: "first"}},
		{Type: TypeParagraph, Data: map[string]interface{}{KeyText: "second"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Index(got, "first") > strings.Index(got, "second") {
		t.Fatalf("blocks rendered out of sequence order: %q", got)
	}
}

func TestRenderList(t *testing.T) {
	r := NewRenderer(Options{Prefix: "article"})

	got, err := r.Render(models.BlockList{
		{Type: TypeList, Data: map[string]interface{}{
			KeyStyle: StyleOrdered,
			KeyItems: []interface{}{"one", "two"},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "<ol") {
		t.Fatalf("expected ordered list, got %q", got)
	}
	if strings.Count(got, "<li") != 2 {
		t.Fatalf("expected 2 items, got %q", got)
	}
}

func TestRenderTableWithHeadings(t *testing.T) {
	r := NewRenderer(Options{Prefix: "article"})

	got, err := r.Render(models.BlockList{
		{Type: TypeTable, Data: map[string]interface{}{
			KeyWithHeadings: true,
			KeyContent: []interface{}{
				[]interface{}{"Name", "Group"},
				[]interface{}{"Ivan", "B21"},
				[]interface{}{"Anna", "B22"},
			},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "<thead>") {
		t.Fatalf("expected a header row, got %q", got)
	}
	if strings.Count(got, "<th ") != 2 {
		t.Fatalf("expected 2 header cells, got %q", got)
	}
	if strings.Count(got, "<td ") != 4 {
		t.Fatalf("expected 4 body cells, got %q", got)
	}
}

func TestRenderCodeEscapesVerbatim(t *testing.T) {
	r := NewRenderer(Options{Prefix: "article"})

	got, err := r.Render(models.BlockList{
		{Type: TypeCode, Data: map[string]interface{}{
			KeyCode:     "<b>not bold</b> **not markdown**",
			KeyLanguage: "html",
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("code text was not escaped: %q", got)
	}
	if strings.Contains(got, "<strong>") {
		t.Fatalf("markdown must not apply inside code blocks: %q", got)
	}
	if !strings.Contains(got, "html") {
		t.Fatalf("language label missing: %q", got)
	}
}

func TestRenderUnknownTypeFails(t *testing.T) {
	r := NewRenderer(Options{Prefix: "article"})

	_, err := r.Render(models.BlockList{
		{Type: "carousel", Data: map[string]interface{}{}},
	})
	if err == nil {
		t.Fatalf("expected error for unknown block type")
	}
}

func TestRenderMissingDataFails(t *testing.T) {
	r := NewRenderer(Options{Prefix: "article"})

	_, err := r.Render(models.BlockList{{Type: TypeParagraph}})
	if err == nil {
		t.Fatalf("expected error for block without data")
	}
}

func TestRenderEmptyBlocksProduceNothing(t *testing.T) {
	r := NewRenderer(Options{Prefix: "article"})

	got, err := r.Render(models.BlockList{
		{Type: TypeParagraph, Data: map[string]interface{}{KeyText: "  "}},
		{Type: TypeImage, Data: map[string]interface{}{KeyURL: ""}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
