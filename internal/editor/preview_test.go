package editor

import (
	"strings"
	"testing"
	"time"

	"union-site-backend/internal/blocks"
)

func newTestPreview(t *testing.T, opts PreviewOptions) (*Editor, *Preview) {
	t.Helper()
	e := New()
	renderer := blocks.NewRenderer(blocks.Options{Prefix: "article"})
	p := NewPreview(e, renderer, opts)
	t.Cleanup(p.Close)
	return e, p
}

func TestPreviewSkipsRecomputeWhenUnchanged(t *testing.T) {
	e, p := newTestPreview(t, PreviewOptions{})

	e.AddBlock(blocks.TypeParagraph)
	e.SetField(0, blocks.KeyText, "hello")

	if changed := p.Refresh(); !changed {
		t.Fatalf("expected first refresh after edits to re-render")
	}
	if changed := p.Refresh(); changed {
		t.Fatalf("expected refresh with identical content to short-circuit")
	}
}

func TestPreviewTracksEdits(t *testing.T) {
	e, p := newTestPreview(t, PreviewOptions{})

	e.AddBlock(blocks.TypeHeader)
	e.SetField(0, blocks.KeyText, "Welcome")
	p.Refresh()

	if !strings.Contains(p.HTML(), "Welcome") {
		t.Fatalf("preview did not pick up content: %q", p.HTML())
	}

	e.SetField(0, blocks.KeyText, "Updated")
	p.Refresh()

	if !strings.Contains(p.HTML(), "Updated") {
		t.Fatalf("preview did not track the edit: %q", p.HTML())
	}
}

func TestPreviewDebouncedRefresh(t *testing.T) {
	e, p := newTestPreview(t, PreviewOptions{Debounce: 30 * time.Millisecond})

	e.AddBlock(blocks.TypeParagraph)
	e.SetField(0, blocks.KeyText, "typed text")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(p.HTML(), "typed text") {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("debounced refresh never ran; preview: %q", p.HTML())
}

func TestPreviewCloseStopsTimers(t *testing.T) {
	e, p := newTestPreview(t, PreviewOptions{AutoRefresh: 10 * time.Millisecond})

	p.Close()
	e.AddBlock(blocks.TypeParagraph)
	e.SetField(0, blocks.KeyText, "after close")

	time.Sleep(50 * time.Millisecond)
	if strings.Contains(p.HTML(), "after close") {
		t.Fatalf("preview kept refreshing after Close")
	}
}
