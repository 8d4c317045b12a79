package editor

import (
	"encoding/json"
	"sync"
	"time"

	"union-site-backend/internal/blocks"
)

const DefaultDebounce = 200 * time.Millisecond

// Preview keeps a rendered copy of an editor session's content in sync with
// the widgets. Input events are coalesced by a debounce delay, and the
// render only reruns when the serialized JSON actually changed since the
// last recompute. An optional timer re-triggers the recompute independently
// of input.
type Preview struct {
	editor   *Editor
	renderer *blocks.Renderer

	mu       sync.Mutex
	lastJSON string
	html     string
	err      error

	debounce time.Duration
	timer    *time.Timer
	ticker   *time.Ticker
	stop     chan struct{}
	stopped  bool
}

// PreviewOptions configure debounce and the optional auto-refresh interval.
type PreviewOptions struct {
	Debounce    time.Duration
	AutoRefresh time.Duration
}

// NewPreview attaches a live preview to the editor. Close must be called when
// the editing view is torn down, otherwise the auto-refresh timer leaks
// across route changes.
func NewPreview(e *Editor, renderer *blocks.Renderer, opts PreviewOptions) *Preview {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	p := &Preview{
		editor:   e,
		renderer: renderer,
		debounce: debounce,
		stop:     make(chan struct{}),
	}

	e.OnChange(p.scheduleRefresh)

	if opts.AutoRefresh > 0 {
		p.ticker = time.NewTicker(opts.AutoRefresh)
		go p.autoRefreshLoop()
	}

	// Seed the preview from the initial content.
	p.Refresh()

	return p
}

func (p *Preview) autoRefreshLoop() {
	for {
		select {
		case <-p.ticker.C:
			p.Refresh()
		case <-p.stop:
			return
		}
	}
}

// scheduleRefresh coalesces bursts of input events into one recompute after
// the debounce delay.
func (p *Preview) scheduleRefresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}

	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, func() { p.Refresh() })
}

// Refresh serializes the editor and re-renders if the content changed.
// It reports whether a re-render happened.
func (p *Preview) Refresh() bool {
	serialized := p.editor.Serialize()
	encoded, err := json.Marshal(serialized)
	if err != nil {
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if string(encoded) == p.lastJSON {
		return false
	}
	p.lastJSON = string(encoded)

	html, err := p.renderer.Render(serialized)
	if err != nil {
		// Keep the previous markup visible; the error is what the editing
		// view surfaces until the content is corrected.
		p.err = err
		return true
	}

	p.html = html
	p.err = nil
	return true
}

// HTML returns the current preview markup.
func (p *Preview) HTML() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.html
}

// Err returns the render error, if the last recompute failed. Submission is
// blocked while this is non-nil.
func (p *Preview) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Close tears the preview down and releases its timers.
func (p *Preview) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true

	if p.timer != nil {
		p.timer.Stop()
	}
	if p.ticker != nil {
		p.ticker.Stop()
	}
	close(p.stop)
}
