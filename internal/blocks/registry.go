package blocks

import (
	"fmt"
	"strings"
	"sync"

	"union-site-backend/internal/models"
)

// RenderContext exposes the minimal capabilities block render funcs need.
type RenderContext interface {
	// SanitizeHTML cleans potentially unsafe markup before it is emitted.
	SanitizeHTML(input string) string
	// FormatInline applies the shared inline markup rules to author text.
	FormatInline(text string) string
	// ClampHeading forces a heading level into the range this renderer allows.
	ClampHeading(level int) int
}

// RenderFunc renders one block into display markup.
type RenderFunc func(ctx RenderContext, prefix string, block models.Block) string

// Registry stores the mapping between block types and their render funcs.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]RenderFunc
}

// NewRegistry creates an empty block renderer registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]RenderFunc)}
}

// Register associates a render func with a normalised block type.
func (r *Registry) Register(blockType string, fn RenderFunc) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}

	blockType = strings.TrimSpace(strings.ToLower(blockType))
	if blockType == "" {
		return fmt.Errorf("block type is empty")
	}
	if fn == nil {
		return fmt.Errorf("render func is nil for type %s", blockType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderers == nil {
		r.renderers = make(map[string]RenderFunc)
	}
	r.renderers[blockType] = fn
	return nil
}

// MustRegister registers the render func and panics if registration fails.
func (r *Registry) MustRegister(blockType string, fn RenderFunc) {
	if err := r.Register(blockType, fn); err != nil {
		panic(err)
	}
}

// Get retrieves the render func for the provided block type if one exists.
func (r *Registry) Get(blockType string) (RenderFunc, bool) {
	if r == nil {
		return nil, false
	}

	blockType = strings.TrimSpace(strings.ToLower(blockType))
	if blockType == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.renderers[blockType]
	return fn, ok
}

// DefaultRegistry returns a registry with every built-in block type wired.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	RegisterHeader(reg)
	RegisterParagraph(reg)
	RegisterList(reg)
	RegisterImage(reg)
	RegisterQuote(reg)
	RegisterCode(reg)
	RegisterTable(reg)
	RegisterVideo(reg)
	return reg
}
