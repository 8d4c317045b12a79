package blocks

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"union-site-backend/internal/models"
)

// Options control how a Renderer emits markup.
type Options struct {
	// Prefix is the BEM-style class prefix on emitted elements.
	Prefix string
	// MinHeadingLevel restricts header blocks: article content allows 1-3,
	// event content allows 2-3.
	MinHeadingLevel int
}

// Renderer transforms a block sequence into sanitized display markup. It is
// a pure function of its input: no network, no shared mutable state.
type Renderer struct {
	registry   *Registry
	policy     *bluemonday.Policy
	prefix     string
	minHeading int
}

const maxHeadingLevel = 3

// NewRenderer creates a renderer with every built-in block type registered.
func NewRenderer(opts Options) *Renderer {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "content"
	}
	minHeading := opts.MinHeadingLevel
	if minHeading < 1 || minHeading > maxHeadingLevel {
		minHeading = 1
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	policy.AllowAttrs("target", "rel").OnElements("a")
	policy.AllowAttrs("data-platform", "data-default").OnElements("div", "button")
	policy.AllowElements("iframe")
	policy.AllowAttrs("src", "title", "frameborder", "allow", "allowfullscreen").OnElements("iframe")

	return &Renderer{
		registry:   DefaultRegistry(),
		policy:     policy,
		prefix:     prefix,
		minHeading: minHeading,
	}
}

// Render produces the markup for the whole block sequence. Position in the
// sequence is the only thing that determines output order. An unknown block
// type or a block without data is a malformed document and yields an error
// rather than partial output.
func (r *Renderer) Render(list models.BlockList) (string, error) {
	var sb strings.Builder

	for i, block := range list {
		blockType := strings.TrimSpace(strings.ToLower(block.Type))
		fn, ok := r.registry.Get(blockType)
		if !ok {
			return "", fmt.Errorf("block %d: unknown type %q", i, block.Type)
		}
		if block.Data == nil {
			return "", fmt.Errorf("block %d (%s): missing data", i, blockType)
		}
		sb.WriteString(fn(r, r.prefix, block))
	}

	return sb.String(), nil
}

// SanitizeHTML implements RenderContext.
func (r *Renderer) SanitizeHTML(input string) string {
	return r.policy.Sanitize(input)
}

// FormatInline implements RenderContext.
func (r *Renderer) FormatInline(text string) string {
	return FormatInline(text)
}

// ClampHeading implements RenderContext.
func (r *Renderer) ClampHeading(level int) int {
	if level < r.minHeading {
		return r.minHeading
	}
	if level > maxHeadingLevel {
		return maxHeadingLevel
	}
	return level
}
