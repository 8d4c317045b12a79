package editor

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"union-site-backend/internal/blocks"
	"union-site-backend/internal/models"
)

// Widget is the editing surface for one block. Implementations are selected
// by block type; the widget owns its editable state and knows how to read it
// back out as a Block.
type Widget interface {
	// ID identifies the widget within its editor session.
	ID() string
	// Type is the block type this widget edits.
	Type() string
	// Serialize reads the declared attributes into a Block.
	Serialize() models.Block
	// Field returns the current editable value of one attribute.
	Field(key string) (string, bool)
	// SetField replaces the editable value of one attribute.
	SetField(key, value string) error
}

// NewWidget creates a default-initialized widget for the given block type.
func NewWidget(blockType string) (Widget, error) {
	schema, ok := blocks.SchemaFor(blockType)
	if !ok {
		return nil, fmt.Errorf("unknown block type %q", blockType)
	}

	if blockType == blocks.TypeTable {
		return newTableWidget(), nil
	}
	return newFieldWidget(schema), nil
}

// WidgetFromBlock builds a widget pre-loaded with a stored block's content.
func WidgetFromBlock(block models.Block) (Widget, error) {
	w, err := NewWidget(block.Type)
	if err != nil {
		return nil, err
	}

	switch widget := w.(type) {
	case *tableWidget:
		widget.load(block.Data)
	case *fieldWidget:
		widget.load(block.Data)
	}
	return w, nil
}

// fieldWidget covers every block type whose attributes are plain editable
// values: header, paragraph, list, image, quote, code and video.
type fieldWidget struct {
	id     string
	schema blocks.Schema
	values map[string]string
}

func newFieldWidget(schema blocks.Schema) *fieldWidget {
	values := make(map[string]string, len(schema.Fields))
	for _, field := range schema.Fields {
		switch def := field.Default.(type) {
		case string:
			values[field.Key] = def
		case []string:
			values[field.Key] = strings.Join(def, "\n")
		case bool:
			values[field.Key] = fmt.Sprintf("%t", def)
		}
	}
	return &fieldWidget{
		id:     uuid.New().String(),
		schema: schema,
		values: values,
	}
}

func (w *fieldWidget) ID() string   { return w.id }
func (w *fieldWidget) Type() string { return w.schema.Type }

func (w *fieldWidget) Field(key string) (string, bool) {
	value, ok := w.values[key]
	return value, ok
}

func (w *fieldWidget) SetField(key, value string) error {
	if _, ok := w.values[key]; !ok {
		return fmt.Errorf("block type %s has no attribute %q", w.schema.Type, key)
	}
	w.values[key] = value
	return nil
}

// Serialize reads each declared attribute's current value. Values are passed
// through as the strings that were entered; line-split attributes become one
// trimmed item per nonblank line.
func (w *fieldWidget) Serialize() models.Block {
	data := make(map[string]interface{}, len(w.schema.Fields))
	for _, field := range w.schema.Fields {
		raw := w.values[field.Key]
		switch field.Kind {
		case blocks.FieldLines:
			data[field.Key] = splitLines(raw)
		default:
			data[field.Key] = raw
		}
	}
	return models.Block{Type: w.schema.Type, Data: data}
}

func (w *fieldWidget) load(data map[string]interface{}) {
	for _, field := range w.schema.Fields {
		raw, ok := data[field.Key]
		if !ok {
			continue
		}
		switch value := raw.(type) {
		case string:
			w.values[field.Key] = value
		case []interface{}:
			lines := make([]string, 0, len(value))
			for _, item := range value {
				if str, ok := item.(string); ok {
					lines = append(lines, str)
				}
			}
			w.values[field.Key] = strings.Join(lines, "\n")
		case []string:
			w.values[field.Key] = strings.Join(value, "\n")
		case bool:
			w.values[field.Key] = fmt.Sprintf("%t", value)
		case float64:
			w.values[field.Key] = strings.TrimSuffix(fmt.Sprintf("%g", value), ".0")
		}
	}
}

func splitLines(raw string) []string {
	items := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
