package blocks

// Block type tags. The set is closed: the editor builds widgets and the
// renderer dispatches over exactly these values.
const (
	TypeHeader    = "header"
	TypeParagraph = "paragraph"
	TypeList      = "list"
	TypeImage     = "image"
	TypeQuote     = "quote"
	TypeCode      = "code"
	TypeTable     = "table"
	TypeVideo     = "video"
)

// Attribute keys shared by the editor's serialization and the renderer, so
// the two sides cannot drift apart.
const (
	KeyText         = "text"
	KeyLevel        = "level"
	KeyStyle        = "style"
	KeyItems        = "items"
	KeyURL          = "url"
	KeyCaption      = "caption"
	KeyCode         = "code"
	KeyLanguage     = "language"
	KeyContent      = "content"
	KeyWithHeadings = "withHeadings"
	KeyYouTube      = "youtube"
	KeyVK           = "vk"
)

// List styles.
const (
	StyleOrdered   = "ordered"
	StyleUnordered = "unordered"
)

// FieldKind describes how the editor presents and serializes one attribute.
type FieldKind string

const (
	FieldText      FieldKind = "text"      // single-line editable region
	FieldMultiline FieldKind = "multiline" // freeform text kept as one string
	FieldLines     FieldKind = "lines"     // freeform text, one item per nonblank line
	FieldSelect    FieldKind = "select"    // one of a fixed option set
	FieldBool      FieldKind = "bool"
	FieldTable     FieldKind = "table" // rows of cells, managed by table operations
)

// Field is one declared attribute of a block type.
type Field struct {
	Key     string
	Kind    FieldKind
	Options []string
	Default interface{}
}

// Schema is the shared definition of a block type: the editor default-
// initializes widgets from it and serializes exactly its declared fields; the
// renderer reads the same keys.
type Schema struct {
	Type   string
	Fields []Field
}

var schemas = map[string]Schema{
	TypeHeader: {
		Type: TypeHeader,
		Fields: []Field{
			{Key: KeyLevel, Kind: FieldSelect, Options: []string{"1", "2", "3"}, Default: "2"},
			{Key: KeyText, Kind: FieldText, Default: ""},
		},
	},
	TypeParagraph: {
		Type: TypeParagraph,
		Fields: []Field{
			{Key: KeyText, Kind: FieldMultiline, Default: ""},
		},
	},
	TypeList: {
		Type: TypeList,
		Fields: []Field{
			{Key: KeyStyle, Kind: FieldSelect, Options: []string{StyleUnordered, StyleOrdered}, Default: StyleUnordered},
			{Key: KeyItems, Kind: FieldLines, Default: []string{}},
		},
	},
	TypeImage: {
		Type: TypeImage,
		Fields: []Field{
			{Key: KeyURL, Kind: FieldText, Default: ""},
			{Key: KeyCaption, Kind: FieldText, Default: ""},
		},
	},
	TypeQuote: {
		Type: TypeQuote,
		Fields: []Field{
			{Key: KeyText, Kind: FieldMultiline, Default: ""},
			{Key: KeyCaption, Kind: FieldText, Default: ""},
		},
	},
	TypeCode: {
		Type: TypeCode,
		Fields: []Field{
			{Key: KeyCode, Kind: FieldMultiline, Default: ""},
			{Key: KeyLanguage, Kind: FieldText, Default: ""},
		},
	},
	TypeTable: {
		Type: TypeTable,
		Fields: []Field{
			{Key: KeyWithHeadings, Kind: FieldBool, Default: false},
			{Key: KeyContent, Kind: FieldTable, Default: [][]string{{"", ""}, {"", ""}}},
		},
	},
	TypeVideo: {
		Type: TypeVideo,
		Fields: []Field{
			{Key: KeyYouTube, Kind: FieldText, Default: ""},
			{Key: KeyVK, Kind: FieldText, Default: ""},
		},
	},
}

// SchemaFor returns the shared schema for a block type.
func SchemaFor(blockType string) (Schema, bool) {
	s, ok := schemas[blockType]
	return s, ok
}

// Types lists every known block type in a stable order.
func Types() []string {
	return []string{
		TypeHeader, TypeParagraph, TypeList, TypeImage,
		TypeQuote, TypeCode, TypeTable, TypeVideo,
	}
}
