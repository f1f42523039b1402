package document

import (
	"strings"

	"github.com/eringen/storyframe/assets"
)

// Kind tags the variant of a Block.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindImage
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Block is one structural unit of a document body. The set of
// implementations is closed: TextBlock, ImageBlock, TableBlock, UnknownBlock.
type Block interface {
	Kind() Kind
	Key() string
}

// Span is a run of text sharing the same marks. Marks are either decorator
// names (strong, em, code, underline, strike-through) or keys into the
// enclosing block's MarkDefs.
type Span struct {
	Text  string
	Marks []string
}

// MarkDef is an annotation referenced from span marks, typically a link.
type MarkDef struct {
	Key  string
	Type string
	Href string
	// Blank asks for the link to open in a new tab.
	Blank bool
}

// TextBlock is a paragraph, heading, quote or list item.
type TextBlock struct {
	BlockKey string
	Style    string // normal, h1..h4, blockquote
	ListItem string // "", bullet, number
	Level    int
	Spans    []Span
	MarkDefs []MarkDef
}

func (TextBlock) Kind() Kind    { return KindText }
func (b TextBlock) Key() string { return b.BlockKey }

// PlainText concatenates the span texts.
func (b TextBlock) PlainText() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// MarkDef returns the definition for key, if present.
func (b TextBlock) MarkDef(key string) (MarkDef, bool) {
	for _, d := range b.MarkDefs {
		if d.Key == key {
			return d, true
		}
	}
	return MarkDef{}, false
}

// ImageBlock is an inline figure.
type ImageBlock struct {
	BlockKey string
	Ref      assets.Ref
	Alt      string
	Caption  string
}

func (ImageBlock) Kind() Kind    { return KindImage }
func (b ImageBlock) Key() string { return b.BlockKey }

// TableBlock holds raw rows; the first row is the header.
type TableBlock struct {
	BlockKey string
	Rows     [][]string
}

func (TableBlock) Kind() Kind    { return KindTable }
func (b TableBlock) Key() string { return b.BlockKey }

// UnknownBlock preserves the position of a block type this package does not
// understand. It renders as nothing.
type UnknownBlock struct {
	BlockKey string
	Type     string
}

func (UnknownBlock) Kind() Kind    { return KindUnknown }
func (b UnknownBlock) Key() string { return b.BlockKey }
