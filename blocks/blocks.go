// Package blocks resolves a document body into renderable nodes and renders
// them through a per-variant set of components.
//
// Resolution is where the body's degradations happen: images whose asset
// does not resolve and tables without rows are dropped, unknown block types
// are dropped, and consecutive list items are grouped. The order of the
// remaining nodes is the order of the body.
package blocks

import (
	"github.com/eringen/storyframe/assets"
	"github.com/eringen/storyframe/document"
)

// AssetResolver resolves media references. *assets.Resolver implements it.
type AssetResolver interface {
	Resolve(ref assets.Ref) (assets.Asset, bool)
}

// Node is a resolved, renderable block. Implementations: Text, List,
// Figure, Table.
type Node interface {
	Kind() document.Kind
}

// Text is a paragraph, heading or quote.
type Text struct {
	Key      string
	Style    string
	Spans    []document.Span
	MarkDefs []document.MarkDef
	// First marks the first normal paragraph of the body.
	First bool
}

func (Text) Kind() document.Kind { return document.KindText }

// List groups consecutive list items of the same type.
type List struct {
	Key     string
	Ordered bool
	Items   []Text
}

func (List) Kind() document.Kind { return document.KindText }

// Figure is an image with a resolved asset.
type Figure struct {
	Key     string
	Asset   assets.Asset
	Alt     string
	Caption string
}

func (Figure) Kind() document.Kind { return document.KindImage }

// Table has a header and zero or more body rows, every row exactly as wide
// as the header.
type Table struct {
	Key    string
	Header []string
	Rows   [][]string
}

func (Table) Kind() document.Kind { return document.KindTable }

// Resolve walks body in order and returns the nodes that produce output.
func Resolve(body []document.Block, r AssetResolver) []Node {
	nodes := make([]Node, 0, len(body))
	seenParagraph := false
	var list *List

	flush := func() {
		if list != nil {
			nodes = append(nodes, *list)
			list = nil
		}
	}

	for _, b := range body {
		switch blk := b.(type) {
		case document.TextBlock:
			t := textNode(blk)
			if blk.ListItem != "" {
				ordered := blk.ListItem == "number"
				if list == nil || list.Ordered != ordered {
					flush()
					list = &List{Key: blk.BlockKey, Ordered: ordered}
				}
				list.Items = append(list.Items, t)
				continue
			}
			flush()
			if t.Style == "normal" && !seenParagraph {
				t.First = true
				seenParagraph = true
			}
			nodes = append(nodes, t)
		case document.ImageBlock:
			flush()
			if fig, ok := ResolveImage(blk, r); ok {
				nodes = append(nodes, fig)
			}
		case document.TableBlock:
			flush()
			if tbl, ok := ResolveTable(blk); ok {
				nodes = append(nodes, tbl)
			}
		default:
			flush()
		}
	}
	flush()
	return nodes
}

// ResolveImage resolves an image block. It reports false when the asset
// yields no URL.
func ResolveImage(b document.ImageBlock, r AssetResolver) (Figure, bool) {
	if r == nil || b.Ref.IsZero() {
		return Figure{}, false
	}
	a, ok := r.Resolve(b.Ref)
	if !ok || a.URL == "" {
		return Figure{}, false
	}
	return Figure{Key: b.BlockKey, Asset: a, Alt: b.Alt, Caption: b.Caption}, true
}

// ResolveTable splits rows into header and body. It reports false for a
// table without rows. Body rows shorter than the header are padded with
// empty cells, longer ones are truncated.
func ResolveTable(b document.TableBlock) (Table, bool) {
	if len(b.Rows) == 0 {
		return Table{}, false
	}
	header := append([]string(nil), b.Rows[0]...)
	rows := make([][]string, 0, len(b.Rows)-1)
	for _, raw := range b.Rows[1:] {
		row := make([]string, len(header))
		copy(row, raw)
		rows = append(rows, row)
	}
	return Table{Key: b.BlockKey, Header: header, Rows: rows}, true
}

func textNode(b document.TextBlock) Text {
	style := b.Style
	if style == "" {
		style = "normal"
	}
	return Text{Key: b.BlockKey, Style: style, Spans: b.Spans, MarkDefs: b.MarkDefs}
}

// PlainText concatenates the span texts of t.
func (t Text) PlainText() string {
	return document.TextBlock{Spans: t.Spans}.PlainText()
}
