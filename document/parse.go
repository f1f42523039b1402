package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/eringen/storyframe/assets"
)

// Parse converts a single document payload into a Document.
func Parse(payload []byte) (Document, error) {
	if !gjson.ValidBytes(payload) {
		return Document{}, fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return Document{}, fmt.Errorf("%w: expected object, got %s", ErrMalformed, root.Type)
	}

	doc := Document{
		ID:           root.Get("_id").String(),
		Title:        strings.TrimSpace(root.Get("title").String()),
		Slug:         parseSlug(root.Get("slug")),
		MainImage:    parseImage(root.Get("mainImage")),
		HeroVideoURL: strings.TrimSpace(root.Get("heroVideoUrl").String()),
		Body:         ParseBody(root.Get("body")),
		PublishedAt:  parseTime(root.Get("publishedAt").String()),
		Excerpt:      strings.TrimSpace(root.Get("excerpt").String()),
		Style:        ParseStyle(root.Get("postStyle").String()),
		Author:       parseAuthor(root.Get("author")),
	}
	if doc.Excerpt == "" {
		doc.Excerpt = FirstText(doc.Body)
	}
	return doc, nil
}

// ParsePreviews converts a list payload into preview items, preserving order.
// Elements that are not objects are skipped.
func ParsePreviews(payload []byte) ([]PreviewItem, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	root := gjson.ParseBytes(payload)
	if root.Type == gjson.Null {
		return nil, nil
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrMalformed, root.Type)
	}
	items := make([]PreviewItem, 0, len(root.Array()))
	for _, el := range root.Array() {
		if !el.IsObject() {
			continue
		}
		items = append(items, parsePreview(el))
	}
	return items, nil
}

// ParsePreview converts a single list element.
func ParsePreview(raw []byte) (PreviewItem, error) {
	el := gjson.ParseBytes(raw)
	if !gjson.ValidBytes(raw) || !el.IsObject() {
		return PreviewItem{}, ErrMalformed
	}
	return parsePreview(el), nil
}

func parsePreview(el gjson.Result) PreviewItem {
	p := PreviewItem{
		ID:          el.Get("_id").String(),
		Title:       strings.TrimSpace(el.Get("title").String()),
		Slug:        parseSlug(el.Get("slug")),
		Image:       parseImage(el.Get("mainImage")),
		PublishedAt: parseTime(el.Get("publishedAt").String()),
		AuthorName:  strings.TrimSpace(el.Get("authorName").String()),
		Excerpt:     strings.TrimSpace(el.Get("excerpt").String()),
	}
	if p.AuthorName == "" {
		p.AuthorName = strings.TrimSpace(el.Get("author.name").String())
	}
	if p.Excerpt == "" {
		if body := el.Get("body"); body.IsArray() {
			p.Excerpt = FirstText(ParseBody(body))
		}
	}
	return p
}

// ParseBody walks a block array. Order is preserved and every element yields
// exactly one Block.
func ParseBody(body gjson.Result) []Block {
	if !body.IsArray() {
		return nil
	}
	arr := body.Array()
	blocks := make([]Block, 0, len(arr))
	for _, el := range arr {
		blocks = append(blocks, parseBlock(el))
	}
	return blocks
}

func parseBlock(el gjson.Result) Block {
	key := el.Get("_key").String()
	if !el.IsObject() {
		return UnknownBlock{BlockKey: key, Type: el.Type.String()}
	}
	switch typ := el.Get("_type").String(); typ {
	case "block":
		return parseText(el, key)
	case "image":
		ref := parseRef(el.Get("asset"))
		if ref == nil {
			ref = &assets.Ref{}
		}
		return ImageBlock{
			BlockKey: key,
			Ref:      *ref,
			Alt:      strings.TrimSpace(el.Get("alt").String()),
			Caption:  strings.TrimSpace(el.Get("caption").String()),
		}
	case "table":
		return parseTable(el, key)
	default:
		return UnknownBlock{BlockKey: key, Type: typ}
	}
}

func parseText(el gjson.Result, key string) TextBlock {
	tb := TextBlock{
		BlockKey: key,
		Style:    el.Get("style").String(),
		ListItem: el.Get("listItem").String(),
		Level:    int(el.Get("level").Int()),
	}
	if tb.Style == "" {
		tb.Style = "normal"
	}
	for _, child := range el.Get("children").Array() {
		if !child.IsObject() {
			continue
		}
		span := Span{Text: child.Get("text").String()}
		for _, m := range child.Get("marks").Array() {
			if m.Type == gjson.String && m.String() != "" {
				span.Marks = append(span.Marks, m.String())
			}
		}
		tb.Spans = append(tb.Spans, span)
	}
	for _, def := range el.Get("markDefs").Array() {
		if !def.IsObject() {
			continue
		}
		tb.MarkDefs = append(tb.MarkDefs, MarkDef{
			Key:   def.Get("_key").String(),
			Type:  def.Get("_type").String(),
			Href:  def.Get("href").String(),
			Blank: def.Get("blank").Bool(),
		})
	}
	return tb
}

func parseTable(el gjson.Result, key string) TableBlock {
	tb := TableBlock{BlockKey: key}
	for _, row := range el.Get("rows").Array() {
		var cells []string
		// Rows are either {"cells": [...]} or a bare array of cells.
		src := row.Get("cells")
		if row.IsArray() {
			src = row
		}
		for _, c := range src.Array() {
			cells = append(cells, c.String())
		}
		tb.Rows = append(tb.Rows, cells)
	}
	return tb
}

// parseImage reads an image field ({"asset": {...}}). A field that carries
// no asset yields nil.
func parseImage(v gjson.Result) *assets.Ref {
	if !v.IsObject() {
		return nil
	}
	if asset := v.Get("asset"); asset.Exists() {
		return parseRef(asset)
	}
	// Some projections flatten the asset into the image itself.
	return parseRef(v)
}

func parseRef(asset gjson.Result) *assets.Ref {
	if !asset.IsObject() {
		return nil
	}
	ref := assets.Ref{
		URL:    strings.TrimSpace(asset.Get("url").String()),
		Width:  int(asset.Get("metadata.dimensions.width").Int()),
		Height: int(asset.Get("metadata.dimensions.height").Int()),
	}
	ref.AssetID = asset.Get("_ref").String()
	if ref.AssetID == "" {
		ref.AssetID = asset.Get("_id").String()
	}
	if ref.IsZero() {
		return nil
	}
	return &ref
}

func parseAuthor(v gjson.Result) *Author {
	if !v.IsObject() {
		return nil
	}
	name := strings.TrimSpace(v.Get("name").String())
	if name == "" {
		return nil
	}
	a := &Author{Name: name, Image: parseImage(v.Get("image"))}
	bio := v.Get("bio")
	if bio.IsArray() {
		var parts []string
		for _, b := range ParseBody(bio) {
			if t, ok := b.(TextBlock); ok {
				if s := strings.TrimSpace(t.PlainText()); s != "" {
					parts = append(parts, s)
				}
			}
		}
		a.Bio = strings.Join(parts, "\n\n")
	} else {
		a.Bio = strings.TrimSpace(bio.String())
	}
	return a
}

func parseSlug(v gjson.Result) string {
	if v.IsObject() {
		return strings.TrimSpace(v.Get("current").String())
	}
	return strings.TrimSpace(v.String())
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
