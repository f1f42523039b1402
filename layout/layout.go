// Package layout selects and renders the article presentation variants.
//
// Every variant consumes the same document.Document and shares the
// resolved block sequence, the author attribution, the long-form date,
// the reading-time indicator and the return-to-list link. The variants
// differ in hero treatment, scroll-derived indicators and which block
// kinds they support.
package layout

import (
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/eringen/storyframe/blocks"
	"github.com/eringen/storyframe/document"
	"github.com/eringen/storyframe/readtime"
)

// Variant is one of the closed set of presentation strategies.
type Variant int

const (
	Immersive Variant = iota
	Magazine
	Minimal
)

func (v Variant) String() string {
	switch v {
	case Magazine:
		return "magazine"
	case Minimal:
		return "minimal"
	default:
		return "immersive"
	}
}

// Select maps a style tag to a variant. Unknown and empty tags select
// Immersive.
func Select(style string) Variant {
	switch document.ParseStyle(style) {
	case document.StyleMagazine:
		return Magazine
	case document.StyleMinimal:
		return Minimal
	default:
		return Immersive
	}
}

// Renderer renders a document as a complete article body.
type Renderer interface {
	Variant() Variant
	Render(doc document.Document) templ.Component
}

// Deps are the collaborators shared by all variants.
type Deps struct {
	Assets blocks.AssetResolver
	// BackURL is the target of the return-to-list link. Defaults to /blog/.
	BackURL string
	Log     *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.BackURL == "" {
		d.BackURL = "/blog/"
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return d
}

// For returns the renderer of v.
func For(v Variant, deps Deps) Renderer {
	deps = deps.withDefaults()
	switch v {
	case Magazine:
		return magazine{deps: deps}
	case Minimal:
		return minimal{deps: deps}
	default:
		return immersive{deps: deps}
	}
}

// RenderDocument selects the variant from the document's style and renders
// it.
func RenderDocument(doc document.Document, deps Deps) templ.Component {
	return For(Select(string(doc.Style)), deps).Render(doc)
}

// article is the per-render state shared by the variants. The block
// sequence is resolved and the reading time computed once.
type article struct {
	doc     document.Document
	nodes   []blocks.Node
	minutes int
	date    string
	author  *authorView
}

func prepare(doc document.Document, deps Deps) article {
	a := article{
		doc:     doc,
		nodes:   blocks.Resolve(doc.Body, deps.Assets),
		minutes: readtime.Estimate(doc.Body),
		date:    FormatDate(doc.PublishedAt),
		author:  resolveAuthor(doc.Author, deps.Assets),
	}
	deps.Log.Debug("prepared article",
		zap.String("slug", doc.Slug),
		zap.Int("blocks", len(doc.Body)),
		zap.Int("nodes", len(a.nodes)),
		zap.Int("minutes", a.minutes),
	)
	return a
}

// FormatDate renders t as "January 2, 2006". The zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// isoDate is the machine-readable form of FormatDate, in the same location.
func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ShortDate renders t as "Jan 2, 2006" for cards.
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
