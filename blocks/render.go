package blocks

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gosimple/slug"

	"github.com/eringen/storyframe/document"
	"github.com/eringen/storyframe/markup"
)

// Components maps node kinds to presentation. A nil entry means the variant
// does not support that kind and such nodes render as nothing.
type Components struct {
	Text  func(Text) templ.Component
	List  func(List) templ.Component
	Image func(Figure) templ.Component
	Table func(Table) templ.Component
}

// Render renders nodes in order.
func (c Components) Render(nodes []Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, n := range nodes {
			var cmp templ.Component
			switch node := n.(type) {
			case Text:
				if c.Text != nil {
					cmp = c.Text(node)
				}
			case List:
				if c.List != nil {
					cmp = c.List(node)
				}
			case Figure:
				if c.Image != nil {
					cmp = c.Image(node)
				}
			case Table:
				if c.Table != nil {
					cmp = c.Table(node)
				}
			}
			if cmp == nil {
				continue
			}
			if err := cmp.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// TextOptions styles text nodes.
type TextOptions struct {
	ParagraphClass      string
	FirstParagraphClass string // added to the first normal paragraph
	HeadingClass        string
	QuoteClass          string
}

// TextComponent returns a text renderer configured by opts.
func TextComponent(opts TextOptions) func(Text) templ.Component {
	return func(t Text) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			mw := markup.NewWriter(w)
			switch t.Style {
			case "h1", "h2", "h3", "h4":
				mw.Raw("<", t.Style)
				if id := slug.Make(t.PlainText()); id != "" {
					mw.Attr("id", id)
				}
				if opts.HeadingClass != "" {
					mw.Attr("class", opts.HeadingClass)
				}
				mw.Raw(">")
				WriteSpans(mw, t)
				mw.Raw("</", t.Style, ">")
			case "blockquote":
				mw.Raw("<blockquote")
				if opts.QuoteClass != "" {
					mw.Attr("class", opts.QuoteClass)
				}
				mw.Raw(">")
				WriteSpans(mw, t)
				mw.Raw("</blockquote>")
			default:
				class := opts.ParagraphClass
				if t.First {
					class = markup.Class(class, opts.FirstParagraphClass)
				}
				mw.Raw("<p")
				if class != "" {
					mw.Attr("class", class)
				}
				mw.Raw(">")
				WriteSpans(mw, t)
				mw.Raw("</p>")
			}
			return mw.Err()
		})
	}
}

// ListComponent renders grouped list items.
func ListComponent(class string) func(List) templ.Component {
	return func(l List) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			tag := "ul"
			if l.Ordered {
				tag = "ol"
			}
			mw := markup.NewWriter(w)
			mw.Raw("<", tag)
			if class != "" {
				mw.Attr("class", class)
			}
			mw.Raw(">")
			for _, item := range l.Items {
				mw.Raw("<li>")
				WriteSpans(mw, item)
				mw.Raw("</li>")
			}
			mw.Raw("</", tag, ">")
			return mw.Err()
		})
	}
}

// decorators maps span decorator marks to their element.
var decorators = map[string]string{
	"strong":         "strong",
	"em":             "em",
	"code":           "code",
	"underline":      "u",
	"strike-through": "s",
}

// WriteSpans writes the spans of t with decorators and link annotations.
func WriteSpans(mw *markup.Writer, t Text) {
	for _, span := range t.Spans {
		var closers []string
		for _, mark := range span.Marks {
			if tag, ok := decorators[mark]; ok {
				mw.Raw("<", tag, ">")
				closers = append(closers, "</"+tag+">")
				continue
			}
			def, ok := document.TextBlock{MarkDefs: t.MarkDefs}.MarkDef(mark)
			if !ok || def.Type != "link" {
				continue
			}
			href := markup.SafeURL(def.Href)
			if href == "" {
				continue
			}
			mw.Raw("<a").Attr("href", href)
			if def.Blank || isExternal(href) {
				mw.Attr("target", "_blank").Attr("rel", "noopener noreferrer")
			}
			mw.Raw(">")
			closers = append(closers, "</a>")
		}
		writeLines(mw, span.Text)
		for i := len(closers) - 1; i >= 0; i-- {
			mw.Raw(closers[i])
		}
	}
}

func writeLines(mw *markup.Writer, s string) {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 {
			mw.Raw("<br/>")
		}
		mw.Text(line)
	}
}

func isExternal(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

// FigureOptions styles image nodes.
type FigureOptions struct {
	FigureClass  string
	ImageClass   string
	CaptionClass string
	// DefaultAlt is used when the block carries no alternative text.
	DefaultAlt string
	Eager      bool
}

// FigureComponent returns an image renderer configured by opts.
func FigureComponent(opts FigureOptions) func(Figure) templ.Component {
	return func(f Figure) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			src := markup.SafeURL(f.Asset.URL)
			if src == "" {
				return nil
			}
			alt := f.Alt
			if alt == "" {
				alt = opts.DefaultAlt
			}
			mw := markup.NewWriter(w)
			mw.Raw("<figure")
			if opts.FigureClass != "" {
				mw.Attr("class", opts.FigureClass)
			}
			mw.Raw("><img").Attr("src", src).Attr("alt", alt).
				Attr("width", strconv.Itoa(f.Asset.Width)).
				Attr("height", strconv.Itoa(f.Asset.Height))
			if opts.ImageClass != "" {
				mw.Attr("class", opts.ImageClass)
			}
			if !opts.Eager {
				mw.Attr("loading", "lazy")
			}
			mw.Raw("/>")
			if f.Caption != "" {
				mw.Raw("<figcaption")
				if opts.CaptionClass != "" {
					mw.Attr("class", opts.CaptionClass)
				}
				mw.Raw(">").Text(f.Caption).Raw("</figcaption>")
			}
			mw.Raw("</figure>")
			return mw.Err()
		})
	}
}

// TableOptions styles table nodes.
type TableOptions struct {
	WrapperClass string
	TableClass   string
	HeadClass    string
	CellClass    string
}

// TableComponent returns a table renderer configured by opts. The first row
// is the header, the rest are body rows.
func TableComponent(opts TableOptions) func(Table) templ.Component {
	return func(t Table) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			mw := markup.NewWriter(w)
			mw.Raw("<div")
			if opts.WrapperClass != "" {
				mw.Attr("class", opts.WrapperClass)
			}
			mw.Raw("><table")
			if opts.TableClass != "" {
				mw.Attr("class", opts.TableClass)
			}
			mw.Raw("><thead><tr>")
			for _, cell := range t.Header {
				mw.Raw("<th")
				if opts.HeadClass != "" {
					mw.Attr("class", opts.HeadClass)
				}
				mw.Raw(">").Text(cell).Raw("</th>")
			}
			mw.Raw("</tr></thead><tbody>")
			for _, row := range t.Rows {
				mw.Raw("<tr>")
				for _, cell := range row {
					mw.Raw("<td")
					if opts.CellClass != "" {
						mw.Attr("class", opts.CellClass)
					}
					mw.Raw(">").Text(cell).Raw("</td>")
				}
				mw.Raw("</tr>")
			}
			mw.Raw("</tbody></table></div>")
			return mw.Err()
		})
	}
}
