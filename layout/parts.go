package layout

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/storyframe/assets"
	"github.com/eringen/storyframe/blocks"
	"github.com/eringen/storyframe/document"
	"github.com/eringen/storyframe/markup"
	"github.com/eringen/storyframe/readtime"
)

// HeroKind is the media shown at the top of an article.
type HeroKind int

const (
	HeroPlaceholder HeroKind = iota
	HeroImage
	HeroVideo
)

// Hero is the resolved hero media. Poster is set for video heroes when the
// primary image resolves.
type Hero struct {
	Kind     HeroKind
	VideoURL string
	Image    assets.Asset
}

// ChooseHero picks the hero media: video when allowed and present, else the
// primary image, else the placeholder gradient.
func ChooseHero(doc document.Document, r blocks.AssetResolver, allowVideo bool) Hero {
	var img assets.Asset
	hasImage := false
	if doc.MainImage != nil && r != nil {
		if a, ok := r.Resolve(*doc.MainImage); ok && markup.SafeURL(a.URL) != "" {
			img, hasImage = a, true
		}
	}
	if allowVideo {
		if v := markup.SafeURL(doc.HeroVideoURL); v != "" {
			return Hero{Kind: HeroVideo, VideoURL: v, Image: img}
		}
	}
	if hasImage {
		return Hero{Kind: HeroImage, Image: img}
	}
	return Hero{Kind: HeroPlaceholder}
}

type authorView struct {
	Name  string
	Image *assets.Asset
	Bio   string
}

func resolveAuthor(a *document.Author, r blocks.AssetResolver) *authorView {
	if a == nil || a.Name == "" {
		return nil
	}
	v := &authorView{Name: a.Name, Bio: a.Bio}
	if a.Image != nil && r != nil {
		if img, ok := r.Resolve(*a.Image); ok && markup.SafeURL(img.URL) != "" {
			v.Image = &img
		}
	}
	return v
}

// authorBlock renders the attribution, or nothing when there is no author.
func authorBlock(a *authorView, class string) templ.Component {
	if a == nil {
		return templ.NopComponent
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.NewWriter(w)
		mw.Raw(`<aside data-author`).Attr("class", markup.Class("flex items-start gap-4", class)).Raw(">")
		if a.Image != nil {
			mw.Raw("<img").Attr("src", a.Image.URL).Attr("alt", a.Name).
				Attr("class", "h-14 w-14 rounded-full object-cover").
				Attr("width", "56").Attr("height", "56").Attr("loading", "lazy").Raw("/>")
		}
		mw.Raw(`<div><p class="text-xs uppercase tracking-[0.2em] opacity-60">Written by</p>`)
		mw.Raw(`<p class="font-semibold">`).Text(a.Name).Raw("</p>")
		if a.Bio != "" {
			mw.Raw(`<p class="mt-2 text-sm opacity-80">`).Text(a.Bio).Raw("</p>")
		}
		mw.Raw("</div></aside>")
		return mw.Err()
	})
}

// meta renders "date · N min read", dropping the date when unknown.
func meta(mw *markup.Writer, a article, class string) {
	mw.Raw("<p").Attr("class", class).Raw(">")
	if a.date != "" {
		mw.Raw("<time").Attr("datetime", isoDate(a.doc.PublishedAt)).Raw(">").
			Text(a.date).Raw("</time>").Raw(`<span aria-hidden="true"> · </span>`)
	}
	mw.Raw("<span data-reading-time>").Text(readtime.Label(a.minutes)).Raw("</span></p>")
}

func excerpt(mw *markup.Writer, a article, class string) {
	if a.doc.Excerpt == "" {
		return
	}
	mw.Raw("<p").Attr("class", class).Raw(">").Text(a.doc.Excerpt).Raw("</p>")
}

func backLink(mw *markup.Writer, href, label, class string) {
	mw.Raw("<a").Attr("href", href).Attr("class", class).Attr("data-back", "").Raw(">").
		Raw(`<span aria-hidden="true">&larr;</span> `).Text(label).Raw("</a>")
}

func progressBar(mw *markup.Writer, v Variant, class string) {
	if !v.ShowsProgress() {
		return
	}
	mw.Raw(`<div role="progressbar" aria-valuemin="0" aria-valuemax="100" aria-valuenow="0" data-progress`).
		Attr("class", class).Raw(` style="width:0%"></div>`)
}

func heroImage(mw *markup.Writer, img assets.Asset, alt, class string) {
	mw.Raw("<img").Attr("src", img.URL).Attr("alt", alt).
		Attr("width", strconv.Itoa(img.Width)).Attr("height", strconv.Itoa(img.Height)).
		Attr("class", class).Attr("fetchpriority", "high").Raw("/>")
}

func placeholder(mw *markup.Writer, class string) {
	mw.Raw(`<div data-hero-placeholder`).Attr("class", class).Raw("></div>")
}

func parallaxStyle(offset float64) string {
	return fmt.Sprintf("transform:translateY(%.1fpx)", offset)
}
