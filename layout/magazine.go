package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/storyframe/blocks"
	"github.com/eringen/storyframe/document"
	"github.com/eringen/storyframe/markup"
)

type magazine struct {
	deps Deps
}

func (magazine) Variant() Variant { return Magazine }

// Magazine has no table styling; tables render nothing.
var magazineComponents = blocks.Components{
	Text: blocks.TextComponent(blocks.TextOptions{
		ParagraphClass:      "mb-6 font-serif text-lg leading-8 text-stone-800",
		FirstParagraphClass: "first-letter:float-left first-letter:mr-3 first-letter:text-7xl first-letter:font-bold first-letter:leading-none",
		HeadingClass:        "mt-12 mb-4 font-serif text-3xl font-bold text-stone-900",
		QuoteClass:          "my-10 border-y border-stone-300 py-6 text-center font-serif text-2xl italic text-stone-700",
	}),
	List: blocks.ListComponent("mb-6 ml-6 list-outside space-y-2 font-serif text-lg text-stone-800"),
	Image: blocks.FigureComponent(blocks.FigureOptions{
		FigureClass:  "-mx-6 my-12 md:-mx-16",
		ImageClass:   "w-full",
		CaptionClass: "mt-3 px-6 text-sm italic text-stone-500 md:px-16",
		DefaultAlt:   "Article image",
	}),
}

func (r magazine) Render(doc document.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		a := prepare(doc, r.deps)
		hero := ChooseHero(doc, r.deps.Assets, false)

		mw := markup.NewWriter(w)
		mw.Raw(`<article data-layout="magazine" class="min-h-screen bg-stone-50 text-stone-900">`)

		mw.Raw(`<header class="border-b border-stone-200"><div class="mx-auto flex max-w-5xl items-center justify-between px-6 py-4">`)
		backLink(mw, r.deps.BackURL, "Back", "inline-flex items-center gap-2 text-sm text-stone-600 hover:text-stone-900")
		mw.Raw(`<button type="button" data-share class="text-sm text-stone-600 hover:text-stone-900"`).
			Attr("data-share-title", doc.Title).
			Attr("data-share-url", doc.Link()).
			Raw(">Share</button>")
		mw.Raw(`</div></header>`)

		mw.Raw(`<figure class="relative h-[60vh] w-full overflow-hidden">`)
		if hero.Kind == HeroImage {
			heroImage(mw, hero.Image, doc.Title, "h-full w-full object-cover")
		} else {
			placeholder(mw, "h-full w-full bg-gradient-to-br from-amber-100 via-stone-200 to-stone-300")
		}
		mw.Raw(`</figure>`)

		mw.Raw(`<div class="mx-auto max-w-3xl px-6 py-16">`)
		mw.Raw(`<span class="inline-block bg-stone-900 px-3 py-1 text-xs font-semibold uppercase tracking-[0.2em] text-white">Insights</span>`)
		mw.Raw(`<h1 class="mt-6 font-serif text-4xl font-bold leading-tight md:text-5xl">`).Text(doc.Title).Raw("</h1>")
		excerpt(mw, a, "mt-6 font-serif text-xl italic leading-relaxed text-stone-600")
		meta(mw, a, "mt-6 border-b border-stone-200 pb-8 text-sm uppercase tracking-wider text-stone-500")
		mw.Raw(`<div class="mt-10" data-body>`)
		mw.Component(ctx, magazineComponents.Render(a.nodes))
		mw.Raw(`</div>`)
		mw.Component(ctx, authorBlock(a.author, "mt-16 border-t border-stone-200 pt-8"))
		mw.Raw(`<div class="mt-12">`)
		backLink(mw, r.deps.BackURL, "More insights", "inline-flex items-center gap-2 font-semibold text-stone-900 underline underline-offset-4")
		mw.Raw(`</div></div></article>`)
		return mw.Err()
	})
}
