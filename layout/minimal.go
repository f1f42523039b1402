package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/storyframe/blocks"
	"github.com/eringen/storyframe/document"
	"github.com/eringen/storyframe/markup"
	"github.com/eringen/storyframe/readtime"
)

type minimal struct {
	deps Deps
}

func (minimal) Variant() Variant { return Minimal }

var minimalComponents = blocks.Components{
	Text: blocks.TextComponent(blocks.TextOptions{
		ParagraphClass: "mb-5 leading-7 text-neutral-700",
		HeadingClass:   "mt-10 mb-3 text-xl font-semibold text-neutral-900",
		QuoteClass:     "my-6 border-l-2 border-neutral-300 pl-4 text-neutral-600",
	}),
	List: blocks.ListComponent("mb-5 ml-5 list-outside space-y-1 text-neutral-700"),
	Image: blocks.FigureComponent(blocks.FigureOptions{
		FigureClass:  "my-8",
		ImageClass:   "w-full rounded-md",
		CaptionClass: "mt-2 text-xs text-neutral-500",
		DefaultAlt:   "Article image",
	}),
}

func (r minimal) Render(doc document.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		a := prepare(doc, r.deps)
		hero := ChooseHero(doc, r.deps.Assets, false)

		mw := markup.NewWriter(w)
		mw.Raw(`<article data-layout="minimal" class="min-h-screen bg-white text-neutral-900">`)
		mw.Raw(`<header class="sticky top-0 z-40 border-b border-neutral-100 bg-white/90 backdrop-blur">`)
		mw.Raw(`<div class="mx-auto flex max-w-2xl items-center justify-between px-6 py-3 text-sm">`)
		backLink(mw, r.deps.BackURL, "Blog", "inline-flex items-center gap-1 text-neutral-500 hover:text-neutral-900")
		mw.Raw(`<span class="text-neutral-400" data-reading-time>`).Text(readtime.Label(a.minutes)).Raw("</span>")
		mw.Raw(`</div>`)
		progressBar(mw, Minimal, "h-0.5 bg-neutral-900 transition-[width] duration-150")
		mw.Raw(`</header>`)

		mw.Raw(`<div class="mx-auto max-w-2xl px-6 py-16">`)
		if a.date != "" {
			mw.Raw(`<p class="text-sm text-neutral-400"><time`).
				Attr("datetime", isoDate(doc.PublishedAt)).Raw(">").
				Text(a.date).Raw("</time></p>")
		}
		mw.Raw(`<h1 class="mt-3 text-3xl font-semibold tracking-tight">`).Text(doc.Title).Raw("</h1>")
		excerpt(mw, a, "mt-4 text-lg text-neutral-500")
		if hero.Kind == HeroImage {
			mw.Raw(`<div class="mt-10 aspect-video overflow-hidden rounded-md bg-neutral-100">`)
			heroImage(mw, hero.Image, doc.Title, "h-full w-full object-cover")
			mw.Raw(`</div>`)
		}
		mw.Raw(`<div class="mt-10" data-body>`)
		mw.Component(ctx, minimalComponents.Render(a.nodes))
		mw.Raw(`</div>`)
		mw.Component(ctx, authorBlock(a.author, "mt-12 border-t border-neutral-100 pt-8"))
		mw.Raw(`<div class="mt-12">`)
		backLink(mw, r.deps.BackURL, "All posts", "inline-flex items-center gap-1 text-sm text-neutral-500 hover:text-neutral-900")
		mw.Raw(`</div></div></article>`)
		return mw.Err()
	})
}
