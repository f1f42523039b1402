package layout

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/storyframe/blocks"
	"github.com/eringen/storyframe/document"
	"github.com/eringen/storyframe/markup"
)

type immersive struct {
	deps Deps
}

func (immersive) Variant() Variant { return Immersive }

var immersiveComponents = blocks.Components{
	Text: blocks.TextComponent(blocks.TextOptions{
		ParagraphClass: "mb-6 text-lg leading-relaxed text-white/80",
		HeadingClass:   "mt-12 mb-4 text-3xl font-bold text-white",
		QuoteClass:     "my-8 border-l-4 border-cyan-400 pl-6 text-xl italic text-white/90",
	}),
	List: blocks.ListComponent("mb-6 ml-6 list-outside space-y-2 text-lg text-white/80"),
	Image: blocks.FigureComponent(blocks.FigureOptions{
		FigureClass:  "my-12",
		ImageClass:   "w-full rounded-2xl shadow-2xl",
		CaptionClass: "mt-3 text-center text-sm text-white/50",
		DefaultAlt:   "Article image",
	}),
	Table: blocks.TableComponent(blocks.TableOptions{
		WrapperClass: "my-10 overflow-x-auto rounded-2xl border border-white/10",
		TableClass:   "w-full text-left text-sm",
		HeadClass:    "bg-white/10 px-4 py-3 font-semibold text-white",
		CellClass:    "border-t border-white/10 px-4 py-3 text-white/70",
	}),
}

func (r immersive) Render(doc document.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		a := prepare(doc, r.deps)
		hero := ChooseHero(doc, r.deps.Assets, true)

		mw := markup.NewWriter(w)
		mw.Raw(`<article data-layout="immersive" class="min-h-screen bg-slate-950 text-white">`)
		progressBar(mw, Immersive, "fixed left-0 top-0 z-50 h-1 bg-gradient-to-r from-cyan-400 to-blue-500 transition-[width] duration-150")

		mw.Raw(`<section class="relative h-screen overflow-hidden">`)
		mw.Raw(`<div class="absolute inset-0" data-parallax`).
			Attr("data-parallax-factor", strconv.FormatFloat(ParallaxFactor, 'g', -1, 64)).
			Attr("style", parallaxStyle(0)).Raw(">")
		switch hero.Kind {
		case HeroVideo:
			mw.Raw(`<video autoplay muted loop playsinline class="h-full w-full object-cover"`).
				Attr("src", hero.VideoURL)
			if hero.Image.URL != "" {
				mw.Attr("poster", hero.Image.URL)
			}
			mw.Raw("></video>")
		case HeroImage:
			heroImage(mw, hero.Image, doc.Title, "h-full w-full object-cover")
		default:
			placeholder(mw, "h-full w-full bg-gradient-to-br from-cyan-900 via-slate-900 to-blue-950")
		}
		mw.Raw(`</div>`)
		mw.Raw(`<div class="absolute inset-0 bg-gradient-to-b from-slate-950/40 via-slate-950/20 to-slate-950"></div>`)

		mw.Raw(`<div class="relative z-10 mx-auto flex h-full max-w-4xl flex-col justify-end px-6 pb-24">`)
		backLink(mw, r.deps.BackURL, "Back to Blog", "mb-8 inline-flex items-center gap-2 text-sm text-white/70 hover:text-white")
		mw.Raw(`<h1 class="text-4xl font-bold leading-tight md:text-6xl">`).Text(doc.Title).Raw("</h1>")
		meta(mw, a, "mt-6 flex flex-wrap items-center gap-2 text-sm text-white/60")
		excerpt(mw, a, "mt-6 max-w-2xl text-xl text-white/80")
		mw.Raw(`</div>`)
		mw.Raw(`<div class="absolute bottom-8 left-1/2 z-10 -translate-x-1/2 animate-bounce text-white/60" data-scroll-indicator aria-hidden="true">&darr;</div>`)
		mw.Raw(`</section>`)

		mw.Raw(`<div class="mx-auto max-w-3xl px-6 py-20" data-body>`)
		mw.Component(ctx, immersiveComponents.Render(a.nodes))
		mw.Raw(`</div>`)

		mw.Raw(`<footer class="mx-auto max-w-3xl space-y-10 border-t border-white/10 px-6 py-12">`)
		mw.Component(ctx, authorBlock(a.author, "text-white"))
		backLink(mw, r.deps.BackURL, "Back to all articles", "inline-flex items-center gap-2 text-cyan-300 hover:text-cyan-200")
		mw.Raw(`</footer></article>`)
		return mw.Err()
	})
}
