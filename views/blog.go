package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/storyframe/markup"
)

// BlogIndex lists every article: the newest as a featured card, the rest
// in a grid. An empty list renders the coming-soon state.
func BlogIndex(cfg SiteConfig, meta PageMeta, cards []Card) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.NewWriter(w)
		mw.Component(ctx, Nav(cfg))
		mw.Raw(`<div class="min-h-screen">`)
		mw.Raw(`<section class="relative border-b border-border bg-gradient-to-b from-primary/10 via-primary/5 to-background"><div class="mx-auto max-w-6xl px-6 py-20">`)
		mw.Raw(`<a href="/" class="mb-8 inline-flex items-center gap-2 text-sm text-muted-foreground hover:text-foreground"><span aria-hidden="true">&larr;</span> Back to Home</a>`)
		mw.Raw(`<h1 class="text-4xl font-bold md:text-6xl">Insights &amp; Perspectives</h1>`)
		if cfg.Description != "" {
			mw.Raw(`<p class="mt-6 max-w-2xl text-lg text-muted-foreground">`).Text(cfg.Description).Raw("</p>")
		}
		mw.Raw(`</div></section>`)

		mw.Raw(`<div class="mx-auto max-w-6xl px-6 py-16">`)
		if len(cards) == 0 {
			mw.Raw(`<div class="py-24 text-center" data-empty>`)
			mw.Raw(`<h2 class="text-2xl font-semibold">Coming Soon</h2>`)
			mw.Raw(`<p class="mx-auto mt-4 max-w-md text-muted-foreground">We're working on new articles. Check back soon!</p>`)
			mw.Raw(`</div></div></div>`)
			return mw.Err()
		}

		featured(mw, cards[0])
		if rest := cards[1:]; len(rest) > 0 {
			mw.Raw(`<section><h2 class="mb-8 text-2xl font-bold">More Articles</h2><div class="grid gap-8 md:grid-cols-2 lg:grid-cols-3">`)
			for _, c := range rest {
				mw.Component(ctx, card(c))
			}
			mw.Raw(`</div></section>`)
		}
		if len(cards) == 1 {
			mw.Raw(`<section class="mt-16 rounded-2xl border border-border bg-secondary/40 p-10 text-center" data-cta>`)
			mw.Raw(`<p class="text-muted-foreground">More insights coming soon. Stay tuned for new articles.</p>`)
			mw.Raw(`<a href="/#contact" class="mt-6 inline-flex rounded-md bg-primary px-6 py-3 font-medium text-primary-foreground">Get notified about new posts</a>`)
			mw.Raw(`</section>`)
		}
		mw.Raw(`</div></div>`)
		return mw.Err()
	})
	return Page(cfg, meta, body)
}

func featured(mw *markup.Writer, c Card) {
	mw.Raw(`<section class="mb-20" data-featured><div class="mb-6"><span class="rounded-full bg-primary/10 px-3 py-1 text-xs font-semibold uppercase tracking-wider text-primary">Featured</span></div>`)
	mw.Raw(`<a class="group block"`).Attr("href", c.Link).Raw(`><article class="grid overflow-hidden rounded-2xl border border-border bg-card md:grid-cols-2">`)
	if c.ImageURL != "" {
		mw.Raw(`<div class="relative h-64 md:h-full"><img`).Attr("src", c.ImageURL).Attr("alt", c.Title).
			Attr("width", strconv.Itoa(c.ImageWidth)).Attr("height", strconv.Itoa(c.ImageHeight)).
			Raw(` fetchpriority="high" class="h-full w-full object-cover transition-transform duration-500 group-hover:scale-105"/></div>`)
	} else {
		mw.Raw(`<div class="h-64 bg-gradient-to-br from-primary/20 to-primary/5 md:h-full" data-hero-placeholder></div>`)
	}
	mw.Raw(`<div class="flex flex-col justify-center p-8 md:p-12">`)
	mw.Raw(`<h2 class="text-3xl font-bold transition-colors group-hover:text-primary">`).Text(c.Title).Raw("</h2>")
	if c.Excerpt != "" {
		mw.Raw(`<p class="mt-4 line-clamp-3 text-lg text-muted-foreground">`).Text(c.Excerpt).Raw("</p>")
	}
	mw.Raw(`<div class="mt-6 flex items-center gap-4 text-sm text-muted-foreground">`)
	if c.AuthorName != "" {
		mw.Raw(`<span class="font-medium text-foreground">`).Text(c.AuthorName).Raw("</span>")
	}
	if c.LongDate != "" {
		mw.Raw("<time").Attr("datetime", c.DateISO).Raw(">").Text(c.LongDate).Raw("</time>")
	}
	mw.Raw(`</div><span class="mt-8 inline-flex items-center gap-2 font-medium text-primary">Read Article <span aria-hidden="true">&rarr;</span></span>`)
	mw.Raw(`</div></article></a></section>`)
}
