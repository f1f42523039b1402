package views

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/storyframe/markup"
)

// Home is the landing page: hero, the blog section and the contact form.
// blog is one of BlogLoading, BlogEmpty or BlogCarousel.
func Home(cfg SiteConfig, meta PageMeta, blog templ.Component, form ContactForm) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.NewWriter(w)
		mw.Component(ctx, Nav(cfg))
		mw.Raw(`<main>`)
		mw.Raw(`<section class="relative overflow-hidden border-b border-border bg-gradient-to-b from-primary/10 to-background"><div class="mx-auto max-w-6xl px-6 py-28 text-center">`)
		mw.Raw(`<h1 class="text-4xl font-bold md:text-6xl">`).Text(cfg.Name).Raw("</h1>")
		if cfg.Description != "" {
			mw.Raw(`<p class="mx-auto mt-6 max-w-2xl text-lg text-muted-foreground">`).Text(cfg.Description).Raw("</p>")
		}
		mw.Raw(`</div></section>`)
		mw.Component(ctx, blog)
		mw.Component(ctx, ContactSection(form))
		mw.Raw(`</main>`)
		return mw.Err()
	})
	return Page(cfg, meta, body)
}

func blogSectionOpen(mw *markup.Writer, attrs ...string) {
	mw.Raw(`<section id="blog" class="bg-secondary/40 py-24" data-blog-section`)
	for i := 0; i+1 < len(attrs); i += 2 {
		mw.Attr(attrs[i], attrs[i+1])
	}
	mw.Raw(`><div class="mx-auto max-w-7xl px-6">`)
}

func blogHeading(mw *markup.Writer, centered bool) {
	class := "mb-12"
	if centered {
		class = "text-center"
	}
	mw.Raw(`<div class="`, class, `"><h2 class="mb-4 text-center text-3xl font-bold md:text-4xl">From the Blog</h2>`)
}

// BlogLoading is the placeholder rendered while the preview list is
// pending. The embedded script replaces it with the content of src.
func BlogLoading(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.NewWriter(w)
		blogSectionOpen(mw, "data-partial-src", src)
		blogHeading(mw, true)
		mw.Raw(`<p class="text-lg text-muted-foreground" data-loading>Loading insights...</p>`)
		mw.Raw(`<noscript><a href="/blog/" class="mt-6 inline-block text-primary underline">Browse all posts</a></noscript>`)
		mw.Raw(`</div></div></section>`)
		return mw.Err()
	})
}

// BlogEmpty is rendered when the preview list is empty or failed to load.
func BlogEmpty() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.NewWriter(w)
		blogSectionOpen(mw)
		blogHeading(mw, true)
		mw.Raw(`<p class="text-lg text-muted-foreground" data-empty>No posts yet. Check back soon for new insights.</p>`)
		mw.Raw(`</div></div></section>`)
		return mw.Err()
	})
}

// BlogCarousel renders cards through the sliding window described by p.
// The server renders the widest window; the embedded script recomputes the
// window from the viewport and takes over navigation.
func BlogCarousel(cfg SiteConfig, cards []Card, p Pager) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.NewWriter(w)
		blogSectionOpen(mw)
		blogHeading(mw, false)
		if cfg.Description != "" {
			mw.Raw(`<p class="mx-auto max-w-2xl text-center text-lg text-muted-foreground">`).Text(cfg.Description).Raw("</p>")
		}
		mw.Raw(`</div>`)

		mw.Raw(`<div class="relative" data-carousel`).
			Attr("data-count", strconv.Itoa(len(cards))).
			Attr("data-index", strconv.Itoa(p.Index)).Raw(">")
		arrow(mw, "prev", p.PrevPage, p.Controls, "left-0 -translate-x-4", "Previous posts", "&lsaquo;")
		arrow(mw, "next", p.NextPage, p.Controls, "right-0 translate-x-4", "Next posts", "&rsaquo;")

		mw.Raw(`<div class="overflow-hidden"><div class="flex transition-transform duration-500 ease-out" data-track`).
			Attr("style", fmt.Sprintf("transform:translateX(-%s%%)", strconv.FormatFloat(p.Offset, 'f', -1, 64))).Raw(">")
		for _, c := range cards {
			mw.Raw(`<div class="w-full flex-shrink-0 px-3 md:w-1/2 lg:w-1/3" data-slide>`)
			mw.Component(ctx, card(c))
			mw.Raw(`</div>`)
		}
		mw.Raw(`</div></div>`)

		mw.Raw(`<div class="mt-8 flex justify-center gap-2" data-dots`)
		if !p.Controls {
			mw.Raw(` hidden`)
		}
		mw.Raw(">")
		for i := 0; i < p.Dots; i++ {
			class := "h-2 w-2 rounded-full bg-muted-foreground/30 transition-all"
			if i == p.ActiveDot {
				class = "h-2 w-8 rounded-full bg-primary transition-all"
			}
			mw.Raw(`<a data-dot`).Attr("data-page", strconv.Itoa(i)).
				Attr("href", "/?page="+strconv.Itoa(i)+"#blog").
				Attr("class", class).
				Attr("aria-label", fmt.Sprintf("Go to slide %d", i+1)).Raw("></a>")
		}
		mw.Raw(`</div></div>`)

		mw.Raw(`<div class="mt-12 text-center"><a href="/blog/" class="inline-flex items-center gap-2 rounded-md border border-border px-6 py-3 font-medium hover:bg-secondary">View All Posts <span aria-hidden="true">&rarr;</span></a></div>`)
		mw.Raw(`</div></section>`)
		return mw.Err()
	})
}

func arrow(mw *markup.Writer, dir string, page int, visible bool, pos, label, glyph string) {
	mw.Raw(`<a data-carousel-`, dir).
		Attr("href", "/?page="+strconv.Itoa(page)+"#blog").
		Attr("aria-label", label).
		Attr("class", markup.Class("absolute top-1/2 z-10 flex h-12 w-12 -translate-y-1/2 items-center justify-center rounded-full bg-primary/90 text-primary-foreground shadow-lg", pos))
	if !visible {
		mw.Raw(` hidden`)
	}
	mw.Raw(">", glyph, "</a>")
}

// card renders one preview card.
func card(c Card) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.NewWriter(w)
		mw.Raw(`<a class="group block h-full"`).Attr("href", c.Link).Raw(">")
		mw.Raw(`<div class="flex h-full flex-col overflow-hidden rounded-xl border border-border bg-card transition-shadow hover:shadow-lg">`)
		if c.ImageURL != "" {
			mw.Raw(`<div class="relative h-48 w-full overflow-hidden"><img`).
				Attr("src", c.ImageURL).Attr("alt", c.Title).
				Attr("width", strconv.Itoa(c.ImageWidth)).Attr("height", strconv.Itoa(c.ImageHeight)).
				Attr("loading", "lazy").
				Raw(` class="h-full w-full object-cover transition-transform duration-300 group-hover:scale-105"/></div>`)
		}
		mw.Raw(`<div class="flex flex-1 flex-col p-6">`)
		mw.Raw(`<h3 class="mb-2 line-clamp-2 text-lg font-semibold transition-colors group-hover:text-primary">`).Text(c.Title).Raw("</h3>")
		mw.Raw(`<div class="mb-3 flex items-center justify-between text-sm text-muted-foreground">`)
		if c.AuthorName != "" {
			mw.Raw("<span>").Text(c.AuthorName).Raw("</span>")
		}
		if c.Date != "" {
			mw.Raw("<time").Attr("datetime", c.DateISO).Raw(">").Text(c.Date).Raw("</time>")
		}
		mw.Raw(`</div>`)
		if c.Excerpt != "" {
			mw.Raw(`<p class="line-clamp-2 flex-1 text-sm text-muted-foreground">`).Text(c.Excerpt).Raw("</p>")
		}
		mw.Raw(`<div class="mt-4 flex items-center text-sm font-medium text-primary">Read more <span class="ml-1" aria-hidden="true">&rarr;</span></div>`)
		mw.Raw(`</div></div></a>`)
		return mw.Err()
	})
}
