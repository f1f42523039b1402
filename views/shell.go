// Package views renders the page shells and the list surfaces around the
// article layouts: the home page with its blog carousel and contact form,
// the blog index and the error pages.
package views

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/storyframe/markup"
)

// Page wraps body in the document shell.
func Page(cfg SiteConfig, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := cfg.Name
		if meta.Title != "" && meta.Title != cfg.Name {
			title = meta.Title + " | " + cfg.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = cfg.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		mw := markup.NewWriter(w)
		mw.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		mw.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		mw.Raw("<title>").Text(title).Raw("</title>")
		if desc != "" {
			mw.Raw(`<meta name="description"`).Attr("content", desc).Raw("/>")
		}
		if meta.URL != "" {
			mw.Raw(`<link rel="canonical"`).Attr("href", meta.URL).Raw("/>")
			mw.Raw(`<meta property="og:url"`).Attr("content", meta.URL).Raw("/>")
		}
		mw.Raw(`<meta property="og:title"`).Attr("content", title).Raw("/>")
		mw.Raw(`<meta property="og:type"`).Attr("content", ogType).Raw("/>")
		if meta.Image != "" {
			mw.Raw(`<meta property="og:image"`).Attr("content", meta.Image).Raw("/>")
		}
		mw.Raw(`<link rel="alternate" type="application/rss+xml"`).Attr("title", cfg.Name).Attr("href", "/feed.xml").Raw("/>")
		mw.Raw(`<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>`)
		mw.Raw(`<link rel="stylesheet" href="/public/styles.css"/>`)
		mw.Raw(`<link rel="stylesheet" href="/public/storyframe.css"/>`)
		if meta.JSONLD != "" {
			mw.Raw(`<script type="application/ld+json">`, meta.JSONLD, `</script>`)
		}
		mw.Raw(`<script src="/public/storyframe.js" defer></script>`)
		mw.Raw(`</head><body class="bg-background text-foreground antialiased">`)
		mw.Component(ctx, body)
		mw.Raw(`<footer class="border-t border-border py-8 text-center text-sm text-muted-foreground">`)
		mw.Raw("&copy; ").Text(time.Now().Format("2006")).Raw(" ").Text(cfg.Name)
		mw.Raw(` · <a href="/feed.xml" class="hover:text-foreground">RSS</a></footer>`)
		mw.Raw(`</body></html>`)
		return mw.Err()
	})
}

// Nav is the top bar of the list pages.
func Nav(cfg SiteConfig) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.NewWriter(w)
		mw.Raw(`<nav class="sticky top-0 z-40 border-b border-border bg-background/80 backdrop-blur"><div class="mx-auto flex max-w-6xl items-center justify-between px-6 py-4">`)
		mw.Raw(`<a href="/" class="text-lg font-bold">`).Text(cfg.Name).Raw("</a>")
		mw.Raw(`<div class="flex gap-6 text-sm"><a href="/blog/" class="hover:text-primary">Blog</a><a href="/#contact" class="hover:text-primary">Contact</a></div>`)
		mw.Raw(`</div></nav>`)
		return mw.Err()
	})
}

// Article wraps a rendered article layout in the page shell.
func Article(cfg SiteConfig, meta PageMeta, body templ.Component) templ.Component {
	if meta.OGType == "" {
		meta.OGType = "article"
	}
	return Page(cfg, meta, body)
}
