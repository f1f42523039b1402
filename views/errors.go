package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/storyframe/markup"
)

func message(cfg SiteConfig, title, code, text string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := markup.NewWriter(w)
		mw.Component(ctx, Nav(cfg))
		mw.Raw(`<main class="mx-auto flex min-h-[60vh] max-w-xl flex-col items-center justify-center px-6 text-center">`)
		mw.Raw(`<p class="text-sm font-semibold uppercase tracking-[0.2em] text-primary">`).Text(code).Raw("</p>")
		mw.Raw(`<h1 class="mt-4 text-4xl font-bold">`).Text(title).Raw("</h1>")
		mw.Raw(`<p class="mt-4 text-muted-foreground">`).Text(text).Raw("</p>")
		mw.Raw(`<a href="/blog/" class="mt-8 inline-flex rounded-md bg-primary px-5 py-2 text-primary-foreground">Back to Blog</a>`)
		mw.Raw(`</main>`)
		return mw.Err()
	})
	return Page(cfg, PageMeta{Title: title}, body)
}

// NotFound is shown for unknown routes and slugs that match no document.
func NotFound(cfg SiteConfig) templ.Component {
	return message(cfg, "Post not found", "404", "The article you are looking for does not exist or has been moved.")
}

// ServerError is shown for unexpected failures.
func ServerError(cfg SiteConfig) templ.Component {
	return message(cfg, "Something went wrong", "500", "Please try again in a moment.")
}

// Unavailable is shown when the content source could not be reached or
// returned a malformed document.
func Unavailable(cfg SiteConfig) templ.Component {
	return message(cfg, "Article unavailable", "503", "This article could not be loaded right now. Please try again shortly.")
}
