package storyframe

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/storyframe/carousel"
	"github.com/eringen/storyframe/contact"
	"github.com/eringen/storyframe/document"
	"github.com/eringen/storyframe/layout"
	"github.com/eringen/storyframe/source"
	"github.com/eringen/storyframe/views"
)

func (a *App) handleHome(c echo.Context) error {
	site := a.site()
	if c.QueryParam("partial") == "blog" {
		return Render(c, a.blogSection(c, site))
	}

	// Without a page parameter the section renders as loading and the
	// embedded script fetches it; paging links render it inline.
	blog := a.Views.BlogLoading("/?partial=blog")
	if c.QueryParam("page") != "" {
		blog = a.blogSection(c, site)
	}
	meta := views.PageMeta{
		Title:  site.Name,
		URL:    BuildURL(site.URL),
		JSONLD: views.WebsiteJsonLD(site),
	}
	form := views.ContactForm{CSRF: CsrfToken(c), Status: a.contactFlash(c)}
	return Render(c, a.Views.Home(site, meta, blog, form))
}

// blogSection fetches the home preview list and renders the carousel, or
// the empty state when the list is empty or failed to load.
func (a *App) blogSection(c echo.Context, site views.SiteConfig) templ.Component {
	ctx := c.Request().Context()
	surface := Fetch(ctx, a.Log, "home-blog", func(ctx context.Context) ([]document.PreviewItem, error) {
		return a.loadPreviews(ctx, a.Config.ListLimit)
	})
	if surface.State != Populated {
		return a.Views.BlogEmpty()
	}
	cards := a.cards(ctx, surface.Items)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	return a.Views.BlogSection(site, cards, pagerFor(len(cards), page))
}

// pagerFor positions a server-rendered carousel on page, using the widest
// window since the viewport is unknown on the server. Arrow links step a
// whole page and wrap; the embedded script steps single items.
func pagerFor(count, page int) views.Pager {
	cur := carousel.New(count, carousel.WindowFor(0)).Page(page)
	p := views.Pager{
		Index:     cur.Index(),
		Window:    cur.Window(),
		Offset:    cur.Offset(),
		Dots:      cur.Dots(),
		ActiveDot: cur.ActiveDot(),
		Controls:  cur.ShowControls(),
	}
	if p.Dots > 0 {
		p.PrevPage = (p.ActiveDot - 1 + p.Dots) % p.Dots
		p.NextPage = (p.ActiveDot + 1) % p.Dots
	}
	return p
}

func (a *App) handleBlogIndex(c echo.Context) error {
	site := a.site()
	ctx := c.Request().Context()
	surface := Fetch(ctx, a.Log, "blog-index", func(ctx context.Context) ([]document.PreviewItem, error) {
		return a.loadPreviews(ctx, 0)
	})
	meta := views.PageMeta{
		Title: "Blog",
		URL:   BuildURL(site.URL, "blog"),
	}
	return Render(c, a.Views.BlogIndex(site, meta, a.cards(ctx, surface.Items)))
}

func (a *App) handleArticle(c echo.Context) error {
	site := a.site()
	slug := c.Param("slug")
	doc, err := a.loadDocument(c.Request().Context(), slug)
	if errors.Is(err, source.ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(site))
	}
	if err != nil {
		a.Log.Warn("document unavailable", zap.String("slug", slug), zap.Error(err))
		return RenderStatus(c, http.StatusServiceUnavailable, a.Views.Unavailable(site))
	}

	body := layout.RenderDocument(doc, a.layoutDeps())
	return Render(c, a.Views.Article(site, a.articleMeta(doc), body))
}

// loadDocument fetches and parses one document. A missing document is
// source.ErrNotFound; fetch and parse failures are returned as is.
func (a *App) loadDocument(ctx context.Context, slug string) (document.Document, error) {
	payload, err := a.content.Document(ctx, slug)
	if err != nil {
		return document.Document{}, err
	}
	doc, err := document.Parse(payload)
	if err != nil {
		return document.Document{}, err
	}
	if doc.Slug == "" {
		doc.Slug = slug
	}
	return doc, nil
}

func (a *App) articleMeta(doc document.Document) views.PageMeta {
	site := a.site()
	image := ""
	if doc.MainImage != nil {
		image = a.Assets.URL(*doc.MainImage)
	}
	authorName := ""
	if doc.Author != nil {
		authorName = doc.Author.Name
	}
	return views.PageMeta{
		Title:       doc.Title,
		Description: ClampExcerpt(doc.Excerpt, excerptSentences),
		URL:         BuildURL(site.URL, "blog", doc.Slug),
		OGType:      "article",
		Image:       image,
		JSONLD: views.BlogPostingJsonLD(site, views.PostingLD{
			Slug:        doc.Slug,
			Title:       doc.Title,
			Description: doc.Excerpt,
			Image:       image,
			AuthorName:  authorName,
			PublishedAt: doc.PublishedAt,
		}),
	}
}

func (a *App) handleContact(c echo.Context) error {
	status, code := contact.Error, http.StatusTooManyRequests
	if a.limiter.Allow(c.RealIP()) {
		form, err := c.FormParams()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
		}
		status, code = a.Contact.Submit(c.Request().Context(), form), http.StatusOK
	}

	if wantsJSON(c) {
		return c.JSON(code, map[string]string{
			"status":  status.String(),
			"message": status.Message(),
		})
	}
	if err := a.setContactFlash(c, status); err != nil {
		a.Log.Debug("store contact flash", zap.Error(err))
	}
	return c.Redirect(http.StatusSeeOther, "/#contact")
}

func (a *App) handleSitemap(c echo.Context) error {
	items, err := a.loadPreviews(c.Request().Context(), 0)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, items)
}

func (a *App) handleFeed(c echo.Context) error {
	items, err := a.loadPreviews(c.Request().Context(), 0)
	if err != nil {
		return err
	}
	return a.renderRSS(c, items)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	site := a.site()
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(site))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error", zap.Error(err), zap.String("uri", c.Request().RequestURI))
		_ = RenderStatus(c, code, a.Views.ServerError(site))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
