// Package storyframe serves articles from a structured content source as
// server-rendered HTML. Each article is rendered through one of three layout
// variants chosen by its style tag, and the home page presents the latest
// articles in a carousel.
//
// Templates are supplied through ViewFuncs; DefaultViews wires the ones in
// package views.
package storyframe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/eringen/storyframe/assets"
	"github.com/eringen/storyframe/contact"
	"github.com/eringen/storyframe/layout"
	"github.com/eringen/storyframe/source"
	"github.com/eringen/storyframe/views"
)

// ViewFuncs holds the components the handlers render.
type ViewFuncs struct {
	Home        func(site views.SiteConfig, meta views.PageMeta, blog templ.Component, form views.ContactForm) templ.Component
	BlogLoading func(src string) templ.Component
	BlogEmpty   func() templ.Component
	BlogSection func(site views.SiteConfig, cards []views.Card, p views.Pager) templ.Component
	BlogIndex   func(site views.SiteConfig, meta views.PageMeta, cards []views.Card) templ.Component
	Article     func(site views.SiteConfig, meta views.PageMeta, body templ.Component) templ.Component
	NotFound    func(site views.SiteConfig) templ.Component
	ServerError func(site views.SiteConfig) templ.Component
	Unavailable func(site views.SiteConfig) templ.Component
}

// DefaultViews returns the built-in views.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		BlogLoading: views.BlogLoading,
		BlogEmpty:   views.BlogEmpty,
		BlogSection: views.BlogCarousel,
		BlogIndex:   views.BlogIndex,
		Article:     views.Article,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
		Unavailable: views.Unavailable,
	}
}

// App wires the content source, caches, renderers and the HTTP server.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Log     *zap.Logger
	Source  source.Source
	Store   *Store
	Assets  *assets.Resolver
	Lists   *ListCache
	Docs    *DocumentCache
	Contact *contact.Client
	Views   ViewFuncs

	content      source.Source // Source behind the caches
	limiter      *RateLimiter
	customRoutes []func(*App)
	staticDir    string
	now          func() time.Time
	ready        bool
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Log:       zap.NewNop(),
		Views:     v,
		staticDir: "public",
		now:       time.Now,
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init opens the store when needed, builds the source chain, middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("storyframe: SessionSecret is required")
	}
	if err := a.initContent(); err != nil {
		return err
	}
	a.Contact = contact.NewClient(a.Config.ContactEndpoint, a.Log.Named("contact"))
	a.limiter = NewRateLimiter(5, 10*time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// initContent builds the source, the asset resolver and the caches.
func (a *App) initContent() error {
	if a.Docs != nil {
		return nil
	}
	if a.Source == nil {
		src, err := a.openSource(a.Config.Content)
		if err != nil {
			return err
		}
		a.Source = src
	}

	a.Assets = assets.NewResolver(assets.CDNBuilder{
		Host:      a.Config.Content.CDNHost,
		ProjectID: a.Config.Content.ProjectID,
		Dataset:   a.Config.Content.Dataset,
	}, a.Log.Named("assets"))

	a.Lists = NewListCache(a.Source, a.Config.CacheTTL)
	a.Lists.now = a.now
	a.Docs = NewDocumentCache(a.Source, a.Config.DocumentCache, a.Config.CacheTTL)
	a.content = cachedSource{lists: a.Lists, docs: a.Docs}
	return nil
}

// openStore opens the snapshot store once.
func (a *App) openStore() (*Store, error) {
	if a.Store != nil {
		return a.Store, nil
	}
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("storyframe: init store: %w", err)
	}
	a.Store = store
	return store, nil
}

// openSource picks the document source from cc: the snapshot mirror, a
// fixtures directory, or the content API. An existing mirror is opened
// alongside the API for its thumbnails.
func (a *App) openSource(cc ContentConfig) (source.Source, error) {
	switch {
	case cc.Snapshot:
		store, err := a.openStore()
		if err != nil {
			return nil, err
		}
		return store, nil
	case cc.FixturesDir != "":
		if _, err := os.Stat(cc.FixturesDir); err != nil {
			return nil, fmt.Errorf("storyframe: fixtures: %w", err)
		}
		return source.NewFS(os.DirFS(cc.FixturesDir)), nil
	default:
		src, err := source.NewHTTP(source.HTTPConfig{
			ProjectID:  cc.ProjectID,
			Dataset:    cc.Dataset,
			APIVersion: cc.APIVersion,
			Host:       cc.APIHost,
			UseCDN:     cc.UseCDN,
			Token:      cc.Token,
			Log:        a.Log.Named("source"),
		})
		if err != nil {
			return nil, fmt.Errorf("storyframe: init source: %w", err)
		}
		if _, err := os.Stat(a.Config.DatabasePath); err == nil {
			if _, err := a.openStore(); err != nil {
				a.Log.Warn("snapshot store unavailable, thumbnails disabled", zap.Error(err))
			}
		}
		return src, nil
	}
}

// Mirror copies the upstream content into the snapshot store. The upstream
// is the API or fixtures dir even when the site serves from the mirror.
func (a *App) Mirror(ctx context.Context, thumbs bool) (SnapshotResult, error) {
	upstream := a.Config.Content
	upstream.Snapshot = false
	src, err := a.openSource(upstream)
	if err != nil {
		return SnapshotResult{}, err
	}
	store, err := a.openStore()
	if err != nil {
		return SnapshotResult{}, err
	}
	if err := a.initContent(); err != nil {
		return SnapshotResult{}, err
	}

	opts := SnapshotOptions{
		Assets: a.Assets,
		Log:    a.Log.Named("snapshot"),
		Now:    a.now,
	}
	if thumbs {
		opts.Thumbs = NewThumbnailer(a.staticDir)
	}
	res, err := Snapshot(ctx, src, store, opts)
	a.Lists.Invalidate()
	a.Docs.Purge()
	return res, err
}

// RenderArticle writes the full article page for slug to w.
func (a *App) RenderArticle(ctx context.Context, w io.Writer, slug string) error {
	if err := a.initContent(); err != nil {
		return err
	}
	doc, err := a.loadDocument(ctx, slug)
	if err != nil {
		return err
	}
	body := layout.RenderDocument(doc, a.layoutDeps())
	return a.Views.Article(a.site(), a.articleMeta(doc), body).Render(ctx, w)
}

// Start initializes the app and serves until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		a.Log.Info("listening", zap.String("addr", a.Config.Addr), zap.String("url", a.Config.URL))
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets are served from the embedded FS and fall through to
	// the user's static dir for everything else under /public/.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/storyframe.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/storyframe.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlogIndex)
	e.GET("/blog/:slug/", a.handleArticle)
	e.POST("/contact/", a.handleContact)
}

// Close releases the store and stops background work.
func (a *App) Close() error {
	var err error
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.Store != nil {
		err = multierr.Append(err, a.Store.Close())
	}
	if a.Log != nil {
		_ = a.Log.Sync() // fails for stderr on some platforms
	}
	return err
}

func (a *App) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

func (a *App) layoutDeps() layout.Deps {
	return layout.Deps{
		Assets:  a.Assets,
		BackURL: "/blog/",
		Log:     a.Log.Named("layout"),
	}
}
