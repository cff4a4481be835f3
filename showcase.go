// Package showcase is a server-rendered marketing site built with Go, Echo, templ
// and htmx: a filterable blog, a password-gated slide deck and the Hackathon OS
// demo, plus an admin editor, feeds and first-party analytics.
package showcase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/showcase/analytics"
	"github.com/eringen/showcase/content"
	"github.com/eringen/showcase/deck"
	"github.com/eringen/showcase/hackathon"
	"github.com/eringen/showcase/ratelimit"
	"github.com/eringen/showcase/stars"
	"github.com/eringen/showcase/views"
)

// App is the central showcase application. It wires together the store, cache,
// handlers, middleware and the interactive features.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Log    *zap.Logger
	Board  *hackathon.Board

	gate           *deck.Gate
	deck           *deck.Deck
	slides         []deck.Slide
	stars          *stars.Fetcher
	heroes         *heroCache
	reporter       analytics.Reporter
	loginLimiter   *ratelimit.Window
	analyticsStore *analytics.Store
	analytics      *analytics.Handler
	customRoutes   []func(*App)
	staticDir      string
	stop           []func()
}

// New creates a showcase App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Log:       zap.NewNop(),
		Board:     hackathon.NewBoard(),
		heroes:    newHeroCache(64),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens storage, loads the deck and content, and mounts middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("showcase: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("showcase: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("showcase: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)

	if a.Config.ContentPath != "" {
		if _, err := a.SeedFile(a.Config.ContentPath); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			a.Log.Warn("content file not found", zap.String("path", a.Config.ContentPath))
		}
	}

	if err := a.loadDeck(); err != nil {
		return err
	}
	a.gate = deck.NewGate(a.Config.DeckPasswordHash)

	// Admin login and the deck gate share one budget per IP.
	a.loginLimiter = ratelimit.New(5, time.Minute)
	a.stop = append(a.stop, a.loginLimiter.Stop)

	if a.Config.AnalyticsEnabled {
		as, err := analytics.NewStore(a.Config.AnalyticsDatabasePath, a.Log.Named("analytics"))
		if err != nil {
			return fmt.Errorf("showcase: init analytics: %w", err)
		}
		a.analyticsStore = as
		if err := analytics.InitSalt(as); err != nil {
			return fmt.Errorf("showcase: init analytics salt: %w", err)
		}
		a.analytics = analytics.NewHandler(as)
		a.stop = append(a.stop, as.StartPruning(a.Config.AnalyticsRetention, 24*time.Hour), a.analytics.Close)
		if a.reporter == nil {
			a.reporter = as
		}
	}
	a.reporter = analytics.OrNop(a.reporter)

	if a.Config.GitHubRepo != "" {
		a.stars = stars.New(a.Config.GitHubRepo, stars.WithLogger(a.Log.Named("stars")))
		ctx, cancel := context.WithCancel(context.Background())
		a.stars.Start(ctx, a.Config.StarsInterval)
		a.stop = append(a.stop, cancel)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start runs Setup and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	return a.Serve()
}

// Serve listens on Config.Addr. Setup must have run.
func (a *App) Serve() error {
	a.Log.Info("listening", zap.String("addr", a.Config.Addr), zap.String("url", a.Config.URL))
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) loadDeck() error {
	if a.deck == nil {
		d := deck.Deck{Title: a.Config.Name, Subtitle: a.Config.Description}
		if a.Config.DeckPath != "" {
			f, err := os.Open(a.Config.DeckPath)
			if err != nil {
				return fmt.Errorf("showcase: open deck: %w", err)
			}
			defer f.Close()
			if d, err = deck.LoadDeck(f); err != nil {
				return fmt.Errorf("showcase: load deck %s: %w", a.Config.DeckPath, err)
			}
		}
		a.deck = &d
	}
	a.slides = a.deck.Sequence()
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded client files win over the static dir.
	embedded, _ := fs.Sub(assets, "embedded")
	serveEmbedded := echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embedded))))
	e.GET("/public/hx.js", serveEmbedded)
	e.GET("/public/styles.css", serveEmbedded)
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/hero/:name", a.handleHero)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)

	blog := a.Config.BlogPath
	e.GET(blog, a.handleBlog)
	e.GET(blog+"/", a.handleBlog)
	e.GET(blog+"/:category", a.handleBlog)
	e.GET(blog+"/:category/", a.handleBlog)
	e.GET("/posts/:slug/", a.handlePost)

	e.GET("/deck/", a.handleDeck)
	e.POST("/deck/login/", a.handleDeckLogin)
	e.POST("/deck/logout/", a.handleDeckLogout)

	e.GET("/hackathon/", a.handleHackathons)
	e.POST("/hackathon/signin/", a.handleHackathonSignIn)
	e.POST("/hackathon/signout/", a.handleHackathonSignOut)
	e.GET("/hackathon/:slug/", a.handleHackathon)
	e.POST("/hackathon/:slug/register/", a.handleHackathonRegister)
	e.POST("/hackathon/:slug/cancel/", a.handleHackathonCancel)
	e.POST("/hackathon/:slug/challenges/:id/approve/", a.handleChallengeApprove)
	e.POST("/hackathon/:slug/challenges/:id/reject/", a.handleChallengeReject)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	admin := e.Group("/admin", requireAdmin)
	admin.GET("/post/:slug/", a.handleAdminPost)
	admin.POST("/save/", a.handleAdminSave)
	admin.DELETE("/post/:slug/", a.handleAdminDelete)
	admin.POST("/hackathon/reset/", a.handleHackathonReset)

	if a.analytics != nil {
		a.analytics.RegisterRoutes(e, requireAdmin)
	}
}

// site is the per-request view of the site-wide settings.
func (a *App) site() views.Site {
	s := views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
		BlogPath:    a.Config.BlogPath,
		Repo:        a.Config.GitHubRepo,
		JSONLD:      WebsiteJsonLD(a.Config),
		Analytics:   a.analytics != nil,
	}
	if a.stars != nil {
		if n, ok := a.stars.Count(); ok {
			s.Stars = stars.Format(n)
		}
	}
	return s
}

// capture reports an event about the current request without failing it.
func (a *App) capture(c echo.Context, name string, props map[string]string) {
	if c.Request().Header.Get("DNT") == "1" || analytics.IsBot(c.Request().UserAgent()) {
		return
	}
	a.reporter.Capture(c.Request().Context(),
		analytics.FromRequest(c.Request(), c.RealIP(), name, c.Request().URL.Path, props, ""))
}

// Slides returns the navigable deck sequence.
func (a *App) Slides() []deck.Slide {
	return a.slides
}

// Posts returns the published posts currently served.
func (a *App) Posts() ([]content.Post, error) {
	return a.Cache.ListPosts()
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	for i := len(a.stop) - 1; i >= 0; i-- {
		a.stop[i]()
	}
	a.stop = nil
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.analyticsStore != nil {
		errs = append(errs, a.analyticsStore.Close())
	}
	_ = a.Log.Sync()
	return errors.Join(errs...)
}
