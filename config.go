package showcase

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/eringen/showcase/analytics"
	"github.com/eringen/showcase/deck"
)

// SiteConfig holds all configuration for a showcase site.
type SiteConfig struct {
	Name        string `env:"SHOWCASE_NAME"`        // Site name (default "Showcase")
	URL         string `env:"SHOWCASE_URL"`         // Canonical URL (default "http://localhost:3000")
	Description string `env:"SHOWCASE_DESCRIPTION"` // Site description for RSS and meta tags
	Author      string `env:"SHOWCASE_AUTHOR"`      // Author name for JSON-LD

	Addr         string `env:"SHOWCASE_ADDR"`          // Listen address (default ":3000")
	DatabasePath string `env:"SHOWCASE_DATABASE_PATH"` // SQLite path (default "data/showcase.db")
	ContentPath  string `env:"SHOWCASE_CONTENT_PATH"`  // Posts YAML, seeded on start when present
	DeckPath     string `env:"SHOWCASE_DECK_PATH"`     // Deck YAML (default: cover and retrospective only)

	BlogPath       string `env:"SHOWCASE_BLOG_PATH"`        // Blog root (default "/blog")
	BlogPageSize   int    `env:"SHOWCASE_BLOG_PAGE_SIZE"`   // Posts per "show more" page (default 9)
	BlogQueryStyle bool   `env:"SHOWCASE_BLOG_QUERY_STYLE"` // Encode the category as ?category=

	AnalyticsEnabled      bool          `env:"SHOWCASE_ANALYTICS" envDefault:"true"`
	AnalyticsDatabasePath string        `env:"SHOWCASE_ANALYTICS_DATABASE_PATH"` // default "data/analytics.db"
	AnalyticsRetention    time.Duration `env:"SHOWCASE_ANALYTICS_RETENTION"`     // default one year

	AdminPassword    string `env:"SHOWCASE_ADMIN_PASSWORD"`     // Required: admin login password
	SessionSecret    string `env:"SHOWCASE_SESSION_SECRET"`     // Required: session encryption secret
	CookieSecure     bool   `env:"SHOWCASE_COOKIE_SECURE"`      // Set true for HTTPS
	DeckPasswordHash string `env:"SHOWCASE_DECK_PASSWORD_HASH"` // hex SHA-256; empty leaves the deck open

	GitHubRepo    string        `env:"SHOWCASE_GITHUB_REPO"`    // owner/name for the star badge
	StarsInterval time.Duration `env:"SHOWCASE_STARS_INTERVAL"` // default 1h

	PostCacheTTL time.Duration `env:"SHOWCASE_POST_CACHE_TTL"` // Post cache TTL (default 5min)
	LogLevel     string        `env:"SHOWCASE_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads SiteConfig from the environment and applies defaults.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("showcase: parse env: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Showcase"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/showcase.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.AnalyticsRetention == 0 {
		c.AnalyticsRetention = 365 * 24 * time.Hour
	}
	if c.BlogPath == "" {
		c.BlogPath = "/blog"
	}
	c.BlogPath = "/" + strings.Trim(c.BlogPath, "/")
	if c.StarsInterval == 0 {
		c.StarsInterval = time.Hour
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are mounted.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets and hero images (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the application logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.Log = l
		}
	}
}

// WithReporter replaces the analytics reporter. Without it, events go to the
// analytics store when analytics is enabled and nowhere otherwise.
func WithReporter(r analytics.Reporter) Option {
	return func(a *App) {
		a.reporter = r
	}
}

// WithDeck sets the presentation directly instead of loading DeckPath.
func WithDeck(d deck.Deck) Option {
	return func(a *App) {
		a.deck = &d
	}
}
