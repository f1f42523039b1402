package storyframe

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eringen/storyframe/source"
)

// SiteConfig holds all configuration for a storyframe site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Blog")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and meta tags
	Author      string `yaml:"author"`      // Fallback author for JSON-LD

	Addr         string `yaml:"addr"`     // Listen address (default ":3000")
	DatabasePath string `yaml:"database"` // Snapshot SQLite path (default "data/storyframe.db")
	LogLevel     string `yaml:"log_level"`

	Content ContentConfig `yaml:"content"`

	ContactEndpoint string `yaml:"contact_endpoint"` // Form endpoint submissions are forwarded to
	SessionSecret   string `yaml:"session_secret"`   // Required: session encryption secret
	CookieSecure    bool   `yaml:"cookie_secure"`    // Set true for HTTPS

	ListLimit     int           `yaml:"list_limit"`     // Home carousel size (default 6)
	CacheTTL      time.Duration `yaml:"cache_ttl"`      // Preview and document cache TTL (default 5m)
	DocumentCache int           `yaml:"document_cache"` // Cached document payloads (default 128)
}

// ContentConfig selects and configures the document source.
type ContentConfig struct {
	ProjectID  string `yaml:"project_id"`
	Dataset    string `yaml:"dataset"`
	APIVersion string `yaml:"api_version"`
	APIHost    string `yaml:"api_host"`
	CDNHost    string `yaml:"cdn_host"`
	UseCDN     bool   `yaml:"use_cdn"`
	Token      string `yaml:"token"`

	// FixturesDir serves documents from <dir>/<slug>.json instead of the API.
	FixturesDir string `yaml:"fixtures_dir"`
	// Snapshot serves documents from the SQLite mirror written by the
	// snapshot command.
	Snapshot bool `yaml:"snapshot"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/storyframe.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Content.Dataset == "" {
		c.Content.Dataset = "production"
	}
	if c.Content.APIVersion == "" {
		c.Content.APIVersion = source.DefaultAPIVersion
	}
	if c.ListLimit <= 0 {
		c.ListLimit = 6
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.DocumentCache <= 0 {
		c.DocumentCache = 128
	}
}

// LoadConfig reads a YAML config file, when path is non-empty, and applies
// environment overrides on top.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("storyframe: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("storyframe: parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) applyEnv() {
	c.Name = EnvOr("SITE_NAME", c.Name)
	c.URL = EnvOr("SITE_URL", c.URL)
	c.Description = EnvOr("SITE_DESCRIPTION", c.Description)
	c.Author = EnvOr("SITE_AUTHOR", c.Author)
	c.Addr = EnvOr("ADDR", c.Addr)
	c.DatabasePath = EnvOr("DATABASE_PATH", c.DatabasePath)
	c.LogLevel = EnvOr("LOG_LEVEL", c.LogLevel)
	c.Content.ProjectID = EnvOr("CONTENT_PROJECT_ID", c.Content.ProjectID)
	c.Content.Dataset = EnvOr("CONTENT_DATASET", c.Content.Dataset)
	c.Content.APIVersion = EnvOr("CONTENT_API_VERSION", c.Content.APIVersion)
	c.Content.APIHost = EnvOr("CONTENT_API_HOST", c.Content.APIHost)
	c.Content.CDNHost = EnvOr("CONTENT_CDN_HOST", c.Content.CDNHost)
	c.Content.Token = EnvOr("CONTENT_TOKEN", c.Content.Token)
	c.Content.FixturesDir = EnvOr("CONTENT_FIXTURES_DIR", c.Content.FixturesDir)
	c.ContactEndpoint = EnvOr("CONTACT_ENDPOINT", c.ContactEndpoint)
	c.SessionSecret = EnvOr("SESSION_SECRET", c.SessionSecret)
	if v, err := strconv.ParseBool(os.Getenv("COOKIE_SECURE")); err == nil {
		c.CookieSecure = v
	}
	if v, err := strconv.ParseBool(os.Getenv("CONTENT_SNAPSHOT")); err == nil {
		c.Content.Snapshot = v
	}
	if v, err := strconv.ParseBool(os.Getenv("CONTENT_USE_CDN")); err == nil {
		c.Content.UseCDN = v
	}
	if v, err := time.ParseDuration(os.Getenv("CACHE_TTL")); err == nil {
		c.CacheTTL = v
	}
	if v, err := strconv.Atoi(os.Getenv("LIST_LIMIT")); err == nil {
		c.ListLimit = v
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(a *App) {
		a.Log = log
	}
}

// WithSource replaces the document source chosen from the config.
func WithSource(src source.Source) Option {
	return func(a *App) {
		a.Source = src
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
