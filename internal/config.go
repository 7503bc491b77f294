package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/hemolymph/internal/richtext"
	"github.com/starford/hemolymph/internal/web"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Catalog CatalogConfig     `yaml:"catalog"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Site    SiteConfig        `yaml:"site"`
	Render  RenderConfig      `yaml:"render"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Render.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// CatalogConfig holds the path to the directory of card files.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the catalog configuration.
func (c *CatalogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SiteConfig controls how pages look and who may call the API from a browser.
type SiteConfig struct {
	Title          string   `yaml:"title"`
	ImageBaseURL   string   `yaml:"image_base_url"`
	LogoURL        string   `yaml:"logo_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Title, validation.Required),
	)
}

// Web returns the page settings of the site.
func (c *SiteConfig) Web() web.Site {
	return web.Site{Title: c.Title, ImageBaseURL: c.ImageBaseURL, LogoURL: c.LogoURL}
}

// RenderConfig holds rich text rendering limits.
type RenderConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// Validate validates the render configuration.
func (c *RenderConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxDepth, validation.Required, validation.Min(1), validation.Max(64)),
	)
}

// AuthConfig holds authentication configuration for the API write endpoints.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Catalog: CatalogConfig{
			Path: "./cards",
		},
		SQLite: SQLiteConfig{
			Path: "./hemolymph.db",
		},
		Site: SiteConfig{
			Title:          web.DefaultSiteTitle,
			ImageBaseURL:   "https://file.garden/ZJSEzoaUL3bz8vYK/bloodlesscards/",
			LogoURL:        "https://file.garden/ZJSEzoaUL3bz8vYK/hemolymphlogo.png",
			AllowedOrigins: []string{"*"},
		},
		Render: RenderConfig{
			MaxDepth: richtext.DefaultMaxDepth,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
