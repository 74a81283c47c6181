package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// Server configuration
	Server struct {
		Host string `env:"HOST" envDefault:"127.0.0.1"`
		Port int    `env:"PORT" envDefault:"8080"`

		// Debug switches gin into debug mode
		Debug bool `env:"DEBUG" envDefault:"false"`

		// Key used to sign session cookies
		SessionSecret string `env:"SESSION_SECRET" envDefault:"your_secret_key_here"`

		// Origins allowed to call the JSON API
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://127.0.0.1:8080"`
	}

	// Database configuration
	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"instance/users.db"`
	}

	// Map build configuration
	Map struct {
		// CSV dataset of property listings
		ListingsPath string `env:"LISTINGS_CSV" envDefault:"unionandallnj.csv"`

		// Generated artifact served at /map
		OutputPath string `env:"MAP_OUTPUT" envDefault:"templates/map.html"`

		Title string `env:"MAP_TITLE" envDefault:"Interactive Property Map"`

		// Named fallback view, see ViewNames
		View string `env:"MAP_VIEW" envDefault:"new-jersey"`

		// Zero keeps the default view's zoom level
		ZoomLevel int `env:"MAP_ZOOM" envDefault:"0"`
	}

	// Logging configuration
	Log struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Server.Port)
	}
	if _, ok := LookupView(cfg.Map.View); !ok {
		return nil, fmt.Errorf("unknown MAP_VIEW %q, supported: %s", cfg.Map.View, strings.Join(ViewNames(), ", "))
	}
	return cfg, nil
}

// Addr returns the listen address of the web server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MapView returns the configured fallback view with the zoom override applied.
func (c *Config) MapView() MapView {
	view, ok := LookupView(c.Map.View)
	if !ok {
		view = DefaultMapView
	}
	if c.Map.ZoomLevel > 0 {
		view.ZoomLevel = c.Map.ZoomLevel
	}
	return view
}
