// Package config loads minitrack settings from MINITRACK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/faizmokh/minitrack/internal/calendar"
	"github.com/faizmokh/minitrack/internal/files"
	"github.com/faizmokh/minitrack/internal/puzzle"
)

// Supported storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendMarkdown = "markdown"
)

// Config is the full runtime configuration shared by the CLI, TUI and server.
type Config struct {
	Home      string `env:"MINITRACK_HOME"`
	Backend   string `env:"MINITRACK_BACKEND" envDefault:"sqlite"`
	User      string `env:"MINITRACK_USER" envDefault:"local"`
	StartDate string `env:"MINITRACK_START_DATE" envDefault:"2014-08-21"`

	LevelFastest int `env:"MINITRACK_LEVEL_FASTEST" envDefault:"60"`
	LevelFast    int `env:"MINITRACK_LEVEL_FAST" envDefault:"90"`
	LevelSteady  int `env:"MINITRACK_LEVEL_STEADY" envDefault:"120"`

	HTTPAddr            string        `env:"MINITRACK_HTTP_ADDR" envDefault:":8080"`
	JWTSecret           string        `env:"MINITRACK_JWT_SECRET"`
	CORSOrigin          string        `env:"MINITRACK_CORS_ORIGIN" envDefault:"https://minitrack.vercel.app"`
	CORSExtensionOrigin string        `env:"MINITRACK_CORS_EXTENSION_ORIGIN" envDefault:"chrome-extension://minitrack"`
	CacheTTL            time.Duration `env:"MINITRACK_CACHE_TTL" envDefault:"5m"`

	start time.Time
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	home, err := files.ResolveBasePath(c.Home)
	if err != nil {
		return fmt.Errorf("resolve home: %w", err)
	}
	c.Home = home

	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendSQLite, BackendMarkdown:
	default:
		return fmt.Errorf("MINITRACK_BACKEND %q: want %s or %s", c.Backend, BackendSQLite, BackendMarkdown)
	}

	c.User = strings.TrimSpace(c.User)
	if c.User == "" {
		return errors.New("MINITRACK_USER must not be empty")
	}

	start, err := puzzle.ParseDate(c.StartDate)
	if err != nil {
		return fmt.Errorf("MINITRACK_START_DATE: %w", err)
	}
	c.start = start

	if c.LevelFastest <= 0 || c.LevelFastest > c.LevelFast || c.LevelFast > c.LevelSteady {
		return fmt.Errorf("level thresholds must be positive and ascending, got %d/%d/%d",
			c.LevelFastest, c.LevelFast, c.LevelSteady)
	}
	if c.CacheTTL < 0 {
		return errors.New("MINITRACK_CACHE_TTL must not be negative")
	}
	return nil
}

// Start is the first date the tracker covers.
func (c Config) Start() time.Time {
	if c.start.IsZero() {
		start, _ := puzzle.ParseDate(c.StartDate)
		return start
	}
	return c.start
}

// Thresholds converts the level settings to heatmap thresholds.
func (c Config) Thresholds() calendar.Thresholds {
	return calendar.Thresholds{
		Fastest: c.LevelFastest,
		Fast:    c.LevelFast,
		Steady:  c.LevelSteady,
	}
}

// AllowedOrigins lists the CORS origins accepted by the auto-log endpoint.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, origin := range []string{c.CORSOrigin, c.CORSExtensionOrigin} {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
