// Package config reads process configuration from the environment, after
// loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"parkmap/internal/geom"
	"parkmap/internal/mapview"
)

// Config is the process configuration. URLs and credentials are opaque.
type Config struct {
	Layout       string
	StatusURL    string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	Canvas       geom.Canvas
	Listen       string
	LogFile      string
	Map          mapview.Config
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout:       "parking_slots.geojson",
		PollInterval: 15 * time.Second,
		HTTPTimeout:  15 * time.Second,
		Canvas:       geom.DefaultCanvas,
		Listen:       ":8080",
	}
}

// Load reads .env files and then the environment on top of the defaults.
// Missing files are skipped; a file that does not parse is an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Default(), fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a variable lookup.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()
	if v := getenv("PARKMAP_LAYOUT"); v != "" {
		c.Layout = v
	}
	c.StatusURL = getenv("PARKMAP_STATUS_URL")
	if c.StatusURL == "" {
		c.StatusURL = getenv("REACT_APP_API_URL")
	}
	if v := getenv("PARKMAP_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("PARKMAP_POLL_INTERVAL: %w", err)
		}
		c.PollInterval = d
	}
	if v := getenv("PARKMAP_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("PARKMAP_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}
	if v := getenv("PARKMAP_CANVAS"); v != "" {
		w, h, err := ParseSize(v)
		if err != nil {
			return c, fmt.Errorf("PARKMAP_CANVAS: %w", err)
		}
		c.Canvas.Width, c.Canvas.Height = w, h
	}
	if v := getenv("PARKMAP_MARGIN"); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, fmt.Errorf("PARKMAP_MARGIN: %w", err)
		}
		c.Canvas.Margin = m
	}
	if v := getenv("PARKMAP_LISTEN"); v != "" {
		c.Listen = v
	}
	c.LogFile = getenv("LOG_FILE")
	c.Map = mapview.Config{
		Region:  getenv("LOCATION_REGION"),
		MapName: getenv("LOCATION_MAP_NAME"),
		APIKey:  getenv("LOCATION_API_KEY"),
	}
	return c, nil
}

// ParseSize parses "WIDTHxHEIGHT", e.g. "1200x520".
func ParseSize(s string) (w, h float64, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	if w, err = strconv.ParseFloat(ws, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid width %q", ws)
	}
	if h, err = strconv.ParseFloat(hs, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid height %q", hs)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return w, h, nil
}
