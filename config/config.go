// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Frontend string

const (
	FrontendEbiten Frontend = "ebiten"
	FrontendTUI    Frontend = "tui"
)

type Config struct {
	// Title overrides the window title when non-empty.
	Title       string
	Width       int
	Height      int
	Frontend    Frontend
	Mute        bool
	MusicVolume float64
	SfxVolume   float64
	// Seed is only meaningful when HasSeed is set.
	Seed     uint64
	HasSeed  bool
	DebugUI  bool
	LogLevel slog.Level
	LogOff   bool
}

// Load reads envFiles (".env" by default) into the process environment without
// overriding variables that are already set, then builds the Config.
// Missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the Config from ROADRUSH_* variables. Every malformed variable is reported.
func FromEnv() (*Config, error) {
	p := &parser{}
	cfg := &Config{
		Title:       getEnv("ROADRUSH_TITLE", ""),
		Width:       p.int("ROADRUSH_WIDTH", 1280),
		Height:      p.int("ROADRUSH_HEIGHT", 720),
		Frontend:    Frontend(strings.ToLower(getEnv("ROADRUSH_FRONTEND", string(FrontendEbiten)))),
		Mute:        p.bool("ROADRUSH_MUTE", false),
		MusicVolume: p.volume("ROADRUSH_MUSIC_VOLUME", 1),
		SfxVolume:   p.volume("ROADRUSH_SFX_VOLUME", 1),
		DebugUI:     p.bool("ROADRUSH_DEBUG_UI", false),
	}

	if cfg.Width <= 0 {
		p.fail("ROADRUSH_WIDTH", fmt.Errorf("must be positive, got %d", cfg.Width))
	}
	if cfg.Height <= 0 {
		p.fail("ROADRUSH_HEIGHT", fmt.Errorf("must be positive, got %d", cfg.Height))
	}

	switch cfg.Frontend {
	case FrontendEbiten, FrontendTUI:
	default:
		p.fail("ROADRUSH_FRONTEND", fmt.Errorf("unknown frontend %q (want ebiten or tui)", cfg.Frontend))
	}

	if raw, ok := os.LookupEnv("ROADRUSH_SEED"); ok && raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			p.fail("ROADRUSH_SEED", err)
		} else {
			cfg.Seed, cfg.HasSeed = seed, true
		}
	}

	switch level := strings.ToLower(getEnv("ROADRUSH_LOG_LEVEL", "info")); level {
	case "off", "none":
		cfg.LogOff = true
	default:
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			p.fail("ROADRUSH_LOG_LEVEL", err)
		}
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLogger returns a text logger writing to w at the configured level, or a
// discarding logger when logging is off.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	if c.LogOff {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

// getEnv reads an environment variable and returns its value or a default value
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	return value
}

type parser struct {
	errs []error
}

func (p *parser) fail(key string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
}

func (p *parser) int(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, err)
		return defaultValue
	}
	return v
}

func (p *parser) bool(key string, defaultValue bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, err)
		return defaultValue
	}
	return v
}

func (p *parser) volume(key string, defaultValue float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, err)
		return defaultValue
	}
	if v < 0 || v > 1 {
		p.fail(key, fmt.Errorf("must be within [0, 1], got %g", v))
		return defaultValue
	}
	return v
}
