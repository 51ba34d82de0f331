// Package config loads viewer settings: built-in defaults, an optional TOML
// preset file, then .env and GALAXY_* environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"galaxyview/generator"
	"galaxyview/hal"

	"github.com/joho/godotenv"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables.
const (
	EnvConfig   = "GALAXY_CONFIG"
	EnvSeed     = "GALAXY_SEED"
	EnvLogLevel = "GALAXY_LOG_LEVEL"
	EnvWidth    = "GALAXY_WIDTH"
	EnvHeight   = "GALAXY_HEIGHT"
)

// Config is the full set of settings.
type Config struct {
	// Seed selects the random sequence; 0 picks a time-based seed.
	Seed      uint64    `toml:"seed"`
	LogLevel  string    `toml:"log_level"`
	Window    Window    `toml:"window"`
	Galaxy    Galaxy    `toml:"galaxy"`
	StarField StarField `toml:"star_field"`
}

// Window is the initial host surface.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Galaxy mirrors generator.Parameters with hex colors.
type Galaxy struct {
	Count           int     `toml:"count"`
	Size            float64 `toml:"size"`
	Radius          float64 `toml:"radius"`
	Branches        int     `toml:"branches"`
	Spin            float64 `toml:"spin"`
	Randomness      float64 `toml:"randomness"`
	RandomnessPower float64 `toml:"randomness_power"`
	InsideColor     string  `toml:"inside_color"`
	OutsideColor    string  `toml:"outside_color"`
}

// StarField mirrors generator.StarFieldParameters with a hex color.
type StarField struct {
	Count int     `toml:"count"`
	Size  float64 `toml:"size"`
	Range float64 `toml:"range"`
	Color string  `toml:"color"`
}

// Default returns the stock configuration.
func Default() Config {
	g := generator.DefaultParameters()
	s := generator.DefaultStarFieldParameters()
	return Config{
		LogLevel: "info",
		Window:   Window{Width: 960, Height: 640, Title: "galaxyview"},
		Galaxy: Galaxy{
			Count:           g.Count,
			Size:            g.Size,
			Radius:          g.Radius,
			Branches:        g.Branches,
			Spin:            g.Spin,
			Randomness:      g.Randomness,
			RandomnessPower: g.RandomnessPower,
			InsideColor:     g.InsideColor.Hex(),
			OutsideColor:    g.OutsideColor.Hex(),
		},
		StarField: StarField{
			Count: s.Count,
			Size:  s.Size,
			Range: s.Range,
			Color: s.Color.Hex(),
		},
	}
}

// Load returns the defaults with the TOML file at path merged over them.
// An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data over cfg and validates the result. Unknown keys are errors.
func Parse(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return cfg.Validate()
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// PathFromEnv returns GALAXY_CONFIG, or "".
func PathFromEnv() string {
	return os.Getenv(EnvConfig)
}

// ApplyEnv overrides cfg with GALAXY_SEED, GALAXY_LOG_LEVEL, GALAXY_WIDTH and GALAXY_HEIGHT.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	for _, e := range []struct {
		name string
		dst  *int
	}{
		{EnvWidth, &cfg.Window.Width},
		{EnvHeight, &cfg.Window.Height},
	} {
		v, ok := os.LookupEnv(e.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", e.name, err)
		}
		*e.dst = n
	}
	return cfg.Validate()
}

// Validate checks values that would otherwise fail later.
// Parameter ranges are left to the panel, which clamps them.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := hal.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.GalaxyParameters(); err != nil {
		return err
	}
	_, err := c.StarFieldParameters()
	return err
}

// Level returns the parsed log level, info when invalid.
func (c Config) Level() slog.Level {
	l, _ := hal.ParseLevel(c.LogLevel)
	return l
}

// GalaxyParameters converts the galaxy section.
func (c Config) GalaxyParameters() (generator.Parameters, error) {
	inside, err := colorful.Hex(c.Galaxy.InsideColor)
	if err != nil {
		return generator.Parameters{}, fmt.Errorf("galaxy.inside_color: %w", err)
	}
	outside, err := colorful.Hex(c.Galaxy.OutsideColor)
	if err != nil {
		return generator.Parameters{}, fmt.Errorf("galaxy.outside_color: %w", err)
	}
	return generator.Parameters{
		Count:           c.Galaxy.Count,
		Size:            c.Galaxy.Size,
		Radius:          c.Galaxy.Radius,
		Branches:        c.Galaxy.Branches,
		Spin:            c.Galaxy.Spin,
		Randomness:      c.Galaxy.Randomness,
		RandomnessPower: c.Galaxy.RandomnessPower,
		InsideColor:     inside,
		OutsideColor:    outside,
	}, nil
}

// StarFieldParameters converts the star field section.
func (c Config) StarFieldParameters() (generator.StarFieldParameters, error) {
	col, err := colorful.Hex(c.StarField.Color)
	if err != nil {
		return generator.StarFieldParameters{}, fmt.Errorf("star_field.color: %w", err)
	}
	return generator.StarFieldParameters{
		Count: c.StarField.Count,
		Size:  c.StarField.Size,
		Range: c.StarField.Range,
		Color: col,
	}, nil
}
