// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config reads the frameplay command configuration from YAML.
//
// Every field is optional; missing fields keep their defaults. Command-line
// flags are applied on top of the loaded file.
//
//	engine: gif
//	export:
//	  dir: out
//	  pattern: frame_%04d.bmp
//	  maxWidth: 1920
//	  maxHeight: 1080
//	  manifest: true
//	play:
//	  title: frameplay
//	  overlay: true
//	  checker:
//	    cell: 8
//	    light: "#CCCCCC"
//	    dark: "#999999"
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the command configuration.
type Config struct {
	// Engine names the animation engine; empty selects the best available.
	Engine string `yaml:"engine"`

	Export Export `yaml:"export"`
	Play   Play   `yaml:"play"`
}

// Export configures frame export.
type Export struct {
	Dir       string `yaml:"dir"`
	Pattern   string `yaml:"pattern"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	MaxWidth  int    `yaml:"maxWidth"`
	MaxHeight int    `yaml:"maxHeight"`

	// Manifest enables resumable export; ManifestPath overrides the default
	// location inside Dir.
	Manifest     bool   `yaml:"manifest"`
	ManifestPath string `yaml:"manifestPath"`
}

// Play configures the player window.
type Play struct {
	Title     string  `yaml:"title"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	MaxWidth  int     `yaml:"maxWidth"`
	MaxHeight int     `yaml:"maxHeight"`
	Overlay   bool    `yaml:"overlay"`
	Checker   Checker `yaml:"checker"`
}

// Checker configures the transparency background.
type Checker struct {
	Cell  int    `yaml:"cell"`
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Export: Export{
			Dir:       "frames",
			Pattern:   "frame_%04d.bmp",
			MaxWidth:  1920,
			MaxHeight: 1080,
		},
		Play: Play{
			Title:     "frameplay",
			MaxWidth:  1920,
			MaxHeight: 1080,
			Checker: Checker{
				Cell:  8,
				Light: "#CCCCCC",
				Dark:  "#999999",
			},
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and colors.
func (c Config) Validate() error {
	var errs []error
	if c.Export.Pattern == "" {
		errs = append(errs, errors.New("export.pattern is empty"))
	}
	if c.Export.Width < 0 || c.Export.Height < 0 || c.Play.Width < 0 || c.Play.Height < 0 {
		errs = append(errs, errors.New("sizes must not be negative"))
	}
	if (c.Export.Width > 0) != (c.Export.Height > 0) {
		errs = append(errs, fmt.Errorf("export.width and export.height must be set together, got %dx%d", c.Export.Width, c.Export.Height))
	}
	if (c.Play.Width > 0) != (c.Play.Height > 0) {
		errs = append(errs, fmt.Errorf("play.width and play.height must be set together, got %dx%d", c.Play.Width, c.Play.Height))
	}
	if c.Play.Checker.Cell <= 0 {
		errs = append(errs, fmt.Errorf("play.checker.cell must be positive, got %d", c.Play.Checker.Cell))
	}
	for name, s := range map[string]string{"light": c.Play.Checker.Light, "dark": c.Play.Checker.Dark} {
		v, err := ParseColor(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("play.checker.%s: %w", name, err))
		} else if v>>24 != 0xFF {
			errs = append(errs, fmt.Errorf("play.checker.%s must be opaque", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// CheckerColors returns the parsed checkerboard colors. It assumes a
// validated configuration.
func (c Config) CheckerColors() (light, dark uint32) {
	light, _ = ParseColor(c.Play.Checker.Light)
	dark, _ = ParseColor(c.Play.Checker.Dark)
	return light, dark
}

// ParseColor parses "#RRGGBB" or "#AARRGGBB" (the # is optional) into a
// packed pixel. Six digit colors are opaque.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, fmt.Errorf("color %q: want #RRGGBB or #AARRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return uint32(v), nil
}
