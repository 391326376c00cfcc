// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package player

import "log/slog"

// Default bounds of the playback size.
const (
	DefaultMaxWidth  = 1920
	DefaultMaxHeight = 1080
)

// Option configures a Session.
type Option func(*config)

type config struct {
	width, height       int
	maxWidth, maxHeight int
	keepAspectRatio     bool
	checker             Checkerboard
	newTicker           TickerFunc
	overlay             bool
	logger              *slog.Logger
}

func defaultConfig() config {
	return config{
		maxWidth:        DefaultMaxWidth,
		maxHeight:       DefaultMaxHeight,
		keepAspectRatio: true,
		checker:         DefaultCheckerboard(),
		newTicker:       NewTimeTicker,
	}
}

// WithSize plays at a fixed size instead of the animation's intrinsic size.
func WithSize(width, height int) Option {
	return func(c *config) {
		c.width, c.height = width, height
	}
}

// WithMaxSize bounds the intrinsic size, scaling it down with the aspect
// ratio kept. Non-positive values disable the bound.
func WithMaxSize(width, height int) Option {
	return func(c *config) {
		c.maxWidth, c.maxHeight = width, height
	}
}

// WithKeepAspectRatio chooses between fitted (default) and stretched
// rendering.
func WithKeepAspectRatio(keep bool) Option {
	return func(c *config) {
		c.keepAspectRatio = keep
	}
}

// WithCheckerboard sets the transparency background.
func WithCheckerboard(cb Checkerboard) Option {
	return func(c *config) {
		c.checker = cb
	}
}

// WithTicker replaces the time.Ticker based tick source.
func WithTicker(fn TickerFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.newTicker = fn
		}
	}
}

// WithOverlay draws the frame counter over each presented frame.
func WithOverlay(enabled bool) Option {
	return func(c *config) {
		c.overlay = enabled
	}
}

// WithLogger sets the logger. By default the frameplay logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
