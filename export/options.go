// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package export

import (
	"log/slog"

	"github.com/gogpu/frameplay/bmp"
	"github.com/gogpu/frameplay/internal/manifest"
)

// Defaults.
const (
	DefaultPattern   = "frame_%04d.bmp"
	DefaultMaxWidth  = 1920
	DefaultMaxHeight = 1080

	// ProgressEvery is the number of frames between progress reports.
	ProgressEvery = 10
)

// Encoder writes one frame of width*height packed pixels to path.
type Encoder func(path string, pix []uint32, width, height int) error

// ProgressFunc is called with the number of frames handled so far.
type ProgressFunc func(done, total int)

// Option configures an Exporter.
type Option func(*Exporter)

// WithPattern sets the file name pattern. It must contain exactly one integer
// verb, which receives the frame index.
func WithPattern(pattern string) Option {
	return func(e *Exporter) {
		e.pattern = pattern
	}
}

// WithSize renders at a fixed size instead of the animation's intrinsic size.
func WithSize(width, height int) Option {
	return func(e *Exporter) {
		e.width, e.height = width, height
	}
}

// WithMaxSize bounds the intrinsic size, scaling it down with the aspect
// ratio kept. Non-positive values disable the bound. It has no effect
// together with WithSize.
func WithMaxSize(width, height int) Option {
	return func(e *Exporter) {
		e.maxWidth, e.maxHeight = width, height
	}
}

// WithKeepAspectRatio chooses between fitted (default) and stretched
// rendering.
func WithKeepAspectRatio(keep bool) Option {
	return func(e *Exporter) {
		e.keepAspectRatio = keep
	}
}

// WithEncoder replaces the BMP encoder.
func WithEncoder(enc Encoder) Option {
	return func(e *Exporter) {
		if enc != nil {
			e.encode = enc
		}
	}
}

// WithProgress installs a progress callback, called every ProgressEvery
// frames and after the last frame.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Exporter) {
		e.progress = fn
	}
}

// WithLogger sets the logger. By default the frameplay logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// WithManifest records frame outcomes in m and skips frames m reports as
// already written. The exporter does not close m.
func WithManifest(m *manifest.Store) Option {
	return func(e *Exporter) {
		e.manifest = m
	}
}

func defaultExporter() Exporter {
	return Exporter{
		pattern:         DefaultPattern,
		maxWidth:        DefaultMaxWidth,
		maxHeight:       DefaultMaxHeight,
		keepAspectRatio: true,
		encode:          bmp.WriteFile,
	}
}
