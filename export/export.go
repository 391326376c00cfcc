// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/frameplay"
	"github.com/gogpu/frameplay/anim"
	"github.com/gogpu/frameplay/internal/manifest"
)

// Errors returned by Export. Per-frame failures are reported in the Summary
// instead.
var (
	// ErrInvalidPattern is returned when the file name pattern does not take
	// exactly one integer.
	ErrInvalidPattern = errors.New("export: invalid file name pattern")

	// ErrInvalidSize is returned when the render size is not positive.
	ErrInvalidSize = errors.New("export: invalid render size")
)

// Exporter writes animation frames to files. An Exporter holds no state
// between exports and may be reused, but not concurrently.
type Exporter struct {
	pattern             string
	width, height       int
	maxWidth, maxHeight int
	keepAspectRatio     bool
	encode              Encoder
	progress            ProgressFunc
	logger              *slog.Logger
	manifest            *manifest.Store
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	e := defaultExporter()
	for _, opt := range opts {
		opt(&e)
	}
	return &e
}

// Size returns the size frames of info would be rendered at.
func (e *Exporter) Size(info anim.Info) (int, int) {
	if e.width > 0 && e.height > 0 {
		return e.width, e.height
	}
	return anim.FitSize(info.Width, info.Height, e.maxWidth, e.maxHeight)
}

// FileName returns the file name of frame.
func (e *Exporter) FileName(frame int) string {
	return fmt.Sprintf(e.pattern, frame)
}

// Export renders every frame of a into dir, which must exist.
//
// The returned error is non-nil only when the export could not run at all or
// ctx was cancelled; the summary is returned in the latter case too.
func (e *Exporter) Export(ctx context.Context, a anim.Animation, dir string) (*Summary, error) {
	info, err := anim.Query(a)
	if err != nil {
		return nil, fmt.Errorf("export: query animation: %w", err)
	}
	if err := validatePattern(e.pattern); err != nil {
		return nil, err
	}

	w, h := e.Size(info)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}

	log := e.log()
	sum := &Summary{Frames: info.TotalFrames, Width: w, Height: h}
	start := time.Now()

	log.Info("export: start",
		"dir", dir,
		"frames", info.TotalFrames,
		"fps", info.FrameRate,
		"width", w,
		"height", h)

	pix := make([]uint32, w*h)
	surface, err := anim.NewSurface(pix, w, h, w*anim.BytesPerPixel)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	for frame := 0; frame < info.TotalFrames; frame++ {
		if err := ctx.Err(); err != nil {
			sum.Elapsed = time.Since(start)
			log.Warn("export: cancelled", "frame", frame, "err", err)
			return sum, fmt.Errorf("export: cancelled at frame %d: %w", frame, err)
		}

		name := e.FileName(frame)
		path := filepath.Join(dir, name)

		if e.done(name, path, w, h) {
			sum.Skipped++
		} else if ferr := e.exportFrame(a, frame, surface, path); ferr != nil {
			sum.Failed = append(sum.Failed, ferr)
			log.Warn("export: frame failed", "frame", frame, "stage", ferr.Stage, "err", ferr.Err)
			e.record(manifest.Record{Name: name, Frame: frame, Width: w, Height: h,
				Status: manifest.StatusFailed, Err: ferr.Err.Error()})
		} else {
			sum.Written++
			e.record(manifest.Record{Name: name, Frame: frame, Width: w, Height: h,
				Size: fileSize(path), Status: manifest.StatusWritten})
		}

		done := frame + 1
		if done%ProgressEvery == 0 || done == info.TotalFrames {
			e.reportProgress(log, done, info.TotalFrames)
		}
	}

	sum.Elapsed = time.Since(start)
	log.Info("export: done",
		"frames", sum.Frames,
		"written", sum.Written,
		"skipped", sum.Skipped,
		"failed", len(sum.Failed),
		"elapsed", sum.Elapsed,
		"average", sum.Average())
	return sum, nil
}

// exportFrame clears the buffer, renders frame and encodes it to path.
func (e *Exporter) exportFrame(a anim.Animation, frame int, s anim.Surface, path string) *FrameError {
	clear(s.Pix)
	if err := anim.Render(a, frame, s, e.keepAspectRatio); err != nil {
		return &FrameError{Frame: frame, Stage: StageRender, Err: err}
	}
	if err := e.encode(path, s.Pix, s.Width, s.Height); err != nil {
		return &FrameError{Frame: frame, Stage: StageEncode, Err: err}
	}
	return nil
}

// done reports whether the manifest says name is already on disk at the
// current size.
func (e *Exporter) done(name, path string, w, h int) bool {
	if e.manifest == nil {
		return false
	}
	rec, ok, err := e.manifest.Get(name)
	if err != nil {
		e.log().Warn("export: manifest lookup failed", "file", name, "err", err)
		return false
	}
	if !ok || rec.Status != manifest.StatusWritten || rec.Width != w || rec.Height != h {
		return false
	}
	return rec.Size > 0 && fileSize(path) == rec.Size
}

func (e *Exporter) record(rec manifest.Record) {
	if e.manifest == nil {
		return
	}
	if err := e.manifest.Put(rec); err != nil {
		e.log().Warn("export: manifest update failed", "file", rec.Name, "err", err)
	}
}

func (e *Exporter) reportProgress(log *slog.Logger, done, total int) {
	if e.progress != nil {
		e.progress(done, total)
	}
	log.Debug("export: progress", "done", done, "total", total)
}

func (e *Exporter) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return frameplay.Logger()
}

// fileSize returns the size of path, or -1 if it cannot be read.
func fileSize(path string) int64 {
	st, err := os.Stat(path)
	if err != nil {
		return -1
	}
	return st.Size()
}

// validatePattern checks that pattern formats one integer into distinct,
// separator-free file names.
func validatePattern(pattern string) error {
	a, b := fmt.Sprintf(pattern, 0), fmt.Sprintf(pattern, 1)
	switch {
	case pattern == "",
		strings.Contains(a, "%!"),
		a == b,
		strings.ContainsRune(a, filepath.Separator),
		strings.ContainsRune(a, '/'):
		return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	return nil
}
