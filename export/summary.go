// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stage names the step at which a frame failed.
type Stage string

// Failure stages.
const (
	StageRender Stage = "render"
	StageEncode Stage = "encode"
)

// FrameError is a non-fatal failure of a single frame.
type FrameError struct {
	Frame int
	Stage Stage
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("export: frame %d: %s: %v", e.Frame, e.Stage, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

// Summary reports the outcome of an export.
type Summary struct {
	// Frames is the number of frames the animation has.
	Frames int

	// Written counts frames rendered and encoded by this run.
	Written int

	// Skipped counts frames a manifest reported as already written.
	Skipped int

	// Failed lists frames that could not be rendered or encoded. They are
	// not counted in Written.
	Failed []*FrameError

	// Width and Height are the size frames were rendered at.
	Width  int
	Height int

	// Elapsed is the wall-clock time of the export.
	Elapsed time.Duration
}

// Done returns the number of frames handled so far.
func (s *Summary) Done() int {
	return s.Written + s.Skipped + len(s.Failed)
}

// Complete reports whether every frame is on disk.
func (s *Summary) Complete() bool {
	return len(s.Failed) == 0 && s.Written+s.Skipped == s.Frames
}

// Average returns the mean time per frame.
func (s *Summary) Average() time.Duration {
	if s.Frames <= 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Frames)
}

var printer = message.NewPrinter(language.English)

// String formats the summary for people, with grouped thousands.
func (s *Summary) String() string {
	size := fmt.Sprintf("%dx%d", s.Width, s.Height)
	return printer.Sprintf("%d frames at %s: %d written, %d skipped, %d failed in %v (%v per frame)",
		s.Frames, size, s.Written, s.Skipped, len(s.Failed),
		s.Elapsed.Round(time.Millisecond), s.Average().Round(time.Microsecond))
}
