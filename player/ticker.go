// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package player

import (
	"math"
	"time"
)

// Presenter receives every composited frame.
//
// pix holds width*height opaque packed pixels, top row first. It belongs to
// the session and is overwritten by the next tick, so a Presenter that keeps
// the pixels must copy them before returning.
type Presenter interface {
	Present(pix []uint32, width, height int) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(pix []uint32, width, height int) error

// Present calls f.
func (f PresenterFunc) Present(pix []uint32, width, height int) error {
	return f(pix, width, height)
}

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker is the default TickerFunc, backed by time.Ticker. A tick that
// arrives while the previous one is still being processed is coalesced.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// TickInterval returns the tick period for fps frames per second: 1000/fps
// milliseconds rounded to a whole millisecond, at least one millisecond. It
// returns 0 for a non-positive or non-finite rate, and for a rate so low that
// the period does not fit in a time.Duration.
func TickInterval(fps float64) time.Duration {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0
	}
	ms := math.Round(1000 / fps)
	if ms >= float64(math.MaxInt64/int64(time.Millisecond)) {
		return 0
	}
	return time.Duration(max(ms, 1)) * time.Millisecond
}
