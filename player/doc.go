// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package player plays an animation frame by frame onto a presentation
// surface.
//
// A [Session] owns two buffers: the raw target the engine renders into and a
// display buffer holding the frame composited over a checkerboard. Every tick
// renders the current frame, composites it, advances the frame index modulo
// the frame count and hands the display buffer to a [Presenter].
//
// Sessions move through three states:
//
//	Idle ──Start──▶ Running ──Stop──▶ Stopped
//	  └──────────────Stop───────────────┘
//
// Buffers exist only while Running. Stop cancels the ticker first and then
// releases the buffers; a tick in progress keeps them until it returns, so it
// never sees freed memory. Stop does not wait for that tick and may be called
// from the Presenter or the engine.
//
// The windowing toolkit stays outside the package: the host supplies a
// Presenter and, optionally, a [TickerFunc].
//
//	s, err := player.NewSession(a, presenter)
//	if err != nil {
//	    return err
//	}
//	go s.Run(ctx)
//	...
//	s.Stop()
package player
