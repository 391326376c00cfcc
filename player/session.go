// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/frameplay"
	"github.com/gogpu/frameplay/anim"
)

// Session errors.
var (
	// ErrNilPresenter is returned by NewSession without a Presenter.
	ErrNilPresenter = errors.New("player: nil presenter")

	// ErrNoFrames is returned for an animation without frames.
	ErrNoFrames = errors.New("player: animation has no frames")

	// ErrInvalidFrameRate is returned for a non-positive frame rate.
	ErrInvalidFrameRate = errors.New("player: invalid frame rate")

	// ErrInvalidSize is returned when the playback size is not positive.
	ErrInvalidSize = errors.New("player: invalid playback size")

	// ErrAlreadyStarted is returned by Start on a running session.
	ErrAlreadyStarted = errors.New("player: session already started")

	// ErrStopped is returned when a stopped session is started again.
	ErrStopped = errors.New("player: session stopped")

	// ErrNotRunning is returned by Tick outside the running state.
	ErrNotRunning = errors.New("player: session not running")
)

// Session plays one animation. Its methods are safe for concurrent use; ticks
// never run concurrently with each other or with buffer release. Stop may be
// called from inside a tick, by the Presenter or the engine.
type Session struct {
	id        uuid.UUID
	anim      anim.Animation
	presenter Presenter
	info      anim.Info
	width     int
	height    int
	interval  time.Duration
	cfg       config
	log       *slog.Logger

	// tickMu serializes ticks.
	tickMu sync.Mutex

	mu      sync.Mutex
	state   State
	frame   int
	paused  bool
	ticking bool
	ticker  Ticker
	render  []uint32
	display []uint32
	done    chan struct{}
}

// NewSession prepares playback of a on p. The session starts Idle and holds
// no buffers. The caller keeps ownership of a and must not close it before
// the session is stopped.
func NewSession(a anim.Animation, p Presenter, opts ...Option) (*Session, error) {
	info, err := anim.Query(a)
	if err != nil {
		return nil, fmt.Errorf("player: query animation: %w", err)
	}
	if p == nil {
		return nil, ErrNilPresenter
	}
	if info.TotalFrames <= 0 {
		return nil, ErrNoFrames
	}
	interval := TickInterval(info.FrameRate)
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrameRate, info.FrameRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	w, h := cfg.width, cfg.height
	if w <= 0 || h <= 0 {
		w, h = anim.FitSize(info.Width, info.Height, cfg.maxWidth, cfg.maxHeight)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}

	log := cfg.logger
	if log == nil {
		log = frameplay.Logger()
	}
	id := uuid.New()

	return &Session{
		id:        id,
		anim:      a,
		presenter: p,
		info:      info,
		width:     w,
		height:    h,
		interval:  interval,
		cfg:       cfg,
		log:       log.With("session", id.String()),
		done:      make(chan struct{}),
	}, nil
}

// ID returns the unique session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Info returns the metadata of the animation being played.
func (s *Session) Info() anim.Info { return s.info }

// Size returns the playback size.
func (s *Session) Size() (int, int) { return s.width, s.height }

// Interval returns the tick period.
func (s *Session) Interval() time.Duration { return s.interval }

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Frame returns the index of the frame the next tick renders.
func (s *Session) Frame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// SetPaused suspends or resumes ticking in Run. A paused session keeps its
// buffers and frame index; Tick still works when called directly.
func (s *Session) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

// Paused reports whether Run skips ticks.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Done is closed when the session stops.
func (s *Session) Done() <-chan struct{} { return s.done }

// Start allocates the buffers and the ticker and moves Idle to Running.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateRunning:
		return ErrAlreadyStarted
	case StateStopped:
		return ErrStopped
	}

	n := s.width * s.height
	s.render = make([]uint32, n)
	s.display = make([]uint32, n)
	s.ticker = s.cfg.newTicker(s.interval)
	s.state = StateRunning

	s.log.Info("player: started",
		"width", s.width,
		"height", s.height,
		"frames", s.info.TotalFrames,
		"interval", s.interval)
	return nil
}

// Tick renders the current frame, composites it over the checkerboard,
// advances the frame index and presents the result.
//
// Render and present failures are logged and do not stop playback: the
// composite runs on whatever the render buffer holds and the index still
// advances. Tick returns ErrNotRunning outside the running state.
func (s *Session) Tick() error {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return ErrNotRunning
	}
	frame := s.frame
	render, display := s.render, s.display
	s.ticking = true
	s.mu.Unlock()
	defer s.endTick()

	// A Stop during the tick leaves the buffers to endTick.
	clear(render)
	surface := anim.Surface{Pix: render, Width: s.width, Height: s.height, Stride: s.width * anim.BytesPerPixel}
	if err := anim.Render(s.anim, frame, surface, s.cfg.keepAspectRatio); err != nil {
		s.log.Warn("player: render failed", "frame", frame, "err", err)
	}

	Composite(display, render, s.width, s.height, s.cfg.checker)
	if s.cfg.overlay {
		drawOverlay(display, s.width, s.height, frame, s.info.TotalFrames)
	}

	s.mu.Lock()
	s.frame = (frame + 1) % s.info.TotalFrames
	s.mu.Unlock()

	if err := s.presenter.Present(display, s.width, s.height); err != nil {
		s.log.Warn("player: present failed", "frame", frame, "err", err)
	}
	return nil
}

// endTick clears the in-flight mark and releases the buffers if the session
// was stopped during the tick.
func (s *Session) endTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticking = false
	if s.state == StateStopped {
		s.render, s.display = nil, nil
	}
}

// Stop moves the session to Stopped and stops the ticker. Both buffers are
// released right away, or by the tick in progress when it finishes. Stop
// never waits for a tick, is idempotent and may be called from any
// goroutine, including from Present or Render.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return
	}
	prev := s.state
	s.state = StateStopped
	t := s.ticker
	s.ticker = nil
	close(s.done)
	s.mu.Unlock()

	if t != nil {
		t.Stop()
	}

	s.mu.Lock()
	if !s.ticking {
		s.render, s.display = nil, nil
	}
	s.mu.Unlock()

	s.log.Info("player: stopped", "from", prev.String())
}

// Run starts an idle session and processes ticks one at a time until ctx is
// done or Stop is called. The session is Stopped when Run returns. Run
// returns nil on either kind of cancellation and an error only if the
// session could not start.
func (s *Session) Run(ctx context.Context) error {
	if s.State() == StateIdle {
		if err := s.Start(); err != nil && !errors.Is(err, ErrAlreadyStarted) {
			return err
		}
	}
	defer s.Stop()

	s.mu.Lock()
	t := s.ticker
	s.mu.Unlock()
	if t == nil {
		return ErrStopped
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case <-t.C():
			if s.Paused() {
				continue
			}
			if err := s.Tick(); errors.Is(err, ErrNotRunning) {
				return nil
			}
		}
	}
}
