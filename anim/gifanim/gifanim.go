// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gifanim is a pure Go animation engine over animated GIF.
//
// It exists so frameplay can export and play something without a native
// vector engine installed. Frames are composed once at load time, honoring
// each frame's disposal method, and kept as premultiplied RGBA canvases.
// Rendering scales the stored canvas into the target surface.
//
// Importing the package registers the engine under the name "gif":
//
//	import _ "github.com/gogpu/frameplay/anim/gifanim"
package gifanim

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"os"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/frameplay"
	"github.com/gogpu/frameplay/anim"
	"github.com/gogpu/frameplay/internal/pixel"
)

// Name is the registry name of the engine.
const Name = "gif"

// Priority places the engine below native vector engines.
const Priority = 10

// DefaultFrameRate is used when every frame of a GIF has a zero delay.
const DefaultFrameRate = 10

func init() {
	anim.Register(Name, Priority, Engine{}, nil)
}

// Engine loads animated GIFs.
type Engine struct{}

// LoadFile implements anim.Engine.
func (e Engine) LoadFile(path string) (anim.Animation, error) {
	if path == "" {
		return nil, anim.ErrEmptyPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gifanim: read %s: %w", path, err)
	}
	return e.LoadData(data, "")
}

// LoadData implements anim.Engine. Data that does not start with a GIF
// signature is rejected with anim.ErrUnsupported.
func (Engine) LoadData(data []byte, _ string) (anim.Animation, error) {
	if len(data) == 0 {
		return nil, anim.ErrEmptyData
	}
	if !bytes.HasPrefix(data, []byte("GIF87a")) && !bytes.HasPrefix(data, []byte("GIF89a")) {
		return nil, anim.ErrUnsupported
	}
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gifanim: decode: %w", err)
	}
	a := newAnimation(g)
	if a == nil {
		return nil, fmt.Errorf("gifanim: %w", anim.ErrInvalidDimensions)
	}
	frameplay.Logger().Debug("gifanim: loaded", "info", a.info.String())
	return a, nil
}

// Animation is a decoded GIF.
type Animation struct {
	mu     sync.RWMutex
	frames []*image.RGBA
	info   anim.Info
	closed bool
}

// newAnimation composes every frame of g onto a canvas. It returns nil when
// the GIF has no frames or no area.
func newAnimation(g *gif.GIF) *Animation {
	if len(g.Image) == 0 {
		return nil
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		for _, f := range g.Image {
			bounds = bounds.Union(f.Bounds())
		}
		bounds = image.Rect(0, 0, bounds.Max.X, bounds.Max.Y)
	}
	if bounds.Empty() {
		return nil
	}

	canvas := image.NewRGBA(bounds)
	frames := make([]*image.RGBA, len(g.Image))
	delay := 0
	for i, f := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if i < len(g.Delay) {
			delay += g.Delay[i]
		}

		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = cloneRGBA(canvas)
		}

		draw.Draw(canvas, f.Bounds(), f, f.Bounds().Min, draw.Over)
		frames[i] = cloneRGBA(canvas)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, f.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	// Delays are in hundredths of a second.
	fps := float64(DefaultFrameRate)
	if delay > 0 {
		fps = float64(len(frames)) * 100 / float64(delay)
	}

	return &Animation{
		frames: frames,
		info:   anim.NewInfo(fps, len(frames), bounds.Dx(), bounds.Dy()),
	}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// Info implements anim.Animation.
func (a *Animation) Info() (anim.Info, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return anim.Info{}, anim.ErrClosed
	}
	return a.info, nil
}

// Render implements anim.Animation. Frame indices outside the animation are
// clamped to the first or last frame.
//
// With keepAspectRatio the frame is scaled to fit and centered; the uncovered
// area is cleared to transparent. Otherwise the frame is stretched.
func (a *Animation) Render(frame int, s anim.Surface, keepAspectRatio bool) error {
	if err := s.Validate(); err != nil {
		return err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return anim.ErrClosed
	}

	frame = max(0, min(frame, len(a.frames)-1))
	src := a.frames[frame]

	dst := pixel.NewImage(s.Pix, s.Width, s.Height, s.PixelStride())
	if dst == nil {
		return anim.ErrBufferTooSmall
	}

	target := dst.Bounds()
	if keepAspectRatio {
		target = fitRect(src.Bounds(), target)
		if target != dst.Bounds() {
			s.Clear()
		}
	}
	if target.Empty() {
		return nil
	}

	if target.Size() == src.Bounds().Size() {
		draw.Draw(dst, target, src, src.Bounds().Min, draw.Src)
		return nil
	}
	draw.ApproxBiLinear.Scale(dst, target, src, src.Bounds(), draw.Src, nil)
	return nil
}

// fitRect returns the largest rectangle with the aspect ratio of src that
// fits inside dst, centered.
func fitRect(src, dst image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	dw, dh := dst.Dx(), dst.Dy()
	if sw <= 0 || sh <= 0 {
		return image.Rectangle{}
	}

	w, h := dw, sh*dw/sw
	if h > dh {
		w, h = sw*dh/sh, dh
	}
	x := dst.Min.X + (dw-w)/2
	y := dst.Min.Y + (dh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// FrameAtPos implements anim.Animation.
func (a *Animation) FrameAtPos(pos float64) int {
	return anim.FrameAtPos(a.info, pos)
}

// Close implements anim.Animation.
func (a *Animation) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	a.frames = nil
	return nil
}
