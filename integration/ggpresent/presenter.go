// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggpresent

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/frameplay/internal/pixel"
)

// Common errors returned by Presenter operations.
var (
	// ErrClosed is returned when operations are attempted on a closed presenter.
	ErrClosed = errors.New("ggpresent: presenter is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("ggpresent: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("ggpresent: nil DeviceProvider")

	// ErrNilDrawer is returned by RenderTo without a draw context.
	ErrNilDrawer = errors.New("ggpresent: nil TextureDrawer")

	// ErrNoTextureCreator is returned when the draw context cannot create
	// textures.
	ErrNoTextureCreator = errors.New("ggpresent: draw context has no texture creator")

	// ErrNotTexture is returned when a created texture cannot be drawn.
	ErrNotTexture = errors.New("ggpresent: value is not a gpucontext.Texture")

	// ErrBufferTooSmall is returned by Present for a short pixel buffer.
	ErrBufferTooSmall = errors.New("ggpresent: pixel buffer too small")

	// ErrUnsupportedFormat is returned by New for an upload format other
	// than 8-bit RGBA or BGRA.
	ErrUnsupportedFormat = errors.New("ggpresent: unsupported texture format")
)

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithFormat sets the byte order of uploaded texture data. The default,
// gputypes.TextureFormatRGBA8Unorm, matches gpucontext.TextureCreator's
// NewTextureFromRGBA.
func WithFormat(format gputypes.TextureFormat) Option {
	return func(p *Presenter) {
		p.format = format
	}
}

// Presenter uploads composited frames to a GPU texture.
type Presenter struct {
	provider gpucontext.DeviceProvider
	format   gputypes.TextureFormat

	mu          sync.Mutex
	staging     []byte // Latest frame in upload byte order
	width       int
	height      int
	texture     any // *gogpu.Texture once created
	oldTexture  any // Previous texture awaiting deferred destruction
	dirty       bool
	sizeChanged bool
	frames      uint64
	closed      bool
}

// New creates a Presenter for frames of width x height.
// The provider should come from gogpu.App.GPUContextProvider().
func New(provider gpucontext.DeviceProvider, width, height int, opts ...Option) (*Presenter, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	return newPresenter(provider, width, height, opts...)
}

func newPresenter(provider gpucontext.DeviceProvider, width, height int, opts ...Option) (*Presenter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	p := &Presenter{
		provider: provider,
		format:   gputypes.TextureFormatRGBA8Unorm,
		staging:  make([]byte, width*height*4),
		width:    width,
		height:   height,
		dirty:    true,
	}
	for _, opt := range opts {
		opt(p)
	}
	switch p.format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, p.format)
	}
	return p, nil
}

// Present implements player.Presenter. It copies pix into the staging buffer
// in upload byte order and marks the texture for update. A new size takes
// effect with the next RenderTo.
func (p *Presenter) Present(pix []uint32, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	n := width * height
	if len(pix) < n {
		return fmt.Errorf("%w: have %d pixels, need %d", ErrBufferTooSmall, len(pix), n)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if width != p.width || height != p.height {
		p.staging = make([]byte, n*4)
		p.width, p.height = width, height
		p.sizeChanged = true
	}

	// Packed pixels are B,G,R,A in little-endian memory.
	if p.format == gputypes.TextureFormatRGBA8Unorm {
		pixel.ToRGBABytes(p.staging, pix[:n])
	} else {
		pixel.ToBytes(p.staging, pix[:n])
	}

	p.dirty = true
	p.frames++
	return nil
}

// Size returns the size of the latest frame.
func (p *Presenter) Size() (width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

// Frames returns the number of frames presented so far.
func (p *Presenter) Frames() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

// IsDirty reports whether a presented frame awaits upload.
func (p *Presenter) IsDirty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dirty
}

// Provider returns the DeviceProvider, or nil once closed.
func (p *Presenter) Provider() gpucontext.DeviceProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	return p.provider
}

// RenderTo uploads the latest frame if needed and draws it at (0, 0).
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    p.RenderTo(dc.AsTextureDrawer())
//	})
func (p *Presenter) RenderTo(dc gpucontext.TextureDrawer) error {
	return p.RenderToPosition(dc, 0, 0)
}

// RenderToPosition uploads the latest frame if needed and draws it at (x, y).
func (p *Presenter) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if dc == nil {
		return ErrNilDrawer
	}

	tex, err := p.flush(dc)
	if err != nil {
		return err
	}
	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrNotTexture
	}
	return dc.DrawTexture(gpuTex, x, y)
}

// flush makes the texture match the staging buffer. Must be called with
// p.mu held.
func (p *Presenter) flush(dc gpucontext.TextureDrawer) (any, error) {
	if p.sizeChanged {
		if p.texture != nil {
			p.destroyOld()
			p.oldTexture = p.texture
			p.texture = nil
		}
		p.sizeChanged = false
	}

	if p.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return nil, ErrNoTextureCreator
		}
		tex, err := creator.NewTextureFromRGBA(p.width, p.height, p.staging)
		if err != nil {
			return nil, fmt.Errorf("ggpresent: create texture: %w", err)
		}
		// Frames are opaque, so premultiplied and straight alpha agree.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		p.texture = tex
		p.dirty = false

		// Creation waits for the GPU, so the replaced texture is idle now.
		p.destroyOld()
		return p.texture, nil
	}

	if p.dirty {
		if updater, ok := p.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(p.staging); err != nil {
				return nil, fmt.Errorf("ggpresent: update texture: %w", err)
			}
		}
		p.dirty = false
	}
	return p.texture, nil
}

func (p *Presenter) destroyOld() {
	if p.oldTexture == nil {
		return
	}
	if d, ok := p.oldTexture.(textureDestroyer); ok {
		d.Destroy()
	}
	p.oldTexture = nil
}

// Close releases the textures. Close is idempotent.
func (p *Presenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	p.destroyOld()
	if d, ok := p.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	p.texture = nil
	p.staging = nil
	p.provider = nil
	return nil
}
