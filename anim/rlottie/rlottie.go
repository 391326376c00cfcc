// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build rlottie && cgo

package rlottie

// #cgo pkg-config: rlottie
// #include <stdlib.h>
// #include <rlottie_capi.h>
import "C"

import (
	"fmt"
	"image"
	"sync"
	"unsafe"

	"golang.org/x/image/draw"

	"github.com/gogpu/frameplay"
	"github.com/gogpu/frameplay/anim"
	"github.com/gogpu/frameplay/internal/pixel"
)

// Name is the registry name of the engine.
const Name = "rlottie"

// Priority places the engine ahead of the pure Go fallbacks.
const Priority = 100

func init() {
	anim.Register(Name, Priority, Engine{}, nil)
}

// SetCacheSize configures how many parsed models rlottie keeps in its
// internal cache. Zero disables caching.
func SetCacheSize(n int) {
	C.lottie_configure_model_cache_size(C.size_t(max(n, 0)))
}

// Engine loads Lottie documents through rlottie.
type Engine struct{}

// LoadFile implements anim.Engine. rlottie does not report why a load failed,
// so every failure is returned as anim.ErrUnsupported.
func (Engine) LoadFile(path string) (anim.Animation, error) {
	if path == "" {
		return nil, anim.ErrEmptyPath
	}
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	h := C.lottie_animation_from_file(cpath)
	if h == nil {
		return nil, fmt.Errorf("rlottie: load %s: %w", path, anim.ErrUnsupported)
	}
	return newAnimation(h), nil
}

// LoadData implements anim.Engine.
func (Engine) LoadData(data []byte, resourcePath string) (anim.Animation, error) {
	if len(data) == 0 {
		return nil, anim.ErrEmptyData
	}
	cdata := C.CString(string(data))
	defer C.free(unsafe.Pointer(cdata))
	ckey := C.CString("")
	defer C.free(unsafe.Pointer(ckey))
	cres := C.CString(resourcePath)
	defer C.free(unsafe.Pointer(cres))

	h := C.lottie_animation_from_data(cdata, ckey, cres)
	if h == nil {
		return nil, fmt.Errorf("rlottie: load data: %w", anim.ErrUnsupported)
	}
	return newAnimation(h), nil
}

// Animation wraps a native rlottie handle.
type Animation struct {
	mu   sync.Mutex
	h    *C.Lottie_Animation
	info anim.Info

	// scratch holds an intrinsic-size frame for stretched rendering.
	scratch []uint32
}

func newAnimation(h *C.Lottie_Animation) *Animation {
	var w, ht C.size_t
	C.lottie_animation_get_size(h, &w, &ht)

	info := anim.Info{
		FrameRate:   float64(C.lottie_animation_get_framerate(h)),
		TotalFrames: int(C.lottie_animation_get_totalframe(h)),
		Duration:    float64(C.lottie_animation_get_duration(h)),
		Width:       int(w),
		Height:      int(ht),
	}
	frameplay.Logger().Debug("rlottie: loaded", "info", info.String())
	return &Animation{h: h, info: info}
}

// Info implements anim.Animation.
func (a *Animation) Info() (anim.Info, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.h == nil {
		return anim.Info{}, anim.ErrClosed
	}
	return a.info, nil
}

// Render implements anim.Animation.
func (a *Animation) Render(frame int, s anim.Surface, keepAspectRatio bool) error {
	if err := s.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.h == nil {
		return anim.ErrClosed
	}
	if frame < 0 {
		frame = 0
	}

	if keepAspectRatio || (s.Width == a.info.Width && s.Height == a.info.Height) {
		a.render(frame, s.Pix, s.Width, s.Height, s.Stride)
		return nil
	}
	return a.renderStretched(frame, s)
}

// render must be called with a.mu held.
func (a *Animation) render(frame int, pix []uint32, w, h, stride int) {
	C.lottie_animation_render(a.h, C.size_t(frame),
		(*C.uint32_t)(unsafe.Pointer(&pix[0])),
		C.size_t(w), C.size_t(h), C.size_t(stride))
}

func (a *Animation) renderStretched(frame int, s anim.Surface) error {
	iw, ih := a.info.Width, a.info.Height
	if iw <= 0 || ih <= 0 {
		return anim.ErrInvalidDimensions
	}
	if len(a.scratch) != iw*ih {
		a.scratch = make([]uint32, iw*ih)
	} else {
		clear(a.scratch)
	}
	a.render(frame, a.scratch, iw, ih, iw*anim.BytesPerPixel)

	src := pixel.NewImage(a.scratch, iw, ih, iw)
	dst := pixel.NewImage(s.Pix, s.Width, s.Height, s.PixelStride())
	if src == nil || dst == nil {
		return anim.ErrBufferTooSmall
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, image.Rect(0, 0, iw, ih), draw.Src, nil)
	return nil
}

// FrameAtPos implements anim.Animation using rlottie's own mapping.
func (a *Animation) FrameAtPos(pos float64) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.h == nil {
		return 0
	}
	return int(C.lottie_animation_get_frame_at_pos(a.h, C.float(pos)))
}

// Close implements anim.Animation.
func (a *Animation) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.h != nil {
		C.lottie_animation_destroy(a.h)
		a.h = nil
		a.scratch = nil
	}
	return nil
}
