// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package anim

import (
	"errors"
	"fmt"
)

// Surface errors.
var (
	// ErrNilBuffer is returned when a surface has no pixel memory.
	ErrNilBuffer = errors.New("anim: nil pixel buffer")

	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("anim: invalid dimensions")

	// ErrStrideTooSmall is returned when stride is less than width*4 or not a
	// multiple of 4.
	ErrStrideTooSmall = errors.New("anim: stride too small for width")

	// ErrBufferTooSmall is returned when the buffer is smaller than stride*height.
	ErrBufferTooSmall = errors.New("anim: pixel buffer too small")
)

// BytesPerPixel is the size of one packed pixel.
const BytesPerPixel = 4

// Surface is a render target view over caller-owned pixel memory.
//
// Pix holds packed A<<24|R<<16|G<<8|B pixels. Stride is the number of bytes
// between rows and may exceed Width*4 to allow row padding. The surface
// never owns Pix.
type Surface struct {
	Pix    []uint32
	Width  int
	Height int
	Stride int
}

// NewSurface returns a validated surface over pix.
func NewSurface(pix []uint32, width, height, stride int) (Surface, error) {
	s := Surface{Pix: pix, Width: width, Height: height, Stride: stride}
	if err := s.Validate(); err != nil {
		return Surface{}, err
	}
	return s, nil
}

// Validate checks the surface invariants: a buffer is present, dimensions are
// positive, stride >= width*4 and the buffer holds stride*height bytes.
func (s Surface) Validate() error {
	if s.Pix == nil {
		return ErrNilBuffer
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, s.Width, s.Height)
	}
	if s.Stride < s.Width*BytesPerPixel || s.Stride%BytesPerPixel != 0 {
		return fmt.Errorf("%w: stride=%d, width=%d", ErrStrideTooSmall, s.Stride, s.Width)
	}
	if len(s.Pix)*BytesPerPixel < s.Stride*s.Height {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrBufferTooSmall, len(s.Pix)*BytesPerPixel, s.Stride*s.Height)
	}
	return nil
}

// PixelStride returns the row stride in pixels.
func (s Surface) PixelStride() int {
	return s.Stride / BytesPerPixel
}

// Row returns the Width pixels of row y, or nil if y is out of range.
func (s Surface) Row(y int) []uint32 {
	if y < 0 || y >= s.Height {
		return nil
	}
	start := y * s.PixelStride()
	return s.Pix[start : start+s.Width]
}

// Clear sets every pixel of the surface to fully transparent.
func (s Surface) Clear() {
	for y := 0; y < s.Height; y++ {
		clear(s.Row(y))
	}
}
