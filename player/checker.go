// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package player

// Checkerboard defaults.
const (
	DefaultCell  = 8
	DefaultLight = 0xFFCCCCCC
	DefaultDark  = 0xFF999999
)

// Checkerboard is the opaque background transparency is shown against.
type Checkerboard struct {
	// Cell is the side of one square in pixels.
	Cell int

	// Light and Dark are opaque packed colors.
	Light, Dark uint32
}

// DefaultCheckerboard returns 8 pixel light and dark gray cells.
func DefaultCheckerboard() Checkerboard {
	return Checkerboard{Cell: DefaultCell, Light: DefaultLight, Dark: DefaultDark}
}

// At returns the background color of pixel (x, y). Cell (cx, cy) is light
// when cx+cy is even.
func (c Checkerboard) At(x, y int) uint32 {
	cell := c.Cell
	if cell <= 0 {
		cell = DefaultCell
	}
	if (x/cell+y/cell)%2 == 0 {
		return c.Light
	}
	return c.Dark
}

// Composite writes src blended over bg into dst. Both buffers hold width x
// height packed premultiplied pixels; every output pixel is opaque. Opaque
// source pixels are copied, transparent ones take the background color and
// the rest are blended source-over.
//
// Nothing is written for non-positive dimensions, and only the pixels both
// buffers hold are processed.
func Composite(dst, src []uint32, width, height int, bg Checkerboard) {
	if width <= 0 || height <= 0 {
		return
	}
	n := min(len(dst), len(src), width*height)
	for i := 0; i < n; i++ {
		p := src[i]
		a := p >> 24
		switch a {
		case 0xFF:
			dst[i] = p
		case 0:
			dst[i] = bg.At(i%width, i/width)
		default:
			dst[i] = blend(p, bg.At(i%width, i/width), a)
		}
	}
}

// blend computes src + bg*(255-a)/255 per color channel with opaque alpha.
func blend(src, bg, a uint32) uint32 {
	inv := 255 - a
	out := uint32(0xFF000000)
	for shift := uint32(0); shift <= 16; shift += 8 {
		c := (src>>shift)&0xFF + ((bg>>shift)&0xFF)*inv/255
		out |= min(c, 0xFF) << shift
	}
	return out
}
