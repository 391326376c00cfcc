// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package player

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/frameplay/internal/pixel"
)

var (
	overlayBackground = image.NewUniform(color.RGBA{A: 0xA0})
	overlayText       = image.NewUniform(color.White)
)

const overlayPad = 3

// drawOverlay prints "frame/total" in the top-left corner of the display
// buffer.
func drawOverlay(pix []uint32, width, height, frame, total int) {
	dst := pixel.NewImage(pix, width, height, width)
	if dst == nil {
		return
	}

	label := strconv.Itoa(frame) + "/" + strconv.Itoa(total)
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: overlayText, Face: face}

	m := face.Metrics()
	textW := d.MeasureString(label).Ceil()
	box := image.Rect(0, 0, textW+2*overlayPad, m.Height.Ceil()+2*overlayPad)
	draw.Draw(dst, box.Intersect(dst.Bounds()), overlayBackground, image.Point{}, draw.Over)

	d.Dot = fixed.P(overlayPad, overlayPad+m.Ascent.Ceil())
	d.DrawString(label)
}
