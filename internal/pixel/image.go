package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
)

// Image is a draw.Image view over a packed premultiplied buffer.
//
// It lets standard and golang.org/x/image drawing code (scalers, font
// drawers) write into the same memory an engine renders into. Image does not
// own Pix.
type Image struct {
	// Pix holds packed pixels; row y starts at Pix[y*Stride].
	Pix []uint32

	// Stride is the distance between rows in pixels.
	Stride int

	// Rect is the image bounds; Rect.Min is always (0, 0).
	Rect image.Rectangle
}

// NewImage wraps buf as a width x height image with the given row stride in
// pixels. It returns nil if buf is too small.
func NewImage(buf []uint32, width, height, stride int) *Image {
	if width <= 0 || height <= 0 || stride < width || len(buf) < stride*(height-1)+width {
		return nil
	}
	return &Image{Pix: buf, Stride: stride, Rect: image.Rect(0, 0, width, height)}
}

// ColorModel implements image.Image. Packed pixels are premultiplied.
func (m *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return m.Rect
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	return m.RGBAAt(x, y)
}

// RGBAAt returns the premultiplied color at (x, y).
func (m *Image) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(m.Rect)) {
		return color.RGBA{}
	}
	a, r, g, b := Unpack(m.Pix[y*m.Stride+x])
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// Set implements draw.Image.
func (m *Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(m.Rect)) {
		return
	}
	rgba, _ := color.RGBAModel.Convert(c).(color.RGBA)
	m.Pix[y*m.Stride+x] = Pack(rgba.A, rgba.R, rgba.G, rgba.B)
}

var _ draw.Image = (*Image)(nil)

// FromRGBA copies a premultiplied *image.RGBA into dst, a packed buffer whose
// rows are dstStride pixels apart. Only the overlap of src and the
// width x height destination is copied.
func FromRGBA(dst []uint32, width, height, dstStride int, src *image.RGBA) {
	b := src.Bounds()
	w := min(width, b.Dx())
	h := min(height, b.Dy())
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		out := dst[y*dstStride:]
		for x := 0; x < w; x++ {
			i := x * 4
			out[x] = Pack(row[i+3], row[i], row[i+1], row[i+2])
		}
	}
}

// ToBytes writes every packed pixel of src into dst as four little-endian
// bytes. For FormatARGBPremul input the bytes come out B,G,R,A; after
// SwapChannels they come out R,G,B,A. dst must hold len(src)*4 bytes.
func ToBytes(dst []byte, src []uint32) {
	for i, p := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], p)
	}
}

// ToRGBABytes writes src into dst in R,G,B,A byte order without modifying
// src. dst must hold len(src)*4 bytes.
func ToRGBABytes(dst []byte, src []uint32) {
	for i, p := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], SwapPixel(p))
	}
}
