package pixel

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestImageSetAt(t *testing.T) {
	buf := make([]uint32, 6*4)
	m := NewImage(buf, 4, 4, 6)
	if m == nil {
		t.Fatal("NewImage() = nil")
	}

	m.Set(2, 3, color.RGBA{R: 10, G: 20, B: 30, A: 40})
	if got := buf[3*6+2]; got != 0x280A141E {
		t.Errorf("packed pixel = %#08x, want 0x280A141E", got)
	}
	if got := m.RGBAAt(2, 3); got != (color.RGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("RGBAAt = %v", got)
	}

	// Straight-alpha input is converted to premultiplied storage.
	m.Set(0, 0, color.NRGBA{R: 255, A: 128})
	if a, r, _, _ := Unpack(buf[0]); a != 128 || r != 128 {
		t.Errorf("NRGBA Set stored a=%d r=%d, want 128 128", a, r)
	}

	// Out of bounds writes are ignored.
	m.Set(4, 0, color.White)
	if buf[4] != 0 {
		t.Errorf("write outside bounds landed in stride padding: %#08x", buf[4])
	}
	if got := m.RGBAAt(-1, 0); got != (color.RGBA{}) {
		t.Errorf("RGBAAt(-1, 0) = %v, want zero", got)
	}
}

func TestNewImageRejectsShortBuffer(t *testing.T) {
	if NewImage(make([]uint32, 10), 4, 4, 4) != nil {
		t.Error("NewImage accepted a buffer smaller than width*height")
	}
	if NewImage(make([]uint32, 16), 4, 4, 3) != nil {
		t.Error("NewImage accepted stride < width")
	}
}

func TestImageWithStdDraw(t *testing.T) {
	buf := make([]uint32, 8*8)
	m := NewImage(buf, 8, 8, 8)
	draw.Draw(m, image.Rect(2, 2, 4, 4), image.NewUniform(color.RGBA{G: 255, A: 255}), image.Point{}, draw.Src)

	if buf[2*8+2] != 0xFF00FF00 || buf[3*8+3] != 0xFF00FF00 {
		t.Errorf("draw.Draw did not fill the rectangle: %#08x %#08x", buf[2*8+2], buf[3*8+3])
	}
	if buf[0] != 0 || buf[4*8+4] != 0 {
		t.Error("draw.Draw wrote outside the rectangle")
	}
}

func TestFromRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 1, G: 2, B: 3, A: 4})

	dst := make([]uint32, 4*2)
	FromRGBA(dst, 3, 2, 4, src)
	if dst[1*4+1] != 0x04010203 {
		t.Errorf("dst = %#08x, want 0x04010203", dst[1*4+1])
	}
}

func TestToBytes(t *testing.T) {
	src := []uint32{0xFF112233}
	dst := make([]byte, 4)

	ToBytes(dst, src)
	if want := []byte{0x33, 0x22, 0x11, 0xFF}; string(dst) != string(want) {
		t.Errorf("ToBytes(ARGB) = % x, want % x (B,G,R,A)", dst, want)
	}

	SwapChannels(src, 1, 1)
	ToBytes(dst, src)
	if want := []byte{0x11, 0x22, 0x33, 0xFF}; string(dst) != string(want) {
		t.Errorf("ToBytes(swapped) = % x, want % x (R,G,B,A)", dst, want)
	}
}

func TestToRGBABytes(t *testing.T) {
	src := []uint32{0xFF112233, 0x80402010}
	dst := make([]byte, 8)
	ToRGBABytes(dst, src)
	want := []byte{0x11, 0x22, 0x33, 0xFF, 0x40, 0x20, 0x10, 0x80}
	if string(dst) != string(want) {
		t.Errorf("ToRGBABytes = % x, want % x", dst, want)
	}
	if src[0] != 0xFF112233 {
		t.Error("source modified")
	}
}
