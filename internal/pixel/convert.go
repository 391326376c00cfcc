package pixel

// Pack builds a packed pixel from its channels.
func Pack(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits a packed pixel into its channels.
//
//nolint:gosec // G115: every shift is masked to 8 bits
func Unpack(p uint32) (a, r, g, b uint8) {
	return uint8(p >> 24), uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// Alpha returns the alpha channel of a packed pixel.
func Alpha(p uint32) uint8 {
	return uint8(p >> 24) //nolint:gosec // G115: shift leaves 8 bits
}

// UnpremultiplyPixel recovers straight alpha for one pixel.
// Color channels are scaled by 255/a with integer truncation when 0 < a < 255;
// fully transparent and fully opaque pixels are returned unchanged.
func UnpremultiplyPixel(p uint32) uint32 {
	a, r, g, b := Unpack(p)
	if a == 0 || a == 255 {
		return p
	}
	return Pack(a, unpremul(r, a), unpremul(g, a), unpremul(b, a))
}

// PremultiplyPixel scales the color channels of a straight-alpha pixel by a/255.
func PremultiplyPixel(p uint32) uint32 {
	a, r, g, b := Unpack(p)
	if a == 255 {
		return p
	}
	if a == 0 {
		return 0
	}
	return Pack(a, premul(r, a), premul(g, a), premul(b, a))
}

// SwapPixel exchanges the red and blue channels, keeping alpha and green.
func SwapPixel(p uint32) uint32 {
	return p&0xFF00FF00 | (p>>16)&0xFF | (p&0xFF)<<16
}

// unpremul scales c by 255/a. Premultiplied input keeps c <= a; values from
// malformed buffers are clamped instead of wrapping.
func unpremul(c, a uint8) uint8 {
	v := uint32(c) * 255 / uint32(a)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func premul(c, a uint8) uint8 {
	return uint8(uint32(c) * uint32(a) / 255) //nolint:gosec // G115: product/255 fits in 8 bits
}

// span returns the number of pixels a width x height operation may touch in
// buf, or 0 when the operation is a no-op.
func span(buf []uint32, width, height int) int {
	if len(buf) == 0 || width <= 0 || height <= 0 {
		return 0
	}
	n := width * height
	if n > len(buf) {
		n = len(buf)
	}
	return n
}

// Unpremultiply converts width*height premultiplied pixels to straight alpha
// in place.
//
// A nil buffer or non-positive dimension is a no-op. The conversion cannot be
// reversed for pixels with zero alpha.
func Unpremultiply(buf []uint32, width, height int) {
	n := span(buf, width, height)
	for i := 0; i < n; i++ {
		buf[i] = UnpremultiplyPixel(buf[i])
	}
}

// Premultiply converts width*height straight-alpha pixels to premultiplied
// alpha in place.
func Premultiply(buf []uint32, width, height int) {
	n := span(buf, width, height)
	for i := 0; i < n; i++ {
		buf[i] = PremultiplyPixel(buf[i])
	}
}

// SwapChannels reverses the order of the three color channels of
// width*height pixels in place. Alpha stays in the high byte.
// Applying it twice restores the original buffer.
func SwapChannels(buf []uint32, width, height int) {
	n := span(buf, width, height)
	for i := 0; i < n; i++ {
		buf[i] = SwapPixel(buf[i])
	}
}

// UnpremultiplyAndSwap is Unpremultiply followed by SwapChannels done in a
// single traversal of the buffer.
func UnpremultiplyAndSwap(buf []uint32, width, height int) {
	n := span(buf, width, height)
	for i := 0; i < n; i++ {
		p := buf[i]
		a, r, g, b := Unpack(p)
		if a != 0 && a != 255 {
			r, g, b = unpremul(r, a), unpremul(g, a), unpremul(b, a)
		}
		buf[i] = Pack(a, b, g, r)
	}
}

// Convert rewrites width*height pixels from one format to another in place.
// Unknown formats and identical formats leave the buffer untouched.
func Convert(buf []uint32, width, height int, from, to Format) {
	if !from.IsValid() || !to.IsValid() || from == to {
		return
	}

	swap := from.IsReversed() != to.IsReversed()
	switch {
	case from.IsPremultiplied() && !to.IsPremultiplied():
		if swap {
			UnpremultiplyAndSwap(buf, width, height)
			return
		}
		Unpremultiply(buf, width, height)
	case !from.IsPremultiplied() && to.IsPremultiplied():
		Premultiply(buf, width, height)
		if swap {
			SwapChannels(buf, width, height)
		}
	case swap:
		SwapChannels(buf, width, height)
	}
}
