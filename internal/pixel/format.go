// Package pixel implements in-place conversions over packed 32-bit pixel
// buffers.
//
// A packed pixel is A<<24 | R<<16 | G<<8 | B. Engines render premultiplied
// pixels; encoders and display surfaces may need straight alpha or the
// reverse channel order, which is what this package converts between.
package pixel

// Format describes how the 32 bits of a packed pixel are interpreted.
type Format uint8

const (
	// FormatARGBPremul is A,R,G,B from the most significant byte with
	// premultiplied alpha. This is what engines render.
	FormatARGBPremul Format = iota

	// FormatARGB is A,R,G,B with straight alpha.
	FormatARGB

	// FormatABGRPremul is A,B,G,R with premultiplied alpha. In little-endian
	// memory its bytes read R,G,B,A.
	FormatABGRPremul

	// FormatABGR is A,B,G,R with straight alpha.
	FormatABGR

	formatCount
)

// formatInfo contains metadata about a packed format.
type formatInfo struct {
	name            string
	premultiplied   bool
	reversedChannel bool
}

var formatInfoTable = [formatCount]formatInfo{
	FormatARGBPremul: {name: "ARGBPremul", premultiplied: true},
	FormatARGB:       {name: "ARGB"},
	FormatABGRPremul: {name: "ABGRPremul", premultiplied: true, reversedChannel: true},
	FormatABGR:       {name: "ABGR", reversedChannel: true},
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// IsPremultiplied returns true if color channels carry premultiplied alpha.
func (f Format) IsPremultiplied() bool {
	return f.IsValid() && formatInfoTable[f].premultiplied
}

// IsReversed returns true if red occupies the low byte.
func (f Format) IsReversed() bool {
	return f.IsValid() && formatInfoTable[f].reversedChannel
}

// String returns a string representation of the format.
func (f Format) String() string {
	if !f.IsValid() {
		return "Unknown"
	}
	return formatInfoTable[f].name
}

// StraightVersion returns the straight-alpha version of this format.
func (f Format) StraightVersion() Format {
	switch f {
	case FormatARGBPremul:
		return FormatARGB
	case FormatABGRPremul:
		return FormatABGR
	default:
		return f
	}
}

// PremultipliedVersion returns the premultiplied version of this format.
func (f Format) PremultipliedVersion() Format {
	switch f {
	case FormatARGB:
		return FormatARGBPremul
	case FormatABGR:
		return FormatABGRPremul
	default:
		return f
	}
}
