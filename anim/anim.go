// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package anim

import (
	"errors"
	"fmt"
	"math"
)

// Common errors returned by animation handles and helpers.
var (
	// ErrNilAnimation is returned when an operation receives a nil handle.
	ErrNilAnimation = errors.New("anim: nil animation")

	// ErrClosed is returned when a closed handle is used.
	ErrClosed = errors.New("anim: animation is closed")

	// ErrEmptyPath is returned when a load is attempted with an empty path.
	ErrEmptyPath = errors.New("anim: empty path")

	// ErrEmptyData is returned when a load is attempted with no data.
	ErrEmptyData = errors.New("anim: empty data")

	// ErrUnsupported is returned by an engine that does not understand the
	// input. Open moves on to the next engine when it sees this error.
	ErrUnsupported = errors.New("anim: unsupported animation format")
)

// Animation is a loaded animation handle.
//
// All methods other than Close are free of side effects on shared state:
// Render writes only into the surface it is given. Implementations must be
// safe to query repeatedly without external locking.
type Animation interface {
	// Info returns the animation metadata. It never changes after load.
	Info() (Info, error)

	// Render rasterizes frame into s synchronously. The surface holds
	// premultiplied packed pixels afterwards. Engines interpret frame
	// indices outside [0, TotalFrames) themselves.
	//
	// With keepAspectRatio the content is fitted inside the surface;
	// otherwise it is stretched to fill it.
	Render(frame int, s Surface, keepAspectRatio bool) error

	// FrameAtPos maps a normalized position in [0, 1] to a frame index.
	FrameAtPos(pos float64) int

	// Close releases the engine resources. Close is idempotent.
	Close() error
}

// Engine loads animations.
type Engine interface {
	// LoadFile loads the animation stored at path.
	LoadFile(path string) (Animation, error)

	// LoadData loads an animation held in memory. resourcePath is the
	// directory external assets are resolved against and may be empty.
	LoadData(data []byte, resourcePath string) (Animation, error)
}

// Info is the metadata of a loaded animation.
type Info struct {
	// FrameRate is the number of frames per second.
	FrameRate float64 `json:"frameRate"`

	// TotalFrames is the number of frames in the animation.
	TotalFrames int `json:"totalFrames"`

	// Duration is the animation length in seconds.
	Duration float64 `json:"duration"`

	// Width and Height are the intrinsic size in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewInfo builds Info and derives Duration as totalFrames/frameRate.
// Duration is zero when frameRate is not positive.
func NewInfo(frameRate float64, totalFrames, width, height int) Info {
	info := Info{
		FrameRate:   frameRate,
		TotalFrames: totalFrames,
		Width:       width,
		Height:      height,
	}
	if frameRate > 0 {
		info.Duration = float64(totalFrames) / frameRate
	}
	return info
}

// String returns a one-line summary of the metadata.
func (i Info) String() string {
	return fmt.Sprintf("%dx%d, %d frames @ %.2f fps (%.2fs)",
		i.Width, i.Height, i.TotalFrames, i.FrameRate, i.Duration)
}

// Query returns the metadata of a, failing with ErrNilAnimation for a nil
// handle.
func Query(a Animation) (Info, error) {
	if a == nil {
		return Info{}, ErrNilAnimation
	}
	return a.Info()
}

// Render validates the handle and the surface, then renders frame into s.
// Invalid arguments are rejected before the engine is called, so they never
// touch the surface.
func Render(a Animation, frame int, s Surface, keepAspectRatio bool) error {
	if a == nil {
		return ErrNilAnimation
	}
	if err := s.Validate(); err != nil {
		return err
	}
	return a.Render(frame, s, keepAspectRatio)
}

// FrameAtPos maps pos in [0, 1] to a frame index of info. Positions outside
// the range are clamped.
func FrameAtPos(info Info, pos float64) int {
	if info.TotalFrames <= 0 || math.IsNaN(pos) {
		return 0
	}
	pos = math.Max(0, math.Min(1, pos))
	return int(math.Round(pos * float64(info.TotalFrames-1)))
}

// FitSize scales width x height down to fit inside maxWidth x maxHeight,
// keeping the aspect ratio. Sizes that already fit are returned unchanged. A
// non-positive limit disables that bound.
func FitSize(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}
	if maxWidth > 0 && width > maxWidth {
		height = max(1, height*maxWidth/width)
		width = maxWidth
	}
	if maxHeight > 0 && height > maxHeight {
		width = max(1, width*maxHeight/height)
		height = maxHeight
	}
	return width, height
}
