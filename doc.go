// Package frameplay turns a vector-animation engine into frame files and an
// on-screen preview.
//
// # Overview
//
// frameplay owns everything between an animation engine and its two
// delivery targets: the pixel surfaces the engine renders into, the color
// format conversions those pixels need, a BMP image-sequence exporter and a
// timer-driven player that composites every frame over a checkerboard.
//
// The engine itself (parsing the animation document, building its scene and
// rasterizing a frame) stays behind the [anim.Engine] contract. Engines
// register themselves with the anim registry:
//
//	import _ "github.com/gogpu/frameplay/anim/gifanim" // pure Go, animated GIF
//	import _ "github.com/gogpu/frameplay/anim/rlottie" // Lottie JSON, needs -tags rlottie
//
// # Quick Start
//
//	a, err := anim.Open("loader.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
//	sum, err := export.New().Export(ctx, a, "frames")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sum)
//
// # Architecture
//
// The module is organized into:
//   - anim: animation handle, surface, metadata and engine registry
//   - bmp: 24-bit bottom-up BMP encoder with inline unpremultiplication
//   - export: sequential frame export pipeline
//   - player: playback session state machine and checkerboard compositing
//   - integration/ggpresent: presentation surface over gogpu textures
//   - internal/pixel: premultiplication and channel order conversions
//
// # Pixel Format
//
// Every buffer is a []uint32 of packed A<<24|R<<16|G<<8|B values with
// premultiplied alpha, the layout engines such as rlottie render to.
package frameplay

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0"
)
