// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package anim defines the contract between frameplay and an animation
// engine.
//
// An engine parses an animation document and rasterizes a frame index into a
// caller-supplied [Surface]. frameplay never looks inside the document; it
// only needs four operations, which map onto the [Engine] and [Animation]
// interfaces:
//
//   - load from a path ([Engine.LoadFile])
//   - load from memory ([Engine.LoadData])
//   - query metadata ([Animation.Info])
//   - render a frame into a surface ([Animation.Render])
//
// # Registry
//
// Engines register themselves from an init function:
//
//	func init() {
//	    anim.Register("rlottie", 100, engine{}, nil)
//	}
//
// [Open] then tries every available engine in priority order until one
// accepts the input:
//
//	a, err := anim.Open("loader.json")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
// # Ownership
//
// The caller exclusively owns an [Animation] and must Close it. A [Surface]
// is a view: it never owns the pixel memory it points at.
package anim
