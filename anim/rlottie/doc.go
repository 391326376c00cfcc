// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package rlottie is an animation engine over Samsung's rlottie library.
//
// The engine is built only with the rlottie build tag and cgo enabled, and
// needs the rlottie headers and a pkg-config entry:
//
//	go build -tags rlottie ./...
//
// Without the tag the package is empty and importing it has no effect, so
// commands can import it unconditionally:
//
//	import _ "github.com/gogpu/frameplay/anim/rlottie"
//
// The engine registers under the name "rlottie" with a higher priority than
// the pure Go engines. rlottie always preserves the aspect ratio; stretched
// rendering goes through an intermediate buffer at the intrinsic size.
package rlottie
