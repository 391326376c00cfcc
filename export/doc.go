// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package export renders every frame of an animation to an image file.
//
// The exporter walks frames 0 through TotalFrames-1 on the calling goroutine.
// For each frame it clears one reusable buffer, renders into it with the
// aspect ratio preserved, and hands it to an encoder (24-bit BMP by default)
// under a zero-padded file name:
//
//	a, err := anim.Open("loader.json")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	sum, err := export.New().Export(ctx, a, "out")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sum)
//
// A frame that fails to render or encode does not stop the export. It is
// logged and recorded in [Summary.Failed]; the caller decides whether a
// partial sequence is acceptable.
//
// With [WithManifest] every outcome is recorded in a bbolt database, and a
// later export into the same directory skips frames that are already on disk
// with the expected size.
package export
