// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggpresent shows player frames in a gogpu window.
//
// Presenter implements player.Presenter on top of a GPU texture. The data
// flow is:
//
//	player.Session (tick) -> Present (CPU copy) -> GPU texture -> window
//
// # Usage
//
//	p, err := ggpresent.New(app.GPUContextProvider(), w, h)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	s, err := player.NewSession(a, p)
//	...
//	app.OnDraw(func(dc *gogpu.Context) {
//	    p.RenderTo(dc.AsTextureDrawer())
//	})
//
// # Thread Safety
//
// Present is called from the session's tick goroutine while RenderTo runs in
// the window's draw callback. Presenter serializes the two with a mutex; the
// upload happens on the draw side.
//
// # Textures
//
// The texture is created lazily on the first RenderTo, when a texture creator
// is available, and updated in place afterwards. When the frame size changes
// the old texture is kept until the replacement has been uploaded, since the
// GPU may still sample it.
package ggpresent
