package main

import (
	"context"
	"fmt"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/frameplay"
	"github.com/gogpu/frameplay/anim"
	"github.com/gogpu/frameplay/integration/ggpresent"
	"github.com/gogpu/frameplay/internal/config"
	"github.com/gogpu/frameplay/player"
)

// playSize returns the window size for a.
func playSize(info anim.Info, pc config.Play) (int, int) {
	if pc.Width > 0 && pc.Height > 0 {
		return pc.Width, pc.Height
	}
	return anim.FitSize(info.Width, info.Height, pc.MaxWidth, pc.MaxHeight)
}

// sessionOptions maps the configuration onto player options.
func sessionOptions(pc config.Play, w, h int) []player.Option {
	light, dark := config.Config{Play: pc}.CheckerColors()
	return []player.Option{
		player.WithSize(w, h),
		player.WithOverlay(pc.Overlay),
		player.WithCheckerboard(player.Checkerboard{Cell: pc.Checker.Cell, Light: light, Dark: dark}),
	}
}

// animation is a running redraw request, such as *gogpu.AnimationToken.
type animation interface {
	Stop()
}

// playControl keeps window redraws in step with the session: the window
// redraws at VSync while the session plays and idles while it is paused.
type playControl struct {
	session *player.Session
	animate func() animation
	token   animation
}

// resume unpauses the session and requests continuous redraws.
func (c *playControl) resume() {
	c.session.SetPaused(false)
	if c.token == nil {
		c.token = c.animate()
	}
}

// pause stops ticking and drops the redraw request.
func (c *playControl) pause() {
	c.session.SetPaused(true)
	c.release()
}

// toggle flips the pause state and reports whether the session is paused.
func (c *playControl) toggle() bool {
	if c.session.Paused() {
		c.resume()
	} else {
		c.pause()
	}
	return c.session.Paused()
}

// stop ends playback and drops the redraw request.
func (c *playControl) stop() {
	c.release()
	c.session.Stop()
}

func (c *playControl) release() {
	if c.token != nil {
		c.token.Stop()
		c.token = nil
	}
}

// play loops a in a window until it is closed, Escape is pressed or ctx is
// done.
func play(ctx context.Context, a anim.Animation, cfg config.Config) error {
	info, err := a.Info()
	if err != nil {
		return err
	}
	w, h := playSize(info, cfg.Play)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid window size %dx%d", w, h)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := frameplay.Logger()
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Play.Title).
		WithSize(w, h).
		WithContinuousRender(false))

	var (
		presenter *ggpresent.Presenter
		session   *player.Session
		control   *playControl
	)

	// The GPU provider exists only once the window runs, so the presenter
	// and the session are created on the first draw.
	app.OnDraw(func(dc *gogpu.Context) {
		if session == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			if presenter, err = ggpresent.New(provider, w, h); err != nil {
				log.Error("frameplay: presenter", "err", err)
				app.Quit()
				return
			}
			if session, err = player.NewSession(a, presenter, sessionOptions(cfg.Play, w, h)...); err != nil {
				log.Error("frameplay: session", "err", err)
				app.Quit()
				return
			}
			log.Info("frameplay: playing", "session", session.ID().String(), "interval", session.Interval())
			control = &playControl{
				session: session,
				animate: func() animation { return app.StartAnimation() },
			}
			control.resume()
			go func() {
				_ = session.Run(ctx)
			}()
		}

		if err := presenter.RenderTo(dc.AsTextureDrawer()); err != nil {
			log.Debug("frameplay: draw", "err", err)
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		switch key {
		case gpucontext.KeyEscape:
			if control != nil {
				control.stop()
			}
			app.Quit()
		case gpucontext.KeySpace:
			if control != nil {
				paused := control.toggle()
				log.Info("frameplay: pause", "paused", paused, "frame", session.Frame())
			}
		}
	})

	go func() {
		<-ctx.Done()
		app.Quit()
	}()

	app.OnClose(func() {
		if control != nil {
			control.stop()
		}
		if presenter != nil {
			_ = presenter.Close()
		}
	})

	return app.Run()
}
