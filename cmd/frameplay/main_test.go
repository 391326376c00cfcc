package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/frameplay/anim"
	"github.com/gogpu/frameplay/internal/config"
	"github.com/gogpu/frameplay/player"
)

// writeGIF writes a 12 frame 6x4 GIF and returns its path.
func writeGIF(t *testing.T) string {
	t.Helper()
	pal := color.Palette{color.RGBA{}, color.RGBA{R: 0xFF, A: 0xFF}}
	g := &gif.GIF{}
	for i := 0; i < 12; i++ {
		img := image.NewPaletted(image.Rect(0, 0, 6, 4), pal)
		img.Pix[i%len(img.Pix)] = 1
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, 4)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "anim.gif")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunExport(t *testing.T) {
	src := writeGIF(t)
	out := filepath.Join(t.TempDir(), "frames")
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-out", out, "-manifest", src}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	var bmps int
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".bmp") {
			bmps++
		}
	}
	if bmps != 12 {
		t.Errorf("wrote %d frames, want 12", bmps)
	}
	if _, err := os.Stat(filepath.Join(out, "frame_0011.bmp")); err != nil {
		t.Error(err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	var info anim.Info
	if err := json.Unmarshal([]byte(lines[0]), &info); err != nil {
		t.Fatalf("first line %q: %v", lines[0], err)
	}
	if info.TotalFrames != 12 || info.Width != 6 || info.FrameRate != 25 {
		t.Errorf("info = %+v", info)
	}
	for _, want := range []string{"Progress: 10/12 frames", "Progress: 12/12 frames", "12 written"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout.String())
		}
	}

	// A second run skips everything recorded in the manifest.
	stdout.Reset()
	if err := run(context.Background(), []string{"-out", out, "-manifest", src}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "12 skipped") {
		t.Errorf("second run did not resume:\n%s", stdout.String())
	}
}

func TestRunInfo(t *testing.T) {
	src := writeGIF(t)
	out := filepath.Join(t.TempDir(), "unused")
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-info", "-out", out, "-engine", "gif", src}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), `"totalFrames":12`) {
		t.Errorf("stdout = %s", stdout.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("-info must not create the output directory")
	}
}

func TestRunEngines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-engines"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "gif") {
		t.Errorf("engines = %q", stdout.String())
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ctx := context.Background()

	if err := run(ctx, nil, &stdout, &stderr); !errors.Is(err, errUsage) {
		t.Errorf("no args = %v", err)
	}
	if err := run(ctx, []string{"-engine", "nope", writeGIF(t)}, &stdout, &stderr); !errors.Is(err, anim.ErrUnknownEngine) {
		t.Errorf("unknown engine = %v", err)
	}
	if err := run(ctx, []string{"-out", t.TempDir(), "-pattern", "x.bmp", writeGIF(t)}, &stdout, &stderr); err == nil {
		t.Error("bad pattern should fail")
	}
	if err := run(ctx, []string{filepath.Join(t.TempDir(), "missing.gif")}, &stdout, &stderr); err == nil {
		t.Error("missing file should fail")
	}
	if err := run(ctx, []string{"-width", "64", writeGIF(t)}, &stdout, &stderr); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("width without height = %v", err)
	}
	if err := run(ctx, []string{"-height", "48", "-play", writeGIF(t)}, &stdout, &stderr); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("height without width = %v", err)
	}
}

func TestParseArgsConfigOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "frameplay.yaml")
	if err := os.WriteFile(cfgPath, []byte("engine: gif\nexport:\n  dir: from-file\n  maxWidth: 320\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	o, err := parseArgs([]string{"-config", cfgPath, "-out", "from-flag", "-width", "64", "-height", "48", "a.gif"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if o.cfg.Export.Dir != "from-flag" {
		t.Errorf("Dir = %q, flag should win", o.cfg.Export.Dir)
	}
	if o.cfg.Export.MaxWidth != 320 || o.cfg.Engine != "gif" {
		t.Errorf("file values lost: %+v", o.cfg)
	}
	if o.cfg.Play.Width != 64 || o.cfg.Export.Height != 48 {
		t.Errorf("size flags not applied: %+v", o.cfg)
	}
	if o.path != "a.gif" {
		t.Errorf("path = %q", o.path)
	}
}

func TestPlaySize(t *testing.T) {
	pc := config.Default().Play
	if w, h := playSize(anim.NewInfo(30, 1, 3840, 2160), pc); w != 1920 || h != 1080 {
		t.Errorf("capped size = %dx%d", w, h)
	}
	pc.Width, pc.Height = 300, 200
	if w, h := playSize(anim.NewInfo(30, 1, 3840, 2160), pc); w != 300 || h != 200 {
		t.Errorf("fixed size = %dx%d", w, h)
	}
	if n := len(sessionOptions(pc, 300, 200)); n != 3 {
		t.Errorf("options = %d", n)
	}
}

// fakeToken counts Stop calls.
type fakeToken struct{ stops int }

func (f *fakeToken) Stop() { f.stops++ }

func TestPlayControl(t *testing.T) {
	a, err := anim.Open(writeGIF(t))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	session, err := player.NewSession(a, player.PresenterFunc(func([]uint32, int, int) error { return nil }))
	if err != nil {
		t.Fatal(err)
	}

	var tokens []*fakeToken
	c := &playControl{
		session: session,
		animate: func() animation {
			tok := &fakeToken{}
			tokens = append(tokens, tok)
			return tok
		},
	}

	c.resume()
	c.resume()
	if len(tokens) != 1 || session.Paused() {
		t.Fatalf("resume: tokens=%d paused=%v", len(tokens), session.Paused())
	}

	if paused := c.toggle(); !paused || !session.Paused() {
		t.Fatal("toggle should pause")
	}
	if tokens[0].stops != 1 || c.token != nil {
		t.Errorf("pause kept the redraw request: stops=%d", tokens[0].stops)
	}

	if paused := c.toggle(); paused {
		t.Fatal("toggle should resume")
	}
	if len(tokens) != 2 {
		t.Fatalf("resume did not request redraws, tokens=%d", len(tokens))
	}

	c.stop()
	if tokens[1].stops != 1 || c.token != nil {
		t.Errorf("stop kept the redraw request: stops=%d", tokens[1].stops)
	}
	if session.State() != player.StateStopped {
		t.Errorf("state = %s, want stopped", session.State())
	}
	c.stop()
	if tokens[1].stops != 1 {
		t.Errorf("second stop = %d stops", tokens[1].stops)
	}
}
