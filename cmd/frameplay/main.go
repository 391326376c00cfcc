// Command frameplay exports animation frames as BMP files or plays them in a
// window.
//
// Usage:
//
//	frameplay [flags] animation
//
// By default every frame is written to the output directory as
// frame_NNNN.bmp. With -play the animation loops in a gogpu window over a
// checkerboard; Space pauses and Escape quits.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gogpu/frameplay"
	"github.com/gogpu/frameplay/anim"
	_ "github.com/gogpu/frameplay/anim/gifanim" // Pure Go GIF engine
	_ "github.com/gogpu/frameplay/anim/rlottie" // rlottie engine with -tags rlottie
	"github.com/gogpu/frameplay/export"
	"github.com/gogpu/frameplay/internal/config"
	"github.com/gogpu/frameplay/internal/manifest"
)

var errUsage = errors.New("usage: frameplay [flags] animation")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "frameplay:", err)
		}
		os.Exit(2)
	}
}

// options are the parsed command line.
type options struct {
	cfg     config.Config
	path    string
	play    bool
	info    bool
	list    bool
	verbose bool
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("frameplay", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "YAML configuration file")
		out        = fs.String("out", "", "output directory for exported frames")
		pattern    = fs.String("pattern", "", "frame file name pattern")
		engine     = fs.String("engine", "", "animation engine (default: best available)")
		width      = fs.Int("width", 0, "render width (default: intrinsic, capped at 1920)")
		height     = fs.Int("height", 0, "render height (default: intrinsic, capped at 1080)")
		useMan     = fs.Bool("manifest", false, "record progress and skip frames already exported")
		overlay    = fs.Bool("overlay", false, "draw the frame counter while playing")
		play       = fs.Bool("play", false, "play in a window instead of exporting")
		info       = fs.Bool("info", false, "print animation metadata as JSON and exit")
		list       = fs.Bool("engines", false, "list available engines and exit")
		verbose    = fs.Bool("v", false, "verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return options{}, err
		}
	}

	// Flags given explicitly override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Export.Dir = *out
		case "pattern":
			cfg.Export.Pattern = *pattern
		case "engine":
			cfg.Engine = *engine
		case "width":
			cfg.Export.Width, cfg.Play.Width = *width, *width
		case "height":
			cfg.Export.Height, cfg.Play.Height = *height, *height
		case "manifest":
			cfg.Export.Manifest = *useMan
		case "overlay":
			cfg.Play.Overlay = *overlay
		}
	})
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}

	o := options{cfg: cfg, play: *play, info: *info, list: *list, verbose: *verbose}
	if o.list {
		return o, nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return options{}, errUsage
	}
	o.path = fs.Arg(0)
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	frameplay.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if o.list {
		for _, name := range anim.Available() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	a, err := open(o.cfg.Engine, o.path)
	if err != nil {
		return err
	}
	defer a.Close()

	info, err := a.Info()
	if err != nil {
		return err
	}
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(data))

	switch {
	case o.info:
		return nil
	case o.play:
		return play(ctx, a, o.cfg)
	default:
		return exportFrames(ctx, a, o.cfg, stdout)
	}
}

func open(engine, path string) (anim.Animation, error) {
	if engine != "" {
		return anim.OpenByName(engine, path)
	}
	return anim.Open(path)
}

func exportFrames(ctx context.Context, a anim.Animation, cfg config.Config, stdout io.Writer) error {
	ec := cfg.Export
	if err := os.MkdirAll(ec.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	opts := []export.Option{
		export.WithPattern(ec.Pattern),
		export.WithMaxSize(ec.MaxWidth, ec.MaxHeight),
		export.WithProgress(func(done, total int) {
			fmt.Fprintf(stdout, "Progress: %d/%d frames\n", done, total)
		}),
	}
	if ec.Width > 0 && ec.Height > 0 {
		opts = append(opts, export.WithSize(ec.Width, ec.Height))
	}

	if ec.Manifest {
		path := ec.ManifestPath
		if path == "" {
			path = filepath.Join(ec.Dir, manifest.DefaultName)
		}
		store, err := manifest.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, export.WithManifest(store))
	}

	sum, err := export.New(opts...).Export(ctx, a, ec.Dir)
	if sum != nil {
		fmt.Fprintln(stdout, sum)
		for _, f := range sum.Failed {
			fmt.Fprintln(stdout, "  ", f)
		}
	}
	return err
}
