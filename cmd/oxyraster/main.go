// Command oxyraster renders the planet viewer with the software rasterizer, either in a window or
// headless into an image file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-raster/engine"
	"github.com/Carmen-Shannon/oxy-raster/engine/config"
	"github.com/Carmen-Shannon/oxy-raster/engine/light"
	"github.com/Carmen-Shannon/oxy-raster/engine/loader"
	"github.com/Carmen-Shannon/oxy-raster/engine/profiler"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-raster/engine/scene"
	"github.com/Carmen-Shannon/oxy-raster/engine/snapshot"
	"github.com/Carmen-Shannon/oxy-raster/engine/window"

	"github.com/schollz/progressbar/v3"
)

type app struct {
	configPath *string
	width      *int
	height     *int
	shader     *string
	interval   *time.Duration
	headless   *bool
	frames     *int
	out        *string
	logLevel   *string
	profile    *bool
	software   *bool

	cfg config.Config
}

func (a *app) parseFlags(args []string) error {
	fs := flag.NewFlagSet("oxyraster", flag.ContinueOnError)
	a.configPath = fs.String("config", "", "YAML configuration file")
	a.width = fs.Int("width", 0, "window and framebuffer width")
	a.height = fs.Int("height", 0, "window and framebuffer height")
	a.shader = fs.String("shader", "", "initial shader selector, by name or number 0-10")
	a.interval = fs.Duration("interval", 0, "target frame interval")
	a.headless = fs.Bool("headless", false, "render without a window and write the last frame to -out")
	a.frames = fs.Int("frames", 0, "frames to render in headless mode")
	a.out = fs.String("out", "", "headless output image (.png or .bmp)")
	a.logLevel = fs.String("log-level", "", "log level: debug, info, warn or error")
	a.profile = fs.Bool("profile", false, "log frame statistics every profiling interval")
	a.software = fs.Bool("software", false, "present through the WGPU software fallback adapter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*a.configPath)
	if err != nil {
		return err
	}

	// Flags given on the command line override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Window.Width = *a.width
		case "height":
			cfg.Window.Height = *a.height
		case "shader":
			cfg.Shader = *a.shader
		case "interval":
			cfg.Frame.Interval = config.Duration(*a.interval)
		case "frames":
			cfg.Headless.Frames = *a.frames
		case "out":
			cfg.Headless.Output = *a.out
		case "log-level":
			cfg.LogLevel = *a.logLevel
		case "profile":
			cfg.Profiling.Enabled = *a.profile
		case "software":
			cfg.Window.ForceSoftware = *a.software
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *app) run(ctx context.Context) error {
	cfg := a.cfg

	level, _ := cfg.Level()
	engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	presets, err := cfg.ScenePresets()
	if err != nil {
		return err
	}
	selected, err := cfg.SelectedKind()
	if err != nil {
		return err
	}

	loaderOptions := []loader.LoaderBuilderOption{
		loader.WithSphereDetail(cfg.Loader.SphereStacks, cfg.Loader.SphereSlices),
		loader.WithRingSegments(cfg.Loader.RingSegments),
	}
	if cfg.Loader.Workers > 0 {
		loaderOptions = append(loaderOptions, loader.WithWorkers(cfg.Loader.Workers))
	}
	meshes := loader.NewLoader(loader.BackendTypeOBJ, loaderOptions...)
	sources := scene.MeshSources(presets)
	if _, err := meshes.LoadAll(ctx, sources); err != nil {
		return fmt.Errorf("failed to load meshes: %w", err)
	}
	engine.Logger().Info("meshes loaded", "count", len(sources))

	var (
		r       renderer.Renderer
		display engine.Display
	)
	if *a.headless {
		r, err = renderer.NewRenderer(renderer.BackendTypeNone, renderer.WithLight(cfg.Light))
		if err != nil {
			return err
		}
	} else {
		mode, _ := cfg.PresentMode()
		win := window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithWidth(cfg.Window.Width),
			window.WithHeight(cfg.Window.Height),
			window.WithResizable(cfg.Window.Resizable),
		)
		defer win.Close()

		r, err = renderer.NewRenderer(renderer.BackendTypeWGPU,
			renderer.WithWindow(win),
			renderer.WithLight(cfg.Light),
			renderer.WithPresentMode(mode),
			renderer.WithForceSoftwareRenderer(cfg.Window.ForceSoftware),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		display = engine.NewWindowDisplay(win, r)
	}
	defer r.Release()

	cam, err := cfg.Camera.New(float32(cfg.Window.Width) / float32(cfg.Window.Height))
	if err != nil {
		return err
	}
	sc, err := scene.NewScene("oxy-raster", cam, r, meshes, shader.NewRegistry(),
		scene.WithPresets(presets),
		scene.WithSelected(selected),
		scene.WithLight(light.NewLight(light.WithToLight(cfg.Light[0], cfg.Light[1], cfg.Light[2]))),
	)
	if err != nil {
		return err
	}

	format, _ := snapshot.ParseFormat(cfg.Snapshot.Format)
	options := []engine.EngineBuilderOption{
		engine.WithDisplay(display),
		engine.WithFramebufferSize(cfg.Window.Width, cfg.Window.Height),
		engine.WithBackgroundColor(uint32(cfg.Background)),
		engine.WithFrameInterval(cfg.Frame.Interval.Duration()),
		engine.WithController(cfg.Controller.New()),
		engine.WithProfiling(cfg.Profiling.Enabled),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithInterval(cfg.Profiling.Interval.Duration()))),
		engine.WithSnapshotDir(cfg.Snapshot.Dir),
		engine.WithSnapshotFormat(format),
	}

	if !*a.headless {
		eng, err := engine.NewEngine(sc, options...)
		if err != nil {
			return err
		}
		return eng.Run(ctx)
	}

	frames := max(cfg.Headless.Frames, 1)
	pb := progressbar.Default(int64(frames), "rendering")
	defer pb.Close()
	options = append(options,
		engine.WithMaxFrames(frames),
		engine.WithFrameInterval(0),
		engine.WithFrameCallback(func(uint32, renderer.Stats) {
			pb.Add(1)
		}),
	)
	eng, err := engine.NewEngine(sc, options...)
	if err != nil {
		return err
	}
	if err := eng.Run(ctx); err != nil {
		return err
	}
	if err := snapshot.Write(cfg.Headless.Output, eng.Framebuffer().Image()); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.Headless.Output, err)
	}
	engine.Logger().Info("frame written", "path", cfg.Headless.Output, "frames", eng.Frame())
	return nil
}

func main() {
	a := app{}
	if err := a.parseFlags(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "oxyraster: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "oxyraster: %v\n", err)
		os.Exit(1)
	}
}
