package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/camera"
	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"github.com/Carmen-Shannon/oxy-raster/engine/profiler"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-raster/engine/scene"
	"github.com/Carmen-Shannon/oxy-raster/engine/snapshot"
)

const (
	// DefaultFrameInterval is the target time between frame starts.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultBackgroundColor is the clear color, a dark slate blue.
	DefaultBackgroundColor uint32 = 0x333355

	defaultWidth  = 600
	defaultHeight = 600
)

// engine implements the Engine interface.
// Owns the framebuffer and drives one scene from a single goroutine.
type engine struct {
	display    Display
	scene      scene.Scene
	fb         *framebuffer.Framebuffer
	controller camera.CameraController

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameInterval time.Duration
	maxFrames     int
	frame         uint32

	width, height int
	background    uint32

	snapshotDir    string
	snapshotFormat snapshot.Format
	snapshotHeld   bool

	frameCallback func(frame uint32, stats renderer.Stats)

	quitChannel chan struct{}
	quitOnce    sync.Once
}

// Engine is the main entry point for the engine.
// It runs the frame loop: poll input, update the camera and selection, render, present, sleep.
type Engine interface {
	// Scene returns the scene being rendered.
	Scene() scene.Scene

	// Framebuffer returns the framebuffer holding the most recent frame.
	Framebuffer() *framebuffer.Framebuffer

	// Frame returns the frame counter. It is 0 before the first frame and advances by one at the
	// start of every frame.
	Frame() uint32

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Step renders exactly one frame: advance the counter, apply input, render and present.
	//
	// Returns:
	//   - renderer.Stats: what the renderer did this frame
	//   - error: error if presenting failed
	Step() (renderer.Stats, error)

	// Snapshot writes the current frame into the snapshot directory.
	//
	// Returns:
	//   - string: the written file path
	//   - error: error if the file could not be written
	Snapshot() (string, error)

	// Run starts the frame loop and blocks until the display closes, Quit is called, the frame
	// limit is reached or ctx is cancelled. Cancellation is checked once per frame, before any
	// work for that frame starts.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() on cancellation, a present failure, or nil on a normal exit
	Run(ctx context.Context) error

	// Quit asks Run to return before the next frame.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine for the given scene.
// Options are applied directly to the engine struct via the option-builder pattern. Without a
// display the engine renders headless and frames are only kept in the framebuffer.
//
// Parameters:
//   - s: the scene to render (must not be nil)
//   - options: functional options for engine configuration (display, pacing, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if the scene is nil or the framebuffer size is not positive
func NewEngine(s scene.Scene, options ...EngineBuilderOption) (Engine, error) {
	if s == nil {
		return nil, errors.New("engine: NewEngine requires a scene")
	}
	e := &engine{
		scene:          s,
		controller:     camera.NewCameraController(),
		profiler:       profiler.NewProfiler(),
		frameInterval:  DefaultFrameInterval,
		width:          defaultWidth,
		height:         defaultHeight,
		background:     DefaultBackgroundColor,
		snapshotDir:    ".",
		snapshotFormat: snapshot.FormatPNG,
		quitChannel:    make(chan struct{}),
	}

	for _, opt := range options {
		opt(e)
	}

	if sz, ok := e.display.(sizer); ok {
		if w, h := sz.Size(); w > 0 && h > 0 {
			e.width, e.height = w, h
		}
	}
	if e.width <= 0 || e.height <= 0 {
		return nil, fmt.Errorf("engine: framebuffer size %dx%d must be positive", e.width, e.height)
	}
	e.fb = framebuffer.New(e.width, e.height, framebuffer.WithBackgroundColor(e.background))
	s.Camera().SetAspect(float32(e.width) / float32(e.height))
	return e, nil
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Framebuffer() *framebuffer.Framebuffer {
	return e.fb
}

func (e *engine) Frame() uint32 {
	return e.frame
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// Quit signals Run to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Run(ctx context.Context) error {
	common.Logger().Info("frame loop started",
		"scene", e.scene.Name(),
		"width", e.width,
		"height", e.height,
		"interval", e.frameInterval,
		"headless", e.display == nil,
	)

	frames := 0
	for {
		select {
		case <-ctx.Done():
			common.Logger().Info("frame loop cancelled", "frames", frames)
			return ctx.Err()
		case <-e.quitChannel:
			common.Logger().Info("frame loop stopped", "frames", frames)
			return nil
		default:
		}

		start := time.Now()
		if e.display != nil {
			e.display.PollEvents()
			if e.display.ShouldClose() {
				common.Logger().Info("display closed", "frames", frames)
				return nil
			}
		}

		stats, err := e.Step()
		if err != nil {
			return err
		}
		frames++

		if e.profilingEnabled && e.profiler != nil {
			e.profiler.Tick(stats, time.Since(start))
		}
		if e.frameCallback != nil {
			e.frameCallback(e.frame, stats)
		}
		if e.maxFrames > 0 && frames >= e.maxFrames {
			common.Logger().Info("frame limit reached", "frames", frames)
			return nil
		}

		// Frame rate limiting
		if remaining := e.frameInterval - time.Since(start); remaining > 0 {
			timer := time.NewTimer(remaining)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
			case <-e.quitChannel:
				timer.Stop()
			}
		}
	}
}

func (e *engine) Step() (renderer.Stats, error) {
	e.frame++
	if e.display != nil {
		e.handleInput()
		e.handleResize()
	}

	e.fb.Clear()
	stats := e.scene.Render(e.fb, e.frame)

	if e.display != nil {
		if err := e.display.Present(e.fb.Buffer(), e.fb.Width(), e.fb.Height()); err != nil {
			return stats, fmt.Errorf("failed to present frame %d: %w", e.frame, err)
		}
	}
	return stats, nil
}

func (e *engine) Snapshot() (string, error) {
	name := fmt.Sprintf("oxy-raster-%06d.%s", e.frame, e.snapshotFormat)
	path := filepath.Join(e.snapshotDir, name)
	if err := snapshot.Write(path, e.fb.Image()); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	common.Logger().Info("snapshot written", "path", path)
	return path, nil
}

// handleInput applies the held keys: digits and R pick the draw list, the controller keys move
// the camera, the wheel zooms and a fresh press of P writes a snapshot.
func (e *engine) handleInput() {
	for i, key := range common.DigitKeys {
		if e.display.IsKeyDown(key) {
			e.selectKind(shader.Kind(i))
		}
	}
	if e.display.IsKeyDown(common.KeyR) {
		e.selectKind(shader.KindRing)
	}

	cam := e.scene.Camera()
	e.controller.Update(cam, e.display)
	if sc, ok := e.display.(scroller); ok {
		if delta := sc.TakeScroll(); delta != 0 {
			e.controller.Scroll(cam, delta)
		}
	}

	var snap bool
	if pr, ok := e.display.(presser); ok {
		snap = slices.Contains(pr.TakePresses(), common.KeyP)
	} else {
		held := e.display.IsKeyDown(common.KeyP)
		snap = held && !e.snapshotHeld
		e.snapshotHeld = held
	}
	if snap {
		if _, err := e.Snapshot(); err != nil {
			common.Logger().Warn("snapshot failed", "err", err)
		}
	}
}

func (e *engine) selectKind(kind shader.Kind) {
	if e.scene.Selected() == kind {
		return
	}
	if err := e.scene.Select(kind); err != nil {
		common.Logger().Debug("selection ignored", "kind", kind, "err", err)
		return
	}
	common.Logger().Info("selected draw list", "kind", kind)
}

// handleResize follows the display size, replacing the framebuffer and updating the camera aspect.
// A zero size (minimized window) keeps the current framebuffer.
func (e *engine) handleResize() {
	sz, ok := e.display.(sizer)
	if !ok {
		return
	}
	w, h := sz.Size()
	if w <= 0 || h <= 0 || (w == e.width && h == e.height) {
		return
	}
	e.width, e.height = w, h
	e.fb = framebuffer.New(w, h, framebuffer.WithBackgroundColor(e.background))
	e.scene.Camera().SetAspect(float32(w) / float32(h))
	common.Logger().Debug("framebuffer resized", "width", w, "height", h)
}
