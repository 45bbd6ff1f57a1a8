package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-raster/engine/camera"
	"github.com/Carmen-Shannon/oxy-raster/engine/profiler"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raster/engine/snapshot"
)

// EngineBuilderOption is a functional option for configuring an Engine via NewEngine.
type EngineBuilderOption func(*engine)

// WithDisplay sets the display frames are presented to and input is read from.
//
// Parameters:
//   - d: the display, or nil to render headless
//
// Returns:
//   - EngineBuilderOption: a function that applies the display to an engine
func WithDisplay(d Display) EngineBuilderOption {
	return func(e *engine) {
		e.display = d
	}
}

// WithProfiling enables or disables the profiler.
//
// Parameters:
//   - enabled: true to log frame statistics periodically
//
// Returns:
//   - EngineBuilderOption: a function that applies the profiling state to an engine
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithFrameInterval sets the target time between frame starts. Zero disables the sleep.
//
// Parameters:
//   - d: the frame interval
//
// Returns:
//   - EngineBuilderOption: a function that applies the interval to an engine
func WithFrameInterval(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.frameInterval = max(d, 0)
	}
}

// WithMaxFrames makes Run return after n frames. Zero runs until closed.
func WithMaxFrames(n int) EngineBuilderOption {
	return func(e *engine) {
		e.maxFrames = max(n, 0)
	}
}

// WithController replaces the default keyboard camera controller.
func WithController(c camera.CameraController) EngineBuilderOption {
	return func(e *engine) {
		if c != nil {
			e.controller = c
		}
	}
}

// WithFramebufferSize sets the framebuffer size used when the display does not report one.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - EngineBuilderOption: a function that applies the size to an engine
func WithFramebufferSize(width, height int) EngineBuilderOption {
	return func(e *engine) {
		e.width = width
		e.height = height
	}
}

// WithBackgroundColor sets the packed 0xRRGGBB clear color.
func WithBackgroundColor(c uint32) EngineBuilderOption {
	return func(e *engine) {
		e.background = c & 0xFFFFFF
	}
}

// WithSnapshotDir sets the directory the snapshot key writes into.
func WithSnapshotDir(dir string) EngineBuilderOption {
	return func(e *engine) {
		if dir != "" {
			e.snapshotDir = dir
		}
	}
}

// WithSnapshotFormat sets the image format of snapshots.
func WithSnapshotFormat(f snapshot.Format) EngineBuilderOption {
	return func(e *engine) {
		e.snapshotFormat = f
	}
}

// WithFrameCallback registers a function called after every frame with the frame counter and
// that frame's render statistics.
//
// Parameters:
//   - callback: the function to call
//
// Returns:
//   - EngineBuilderOption: a function that applies the callback to an engine
func WithFrameCallback(callback func(frame uint32, stats renderer.Stats)) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}
