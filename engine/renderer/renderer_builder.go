package renderer

import (
	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/window"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithWindow sets the window whose surface the presentation backend draws to.
//
// Parameters:
//   - w: the window to present into
//
// Returns:
//   - RendererBuilderOption: a function that applies the window option to a renderer
func WithWindow(w window.Window) RendererBuilderOption {
	return func(r *renderer) {
		r.window = w
	}
}

// WithLight sets the direction toward the light used to compute fragment intensity.
//
// Parameters:
//   - dir: the light direction; the zero vector selects DefaultLight
//
// Returns:
//   - RendererBuilderOption: a function that applies the light option to a renderer
func WithLight(dir common.Vec3) RendererBuilderOption {
	return func(r *renderer) {
		if dir == (common.Vec3{}) {
			dir = DefaultLight
		}
		r.light = dir
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter for presentation.
// This requires a software Vulkan ICD to be installed on the system (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
