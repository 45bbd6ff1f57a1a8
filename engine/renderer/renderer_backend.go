package renderer

// RendererBackendType identifies the presentation backend used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeNone renders into the framebuffer only. Present is a no-op.
	BackendTypeNone RendererBackendType = iota

	// BackendTypeWGPU uploads each finished frame to a WebGPU surface.
	BackendTypeWGPU
)

// PresentMode controls how frames are delivered to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// RendererBackend delivers a finished CPU framebuffer to a display surface.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain for the given pixel size. It must be called
	// before the first Present and whenever the window is resized.
	ConfigureSurface(width, height int) error

	// SetPresentMode changes the present mode. Takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// Present uploads buf, a row-major slice of packed 0xRRGGBB pixels, and displays it.
	//
	// Parameters:
	//   - buf: the packed pixels, width*height entries
	//   - width: the frame width in pixels
	//   - height: the frame height in pixels
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	Present(buf []uint32, width, height int) error

	// Release frees all GPU resources held by the backend.
	Release()
}
