package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
	"github.com/Carmen-Shannon/oxy-raster/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	light common.Vec3
	stats Stats

	// scratch is reused across draw calls to hold transformed vertices.
	scratch []model.Vertex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	window               window.Window
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer runs the software pipeline: it transforms vertices, rasterizes triangles, shades
// fragments and writes them into a depth-tested Framebuffer. A finished framebuffer can then be
// handed to the presentation backend.
//
// A Renderer is meant to be driven from a single goroutine; the mutex only guards Stats readers.
type Renderer interface {
	// Draw renders a flat list of object-space vertices, three per triangle, into fb.
	//
	// Every vertex is transformed with u, every triangle rasterized against fb's bounds, and every
	// fragment that survives the depth test is colored by s and written to fb.
	//
	// Parameters:
	//   - fb: the target framebuffer
	//   - u: the uniforms for this draw call
	//   - vertices: the object-space vertices, three per triangle
	//   - s: the shader that colors each fragment
	//
	// Returns:
	//   - Stats: what happened to this draw call's work
	Draw(fb *framebuffer.Framebuffer, u Uniforms, vertices []model.Vertex, s Shader) Stats

	// Stats returns the counters accumulated since the last ResetStats.
	Stats() Stats

	// ResetStats zeroes the accumulated counters.
	ResetStats()

	// Light returns the direction toward the light used for fragment intensity.
	Light() common.Vec3

	// SetLight changes the direction toward the light. The zero vector selects DefaultLight.
	SetLight(dir common.Vec3)

	// Present hands a packed 0xRRGGBB pixel buffer to the presentation backend. Without a backend
	// it does nothing.
	//
	// Parameters:
	//   - buf: the finished pixels, row-major
	//   - width: the buffer width in pixels
	//   - height: the buffer height in pixels
	//
	// Returns:
	//   - error: an error if the backend failed to present
	Present(buf []uint32, width, height int) error

	// Resize reconfigures the presentation surface for a new pixel size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// BackendType returns the presentation backend in use.
	BackendType() RendererBackendType

	// Release frees the presentation backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the given presentation backend.
//
// BackendTypeWGPU requires a window supplied through WithWindow; its surface is configured to the
// window's size before NewRenderer returns. BackendTypeNone renders off-screen.
//
// Parameters:
//   - backendType: the presentation backend to create
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if the presentation backend could not be created
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		light:       DefaultLight,
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		if r.window == nil {
			return nil, fmt.Errorf("wgpu backend requires a window")
		}
		b, err := newWGPURendererBackend(r.window.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, fmt.Errorf("create wgpu backend: %w", err)
		}
		r.backend = b
	case BackendTypeNone:
	default:
		return nil, fmt.Errorf("unknown renderer backend type %d", backendType)
	}

	if r.backend != nil {
		if r.pendingPresentMode != nil {
			r.backend.SetPresentMode(*r.pendingPresentMode)
		}
		if err := r.backend.ConfigureSurface(r.window.Width(), r.window.Height()); err != nil {
			r.backend.Release()
			return nil, fmt.Errorf("configure surface: %w", err)
		}
	}
	return r, nil
}

func (r *renderer) Draw(fb *framebuffer.Framebuffer, u Uniforms, vertices []model.Vertex, s Shader) Stats {
	var st Stats
	st.Draws = 1
	st.Vertices = len(vertices)

	var ok bool
	r.scratch, ok = TransformVertices(r.scratch, vertices, u)
	if !ok {
		st.DegradedNormals++
		common.Logger().Debug("singular model matrix, normals left untransformed", "vertices", len(vertices))
	}

	rast := Rasterizer{Light: r.Light(), Width: fb.Width(), Height: fb.Height()}
	for tri := range AssembleTriangles(r.scratch) {
		st.Triangles++
		if !snappable(tri) {
			st.Clipped++
			continue
		}
		for f := range rast.Triangle(tri[0], tri[1], tri[2]) {
			st.Fragments++
			// Shaders are pure, so a fragment that cannot win the depth test is never shaded.
			if !(f.Depth < fb.Depth(f.X, f.Y)) {
				st.Occluded++
				continue
			}
			if fb.Point(f.X, f.Y, f.Depth, s.Shade(f, u).Hex()) {
				st.Written++
			} else {
				st.Occluded++
			}
		}
	}

	r.mu.Lock()
	r.stats = r.stats.Add(st)
	r.mu.Unlock()
	return st
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) ResetStats() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = Stats{}
}

func (r *renderer) Light() common.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.light
}

func (r *renderer) SetLight(dir common.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dir == (common.Vec3{}) {
		dir = DefaultLight
	}
	r.light = dir
}

func (r *renderer) Present(buf []uint32, width, height int) error {
	if r.backend == nil {
		return nil
	}
	return r.backend.Present(buf, width, height)
}

func (r *renderer) Resize(width, height int) error {
	if r.backend == nil {
		return nil
	}
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Release() {
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
