package renderer

import (
	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/color"
)

// Uniforms holds the per-draw constants shared by every vertex and fragment of a draw call.
type Uniforms struct {
	Model      common.Mat4
	View       common.Mat4
	Projection common.Mat4
	Viewport   common.Mat4

	// Time is the frame counter, used by shaders for animation.
	Time uint32
}

// Fragment is a single rasterized sample of a triangle, addressed to one pixel.
type Fragment struct {
	// X and Y are the pixel column and row. The sample was taken at the pixel center.
	X, Y int

	// Depth is the interpolated NDC depth. Smaller values are closer to the camera.
	Depth float32

	// VertexPosition is the interpolated object-space position, used as the shading domain
	// for procedural patterns.
	VertexPosition common.Vec3

	// Normal is the interpolated world-space normal, normalized when non-zero.
	Normal common.Vec3

	// Intensity is the Lambert term against the rasterizer's light direction, in [0, 1].
	Intensity float32

	// Color is the interpolated vertex color.
	Color color.Color
}

// Shader computes the final color of a fragment.
// Implementations must be pure functions of their inputs.
type Shader interface {
	Shade(f Fragment, u Uniforms) color.Color
}

// ShaderFunc adapts a plain function to the Shader interface.
type ShaderFunc func(f Fragment, u Uniforms) color.Color

// Shade calls fn(f, u).
func (fn ShaderFunc) Shade(f Fragment, u Uniforms) color.Color {
	return fn(f, u)
}

// Stats counts what happened to the work submitted to a Renderer since the last reset.
type Stats struct {
	Draws     int
	Vertices  int
	Triangles int
	Fragments int

	// Written fragments passed the depth test and were stored.
	Written int

	// Occluded fragments lost the depth test.
	Occluded int

	// Clipped triangles were dropped whole because a vertex was behind the eye or far outside
	// the screen.
	Clipped int

	// DegradedNormals counts draw calls whose model matrix had a singular 3x3 block, so that
	// normals were passed through the identity instead of the inverse-transpose.
	DegradedNormals int
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Draws:           s.Draws + o.Draws,
		Vertices:        s.Vertices + o.Vertices,
		Triangles:       s.Triangles + o.Triangles,
		Fragments:       s.Fragments + o.Fragments,
		Written:         s.Written + o.Written,
		Occluded:        s.Occluded + o.Occluded,
		Clipped:         s.Clipped + o.Clipped,
		DegradedNormals: s.DegradedNormals + o.DegradedNormals,
	}
}
