package renderer

import (
	"iter"
	"math"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
)

// vertexTransform caches the matrices shared by every vertex of a draw call.
type vertexTransform struct {
	mvp      common.Mat4
	viewport common.Mat4
	normal   common.Mat3
}

func newVertexTransform(u Uniforms) (vertexTransform, bool) {
	nm, ok := common.NormalMatrix(u.Model)
	return vertexTransform{
		mvp:      common.Mul4(u.Projection, common.Mul4(u.View, u.Model)),
		viewport: u.Viewport,
		normal:   nm,
	}, ok
}

func (t vertexTransform) apply(v model.Vertex) model.Vertex {
	clip := t.mvp.MulVec4(v.Position.Homogeneous(1))

	w := clip[3]
	if w <= 0 || math.IsNaN(float64(w)) {
		// Behind the eye or degenerate. The rasterizer drops any triangle holding a NaN.
		nan := float32(math.NaN())
		v.TransformedPosition = common.V3(nan, nan, nan)
	} else {
		ndc := common.V3(clip[0]/w, clip[1]/w, clip[2]/w)
		v.TransformedPosition = t.viewport.MulVec4(ndc.Homogeneous(1)).XYZ()
	}

	v.TransformedNormal = t.normal.MulVec3(v.Normal)
	return v
}

// TransformVertex carries v from object space to screen space using the matrices in u.
//
// The position is multiplied by Projection * View * Model, divided by w and mapped through the
// Viewport, so that x and y are pixel coordinates and z is NDC depth. The normal is multiplied by
// the inverse-transpose of the model matrix's 3x3 block.
//
// Parameters:
//   - v: the object-space vertex
//   - u: the draw call uniforms
//
// Returns:
//   - model.Vertex: a copy of v with TransformedPosition and TransformedNormal set
//   - bool: false if the model matrix was singular and the identity was used for the normal
func TransformVertex(v model.Vertex, u Uniforms) (model.Vertex, bool) {
	t, ok := newVertexTransform(u)
	return t.apply(v), ok
}

// TransformVertices transforms every vertex in src, appending the results to dst[:0].
// It computes the shared matrices once and reports whether the normal matrix was degraded.
func TransformVertices(dst, src []model.Vertex, u Uniforms) ([]model.Vertex, bool) {
	t, ok := newVertexTransform(u)
	dst = dst[:0]
	for _, v := range src {
		dst = append(dst, t.apply(v))
	}
	return dst, ok
}

// AssembleTriangles groups vs into consecutive triples. One or two trailing vertices are ignored.
// Winding is preserved and no culling is performed.
func AssembleTriangles(vs []model.Vertex) iter.Seq[[3]model.Vertex] {
	return func(yield func([3]model.Vertex) bool) {
		for i := 0; i+2 < len(vs); i += 3 {
			if !yield([3]model.Vertex{vs[i], vs[i+1], vs[i+2]}) {
				return
			}
		}
	}
}
