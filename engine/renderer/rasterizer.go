package renderer

import (
	"iter"
	"math"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
)

const (
	// subpixelBits is the fixed-point precision of snapped screen positions (1/16 pixel).
	subpixelBits = 4
	subpixel     = 1 << subpixelBits
	halfPixel    = subpixel / 2

	// guardBand bounds screen positions so that edge functions cannot overflow int64.
	guardBand = 1 << 20
)

// DefaultLight points from the scene toward a camera sitting on +Z.
var DefaultLight = common.V3(0, 0, 1)

// Rasterizer converts screen-space triangles into fragments.
//
// Width and Height bound the generated fragments to [0, Width) x [0, Height). A zero value
// disables the upper bound on that axis. Light is the direction toward the light source; the
// zero vector selects DefaultLight.
type Rasterizer struct {
	Light  common.Vec3
	Width  int
	Height int
}

// point is a vertex position snapped to the subpixel grid.
type point struct {
	x, y int64
}

// edge returns the signed doubled area of (a, b, p) in subpixel units.
// For a triangle with positive area every interior point is positive against all three edges.
func edge(a, b, p point) int64 {
	return (p.x-a.x)*(b.y-a.y) - (p.y-a.y)*(b.x-a.x)
}

// isTopLeft reports whether the directed edge a->b is a top or left edge of a positively
// oriented triangle in y-down screen space. Samples that lie exactly on such an edge belong to
// the triangle; samples on the other edges belong to the neighbor sharing that edge.
func isTopLeft(a, b point) bool {
	dy := b.y - a.y
	dx := b.x - a.x
	return dy > 0 || (dy == 0 && dx < 0)
}

func covers(w int64, topLeft bool) bool {
	return w > 0 || (w == 0 && topLeft)
}

func snap(v common.Vec3) (point, bool) {
	if !v.IsFinite() {
		return point{}, false
	}
	x, y := float64(v[0]), float64(v[1])
	if math.Abs(x) > guardBand || math.Abs(y) > guardBand {
		return point{}, false
	}
	return point{
		x: int64(math.Round(x * subpixel)),
		y: int64(math.Round(y * subpixel)),
	}, true
}

func snappable(tri [3]model.Vertex) bool {
	for _, v := range tri {
		if _, ok := snap(v.TransformedPosition); !ok {
			return false
		}
	}
	return true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}

// Triangle returns the fragments covered by the screen-space triangle (v0, v1, v2), using each
// vertex's TransformedPosition and TransformedNormal.
//
// A pixel is covered when its center lies inside the triangle. Centers on an edge are assigned by
// the top-left rule, so two triangles sharing an edge never both cover, nor both miss, a pixel
// along it. Depth, normal, object-space position and color are interpolated linearly in screen
// space. Degenerate triangles, and triangles with non-finite or far out of range positions, yield
// nothing.
//
// The returned sequence holds no state and may be ranged over more than once.
//
// Parameters:
//   - v0, v1, v2: the transformed triangle vertices, in either winding
//
// Returns:
//   - iter.Seq[Fragment]: the covered fragments in row-major order
func (r Rasterizer) Triangle(v0, v1, v2 model.Vertex) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		verts := [3]*model.Vertex{&v0, &v1, &v2}
		var p [3]point
		for i, v := range verts {
			sp, ok := snap(v.TransformedPosition)
			if !ok {
				return
			}
			p[i] = sp
		}

		area := edge(p[0], p[1], p[2])
		if area == 0 {
			return
		}
		if area < 0 {
			p[1], p[2] = p[2], p[1]
			verts[1], verts[2] = verts[2], verts[1]
			area = -area
		}

		minX := min(p[0].x, p[1].x, p[2].x)
		maxX := max(p[0].x, p[1].x, p[2].x)
		minY := min(p[0].y, p[1].y, p[2].y)
		maxY := max(p[0].y, p[1].y, p[2].y)

		x0 := max(ceilDiv(minX-halfPixel, subpixel), 0)
		x1 := floorDiv(maxX-halfPixel, subpixel)
		y0 := max(ceilDiv(minY-halfPixel, subpixel), 0)
		y1 := floorDiv(maxY-halfPixel, subpixel)
		if r.Width > 0 {
			x1 = min(x1, int64(r.Width)-1)
		}
		if r.Height > 0 {
			y1 = min(y1, int64(r.Height)-1)
		}

		tl0 := isTopLeft(p[1], p[2])
		tl1 := isTopLeft(p[2], p[0])
		tl2 := isTopLeft(p[0], p[1])

		light := r.Light
		if light == (common.Vec3{}) {
			light = DefaultLight
		}
		light = light.Normalize()

		invArea := 1 / float64(area)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				s := point{x: x*subpixel + halfPixel, y: y*subpixel + halfPixel}
				w0 := edge(p[1], p[2], s)
				w1 := edge(p[2], p[0], s)
				w2 := edge(p[0], p[1], s)
				if !covers(w0, tl0) || !covers(w1, tl1) || !covers(w2, tl2) {
					continue
				}

				b := [3]float32{
					float32(float64(w0) * invArea),
					float32(float64(w1) * invArea),
					float32(float64(w2) * invArea),
				}
				if !yield(interpolate(int(x), int(y), b, verts, light)) {
					return
				}
			}
		}
	}
}

func interpolate(x, y int, b [3]float32, v [3]*model.Vertex, light common.Vec3) Fragment {
	depth := b[0]*v[0].TransformedPosition[2] + b[1]*v[1].TransformedPosition[2] + b[2]*v[2].TransformedPosition[2]

	normal := v[0].TransformedNormal.Scale(b[0]).
		Add(v[1].TransformedNormal.Scale(b[1])).
		Add(v[2].TransformedNormal.Scale(b[2])).
		Normalize()

	pos := v[0].Position.Scale(b[0]).
		Add(v[1].Position.Scale(b[1])).
		Add(v[2].Position.Scale(b[2]))

	c := v[0].Color.Scale(b[0]).
		Add(v[1].Color.Scale(b[1])).
		Add(v[2].Color.Scale(b[2]))

	return Fragment{
		X:              x,
		Y:              y,
		Depth:          depth,
		VertexPosition: pos,
		Normal:         normal,
		Intensity:      max(0, normal.Dot(light)),
		Color:          c,
	}
}
