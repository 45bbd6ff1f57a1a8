package loader

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
)

const (
	// BuiltinSphere is a unit sphere centered on the origin.
	BuiltinSphere = BuiltinPrefix + "sphere"

	// BuiltinRing is a flat annulus in the XZ plane facing +Y, sized to the ring shader bands.
	BuiltinRing = BuiltinPrefix + "ring"

	ringInnerRadius = 2.2
	ringOuterRadius = 3.4
)

// builtinLoaderBackendImpl generates the procedural meshes so the program runs without asset
// files.
type builtinLoaderBackendImpl struct {
	stacks       int
	slices       int
	ringSegments int
}

var _ loaderBackend = &builtinLoaderBackendImpl{}

func newBuiltinLoaderBackend() *builtinLoaderBackendImpl {
	return &builtinLoaderBackendImpl{
		stacks:       24,
		slices:       48,
		ringSegments: 96,
	}
}

func (b *builtinLoaderBackendImpl) Load(path string) (*model.ImportedMesh, error) {
	var vs []model.Vertex
	switch path {
	case BuiltinSphere:
		vs = sphere(b.stacks, b.slices)
	case BuiltinRing:
		vs = ring(ringInnerRadius, ringOuterRadius, b.ringSegments)
	default:
		return nil, fmt.Errorf("%w: unknown builtin mesh %q", ErrUnsupportedFormat, path)
	}
	mesh := &model.ImportedMesh{
		Name:     strings.TrimPrefix(path, BuiltinPrefix),
		Vertices: vs,
	}
	mesh.ComputeBounds()
	return mesh, nil
}

func (b *builtinLoaderBackendImpl) LoadReader(io.Reader) (*model.ImportedMesh, error) {
	return nil, fmt.Errorf("%w: builtin meshes cannot be read from a stream", ErrUnsupportedFormat)
}

// sphere tessellates a unit UV sphere with outward normals and counter-clockwise winding seen
// from outside. Pole quads collapse to single triangles.
func sphere(stacks, slices int) []model.Vertex {
	point := func(i, j int) model.Vertex {
		theta := math.Pi * float64(i) / float64(stacks)
		phi := 2 * math.Pi * float64(j) / float64(slices)
		p := common.V3(
			float32(math.Sin(theta)*math.Cos(phi)),
			float32(math.Cos(theta)),
			float32(math.Sin(theta)*math.Sin(phi)),
		)
		uv := common.Vec2{float32(j) / float32(slices), float32(i) / float32(stacks)}
		return model.NewVertex(p, p, uv)
	}

	vs := make([]model.Vertex, 0, 6*stacks*slices)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a, b := point(i, j), point(i+1, j)
			c, d := point(i+1, j+1), point(i, j+1)
			if i != stacks-1 {
				vs = append(vs, a, c, b)
			}
			if i != 0 {
				vs = append(vs, a, d, c)
			}
		}
	}
	return vs
}

// ring tessellates a flat annulus in the XZ plane with every normal along +Y.
func ring(inner, outer float32, segments int) []model.Vertex {
	up := common.V3(0, 1, 0)
	point := func(r float32, j int) model.Vertex {
		phi := 2 * math.Pi * float64(j) / float64(segments)
		p := common.V3(r*float32(math.Cos(phi)), 0, r*float32(math.Sin(phi)))
		v := float32(0)
		if r == outer {
			v = 1
		}
		return model.NewVertex(p, up, common.Vec2{float32(j) / float32(segments), v})
	}

	vs := make([]model.Vertex, 0, 6*segments)
	for j := 0; j < segments; j++ {
		a, b := point(inner, j), point(outer, j)
		c, d := point(outer, j+1), point(inner, j+1)
		vs = append(vs, a, c, b, a, d, c)
	}
	return vs
}
