package model

import (
	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/color"
)

// Vertex is one corner of a triangle as produced by a mesh loader and consumed by the
// transform stage. Position, Normal, TexCoords and Color are object-space inputs and are
// never modified after loading. TransformedPosition and TransformedNormal are derived:
// the transform stage recomputes them every frame into a copy, so a Vertex held in a
// Model always has them zeroed.
type Vertex struct {
	// Position is the object-space position.
	Position common.Vec3

	// Normal is the object-space surface normal.
	Normal common.Vec3

	// TexCoords is carried through the pipeline but not sampled.
	TexCoords common.Vec2

	// Color is the per-vertex base color.
	Color color.Color

	// TransformedPosition is the screen-space position: x, y in pixels, z the NDC depth.
	TransformedPosition common.Vec3

	// TransformedNormal is the world-space normal.
	TransformedNormal common.Vec3
}

// NewVertex creates a white vertex with the given object-space attributes.
//
// Parameters:
//   - position: object-space position
//   - normal: object-space normal
//   - texCoords: texture coordinate
//
// Returns:
//   - Vertex: the vertex with zeroed derived fields
func NewVertex(position, normal common.Vec3, texCoords common.Vec2) Vertex {
	return Vertex{
		Position:  position,
		Normal:    normal,
		TexCoords: texCoords,
		Color:     color.White(),
	}
}

// ImportedMesh is the format-neutral result of a loader backend: a flat vertex array
// where every three consecutive vertices form one triangle.
type ImportedMesh struct {
	// Name is the mesh identifier (typically the source path).
	Name string

	// Vertices is the flattened triangle list.
	Vertices []Vertex

	// BoundingMin is the minimum corner of the object-space bounding box.
	BoundingMin common.Vec3

	// BoundingMax is the maximum corner of the object-space bounding box.
	BoundingMax common.Vec3
}

// ComputeBounds fills BoundingMin/BoundingMax from the vertex positions.
func (m *ImportedMesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.BoundingMin, m.BoundingMax = common.Vec3{}, common.Vec3{}
		return
	}
	lo, hi := m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	m.BoundingMin, m.BoundingMax = lo, hi
}
