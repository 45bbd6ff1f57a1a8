package model

import (
	"github.com/Carmen-Shannon/oxy-raster/common"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	vertices       []Vertex
	boundingMin    common.Vec3
	boundingMax    common.Vec3
	boundingRadius float32
}

// Model defines the interface for a loaded mesh ready to be drawn by the software renderer.
// It is produced by the Loader after importing a mesh file and is immutable: the renderer
// reads its vertex array every frame and writes transformed copies elsewhere.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices retrieves the flattened triangle list. Callers must not modify it.
	//
	// Returns:
	//   - []Vertex: the vertices, three per triangle
	Vertices() []Vertex

	// VertexCount returns the number of vertices.
	VertexCount() int

	// TriangleCount returns the number of complete triangles. Trailing vertices that do
	// not complete a triple are not counted.
	TriangleCount() int

	// Bounds returns the object-space axis-aligned bounding box.
	//
	// Returns:
	//   - lo: minimum corner
	//   - hi: maximum corner
	Bounds() (lo, hi common.Vec3)

	// BoundingRadius returns the distance from the origin to the farthest vertex.
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a Model from an imported mesh.
//
// Parameters:
//   - mesh: the imported mesh data
//   - options: functional options applied after the mesh is copied in
//
// Returns:
//   - Model: the new model
func NewModel(mesh ImportedMesh, options ...ModelBuilderOption) Model {
	mesh.ComputeBounds()
	m := &model{
		name:        mesh.Name,
		vertices:    mesh.Vertices,
		boundingMin: mesh.BoundingMin,
		boundingMax: mesh.BoundingMax,
	}
	for _, v := range m.vertices {
		m.boundingRadius = max(m.boundingRadius, v.Position.Length())
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []Vertex {
	return m.vertices
}

func (m *model) VertexCount() int {
	return len(m.vertices)
}

func (m *model) TriangleCount() int {
	return len(m.vertices) / 3
}

func (m *model) Bounds() (lo, hi common.Vec3) {
	return m.boundingMin, m.boundingMax
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
