package model

import (
	"github.com/Carmen-Shannon/oxy-raster/engine/color"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName overrides the model name taken from the imported mesh.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that sets the model name
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithVertexColor replaces the base color of every vertex. The vertex slice is copied
// so the imported mesh is left untouched.
//
// Parameters:
//   - c: the base color
//
// Returns:
//   - ModelBuilderOption: a function that recolors the model
func WithVertexColor(c color.Color) ModelBuilderOption {
	return func(m *model) {
		vs := make([]Vertex, len(m.vertices))
		copy(vs, m.vertices)
		for i := range vs {
			vs[i].Color = c
		}
		m.vertices = vs
	}
}
