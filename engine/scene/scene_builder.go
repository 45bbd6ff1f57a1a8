package scene

import (
	"github.com/Carmen-Shannon/oxy-raster/engine/game_object"
	"github.com/Carmen-Shannon/oxy-raster/engine/light"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/shader"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithPreset sets the draw list for a selector, replacing any earlier one. Objects are drawn in
// the given order. Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - kind: the preset selector
//   - objects: the draw list
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPreset(kind shader.Kind, objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.presets[kind] = objects
	}
}

// WithPresets sets several draw lists at once.
//
// Parameters:
//   - presets: draw lists keyed by selector
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPresets(presets map[shader.Kind][]game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for kind, objs := range presets {
			s.presets[kind] = objs
		}
	}
}

// WithSelected sets the draw list that is active when the scene starts. Defaults to
// shader.KindNeptune.
//
// Parameters:
//   - kind: the initial selector
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSelected(kind shader.Kind) SceneBuilderOption {
	return func(s *scene) {
		s.selected = kind
	}
}

// WithLight attaches a directional light whose direction is pushed to the renderer before
// every Render.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.light = l
	}
}
