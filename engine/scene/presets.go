package scene

import (
	"maps"
	"slices"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/game_object"
	"github.com/Carmen-Shannon/oxy-raster/engine/loader"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/shader"
)

// Preset tuning for the two composite draw lists.
const (
	RingScale = 0.6
	RingTilt  = 0.45

	MoonScale       = 0.3
	MoonOrbitRadius = 1.0
	MoonOrbitSpeed  = 0.05
)

// DefaultPresets returns one draw list per shader kind. Each draws the builtin sphere with that
// kind, except Saturn, which adds a tilted ring around the planet, and Earth, which adds a moon
// orbiting once every 2π/MoonOrbitSpeed frames. Every call builds fresh objects.
//
// Returns:
//   - map[shader.Kind][]game_object.GameObject: the draw lists keyed by selector
func DefaultPresets() map[shader.Kind][]game_object.GameObject {
	presets := make(map[shader.Kind][]game_object.GameObject, len(shader.Kinds()))
	for _, kind := range shader.Kinds() {
		presets[kind] = []game_object.GameObject{
			game_object.NewGameObject(loader.BuiltinSphere, kind),
		}
	}

	presets[shader.KindSaturn] = append(presets[shader.KindSaturn],
		game_object.NewGameObject(loader.BuiltinRing, shader.KindRing,
			game_object.WithScale(RingScale),
			game_object.WithRotation(common.V3(RingTilt, 0, 0)),
		),
	)
	presets[shader.KindEarth] = append(presets[shader.KindEarth],
		game_object.NewGameObject(loader.BuiltinSphere, shader.KindMoon,
			game_object.WithScale(MoonScale),
			game_object.WithOrbit(MoonOrbitRadius, MoonOrbitSpeed, true),
		),
	)
	return presets
}

// MeshSources lists every mesh referenced by presets, each once, in first-use order over
// ascending selectors.
//
// Parameters:
//   - presets: draw lists keyed by selector
//
// Returns:
//   - []string: the mesh sources to load
func MeshSources(presets map[shader.Kind][]game_object.GameObject) []string {
	var sources []string
	seen := make(map[string]bool)
	for _, k := range slices.Sorted(maps.Keys(presets)) {
		for _, obj := range presets[k] {
			if !seen[obj.Mesh()] {
				seen[obj.Mesh()] = true
				sources = append(sources, obj.Mesh())
			}
		}
	}
	return sources
}
