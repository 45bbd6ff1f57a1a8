package scene

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/camera"
	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"github.com/Carmen-Shannon/oxy-raster/engine/game_object"
	"github.com/Carmen-Shannon/oxy-raster/engine/light"
	"github.com/Carmen-Shannon/oxy-raster/engine/loader"
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/shader"
)

var (
	// ErrUnknownMesh is returned when a scene object names a mesh the loader does not hold.
	ErrUnknownMesh = errors.New("unknown mesh")

	// ErrUnknownPreset is returned when selecting a kind that has no draw list.
	ErrUnknownPreset = errors.New("no preset for shader kind")
)

// drawItem is a validated scene object with its mesh and shader resolved.
type drawItem struct {
	obj    game_object.GameObject
	mesh   model.Model
	shader renderer.Shader
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name string

	cam     camera.Camera
	r       renderer.Renderer
	meshes  loader.Loader
	shaders shader.Registry
	light   light.Light

	presets  map[shader.Kind][]game_object.GameObject
	resolved map[shader.Kind][]drawItem
	selected shader.Kind

	nextID uint64
}

// Scene is a set of declarative draw lists, one per selectable shader kind. Exactly one draw
// list is active at a time; Render evaluates each of its objects against the frame counter and
// draws them in order into a framebuffer.
type Scene interface {
	// Name returns the scene name.
	Name() string

	// Camera returns the camera the scene is viewed through.
	Camera() camera.Camera

	// Renderer returns the renderer the scene draws with.
	Renderer() renderer.Renderer

	// Light returns the directional light, or nil if the renderer's light is left untouched.
	Light() light.Light

	// Selected returns the kind whose draw list is active.
	Selected() shader.Kind

	// Select activates the draw list for kind.
	//
	// Parameters:
	//   - kind: the preset selector
	//
	// Returns:
	//   - error: ErrUnknownPreset if the scene has no draw list for kind
	Select(kind shader.Kind) error

	// Kinds returns the selectable kinds in ascending order.
	Kinds() []shader.Kind

	// Objects returns the active draw list in draw order.
	Objects() []game_object.GameObject

	// Count returns the number of objects across all draw lists.
	Count() int

	// Add appends obj to the draw list for kind, creating the list if needed. The object's mesh
	// and shader are resolved immediately.
	//
	// Parameters:
	//   - kind: the preset selector
	//   - obj: the object to append
	//
	// Returns:
	//   - uint64: the object's ID
	//   - error: ErrUnknownMesh or shader.ErrUnknownShader if obj cannot be drawn
	Add(kind shader.Kind, obj game_object.GameObject) (uint64, error)

	// Get looks up an object by ID in any draw list. Returns nil if not found.
	Get(id uint64) game_object.GameObject

	// Render draws the active draw list into fb at the given frame and returns the draw
	// statistics for this call.
	//
	// Parameters:
	//   - fb: the target framebuffer, already cleared by the caller
	//   - time: the frame counter
	//
	// Returns:
	//   - renderer.Stats: totals for every draw issued
	Render(fb *framebuffer.Framebuffer, time uint32) renderer.Stats
}

var _ Scene = &scene{}

// NewScene creates a Scene. Every object in every draw list is checked up front: each mesh
// must already be held by the loader and each shader kind must be registered, so no lookup can
// fail once frames start. Without WithPreset options the DefaultPresets are used.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to view through (must not be nil)
//   - r: the renderer to draw with (must not be nil)
//   - meshes: the loader that holds every referenced mesh
//   - shaders: the registry that resolves every referenced shader kind
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: error if a mesh or shader cannot be resolved
func NewScene(name string, cam camera.Camera, r renderer.Renderer, meshes loader.Loader, shaders shader.Registry, options ...SceneBuilderOption) (Scene, error) {
	if cam == nil || r == nil || meshes == nil || shaders == nil {
		return nil, errors.New("scene: NewScene requires a camera, renderer, loader and shader registry")
	}

	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		cam:      cam,
		r:        r,
		meshes:   meshes,
		shaders:  shaders,
		presets:  make(map[shader.Kind][]game_object.GameObject),
		resolved: make(map[shader.Kind][]drawItem),
		nextID:   1,
	}

	for _, option := range options {
		option(s)
	}
	if len(s.presets) == 0 {
		for kind, objs := range DefaultPresets() {
			s.presets[kind] = objs
		}
	}

	for _, kind := range slices.Sorted(maps.Keys(s.presets)) {
		objs := s.presets[kind]
		items := make([]drawItem, 0, len(objs))
		for _, obj := range objs {
			item, err := s.resolve(obj)
			if err != nil {
				return nil, fmt.Errorf("scene %q preset %v: %w", name, kind, err)
			}
			s.assignID(obj)
			items = append(items, item)
		}
		s.resolved[kind] = items
	}

	if _, ok := s.resolved[s.selected]; !ok {
		return nil, fmt.Errorf("scene %q: %w %v", name, ErrUnknownPreset, s.selected)
	}
	return s, nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Light() light.Light {
	return s.light
}

func (s *scene) Selected() shader.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

func (s *scene) Select(kind shader.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resolved[kind]; !ok {
		return fmt.Errorf("%w %v", ErrUnknownPreset, kind)
	}
	s.selected = kind
	return nil
}

func (s *scene) Kinds() []shader.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kinds := make([]shader.Kind, 0, len(s.resolved))
	for k := range s.resolved {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.resolved[s.selected]
	objs := make([]game_object.GameObject, len(items))
	for i, item := range items {
		objs[i] = item.obj
	}
	return objs
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, items := range s.resolved {
		n += len(items)
	}
	return n
}

func (s *scene) Add(kind shader.Kind, obj game_object.GameObject) (uint64, error) {
	item, err := s.resolve(obj)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignID(obj)
	s.presets[kind] = append(s.presets[kind], obj)
	s.resolved[kind] = append(s.resolved[kind], item)
	return obj.ID(), nil
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, items := range s.resolved {
		for _, item := range items {
			if item.obj.ID() == id {
				return item.obj
			}
		}
	}
	return nil
}

func (s *scene) Render(fb *framebuffer.Framebuffer, time uint32) renderer.Stats {
	s.mu.RLock()
	items := s.resolved[s.selected]
	s.mu.RUnlock()

	if s.light != nil {
		s.r.SetLight(s.light.ToLight())
	}

	u := renderer.Uniforms{
		View:       s.cam.ViewMatrix(),
		Projection: s.cam.ProjectionMatrix(),
		Viewport:   common.Viewport(float32(fb.Width()), float32(fb.Height())),
		Time:       time,
	}

	var stats renderer.Stats
	for _, item := range items {
		if !item.obj.Enabled() {
			continue
		}
		u.Model = item.obj.ModelMatrix(time)
		stats = stats.Add(s.r.Draw(fb, u, item.mesh.Vertices(), item.shader))
	}
	return stats
}

// resolve looks up the mesh and shader an object needs.
func (s *scene) resolve(obj game_object.GameObject) (drawItem, error) {
	if obj == nil {
		return drawItem{}, errors.New("nil game object")
	}
	mesh := s.meshes.Get(obj.Mesh())
	if mesh == nil {
		return drawItem{}, fmt.Errorf("%w %q", ErrUnknownMesh, obj.Mesh())
	}
	shdr, err := s.shaders.Get(obj.Shader())
	if err != nil {
		return drawItem{}, err
	}
	return drawItem{obj: obj, mesh: mesh, shader: shdr}, nil
}

// assignID gives obj the next free ID unless it already has one. Callers hold the write lock
// or own the scene exclusively.
func (s *scene) assignID(obj game_object.GameObject) {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
}
