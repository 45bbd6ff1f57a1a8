package scene

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/camera"
	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"github.com/Carmen-Shannon/oxy-raster/engine/game_object"
	"github.com/Carmen-Shannon/oxy-raster/engine/light"
	"github.com/Carmen-Shannon/oxy-raster/engine/loader"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/shader"
)

const background = 0x333355

type fixture struct {
	cam     camera.Camera
	r       renderer.Renderer
	meshes  loader.Loader
	shaders shader.Registry
}

func newFixture(t *testing.T, sources ...string) fixture {
	t.Helper()
	cam, err := camera.NewCamera(common.V3(0, 0, 5), common.Vec3{}, common.V3(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeNone)
	if err != nil {
		t.Fatal(err)
	}
	l := loader.NewLoader(loader.BackendTypeOBJ, loader.WithSphereDetail(8, 16), loader.WithRingSegments(24))
	if _, err := l.LoadAll(context.Background(), sources); err != nil {
		t.Fatal(err)
	}
	return fixture{cam: cam, r: r, meshes: l, shaders: shader.NewRegistry()}
}

func (f fixture) scene(t *testing.T, options ...SceneBuilderOption) Scene {
	t.Helper()
	s, err := NewScene("test", f.cam, f.r, f.meshes, f.shaders, options...)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

func TestMeshSources(t *testing.T) {
	got := MeshSources(DefaultPresets())
	want := []string{loader.BuiltinSphere, loader.BuiltinRing}
	if !slices.Equal(got, want) {
		t.Errorf("MeshSources = %v, want %v", got, want)
	}
}

func TestDefaultPresets(t *testing.T) {
	f := newFixture(t, loader.BuiltinSphere, loader.BuiltinRing)
	s := f.scene(t)

	if got := s.Kinds(); !slices.Equal(got, shader.Kinds()) {
		t.Fatalf("Kinds = %v, want every kind", got)
	}
	if s.Selected() != shader.KindNeptune {
		t.Errorf("Selected = %v, want neptune", s.Selected())
	}
	if s.Count() != len(shader.Kinds())+2 {
		t.Errorf("Count = %d, want %d", s.Count(), len(shader.Kinds())+2)
	}

	tests := []struct {
		kind   shader.Kind
		meshes []string
		kinds  []shader.Kind
	}{
		{shader.KindNeptune, []string{loader.BuiltinSphere}, []shader.Kind{shader.KindNeptune}},
		{shader.KindSaturn, []string{loader.BuiltinSphere, loader.BuiltinRing}, []shader.Kind{shader.KindSaturn, shader.KindRing}},
		{shader.KindEarth, []string{loader.BuiltinSphere, loader.BuiltinSphere}, []shader.Kind{shader.KindEarth, shader.KindMoon}},
		{shader.KindRing, []string{loader.BuiltinSphere}, []shader.Kind{shader.KindRing}},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if err := s.Select(tc.kind); err != nil {
				t.Fatal(err)
			}
			objs := s.Objects()
			if len(objs) != len(tc.meshes) {
				t.Fatalf("%d objects, want %d", len(objs), len(tc.meshes))
			}
			for i, obj := range objs {
				if obj.Mesh() != tc.meshes[i] || obj.Shader() != tc.kinds[i] {
					t.Errorf("object %d = %s/%v, want %s/%v", i, obj.Mesh(), obj.Shader(), tc.meshes[i], tc.kinds[i])
				}
				if obj.ID() == 0 || s.Get(obj.ID()) != obj {
					t.Errorf("object %d has no usable ID", i)
				}
			}
		})
	}
}

func TestMoonOrbit(t *testing.T) {
	moon := DefaultPresets()[shader.KindEarth][1]
	for _, frame := range []uint32{0, 10, 31, 100} {
		m := moon.ModelMatrix(frame)
		pos := common.V3(m[12], m[13], m[14])
		if d := pos.Length(); d < MoonOrbitRadius-1e-4 || d > MoonOrbitRadius+1e-4 {
			t.Errorf("frame %d: moon at distance %v, want %v", frame, d, MoonOrbitRadius)
		}
	}
}

func TestNewSceneUnknownMesh(t *testing.T) {
	f := newFixture(t, loader.BuiltinSphere)
	_, err := NewScene("test", f.cam, f.r, f.meshes, f.shaders)
	if !errors.Is(err, ErrUnknownMesh) {
		t.Errorf("err = %v, want ErrUnknownMesh for the missing ring", err)
	}
}

func TestNewSceneUnknownShader(t *testing.T) {
	f := newFixture(t, loader.BuiltinSphere)
	f.shaders = shader.NewRegistry(shader.WithoutDefaults())
	_, err := NewScene("test", f.cam, f.r, f.meshes, f.shaders,
		WithPreset(shader.KindNeptune, game_object.NewGameObject(loader.BuiltinSphere, shader.KindNeptune)))
	if !errors.Is(err, shader.ErrUnknownShader) {
		t.Errorf("err = %v, want ErrUnknownShader", err)
	}
}

func TestNewSceneSelectedNeedsPreset(t *testing.T) {
	f := newFixture(t, loader.BuiltinSphere)
	_, err := NewScene("test", f.cam, f.r, f.meshes, f.shaders,
		WithPreset(shader.KindMars, game_object.NewGameObject(loader.BuiltinSphere, shader.KindMars)))
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset for the default selection", err)
	}
}

func TestSelectUnknown(t *testing.T) {
	f := newFixture(t, loader.BuiltinSphere)
	s := f.scene(t, WithPreset(shader.KindMars, game_object.NewGameObject(loader.BuiltinSphere, shader.KindMars)),
		WithSelected(shader.KindMars))
	if err := s.Select(shader.KindEarth); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
	if s.Selected() != shader.KindMars {
		t.Errorf("failed Select changed the selection to %v", s.Selected())
	}
}

func TestAdd(t *testing.T) {
	f := newFixture(t, loader.BuiltinSphere)
	s := f.scene(t, WithPreset(shader.KindNeptune, game_object.NewGameObject(loader.BuiltinSphere, shader.KindNeptune)))

	obj := game_object.NewGameObject(loader.BuiltinSphere, shader.KindSun, game_object.WithScale(0.5))
	id, err := s.Add(shader.KindSun, obj)
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 || s.Get(id) != obj {
		t.Errorf("Add returned id %d that Get cannot find", id)
	}
	if err := s.Select(shader.KindSun); err != nil {
		t.Errorf("Select after Add: %v", err)
	}
	if _, err := s.Add(shader.KindSun, game_object.NewGameObject("missing.obj", shader.KindSun)); !errors.Is(err, ErrUnknownMesh) {
		t.Errorf("err = %v, want ErrUnknownMesh", err)
	}
}

func TestRender(t *testing.T) {
	f := newFixture(t, loader.BuiltinSphere, loader.BuiltinRing)
	s := f.scene(t)
	fb := framebuffer.New(64, 64, framebuffer.WithBackgroundColor(background))

	stats := s.Render(fb, 1)
	if stats.Draws != 1 || stats.Written == 0 {
		t.Fatalf("neptune stats = %+v", stats)
	}
	if fb.At(32, 32) == background {
		t.Error("sphere did not cover the center pixel")
	}
	if fb.At(0, 0) != background {
		t.Error("sphere covered the corner pixel")
	}

	if err := s.Select(shader.KindSaturn); err != nil {
		t.Fatal(err)
	}
	fb.Clear()
	if stats := s.Render(fb, 1); stats.Draws != 2 {
		t.Errorf("saturn draws = %d, want 2", stats.Draws)
	}
}

func TestRenderSkipsDisabled(t *testing.T) {
	f := newFixture(t, loader.BuiltinSphere)
	obj := game_object.NewGameObject(loader.BuiltinSphere, shader.KindMars, game_object.WithEnabled(false))
	s := f.scene(t, WithPreset(shader.KindNeptune, obj))
	fb := framebuffer.New(16, 16, framebuffer.WithBackgroundColor(background))
	if stats := s.Render(fb, 0); stats.Draws != 0 {
		t.Errorf("disabled object drawn: %+v", stats)
	}
}

func TestRenderPushesLight(t *testing.T) {
	f := newFixture(t, loader.BuiltinSphere, loader.BuiltinRing)
	s := f.scene(t, WithLight(light.NewLight(light.WithToLight(1, 0, 0))))
	s.Render(framebuffer.New(8, 8), 0)
	if got := f.r.Light(); got != common.V3(1, 0, 0) {
		t.Errorf("renderer light = %v, want (1,0,0)", got)
	}
}
