package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/camera"
	"github.com/Carmen-Shannon/oxy-raster/engine/loader"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-raster/engine/scene"
	"github.com/Carmen-Shannon/oxy-raster/engine/snapshot"
)

type fakeDisplay struct {
	keys       map[uint32]bool
	width      int
	height     int
	scroll     float32
	presented  int
	polls      int
	closeAfter int
	err        error
	lastSize   [2]int
}

func (d *fakeDisplay) Present(buf []uint32, width, height int) error {
	if d.err != nil {
		return d.err
	}
	if len(buf) != width*height {
		return errors.New("buffer size mismatch")
	}
	d.presented++
	d.lastSize = [2]int{width, height}
	return nil
}

func (d *fakeDisplay) ShouldClose() bool {
	return d.closeAfter > 0 && d.polls > d.closeAfter
}

func (d *fakeDisplay) IsKeyDown(key uint32) bool { return d.keys[key] }
func (d *fakeDisplay) PollEvents()               { d.polls++ }
func (d *fakeDisplay) Size() (int, int)          { return d.width, d.height }

func (d *fakeDisplay) TakeScroll() float32 {
	s := d.scroll
	d.scroll = 0
	return s
}

func newTestScene(t *testing.T) scene.Scene {
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
	if _, err := l.LoadAll(context.Background(), scene.MeshSources(scene.DefaultPresets())); err != nil {
		t.Fatal(err)
	}
	s, err := scene.NewScene("test", cam, r, l, shader.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newTestEngine(t *testing.T, options ...EngineBuilderOption) Engine {
	t.Helper()
	options = append([]EngineBuilderOption{WithFrameInterval(0), WithFramebufferSize(64, 48)}, options...)
	e, err := NewEngine(newTestScene(t), options...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngineErrors(t *testing.T) {
	if _, err := NewEngine(nil); err == nil {
		t.Error("NewEngine(nil) succeeded")
	}
	if _, err := NewEngine(newTestScene(t), WithFramebufferSize(0, 10)); err == nil {
		t.Error("NewEngine with a zero width succeeded")
	}
}

func TestRunHeadless(t *testing.T) {
	var frames []uint32
	e := newTestEngine(t,
		WithMaxFrames(3),
		WithFrameCallback(func(frame uint32, stats renderer.Stats) {
			frames = append(frames, frame)
			if stats.Triangles == 0 || stats.Written == 0 {
				t.Errorf("frame %d drew nothing: %+v", frame, stats)
			}
		}),
	)
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if e.Frame() != 3 {
		t.Errorf("Frame = %d, want 3", e.Frame())
	}
	if len(frames) != 3 || frames[0] != 1 || frames[2] != 3 {
		t.Errorf("callback frames = %v, want [1 2 3]", frames)
	}
	fb := e.Framebuffer()
	if fb.At(32, 24) == DefaultBackgroundColor {
		t.Error("center pixel still background")
	}
	if fb.At(0, 0) != DefaultBackgroundColor {
		t.Errorf("corner = %#06x, want background", fb.At(0, 0))
	}
}

func TestRunStopsWhenDisplayCloses(t *testing.T) {
	d := &fakeDisplay{closeAfter: 4}
	e := newTestEngine(t, WithDisplay(d))
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d.presented != 4 || e.Frame() != 4 {
		t.Errorf("presented %d frames (counter %d), want 4", d.presented, e.Frame())
	}
	if d.lastSize != [2]int{64, 48} {
		t.Errorf("presented size = %v, want 64x48", d.lastSize)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := newTestEngine(t)
	if err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
	if e.Frame() != 0 {
		t.Errorf("Frame = %d, want no frame after cancellation", e.Frame())
	}
}

func TestQuit(t *testing.T) {
	e := newTestEngine(t)
	e.Quit()
	e.Quit()
	if err := e.Run(context.Background()); err != nil {
		t.Errorf("Run = %v, want nil", err)
	}
	if e.Frame() != 0 {
		t.Errorf("Frame = %d, want 0", e.Frame())
	}
}

func TestPresentFailureEndsRun(t *testing.T) {
	boom := errors.New("surface lost")
	e := newTestEngine(t, WithDisplay(&fakeDisplay{err: boom}))
	if err := e.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run = %v, want wrapped present error", err)
	}
}

func TestSelectionKeys(t *testing.T) {
	d := &fakeDisplay{keys: map[uint32]bool{common.Key2: true}}
	e := newTestEngine(t, WithDisplay(d))
	if _, err := e.Step(); err != nil {
		t.Fatal(err)
	}
	if got := e.Scene().Selected(); got != shader.KindSaturn {
		t.Errorf("after 2: Selected = %v, want saturn", got)
	}

	d.keys = map[uint32]bool{common.KeyR: true}
	stats, err := e.Step()
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Scene().Selected(); got != shader.KindRing {
		t.Errorf("after R: Selected = %v, want ring", got)
	}
	if stats.Draws != 1 {
		t.Errorf("ring frame draws = %d, want 1", stats.Draws)
	}
}

func TestCameraKeysAndScroll(t *testing.T) {
	d := &fakeDisplay{keys: map[uint32]bool{common.KeyLeft: true}}
	e := newTestEngine(t, WithDisplay(d))
	cam := e.Scene().Camera()
	before := cam.Eye()
	if _, err := e.Step(); err != nil {
		t.Fatal(err)
	}
	if cam.Eye() == before {
		t.Error("Left did not orbit the camera")
	}

	d.keys = nil
	d.scroll = 2
	dist := cam.Distance()
	if _, err := e.Step(); err != nil {
		t.Fatal(err)
	}
	if cam.Distance() >= dist {
		t.Errorf("scroll up: distance %v, want less than %v", cam.Distance(), dist)
	}
}

func TestSnapshotKeyFiresOncePerPress(t *testing.T) {
	dir := t.TempDir()
	d := &fakeDisplay{keys: map[uint32]bool{common.KeyP: true}}
	e := newTestEngine(t, WithDisplay(d), WithSnapshotDir(dir), WithSnapshotFormat(snapshot.FormatBMP))

	for range 3 {
		if _, err := e.Step(); err != nil {
			t.Fatal(err)
		}
	}
	files, _ := filepath.Glob(filepath.Join(dir, "*.bmp"))
	if len(files) != 1 {
		t.Fatalf("held P wrote %d snapshots, want 1", len(files))
	}

	d.keys = nil
	if _, err := e.Step(); err != nil {
		t.Fatal(err)
	}
	d.keys = map[uint32]bool{common.KeyP: true}
	if _, err := e.Step(); err != nil {
		t.Fatal(err)
	}
	files, _ = filepath.Glob(filepath.Join(dir, "*.bmp"))
	if len(files) != 2 {
		t.Errorf("second press: %d snapshots, want 2", len(files))
	}
}

func TestResizeFollowsDisplay(t *testing.T) {
	d := &fakeDisplay{width: 80, height: 40}
	e := newTestEngine(t, WithDisplay(d))
	if fb := e.Framebuffer(); fb.Width() != 80 || fb.Height() != 40 {
		t.Fatalf("framebuffer = %dx%d, want the display size 80x40", fb.Width(), fb.Height())
	}

	d.width, d.height = 30, 60
	if _, err := e.Step(); err != nil {
		t.Fatal(err)
	}
	if fb := e.Framebuffer(); fb.Width() != 30 || fb.Height() != 60 {
		t.Errorf("framebuffer = %dx%d, want 30x60", fb.Width(), fb.Height())
	}
	if got := e.Scene().Camera().Aspect(); got != 0.5 {
		t.Errorf("aspect = %v, want 0.5", got)
	}
	if d.lastSize != [2]int{30, 60} {
		t.Errorf("presented size = %v", d.lastSize)
	}

	d.width, d.height = 0, 0
	if _, err := e.Step(); err != nil {
		t.Fatal(err)
	}
	if fb := e.Framebuffer(); fb.Width() != 30 {
		t.Error("a minimized display should keep the framebuffer")
	}
}

// pressDisplay reports key presses as events instead of relying on held state alone.
type pressDisplay struct {
	*fakeDisplay
	presses []uint32
}

func (d *pressDisplay) TakePresses() []uint32 {
	p := d.presses
	d.presses = nil
	return p
}

func TestSnapshotOnPressEvent(t *testing.T) {
	dir := t.TempDir()
	d := &pressDisplay{fakeDisplay: &fakeDisplay{}}
	e := newTestEngine(t, WithDisplay(d), WithSnapshotDir(dir))

	// A tap released before the frame polls is still seen through the press list.
	d.presses = []uint32{common.KeyP}
	for range 2 {
		if _, err := e.Step(); err != nil {
			t.Fatal(err)
		}
	}
	files, _ := filepath.Glob(filepath.Join(dir, "*.png"))
	if len(files) != 1 {
		t.Errorf("one press wrote %d snapshots, want 1", len(files))
	}
}
