package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/common"
)

const eps = 1e-4

func nearVec3(a, b common.Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > tol {
			return false
		}
	}
	return true
}

func defaultCamera(t *testing.T) Camera {
	t.Helper()
	c, err := NewCamera(common.V3(0, 0, 5), common.Vec3{}, common.V3(0, 1, 0))
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return c
}

func TestNewCameraRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name            string
		eye, center, up common.Vec3
	}{
		{"eye equals center", common.V3(1, 2, 3), common.V3(1, 2, 3), common.V3(0, 1, 0)},
		{"zero up", common.V3(0, 0, 5), common.Vec3{}, common.Vec3{}},
		{"up along view", common.V3(0, 5, 0), common.Vec3{}, common.V3(0, 1, 0)},
		{"nan eye", common.V3(float32(math.NaN()), 0, 5), common.Vec3{}, common.V3(0, 1, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCamera(tc.eye, tc.center, tc.up); !errors.Is(err, ErrDegenerateCamera) {
				t.Errorf("err = %v, want ErrDegenerateCamera", err)
			}
		})
	}
}

func TestOrbitRoundTrip(t *testing.T) {
	for _, theta := range []float32{0.1, math.Pi / 50, 1.3, -2.2} {
		c := defaultCamera(t)
		start := c.Eye()
		c.Orbit(theta, 0)
		c.Orbit(-theta, 0)
		if got := c.Eye(); !nearVec3(got, start, eps) {
			t.Errorf("theta %v: eye = %v, want %v", theta, got, start)
		}
	}
}

func TestOrbitPreservesDistance(t *testing.T) {
	c := defaultCamera(t)
	for i := 0; i < 200; i++ {
		c.Orbit(0.07, 0.05)
		if d := c.Distance(); math.Abs(float64(d-5)) > 1e-3 {
			t.Fatalf("step %d: distance = %v, want 5", i, d)
		}
	}
}

func TestOrbitYawDirection(t *testing.T) {
	c := defaultCamera(t)
	c.Orbit(math.Pi/2, 0)
	if got := c.Eye(); !nearVec3(got, common.V3(5, 0, 0), eps) {
		t.Errorf("eye after quarter yaw = %v, want (5,0,0)", got)
	}
}

func TestOrbitPitchClamped(t *testing.T) {
	c := defaultCamera(t)
	// Pitch far past the pole in both directions; up must never line up with the view.
	for _, pitch := range []float32{-10, 10} {
		for i := 0; i < 20; i++ {
			c.Orbit(0, pitch)
			dir := c.Eye().Sub(c.Center()).Normalize()
			polar := math.Acos(float64(dir.Dot(c.Up().Normalize())))
			if polar < polarMargin-1e-3 || polar > math.Pi-polarMargin+1e-3 {
				t.Fatalf("polar angle %v outside clamp", polar)
			}
			if dir.Cross(c.Up()).Length() < 1e-3 {
				t.Fatalf("view direction %v parallel to up", dir)
			}
		}
	}
	view := c.ViewMatrix()
	for _, v := range view {
		if math.IsNaN(float64(v)) {
			t.Fatalf("view matrix has NaN after clamped pitch: %v", view)
		}
	}
}

func TestZoom(t *testing.T) {
	c := defaultCamera(t)
	c.Zoom(1)
	if got := c.Eye(); !nearVec3(got, common.V3(0, 0, 4), eps) {
		t.Errorf("eye after zoom in = %v, want (0,0,4)", got)
	}
	c.Zoom(-2)
	if got := c.Distance(); math.Abs(float64(got-6)) > eps {
		t.Errorf("distance after zoom out = %v, want 6", got)
	}
	c.Zoom(100)
	if got := c.Distance(); math.Abs(float64(got-DefaultMinDistance)) > eps {
		t.Errorf("distance after overshoot = %v, want %v", got, DefaultMinDistance)
	}
	if got := c.Eye(); got[2] <= 0 {
		t.Errorf("eye crossed the center: %v", got)
	}
}

func TestMoveCenterAndPan(t *testing.T) {
	c := defaultCamera(t)
	c.MoveCenter(common.V3(1, 2, 0))
	if !nearVec3(c.Eye(), common.V3(1, 2, 5), eps) || !nearVec3(c.Center(), common.V3(1, 2, 0), eps) {
		t.Errorf("after MoveCenter eye=%v center=%v", c.Eye(), c.Center())
	}

	c = defaultCamera(t)
	c.Pan(1, -1)
	if !nearVec3(c.Center(), common.V3(1, -1, 0), eps) {
		t.Errorf("center after pan = %v, want (1,-1,0)", c.Center())
	}
	if d := c.Distance(); math.Abs(float64(d-5)) > eps {
		t.Errorf("pan changed distance to %v", d)
	}
}

func TestViewMatrixTracksState(t *testing.T) {
	c := defaultCamera(t)
	c.Orbit(0.4, 0.2)
	c.Pan(0.5, 0.5)
	want := common.LookAt(c.Eye(), c.Center(), c.Up())
	if got := c.ViewMatrix(); got != want {
		t.Errorf("ViewMatrix out of sync with eye/center")
	}
}

type heldKeys map[uint32]bool

func (h heldKeys) IsKeyDown(k uint32) bool { return h[k] }

func TestControllerKeyMap(t *testing.T) {
	tests := []struct {
		name  string
		keys  heldKeys
		check func(t *testing.T, c Camera)
	}{
		{"none", heldKeys{}, func(t *testing.T, c Camera) {
			if !nearVec3(c.Eye(), common.V3(0, 0, 5), eps) {
				t.Errorf("eye moved to %v", c.Eye())
			}
		}},
		{"left orbits counterclockwise", heldKeys{common.KeyLeft: true}, func(t *testing.T, c Camera) {
			if c.Eye()[0] <= 0 {
				t.Errorf("eye = %v, want positive x", c.Eye())
			}
		}},
		{"w raises the eye", heldKeys{common.KeyW: true}, func(t *testing.T, c Camera) {
			if c.Eye()[1] <= 0 {
				t.Errorf("eye = %v, want positive y", c.Eye())
			}
		}},
		{"a pans left", heldKeys{common.KeyA: true}, func(t *testing.T, c Camera) {
			if !nearVec3(c.Center(), common.V3(-1, 0, 0), eps) {
				t.Errorf("center = %v, want (-1,0,0)", c.Center())
			}
		}},
		{"q pans up", heldKeys{common.KeyQ: true}, func(t *testing.T, c Camera) {
			if !nearVec3(c.Center(), common.V3(0, 1, 0), eps) {
				t.Errorf("center = %v, want (0,1,0)", c.Center())
			}
		}},
		{"up zooms in", heldKeys{common.KeyUp: true}, func(t *testing.T, c Camera) {
			if d := c.Distance(); math.Abs(float64(d-4.9)) > eps {
				t.Errorf("distance = %v, want 4.9", d)
			}
		}},
		{"opposing keys cancel", heldKeys{common.KeyUp: true, common.KeyDown: true}, func(t *testing.T, c Camera) {
			if d := c.Distance(); math.Abs(float64(d-5)) > eps {
				t.Errorf("distance = %v, want 5", d)
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := defaultCamera(t)
			NewCameraController().Update(c, tc.keys)
			tc.check(t, c)
		})
	}
}

func TestControllerScroll(t *testing.T) {
	c := defaultCamera(t)
	NewCameraController(WithZoomSpeed(0.5)).Scroll(c, 2)
	if d := c.Distance(); math.Abs(float64(d-4)) > eps {
		t.Errorf("distance = %v, want 4", d)
	}
}
