package color

import (
	"math"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	for _, hex := range []uint32{0x000000, 0xFFFFFF, 0x333355, 0xFFDDDD, 0x12AB7F} {
		if got := FromHex(hex).Hex(); got != hex {
			t.Errorf("FromHex(%06x).Hex() = %06x", hex, got)
		}
	}
}

func TestHexClamps(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want uint32
	}{
		{"overflow", New(300, 255.9, 1000), 0xFFFFFF},
		{"negative", New(-10, -0.5, 12), 0x00000C},
		{"truncates", New(127.9, 64.2, 0.99), 0x7F4000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Hex(); got != tc.want {
				t.Errorf("Hex() = %06x, want %06x", got, tc.want)
			}
		})
	}
}

func TestLerpEndpoints(t *testing.T) {
	pairs := [][2]Color{
		{New(0, 0, 0), New(255, 255, 255)},
		{New(70, 130, 180), New(173, 216, 230)},
		{New(210.3, 80.7, 0.1), New(1.5, 2.5, 254.9)},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		if got := a.Lerp(b, 0); got != a {
			t.Errorf("Lerp(%v, %v, 0) = %v, want a", a, b, got)
		}
		if got := a.Lerp(b, 1); got != b {
			t.Errorf("Lerp(%v, %v, 1) = %v, want b", a, b, got)
		}
	}
}

func TestLerpMonotonic(t *testing.T) {
	a := New(10, 200, 50)
	b := New(250, 20, 50)
	prev := a
	for i := 1; i <= 100; i++ {
		c := a.Lerp(b, float32(i)/100)
		if c.R < prev.R || c.G > prev.G {
			t.Fatalf("Lerp not monotonic at step %d: %v after %v", i, c, prev)
		}
		if math.Abs(float64(c.B-50)) > 1e-4 {
			t.Fatalf("constant channel drifted: %v", c.B)
		}
		prev = c
	}
}

func TestLerpClampsT(t *testing.T) {
	a, b := New(0, 0, 0), New(100, 100, 100)
	if got := a.Lerp(b, 2); got != b {
		t.Errorf("Lerp(t=2) = %v, want %v", got, b)
	}
	if got := a.Lerp(b, -1); got != a {
		t.Errorf("Lerp(t=-1) = %v, want %v", got, a)
	}
}

func TestScaleAndAdd(t *testing.T) {
	c := New(100, 50, 10).Scale(0.5).Add(New(1, 2, 3))
	if c != New(51, 27, 8) {
		t.Errorf("got %v", c)
	}
}

func TestBlendModes(t *testing.T) {
	base := New(255, 204, 0)
	src := New(255, 100, 0)
	tests := []struct {
		mode BlendMode
		want Color
	}{
		{BlendNormal, src},
		{BlendMultiply, New(255, 80, 0)},
		{BlendLighten, New(255, 204, 0)},
		{BlendDarken, New(255, 100, 0)},
		{BlendDifference, New(0, 104, 0)},
		{BlendAdd, New(255, 255, 0)},
		{BlendSubtract, New(0, 104, 0)},
		{BlendScreen, New(255, 224, 0)},
		{BlendColorBurn, New(255, 124.95, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			got := base.Blend(tc.mode, src)
			if !closeTo(got, tc.want, 0.5) {
				t.Errorf("%v blend = %v, want %v", tc.mode, got, tc.want)
			}
		})
	}
}

func closeTo(a, b Color, tol float64) bool {
	return math.Abs(float64(a.R-b.R)) <= tol &&
		math.Abs(float64(a.G-b.G)) <= tol &&
		math.Abs(float64(a.B-b.B)) <= tol
}
