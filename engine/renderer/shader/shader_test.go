package shader

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/color"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
)

func fragmentAt(x, y, z, intensity float32) renderer.Fragment {
	return renderer.Fragment{
		VertexPosition: common.V3(x, y, z),
		Normal:         common.V3(0, 0, 1),
		Intensity:      intensity,
		Color:          color.White(),
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"neptune", KindNeptune},
		{"Earth", KindEarth},
		{" ring ", KindRing},
		{"0", KindNeptune},
		{"8", KindSun},
		{"10", KindRing},
	}
	for _, tc := range tests {
		got, err := ParseKind(tc.in)
		if err != nil {
			t.Errorf("ParseKind(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"pluto", "11", "-1", ""} {
		if _, err := ParseKind(bad); !errors.Is(err, ErrUnknownShader) {
			t.Errorf("ParseKind(%q) error = %v, want ErrUnknownShader", bad, err)
		}
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", k, err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != k {
			t.Errorf("%v round-tripped to %v", k, back)
		}
	}
	if s := Kind(42).String(); s != "Kind(42)" {
		t.Errorf("String() of invalid kind = %q", s)
	}
}

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry()
	if got := len(r.Kinds()); got != int(kindCount) {
		t.Fatalf("default registry has %d kinds, want %d", got, kindCount)
	}
	for _, k := range Kinds() {
		if _, err := r.Get(k); err != nil {
			t.Errorf("Get(%v): %v", k, err)
		}
	}
}

func TestRegistryUnknown(t *testing.T) {
	r := NewRegistry(WithoutDefaults())
	if _, err := r.Get(KindEarth); !errors.Is(err, ErrUnknownShader) {
		t.Errorf("Get on empty registry = %v, want ErrUnknownShader", err)
	}
	if _, err := NewRegistry().Get(Kind(99)); !errors.Is(err, ErrUnknownShader) {
		t.Errorf("Get(99) = %v, want ErrUnknownShader", err)
	}
	if err := r.Register(Kind(-1), ShaderFunc(Mars)); !errors.Is(err, ErrUnknownShader) {
		t.Errorf("Register(-1) = %v, want ErrUnknownShader", err)
	}
	if err := r.Register(KindMars, nil); err == nil {
		t.Error("Register accepted a nil shader")
	}
}

func TestRegistryOverride(t *testing.T) {
	flat := ShaderFunc(func(renderer.Fragment, renderer.Uniforms) color.Color { return color.FromHex(0x010203) })
	r := NewRegistry(WithShader(KindMars, flat))
	s, err := r.Get(KindMars)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Shade(fragmentAt(0, 0, 0, 1), renderer.Uniforms{}).Hex(); got != 0x010203 {
		t.Errorf("override not used: %06x", got)
	}

	if err := r.Register(KindMars, ShaderFunc(Mars)); err != nil {
		t.Fatal(err)
	}
	s, _ = r.Get(KindMars)
	if got := s.Shade(fragmentAt(0, 0, 0, 1), renderer.Uniforms{}).Hex(); got != 0xD25000 {
		t.Errorf("Register did not replace: %06x", got)
	}
}

func TestPlanetColors(t *testing.T) {
	tests := []struct {
		name string
		s    ShaderFunc
		f    renderer.Fragment
		want uint32
	}{
		{"neptune center", Neptune, fragmentAt(0, 0, 1, 1), 0x4682B4},
		{"neptune limb", Neptune, fragmentAt(1, 0, 0, 1), 0xADD8E6},
		{"neptune beyond limb", Neptune, fragmentAt(0, 3, 0, 1), 0xADD8E6},
		{"jupiter center", Jupiter, fragmentAt(0, 0, 1, 1), 0xFFB266},
		{"jupiter mid", Jupiter, fragmentAt(0.5, 0, 0, 1), 0xFFFFFF},
		{"jupiter outer", Jupiter, fragmentAt(1, 0, 0, 1), 0xB27D66},
		{"saturn core", Saturn, fragmentAt(0.2, 0.2, 0, 1), 0xD2B48C},
		{"saturn gap", Saturn, fragmentAt(2, 0, 0, 1), 0x000000},
		{"saturn band", Saturn, fragmentAt(0, 2.7, 0, 1), 0xB0B0B0},
		{"uranus", Uranus, fragmentAt(0.3, 0.1, 0, 1), 0xBDDBD0},
		{"venus", Venus, fragmentAt(0.3, 0.1, 0, 1), 0xFFDFA0},
		{"mars", Mars, fragmentAt(0.3, 0.1, 0, 1), 0xD25000},
		{"sun core", Sun, fragmentAt(0.1, 0, 0, 1), 0xFFCC00},
		{"sun outside", Sun, fragmentAt(2, 0, 0, 1), 0x000000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s(tc.f, renderer.Uniforms{}).Hex(); got != tc.want {
				t.Errorf("got %06x, want %06x", got, tc.want)
			}
		})
	}
}

func TestSunGlowIsBurned(t *testing.T) {
	got := Sun(fragmentAt(0.6, 0, 0, 1), renderer.Uniforms{})
	want := color.New(255, 204, 0).Blend(color.BlendColorBurn, color.New(255, 100, 0))
	if got != want {
		t.Errorf("glow = %v, want %v", got, want)
	}
}

func TestIntensityScales(t *testing.T) {
	for _, k := range Kinds() {
		if k == KindRing {
			continue
		}
		s, _ := NewRegistry().Get(k)
		if got := s.Shade(fragmentAt(0.3, 0.2, 0.9, 0), renderer.Uniforms{Time: 17}).Hex(); got != 0 {
			t.Errorf("%v with zero intensity = %06x, want black", k, got)
		}
	}
	if got := Ring(fragmentAt(2.5, 0, 0.4, 0), renderer.Uniforms{}).Hex(); got == 0 {
		t.Error("ring with zero intensity is black, want the ambient term")
	}
}

func TestEarthPure(t *testing.T) {
	f := fragmentAt(0.37, -0.61, 0.2, 0.8)
	u := renderer.Uniforms{Time: 123}
	if a, b := Earth(f, u), Earth(f, u); a != b {
		t.Errorf("same inputs gave %v and %v", a, b)
	}
}

func TestEarthCloudsDrift(t *testing.T) {
	changed := false
	for i := 0; i < 50 && !changed; i++ {
		f := fragmentAt(float32(i)*0.037-0.9, float32(i)*0.029-0.7, 0, 1)
		if Earth(f, renderer.Uniforms{Time: 0}) != Earth(f, renderer.Uniforms{Time: 15}) {
			changed = true
		}
	}
	if !changed {
		t.Error("clouds did not move with time")
	}
}

func TestEarthLandAndSea(t *testing.T) {
	land, sea := color.New(34, 139, 34), color.New(0, 105, 148)
	seen := map[color.Color]bool{}
	for i := 0; i < 200; i++ {
		f := fragmentAt(float32(i%20)*0.1-1, float32(i/20)*0.2-1, 0, 1)
		c := Earth(f, renderer.Uniforms{})
		if c == land || c == sea {
			seen[c] = true
		}
	}
	if !seen[land] || !seen[sea] {
		t.Errorf("expected both land and sea, saw %v", seen)
	}
}
