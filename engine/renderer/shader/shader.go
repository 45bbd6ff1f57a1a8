package shader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
)

// Shader colors a fragment. It is the renderer's shader contract.
type Shader = renderer.Shader

// ShaderFunc adapts a plain function to the Shader interface.
type ShaderFunc = renderer.ShaderFunc

// ErrUnknownShader is returned when a Kind has no registered shader.
var ErrUnknownShader = errors.New("unknown shader")

// Kind identifies one of the built-in surface shaders.
type Kind int

const (
	// KindNeptune is the default kind, a radial blue gradient.
	KindNeptune Kind = iota

	// KindJupiter is a three-stop radial band from orange through white to brown.
	KindJupiter

	// KindSaturn is a tan body with a faint gray band beyond its limb.
	KindSaturn

	// KindUranus is a flat pale cyan.
	KindUranus

	// KindVenus is a flat pale yellow.
	KindVenus

	// KindMars is a flat rust orange.
	KindMars

	// KindEarth is land and sea blotches under drifting clouds.
	KindEarth

	// KindMercury is a gray cratered surface.
	KindMercury

	// KindSun is a bright core fading into a burned orange glow.
	KindSun

	// KindMoon is a pale gray speckled surface.
	KindMoon

	// KindRing is a banded ring pattern, meant for a flat annulus mesh.
	KindRing

	kindCount
)

var kindNames = [kindCount]string{
	KindNeptune: "neptune",
	KindJupiter: "jupiter",
	KindSaturn:  "saturn",
	KindUranus:  "uranus",
	KindVenus:   "venus",
	KindMars:    "mars",
	KindEarth:   "earth",
	KindMercury: "mercury",
	KindSun:     "sun",
	KindMoon:    "moon",
	KindRing:    "ring",
}

// Valid reports whether k is one of the enumerated kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Kinds returns every enumerated kind in selector order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind resolves a kind from its name ("earth") or its selector number ("6").
//
// Parameters:
//   - s: the name or number, case-insensitive
//
// Returns:
//   - Kind: the matching kind
//   - error: ErrUnknownShader wrapped with the input if nothing matches
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	if n, err := strconv.Atoi(name); err == nil && Kind(n).Valid() {
		return Kind(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShader, s)
}

// MarshalText implements encoding.TextMarshaler so kinds read naturally in config files.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShader, int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
