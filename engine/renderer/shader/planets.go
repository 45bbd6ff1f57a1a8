package shader

import (
	"math"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/color"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
)

var builtins = [kindCount]Shader{
	KindNeptune: ShaderFunc(Neptune),
	KindJupiter: ShaderFunc(Jupiter),
	KindSaturn:  ShaderFunc(Saturn),
	KindUranus:  ShaderFunc(Uranus),
	KindVenus:   ShaderFunc(Venus),
	KindMars:    ShaderFunc(Mars),
	KindEarth:   ShaderFunc(Earth),
	KindMercury: ShaderFunc(Mercury),
	KindSun:     ShaderFunc(Sun),
	KindMoon:    ShaderFunc(Moon),
	KindRing:    ShaderFunc(Ring),
}

// radial returns the distance of the fragment from the object's Z axis, in object units.
func radial(f renderer.Fragment) float32 {
	p := f.VertexPosition
	return float32(math.Hypot(float64(p[0]), float64(p[1])))
}

func lit(c color.Color, f renderer.Fragment) color.Color {
	return c.Scale(f.Intensity)
}

// Neptune blends deep blue at the center to light blue at the limb.
func Neptune(f renderer.Fragment, _ renderer.Uniforms) color.Color {
	inner := color.New(70, 130, 180)
	outer := color.New(173, 216, 230)
	return lit(inner.Lerp(outer, min(radial(f), 1)), f)
}

// Jupiter blends orange to white over the inner half radius and white to brown beyond it.
func Jupiter(f renderer.Fragment, _ renderer.Uniforms) color.Color {
	inner := color.New(255, 178, 102)
	mid := color.White()
	outer := color.New(178, 125, 102)

	d := radial(f)
	var c color.Color
	if d < 0.5 {
		c = inner.Lerp(mid, d*2)
	} else {
		c = mid.Lerp(outer, (d-0.5)*2)
	}
	return lit(c, f)
}

// Saturn is tan up to 0.8, fades to pale yellow by 1.4, and shows a gray band between 2.5 and 3.0.
// Everything else is black.
func Saturn(f renderer.Fragment, _ renderer.Uniforms) color.Color {
	const (
		coreRadius      = 0.8
		outerRadius     = 1.4
		ringInnerRadius = 2.5
		ringOuterRadius = 3.0
	)
	inner := color.New(210, 180, 140)
	outer := color.New(245, 230, 210)
	band := color.New(220, 220, 220)

	d := radial(f)
	var c color.Color
	switch {
	case d < coreRadius:
		c = inner
	case d < outerRadius:
		c = inner.Lerp(outer, (d-coreRadius)/(outerRadius-coreRadius))
	case d >= ringInnerRadius && d <= ringOuterRadius:
		c = band.Scale(0.8)
	default:
		c = color.Black()
	}
	return lit(c, f)
}

// Uranus is a flat pale cyan.
func Uranus(f renderer.Fragment, _ renderer.Uniforms) color.Color {
	return lit(color.New(189, 219, 208), f)
}

// Venus is a flat pale yellow.
func Venus(f renderer.Fragment, _ renderer.Uniforms) color.Color {
	return lit(color.New(255, 223, 160), f)
}

// Mars is a flat rust orange.
func Mars(f renderer.Fragment, _ renderer.Uniforms) color.Color {
	return lit(color.New(210, 80, 0), f)
}

// Earth splits the surface into land and sea with a trigonometric blotch pattern and lays white
// clouds over it that drift with the frame counter.
func Earth(f renderer.Fragment, u renderer.Uniforms) color.Color {
	const (
		noiseScale = 5
		cloudScale = 10
		cloudSpeed = 0.1
		cloudFloor = 0.7
		cloudCover = 0.6
	)
	land := color.New(34, 139, 34)
	sea := color.New(0, 105, 148)

	x, y := f.VertexPosition[0], f.VertexPosition[1]
	c := sea
	if abs(common.Sin(x*noiseScale)+common.Cos(y*noiseScale)) > 0.5 {
		c = land
	}

	drift := float32(u.Time) * cloudSpeed
	clouds := abs(common.Sin(x*cloudScale+drift) * common.Cos(y*cloudScale+drift))
	if clouds > cloudFloor {
		c = c.Lerp(color.White(), (clouds-cloudFloor)/(1-cloudFloor)*cloudCover)
	}
	return lit(c, f)
}

// Mercury is gray with darker crater pits.
func Mercury(f renderer.Fragment, _ renderer.Uniforms) color.Color {
	surface := color.New(169, 169, 169)
	pit := color.New(105, 100, 98)

	p := f.VertexPosition
	craters := abs(common.Sin(p[0]*12+p[2]*3) * common.Sin(p[1]*12-p[2]*5))
	return lit(surface.Lerp(pit, (craters-0.75)/0.25), f)
}

// Sun is a yellow core inside radius 0.3 and a color-burned orange glow out to 1.0.
func Sun(f renderer.Fragment, _ renderer.Uniforms) color.Color {
	const (
		coreRadius = 0.3
		glowRadius = 1.0
	)
	core := color.New(255, 204, 0)
	glow := color.New(255, 100, 0)

	d := radial(f)
	var c color.Color
	switch {
	case d < coreRadius:
		c = core
	case d < glowRadius:
		c = core.Blend(color.BlendColorBurn, glow)
	default:
		c = color.Black()
	}
	return lit(c, f)
}

// Moon is pale gray with darker speckles.
func Moon(f renderer.Fragment, _ renderer.Uniforms) color.Color {
	surface := color.New(200, 200, 200)
	mare := color.New(140, 140, 140)

	p := f.VertexPosition
	speckle := abs(common.Sin(p[0]*20+p[1]*7) * common.Cos(p[1]*20-p[2]*5))
	if speckle > 0.8 {
		return lit(mare, f)
	}
	return lit(surface, f)
}

// Ring draws concentric bands over a flat annulus lying in the object's XZ plane, with a dark gap
// a little past the middle. A constant ambient term keeps the ring visible when seen edge-lit.
func Ring(f renderer.Fragment, _ renderer.Uniforms) color.Color {
	const (
		innerRadius = 2.2
		outerRadius = 3.4
		ambient     = 0.35
	)
	light := color.New(210, 195, 160)
	dark := color.New(150, 130, 100)
	gap := color.New(60, 55, 50)

	p := f.VertexPosition
	r := float32(math.Hypot(float64(p[0]), float64(p[2])))
	t := (r - innerRadius) / (outerRadius - innerRadius)

	c := light.Lerp(dark, 0.5+0.5*common.Sin(r*25))
	if t > 0.55 && t < 0.6 {
		c = gap
	}
	return c.Scale(ambient + (1-ambient)*f.Intensity)
}

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
