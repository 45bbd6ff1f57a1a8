// Package color provides the additive RGB color used by the software pipeline.
// Channels are float32 in the nominal range [0, 255] so that shaders can scale and
// sum colors freely; values are only clamped when packed into a 24-bit pixel.
package color

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-raster/common"
)

// Color is an RGB color with float channels in the nominal range [0, 255].
type Color struct {
	R, G, B float32
}

// New creates a color from channel values in [0, 255].
func New(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// FromHex unpacks a 0xRRGGBB value.
func FromHex(hex uint32) Color {
	return Color{
		R: float32((hex >> 16) & 0xFF),
		G: float32((hex >> 8) & 0xFF),
		B: float32(hex & 0xFF),
	}
}

// Black returns the zero color.
func Black() Color { return Color{} }

// White returns full-intensity white.
func White() Color { return Color{R: 255, G: 255, B: 255} }

// Hex packs the color into a 24-bit 0xRRGGBB value. Channels are clamped to [0, 255]
// and truncated toward zero.
func (c Color) Hex() uint32 {
	r := uint32(common.Clamp(c.R, 0, 255))
	g := uint32(common.Clamp(c.G, 0, 255))
	b := uint32(common.Clamp(c.B, 0, 255))
	return r<<16 | g<<8 | b
}

// Add returns the channel-wise sum c + o. The result is not clamped.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Scale multiplies every channel by s. Shaders use this to apply light intensity.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Lerp interpolates from c (t=0) to o (t=1). t is clamped to [0, 1], so Lerp(a, b, 0)
// is exactly a and Lerp(a, b, 1) is exactly b.
func (c Color) Lerp(o Color, t float32) Color {
	t = common.Clamp(t, 0, 1)
	s := 1 - t
	return Color{
		R: c.R*s + o.R*t,
		G: c.G*s + o.G*t,
		B: c.B*s + o.B*t,
	}
}

// Blend composites o over c using the given separable blend mode. c is the backdrop
// (Cb) and o the source (Cs).
func (c Color) Blend(mode BlendMode, o Color) Color {
	f := mode.channelFunc()
	return Color{
		R: f(c.R/255, o.R/255) * 255,
		G: f(c.G/255, o.G/255) * 255,
		B: f(c.B/255, o.B/255) * 255,
	}
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Hex())
}
