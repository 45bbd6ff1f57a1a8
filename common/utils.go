package common

import "math"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
// Configuration loading uses it to layer file values over built-in defaults.
//
// Parameters:
//   - values: candidate values in priority order
//
// Returns:
//   - T: the first non-zero value, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Radians converts an angle in degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}

// Lerp linearly interpolates between a and b. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Sin and Cos are float32 conveniences over the math package, used heavily by the
// procedural shaders.
func Sin(x float32) float32 { return float32(math.Sin(float64(x))) }
func Cos(x float32) float32 { return float32(math.Cos(float64(x))) }
