package light

import "github.com/Carmen-Shannon/oxy-raster/common"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithDirection is an option builder that sets the direction the light travels.
// The direction is normalized before storing; the zero vector keeps the default.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.setDirection(common.V3(x, y, z))
	}
}

// WithToLight is an option builder that sets the direction from a surface toward the light,
// the inverse of WithDirection.
//
// Parameters:
//   - x: the x component
//   - y: the y component
//   - z: the z component
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithToLight(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.setDirection(common.V3(-x, -y, -z))
	}
}
