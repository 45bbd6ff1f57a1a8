package game_object

import "github.com/Carmen-Shannon/oxy-raster/common"

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject is drawn.
//
// Parameters:
//   - enabled: true to draw the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the object's position, which is also its orbit pivot.
//
// Parameters:
//   - position: world-space position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(position common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = position
	}
}

// WithScale sets the uniform scale factor.
//
// Parameters:
//   - scale: the scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(scale float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = scale
	}
}

// WithRotation sets the Euler rotation at frame zero.
//
// Parameters:
//   - rotation: rotation about X, Y and Z in radians
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(rotation common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = rotation
	}
}

// WithRotationSpeed sets the Euler rotation added every frame.
//
// Parameters:
//   - speed: radians per frame about X, Y and Z
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation speed
func WithRotationSpeed(speed common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotationSpeed = speed
	}
}

// WithOrbit makes the object circle its position in the XZ plane.
//
// Parameters:
//   - radius: orbit radius in world units
//   - speed: radians per frame
//   - faceOrbit: turn the object about Y with its orbit angle
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the orbit
func WithOrbit(radius, speed float32, faceOrbit bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.orbitRadius = radius
		obj.orbitSpeed = speed
		obj.faceOrbit = faceOrbit
	}
}
