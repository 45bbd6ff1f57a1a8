package camera

// KeyState reports which keys are currently held. Key codes follow common/key_codes.go.
type KeyState interface {
	IsKeyDown(key uint32) bool
}

// CameraController turns held keys into camera operations once per frame.
//
// Left and Right orbit the yaw, W and S orbit the pitch, A and D pan along the camera's right axis,
// Q and E pan along its up axis, and the Up and Down arrows zoom.
type CameraController interface {
	// Update applies every held control key to cam.
	//
	// Parameters:
	//   - cam: the camera to move
	//   - keys: the current key state
	//
	// Returns:
	//   - bool: true if any control key was held
	Update(cam Camera, keys KeyState) bool

	// Scroll zooms cam by delta wheel steps, positive toward the center.
	//
	// Parameters:
	//   - cam: the camera to move
	//   - delta: the wheel movement
	Scroll(cam Camera, delta float32)

	// OrbitSpeed returns the orbit step in radians per frame.
	OrbitSpeed() float32

	// PanSpeed returns the pan step in world units per frame.
	PanSpeed() float32

	// ZoomSpeed returns the zoom step in world units per frame.
	ZoomSpeed() float32
}
