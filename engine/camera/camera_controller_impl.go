package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-raster/common"
)

const (
	// DefaultOrbitSpeed is pi/50 radians per frame.
	DefaultOrbitSpeed = math.Pi / 50

	// DefaultPanSpeed is one world unit per frame.
	DefaultPanSpeed = 1.0

	// DefaultZoomSpeed is a tenth of a world unit per frame.
	DefaultZoomSpeed = 0.1
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	orbitSpeed float32
	panSpeed   float32
	zoomSpeed  float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a keyboard camera controller.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		orbitSpeed: DefaultOrbitSpeed,
		panSpeed:   DefaultPanSpeed,
		zoomSpeed:  DefaultZoomSpeed,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Update(cam Camera, keys KeyState) bool {
	// axis returns +1, -1 or 0 for a pair of opposing keys.
	axis := func(pos, neg uint32) float32 {
		var v float32
		if keys.IsKeyDown(pos) {
			v++
		}
		if keys.IsKeyDown(neg) {
			v--
		}
		return v
	}

	yaw := axis(common.KeyLeft, common.KeyRight) * cc.orbitSpeed
	pitch := axis(common.KeyS, common.KeyW) * cc.orbitSpeed
	right := axis(common.KeyD, common.KeyA) * cc.panSpeed
	up := axis(common.KeyQ, common.KeyE) * cc.panSpeed
	zoom := axis(common.KeyUp, common.KeyDown) * cc.zoomSpeed

	moved := false
	if yaw != 0 || pitch != 0 {
		cam.Orbit(yaw, pitch)
		moved = true
	}
	if right != 0 || up != 0 {
		cam.Pan(right, up)
		moved = true
	}
	if zoom != 0 {
		cam.Zoom(zoom)
		moved = true
	}
	return moved
}

func (cc *cameraControllerImpl) Scroll(cam Camera, delta float32) {
	if delta != 0 {
		cam.Zoom(delta * cc.zoomSpeed)
	}
}

func (cc *cameraControllerImpl) OrbitSpeed() float32 {
	return cc.orbitSpeed
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	return cc.panSpeed
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	return cc.zoomSpeed
}
