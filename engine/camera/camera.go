package camera

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-raster/common"
)

// ErrDegenerateCamera is returned when eye, center and up do not define a view.
var ErrDegenerateCamera = errors.New("degenerate camera")

const (
	// DefaultMinDistance is the closest the eye may zoom toward the center.
	DefaultMinDistance = 0.1

	// polarMargin keeps the view direction at least this many radians away from Up.
	polarMargin = 0.01

	collinearEpsilon = 1e-6
)

type cameraImpl struct {
	mu *sync.Mutex

	eye    common.Vec3
	center common.Vec3
	up     common.Vec3

	minDistance float32

	fov    float32
	aspect float32
	near   float32
	far    float32
}

// Camera is a look-at camera that orbits, zooms and pans around a center point.
//
// The eye never coincides with the center and the view direction never becomes parallel to Up.
// Every operation preserves both. View and projection matrices are derived from the current
// state on each call.
type Camera interface {
	// Eye returns the camera position in world space.
	Eye() common.Vec3

	// Center returns the point the camera looks at.
	Center() common.Vec3

	// Up returns the camera's up vector as configured.
	Up() common.Vec3

	// Distance returns the distance from the eye to the center.
	Distance() float32

	// Orbit rotates the eye around the center, keeping the distance fixed.
	//
	// Yaw turns about the Up axis, counterclockwise when seen from above. Pitch changes the angle
	// between the view offset and Up; positive pitch moves the eye away from Up. That angle is
	// clamped to [0.01, pi-0.01] radians.
	//
	// Parameters:
	//   - yaw: rotation about Up in radians
	//   - pitch: change of the polar angle in radians
	Orbit(yaw, pitch float32)

	// Zoom moves the eye along the view direction. Positive amounts move it toward the center.
	// The resulting distance is clamped to the minimum distance.
	//
	// Parameters:
	//   - amount: world units to move toward the center
	Zoom(amount float32)

	// MoveCenter translates both the eye and the center by a world-space delta.
	//
	// Parameters:
	//   - delta: the world-space translation
	MoveCenter(delta common.Vec3)

	// Pan translates both the eye and the center along the camera's local right and up axes.
	//
	// Parameters:
	//   - right: world units along the camera's right axis
	//   - up: world units along the camera's up axis
	Pan(right, up float32)

	// MinDistance returns the closest the eye may zoom toward the center.
	MinDistance() float32

	// ViewMatrix returns the world-to-view matrix for the current state.
	ViewMatrix() common.Mat4

	// ProjectionMatrix returns the perspective projection for the current lens settings.
	ProjectionMatrix() common.Mat4

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// SetAspect sets the aspect ratio, typically after a resize.
	//
	// Parameters:
	//   - aspect: the aspect ratio; non-positive values are ignored
	SetAspect(aspect float32)

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera looking from eye toward center.
//
// Parameters:
//   - eye: the camera position
//   - center: the point to look at
//   - up: the up direction; it must not be parallel to center - eye
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
//   - error: ErrDegenerateCamera if eye equals center, up is zero, or up is parallel to the view
func NewCamera(eye, center, up common.Vec3, options ...CameraBuilderOption) (Camera, error) {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		eye:         eye,
		center:      center,
		up:          up,
		minDistance: DefaultMinDistance,
		fov:         common.Radians(45),
		aspect:      1.0,
		near:        0.1,
		far:         1000.0,
	}
	for _, option := range options {
		option(c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *cameraImpl) validate() error {
	for _, v := range []common.Vec3{c.eye, c.center, c.up} {
		if !v.IsFinite() {
			return fmt.Errorf("%w: non-finite vector %v", ErrDegenerateCamera, v)
		}
	}
	offset := c.eye.Sub(c.center)
	if offset.Length() == 0 {
		return fmt.Errorf("%w: eye equals center %v", ErrDegenerateCamera, c.eye)
	}
	if c.up.Length() == 0 {
		return fmt.Errorf("%w: zero up vector", ErrDegenerateCamera)
	}
	if offset.Normalize().Cross(c.up.Normalize()).Length() < collinearEpsilon {
		return fmt.Errorf("%w: up %v is parallel to the view direction", ErrDegenerateCamera, c.up)
	}
	return nil
}

func (c *cameraImpl) Eye() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye
}

func (c *cameraImpl) Center() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.center
}

func (c *cameraImpl) Up() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Distance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye.Sub(c.center).Length()
}

func (c *cameraImpl) Orbit(yaw, pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	up := c.up.Normalize()
	offset := c.eye.Sub(c.center)
	radius := offset.Length()

	if yaw != 0 {
		offset = rotateAbout(offset, up, yaw)
	}

	if pitch != 0 {
		dir := offset.Scale(1 / radius)
		polar := float32(math.Acos(float64(common.Clamp(dir.Dot(up), -1, 1))))
		polar = common.Clamp(polar+pitch, polarMargin, math.Pi-polarMargin)

		horizontal := offset.Sub(up.Scale(offset.Dot(up)))
		if horizontal.Length() < collinearEpsilon {
			horizontal = anyPerpendicular(up)
		}
		horizontal = horizontal.Normalize()

		offset = horizontal.Scale(common.Sin(polar)).Add(up.Scale(common.Cos(polar))).Scale(radius)
	}

	c.eye = c.center.Add(offset)
}

func (c *cameraImpl) Zoom(amount float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	offset := c.eye.Sub(c.center)
	distance := max(offset.Length()-amount, c.minDistance)
	c.eye = c.center.Add(offset.Normalize().Scale(distance))
}

func (c *cameraImpl) MoveCenter(delta common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eye = c.eye.Add(delta)
	c.center = c.center.Add(delta)
}

func (c *cameraImpl) Pan(right, up float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, u := c.localAxes()
	delta := r.Scale(right).Add(u.Scale(up))
	c.eye = c.eye.Add(delta)
	c.center = c.center.Add(delta)
}

func (c *cameraImpl) MinDistance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minDistance
}

func (c *cameraImpl) ViewMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.LookAt(c.eye, c.center, c.up)
}

func (c *cameraImpl) ProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.Perspective(c.fov, c.aspect, c.near, c.far)
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

// localAxes returns the camera's right and up axes, consistent with LookAt.
// Caller must hold the mutex.
func (c *cameraImpl) localAxes() (right, up common.Vec3) {
	back := c.eye.Sub(c.center).Normalize()
	right = c.up.Cross(back).Normalize()
	up = back.Cross(right)
	return right, up
}

// rotateAbout rotates v about the unit axis k by angle radians (Rodrigues' formula).
func rotateAbout(v, k common.Vec3, angle float32) common.Vec3 {
	cos, sin := common.Cos(angle), common.Sin(angle)
	return v.Scale(cos).
		Add(k.Cross(v).Scale(sin)).
		Add(k.Scale(k.Dot(v) * (1 - cos)))
}

func anyPerpendicular(v common.Vec3) common.Vec3 {
	if math.Abs(float64(v[0])) < 0.9 {
		return common.V3(1, 0, 0).Cross(v)
	}
	return common.V3(0, 1, 0).Cross(v)
}
