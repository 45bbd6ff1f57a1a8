package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer/shader"
)

type gameObject struct {
	id      uint64
	enabled atomic.Bool

	mesh   string
	shader shader.Kind

	position      common.Vec3
	scale         float32
	rotation      common.Vec3
	rotationSpeed common.Vec3

	orbitRadius float32
	orbitSpeed  float32
	faceOrbit   bool
}

// GameObject is one entry of a scene's draw list: a mesh, the shader that colors it, and a
// transform that is a pure function of the frame counter.
//
// An object may spin (RotationSpeed radians per frame on each axis) and may orbit its Position
// in the XZ plane at OrbitRadius, advancing OrbitSpeed radians per frame. With FaceOrbit set the
// object also turns about Y by its orbit angle, so the same side always faces the pivot.
type GameObject interface {
	// ID returns the object's identifier within its scene.
	ID() uint64

	// Enabled returns whether this object is drawn.
	Enabled() bool

	// Mesh returns the name of the mesh this object draws.
	Mesh() string

	// Shader returns the shader kind that colors this object.
	Shader() shader.Kind

	// Position returns the orbit pivot, or the object's position when it does not orbit.
	Position() common.Vec3

	// Scale returns the uniform scale factor.
	Scale() float32

	// Rotation returns the Euler rotation at frame zero, in radians.
	Rotation() common.Vec3

	// RotationSpeed returns the Euler rotation added per frame, in radians.
	RotationSpeed() common.Vec3

	// Orbit returns the orbit radius and angular speed in radians per frame.
	Orbit() (radius, speed float32)

	// FaceOrbit returns whether the object turns with its orbit angle.
	FaceOrbit() bool

	// ModelMatrix evaluates the object's transform at the given frame.
	//
	// Parameters:
	//   - time: the frame counter
	//
	// Returns:
	//   - common.Mat4: translation * scale * rotation for that frame
	ModelMatrix(time uint32) common.Mat4

	// SetID sets the object's identifier.
	SetID(id uint64)

	// SetEnabled sets whether this object is drawn.
	SetEnabled(enabled bool)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a GameObject drawing mesh with the given shader kind.
// By default it sits at the origin with unit scale, no rotation and no orbit.
//
// Parameters:
//   - mesh: the name of the mesh to draw
//   - kind: the shader kind that colors the mesh
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(mesh string, kind shader.Kind, options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mesh:   mesh,
		shader: kind,
		scale:  1,
	}
	obj.enabled.Store(true)
	for _, opt := range options {
		opt(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Mesh() string {
	return g.mesh
}

func (g *gameObject) Shader() shader.Kind {
	return g.shader
}

func (g *gameObject) Position() common.Vec3 {
	return g.position
}

func (g *gameObject) Scale() float32 {
	return g.scale
}

func (g *gameObject) Rotation() common.Vec3 {
	return g.rotation
}

func (g *gameObject) RotationSpeed() common.Vec3 {
	return g.rotationSpeed
}

func (g *gameObject) Orbit() (radius, speed float32) {
	return g.orbitRadius, g.orbitSpeed
}

func (g *gameObject) FaceOrbit() bool {
	return g.faceOrbit
}

func (g *gameObject) ModelMatrix(time uint32) common.Mat4 {
	t := float32(time)

	translation := g.position
	rotation := g.rotation.Add(g.rotationSpeed.Scale(t))

	if g.orbitRadius != 0 || g.orbitSpeed != 0 {
		angle := t * g.orbitSpeed
		translation = translation.Add(common.V3(
			g.orbitRadius*common.Cos(angle),
			0,
			g.orbitRadius*common.Sin(angle),
		))
		if g.faceOrbit {
			rotation[1] += angle
		}
	}
	return common.ModelMatrix(translation, g.scale, rotation)
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}
