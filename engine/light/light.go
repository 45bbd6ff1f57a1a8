package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-raster/common"
)

// DefaultDirection travels along -Z, so surfaces facing a camera on +Z are fully lit.
var DefaultDirection = common.V3(0, 0, -1)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu        *sync.Mutex
	direction common.Vec3
}

// Light is a directional light: it has no position, only the direction its rays travel. Every
// fragment sees it from the same angle and there is no attenuation.
type Light interface {
	// Direction returns the normalized direction the light travels.
	//
	// Returns:
	//   - common.Vec3: the travel direction
	Direction() common.Vec3

	// ToLight returns the normalized direction from a surface toward the light, the vector
	// fragment intensity is measured against.
	//
	// Returns:
	//   - common.Vec3: the negated travel direction
	ToLight() common.Vec3

	// SetDirection changes the travel direction. The zero vector and non-finite vectors are
	// ignored.
	//
	// Parameters:
	//   - dir: the new travel direction, normalized before storing
	SetDirection(dir common.Vec3)
}

var _ Light = &lightImpl{}

// NewLight creates a directional Light.
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		direction: DefaultDirection,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightImpl) Direction() common.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.direction
}

func (l *lightImpl) ToLight() common.Vec3 {
	return l.Direction().Scale(-1)
}

func (l *lightImpl) SetDirection(dir common.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setDirection(dir)
}

// setDirection stores dir normalized. Caller must hold the mutex.
func (l *lightImpl) setDirection(dir common.Vec3) {
	if !dir.IsFinite() || dir.Length() == 0 {
		return
	}
	l.direction = dir.Normalize()
}
