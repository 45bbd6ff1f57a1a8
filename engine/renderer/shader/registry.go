package shader

import (
	"fmt"
	"sync"
)

// registry is the implementation of the Registry interface.
type registry struct {
	mu      *sync.RWMutex
	shaders map[Kind]Shader
}

// Registry maps each Kind to the Shader that draws it. Lookups of unregistered kinds fail with
// ErrUnknownShader, so a bad selector is caught when a scene is built rather than mid-frame.
type Registry interface {
	// Get retrieves the shader registered for kind.
	//
	// Parameters:
	//   - kind: the kind to look up
	//
	// Returns:
	//   - Shader: the registered shader
	//   - error: ErrUnknownShader if nothing is registered for kind
	Get(kind Kind) (Shader, error)

	// Register replaces the shader for kind. Only enumerated kinds may be registered.
	//
	// Parameters:
	//   - kind: the kind to register
	//   - s: the shader to use for kind
	//
	// Returns:
	//   - error: ErrUnknownShader if kind is outside the enumeration, or an error if s is nil
	Register(kind Kind, s Shader) error

	// Kinds returns the registered kinds in selector order.
	Kinds() []Kind
}

var _ Registry = &registry{}

// NewRegistry creates a Registry. Unless WithoutDefaults is given, every Kind starts out mapped
// to its built-in shader.
//
// Parameters:
//   - options: functional options to configure the registry
//
// Returns:
//   - Registry: the configured registry
func NewRegistry(options ...RegistryBuilderOption) Registry {
	cfg := &registryConfig{defaults: true, overrides: make(map[Kind]Shader)}
	for _, opt := range options {
		opt(cfg)
	}

	r := &registry{
		mu:      &sync.RWMutex{},
		shaders: make(map[Kind]Shader, kindCount),
	}
	if cfg.defaults {
		for k, s := range builtins {
			r.shaders[Kind(k)] = s
		}
	}
	for k, s := range cfg.overrides {
		if k.Valid() && s != nil {
			r.shaders[k] = s
		}
	}
	return r
}

func (r *registry) Get(kind Kind) (Shader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.shaders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownShader, kind)
	}
	return s, nil
}

func (r *registry) Register(kind Kind, s Shader) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownShader, kind)
	}
	if s == nil {
		return fmt.Errorf("nil shader for %v", kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shaders[kind] = s
	return nil
}

func (r *registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.shaders))
	for _, k := range Kinds() {
		if _, ok := r.shaders[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
