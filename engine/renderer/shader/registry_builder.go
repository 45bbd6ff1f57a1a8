package shader

type registryConfig struct {
	defaults  bool
	overrides map[Kind]Shader
}

// RegistryBuilderOption is a functional option applied during construction via NewRegistry.
type RegistryBuilderOption func(*registryConfig)

// WithShader maps kind to s, replacing the built-in shader. Kinds outside the enumeration and nil
// shaders are ignored.
//
// Parameters:
//   - kind: the kind to override
//   - s: the shader to use for kind
//
// Returns:
//   - RegistryBuilderOption: a function that applies the override to the registry
func WithShader(kind Kind, s Shader) RegistryBuilderOption {
	return func(c *registryConfig) {
		c.overrides[kind] = s
	}
}

// WithoutDefaults starts the registry empty instead of filled with the built-in shaders.
func WithoutDefaults() RegistryBuilderOption {
	return func(c *registryConfig) {
		c.defaults = false
	}
}
