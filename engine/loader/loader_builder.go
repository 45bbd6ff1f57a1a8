package loader

import (
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}

// WithWorkers sets how many goroutines LoadAll may use. Defaults to runtime.NumCPU().
//
// Parameters:
//   - n: the worker count, values below 1 are treated as 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithSphereDetail sets the tessellation of the builtin sphere.
//
// Parameters:
//   - stacks: latitude bands, at least 2
//   - slices: longitude segments, at least 3
//
// Returns:
//   - LoaderBuilderOption: a function that applies the sphere detail to a loader
func WithSphereDetail(stacks, slices int) LoaderBuilderOption {
	return func(l *loader) {
		l.builtin.stacks = max(stacks, 2)
		l.builtin.slices = max(slices, 3)
	}
}

// WithRingSegments sets how many segments the builtin ring is divided into.
//
// Parameters:
//   - n: the segment count, at least 3
//
// Returns:
//   - LoaderBuilderOption: a function that applies the segment count to a loader
func WithRingSegments(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.builtin.ringSegments = max(n, 3)
	}
}
