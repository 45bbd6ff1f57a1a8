package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
)

// BuiltinPrefix marks a mesh source that is generated procedurally instead of read from disk,
// for example "builtin:sphere".
const BuiltinPrefix = "builtin:"

var (
	// ErrEmptyMesh is returned when a source parses successfully but yields no triangles.
	ErrEmptyMesh = errors.New("mesh has no triangles")

	// ErrUnsupportedFormat is returned when no backend can handle a mesh source.
	ErrUnsupportedFormat = errors.New("unsupported model format")
)

// LoaderBackendType identifies the mesh file format backend used for on-disk sources.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ loader backend.
	BackendTypeOBJ LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]model.Model

	backend loaderBackend
	builtin *builtinLoaderBackendImpl

	workers int

	// pool runs LoadAll tasks. It is created once in NewLoader and shared by every call.
	pool worker.DynamicWorkerPool
}

// Loader defines the public-facing interface for loading and caching meshes.
// It abstracts the file format behind a backend, generates the builtin meshes on demand
// and manages a cache of previously loaded models keyed by source.
type Loader interface {
	// Load imports a mesh and caches the result.
	// If the mesh is already cached (by source), the cached version is returned.
	// Sources starting with BuiltinPrefix are generated; other sources are selected by file
	// extension (.obj → OBJ backend).
	//
	// Parameters:
	//   - path: the file path or builtin name of the mesh
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a mesh from a reader stream using the configured backend and caches
	// it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing mesh data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (model.Model, error)

	// LoadAll loads every source in parallel on a bounded worker pool and blocks until all
	// of them have finished. Every failure is reported; a failed source is absent from the
	// result.
	//
	// Parameters:
	//   - ctx: cancels sources that have not started loading yet
	//   - paths: the mesh sources to load
	//
	// Returns:
	//   - map[string]model.Model: the models that loaded, keyed by source
	//   - error: the joined load errors, nil when every source loaded
	LoadAll(ctx context.Context, paths []string) (map[string]model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use for on-disk sources (e.g., BackendTypeOBJ)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		modelCache: make(map[string]model.Model),
		builtin:    newBuiltinLoaderBackend(),
		workers:    runtime.NumCPU(),
	}

	switch backendType {
	case BackendTypeOBJ:
		l.backend = newObjLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}

	// Initialize the pool after options so WithWorkers can override the default.
	l.pool = worker.NewDynamicWorkerPool(max(l.workers, 1), 256, 1*time.Second)
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return l.store(path, imported)
}

func (l *loader) LoadReader(name string, r io.Reader) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	if l.backend == nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, ErrUnsupportedFormat)
	}
	imported, err := l.backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	return l.store(name, imported)
}

func (l *loader) LoadAll(ctx context.Context, paths []string) (map[string]model.Model, error) {
	unique := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			unique = append(unique, p)
		}
	}

	results := make([]model.Model, len(unique))
	errs := make([]error, len(unique))

	var wg sync.WaitGroup
	for i, p := range unique {
		wg.Add(1)
		id, path := i, p
		l.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				if err := ctx.Err(); err != nil {
					errs[id] = fmt.Errorf("failed to load %s: %w", path, err)
					return nil, errs[id]
				}
				start := time.Now()
				m, err := l.Load(path)
				if err != nil {
					errs[id] = err
					return nil, err
				}
				common.Logger().Debug("mesh loaded",
					"source", path,
					"triangles", m.TriangleCount(),
					"elapsed", time.Since(start))
				results[id] = m
				return m, nil
			},
		})
	}
	wg.Wait()

	loaded := make(map[string]model.Model, len(unique))
	for i, m := range results {
		if m != nil {
			loaded[unique[i]] = m
		}
	}
	return loaded, errors.Join(errs...)
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// resolveBackend selects an appropriate loader backend based on the builtin prefix or the file
// extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	if strings.HasPrefix(path, BuiltinPrefix) {
		return l.builtin, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		if l.backend != nil {
			return l.backend, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// store converts an imported mesh into a Model and caches it. If another goroutine cached the
// same key first, that model wins so every caller observes one instance per key.
func (l *loader) store(key string, imported *model.ImportedMesh) (model.Model, error) {
	if imported == nil || len(imported.Vertices) < 3 {
		return nil, fmt.Errorf("failed to load %s: %w", key, ErrEmptyMesh)
	}
	if imported.Name == "" {
		imported.Name = key
	}
	m := model.NewModel(*imported)

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.modelCache[key]; ok {
		return cached, nil
	}
	l.modelCache[key] = m
	return m, nil
}
