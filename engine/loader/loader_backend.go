package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-raster/engine/model"
)

// loaderBackend defines the generic interface for loading meshes from files or streams.
// Concrete implementations (e.g., objLoaderBackend) handle format-specific details and always
// produce a flat triangle list.
type loaderBackend interface {
	// Load performs a mesh import from the given source.
	//
	// Parameters:
	//   - path: the source to load
	//
	// Returns:
	//   - *model.ImportedMesh: the imported mesh data
	//   - error: error if loading fails
	Load(path string) (*model.ImportedMesh, error)

	// LoadReader imports a mesh from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing mesh data
	//
	// Returns:
	//   - *model.ImportedMesh: the imported mesh data
	//   - error: error if loading fails
	LoadReader(r io.Reader) (*model.ImportedMesh, error)
}
