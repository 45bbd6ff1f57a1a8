package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
)

// objLoaderBackendImpl is the implementation of objLoaderBackend.
type objLoaderBackendImpl struct{}

// objLoaderBackend is a loaderBackend implementation for Wavefront OBJ files.
// It understands v, vt, vn and f statements, fan-triangulates polygons and ignores
// grouping, smoothing and material statements.
type objLoaderBackend interface {
	loaderBackend
}

var _ objLoaderBackend = &objLoaderBackendImpl{}

// newObjLoaderBackend creates a new OBJ loader backend.
//
// Returns:
//   - objLoaderBackend: the loader backend for OBJ files
func newObjLoaderBackend() objLoaderBackend {
	return &objLoaderBackendImpl{}
}

func (b *objLoaderBackendImpl) Load(path string) (*model.ImportedMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mesh, err := b.LoadReader(f)
	if err != nil {
		return nil, err
	}
	mesh.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return mesh, nil
}

func (b *objLoaderBackendImpl) LoadReader(r io.Reader) (*model.ImportedMesh, error) {
	var (
		positions []common.Vec3
		texCoords []common.Vec2
		normals   []common.Vec3
		vertices  []model.Vertex
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", line, err)
			}
			positions = append(positions, common.V3(v[0], v[1], v[2]))
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", line, err)
			}
			texCoords = append(texCoords, common.Vec2{v[0], v[1]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", line, err)
			}
			normals = append(normals, common.V3(v[0], v[1], v[2]).Normalize())
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", line, len(fields)-1)
			}
			corners := make([]model.Vertex, 0, len(fields)-1)
			hasNormals := true
			for _, ref := range fields[1:] {
				v, hasNormal, err := resolveCorner(ref, positions, texCoords, normals)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				hasNormals = hasNormals && hasNormal
				corners = append(corners, v)
			}
			if !hasNormals {
				faceNormal := corners[1].Position.Sub(corners[0].Position).
					Cross(corners[2].Position.Sub(corners[0].Position)).Normalize()
				for i := range corners {
					corners[i].Normal = faceNormal
				}
			}
			// fan around the first corner
			for i := 1; i+1 < len(corners); i++ {
				vertices = append(vertices, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(vertices) == 0 {
		return nil, ErrEmptyMesh
	}

	mesh := &model.ImportedMesh{Vertices: vertices}
	mesh.ComputeBounds()
	return mesh, nil
}

// parseFloats parses at least n leading fields as float32 values. Extra fields (such as the
// optional w of a position) are ignored.
func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// resolveCorner turns a face reference of the form p, p/t, p//n or p/t/n into a vertex.
//
// Parameters:
//   - ref: the face reference
//   - positions: the positions declared so far
//   - texCoords: the texture coordinates declared so far
//   - normals: the normals declared so far
//
// Returns:
//   - model.Vertex: the resolved vertex
//   - bool: whether the reference carried a normal
//   - error: error if an index is malformed or out of range
func resolveCorner(ref string, positions []common.Vec3, texCoords []common.Vec2, normals []common.Vec3) (model.Vertex, bool, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return model.Vertex{}, false, fmt.Errorf("malformed face reference %q", ref)
	}

	pi, err := resolveIndex(parts[0], len(positions))
	if err != nil {
		return model.Vertex{}, false, fmt.Errorf("position in %q: %w", ref, err)
	}
	v := model.NewVertex(positions[pi], common.Vec3{}, common.Vec2{})

	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(parts[1], len(texCoords))
		if err != nil {
			return model.Vertex{}, false, fmt.Errorf("texture coordinate in %q: %w", ref, err)
		}
		v.TexCoords = texCoords[ti]
	}

	hasNormal := false
	if len(parts) > 2 && parts[2] != "" {
		ni, err := resolveIndex(parts[2], len(normals))
		if err != nil {
			return model.Vertex{}, false, fmt.Errorf("normal in %q: %w", ref, err)
		}
		v.Normal = normals[ni]
		hasNormal = true
	}
	return v, hasNormal, nil
}

// resolveIndex converts a 1-based OBJ index into a 0-based slice index. Negative indices count
// back from the most recently declared element.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range (%d declared)", i, n)
	}
}
