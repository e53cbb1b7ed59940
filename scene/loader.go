package scene

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"pbr-viewer/core"
)

// LoadOption configures LoadMesh.
type LoadOption func(*loadOptions)

type loadOptions struct {
	maxTextureSize int
	skipTextures   bool
}

// WithMaxTextureSize downscales textures referenced by the mesh's material
// so that neither edge exceeds n pixels. n <= 0 disables the limit.
func WithMaxTextureSize(n int) LoadOption {
	return func(o *loadOptions) {
		o.maxTextureSize = n
	}
}

// WithoutTextures skips decoding the material's albedo texture.
func WithoutTextures() LoadOption {
	return func(o *loadOptions) {
		o.skipTextures = true
	}
}

// LoadMesh imports the first sub-mesh of the model file name inside fsys.
// Supported formats are glTF 2.0 (.gltf, .glb) and Wavefront OBJ (.obj).
// Polygons are triangulated and texture coordinates use a top-left origin.
//
// The result is either a valid Mesh or nil with an error wrapping
// ErrMeshLoad; a partially loaded mesh is never returned.
func LoadMesh(fsys fs.FS, name string, opts ...LoadOption) (*Mesh, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		m   *Mesh
		err error
	)
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".obj":
		m, err = loadOBJ(fsys, name, o)
	case ".gltf", ".glb":
		m, err = loadGLTF(fsys, name, o)
	default:
		err = fmt.Errorf("unsupported format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMeshLoad, name, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	core.Logger().Info("mesh loaded",
		"name", name,
		"mesh", m.Name,
		"vertices", len(m.Vertices),
		"triangles", m.TriangleCount(),
		"albedo", m.AlbedoTexture != nil,
		"bounds_min", m.Bounds.Min,
		"bounds_max", m.Bounds.Max,
		"center", m.Bounds.Center())
	return m, nil
}

// LoadMeshFile is LoadMesh for a path on the local file system. Files the
// model references are resolved relative to its directory.
func LoadMeshFile(path string, opts ...LoadOption) (*Mesh, error) {
	dir, file := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	return LoadMesh(os.DirFS(dir), file, opts...)
}

// subFS roots fsys at dir so that relative references inside a model
// resolve against the model's own directory.
func subFS(fsys fs.FS, dir string) (fs.FS, error) {
	if dir == "." || dir == "" {
		return fsys, nil
	}
	return fs.Sub(fsys, dir)
}

func loadMaterialTexture(fsys fs.FS, name string, o loadOptions) *Texture {
	tex, err := LoadTextureFS(fsys, name, o.maxTextureSize)
	if err != nil {
		core.Logger().Warn("albedo texture skipped", "texture", name, "err", err)
		return nil
	}
	return tex
}
