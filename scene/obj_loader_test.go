package scene

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"
)

const quadOBJ = `# unit quad
mtllib quad.mtl
o Quad
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl painted
f 1/1/1 2/2/1 3/3/1 4/4/1
`

const quadMTL = `newmtl other
map_Kd other.png

newmtl painted
Kd 1 1 1
map_Kd -s 1 1 1 albedo.png
`

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadOBJQuad(t *testing.T) {
	fsys := fstest.MapFS{
		"models/quad.obj":   {Data: []byte(quadOBJ)},
		"models/quad.mtl":   {Data: []byte(quadMTL)},
		"models/albedo.png": {Data: pngBytes(t, 4, 2)},
	}
	m, err := LoadMesh(fsys, "models/quad.obj")
	if err != nil {
		t.Fatalf("LoadMesh: unexpected error %v", err)
	}
	if m.Name != "Quad" {
		t.Errorf("Name: expected Quad, got %q", m.Name)
	}
	if len(m.Vertices) != 4 {
		t.Errorf("Vertices: expected 4, got %d", len(m.Vertices))
	}
	// one quad fan-triangulates into two triangles
	if len(m.Indices) != 6 {
		t.Fatalf("Indices: expected 6, got %d", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Errorf("Indices[%d]: %d out of range", i, idx)
		}
	}
	// vt 0 0 is the bottom-left corner and becomes v = 1
	if uv := m.Vertices[0].UV; uv.X != 0 || uv.Y != 1 {
		t.Errorf("UV[0]: expected (0, 1), got %v", uv)
	}
	if uv := m.Vertices[2].UV; uv.X != 1 || uv.Y != 0 {
		t.Errorf("UV[2]: expected (1, 0), got %v", uv)
	}
	if m.AlbedoTexture == nil {
		t.Fatal("AlbedoTexture: expected texture from map_Kd")
	}
	if m.AlbedoTexture.Width != 4 || m.AlbedoTexture.Height != 2 {
		t.Errorf("AlbedoTexture: expected 4x2, got %dx%d", m.AlbedoTexture.Width, m.AlbedoTexture.Height)
	}
	if m.Bounds.Min.X != -1 || m.Bounds.Max.Y != 1 {
		t.Errorf("Bounds: got %v", m.Bounds)
	}
}

func TestLoadOBJTriangleCount(t *testing.T) {
	// F faces produce exactly 3F indices
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1
f 1/1/1 3/1/1 4/1/1
f 2/1/1 3/1/1 4/1/1
`
	m, err := LoadMesh(fstest.MapFS{"m.obj": {Data: []byte(src)}}, "m.obj")
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Indices) != 9 {
		t.Errorf("Indices: expected 9, got %d", len(m.Indices))
	}
	if m.TriangleCount() != 3 {
		t.Errorf("TriangleCount: expected 3, got %d", m.TriangleCount())
	}
	// shared corners are deduplicated
	if len(m.Vertices) != 4 {
		t.Errorf("Vertices: expected 4, got %d", len(m.Vertices))
	}
}

func TestLoadOBJRelativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f -3/-3/-1 -2/-2/-1 -1/-1/-1
`
	m, err := LoadMesh(fstest.MapFS{"rel.obj": {Data: []byte(src)}}, "rel.obj")
	if err != nil {
		t.Fatal(err)
	}
	if p := m.Vertices[m.Indices[1]].Position; p.X != 1 || p.Y != 0 {
		t.Errorf("Position: expected (1, 0, 0), got %v", p)
	}
}

func TestLoadOBJFirstObjectOnly(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
o First
f 1/1/1 2/1/1 3/1/1
o Second
f 1/1/1 3/1/1 2/1/1
f 1/1/1 2/1/1 3/1/1
`
	m, err := LoadMesh(fstest.MapFS{"two.obj": {Data: []byte(src)}}, "two.obj")
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "First" {
		t.Errorf("Name: expected First, got %q", m.Name)
	}
	if len(m.Indices) != 3 {
		t.Errorf("Indices: expected 3, got %d", len(m.Indices))
	}
}

func TestLoadOBJFailures(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing normals", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf 1/1 2/1 3/1\n"},
		{"missing uvs", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\n"},
		{"position out of range", "v 0 0 0\nv 1 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 9/1/1\n"},
		{"relative index too far back", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf -1/1/1 -2/1/1 -3/1/1\n"},
		{"zero index", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 0/1/1 1/1/1 1/1/1\n"},
		{"bad float", "v 0 zero 0\n"},
		{"degenerate face", "v 0 0 0\nf 1 1\n"},
		{"no faces", "v 0 0 0\nv 1 0 0\nv 0 1 0\n"},
		{"empty", ""},
	}
	for _, tt := range tests {
		m, err := LoadMesh(fstest.MapFS{"bad.obj": {Data: []byte(tt.src)}}, "bad.obj")
		if m != nil {
			t.Errorf("%s: expected nil mesh, got %d vertices", tt.name, len(m.Vertices))
		}
		if !errors.Is(err, ErrMeshLoad) {
			t.Errorf("%s: expected ErrMeshLoad, got %v", tt.name, err)
		}
	}
}

func TestLoadMeshNonexistent(t *testing.T) {
	m, err := LoadMesh(fstest.MapFS{}, "missing.obj")
	if m != nil {
		t.Error("LoadMesh: expected nil mesh")
	}
	if !errors.Is(err, ErrMeshLoad) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadMesh: expected ErrMeshLoad wrapping ErrNotExist, got %v", err)
	}

	m, err = LoadMeshFile(filepath.Join(t.TempDir(), "nope.gltf"))
	if m != nil || !errors.Is(err, ErrMeshLoad) {
		t.Errorf("LoadMeshFile: expected nil, ErrMeshLoad; got %v, %v", m, err)
	}
}

func TestLoadMeshUnsupportedFormat(t *testing.T) {
	fsys := fstest.MapFS{"model.fbx": {Data: []byte("binary")}}
	if _, err := LoadMesh(fsys, "model.fbx"); !errors.Is(err, ErrMeshLoad) {
		t.Errorf("LoadMesh: expected ErrMeshLoad, got %v", err)
	}
}

func TestLoadOBJWithoutTextures(t *testing.T) {
	fsys := fstest.MapFS{
		"quad.obj":   {Data: []byte(quadOBJ)},
		"quad.mtl":   {Data: []byte(quadMTL)},
		"albedo.png": {Data: pngBytes(t, 2, 2)},
	}
	m, err := LoadMesh(fsys, "quad.obj", WithoutTextures())
	if err != nil {
		t.Fatal(err)
	}
	if m.AlbedoTexture != nil {
		t.Error("AlbedoTexture: expected nil with WithoutTextures")
	}
}

func TestLoadOBJBrokenTextureIsNotFatal(t *testing.T) {
	fsys := fstest.MapFS{
		"quad.obj":   {Data: []byte(quadOBJ)},
		"quad.mtl":   {Data: []byte(quadMTL)},
		"albedo.png": {Data: []byte("not a png")},
	}
	m, err := LoadMesh(fsys, "quad.obj")
	if err != nil {
		t.Fatalf("LoadMesh: unexpected error %v", err)
	}
	if m.AlbedoTexture != nil {
		t.Error("AlbedoTexture: expected nil for undecodable image")
	}
}

func TestLoadMeshFile(t *testing.T) {
	dir := t.TempDir()
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 3/1/1\n"
	p := filepath.Join(dir, "tri.obj")
	if err := writeFile(p, []byte(src)); err != nil {
		t.Fatal(err)
	}
	m, err := LoadMeshFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Indices) != 3 {
		t.Errorf("Indices: expected 3, got %d", len(m.Indices))
	}
}
