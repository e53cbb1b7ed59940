package scene

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/qmuntal/gltf"
)

// triangleGLTF returns a .gltf document with one triangle whose buffer is
// embedded as a data URI. attributes and extra are spliced into the
// primitive object verbatim.
func triangleGLTF(attributes, extra string) []byte {
	var buf bytes.Buffer
	w := func(v ...float32) {
		for _, f := range v {
			binary.Write(&buf, binary.LittleEndian, f)
		}
	}
	w(0, 0, 0, 1, 0, 0, 0, 1, 0) // positions
	w(0, 0, 1, 0, 0, 1, 0, 0, 1) // normals
	w(0, 0, 1, 0, 0, 1)          // texcoords
	binary.Write(&buf, binary.LittleEndian, []uint16{0, 1, 2, 0})

	data := base64.StdEncoding.EncodeToString(buf.Bytes())
	return []byte(fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 36},
    {"buffer": 0, "byteOffset": 72, "byteLength": 24},
    {"buffer": 0, "byteOffset": 96, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 2, "componentType": 5126, "count": 3, "type": "VEC2"},
    {"bufferView": 3, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "meshes": [{"name": "tri", "primitives": [{"attributes": {%s}%s}]}]
}`, buf.Len(), data, attributes, extra))
}

const allAttributes = `"POSITION": 0, "NORMAL": 1, "TEXCOORD_0": 2`

func TestLoadGLTFTriangle(t *testing.T) {
	fsys := fstest.MapFS{"tri.gltf": {Data: triangleGLTF(allAttributes, `, "indices": 3`)}}
	m, err := LoadMesh(fsys, "tri.gltf")
	if err != nil {
		t.Fatalf("LoadMesh: unexpected error %v", err)
	}
	if m.Name != "tri" {
		t.Errorf("Name: expected tri, got %q", m.Name)
	}
	if len(m.Vertices) != 3 || len(m.Indices) != 3 {
		t.Fatalf("geometry: expected 3/3, got %d/%d", len(m.Vertices), len(m.Indices))
	}
	if p := m.Vertices[1].Position; p.X != 1 || p.Y != 0 || p.Z != 0 {
		t.Errorf("Position[1]: expected (1, 0, 0), got %v", p)
	}
	if n := m.Vertices[2].Normal; n.Z != 1 {
		t.Errorf("Normal[2]: expected +Z, got %v", n)
	}
	// glTF already uses a top-left origin: no flip
	if uv := m.Vertices[2].UV; uv.X != 0 || uv.Y != 1 {
		t.Errorf("UV[2]: expected (0, 1), got %v", uv)
	}
}

func TestLoadGLTFWithoutIndices(t *testing.T) {
	fsys := fstest.MapFS{"tri.gltf": {Data: triangleGLTF(allAttributes, "")}}
	m, err := LoadMesh(fsys, "tri.gltf")
	if err != nil {
		t.Fatal(err)
	}
	for i, idx := range m.Indices {
		if idx != uint32(i) {
			t.Errorf("Indices[%d]: expected %d, got %d", i, i, idx)
		}
	}
}

func TestLoadGLTFFailures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"missing normals", triangleGLTF(`"POSITION": 0, "TEXCOORD_0": 2`, `, "indices": 3`)},
		{"missing texcoords", triangleGLTF(`"POSITION": 0, "NORMAL": 1`, `, "indices": 3`)},
		{"points", triangleGLTF(allAttributes, `, "indices": 3, "mode": 0`)},
		{"lines", triangleGLTF(allAttributes, `, "mode": 1`)},
		{"not json", []byte("{")},
		{"position accessor out of range", triangleGLTF(`"POSITION": 9, "NORMAL": 1, "TEXCOORD_0": 2`, `, "indices": 3`)},
		{"normal accessor out of range", triangleGLTF(`"POSITION": 0, "NORMAL": 9, "TEXCOORD_0": 2`, `, "indices": 3`)},
		{"texcoord accessor out of range", triangleGLTF(`"POSITION": 0, "NORMAL": 1, "TEXCOORD_0": 9`, `, "indices": 3`)},
		{"index accessor out of range", triangleGLTF(allAttributes, `, "indices": 9`)},
	}
	for _, tt := range tests {
		m, err := LoadMesh(fstest.MapFS{"bad.gltf": {Data: tt.data}}, "bad.gltf")
		if m != nil {
			t.Errorf("%s: expected nil mesh", tt.name)
		}
		if !errors.Is(err, ErrMeshLoad) {
			t.Errorf("%s: expected ErrMeshLoad, got %v", tt.name, err)
		}
	}
}

func TestLoadGLTFPrimitiveMissingBufferView(t *testing.T) {
	doc := &gltf.Document{
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(5), ComponentType: gltf.ComponentFloat, Count: 3, Type: gltf.AccessorVec3},
		},
	}
	prim := gltf.Primitive{Attributes: map[string]int{"POSITION": 0, "NORMAL": 0, "TEXCOORD_0": 0}}
	if _, err := loadGLTFPrimitive(doc, "broken", prim); err == nil {
		t.Error("loadGLTFPrimitive: expected error for a missing buffer view")
	}
}

func TestLoadBaseColorTextureMissingBufferView(t *testing.T) {
	doc := &gltf.Document{
		Materials: []*gltf.Material{{
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorTexture: &gltf.TextureInfo{Index: 0}},
		}},
		Textures: []*gltf.Texture{{Source: gltf.Index(0)}},
		Images:   []*gltf.Image{{BufferView: gltf.Index(3)}},
	}
	prim := &gltf.Primitive{Material: gltf.Index(0)}
	if tex := loadBaseColorTexture(doc, fstest.MapFS{}, prim, loadOptions{}); tex != nil {
		t.Errorf("loadBaseColorTexture: expected nil, got %+v", tex)
	}
}

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name string
		mode gltf.PrimitiveMode
		in   []uint32
		want []uint32
	}{
		{"list", gltf.PrimitiveTriangles, []uint32{0, 1, 2}, []uint32{0, 1, 2}},
		{"strip", gltf.PrimitiveTriangleStrip, []uint32{0, 1, 2, 3}, []uint32{0, 1, 2, 2, 1, 3}},
		{"fan", gltf.PrimitiveTriangleFan, []uint32{0, 1, 2, 3}, []uint32{0, 1, 2, 0, 2, 3}},
		{"short strip", gltf.PrimitiveTriangleStrip, []uint32{0, 1}, nil},
	}
	for _, tt := range tests {
		got, err := triangulate(tt.mode, tt.in)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}

	if _, err := triangulate(gltf.PrimitiveLineStrip, []uint32{0, 1}); err == nil {
		t.Error("line strip: expected error")
	}
}
