package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

// loadGLTF decodes a .glb or .gltf file and converts the first primitive of
// its first mesh. External buffers and images resolve relative to the file.
// glTF texture coordinates already have a top-left origin.
func loadGLTF(fsys fs.FS, name string, o loadOptions) (*Mesh, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	defer f.Close()

	dirFS, err := subFS(fsys, path.Dir(name))
	if err != nil {
		return nil, err
	}
	doc := new(gltf.Document)
	if err := gltf.NewDecoderFS(f, dirFS).Decode(doc); err != nil {
		return nil, fmt.Errorf("gltf decode: %w", err)
	}

	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, errors.New("no geometry found")
	}
	gm := doc.Meshes[0]
	if ignored := countPrimitives(doc) - 1; ignored > 0 {
		core.Logger().Info("gltf: using first primitive only",
			"file", name, "mesh", gm.Name, "ignored", ignored)
	}

	meshName := gm.Name
	if meshName == "" {
		meshName = "mesh_0"
	}
	prim := gm.Primitives[0]
	m, err := loadGLTFPrimitive(doc, meshName, *prim)
	if err != nil {
		return nil, err
	}

	if !o.skipTextures {
		m.AlbedoTexture = loadBaseColorTexture(doc, dirFS, prim, o)
	}
	return m, nil
}

func countPrimitives(doc *gltf.Document) int {
	n := 0
	for _, gm := range doc.Meshes {
		n += len(gm.Primitives)
	}
	return n
}

// loadGLTFPrimitive converts one glTF mesh primitive into a scene.Mesh.
func loadGLTFPrimitive(doc *gltf.Document, name string, prim gltf.Primitive) (*Mesh, error) {
	// Positions, normals and texture coordinates are all required
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, errors.New("no POSITION attribute")
	}
	normIdx, ok := prim.Attributes["NORMAL"]
	if !ok {
		return nil, errors.New("no NORMAL attribute")
	}
	uvIdx, ok := prim.Attributes["TEXCOORD_0"]
	if !ok {
		return nil, errors.New("no TEXCOORD_0 attribute")
	}

	posAcc, err := accessor(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	normAcc, err := accessor(doc, normIdx)
	if err != nil {
		return nil, fmt.Errorf("normals: %w", err)
	}
	uvAcc, err := accessor(doc, uvIdx)
	if err != nil {
		return nil, fmt.Errorf("texture coordinates: %w", err)
	}

	positions, err := modeler.ReadPosition(doc, posAcc, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	normals, err := modeler.ReadNormal(doc, normAcc, nil)
	if err != nil {
		return nil, fmt.Errorf("normals: %w", err)
	}
	uvs, err := modeler.ReadTextureCoord(doc, uvAcc, nil)
	if err != nil {
		return nil, fmt.Errorf("texture coordinates: %w", err)
	}
	if len(normals) != len(positions) || len(uvs) != len(positions) {
		return nil, fmt.Errorf("attribute counts differ: %d positions, %d normals, %d texture coordinates",
			len(positions), len(normals), len(uvs))
	}

	verts := make([]core.Vertex, len(positions))
	for i, p := range positions {
		n := normals[i]
		verts[i] = core.Vertex{
			Position: math.NewVec3(p[0], p[1], p[2]),
			Normal:   math.NewVec3(n[0], n[1], n[2]),
			UV:       math.NewVec2(uvs[i][0], uvs[i][1]),
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		idxAcc, err := accessor(doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		indices, err = modeler.ReadIndices(doc, idxAcc, nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	indices, err = triangulate(prim.Mode, indices)
	if err != nil {
		return nil, err
	}
	return CreateMeshFromData(name, verts, indices), nil
}

// accessor returns accessor idx after checking that it and the buffer view
// behind it exist. The modeler indexes both without checks.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", idx, len(doc.Accessors))
	}
	acc := doc.Accessors[idx]
	if acc.BufferView != nil {
		if err := checkBufferView(doc, *acc.BufferView); err != nil {
			return nil, fmt.Errorf("accessor %d: %w", idx, err)
		}
	}
	return acc, nil
}

func checkBufferView(doc *gltf.Document, idx int) error {
	if idx < 0 || idx >= len(doc.BufferViews) {
		return fmt.Errorf("buffer view %d out of range (%d views)", idx, len(doc.BufferViews))
	}
	if b := doc.BufferViews[idx].Buffer; b < 0 || b >= len(doc.Buffers) {
		return fmt.Errorf("buffer view %d: buffer %d out of range (%d buffers)", idx, b, len(doc.Buffers))
	}
	return nil
}

// triangulate turns the index stream of a primitive into a triangle list.
func triangulate(mode gltf.PrimitiveMode, indices []uint32) ([]uint32, error) {
	switch mode {
	case gltf.PrimitiveTriangles:
		return indices, nil
	case gltf.PrimitiveTriangleStrip:
		if len(indices) < 3 {
			return nil, nil
		}
		out := make([]uint32, 0, (len(indices)-2)*3)
		for i := 0; i+2 < len(indices); i++ {
			// odd triangles swap their first two corners to keep the winding
			if i%2 == 0 {
				out = append(out, indices[i], indices[i+1], indices[i+2])
			} else {
				out = append(out, indices[i+1], indices[i], indices[i+2])
			}
		}
		return out, nil
	case gltf.PrimitiveTriangleFan:
		if len(indices) < 3 {
			return nil, nil
		}
		out := make([]uint32, 0, (len(indices)-2)*3)
		for i := 1; i+1 < len(indices); i++ {
			out = append(out, indices[0], indices[i], indices[i+1])
		}
		return out, nil
	}
	return nil, fmt.Errorf("primitive mode %d is not a triangle mode", mode)
}

// loadBaseColorTexture decodes the base colour texture of prim's material.
// Problems are logged and yield nil.
func loadBaseColorTexture(doc *gltf.Document, fsys fs.FS, prim *gltf.Primitive, o loadOptions) *Texture {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return nil
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorTexture == nil {
		return nil
	}
	idx := pbr.BaseColorTexture.Index
	if idx >= len(doc.Textures) || doc.Textures[idx].Source == nil {
		return nil
	}
	src := *doc.Textures[idx].Source
	if src >= len(doc.Images) {
		return nil
	}
	img := doc.Images[src]

	name := img.Name
	if name == "" {
		name = fmt.Sprintf("gltf_img_%d", src)
	}

	var raw []byte
	var err error
	switch {
	case img.BufferView != nil:
		// Binary GLB: image data lives in a buffer view
		if err = checkBufferView(doc, *img.BufferView); err == nil {
			raw, err = modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		}
	case img.IsEmbeddedResource():
		raw, err = img.MarshalData()
	case img.URI != "":
		uri, uerr := url.PathUnescape(img.URI)
		if uerr != nil {
			uri = img.URI
		}
		return loadMaterialTexture(fsys, path.Clean(uri), o)
	default:
		return nil
	}
	if err != nil {
		core.Logger().Warn("albedo texture skipped", "texture", name, "err", err)
		return nil
	}

	tex, err := DecodeTexture(name, bytes.NewReader(raw), o.maxTextureSize)
	if err != nil {
		core.Logger().Warn("albedo texture skipped", "texture", name, "err", err)
		return nil
	}
	return tex
}
