package scene

import (
	"errors"
	"fmt"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

// ErrMeshLoad is returned, wrapped, for every mesh that cannot be used.
var ErrMeshLoad = errors.New("mesh load failed")

// Mesh holds the CPU-side geometry of one drawable sub-mesh. Three
// consecutive indices form one triangle. A Mesh returned by this package is
// valid and is not modified afterwards.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32

	// AlbedoTexture is the base colour image named by the mesh's material,
	// or nil.
	AlbedoTexture *Texture

	Bounds AABB
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// Center returns the midpoint of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// CreateMeshFromData builds a Mesh and computes its bounds. The result is
// not validated; see Validate.
func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if len(vertices) > 0 {
		m.Bounds = computeLocalAABB(vertices)
	}
	return m
}

// TriangleCount is len(Indices)/3.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Validate checks that m can be uploaded and drawn as a triangle list.
func (m *Mesh) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil mesh", ErrMeshLoad)
	}
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return fmt.Errorf("%w: %q has no geometry", ErrMeshLoad, m.Name)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %q index count %d is not a multiple of 3", ErrMeshLoad, m.Name, len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: %q index %d at %d out of range [0, %d)", ErrMeshLoad, m.Name, idx, i, n)
		}
	}
	return nil
}

// computeLocalAABB returns the tight AABB of the given vertex positions.
func computeLocalAABB(vertices []core.Vertex) AABB {
	lo := vertices[0].Position
	hi := vertices[0].Position
	for _, v := range vertices[1:] {
		p := v.Position
		lo = math.NewVec3(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
		hi = math.NewVec3(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
	}
	return AABB{Min: lo, Max: hi}
}

// CreateCube returns an axis-aligned cube centred on the origin with one
// quad per face, so every face has its own normal and full 0..1 UVs.
func CreateCube(size float32) *Mesh {
	s := size / 2
	faces := []struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}{
		{math.NewVec3(0, 0, 1), [4]math.Vec3{{X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s}}},
		{math.NewVec3(0, 0, -1), [4]math.Vec3{{X: s, Y: -s, Z: -s}, {X: -s, Y: -s, Z: -s}, {X: -s, Y: s, Z: -s}, {X: s, Y: s, Z: -s}}},
		{math.NewVec3(0, 1, 0), [4]math.Vec3{{X: -s, Y: s, Z: s}, {X: s, Y: s, Z: s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s}}},
		{math.NewVec3(0, -1, 0), [4]math.Vec3{{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: -s, Z: s}, {X: -s, Y: -s, Z: s}}},
		{math.NewVec3(1, 0, 0), [4]math.Vec3{{X: s, Y: -s, Z: s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: s, Y: s, Z: s}}},
		{math.NewVec3(-1, 0, 0), [4]math.Vec3{{X: -s, Y: -s, Z: -s}, {X: -s, Y: -s, Z: s}, {X: -s, Y: s, Z: s}, {X: -s, Y: s, Z: -s}}},
	}
	// top-left texture origin: bottom edge of each face is v = 1
	uvs := [4]math.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for i, p := range f.corners {
			vertices = append(vertices, core.Vertex{Position: p, Normal: f.normal, UV: uvs[i]})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return CreateMeshFromData("Cube", vertices, indices)
}
