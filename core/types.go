package core

import (
	"unsafe"

	"pbr-viewer/math"
)

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Vertex is the interleaved per-vertex record uploaded to the GPU.
// Layout: position at byte 0, normal at 12, texture coordinate at 24.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// Vertex attribute layout in bytes.
const (
	VertexStride   = int(unsafe.Sizeof(Vertex{}))
	PositionOffset = int(unsafe.Offsetof(Vertex{}.Position))
	NormalOffset   = int(unsafe.Offsetof(Vertex{}.Normal))
	UVOffset       = int(unsafe.Offsetof(Vertex{}.UV))

	// FloatsPerVertex is the number of float32 values in one Vertex.
	FloatsPerVertex = VertexStride / 4
)

// AppendFloats appends the vertex components in upload order.
func (v Vertex) AppendFloats(dst []float32) []float32 {
	return append(dst,
		v.Position.X, v.Position.Y, v.Position.Z,
		v.Normal.X, v.Normal.Y, v.Normal.Z,
		v.UV.X, v.UV.Y,
	)
}
