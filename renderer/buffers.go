package renderer

import (
	"encoding/binary"

	"golang.org/x/mobile/exp/f32"

	"pbr-viewer/core"
)

// GL reads buffer contents in the host's byte order; every platform the
// viewer targets is little-endian.

// packVertices interleaves vs into the 32-byte layout described by
// core.VertexStride and the attribute offsets.
func packVertices(vs []core.Vertex) []byte {
	floats := make([]float32, 0, len(vs)*core.FloatsPerVertex)
	for _, v := range vs {
		floats = v.AppendFloats(floats)
	}
	return f32.Bytes(binary.LittleEndian, floats...)
}

func packIndices(indices []uint32) []byte {
	b := make([]byte, 0, len(indices)*4)
	for _, i := range indices {
		b = binary.LittleEndian.AppendUint32(b, i)
	}
	return b
}
