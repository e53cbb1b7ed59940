package scene

import (
	gomath "math"

	"pbr-viewer/math"
)

// Camera is a fixed perspective camera looking from Eye at Target.
type Camera struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3
	// FOV is the vertical field of view in radians.
	FOV  float32
	Near float32
	Far  float32
}

// DefaultCamera looks at the origin from above and to the right, with a
// 45° vertical field of view.
func DefaultCamera() Camera {
	eye := math.NewVec3(1, 0.8, 2)
	return Camera{
		Eye:    eye,
		Target: eye.Negate(),
		Up:     math.Vec3Up,
		FOV:    float32(gomath.Pi / 4),
		Near:   0.01,
		Far:    10,
	}
}

// ViewMatrix returns the world-to-view transform.
func (c Camera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Eye, c.Target, c.Up)
}

// ProjectionMatrix returns the projection for a viewport of the given size.
// height must be positive.
func (c Camera) ProjectionMatrix(width, height int) math.Mat4 {
	return math.Mat4Perspective(c.FOV, float32(width)/float32(height), c.Near, c.Far)
}

// ProjectionView returns projection × view: world space straight to clip
// space. The result depends only on c and the arguments.
func (c Camera) ProjectionView(width, height int) math.Mat4 {
	// row-vector convention: view applies first
	return c.ViewMatrix().Mul(c.ProjectionMatrix(width, height))
}
