package math

// Vec2 is a texture coordinate or any other pair of float32 components.
type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// FlipV mirrors the second component around 0.5, turning a bottom-left
// texture origin into a top-left one.
func (v Vec2) FlipV() Vec2 {
	return Vec2{X: v.X, Y: 1 - v.Y}
}
