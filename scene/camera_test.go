package scene

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraProjectionViewIdempotent(t *testing.T) {
	c := DefaultCamera()
	a := c.ProjectionView(1280, 720).Floats()
	b := c.ProjectionView(1280, 720).Floats()
	for i := range a {
		if gomath.Float32bits(a[i]) != gomath.Float32bits(b[i]) {
			t.Fatalf("ProjectionView[%d]: %v != %v", i, a[i], b[i])
		}
	}
}

func TestCameraProjectionViewMatchesMathGL(t *testing.T) {
	c := DefaultCamera()
	got := c.ProjectionView(1280, 720).Floats()

	proj := mgl32.Perspective(mgl32.DegToRad(45), 1280.0/720.0, 0.01, 10)
	view := mgl32.LookAtV(mgl32.Vec3{1, 0.8, 2}, mgl32.Vec3{-1, -0.8, -2}, mgl32.Vec3{0, 1, 0})
	want := proj.Mul4(view)

	for i := range want {
		diff := gomath.Abs(float64(got[i] - want[i]))
		if diff > 1e-5*gomath.Max(1, gomath.Abs(float64(want[i]))) {
			t.Errorf("ProjectionView[%d]: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestDefaultCamera(t *testing.T) {
	c := DefaultCamera()
	if c.Target != c.Eye.Negate() {
		t.Errorf("Target: expected %v, got %v", c.Eye.Negate(), c.Target)
	}
	if c.Near != 0.01 || c.Far != 10 {
		t.Errorf("clip planes: expected 0.01/10, got %v/%v", c.Near, c.Far)
	}
	if gomath.Abs(float64(c.FOV)-gomath.Pi/4) > 1e-7 {
		t.Errorf("FOV: expected pi/4, got %v", c.FOV)
	}
}

func TestCameraTargetProjectsToCenter(t *testing.T) {
	c := DefaultCamera()
	clip := c.Target.ToVec4(1).MulMat(c.ProjectionView(1280, 720))
	if clip.W <= 0 {
		t.Fatalf("target: expected in front of the camera, got w=%v", clip.W)
	}
	ndc := clip.ToVec3().Div(clip.W)
	if gomath.Abs(float64(ndc.X)) > 1e-5 || gomath.Abs(float64(ndc.Y)) > 1e-5 {
		t.Errorf("target: expected at screen centre, got %v", ndc)
	}
	if ndc.Z <= -1 || ndc.Z >= 1 {
		t.Errorf("target depth: expected inside (-1, 1), got %v", ndc.Z)
	}
}
