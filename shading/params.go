// Package shading holds the Cook-Torrance constants of the viewer, a float32
// CPU evaluation of the fragment BRDF, and the GLSL sources that carry the
// same formula to the GPU.
package shading

import (
	"errors"
	"fmt"

	"pbr-viewer/math"
)

// Params are the lighting and material constants baked into the fragment
// shader.
type Params struct {
	EyePos     math.Vec3
	LightPos   math.Vec3
	LightColor math.Vec3
	// F0 is the reflectance at normal incidence.
	F0 math.Vec3
	// Alpha is the GGX roughness, in (0, 1].
	Alpha float32
	// Ambient scales the albedo for the constant ambient term.
	Ambient float32
}

// DefaultParams returns a brushed-metal look lit from the upper right.
func DefaultParams() Params {
	return Params{
		EyePos:     math.NewVec3(0, 0, 1),
		LightPos:   math.NewVec3(1, 0.5, 2),
		LightColor: math.Vec3One,
		F0:         math.NewVec3(0.56, 0.57, 0.58),
		Alpha:      0.4,
		Ambient:    0.1,
	}
}

var ErrInvalidParams = errors.New("invalid shading parameters")

// Validate rejects values the shader cannot evaluate meaningfully.
func (p Params) Validate() error {
	if !(p.Alpha > 0 && p.Alpha <= 1) {
		return fmt.Errorf("%w: alpha %v outside (0, 1]", ErrInvalidParams, p.Alpha)
	}
	if p.Ambient < 0 {
		return fmt.Errorf("%w: negative ambient %v", ErrInvalidParams, p.Ambient)
	}
	for name, v := range map[string]math.Vec3{
		"eye_pos":     p.EyePos,
		"light_pos":   p.LightPos,
		"light_color": p.LightColor,
		"f0":          p.F0,
	} {
		if !v.IsFinite() {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParams, name)
		}
	}
	return nil
}
