package shading

import (
	gomath "math"

	"pbr-viewer/math"
)

const pi = float32(gomath.Pi)

// denomFloor keeps the specular term finite when the view or light
// direction grazes the surface.
const denomFloor = 0.001

// Distribution is the GGX normal distribution for n·h and roughness alpha.
func Distribution(nDotH, alpha float32) float32 {
	a2 := alpha * alpha
	d := nDotH*nDotH*(a2-1) + 1
	return a2 / (pi * d * d)
}

// GeometrySchlickGGX is the single-direction Smith term with k = (α+1)²/8.
func GeometrySchlickGGX(nDotX, alpha float32) float32 {
	k := (alpha + 1) * (alpha + 1) / 8
	return nDotX / (nDotX*(1-k) + k)
}

// Fresnel is Schlick's approximation with a linear falloff.
func Fresnel(hDotV float32, f0 math.Vec3) math.Vec3 {
	t := 1 - hDotV
	return f0.Add(math.Vec3One.Sub(f0).Mul(t))
}

// Shade returns the linear radiance at worldPos for a surface with the
// given normal and albedo. It mirrors the fragment shader operation for
// operation in float32.
func (p Params) Shade(albedo, normal, worldPos math.Vec3) math.Vec3 {
	ambient := albedo.Mul(p.Ambient)

	n := normal.Normalize()
	l := p.LightPos.Sub(worldPos).Normalize()
	v := p.EyePos.Sub(worldPos).Normalize()
	h := l.Add(v).Normalize()

	nDotV := max(n.Dot(v), 0)
	nDotL := max(n.Dot(l), 0)

	D := Distribution(n.Dot(h), p.Alpha)
	G := GeometrySchlickGGX(nDotV, p.Alpha) * GeometrySchlickGGX(nDotL, p.Alpha)
	F := Fresnel(max(h.Dot(v), 0), p.F0)

	denom := max(4*nDotV*nDotL, denomFloor)
	kc := F.Mul(D * G / denom)

	brdf := math.Vec3One.Sub(kc).MulVec(albedo).Div(pi).Add(kc)
	return brdf.MulVec(p.LightColor).Mul(nDotL).Add(ambient)
}
