package shading

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"pbr-viewer/math"
)

// Vertex attribute locations shared by the shaders and the vertex array.
const (
	PositionAttrib = 0
	NormalAttrib   = 1
	UVAttrib       = 2
)

// Uniform names.
const (
	MVPUniform    = "mvp"
	AlbedoUniform = "albedoTex"
	DepthUniform  = "depthTex"
)

const vertexTemplate = `#version {{.Version}}
layout(location = {{.PositionAttrib}}) in vec3 inPosition;
layout(location = {{.NormalAttrib}}) in vec3 inNormal;
layout(location = {{.UVAttrib}}) in vec2 inUV;

uniform mat4 {{.MVP}};

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vUV;

void main() {
    // no model matrix: object space is world space
    vWorldPos = inPosition;
    vNormal = inNormal;
    vUV = inUV;
    gl_Position = {{.MVP}} * vec4(inPosition, 1.0);
}
`

const fragmentTemplate = `#version {{.Version}}
precision highp float;

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vUV;

uniform sampler2D {{.Albedo}};
uniform sampler2D {{.Depth}};

out vec4 outColor;

const float PI = 3.14159265;
const vec3 eyePos = {{vec3 .P.EyePos}};
const vec3 lightPos = {{vec3 .P.LightPos}};
const vec3 lightColor = {{vec3 .P.LightColor}};
const vec3 f0 = {{vec3 .P.F0}};
const float alpha = {{float .P.Alpha}};
const float ambientCoeff = {{float .P.Ambient}};

float geometrySchlickGGX(float nDotX, float k) {
    return nDotX / (nDotX * (1.0 - k) + k);
}

vec3 fresnel(float hDotV) {
    return f0 + (1.0 - f0) * (1.0 - hDotV);
}

void main() {
    vec3 albedo = texture({{.Albedo}}, vUV).rgb;
    vec3 ambient = albedo * ambientCoeff;

    vec3 n = normalize(vNormal);
    vec3 l = normalize(lightPos - vWorldPos);
    vec3 v = normalize(eyePos - vWorldPos);
    vec3 h = normalize(l + v);

    float nDotV = max(dot(n, v), 0.0);
    float nDotL = max(dot(n, l), 0.0);
    float nDotH = dot(n, h);

    float a2 = alpha * alpha;
    float d = nDotH * nDotH * (a2 - 1.0) + 1.0;
    float D = a2 / (PI * d * d);

    float k = (alpha + 1.0) * (alpha + 1.0) / 8.0;
    float G = geometrySchlickGGX(nDotV, k) * geometrySchlickGGX(nDotL, k);

    vec3 F = fresnel(max(dot(h, v), 0.0));

    float denom = max(4.0 * nDotV * nDotL, {{float .Floor}});
    vec3 kc = D * G * F / denom;

    vec3 brdf = (1.0 - kc) * albedo / PI + kc;
    outColor = vec4(brdf * lightColor * nDotL + ambient, 1.0);
}
`

var (
	funcs = template.FuncMap{
		"float": glslFloat,
		"vec3":  glslVec3,
	}
	vertexTmpl   = template.Must(template.New("vertex").Parse(vertexTemplate))
	fragmentTmpl = template.Must(template.New("fragment").Funcs(funcs).Parse(fragmentTemplate))
)

// VertexSource returns the vertex stage for the given "#version" text.
func VertexSource(version string) (string, error) {
	var b strings.Builder
	err := vertexTmpl.Execute(&b, map[string]any{
		"Version":        version,
		"PositionAttrib": PositionAttrib,
		"NormalAttrib":   NormalAttrib,
		"UVAttrib":       UVAttrib,
		"MVP":            MVPUniform,
	})
	if err != nil {
		return "", fmt.Errorf("vertex template: %w", err)
	}
	return b.String(), nil
}

// FragmentSource returns the fragment stage with p baked in as constants.
func FragmentSource(version string, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	err := fragmentTmpl.Execute(&b, map[string]any{
		"Version": version,
		"Albedo":  AlbedoUniform,
		"Depth":   DepthUniform,
		"Floor":   float32(denomFloor),
		"P":       p,
	})
	if err != nil {
		return "", fmt.Errorf("fragment template: %w", err)
	}
	return b.String(), nil
}

// glslFloat formats f as a GLSL float literal. GLSL ES rejects "1" where a
// float is expected, so integral values keep a ".0".
func glslFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

func glslVec3(v math.Vec3) string {
	return "vec3(" + glslFloat(v.X) + ", " + glslFloat(v.Y) + ", " + glslFloat(v.Z) + ")"
}
