// Package config loads the viewer's YAML configuration. Every field has a
// default, so a file only needs the values it changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	gomath "math"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pbr-viewer/core"
	"pbr-viewer/math"
	"pbr-viewer/scene"
	"pbr-viewer/shading"
)

// Filename is the name hosts look for next to their assets.
const Filename = "config.yaml"

// maxConfigSize bounds how much of a config file is read.
const maxConfigSize = 1 << 20

var ErrInvalidConfig = errors.New("invalid config")

// Vec3 is written as a three-element YAML sequence: [x, y, z].
type Vec3 [3]float32

func (v Vec3) Vec() math.Vec3 { return math.NewVec3(v[0], v[1], v[2]) }

// Config is the complete viewer configuration.
type Config struct {
	// Mesh is the model file to display (.obj, .gltf, .glb).
	Mesh       string     `yaml:"mesh"`
	Textures   Textures   `yaml:"textures"`
	Camera     Camera     `yaml:"camera"`
	Shading    Shading    `yaml:"shading"`
	Window     Window     `yaml:"window"`
	ClearColor [4]float32 `yaml:"clear_color"`
}

type Textures struct {
	// Albedo overrides the texture named by the mesh's material.
	Albedo string `yaml:"albedo"`
	Depth  string `yaml:"depth"`
	// MaxSize caps the longer texture edge in pixels; 0 keeps the original.
	MaxSize int `yaml:"max_size"`
}

type Camera struct {
	Eye        Vec3    `yaml:"eye"`
	Target     Vec3    `yaml:"target"`
	Up         Vec3    `yaml:"up"`
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

type Shading struct {
	EyePos     Vec3    `yaml:"eye_pos"`
	LightPos   Vec3    `yaml:"light_pos"`
	LightColor Vec3    `yaml:"light_color"`
	F0         Vec3    `yaml:"f0"`
	Alpha      float32 `yaml:"alpha"`
	Ambient    float32 `yaml:"ambient"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

func vec3(v math.Vec3) Vec3 { return Vec3{v.X, v.Y, v.Z} }

// Default returns the configuration used when no file is given.
func Default() Config {
	cam := scene.DefaultCamera()
	sh := shading.DefaultParams()
	win := core.DefaultWindowConfig()
	return Config{
		Camera: Camera{
			Eye:        vec3(cam.Eye),
			Target:     vec3(cam.Target),
			Up:         vec3(cam.Up),
			FOVDegrees: 45,
			Near:       cam.Near,
			Far:        cam.Far,
		},
		Shading: Shading{
			EyePos:     vec3(sh.EyePos),
			LightPos:   vec3(sh.LightPos),
			LightColor: vec3(sh.LightColor),
			F0:         vec3(sh.F0),
			Alpha:      sh.Alpha,
			Ambient:    sh.Ambient,
		},
		Window: Window{
			Width:  win.Width,
			Height: win.Height,
			Title:  win.Title,
			VSync:  win.VSync,
		},
		ClearColor: [4]float32{0.2, 0.2, 0.3, 1},
	}
}

// Parse overlays the YAML document in data on Default and validates the
// result. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the file at p. Relative mesh and texture paths in the file are
// taken relative to the file's directory.
func Load(p string) (Config, error) {
	f, err := os.Open(p)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseReader(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", p, err)
	}
	cfg.resolve(func(name string) string {
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(filepath.Dir(p), name)
	})
	core.Logger().Info("loaded config", "path", p)
	return cfg, nil
}

// LoadFS reads name from fsys. Relative paths in the file are joined to the
// file's directory inside fsys.
func LoadFS(fsys fs.FS, name string) (Config, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseReader(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}
	cfg.resolve(func(p string) string {
		return path.Join(path.Dir(name), p)
	})
	return cfg, nil
}

func parseReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxConfigSize+1))
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(data) > maxConfigSize {
		return Config{}, fmt.Errorf("%w: file larger than %d bytes", ErrInvalidConfig, maxConfigSize)
	}
	return Parse(data)
}

func (c *Config) resolve(join func(string) string) {
	for _, p := range []*string{&c.Mesh, &c.Textures.Albedo, &c.Textures.Depth} {
		if *p != "" {
			*p = join(*p)
		}
	}
}

// Validate reports the first setting that cannot produce an image.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	cam := c.Camera
	switch {
	case !(cam.FOVDegrees > 0 && cam.FOVDegrees < 180):
		return invalid("camera.fov_degrees %v outside (0, 180)", cam.FOVDegrees)
	case !(cam.Near > 0):
		return invalid("camera.near %v must be positive", cam.Near)
	case !(cam.Far > cam.Near):
		return invalid("camera.far %v must exceed camera.near %v", cam.Far, cam.Near)
	case cam.Eye == cam.Target:
		return invalid("camera.eye equals camera.target")
	case cam.Up == Vec3{}:
		return invalid("camera.up is zero")
	case cam.Target.Vec().Sub(cam.Eye.Vec()).Cross(cam.Up.Vec()).Length() == 0:
		return invalid("camera.up is parallel to the view direction")
	}

	if err := c.ShadingParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Textures.MaxSize < 0 {
		return invalid("textures.max_size %d is negative", c.Textures.MaxSize)
	}
	for i, ch := range c.ClearColor {
		if ch < 0 || ch > 1 {
			return invalid("clear_color[%d] %v outside [0, 1]", i, ch)
		}
	}
	return nil
}

// SceneCamera converts the camera section.
func (c Config) SceneCamera() scene.Camera {
	return scene.Camera{
		Eye:    c.Camera.Eye.Vec(),
		Target: c.Camera.Target.Vec(),
		Up:     c.Camera.Up.Vec(),
		FOV:    c.Camera.FOVDegrees * float32(gomath.Pi) / 180,
		Near:   c.Camera.Near,
		Far:    c.Camera.Far,
	}
}

// ShadingParams converts the shading section.
func (c Config) ShadingParams() shading.Params {
	return shading.Params{
		EyePos:     c.Shading.EyePos.Vec(),
		LightPos:   c.Shading.LightPos.Vec(),
		LightColor: c.Shading.LightColor.Vec(),
		F0:         c.Shading.F0.Vec(),
		Alpha:      c.Shading.Alpha,
		Ambient:    c.Shading.Ambient,
	}
}

// Background converts clear_color.
func (c Config) Background() core.Color {
	cc := c.ClearColor
	return core.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]}
}

// WindowConfig converts the window section.
func (c Config) WindowConfig() core.WindowConfig {
	wc := core.DefaultWindowConfig()
	wc.Width = c.Window.Width
	wc.Height = c.Window.Height
	wc.Title = c.Window.Title
	wc.VSync = c.Window.VSync
	return wc
}
