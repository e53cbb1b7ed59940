// Package renderer draws one mesh with the Cook-Torrance shader. It owns
// every GPU object it creates and talks to the GPU only through a
// gles.Context, so the same code drives desktop GL and GLES on mobile.
package renderer

import (
	"errors"
	"fmt"
	gomath "math"

	"pbr-viewer/config"
	"pbr-viewer/core"
	"pbr-viewer/internal/gles"
	"pbr-viewer/math"
	"pbr-viewer/scene"
	"pbr-viewer/shading"
)

var (
	ErrInvalidTexture = errors.New("invalid texture")
	ErrDestroyed      = errors.New("renderer destroyed")
)

// Slot is a sampler binding. The slot number is also the texture unit.
type Slot int

const (
	SlotAlbedo Slot = iota
	SlotDepth
	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotAlbedo:
		return "albedo"
	case SlotDepth:
		return "depth"
	}
	return fmt.Sprintf("slot%d", int(s))
}

var samplerNames = [slotCount]string{
	SlotAlbedo: shading.AlbedoUniform,
	SlotDepth:  shading.DepthUniform,
}

// Renderer holds the program, buffers, vertex array and textures for one
// mesh. All methods must be called on the goroutine that owns the context.
type Renderer struct {
	ctx gles.Context

	program uint32
	vao     uint32
	vbo     uint32
	ibo     uint32

	indexCount int32
	textures   [slotCount]uint32

	// -1 when the shader compiler dropped the uniform
	mvpLoc      int32
	samplerLocs [slotCount]int32

	camera     scene.Camera
	clearColor core.Color
	mvp        [16]float32

	destroyed bool
}

// New compiles the shader program and uploads mesh. On failure every GPU
// object created so far is released and nil is returned.
func New(ctx gles.Context, mesh *scene.Mesh, cfg config.Config) (*Renderer, error) {
	if ctx == nil {
		return nil, errors.New("renderer: nil context")
	}
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	if len(mesh.Indices) > gomath.MaxInt32 {
		return nil, fmt.Errorf("renderer: %d indices exceed a single draw call", len(mesh.Indices))
	}

	version := ctx.GLSLVersion()
	vertSrc, err := shading.VertexSource(version)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	fragSrc, err := shading.FragmentSource(version, cfg.ShadingParams())
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	prog, err := gles.NewProgram(ctx, vertSrc, fragSrc)
	if err != nil {
		gles.LogErrors(ctx, "compile")
		return nil, fmt.Errorf("renderer: shader program: %w", err)
	}

	r := &Renderer{
		ctx:        ctx,
		program:    prog,
		indexCount: int32(len(mesh.Indices)),
		camera:     cfg.SceneCamera(),
		clearColor: cfg.Background(),
	}
	r.mvpLoc = r.uniform(shading.MVPUniform)
	for s := range samplerNames {
		r.samplerLocs[s] = r.uniform(samplerNames[s])
	}

	if err := r.upload(mesh); err != nil {
		r.release()
		return nil, fmt.Errorf("renderer: %w", err)
	}

	ctx.Enable(gles.DepthTest)
	ctx.Enable(gles.Blend)
	ctx.BlendFunc(gles.SrcAlpha, gles.OneMinusSrcAlpha)

	ctx.UseProgram(prog)
	for s, loc := range r.samplerLocs {
		if loc >= 0 {
			ctx.Uniform1i(loc, int32(s))
		}
	}
	gles.LogErrors(ctx, "init")

	core.Logger().Info("renderer created",
		"mesh", mesh.Name,
		"vertices", len(mesh.Vertices),
		"indices", len(mesh.Indices),
		"glsl", version)
	return r, nil
}

func (r *Renderer) uniform(name string) int32 {
	loc := r.ctx.GetUniformLocation(r.program, name)
	if loc < 0 {
		core.Logger().Debug("inactive uniform", "name", name)
	}
	return loc
}

// upload creates the vertex array with its vertex and index buffers.
func (r *Renderer) upload(mesh *scene.Mesh) error {
	ctx := r.ctx

	if r.vao = ctx.CreateVertexArray(); r.vao == 0 {
		return errors.New("could not create vertex array")
	}
	if r.vbo = ctx.CreateBuffer(); r.vbo == 0 {
		return errors.New("could not create vertex buffer")
	}
	if r.ibo = ctx.CreateBuffer(); r.ibo == 0 {
		return errors.New("could not create index buffer")
	}

	ctx.BindVertexArray(r.vao)

	ctx.BindBuffer(gles.ArrayBuffer, r.vbo)
	ctx.BufferData(gles.ArrayBuffer, packVertices(mesh.Vertices), gles.StaticDraw)

	attribs := []struct {
		index  uint32
		size   int32
		offset int
	}{
		{shading.PositionAttrib, 3, core.PositionOffset},
		{shading.NormalAttrib, 3, core.NormalOffset},
		{shading.UVAttrib, 2, core.UVOffset},
	}
	for _, a := range attribs {
		ctx.EnableVertexAttribArray(a.index)
		ctx.VertexAttribPointer(a.index, a.size, gles.Float, false, core.VertexStride, a.offset)
	}

	// the element binding is vertex array state
	ctx.BindBuffer(gles.ElementArrayBuffer, r.ibo)
	ctx.BufferData(gles.ElementArrayBuffer, packIndices(mesh.Indices), gles.StaticDraw)

	ctx.BindVertexArray(0)
	return nil
}

// SetColorTexture uploads the albedo image: RGBA8, row-major, top row
// first, len(pixels) == width*height*4. Any previous albedo texture is
// deleted.
func (r *Renderer) SetColorTexture(pixels []byte, width, height int) error {
	return r.SetTexture(SlotAlbedo, pixels, width, height)
}

// SetDepthTexture is SetColorTexture for the depth slot.
func (r *Renderer) SetDepthTexture(pixels []byte, width, height int) error {
	return r.SetTexture(SlotDepth, pixels, width, height)
}

// SetTexture creates a clamped, nearest-filtered RGBA8 texture from pixels
// and binds it to slot, replacing the texture the slot held before.
func (r *Renderer) SetTexture(slot Slot, pixels []byte, width, height int) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if slot < 0 || slot >= slotCount {
		return fmt.Errorf("%w: unknown slot %d", ErrInvalidTexture, int(slot))
	}
	if width <= 0 || height <= 0 || width > gomath.MaxInt32 || height > gomath.MaxInt32 {
		return fmt.Errorf("%w: %s size %dx%d", ErrInvalidTexture, slot, width, height)
	}
	if want := width * height * 4; len(pixels) != want || want/4/height != width {
		return fmt.Errorf("%w: %s has %d bytes, %dx%d RGBA8 needs %d", ErrInvalidTexture, slot, len(pixels), width, height, want)
	}

	ctx := r.ctx
	tex := ctx.CreateTexture()
	if tex == 0 {
		return fmt.Errorf("%s: could not create texture", slot)
	}
	ctx.ActiveTexture(gles.Texture0 + gles.Enum(slot))
	ctx.BindTexture(gles.Texture2D, tex)
	ctx.TexParameteri(gles.Texture2D, gles.TextureWrapS, int32(gles.ClampToEdge))
	ctx.TexParameteri(gles.Texture2D, gles.TextureWrapT, int32(gles.ClampToEdge))
	ctx.TexParameteri(gles.Texture2D, gles.TextureMinFilter, int32(gles.Nearest))
	ctx.TexParameteri(gles.Texture2D, gles.TextureMagFilter, int32(gles.Nearest))
	ctx.TexImage2D(gles.Texture2D, 0, gles.RGBA8, int32(width), int32(height), gles.RGBA, gles.UnsignedByte, pixels)

	if old := r.textures[slot]; old != 0 {
		ctx.DeleteTexture(old)
	}
	r.textures[slot] = tex

	if loc := r.samplerLocs[slot]; loc >= 0 {
		ctx.UseProgram(r.program)
		ctx.Uniform1i(loc, int32(slot))
	}
	gles.LogErrors(ctx, "texture")
	return nil
}

// SetSceneTexture is SetTexture for a decoded scene.Texture.
func (r *Renderer) SetSceneTexture(slot Slot, tex *scene.Texture) error {
	if tex == nil {
		return fmt.Errorf("%w: nil %s texture", ErrInvalidTexture, slot)
	}
	return r.SetTexture(slot, tex.Pixels, tex.Width, tex.Height)
}

// Resize sets the viewport and uploads projection × view for the new
// aspect ratio. Non-positive sizes, as reported while a window is
// minimised, are ignored.
func (r *Renderer) Resize(width, height int) {
	if r.destroyed {
		return
	}
	if width <= 0 || height <= 0 {
		core.Logger().Debug("resize ignored", "width", width, "height", height)
		return
	}

	r.ctx.Viewport(0, 0, int32(width), int32(height))
	r.mvp = r.camera.ProjectionView(width, height).Floats()
	if r.mvpLoc >= 0 {
		r.ctx.UseProgram(r.program)
		r.ctx.UniformMatrix4fv(r.mvpLoc, r.mvp)
	}
	gles.LogErrors(r.ctx, "resize")
}

// MVP returns the matrix most recently uploaded by Resize, column-major.
func (r *Renderer) MVP() math.Mat4 {
	var m math.Mat4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			m[c][row] = r.mvp[c*4+row]
		}
	}
	return m
}

// DrawFrame clears the framebuffer and draws the mesh once.
func (r *Renderer) DrawFrame() {
	if r.destroyed {
		return
	}
	ctx := r.ctx
	c := r.clearColor
	ctx.ClearColor(c.R, c.G, c.B, c.A)
	ctx.Clear(gles.ColorBufferBit | gles.DepthBufferBit)

	ctx.UseProgram(r.program)
	for s, tex := range r.textures {
		if tex != 0 {
			ctx.ActiveTexture(gles.Texture0 + gles.Enum(s))
			ctx.BindTexture(gles.Texture2D, tex)
		}
	}
	ctx.BindVertexArray(r.vao)
	ctx.DrawElements(gles.Triangles, r.indexCount, gles.UnsignedInt, 0)
	ctx.BindVertexArray(0)
}

// Destroy releases every GPU object. When the context is no longer current
// its objects are already gone with it and nothing is called. Destroy may
// be called more than once.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	if !r.ctx.IsCurrent() {
		core.Logger().Debug("renderer destroy skipped: context not current")
		return
	}
	r.release()
	core.Logger().Info("renderer destroyed")
}

func (r *Renderer) release() {
	ctx := r.ctx
	for s, tex := range r.textures {
		if tex != 0 {
			ctx.DeleteTexture(tex)
			r.textures[s] = 0
		}
	}
	if r.vao != 0 {
		ctx.DeleteVertexArray(r.vao)
		r.vao = 0
	}
	for _, b := range []*uint32{&r.vbo, &r.ibo} {
		if *b != 0 {
			ctx.DeleteBuffer(*b)
			*b = 0
		}
	}
	if r.program != 0 {
		ctx.DeleteProgram(r.program)
		r.program = 0
	}
	r.destroyed = true
}
