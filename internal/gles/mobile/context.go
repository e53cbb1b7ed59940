// Package mobile implements gles.Context on gomobile's GLES binding. The
// gl.Context it wraps is only valid between a lifecycle CrossOn and the
// matching CrossOff; the app loop calls Invalidate at CrossOff.
package mobile

import (
	"golang.org/x/mobile/gl"

	"pbr-viewer/internal/gles"
)

// Context adapts a golang.org/x/mobile/gl.Context. Handles round-trip
// through their Value fields, so no name tables are kept.
type Context struct {
	glctx gl.Context
	valid bool
}

var _ gles.Context = (*Context)(nil)

// New wraps glctx, which must belong to a GLES 3 surface.
func New(glctx gl.Context) *Context {
	return &Context{glctx: glctx, valid: glctx != nil}
}

// Invalidate marks the context as gone. Later IsCurrent calls report false.
func (c *Context) Invalidate() { c.valid = false }

func (c *Context) GLSLVersion() string { return "300 es" }

func (c *Context) IsCurrent() bool { return c.valid }

func program(p uint32) gl.Program { return gl.Program{Init: true, Value: p} }

func (c *Context) CreateShader(kind gles.Enum) uint32 {
	return c.glctx.CreateShader(gl.Enum(kind)).Value
}

func (c *Context) ShaderSource(shader uint32, src string) {
	c.glctx.ShaderSource(gl.Shader{Value: shader}, src)
}

func (c *Context) CompileShader(shader uint32) {
	c.glctx.CompileShader(gl.Shader{Value: shader})
}

func (c *Context) ShaderCompiled(shader uint32) bool {
	return c.glctx.GetShaderi(gl.Shader{Value: shader}, gl.COMPILE_STATUS) != gl.FALSE
}

func (c *Context) ShaderInfoLog(shader uint32) string {
	return c.glctx.GetShaderInfoLog(gl.Shader{Value: shader})
}

func (c *Context) DeleteShader(shader uint32) {
	c.glctx.DeleteShader(gl.Shader{Value: shader})
}

func (c *Context) CreateProgram() uint32 { return c.glctx.CreateProgram().Value }

func (c *Context) AttachShader(p, shader uint32) {
	c.glctx.AttachShader(program(p), gl.Shader{Value: shader})
}

func (c *Context) LinkProgram(p uint32) { c.glctx.LinkProgram(program(p)) }

func (c *Context) ProgramLinked(p uint32) bool {
	return c.glctx.GetProgrami(program(p), gl.LINK_STATUS) != gl.FALSE
}

func (c *Context) ProgramInfoLog(p uint32) string {
	return c.glctx.GetProgramInfoLog(program(p))
}

func (c *Context) DeleteProgram(p uint32) { c.glctx.DeleteProgram(program(p)) }

func (c *Context) UseProgram(p uint32) { c.glctx.UseProgram(program(p)) }

func (c *Context) GetUniformLocation(p uint32, name string) int32 {
	return c.glctx.GetUniformLocation(program(p), name).Value
}

func (c *Context) Uniform1i(location int32, v int32) {
	c.glctx.Uniform1i(gl.Uniform{Value: location}, int(v))
}

func (c *Context) UniformMatrix4fv(location int32, m [16]float32) {
	c.glctx.UniformMatrix4fv(gl.Uniform{Value: location}, m[:])
}

func (c *Context) CreateBuffer() uint32 { return c.glctx.CreateBuffer().Value }

func (c *Context) BindBuffer(target gles.Enum, buffer uint32) {
	c.glctx.BindBuffer(gl.Enum(target), gl.Buffer{Value: buffer})
}

func (c *Context) BufferData(target gles.Enum, data []byte, usage gles.Enum) {
	c.glctx.BufferData(gl.Enum(target), data, gl.Enum(usage))
}

func (c *Context) DeleteBuffer(buffer uint32) {
	c.glctx.DeleteBuffer(gl.Buffer{Value: buffer})
}

func (c *Context) CreateVertexArray() uint32 { return c.glctx.CreateVertexArray().Value }

func (c *Context) BindVertexArray(vao uint32) {
	c.glctx.BindVertexArray(gl.VertexArray{Value: vao})
}

func (c *Context) DeleteVertexArray(vao uint32) {
	c.glctx.DeleteVertexArray(gl.VertexArray{Value: vao})
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.glctx.EnableVertexAttribArray(gl.Attrib{Value: uint(index)})
}

func (c *Context) VertexAttribPointer(index uint32, size int32, kind gles.Enum, normalized bool, stride, offset int) {
	c.glctx.VertexAttribPointer(gl.Attrib{Value: uint(index)}, int(size), gl.Enum(kind), normalized, stride, offset)
}

func (c *Context) CreateTexture() uint32 { return c.glctx.CreateTexture().Value }

func (c *Context) ActiveTexture(unit gles.Enum) { c.glctx.ActiveTexture(gl.Enum(unit)) }

func (c *Context) BindTexture(target gles.Enum, texture uint32) {
	c.glctx.BindTexture(gl.Enum(target), gl.Texture{Value: texture})
}

func (c *Context) TexImage2D(target gles.Enum, level int32, internalFormat gles.Enum, width, height int32, format, kind gles.Enum, pixels []byte) {
	c.glctx.TexImage2D(gl.Enum(target), int(level), int(internalFormat), int(width), int(height), gl.Enum(format), gl.Enum(kind), pixels)
}

func (c *Context) TexParameteri(target, pname gles.Enum, param int32) {
	c.glctx.TexParameteri(gl.Enum(target), gl.Enum(pname), int(param))
}

func (c *Context) DeleteTexture(texture uint32) {
	c.glctx.DeleteTexture(gl.Texture{Value: texture})
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.glctx.Viewport(int(x), int(y), int(width), int(height))
}

func (c *Context) ClearColor(r, g, b, a float32) { c.glctx.ClearColor(r, g, b, a) }

func (c *Context) Clear(mask gles.Enum) { c.glctx.Clear(gl.Enum(mask)) }

func (c *Context) Enable(capability gles.Enum) { c.glctx.Enable(gl.Enum(capability)) }

func (c *Context) BlendFunc(src, dst gles.Enum) {
	c.glctx.BlendFunc(gl.Enum(src), gl.Enum(dst))
}

func (c *Context) DrawElements(mode gles.Enum, count int32, kind gles.Enum, offset int) {
	c.glctx.DrawElements(gl.Enum(mode), int(count), gl.Enum(kind), offset)
}

func (c *Context) GetError() gles.Enum { return gles.Enum(c.glctx.GetError()) }
