// Package desktop implements gles.Context on top of go-gl's OpenGL 4.1 core
// profile bindings. The GL 4.1 core profile is a superset of the GLES 3.0
// calls the renderer issues.
package desktop

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/core"
	"pbr-viewer/internal/gles"
)

// Owner reports whether the context the bindings were loaded for is still
// current. *core.Window satisfies it.
type Owner interface {
	IsCurrent() bool
}

// Context forwards gles calls to the OpenGL function pointers loaded by
// gl.Init.
type Context struct {
	owner   Owner
	version string
}

var _ gles.Context = (*Context)(nil)

// New loads the GL entry points. Must be called after the window's context
// is made current on the calling thread.
func New(owner Owner) (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	core.Logger().Info("opengl context ready",
		"version", version,
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Context{owner: owner, version: version}, nil
}

// Version is the driver's GL_VERSION string.
func (c *Context) Version() string { return c.version }

func (c *Context) GLSLVersion() string { return "410 core" }

func (c *Context) IsCurrent() bool {
	return c.owner != nil && c.owner.IsCurrent()
}

func (c *Context) CreateShader(kind gles.Enum) uint32 {
	return gl.CreateShader(uint32(kind))
}

func (c *Context) ShaderSource(shader uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
}

func (c *Context) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (c *Context) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ShaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *Context) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (c *Context) CreateProgram() uint32 { return gl.CreateProgram() }

func (c *Context) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (c *Context) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (c *Context) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *Context) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (c *Context) UseProgram(program uint32) { gl.UseProgram(program) }

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (c *Context) UniformMatrix4fv(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (c *Context) CreateBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (c *Context) BindBuffer(target gles.Enum, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

func (c *Context) BufferData(target gles.Enum, data []byte, usage gles.Enum) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(uint32(target), len(data), ptr, uint32(usage))
}

func (c *Context) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (c *Context) CreateVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (c *Context) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (c *Context) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (c *Context) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (c *Context) VertexAttribPointer(index uint32, size int32, kind gles.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(index, size, uint32(kind), normalized, int32(stride), gl.PtrOffset(offset))
}

func (c *Context) CreateTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (c *Context) ActiveTexture(unit gles.Enum) { gl.ActiveTexture(uint32(unit)) }

func (c *Context) BindTexture(target gles.Enum, texture uint32) {
	gl.BindTexture(uint32(target), texture)
}

func (c *Context) TexImage2D(target gles.Enum, level int32, internalFormat gles.Enum, width, height int32, format, kind gles.Enum, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = unsafe.Pointer(&pixels[0])
	}
	gl.TexImage2D(uint32(target), level, int32(internalFormat), width, height, 0, uint32(format), uint32(kind), ptr)
}

func (c *Context) TexParameteri(target, pname gles.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (c *Context) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (c *Context) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (c *Context) Clear(mask gles.Enum) { gl.Clear(uint32(mask)) }

func (c *Context) Enable(capability gles.Enum) { gl.Enable(uint32(capability)) }

func (c *Context) BlendFunc(src, dst gles.Enum) { gl.BlendFunc(uint32(src), uint32(dst)) }

func (c *Context) DrawElements(mode gles.Enum, count int32, kind gles.Enum, offset int) {
	gl.DrawElements(uint32(mode), count, uint32(kind), gl.PtrOffset(offset))
}

func (c *Context) GetError() gles.Enum { return gles.Enum(gl.GetError()) }
