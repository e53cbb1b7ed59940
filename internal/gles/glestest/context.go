// Package glestest provides a recording gles.Context for tests that
// exercise GPU setup without a GPU.
package glestest

import (
	"fmt"

	"pbr-viewer/internal/gles"
)

// Attrib is one recorded VertexAttribPointer call.
type Attrib struct {
	VAO        uint32
	Buffer     uint32
	Size       int32
	Kind       gles.Enum
	Normalized bool
	Stride     int
	Offset     int
	Enabled    bool
}

// Texture is the recorded state of one texture object.
type Texture struct {
	Unit           gles.Enum
	InternalFormat gles.Enum
	Format         gles.Enum
	Kind           gles.Enum
	Width, Height  int32
	Pixels         []byte
	Params         map[gles.Enum]int32
}

// Draw is one recorded DrawElements call.
type Draw struct {
	Program  uint32
	VAO      uint32
	Mode     gles.Enum
	Count    int32
	Kind     gles.Enum
	Offset   int
	Textures map[gles.Enum]uint32 // unit -> texture bound at draw time
}

// Context records every call. Object names are allocated from one counter so
// that a handle identifies exactly one object across kinds.
type Context struct {
	Version string
	Current bool

	// FailCompile makes shaders of this kind fail to compile.
	FailCompile gles.Enum
	// FailLink makes every LinkProgram fail.
	FailLink bool
	// Errors is drained by GetError, one code per call.
	Errors []gles.Enum
	// Inactive lists uniform names reported as -1.
	Inactive map[string]bool

	Shaders      map[uint32]gles.Enum
	Sources      map[uint32]string
	Programs     map[uint32]bool
	Buffers      map[uint32][]byte
	VAOs         map[uint32]bool
	Textures     map[uint32]*Texture
	Attribs      map[uint32]*Attrib
	Uniforms     map[int32]string
	Ints         map[string]int32
	Matrices     map[string][16]float32
	Enabled      map[gles.Enum]bool
	ViewportRect [4]int32
	Clears       int
	Draws        []Draw

	// Deleted counts deletions per handle.
	Deleted map[uint32]int
	// Calls is the ordered list of method names invoked.
	Calls []string

	next          uint32
	program       uint32
	vao           uint32
	activeUnit    gles.Enum
	bound         map[gles.Enum]uint32
	unitTextures  map[gles.Enum]uint32
	vaoElementBuf map[uint32]uint32
	uniformProg   map[int32]uint32
	nextUniform   int32
}

var _ gles.Context = (*Context)(nil)

// New returns a current context that reports GLSL "300 es".
func New() *Context {
	return &Context{
		Version:       "300 es",
		Current:       true,
		Inactive:      map[string]bool{},
		Shaders:       map[uint32]gles.Enum{},
		Sources:       map[uint32]string{},
		Programs:      map[uint32]bool{},
		Buffers:       map[uint32][]byte{},
		VAOs:          map[uint32]bool{},
		Textures:      map[uint32]*Texture{},
		Attribs:       map[uint32]*Attrib{},
		Uniforms:      map[int32]string{},
		Ints:          map[string]int32{},
		Matrices:      map[string][16]float32{},
		Enabled:       map[gles.Enum]bool{},
		Deleted:       map[uint32]int{},
		activeUnit:    gles.Texture0,
		bound:         map[gles.Enum]uint32{},
		unitTextures:  map[gles.Enum]uint32{},
		vaoElementBuf: map[uint32]uint32{},
		uniformProg:   map[int32]uint32{},
	}
}

func (c *Context) record(name string) { c.Calls = append(c.Calls, name) }

func (c *Context) alloc() uint32 {
	c.next++
	return c.next
}

// Live reports how many objects were created and not deleted.
func (c *Context) Live() int {
	n := 0
	for h := range c.Shaders {
		if c.Deleted[h] == 0 {
			n++
		}
	}
	for _, m := range []map[uint32]bool{c.Programs, c.VAOs} {
		for h := range m {
			if c.Deleted[h] == 0 {
				n++
			}
		}
	}
	for h := range c.Buffers {
		if c.Deleted[h] == 0 {
			n++
		}
	}
	for h := range c.Textures {
		if c.Deleted[h] == 0 {
			n++
		}
	}
	return n
}

// ElementBuffer returns the index buffer bound to vao.
func (c *Context) ElementBuffer(vao uint32) uint32 { return c.vaoElementBuf[vao] }

func (c *Context) GLSLVersion() string { return c.Version }
func (c *Context) IsCurrent() bool     { return c.Current }

func (c *Context) CreateShader(kind gles.Enum) uint32 {
	c.record("CreateShader")
	h := c.alloc()
	c.Shaders[h] = kind
	return h
}

func (c *Context) ShaderSource(shader uint32, src string) {
	c.record("ShaderSource")
	c.Sources[shader] = src
}

func (c *Context) CompileShader(shader uint32) { c.record("CompileShader") }

func (c *Context) ShaderCompiled(shader uint32) bool {
	return c.FailCompile == 0 || c.Shaders[shader] != c.FailCompile
}

func (c *Context) ShaderInfoLog(shader uint32) string {
	return fmt.Sprintf("0:1: syntax error in shader %d\x00", shader)
}

func (c *Context) DeleteShader(shader uint32) {
	c.record("DeleteShader")
	c.Deleted[shader]++
}

func (c *Context) CreateProgram() uint32 {
	c.record("CreateProgram")
	h := c.alloc()
	c.Programs[h] = false
	return h
}

func (c *Context) AttachShader(program, shader uint32) { c.record("AttachShader") }

func (c *Context) LinkProgram(program uint32) {
	c.record("LinkProgram")
	c.Programs[program] = !c.FailLink
}

func (c *Context) ProgramLinked(program uint32) bool { return c.Programs[program] }

func (c *Context) ProgramInfoLog(program uint32) string { return "link error: varying mismatch\n" }

func (c *Context) DeleteProgram(program uint32) {
	c.record("DeleteProgram")
	c.Deleted[program]++
}

func (c *Context) UseProgram(program uint32) {
	c.record("UseProgram")
	c.program = program
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	if c.Inactive[name] {
		return -1
	}
	for loc, n := range c.Uniforms {
		if n == name && c.uniformProg[loc] == program {
			return loc
		}
	}
	loc := c.nextUniform
	c.nextUniform++
	c.Uniforms[loc] = name
	c.uniformProg[loc] = program
	return loc
}

func (c *Context) Uniform1i(location int32, v int32) {
	c.record("Uniform1i")
	if name, ok := c.Uniforms[location]; ok {
		c.Ints[name] = v
	}
}

func (c *Context) UniformMatrix4fv(location int32, m [16]float32) {
	c.record("UniformMatrix4fv")
	if name, ok := c.Uniforms[location]; ok {
		c.Matrices[name] = m
	}
}

func (c *Context) CreateBuffer() uint32 {
	c.record("CreateBuffer")
	h := c.alloc()
	c.Buffers[h] = nil
	return h
}

func (c *Context) BindBuffer(target gles.Enum, buffer uint32) {
	c.record("BindBuffer")
	c.bound[target] = buffer
	if target == gles.ElementArrayBuffer && c.vao != 0 {
		c.vaoElementBuf[c.vao] = buffer
	}
}

func (c *Context) BufferData(target gles.Enum, data []byte, usage gles.Enum) {
	c.record("BufferData")
	c.Buffers[c.bound[target]] = append([]byte(nil), data...)
}

func (c *Context) DeleteBuffer(buffer uint32) {
	c.record("DeleteBuffer")
	c.Deleted[buffer]++
}

func (c *Context) CreateVertexArray() uint32 {
	c.record("CreateVertexArray")
	h := c.alloc()
	c.VAOs[h] = true
	return h
}

func (c *Context) BindVertexArray(vao uint32) {
	c.record("BindVertexArray")
	c.vao = vao
}

func (c *Context) DeleteVertexArray(vao uint32) {
	c.record("DeleteVertexArray")
	c.Deleted[vao]++
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.record("EnableVertexAttribArray")
	if a, ok := c.Attribs[index]; ok {
		a.Enabled = true
		return
	}
	c.Attribs[index] = &Attrib{VAO: c.vao, Enabled: true}
}

func (c *Context) VertexAttribPointer(index uint32, size int32, kind gles.Enum, normalized bool, stride, offset int) {
	c.record("VertexAttribPointer")
	a, ok := c.Attribs[index]
	if !ok {
		a = &Attrib{}
		c.Attribs[index] = a
	}
	a.VAO = c.vao
	a.Buffer = c.bound[gles.ArrayBuffer]
	a.Size = size
	a.Kind = kind
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
}

func (c *Context) CreateTexture() uint32 {
	c.record("CreateTexture")
	h := c.alloc()
	c.Textures[h] = &Texture{Params: map[gles.Enum]int32{}}
	return h
}

func (c *Context) ActiveTexture(unit gles.Enum) {
	c.record("ActiveTexture")
	c.activeUnit = unit
}

func (c *Context) BindTexture(target gles.Enum, texture uint32) {
	c.record("BindTexture")
	c.unitTextures[c.activeUnit] = texture
	if t, ok := c.Textures[texture]; ok {
		t.Unit = c.activeUnit
	}
}

func (c *Context) TexImage2D(target gles.Enum, level int32, internalFormat gles.Enum, width, height int32, format, kind gles.Enum, pixels []byte) {
	c.record("TexImage2D")
	t, ok := c.Textures[c.unitTextures[c.activeUnit]]
	if !ok {
		return
	}
	t.InternalFormat = internalFormat
	t.Format = format
	t.Kind = kind
	t.Width = width
	t.Height = height
	t.Pixels = append([]byte(nil), pixels...)
}

func (c *Context) TexParameteri(target, pname gles.Enum, param int32) {
	c.record("TexParameteri")
	if t, ok := c.Textures[c.unitTextures[c.activeUnit]]; ok {
		t.Params[pname] = param
	}
}

func (c *Context) DeleteTexture(texture uint32) {
	c.record("DeleteTexture")
	c.Deleted[texture]++
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.record("Viewport")
	c.ViewportRect = [4]int32{x, y, width, height}
}

func (c *Context) ClearColor(r, g, b, a float32) { c.record("ClearColor") }

func (c *Context) Clear(mask gles.Enum) {
	c.record("Clear")
	c.Clears++
}

func (c *Context) Enable(capability gles.Enum) {
	c.record("Enable")
	c.Enabled[capability] = true
}

func (c *Context) BlendFunc(src, dst gles.Enum) { c.record("BlendFunc") }

func (c *Context) DrawElements(mode gles.Enum, count int32, kind gles.Enum, offset int) {
	c.record("DrawElements")
	units := make(map[gles.Enum]uint32, len(c.unitTextures))
	for u, t := range c.unitTextures {
		units[u] = t
	}
	c.Draws = append(c.Draws, Draw{
		Program:  c.program,
		VAO:      c.vao,
		Mode:     mode,
		Count:    count,
		Kind:     kind,
		Offset:   offset,
		Textures: units,
	})
}

func (c *Context) GetError() gles.Enum {
	if len(c.Errors) == 0 {
		return gles.NoError
	}
	code := c.Errors[0]
	c.Errors = c.Errors[1:]
	return code
}
