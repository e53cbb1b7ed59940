// Package gles is the narrow slice of OpenGL (ES) 3.0 the viewer needs,
// expressed as an interface so the same renderer runs on desktop GL and on
// gomobile's GLES binding. Object handles are plain uint32 names; 0 is never
// a valid object.
package gles

// Enum is a GL enumerant. Values are the Khronos numbers, which are shared
// by OpenGL 4.x core and OpenGL ES 3.0.
type Enum uint32

const (
	NoError                     Enum = 0
	InvalidEnum                 Enum = 0x0500
	InvalidValue                Enum = 0x0501
	InvalidOperation            Enum = 0x0502
	OutOfMemory                 Enum = 0x0505
	InvalidFramebufferOperation Enum = 0x0506

	VertexShader   Enum = 0x8B31
	FragmentShader Enum = 0x8B30

	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4

	Float            Enum = 0x1406
	UnsignedInt      Enum = 0x1405
	UnsignedByte     Enum = 0x1401
	Triangles        Enum = 0x0004
	Texture2D        Enum = 0x0DE1
	Texture0         Enum = 0x84C0
	RGBA             Enum = 0x1908
	RGBA8            Enum = 0x8058
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803
	TextureMinFilter Enum = 0x2801
	TextureMagFilter Enum = 0x2800
	ClampToEdge      Enum = 0x812F
	Nearest          Enum = 0x2600

	ColorBufferBit   Enum = 0x4000
	DepthBufferBit   Enum = 0x0100
	DepthTest        Enum = 0x0B71
	Blend            Enum = 0x0BE2
	SrcAlpha         Enum = 0x0302
	OneMinusSrcAlpha Enum = 0x0303
)

// Context is a GL context bound to the calling thread. Implementations do
// not synchronise; every call must come from the thread (or gomobile event
// goroutine) that owns the context.
type Context interface {
	// GLSLVersion is the text following "#version" for shaders compiled by
	// this context, e.g. "300 es" or "410 core".
	GLSLVersion() string
	// IsCurrent reports whether the context still exists and is current.
	IsCurrent() bool

	CreateShader(kind Enum) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	// GetUniformLocation returns -1 for names that are not active uniforms.
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	UniformMatrix4fv(location int32, m [16]float32)

	CreateBuffer() uint32
	BindBuffer(target Enum, buffer uint32)
	BufferData(target Enum, data []byte, usage Enum)
	DeleteBuffer(buffer uint32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, kind Enum, normalized bool, stride, offset int)

	CreateTexture() uint32
	ActiveTexture(unit Enum)
	BindTexture(target Enum, texture uint32)
	TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, kind Enum, pixels []byte)
	TexParameteri(target, pname Enum, param int32)
	DeleteTexture(texture uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Enable(capability Enum)
	BlendFunc(src, dst Enum)
	DrawElements(mode Enum, count int32, kind Enum, offset int)
	GetError() Enum
}
