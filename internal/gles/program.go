package gles

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShaderCompile = errors.New("shader compile failed")
	ErrProgramLink   = errors.New("program link failed")
)

// NewProgram compiles vertSrc and fragSrc and links them into a program.
// On any failure every object created so far is deleted and 0 is returned.
// The stage objects are flagged for deletion once the program is linked, so
// they live exactly as long as the program.
func NewProgram(ctx Context, vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(ctx, vertSrc, VertexShader)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(ctx, fragSrc, FragmentShader)
	if err != nil {
		ctx.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := ctx.CreateProgram()
	ctx.AttachShader(prog, vert)
	ctx.AttachShader(prog, frag)
	ctx.LinkProgram(prog)

	ctx.DeleteShader(vert)
	ctx.DeleteShader(frag)

	if !ctx.ProgramLinked(prog) {
		log := strings.TrimRight(ctx.ProgramInfoLog(prog), "\x00\n")
		ctx.DeleteProgram(prog)
		return 0, fmt.Errorf("%w: %s", ErrProgramLink, log)
	}
	return prog, nil
}

func compileShader(ctx Context, src string, kind Enum) (uint32, error) {
	shader := ctx.CreateShader(kind)
	if shader == 0 {
		return 0, fmt.Errorf("%w: could not create shader object", ErrShaderCompile)
	}
	ctx.ShaderSource(shader, src)
	ctx.CompileShader(shader)

	if !ctx.ShaderCompiled(shader) {
		log := strings.TrimRight(ctx.ShaderInfoLog(shader), "\x00\n")
		ctx.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrShaderCompile, log)
	}
	return shader, nil
}
