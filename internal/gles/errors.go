package gles

import (
	"fmt"

	"pbr-viewer/core"
)

// maxQueuedErrors bounds the drain loop; a lost context may report
// errors forever.
const maxQueuedErrors = 16

// LogErrors drains the GL error queue, logging each code against op, and
// returns the codes it saw. GL errors are diagnostics only; nothing in the
// viewer recovers from them.
func LogErrors(ctx Context, op string) []Enum {
	var codes []Enum
	for i := 0; i < maxQueuedErrors; i++ {
		code := ctx.GetError()
		if code == NoError {
			break
		}
		codes = append(codes, code)
		core.Logger().Warn("gl error", "op", op, "code", fmt.Sprintf("0x%04x", uint32(code)), "name", code.String())
	}
	return codes
}

func (e Enum) String() string {
	switch e {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("0x%04x", uint32(e))
}
