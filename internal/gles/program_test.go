package gles_test

import (
	"errors"
	"strings"
	"testing"

	"pbr-viewer/internal/gles"
	"pbr-viewer/internal/gles/glestest"
)

func TestNewProgram(t *testing.T) {
	ctx := glestest.New()
	prog, err := gles.NewProgram(ctx, "void main() {}", "void main() {}")
	if err != nil {
		t.Fatalf("NewProgram: unexpected error %v", err)
	}
	if prog == 0 {
		t.Fatal("NewProgram: expected non-zero program")
	}
	if !ctx.Programs[prog] {
		t.Errorf("NewProgram: program %d not linked", prog)
	}
	// Stage objects are released once linked; only the program is live.
	if live := ctx.Live(); live != 1 {
		t.Errorf("Live: expected 1, got %d", live)
	}
}

func TestNewProgramCompileFailure(t *testing.T) {
	tests := []struct {
		name   string
		stage  gles.Enum
		prefix string
	}{
		{"vertex", gles.VertexShader, "vertex: "},
		{"fragment", gles.FragmentShader, "fragment: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := glestest.New()
			ctx.FailCompile = tt.stage

			prog, err := gles.NewProgram(ctx, "vs", "fs")
			if prog != 0 {
				t.Errorf("program: expected 0, got %d", prog)
			}
			if !errors.Is(err, gles.ErrShaderCompile) {
				t.Fatalf("error: expected ErrShaderCompile, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), tt.prefix) {
				t.Errorf("error: expected prefix %q, got %q", tt.prefix, err.Error())
			}
			if strings.Contains(err.Error(), "\x00") {
				t.Errorf("error: log not trimmed: %q", err.Error())
			}
			if live := ctx.Live(); live != 0 {
				t.Errorf("Live: expected 0, got %d", live)
			}
			if len(ctx.Programs) != 0 {
				t.Errorf("CreateProgram: expected no program, got %d", len(ctx.Programs))
			}
		})
	}
}

func TestNewProgramLinkFailure(t *testing.T) {
	ctx := glestest.New()
	ctx.FailLink = true

	prog, err := gles.NewProgram(ctx, "vs", "fs")
	if prog != 0 {
		t.Errorf("program: expected 0, got %d", prog)
	}
	if !errors.Is(err, gles.ErrProgramLink) {
		t.Fatalf("error: expected ErrProgramLink, got %v", err)
	}
	if !strings.Contains(err.Error(), "varying mismatch") {
		t.Errorf("error: expected info log in %q", err.Error())
	}
	if live := ctx.Live(); live != 0 {
		t.Errorf("Live: expected 0, got %d", live)
	}
}

func TestNewProgramSources(t *testing.T) {
	ctx := glestest.New()
	if _, err := gles.NewProgram(ctx, "vertex source", "fragment source"); err != nil {
		t.Fatal(err)
	}
	got := map[gles.Enum]string{}
	for h, kind := range ctx.Shaders {
		got[kind] = ctx.Sources[h]
	}
	if got[gles.VertexShader] != "vertex source" {
		t.Errorf("vertex source: got %q", got[gles.VertexShader])
	}
	if got[gles.FragmentShader] != "fragment source" {
		t.Errorf("fragment source: got %q", got[gles.FragmentShader])
	}
}
