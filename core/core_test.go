package core

import (
	"context"
	"log/slog"
	"testing"
	"unsafe"
)

func TestVertexLayout(t *testing.T) {
	if VertexStride != 32 {
		t.Errorf("VertexStride: expected 32, got %d", VertexStride)
	}
	if PositionOffset != 0 || NormalOffset != 12 || UVOffset != 24 {
		t.Errorf("offsets: expected 0/12/24, got %d/%d/%d", PositionOffset, NormalOffset, UVOffset)
	}
	if FloatsPerVertex != 8 {
		t.Errorf("FloatsPerVertex: expected 8, got %d", FloatsPerVertex)
	}
	if a := unsafe.Alignof(Vertex{}); a != 4 {
		t.Errorf("alignment: expected 4, got %d", a)
	}
}

func TestVertexAppendFloats(t *testing.T) {
	var v Vertex
	v.Position.X, v.Position.Y, v.Position.Z = 1, 2, 3
	v.Normal.X, v.Normal.Y, v.Normal.Z = 0, 0, 1
	v.UV.X, v.UV.Y = 0.25, 0.75

	got := v.AppendFloats(nil)
	expected := []float32{1, 2, 3, 0, 0, 1, 0.25, 0.75}
	if len(got) != len(expected) {
		t.Fatalf("AppendFloats: expected %d floats, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("AppendFloats[%d]: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	custom := slog.New(slog.NewTextHandler(nil, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)
	if Logger() != custom {
		t.Error("Logger() did not return the logger passed to SetLogger")
	}

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("SetLogger(nil) left a nil logger")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
