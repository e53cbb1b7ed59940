package scene

import (
	"bytes"
	"testing"
	"testing/fstest"
)

func TestDecodeTexture(t *testing.T) {
	tex, err := DecodeTexture("grad.png", bytes.NewReader(pngBytes(t, 3, 2)), 0)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 3 || tex.Height != 2 {
		t.Fatalf("size: expected 3x2, got %dx%d", tex.Width, tex.Height)
	}
	if len(tex.Pixels) != 3*2*4 {
		t.Fatalf("Pixels: expected %d bytes, got %d", 3*2*4, len(tex.Pixels))
	}
	// pixel (2, 1) is the last one, top row first
	px := tex.Pixels[len(tex.Pixels)-4:]
	if px[0] != 2 || px[1] != 1 || px[2] != 200 || px[3] != 255 {
		t.Errorf("pixel (2, 1): expected [2 1 200 255], got %v", px)
	}
}

func TestDecodeTextureDownscale(t *testing.T) {
	tex, err := DecodeTexture("big.png", bytes.NewReader(pngBytes(t, 64, 16)), 16)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 16 || tex.Height != 4 {
		t.Errorf("size: expected 16x4, got %dx%d", tex.Width, tex.Height)
	}
	if len(tex.Pixels) != 16*4*4 {
		t.Errorf("Pixels: expected %d bytes, got %d", 16*4*4, len(tex.Pixels))
	}
}

func TestDecodeTextureInvalid(t *testing.T) {
	if _, err := DecodeTexture("junk", bytes.NewReader([]byte("junk")), 0); err == nil {
		t.Error("DecodeTexture: expected error for unknown format")
	}
}

func TestLoadTextureFS(t *testing.T) {
	fsys := fstest.MapFS{"tex/a.png": {Data: pngBytes(t, 2, 2)}}
	tex, err := LoadTextureFS(fsys, "tex/a.png", 0)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Name != "tex/a.png" {
		t.Errorf("Name: expected tex/a.png, got %q", tex.Name)
	}
	if _, err := LoadTextureFS(fsys, "tex/missing.png", 0); err == nil {
		t.Error("LoadTextureFS: expected error for missing file")
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 0, 100, 50},
		{100, 50, 200, 100, 50},
		{100, 50, 10, 10, 5},
		{50, 100, 10, 5, 10},
		{1000, 1, 10, 10, 1},
		{64, 64, 64, 64, 64},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, tt.max)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fitWithin(%d, %d, %d): expected %dx%d, got %dx%d",
				tt.w, tt.h, tt.max, tt.wantW, tt.wantH, w, h)
		}
	}
}

func TestNewSolidTexture(t *testing.T) {
	tex := NewSolidTexture("white", 255, 255, 255, 255)
	if tex.Width != 1 || tex.Height != 1 || len(tex.Pixels) != 4 {
		t.Errorf("NewSolidTexture: got %dx%d with %d bytes", tex.Width, tex.Height, len(tex.Pixels))
	}
}
