package host

import (
	"testing"

	"golang.org/x/mobile/event/paint"
)

func TestPainterDrawsOnlyWhenDirty(t *testing.T) {
	var p Painter

	if p.ShouldDraw(paint.Event{}) {
		t.Errorf("clean frame: expected no draw")
	}

	p.Invalidate()
	if !p.ShouldDraw(paint.Event{}) {
		t.Errorf("after invalidate: expected a draw")
	}
	if p.ShouldDraw(paint.Event{}) {
		t.Errorf("second paint: expected no draw")
	}

	p.Invalidate()
	p.Invalidate()
	draws := 0
	for i := 0; i < 3; i++ {
		if p.ShouldDraw(paint.Event{}) {
			draws++
		}
	}
	if draws != 1 {
		t.Errorf("draws after two invalidations: expected 1, got %d", draws)
	}
}

func TestPainterHonoursSystemRedraw(t *testing.T) {
	var p Painter
	if !p.ShouldDraw(paint.Event{External: true}) {
		t.Errorf("external paint: expected a draw")
	}
	if p.ShouldDraw(paint.Event{}) {
		t.Errorf("after external paint: expected no draw")
	}
}
