package host

import "golang.org/x/mobile/event/paint"

// Painter decides which paint events draw a frame. The scene is static, so
// a frame is drawn only after something invalidated the last one or the
// system asked for a redraw.
type Painter struct {
	dirty bool
}

// Invalidate marks the last frame stale.
func (p *Painter) Invalidate() { p.dirty = true }

// ShouldDraw reports whether e draws a frame and marks the frame clean.
func (p *Painter) ShouldDraw(e paint.Event) bool {
	draw := p.dirty || e.External
	p.dirty = false
	return draw
}
