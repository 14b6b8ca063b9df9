package tools

import (
	"github.com/pixelforge/skinstudio/internal/skin"
)

// RectSelect turns a press/drag/release gesture into the surface's active
// selection rectangle. It mutates the selection, never the raster.
type RectSelect struct {
	start   Point
	started bool
}

// Name returns the tool name.
func (*RectSelect) Name() string { return "rect-select" }

// Begin records the gesture start point in surface coordinates.
func (t *RectSelect) Begin(p Point) {
	t.start = p
	t.started = true
}

// Apply ends the gesture at p and installs the resulting selection. A click
// without a prior Begin selects the single pixel under the pointer. A drag
// that normalizes to zero area clears the selection instead of installing a
// degenerate rectangle.
func (t *RectSelect) Apply(s *skin.Surface, p Point, _ Params) Result {
	start := t.start
	if !t.started {
		start = p
	}
	t.started = false

	s.SetSelection(skin.NewSelection(start.X, start.Y, p.X, p.Y))
	return Result{Changed: false}
}
