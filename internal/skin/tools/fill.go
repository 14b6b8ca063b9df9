package tools

import (
	"github.com/pixelforge/skinstudio/internal/skin"
	"github.com/pixelforge/skinstudio/pkg/colorx"
)

// Fill flood-fills the 4-connected region of pixels matching the color
// under the pointer with the blend of that color and the paint color.
//
// Fill is deliberately not constrained by the selection rectangle: it runs
// over the whole connected region. Every other mutating tool honors the
// selection; this asymmetry matches the editor's long-standing behavior.
type Fill struct{}

// Name returns the tool name.
func (Fill) Name() string { return "fill" }

// Apply clamps the start point to bounds, computes the target color as
// blend(source, paint), and fills the connected region whose pixels equal
// the original source color. Filling a region that already equals the
// target is a no-op, which also covers fully transparent paint over an
// already matching region.
func (Fill) Apply(s *skin.Surface, p Point, params Params) Result {
	if s.Width() <= 0 || s.Height() <= 0 {
		return Result{}
	}

	p = clampPoint(s, p)
	source := s.GetPixel(p.X, p.Y)
	target := colorx.Blend(source, params.Color)
	if target == source {
		return Result{}
	}

	w, h := s.Width(), s.Height()
	visited := make([]bool, w*h)

	stack := []Point{p}
	visited[p.Y*w+p.X] = true
	changed := false

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Membership is tested against the original source color, never
		// the evolving target, so the fill cannot loop back over itself.
		if s.GetPixel(cur.X, cur.Y) != source {
			continue
		}
		s.SetPixel(cur.X, cur.Y, target)
		changed = true

		for _, n := range [4]Point{
			{cur.X + 1, cur.Y},
			{cur.X - 1, cur.Y},
			{cur.X, cur.Y + 1},
			{cur.X, cur.Y - 1},
		} {
			if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h {
				continue
			}
			if i := n.Y*w + n.X; !visited[i] {
				visited[i] = true
				stack = append(stack, n)
			}
		}
	}

	return Result{Changed: changed}
}
