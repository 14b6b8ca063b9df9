package tools

import (
	"math"

	"github.com/pixelforge/skinstudio/internal/skin"
	"github.com/pixelforge/skinstudio/pkg/colorx"
)

// Brush paints a soft or hard disk of the current color, alpha-composited
// over the existing pixels.
type Brush struct{}

// Name returns the tool name.
func (Brush) Name() string { return "brush" }

// Apply composites the brush color onto every selectable pixel within the
// brush disk. Hardness below 1 attenuates alpha linearly with distance from
// the center. With symmetry on, each write is repeated at the horizontally
// mirrored column, blended against that pixel's own current value.
func (Brush) Apply(s *skin.Surface, p Point, params Params) Result {
	r := radius(params.Size)
	changed := false

	paint := func(x, y int, top colorx.RGBA) {
		if !s.InBounds(x, y) || !s.InSelection(x, y) {
			return
		}
		s.SetPixel(x, y, colorx.Blend(s.GetPixel(x, y), top))
		changed = true
	}

	forEachDiskPixel(p, r, func(x, y int, dist float64) {
		falloff := 1.0
		if params.Hardness < 1 {
			falloff = 1 - (dist/r)*(1-params.Hardness)
			if falloff < 0 {
				falloff = 0
			}
		}
		top := params.Color.WithAlpha(uint8(math.Round(float64(params.Color.A) * falloff)))

		paint(x, y, top)
		if params.Symmetry {
			if mx := s.Width() - 1 - x; mx != x {
				paint(mx, y, top)
			}
		}
	})

	return Result{Changed: changed}
}

// Eraser clears every selectable pixel within the brush disk to fully
// transparent. It ignores hardness and bypasses blending.
type Eraser struct{}

// Name returns the tool name.
func (Eraser) Name() string { return "eraser" }

// Apply writes transparent black into the disk, mirroring under symmetry
// the same way the brush does.
func (Eraser) Apply(s *skin.Surface, p Point, params Params) Result {
	r := radius(params.Size)
	changed := false

	erase := func(x, y int) {
		if !s.InBounds(x, y) || !s.InSelection(x, y) {
			return
		}
		s.SetPixel(x, y, colorx.Transparent)
		changed = true
	}

	forEachDiskPixel(p, r, func(x, y int, _ float64) {
		erase(x, y)
		if params.Symmetry {
			if mx := s.Width() - 1 - x; mx != x {
				erase(mx, y)
			}
		}
	})

	return Result{Changed: changed}
}
