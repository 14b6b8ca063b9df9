package tools

import (
	"github.com/pixelforge/skinstudio/internal/skin"
	"github.com/pixelforge/skinstudio/pkg/colorx"
)

// Eyedropper samples the color under the pointer. It never mutates the
// surface.
type Eyedropper struct{}

// Name returns the tool name.
func (Eyedropper) Name() string { return "eyedropper" }

// Apply clamps the pointer to the nearest in-bounds pixel and reports its
// color as a hex string. Alpha is not part of the sample.
func (Eyedropper) Apply(s *skin.Surface, p Point, _ Params) Result {
	p = clampPoint(s, p)
	return Result{
		Changed:     false,
		PickedColor: colorx.RGBAToHex(s.GetPixel(p.X, p.Y)),
	}
}
