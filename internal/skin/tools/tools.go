// Package tools implements the paint tool strategies. Every tool shares one
// Apply contract against a skin.Surface; dispatch is by interface rather
// than a tag switch so adding a tool is a closed, type-checked extension.
package tools

import (
	"math"

	"github.com/pixelforge/skinstudio/internal/skin"
	"github.com/pixelforge/skinstudio/pkg/colorx"
)

// Point is a pointer location in surface pixel coordinates.
type Point struct {
	X, Y int
}

// Params are the settings a tool invocation runs with. They are copied into
// each Apply call; changing them mid-gesture only affects later invocations.
type Params struct {
	// Color carries the paint color with alpha already scaled by the
	// stroke opacity (alpha = round(255 * opacity)).
	Color colorx.RGBA
	// Size is the brush or eraser diameter in surface pixels, >= 1.
	Size int
	// Hardness in [0,1]; 1 disables the radial falloff.
	Hardness float64
	// Symmetry mirrors every mutation across the vertical centerline.
	Symmetry bool
}

// Result reports what an Apply did. Changed=false means no redraw or
// snapshot flush is needed. PickedColor is non-empty only for the
// eyedropper.
type Result struct {
	Changed     bool
	PickedColor string
}

// Tool is a paint tool strategy.
type Tool interface {
	Name() string
	Apply(s *skin.Surface, p Point, params Params) Result
}

// radius returns the brush disk radius for a diameter setting.
func radius(size int) float64 {
	r := float64(size) / 2
	if r < 0.5 {
		return 0.5
	}
	return r
}

// forEachDiskPixel visits every integer pixel within the Euclidean disk of
// the given radius around center, passing the distance from the center.
func forEachDiskPixel(center Point, r float64, visit func(x, y int, dist float64)) {
	span := int(r) + 1
	for y := center.Y - span; y <= center.Y+span; y++ {
		for x := center.X - span; x <= center.X+span; x++ {
			dx := float64(x - center.X)
			dy := float64(y - center.Y)
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist <= r {
				visit(x, y, dist)
			}
		}
	}
}

// clampPoint clamps p to the nearest in-bounds pixel of s.
func clampPoint(s *skin.Surface, p Point) Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.X >= s.Width() {
		p.X = s.Width() - 1
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y >= s.Height() {
		p.Y = s.Height() - 1
	}
	return p
}
