// Package skin holds the editable skin raster: a bounds-checked RGBA pixel
// surface with an optional rectangular selection constraining paint tools.
package skin

import (
	"image"

	"github.com/pixelforge/skinstudio/pkg/colorx"
)

// AtlasWidth is the fixed width of every skin texture.
const AtlasWidth = 64

// Valid atlas heights: 64 holds the base layer only, 128 adds overlay
// regions in the lower half.
const (
	HeightLegacy   = 64
	HeightExtended = 128
)

// Surface is a width×height RGBA raster. Pixel access is bounds-checked;
// out-of-range reads return transparent black and out-of-range writes are
// dropped. The selection rectangle, when set, is consulted by the paint
// tools, not enforced here.
type Surface struct {
	width     int
	height    int
	pix       []uint8 // RGBA, 4 bytes per pixel, row-major from top-left
	selection *Selection
}

// New creates a fully transparent surface. Height should be 64 or 128; any
// positive dimensions are accepted so tests can use small rasters.
func New(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// FromImage creates a surface holding a copy of the image's pixels.
func FromImage(img image.Image) *Surface {
	b := img.Bounds()
	s := New(b.Dx(), b.Dy())

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == b.Dx()*4 {
		copy(s.pix, rgba.Pix)
		return s
	}

	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			r, g, b2, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*s.width + x) * 4
			// RGBA() returns alpha-premultiplied 16-bit channels.
			s.pix[i+0] = straight(r, a)
			s.pix[i+1] = straight(g, a)
			s.pix[i+2] = straight(b2, a)
			s.pix[i+3] = uint8(a >> 8)
		}
	}
	return s
}

func straight(c, a uint32) uint8 {
	if a == 0 {
		return 0
	}
	return uint8((c * 0xffff / a) >> 8)
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// InBounds reports whether (x, y) addresses a pixel of the surface.
func (s *Surface) InBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// GetPixel returns the pixel at (x, y), or transparent black out of bounds.
func (s *Surface) GetPixel(x, y int) colorx.RGBA {
	if !s.InBounds(x, y) {
		return colorx.Transparent
	}
	i := (y*s.width + x) * 4
	return colorx.RGBA{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2], A: s.pix[i+3]}
}

// SetPixel writes the pixel at (x, y). Out-of-bounds writes are dropped.
func (s *Surface) SetPixel(x, y int, c colorx.RGBA) {
	if !s.InBounds(x, y) {
		return
	}
	i := (y*s.width + x) * 4
	s.pix[i+0] = c.R
	s.pix[i+1] = c.G
	s.pix[i+2] = c.B
	s.pix[i+3] = c.A
}

// Selection returns the active selection, or nil when nothing is selected.
func (s *Surface) Selection() *Selection { return s.selection }

// SetSelection replaces the active selection. Invalid or degenerate
// selections collapse to nil.
func (s *Surface) SetSelection(sel *Selection) {
	if sel != nil && !sel.Valid() {
		sel = nil
	}
	s.selection = sel
}

// ClearSelection removes the active selection.
func (s *Surface) ClearSelection() { s.selection = nil }

// InSelection reports whether (x, y) may be mutated under the current
// selection. With no selection every in-bounds pixel is paintable.
func (s *Surface) InSelection(x, y int) bool {
	if s.selection == nil {
		return true
	}
	return s.selection.Contains(x, y)
}

// SnapshotPix returns an independent copy of the raw RGBA buffer. The copy
// may be handed to another goroutine; later surface mutation does not
// affect it.
func (s *Surface) SnapshotPix() []uint8 {
	out := make([]uint8, len(s.pix))
	copy(out, s.pix)
	return out
}

// Pix returns the backing buffer without copying. Callers must not retain
// it across mutations; use SnapshotPix for cross-goroutine hand-off.
func (s *Surface) Pix() []uint8 { return s.pix }

// Replace swaps in a new raster wholesale, clearing the selection. It is
// used when a different skin asset is loaded. The replacement surface is
// consumed; the receiver keeps its identity for callers holding it.
func (s *Surface) Replace(other *Surface) {
	s.width = other.width
	s.height = other.height
	s.pix = other.pix
	s.selection = nil
}

// ToImage converts the raster to a standard image for encoding.
func (s *Surface) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.pix)
	return img
}
