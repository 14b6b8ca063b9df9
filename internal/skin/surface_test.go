package skin

import (
	"image"
	"image/color"
	"testing"

	"github.com/pixelforge/skinstudio/pkg/colorx"
)

func TestNewSurfaceTransparent(t *testing.T) {
	s := New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := s.GetPixel(x, y); got != colorx.Transparent {
				t.Fatalf("fresh surface pixel (%d,%d) = %v, want transparent", x, y, got)
			}
		}
	}
}

func TestOutOfBoundsAccess(t *testing.T) {
	s := New(4, 4)
	red := colorx.RGBA{R: 255, A: 255}

	points := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}, {-5, -5}}
	for _, p := range points {
		s.SetPixel(p[0], p[1], red) // must not panic or write
		if got := s.GetPixel(p[0], p[1]); got != colorx.Transparent {
			t.Errorf("out-of-bounds read (%d,%d) = %v, want transparent", p[0], p[1], got)
		}
	}

	// The raster itself must be untouched.
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if s.GetPixel(x, y) != colorx.Transparent {
				t.Fatalf("out-of-bounds write leaked into (%d,%d)", x, y)
			}
		}
	}
}

func TestSetGetPixel(t *testing.T) {
	s := New(8, 8)
	c := colorx.RGBA{R: 1, G: 2, B: 3, A: 4}
	s.SetPixel(5, 6, c)
	if got := s.GetPixel(5, 6); got != c {
		t.Errorf("GetPixel(5,6) = %v, want %v", got, c)
	}
}

func TestSelectionNormalization(t *testing.T) {
	// Dragging from bottom-right to top-left normalizes the corner order.
	sel := NewSelection(5, 7, 2, 3)
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.X != 2 || sel.Y != 3 || sel.W != 4 || sel.H != 5 {
		t.Errorf("selection = %+v, want {2 3 4 5}", *sel)
	}
}

func TestSelectionSinglePixel(t *testing.T) {
	sel := NewSelection(3, 3, 3, 3)
	if sel == nil || sel.W != 1 || sel.H != 1 {
		t.Errorf("click without drag should select one pixel, got %+v", sel)
	}
}

func TestSetSelectionCollapsesInvalid(t *testing.T) {
	s := New(8, 8)
	s.SetSelection(&Selection{X: 0, Y: 0, W: 0, H: 5})
	if s.Selection() != nil {
		t.Error("zero-width selection should collapse to nil")
	}
	s.SetSelection(&Selection{X: 0, Y: 0, W: 5, H: -1})
	if s.Selection() != nil {
		t.Error("negative-height selection should collapse to nil")
	}
}

func TestInSelection(t *testing.T) {
	s := New(8, 8)
	if !s.InSelection(7, 7) {
		t.Error("with no selection every pixel is paintable")
	}

	s.SetSelection(&Selection{X: 2, Y: 2, W: 2, H: 2})
	if !s.InSelection(2, 2) || !s.InSelection(3, 3) {
		t.Error("pixels inside the selection must be paintable")
	}
	if s.InSelection(1, 2) || s.InSelection(4, 3) || s.InSelection(2, 4) {
		t.Error("pixels outside the selection must not be paintable")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := New(2, 2)
	s.SetPixel(0, 0, colorx.RGBA{R: 9, A: 255})

	snap := s.SnapshotPix()
	s.SetPixel(0, 0, colorx.RGBA{G: 9, A: 255})

	if snap[0] != 9 || snap[1] != 0 {
		t.Errorf("snapshot changed after surface mutation: %v", snap[:4])
	}
}

func TestReplaceClearsSelection(t *testing.T) {
	s := New(4, 4)
	s.SetSelection(&Selection{X: 0, Y: 0, W: 2, H: 2})
	s.Replace(New(8, 8))

	if s.Selection() != nil {
		t.Error("Replace must clear the selection")
	}
	if s.Width() != 8 || s.Height() != 8 {
		t.Errorf("Replace dimensions = %dx%d, want 8x8", s.Width(), s.Height())
	}
}

func TestImageRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 200})

	s := FromImage(src)
	if got := s.GetPixel(1, 1); got != (colorx.RGBA{R: 10, G: 20, B: 30, A: 200}) {
		t.Errorf("FromImage pixel = %v", got)
	}

	out := s.ToImage()
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 200}) {
		t.Errorf("ToImage pixel = %v", got)
	}
}
