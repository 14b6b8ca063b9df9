package tools

import (
	"bytes"
	"testing"

	"github.com/pixelforge/skinstudio/internal/skin"
	"github.com/pixelforge/skinstudio/pkg/colorx"
)

var (
	opaqueRed  = colorx.RGBA{R: 255, A: 255}
	opaqueBlue = colorx.RGBA{B: 255, A: 255}
)

func brushParams(c colorx.RGBA, size int) Params {
	return Params{Color: c, Size: size, Hardness: 1}
}

func fillSurface(s *skin.Surface, c colorx.RGBA) {
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			s.SetPixel(x, y, c)
		}
	}
}

func TestBrushSinglePixel(t *testing.T) {
	s := skin.New(8, 8)
	res := Brush{}.Apply(s, Point{X: 3, Y: 4}, brushParams(opaqueRed, 1))

	if !res.Changed {
		t.Fatal("brush over a paintable pixel must report changed")
	}
	if got := s.GetPixel(3, 4); got != opaqueRed {
		t.Errorf("pixel = %v, want opaque red", got)
	}
	if got := s.GetPixel(4, 4); got != colorx.Transparent {
		t.Errorf("size-1 brush must not spill to neighbors, got %v", got)
	}
}

func TestBrushBlendsOverExisting(t *testing.T) {
	s := skin.New(4, 4)
	s.SetPixel(1, 1, colorx.RGBA{R: 255, A: 255})

	half := colorx.RGBA{B: 255, A: 128}
	Brush{}.Apply(s, Point{X: 1, Y: 1}, brushParams(half, 1))

	got := s.GetPixel(1, 1)
	want := colorx.Blend(colorx.RGBA{R: 255, A: 255}, half)
	if got != want {
		t.Errorf("blended pixel = %v, want %v", got, want)
	}
}

func TestBrushFalloffMonotonic(t *testing.T) {
	s := skin.New(33, 33)
	center := Point{X: 16, Y: 16}
	params := Params{Color: opaqueRed, Size: 20, Hardness: 0.3}
	Brush{}.Apply(s, center, params)

	// Nominal alpha exactly at the center.
	if a := s.GetPixel(16, 16).A; a != 255 {
		t.Errorf("center alpha = %d, want 255", a)
	}

	// Alpha strictly decreases walking outward along a row.
	prev := s.GetPixel(16, 16).A
	for x := 17; x <= 25; x++ {
		cur := s.GetPixel(x, 16).A
		if cur >= prev && cur != 0 {
			t.Errorf("alpha at distance %d = %d, not below %d", x-16, cur, prev)
		}
		prev = cur
	}
}

func TestBrushBoundsSafety(t *testing.T) {
	s := skin.New(8, 8)
	before := s.SnapshotPix()

	for _, tool := range []Tool{Brush{}, Eraser{}} {
		for _, p := range []Point{{-50, -50}, {100, 4}, {4, 100}, {-100, 100}} {
			tool.Apply(s, p, brushParams(opaqueRed, 3))
		}
	}

	if !bytes.Equal(before, s.SnapshotPix()) {
		t.Error("far out-of-bounds strokes must leave the raster unchanged")
	}
}

func TestBrushPartialOverlapClips(t *testing.T) {
	// A brush centered just outside still paints the overlapping in-bounds
	// pixels and nothing else.
	s := skin.New(8, 8)
	res := Brush{}.Apply(s, Point{X: -1, Y: 4}, brushParams(opaqueRed, 4))
	if !res.Changed {
		t.Fatal("overlapping stroke must change the surface")
	}
	if s.GetPixel(0, 4) == colorx.Transparent {
		t.Error("in-bounds overlap must be painted")
	}
}

func TestSelectionContainment(t *testing.T) {
	s := skin.New(16, 16)
	s.SetSelection(&skin.Selection{X: 4, Y: 4, W: 4, H: 4})

	Brush{}.Apply(s, Point{X: 5, Y: 5}, brushParams(opaqueRed, 12))
	Eraser{}.Apply(s, Point{X: 6, Y: 6}, brushParams(opaqueRed, 12))
	Brush{}.Apply(s, Point{X: 5, Y: 5}, Params{Color: opaqueBlue, Size: 12, Hardness: 1, Symmetry: true})

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			inside := x >= 4 && x < 8 && y >= 4 && y < 8
			if !inside && s.GetPixel(x, y) != colorx.Transparent {
				t.Fatalf("pixel (%d,%d) outside selection was mutated", x, y)
			}
		}
	}
}

func TestEraser(t *testing.T) {
	s := skin.New(8, 8)
	fillSurface(s, opaqueRed)

	res := Eraser{}.Apply(s, Point{X: 4, Y: 4}, brushParams(colorx.Transparent, 3))
	if !res.Changed {
		t.Fatal("eraser over opaque pixels must report changed")
	}
	if got := s.GetPixel(4, 4); got != colorx.Transparent {
		t.Errorf("erased pixel = %v, want transparent", got)
	}
	// Corners outside the disk stay put.
	if got := s.GetPixel(0, 0); got != opaqueRed {
		t.Errorf("corner pixel = %v, want untouched red", got)
	}
}

func TestEyedropperRoundTrip(t *testing.T) {
	s := skin.New(8, 8)
	c := colorx.RGBA{R: 12, G: 180, B: 3, A: 77}
	s.SetPixel(2, 6, c)

	res := Eyedropper{}.Apply(s, Point{X: 2, Y: 6}, Params{})
	if res.Changed {
		t.Error("eyedropper must never report changed")
	}

	back := colorx.HexToRGBA(res.PickedColor, 1)
	if back.R != c.R || back.G != c.G || back.B != c.B {
		t.Errorf("picked %q -> %v, want RGB of %v", res.PickedColor, back, c)
	}
}

func TestEyedropperClampsToBounds(t *testing.T) {
	s := skin.New(8, 8)
	s.SetPixel(7, 7, opaqueBlue)

	res := Eyedropper{}.Apply(s, Point{X: 100, Y: 100}, Params{})
	if res.PickedColor != colorx.RGBAToHex(opaqueBlue) {
		t.Errorf("clamped pick = %q, want blue", res.PickedColor)
	}
}

func TestFillWholeSurface(t *testing.T) {
	s := skin.New(5, 5)
	res := Fill{}.Apply(s, Point{X: 2, Y: 2}, Params{Color: opaqueRed})

	if !res.Changed {
		t.Fatal("fill of a transparent surface must report changed")
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if got := s.GetPixel(x, y); got != opaqueRed {
				t.Fatalf("pixel (%d,%d) = %v, want opaque red", x, y, got)
			}
		}
	}
}

func TestFillConfinedByBorder(t *testing.T) {
	s := skin.New(5, 5)
	for i := 0; i < 5; i++ {
		s.SetPixel(i, 0, opaqueBlue)
		s.SetPixel(i, 4, opaqueBlue)
		s.SetPixel(0, i, opaqueBlue)
		s.SetPixel(4, i, opaqueBlue)
	}

	Fill{}.Apply(s, Point{X: 2, Y: 2}, Params{Color: opaqueRed})

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			onBorder := x == 0 || x == 4 || y == 0 || y == 4
			got := s.GetPixel(x, y)
			if onBorder && got != opaqueBlue {
				t.Fatalf("border pixel (%d,%d) = %v, want untouched blue", x, y, got)
			}
			if !onBorder && got != opaqueRed {
				t.Fatalf("interior pixel (%d,%d) = %v, want red", x, y, got)
			}
		}
	}
}

func TestFillIdempotent(t *testing.T) {
	s := skin.New(5, 5)
	Fill{}.Apply(s, Point{X: 2, Y: 2}, Params{Color: opaqueRed})
	before := s.SnapshotPix()

	res := Fill{}.Apply(s, Point{X: 2, Y: 2}, Params{Color: opaqueRed})
	if res.Changed {
		t.Error("refilling an already filled region must report changed=false")
	}
	if !bytes.Equal(before, s.SnapshotPix()) {
		t.Error("refill must leave the raster byte-identical")
	}
}

func TestFillTransparentPaintNoOp(t *testing.T) {
	s := skin.New(5, 5)
	fillSurface(s, opaqueRed)
	before := s.SnapshotPix()

	res := Fill{}.Apply(s, Point{X: 2, Y: 2}, Params{Color: colorx.Transparent})
	if res.Changed {
		t.Error("fully transparent paint over matching region must be a no-op")
	}
	if !bytes.Equal(before, s.SnapshotPix()) {
		t.Error("no-op fill must not touch pixels")
	}
}

func TestFillClampsStartPoint(t *testing.T) {
	// A fill started outside the surface acts from the nearest in-bounds
	// pixel, here the top-left corner.
	s := skin.New(5, 5)
	s.SetPixel(2, 2, opaqueBlue) // not part of the transparent region

	res := Fill{}.Apply(s, Point{X: -5, Y: -5}, Params{Color: opaqueRed})
	if !res.Changed {
		t.Fatal("clamped fill must change the surface")
	}
	if got := s.GetPixel(0, 0); got != opaqueRed {
		t.Errorf("corner pixel = %v, want red from the clamped start", got)
	}
	if got := s.GetPixel(2, 2); got != opaqueBlue {
		t.Errorf("wall pixel = %v, want untouched blue", got)
	}
}

func TestFillIgnoresSelection(t *testing.T) {
	s := skin.New(8, 8)
	s.SetSelection(&skin.Selection{X: 0, Y: 0, W: 2, H: 2})

	Fill{}.Apply(s, Point{X: 4, Y: 4}, Params{Color: opaqueRed})

	// Fill runs over the whole connected region regardless of selection.
	if got := s.GetPixel(7, 7); got != opaqueRed {
		t.Errorf("pixel outside selection = %v, want red (fill ignores selection)", got)
	}
}

func TestSymmetryMirrors(t *testing.T) {
	s := skin.New(16, 16)
	Brush{}.Apply(s, Point{X: 3, Y: 5}, Params{Color: opaqueRed, Size: 1, Hardness: 1, Symmetry: true})

	if got := s.GetPixel(3, 5); got != opaqueRed {
		t.Errorf("painted pixel = %v", got)
	}
	if got := s.GetPixel(12, 5); got != opaqueRed {
		t.Errorf("mirrored pixel (12,5) = %v, want opaque red", got)
	}
}

func TestSymmetryMirrorBlendsIndependently(t *testing.T) {
	s := skin.New(16, 16)
	s.SetPixel(12, 5, opaqueBlue) // mirror target has its own bottom color

	half := colorx.RGBA{R: 255, A: 128}
	Brush{}.Apply(s, Point{X: 3, Y: 5}, Params{Color: half, Size: 1, Hardness: 1, Symmetry: true})

	wantLeft := colorx.Blend(colorx.Transparent, half)
	wantRight := colorx.Blend(opaqueBlue, half)
	if got := s.GetPixel(3, 5); got != wantLeft {
		t.Errorf("painted pixel = %v, want %v", got, wantLeft)
	}
	if got := s.GetPixel(12, 5); got != wantRight {
		t.Errorf("mirrored pixel = %v, want blend against its own value %v", got, wantRight)
	}
}

func TestSymmetryCenterlinePaintsOnce(t *testing.T) {
	// Odd width: x == (width-1)/2 is its own mirror and must blend once.
	s := skin.New(15, 15)
	half := colorx.RGBA{R: 255, A: 128}
	Brush{}.Apply(s, Point{X: 7, Y: 7}, Params{Color: half, Size: 1, Hardness: 1, Symmetry: true})

	want := colorx.Blend(colorx.Transparent, half)
	if got := s.GetPixel(7, 7); got != want {
		t.Errorf("centerline pixel = %v, want single blend %v", got, want)
	}
}

func TestRectSelectGesture(t *testing.T) {
	s := skin.New(16, 16)
	rs := &RectSelect{}

	rs.Begin(Point{X: 10, Y: 12})
	res := rs.Apply(s, Point{X: 3, Y: 5}, Params{})
	if res.Changed {
		t.Error("rect select must not report a raster change")
	}

	sel := s.Selection()
	if sel == nil {
		t.Fatal("expected an active selection")
	}
	if sel.X != 3 || sel.Y != 5 || sel.W != 8 || sel.H != 8 {
		t.Errorf("selection = %+v, want {3 5 8 8}", *sel)
	}
}

func TestRectSelectClickSelectsPixel(t *testing.T) {
	s := skin.New(16, 16)
	rs := &RectSelect{}
	rs.Begin(Point{X: 6, Y: 6})
	rs.Apply(s, Point{X: 6, Y: 6}, Params{})

	sel := s.Selection()
	if sel == nil || sel.W != 1 || sel.H != 1 {
		t.Errorf("click selection = %+v, want 1x1", sel)
	}
}
