package editor

import (
	"bytes"
	"testing"

	"github.com/pixelforge/skinstudio/internal/skin"
	"github.com/pixelforge/skinstudio/internal/skin/tools"
)

func TestPublisherCoalesces(t *testing.T) {
	p := NewPublisher()

	for i := 0; i < 3; i++ {
		p.Publish(&Snapshot{Generation: 0, Width: 1, Height: 1, Pix: []uint8{uint8(i), 0, 0, 255}})
	}

	snap, ok := p.Take()
	if !ok {
		t.Fatal("expected a pending snapshot")
	}
	if snap.Pix[0] != 2 {
		t.Errorf("take returned snapshot %d, want the latest (2)", snap.Pix[0])
	}

	if _, ok := p.Take(); ok {
		t.Error("slot must be empty after take; only one snapshot may be in flight")
	}
}

func TestPublisherDropsStaleGeneration(t *testing.T) {
	p := NewPublisher()
	p.Publish(&Snapshot{Generation: 0})

	p.Advance() // texture reload: generation 0 snapshots are now stale

	if _, ok := p.Take(); ok {
		t.Error("snapshot from generation 0 must be dropped after advancing to 1")
	}

	// A stale snapshot arriving after the reload is dropped too.
	p.Publish(&Snapshot{Generation: 0})
	if _, ok := p.Take(); ok {
		t.Error("late stale snapshot must be dropped on arrival")
	}

	p.Publish(&Snapshot{Generation: 1})
	if _, ok := p.Take(); !ok {
		t.Error("current-generation snapshot must be delivered")
	}
}

func TestSessionApplyPublishes(t *testing.T) {
	s := NewSession(skin.New(8, 8))
	s.SetColorHex("#ff0000")

	s.Apply(tools.Point{X: 4, Y: 4})

	snap, ok := s.Publisher().Take()
	if !ok {
		t.Fatal("a changing stroke must publish a snapshot")
	}
	if snap.Width != 8 || snap.Height != 8 {
		t.Errorf("snapshot dims = %dx%d, want 8x8", snap.Width, snap.Height)
	}
	i := (4*8 + 4) * 4
	if snap.Pix[i] != 255 || snap.Pix[i+3] != 255 {
		t.Errorf("snapshot pixel = %v, want opaque red", snap.Pix[i:i+4])
	}
}

func TestSessionEyedropperUpdatesColorWithoutPublishing(t *testing.T) {
	surface := skin.New(8, 8)
	s := NewSession(surface)
	s.SetColorHex("#00ff00")
	s.Apply(tools.Point{X: 2, Y: 2}) // paint green

	s.Publisher().Take() // drain

	s.SetColorHex("#123456")
	s.SetActiveTool(KindEyedropper)
	s.Apply(tools.Point{X: 2, Y: 2})

	if got := s.ColorHex(); got != "#00ff00" {
		t.Errorf("picked color = %q, want #00ff00", got)
	}
	if _, ok := s.Publisher().Take(); ok {
		t.Error("eyedropper must not publish a snapshot")
	}
}

func TestSessionLoadSurfaceInvalidatesInFlight(t *testing.T) {
	s := NewSession(skin.New(skin.AtlasWidth, skin.HeightLegacy))
	s.Apply(tools.Point{X: 1, Y: 1}) // leaves a generation-0 snapshot pending

	s.LoadSurface(skin.New(skin.AtlasWidth, skin.HeightExtended))

	snap, ok := s.Publisher().Take()
	if !ok {
		t.Fatal("load must publish the fresh raster")
	}
	if snap.Generation != 1 {
		t.Errorf("snapshot generation = %d, want 1", snap.Generation)
	}
	if snap.Height != skin.HeightExtended {
		t.Errorf("snapshot height = %d, want the newly loaded %d", snap.Height, skin.HeightExtended)
	}
}

func TestSessionRectSelectGesture(t *testing.T) {
	s := NewSession(skin.New(16, 16))
	s.SetActiveTool(KindRectSelect)

	s.BeginGesture(tools.Point{X: 2, Y: 3})
	s.Apply(tools.Point{X: 9, Y: 7})

	sel, ok := s.SelectionRect()
	if !ok {
		t.Fatal("expected a selection after the gesture")
	}
	if sel.X != 2 || sel.Y != 3 || sel.W != 8 || sel.H != 5 {
		t.Errorf("selection = %+v, want {2 3 8 5}", sel)
	}

	s.ClearSelection()
	if _, ok := s.SelectionRect(); ok {
		t.Error("selection must be gone after ClearSelection")
	}
}

func TestWorkerMatchesInline(t *testing.T) {
	stroke := func(s *Session) {
		s.SetColorHex("#aa3311")
		s.SetBrushSize(5)
		s.SetHardness(0.4)
		for x := 2; x < 30; x += 3 {
			s.Apply(tools.Point{X: x, Y: 16})
		}
		s.SetActiveTool(KindFill)
		s.SetColorHex("#2244cc")
		s.SetOpacity(0.5)
		s.Apply(tools.Point{X: 60, Y: 60})
	}

	inline := NewSession(skin.New(skin.AtlasWidth, skin.HeightLegacy))
	stroke(inline)

	workered := NewSession(skin.New(skin.AtlasWidth, skin.HeightLegacy))
	workered.StartWorker()
	defer workered.Close()
	stroke(workered)
	workered.Sync()

	a := inline.Surface().SnapshotPix()
	b := workered.Surface().SnapshotPix()
	if !bytes.Equal(a, b) {
		t.Error("worker and inline application must produce identical rasters")
	}
}

func TestToolKindString(t *testing.T) {
	if KindBrush.String() != "brush" || KindRectSelect.String() != "rect-select" {
		t.Error("tool kind names are wrong")
	}
}
