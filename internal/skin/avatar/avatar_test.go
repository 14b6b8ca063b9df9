package avatar

import (
	"math"
	"testing"

	"github.com/pixelforge/skinstudio/internal/engine/picking"
	"github.com/pixelforge/skinstudio/internal/skin"
)

func allVisible() [PartCount]bool {
	var v [PartCount]bool
	for i := range v {
		v[i] = true
	}
	return v
}

func TestBuildBaseCuboidCount(t *testing.T) {
	m := Build(Options{Variant: Classic, AtlasHeight: skin.HeightLegacy})
	if len(m.Cuboids) != PartCount {
		t.Fatalf("64-tall atlas model has %d cuboids, want %d (no overlays)", len(m.Cuboids), PartCount)
	}
	for _, c := range m.Cuboids {
		if c.Overlay {
			t.Errorf("part %v: overlay cuboid present on a 64-tall atlas", c.Part)
		}
	}
}

func TestBuildOverlayCuboids(t *testing.T) {
	m := Build(Options{Variant: Classic, AtlasHeight: skin.HeightExtended, OverlayVisible: allVisible()})
	if len(m.Cuboids) != 2*PartCount {
		t.Fatalf("128-tall atlas with all overlays has %d cuboids, want %d", len(m.Cuboids), 2*PartCount)
	}

	overlays := 0
	for _, c := range m.Cuboids {
		if !c.Overlay {
			continue
		}
		overlays++
		// Overlay regions live in the lower half of the atlas.
		for f, r := range c.Faces {
			if r.Y < skin.HeightLegacy {
				t.Errorf("part %v face %d: overlay rect %+v above y=64", c.Part, f, r)
			}
		}
		// The shell is slightly larger than its base part.
		size, center, _ := partGeometry(c.Part, Classic)
		if c.Center != center {
			t.Errorf("part %v: overlay center %v differs from base %v", c.Part, c.Center, center)
		}
		for axis := 0; axis < 3; axis++ {
			if c.Half[axis] <= size[axis]/2 {
				t.Errorf("part %v axis %d: overlay half %v not inflated over %v", c.Part, axis, c.Half[axis], size[axis]/2)
			}
		}
	}
	if overlays != PartCount {
		t.Errorf("overlay cuboid count = %d, want %d", overlays, PartCount)
	}
}

func TestOverlayVisibilityToggle(t *testing.T) {
	vis := allVisible()
	vis[Head] = false
	m := Build(Options{Variant: Classic, AtlasHeight: skin.HeightExtended, OverlayVisible: vis})

	for _, c := range m.Cuboids {
		if c.Overlay && c.Part == Head {
			t.Error("hidden head overlay was built")
		}
	}
	if len(m.Cuboids) != 2*PartCount-1 {
		t.Errorf("cuboid count = %d, want %d", len(m.Cuboids), 2*PartCount-1)
	}
}

func TestFaceRectsInsideAtlas(t *testing.T) {
	for _, variant := range []Variant{Classic, Slim} {
		for _, height := range []int{skin.HeightLegacy, skin.HeightExtended} {
			m := Build(Options{Variant: variant, AtlasHeight: height, OverlayVisible: allVisible()})
			for _, c := range m.Cuboids {
				for f, r := range c.Faces {
					if r.W <= 0 || r.H <= 0 {
						t.Errorf("%v/%v face %d: empty rect %+v", variant, c.Part, f, r)
					}
					if r.X < 0 || r.Y < 0 || r.X+r.W > skin.AtlasWidth || r.Y+r.H > height {
						t.Errorf("%v/%v face %d: rect %+v outside %dx%d atlas", variant, c.Part, f, r, skin.AtlasWidth, height)
					}
				}
			}
		}
	}
}

func TestArmWidthByVariant(t *testing.T) {
	classic := Build(Options{Variant: Classic, AtlasHeight: skin.HeightLegacy})
	slim := Build(Options{Variant: Slim, AtlasHeight: skin.HeightLegacy})

	for _, part := range []PartID{RightArm, LeftArm} {
		cw := classic.Cuboids[part].Faces[FacePosZ].W
		sw := slim.Cuboids[part].Faces[FacePosZ].W
		if cw != 4 || sw != 3 {
			t.Errorf("%v front widths classic/slim = %d/%d, want 4/3", part, cw, sw)
		}
		if classic.Cuboids[part].Half[0] != 2 || slim.Cuboids[part].Half[0] != 1.5 {
			t.Errorf("%v half extents classic/slim = %v/%v, want 2/1.5",
				part, classic.Cuboids[part].Half[0], slim.Cuboids[part].Half[0])
		}
		// Positions are variant-invariant.
		if classic.Cuboids[part].Center != slim.Cuboids[part].Center {
			t.Errorf("%v center differs between variants", part)
		}
	}

	// All non-arm parts are fully variant-invariant.
	for _, part := range []PartID{Head, Torso, RightLeg, LeftLeg} {
		if classic.Cuboids[part].Faces != slim.Cuboids[part].Faces {
			t.Errorf("%v atlas rects differ between variants", part)
		}
	}
}

func TestUVBijectivity(t *testing.T) {
	for _, variant := range []Variant{Classic, Slim} {
		for _, height := range []int{skin.HeightLegacy, skin.HeightExtended} {
			m := Build(Options{Variant: variant, AtlasHeight: height, OverlayVisible: allVisible()})
			for _, c := range m.Cuboids {
				for f, r := range c.Faces {
					uv := r.UV(height)
					x := float64(uv.U0) * skin.AtlasWidth
					y := float64(1-uv.V0) * float64(height)
					w := float64(uv.U1-uv.U0) * skin.AtlasWidth
					h := float64(uv.V0-uv.V1) * float64(height)

					if math.Abs(x-float64(r.X)) > 1 || math.Abs(y-float64(r.Y)) > 1 ||
						math.Abs(w-float64(r.W)) > 1 || math.Abs(h-float64(r.H)) > 1 {
						t.Errorf("%v/%v face %d: inverse UV = (%.2f,%.2f,%.2f,%.2f), want %+v",
							variant, c.Part, f, x, y, w, h, r)
					}
				}
			}
		}
	}
}

func TestMeshShape(t *testing.T) {
	m := Build(Options{Variant: Classic, AtlasHeight: skin.HeightLegacy})
	if got, want := len(m.Mesh.Vertices), PartCount*24; got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}
	if got, want := len(m.Mesh.Indices), PartCount*36; got != want {
		t.Errorf("index count = %d, want %d", got, want)
	}
	for _, i := range m.Mesh.Indices {
		if int(i) >= len(m.Mesh.Vertices) {
			t.Fatalf("index %d out of range", i)
		}
	}
}

func TestPickHeadFrontCenter(t *testing.T) {
	m := Build(Options{Variant: Classic, AtlasHeight: skin.HeightLegacy})

	// Straight at the center of the head's front face (+Z at z=4,
	// center (0,28)). The head front rect is (8,8,8,8), so its center
	// maps to atlas pixel (12,12).
	ray := picking.Ray{Origin: [3]float32{0, 28, 100}, Direction: [3]float32{0, 0, -1}}
	x, y, ok := m.Pick(ray)
	if !ok {
		t.Fatal("ray at the head must hit")
	}
	if x != 12 || y != 12 {
		t.Errorf("pick = (%d,%d), want (12,12)", x, y)
	}
}

func TestPickFaceCornerExact(t *testing.T) {
	m := Build(Options{Variant: Classic, AtlasHeight: skin.HeightLegacy})

	// The top-left corner of the head's front face maps exactly to the
	// rect's top-left atlas corner (8,8).
	ray := picking.Ray{Origin: [3]float32{-4, 32, 100}, Direction: [3]float32{0, 0, -1}}
	x, y, ok := m.Pick(ray)
	if !ok {
		t.Fatal("corner ray must hit")
	}
	if x != 8 || y != 8 {
		t.Errorf("pick = (%d,%d), want (8,8)", x, y)
	}
}

func TestPickPrefersOverlayShell(t *testing.T) {
	m := Build(Options{Variant: Classic, AtlasHeight: skin.HeightExtended, OverlayVisible: allVisible()})

	ray := picking.Ray{Origin: [3]float32{0, 28, 100}, Direction: [3]float32{0, 0, -1}}
	x, y, ok := m.Pick(ray)
	if !ok {
		t.Fatal("ray at the head must hit")
	}
	// The inflated overlay shell is hit first; its front rect sits 64
	// rows below the base head front.
	if x != 12 || y != 76 {
		t.Errorf("pick = (%d,%d), want overlay pixel (12,76)", x, y)
	}
}

func TestPickMiss(t *testing.T) {
	m := Build(Options{Variant: Classic, AtlasHeight: skin.HeightLegacy})
	ray := picking.Ray{Origin: [3]float32{200, 200, 200}, Direction: [3]float32{0, 0, -1}}
	if _, _, ok := m.Pick(ray); ok {
		t.Error("ray far from the model must miss")
	}
}
