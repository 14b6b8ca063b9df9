package picking

import (
	"testing"

	"github.com/pixelforge/skinstudio/pkg/math"
)

func TestIntersectAABBEntryFaces(t *testing.T) {
	box := NewAABB(-1, -1, -1, 1, 1, 1)

	tests := []struct {
		name   string
		ray    Ray
		axis   int
		neg    bool
		wantT  float32
	}{
		{"from +X", Ray{Origin: [3]float32{5, 0, 0}, Direction: [3]float32{-1, 0, 0}}, 0, false, 4},
		{"from -X", Ray{Origin: [3]float32{-5, 0, 0}, Direction: [3]float32{1, 0, 0}}, 0, true, 4},
		{"from +Y", Ray{Origin: [3]float32{0, 5, 0}, Direction: [3]float32{0, -1, 0}}, 1, false, 4},
		{"from -Y", Ray{Origin: [3]float32{0, -5, 0}, Direction: [3]float32{0, 1, 0}}, 1, true, 4},
		{"from +Z", Ray{Origin: [3]float32{0, 0, 5}, Direction: [3]float32{0, 0, -1}}, 2, false, 4},
		{"from -Z", Ray{Origin: [3]float32{0, 0, -5}, Direction: [3]float32{0, 0, 1}}, 2, true, 4},
	}

	for _, tt := range tests {
		hit, ok := tt.ray.IntersectAABB(box)
		if !ok {
			t.Errorf("%s: expected hit", tt.name)
			continue
		}
		if hit.Axis != tt.axis || hit.Neg != tt.neg {
			t.Errorf("%s: entry face axis=%d neg=%v, want axis=%d neg=%v",
				tt.name, hit.Axis, hit.Neg, tt.axis, tt.neg)
		}
		if hit.T < tt.wantT-0.001 || hit.T > tt.wantT+0.001 {
			t.Errorf("%s: t = %f, want %f", tt.name, hit.T, tt.wantT)
		}
	}
}

func TestIntersectAABBMiss(t *testing.T) {
	box := NewAABB(-1, -1, -1, 1, 1, 1)
	ray := Ray{Origin: [3]float32{5, 5, 0}, Direction: [3]float32{-1, 0, 0}}

	if _, ok := ray.IntersectAABB(box); ok {
		t.Error("ray passing above the box should miss")
	}
}

func TestIntersectAABBBehind(t *testing.T) {
	box := NewAABB(-1, -1, -1, 1, 1, 1)
	ray := Ray{Origin: [3]float32{5, 0, 0}, Direction: [3]float32{1, 0, 0}}

	if _, ok := ray.IntersectAABB(box); ok {
		t.Error("box behind the ray origin should miss")
	}
}

func TestIntersectAABBInsideStart(t *testing.T) {
	box := NewAABB(-1, -1, -1, 1, 1, 1)
	ray := Ray{Origin: [3]float32{0, 0, 0}, Direction: [3]float32{1, 0, 0}}

	if _, ok := ray.IntersectAABB(box); ok {
		t.Error("ray starting inside the box has no entry face and should miss")
	}
}

func TestIntersectAABBParallelOutside(t *testing.T) {
	box := NewAABB(-1, -1, -1, 1, 1, 1)
	// Parallel to X slabs, origin outside the Y slab.
	ray := Ray{Origin: [3]float32{-5, 3, 0}, Direction: [3]float32{1, 0, 0}}

	if _, ok := ray.IntersectAABB(box); ok {
		t.Error("ray outside a slab it is parallel to should miss")
	}
}

func TestNewAABBSwapsInvertedAxes(t *testing.T) {
	box := NewAABB(1, -1, 2, -1, 1, -2)
	want := AABB{Min: [3]float32{-1, -1, -2}, Max: [3]float32{1, 1, 2}}
	if box != want {
		t.Errorf("NewAABB = %v, want %v", box, want)
	}
}

func TestScreenCenterRayPointsAtTarget(t *testing.T) {
	proj := math.Perspective(1.0, 4.0/3.0, 0.1, 500)
	view := math.LookAt(math.Vec3{X: 0, Y: 16, Z: 64}, math.Vec3{X: 0, Y: 16, Z: 0}, math.Vec3{X: 0, Y: 1, Z: 0})
	inv := proj.Mul(view).Inverse()

	ray := ScreenToRay(400, 300, 800, 600, inv)

	// The center of the screen looks straight down -Z from the eye.
	if absf(ray.Direction[0]) > 0.001 || absf(ray.Direction[1]) > 0.001 || absf(ray.Direction[2]+1) > 0.001 {
		t.Errorf("center ray direction = %v, want (0, 0, -1)", ray.Direction)
	}

	// Walking the ray to z=0 should land on the look target.
	tToTarget := -ray.Origin[2] / ray.Direction[2]
	at := ray.At(tToTarget)
	if absf(at[0]) > 0.01 || absf(at[1]-16) > 0.01 || absf(at[2]) > 0.01 {
		t.Errorf("center ray at z=0: got %v, want (0, 16, 0)", at)
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
