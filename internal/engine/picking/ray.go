// Package picking provides ray casting utilities for painting on the 3D
// preview: screen-space rays and ray/box intersection with entry-face
// reporting.
package picking

import (
	gomath "math"

	"github.com/pixelforge/skinstudio/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    [3]float32
	Direction [3]float32 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport
// dimensions. invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	// Unproject near and far points
	nearPoint := math.Vec4{ndcX, ndcY, -1.0, 1.0}
	farPoint := math.Vec4{ndcX, ndcY, 1.0, 1.0}

	nearWorld := invViewProj.MulVec4(nearPoint)
	farWorld := invViewProj.MulVec4(farPoint)

	// Perspective divide
	if nearWorld[3] != 0 {
		nearWorld[0] /= nearWorld[3]
		nearWorld[1] /= nearWorld[3]
		nearWorld[2] /= nearWorld[3]
	}
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	origin := [3]float32{nearWorld[0], nearWorld[1], nearWorld[2]}
	dir := [3]float32{
		farWorld[0] - nearWorld[0],
		farWorld[1] - nearWorld[1],
		farWorld[2] - nearWorld[2],
	}

	// Normalize direction
	rayLen := float32(gomath.Sqrt(float64(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2])))
	if rayLen > 0 {
		dir[0] /= rayLen
		dir[1] /= rayLen
		dir[2] /= rayLen
	}

	return Ray{Origin: origin, Direction: dir}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) [3]float32 {
	return [3]float32{
		r.Origin[0] + t*r.Direction[0],
		r.Origin[1] + t*r.Direction[1],
		r.Origin[2] + t*r.Direction[2],
	}
}

// FaceHit describes which box face a ray entered through.
type FaceHit struct {
	T    float32 // Distance along the ray
	Axis int     // 0 = X, 1 = Y, 2 = Z
	Neg  bool    // True when the negative-axis face was entered
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box
// using the slab method. It returns the entry face and distance; rays
// starting inside the box report no hit, since painting needs an entry
// face.
func (r Ray) IntersectAABB(box AABB) (FaceHit, bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	entryAxis := -1
	entryNeg := false

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] != 0 {
			t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
			t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
			neg := true // t1 belongs to the Min (negative-axis) face
			if t1 > t2 {
				t1, t2 = t2, t1
				neg = false
			}
			if t1 > tmin {
				tmin = t1
				entryAxis = axis
				entryNeg = neg
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
			return FaceHit{}, false
		}
	}

	if tmax < tmin || tmin < 0 || entryAxis < 0 {
		return FaceHit{}, false
	}

	return FaceHit{T: tmin, Axis: entryAxis, Neg: entryNeg}, true
}

// NewAABB creates an AABB from min and max corners, swapping any inverted
// axis.
func NewAABB(minX, minY, minZ, maxX, maxY, maxZ float32) AABB {
	box := AABB{
		Min: [3]float32{minX, minY, minZ},
		Max: [3]float32{maxX, maxY, maxZ},
	}
	for axis := 0; axis < 3; axis++ {
		if box.Min[axis] > box.Max[axis] {
			box.Min[axis], box.Max[axis] = box.Max[axis], box.Min[axis]
		}
	}
	return box
}
