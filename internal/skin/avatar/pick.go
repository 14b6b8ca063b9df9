package avatar

import (
	"math"

	"github.com/pixelforge/skinstudio/internal/engine/picking"
)

// faceFromHit maps a slab-test entry face to the cuboid face ID.
func faceFromHit(hit picking.FaceHit) FaceID {
	switch hit.Axis {
	case 0:
		if hit.Neg {
			return FaceNegX
		}
		return FacePosX
	case 1:
		if hit.Neg {
			return FaceNegY
		}
		return FacePosY
	default:
		if hit.Neg {
			return FaceNegZ
		}
		return FacePosZ
	}
}

// AABB returns the cuboid's bounding box, which for an axis-aligned cuboid
// is its exact shape.
func (c *Cuboid) AABB() picking.AABB {
	return picking.AABB{
		Min: [3]float32{c.Center[0] - c.Half[0], c.Center[1] - c.Half[1], c.Center[2] - c.Half[2]},
		Max: [3]float32{c.Center[0] + c.Half[0], c.Center[1] + c.Half[1], c.Center[2] + c.Half[2]},
	}
}

// Pick casts a ray against every cuboid and converts the nearest face hit
// into surface pixel coordinates. It is the exact inverse of the face UV
// assignment: the hit point is expressed in the face's frame, interpolated
// across the face's atlas rectangle, and rounded to a pixel, clamped to
// bounds. ok is false when the ray misses the model.
func (m *Model) Pick(ray picking.Ray) (x, y int, ok bool) {
	bestT := float32(math.MaxFloat32)
	var bestCuboid *Cuboid
	var bestFace FaceID

	for i := range m.Cuboids {
		c := &m.Cuboids[i]
		hit, hitOK := ray.IntersectAABB(c.AABB())
		if !hitOK || hit.T >= bestT {
			continue
		}
		bestT = hit.T
		bestCuboid = c
		bestFace = faceFromHit(hit)
	}

	if bestCuboid == nil {
		return 0, 0, false
	}

	point := ray.At(bestT)
	origin, uEdge, yEdge, _ := faceFrame(bestCuboid, bestFace)

	rel := [3]float32{point[0] - origin[0], point[1] - origin[1], point[2] - origin[2]}
	uFrac := frac(rel, uEdge)
	yFrac := frac(rel, yEdge)

	rect := bestCuboid.Faces[bestFace]
	uv := rect.UV(m.AtlasHeight)
	u := uv.U0 + uFrac*(uv.U1-uv.U0)
	v := uv.V0 + yFrac*(uv.V1-uv.V0)

	x = int(math.Round(float64(u) * 64))
	y = int(math.Round(float64(1-v) * float64(m.AtlasHeight)))
	x = clampInt(x, 0, 63)
	y = clampInt(y, 0, m.AtlasHeight-1)
	return x, y, true
}

// frac projects rel onto edge, returning the normalized position along it.
func frac(rel, edge [3]float32) float32 {
	lenSq := edge[0]*edge[0] + edge[1]*edge[1] + edge[2]*edge[2]
	if lenSq == 0 {
		return 0
	}
	dot := rel[0]*edge[0] + rel[1]*edge[1] + rel[2]*edge[2]
	f := dot / lenSq
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
