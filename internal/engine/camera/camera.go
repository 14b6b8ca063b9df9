// Package camera provides the orbit camera for the model preview.
package camera

import (
	gomath "math"

	"github.com/pixelforge/skinstudio/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera framed for a character model
// roughly 32 units tall standing at the origin.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		CenterY:         16.0,
		Distance:        64.0,
		RotationX:       0.15,
		RotationY:       0.0,
		MinDistance:     12.0,
		MaxDistance:     256.0,
		MinPitch:        -1.4,
		MaxPitch:        1.4,
		DragSensitivity: 0.008,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return math.Vec3{
		X: c.CenterX + x,
		Y: c.CenterY + y,
		Z: c.CenterZ + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	pos := c.Position()
	center := math.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(pos, center, up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(delta math.Vec2) {
	c.RotationY -= delta.X * c.DragSensitivity
	c.RotationX += delta.Y * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandlePan moves the center point vertically. Horizontal orbiting covers
// the rest, so only the Y axis is exposed.
func (c *OrbitCamera) HandlePan(up float32) {
	c.CenterY += up * c.Distance * 0.01
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(x, y, z float32) {
	c.CenterX = x
	c.CenterY = y
	c.CenterZ = z
}

// FitToBounds adjusts the camera to view the given bounding box.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.CenterX = (min.X + max.X) / 2
	c.CenterY = (min.Y + max.Y) / 2
	c.CenterZ = (min.Z + max.Z) / 2

	size := max.Sub(min)
	maxSize := size.X
	if size.Y > maxSize {
		maxSize = size.Y
	}
	if size.Z > maxSize {
		maxSize = size.Z
	}

	c.Distance = maxSize * 2.0
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}

	c.RotationX = 0.15
	c.RotationY = 0.0
}
