// Package avatar builds the humanoid preview model: six cuboid body parts,
// each face UV-mapped to a fixed rectangle of the skin atlas. The atlas is
// always 64 wide; a 128-tall atlas adds overlay regions in the lower half,
// rendered as slightly enlarged shells around the base cuboids.
package avatar

import "github.com/pixelforge/skinstudio/internal/skin"

// Variant selects the body proportions: classic arms are 4 pixels wide,
// slim arms 3.
type Variant int

const (
	Classic Variant = iota
	Slim
)

// ArmWidth returns the arm X-extent in atlas pixels for the variant.
func (v Variant) ArmWidth() int {
	if v == Slim {
		return 3
	}
	return 4
}

func (v Variant) String() string {
	if v == Slim {
		return "slim"
	}
	return "classic"
}

// PartID identifies one of the six body parts.
type PartID int

const (
	Head PartID = iota
	Torso
	RightArm
	LeftArm
	RightLeg
	LeftLeg

	PartCount = 6
)

var partNames = [PartCount]string{"head", "torso", "right-arm", "left-arm", "right-leg", "left-leg"}

func (p PartID) String() string {
	if p < 0 || p >= PartCount {
		return "unknown"
	}
	return partNames[p]
}

// FaceID identifies a cuboid face by its outward axis.
type FaceID int

const (
	FacePosX FaceID = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ

	FaceCount = 6
)

// Rect is an axis-aligned rectangle in atlas pixel coordinates, origin at
// the top-left of the atlas.
type Rect struct {
	X, Y, W, H int
}

// FaceUV is a face's atlas rectangle in normalized texture coordinates.
// The atlas has a top-left pixel origin while the renderer samples from a
// bottom-left origin, so V is flipped: V0 corresponds to the rectangle's
// top edge and is the larger value.
type FaceUV struct {
	U0, V0, U1, V1 float32
}

// UV converts an atlas pixel rectangle to normalized coordinates for the
// given atlas height.
func (r Rect) UV(atlasHeight int) FaceUV {
	h := float32(atlasHeight)
	return FaceUV{
		U0: float32(r.X) / skin.AtlasWidth,
		U1: float32(r.X+r.W) / skin.AtlasWidth,
		V0: 1 - float32(r.Y)/h,
		V1: 1 - float32(r.Y+r.H)/h,
	}
}

// overlayShift is the atlas Y offset from a part's base region to its
// overlay region on a 128-tall atlas.
const overlayShift = skin.HeightLegacy

// overlayInflate is the half-extent increase of an overlay shell so it
// renders just outside its base cuboid.
const overlayInflate = 0.25

// partGeometry returns a part's extents, center position, and base net
// origin. Positions are fixed per part; only arm extents and their atlas
// rectangles depend on the variant.
func partGeometry(id PartID, v Variant) (size [3]float32, center [3]float32, net [2]int) {
	aw := float32(v.ArmWidth())
	switch id {
	case Head:
		return [3]float32{8, 8, 8}, [3]float32{0, 28, 0}, [2]int{0, 0}
	case Torso:
		return [3]float32{8, 12, 4}, [3]float32{0, 18, 0}, [2]int{16, 16}
	case RightArm:
		return [3]float32{aw, 12, 4}, [3]float32{-6, 18, 0}, [2]int{40, 16}
	case LeftArm:
		return [3]float32{aw, 12, 4}, [3]float32{6, 18, 0}, [2]int{32, 48}
	case RightLeg:
		return [3]float32{4, 12, 4}, [3]float32{-2, 6, 0}, [2]int{0, 16}
	default: // LeftLeg
		return [3]float32{4, 12, 4}, [3]float32{2, 6, 0}, [2]int{16, 48}
	}
}

// cuboidNet lays out the six face rectangles of a w×h×d cuboid as the
// standard unfolded box starting at net origin (ox, oy): the top/bottom
// caps above, the four side faces in a strip below.
func cuboidNet(ox, oy, w, h, d int) [FaceCount]Rect {
	return [FaceCount]Rect{
		FacePosX: {X: ox + d + w, Y: oy + d, W: d, H: h},
		FaceNegX: {X: ox, Y: oy + d, W: d, H: h},
		FacePosY: {X: ox + d, Y: oy, W: w, H: d},
		FaceNegY: {X: ox + d + w, Y: oy, W: w, H: d},
		FacePosZ: {X: ox + d, Y: oy + d, W: w, H: h},
		FaceNegZ: {X: ox + 2*d + w, Y: oy + d, W: w, H: h},
	}
}
