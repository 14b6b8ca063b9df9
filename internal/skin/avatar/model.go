package avatar

import "github.com/pixelforge/skinstudio/internal/skin"

// Vertex matches the renderer's attribute layout: position, normal, and
// texture coordinate.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds the assembled model geometry ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Cuboid is one rectangular volume of the model with its six face-to-atlas
// mappings. Overlay cuboids share their base part's center but are slightly
// inflated.
type Cuboid struct {
	Part    PartID
	Overlay bool
	Half    [3]float32 // Half extents
	Center  [3]float32
	Faces   [FaceCount]Rect
}

// Options selects what Build produces.
type Options struct {
	Variant     Variant
	AtlasHeight int // 64 or 128
	// OverlayVisible toggles each part's overlay shell. Ignored on a
	// 64-tall atlas, which has no overlay regions.
	OverlayVisible [PartCount]bool
}

// DefaultOptions returns a classic 64-tall model with all overlays on.
func DefaultOptions() Options {
	opts := Options{Variant: Classic, AtlasHeight: skin.HeightLegacy}
	for i := range opts.OverlayVisible {
		opts.OverlayVisible[i] = true
	}
	return opts
}

// Model is the renderable avatar: the cuboid set for picking plus one
// merged mesh for drawing. Rebuilt wholesale whenever variant, atlas
// height, or overlay visibility changes; immutable afterwards.
type Model struct {
	Variant     Variant
	AtlasHeight int
	Cuboids     []Cuboid
	Mesh        Mesh
}

// Build constructs the avatar model. Base cuboids come first in both the
// cuboid list and the mesh so overlay shells draw after (on top of) their
// parts.
func Build(opts Options) *Model {
	if opts.AtlasHeight != skin.HeightExtended {
		opts.AtlasHeight = skin.HeightLegacy
	}

	m := &Model{
		Variant:     opts.Variant,
		AtlasHeight: opts.AtlasHeight,
	}

	for id := PartID(0); id < PartCount; id++ {
		size, center, net := partGeometry(id, opts.Variant)
		m.Cuboids = append(m.Cuboids, Cuboid{
			Part:   id,
			Half:   [3]float32{size[0] / 2, size[1] / 2, size[2] / 2},
			Center: center,
			Faces:  cuboidNet(net[0], net[1], int(size[0]), int(size[1]), int(size[2])),
		})
	}

	if opts.AtlasHeight == skin.HeightExtended {
		for id := PartID(0); id < PartCount; id++ {
			if !opts.OverlayVisible[id] {
				continue
			}
			size, center, net := partGeometry(id, opts.Variant)
			m.Cuboids = append(m.Cuboids, Cuboid{
				Part:    id,
				Overlay: true,
				Half: [3]float32{
					size[0]/2 + overlayInflate,
					size[1]/2 + overlayInflate,
					size[2]/2 + overlayInflate,
				},
				Center: center,
				Faces:  cuboidNet(net[0], net[1]+overlayShift, int(size[0]), int(size[1]), int(size[2])),
			})
		}
	}

	for i := range m.Cuboids {
		appendCuboidMesh(&m.Mesh, &m.Cuboids[i], m.AtlasHeight)
	}
	return m
}

// faceFrame returns the 3D frame of a cuboid face: the corner at the face
// rectangle's atlas top-left, the edge vector along increasing U, and the
// edge vector along increasing atlas Y (decreasing V).
func faceFrame(c *Cuboid, f FaceID) (origin, uEdge, yEdge, normal [3]float32) {
	hx, hy, hz := c.Half[0], c.Half[1], c.Half[2]
	cx, cy, cz := c.Center[0], c.Center[1], c.Center[2]

	switch f {
	case FacePosX:
		origin = [3]float32{cx + hx, cy + hy, cz + hz}
		uEdge = [3]float32{0, 0, -2 * hz}
		yEdge = [3]float32{0, -2 * hy, 0}
		normal = [3]float32{1, 0, 0}
	case FaceNegX:
		origin = [3]float32{cx - hx, cy + hy, cz - hz}
		uEdge = [3]float32{0, 0, 2 * hz}
		yEdge = [3]float32{0, -2 * hy, 0}
		normal = [3]float32{-1, 0, 0}
	case FacePosY:
		origin = [3]float32{cx - hx, cy + hy, cz - hz}
		uEdge = [3]float32{2 * hx, 0, 0}
		yEdge = [3]float32{0, 0, 2 * hz}
		normal = [3]float32{0, 1, 0}
	case FaceNegY:
		origin = [3]float32{cx - hx, cy - hy, cz + hz}
		uEdge = [3]float32{2 * hx, 0, 0}
		yEdge = [3]float32{0, 0, -2 * hz}
		normal = [3]float32{0, -1, 0}
	case FacePosZ:
		origin = [3]float32{cx - hx, cy + hy, cz + hz}
		uEdge = [3]float32{2 * hx, 0, 0}
		yEdge = [3]float32{0, -2 * hy, 0}
		normal = [3]float32{0, 0, 1}
	default: // FaceNegZ
		origin = [3]float32{cx + hx, cy + hy, cz - hz}
		uEdge = [3]float32{-2 * hx, 0, 0}
		yEdge = [3]float32{0, -2 * hy, 0}
		normal = [3]float32{0, 0, -1}
	}
	return origin, uEdge, yEdge, normal
}

// appendCuboidMesh emits the 24 vertices and 36 indices of one cuboid.
func appendCuboidMesh(mesh *Mesh, c *Cuboid, atlasHeight int) {
	for f := FaceID(0); f < FaceCount; f++ {
		origin, uEdge, yEdge, normal := faceFrame(c, f)
		uv := c.Faces[f].UV(atlasHeight)

		base := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices,
			Vertex{Position: origin, Normal: normal, TexCoord: [2]float32{uv.U0, uv.V0}},
			Vertex{Position: add3(origin, uEdge), Normal: normal, TexCoord: [2]float32{uv.U1, uv.V0}},
			Vertex{Position: add3(add3(origin, uEdge), yEdge), Normal: normal, TexCoord: [2]float32{uv.U1, uv.V1}},
			Vertex{Position: add3(origin, yEdge), Normal: normal, TexCoord: [2]float32{uv.U0, uv.V1}},
		)
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}
}

func add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}
