// Package texture wraps OpenGL 2D textures for the skin atlas.
package texture

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is a GL_TEXTURE_2D holding straight-alpha RGBA pixels.
// Pixel-art textures need NEAREST filtering, so that is the default.
//
// Rasters arrive top-row-first but the face UVs address the atlas from a
// bottom-left origin, so Upload stores rows bottom-first. Both views must
// sample with that convention.
type Texture struct {
	id     uint32
	width  int
	height int
	flip   []uint8
}

// New allocates a texture of the given size with undefined contents.
// Must be called with a current OpenGL context.
func New(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}

	t := &Texture{width: width, height: height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return t, nil
}

// Upload replaces the texture contents with the given top-row-first RGBA
// pixels, reversing row order so texture row 0 holds the raster's bottom
// row. When the dimensions differ from the current storage the texture is
// reallocated, otherwise the existing storage is updated in place.
func (t *Texture) Upload(width, height int, pix []uint8) error {
	if len(pix) != width*height*4 {
		return fmt.Errorf("pixel buffer is %d bytes, want %d for %dx%d", len(pix), width*height*4, width, height)
	}

	t.flip = flipRows(t.flip, pix, width, height)

	gl.BindTexture(gl.TEXTURE_2D, t.id)
	if width != t.width || height != t.height {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(t.flip))
		t.width = width
		t.height = height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(t.flip))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return nil
}

// flipRows copies pix with its rows in reverse order into dst, growing dst
// as needed, and returns the buffer.
func flipRows(dst, pix []uint8, width, height int) []uint8 {
	stride := width * 4
	if cap(dst) < len(pix) {
		dst = make([]uint8, len(pix))
	}
	dst = dst[:len(pix)]
	for y := 0; y < height; y++ {
		src := pix[y*stride : (y+1)*stride]
		copy(dst[(height-1-y)*stride:], src)
	}
	return dst
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Size returns the current texture dimensions.
func (t *Texture) Size() (int, int) {
	return t.width, t.height
}

// ID returns the OpenGL texture name.
func (t *Texture) ID() uint32 {
	return t.id
}

// Delete frees the GL texture.
func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
