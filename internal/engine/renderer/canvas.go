package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pixelforge/skinstudio/internal/engine/shader"
	"github.com/pixelforge/skinstudio/internal/engine/texture"
	"github.com/pixelforge/skinstudio/pkg/math"
)

const canvasVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;

uniform mat4 uProjection;
uniform mat4 uModel;

out vec2 vTexCoord;

void main() {
    gl_Position = uProjection * uModel * vec4(aPos, 0.0, 1.0);
    vTexCoord = aTexCoord;
}
` + "\x00"

const canvasFragmentShader = `#version 410 core
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec2 uTexSize;

out vec4 FragColor;

void main() {
    vec4 tex = texture(uTexture, vTexCoord);
    // Checkerboard shows through transparent texels.
    vec2 texel = floor(vTexCoord * uTexSize);
    float c = mod(texel.x + texel.y, 2.0);
    vec3 checker = mix(vec3(0.32), vec3(0.42), c);
    FragColor = vec4(mix(checker, tex.rgb, tex.a), 1.0);
}
` + "\x00"

const solidVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
    gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
    vColor = aColor;
}
` + "\x00"

const solidFragmentShader = `#version 410 core
in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
` + "\x00"

// CanvasView renders the flat pixel-editing view: the zoomed skin atlas
// over a checkerboard, plus batched solid rectangles for the selection
// outline, swatches and other chrome.
type CanvasView struct {
	texProgram   uint32
	solidProgram uint32

	quadVAO uint32
	quadVBO uint32

	solidVAO uint32
	solidVBO uint32

	solidVertices []float32

	locTexProjection int32
	locTexModel      int32
	locTexture       int32
	locTexSize       int32

	locSolidProjection int32
}

func newCanvasView() (*CanvasView, error) {
	c := &CanvasView{
		solidVertices: make([]float32, 0, 4096),
	}

	var err error
	c.texProgram, err = shader.CompileProgram(canvasVertexShader, canvasFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("atlas shader: %w", err)
	}

	c.solidProgram, err = shader.CompileProgram(solidVertexShader, solidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("solid shader: %w", err)
	}

	c.locTexProjection = shader.GetUniform(c.texProgram, "uProjection")
	c.locTexModel = shader.GetUniform(c.texProgram, "uModel")
	c.locTexture = shader.GetUniform(c.texProgram, "uTexture")
	c.locTexSize = shader.GetUniform(c.texProgram, "uTexSize")

	c.locSolidProjection = shader.GetUniform(c.solidProgram, "uProjection")

	// Unit quad, scaled to the atlas rectangle by uModel. The texture
	// stores the atlas bottom-row-first, so screen-top samples v=1.
	quad := []float32{
		// pos        texcoord
		0, 0, 0, 1,
		1, 0, 1, 1,
		1, 1, 1, 0,
		0, 0, 0, 1,
		1, 1, 1, 0,
		0, 1, 0, 0,
	}

	gl.GenVertexArrays(1, &c.quadVAO)
	gl.BindVertexArray(c.quadVAO)
	gl.GenBuffers(1, &c.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, unsafe.Pointer(&quad[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	// Vertex format: pos(2) + color(4) = 6 floats
	gl.GenVertexArrays(1, &c.solidVAO)
	gl.BindVertexArray(c.solidVAO)
	gl.GenBuffers(1, &c.solidVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.solidVBO)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, 6*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	return c, nil
}

// Begin starts a new 2D frame, clearing the solid batch.
func (c *CanvasView) Begin() {
	c.solidVertices = c.solidVertices[:0]
}

// DrawAtlas renders the skin texture quad. projection is a pixel-space
// ortho matrix, model places and scales the unit quad on screen.
func (c *CanvasView) DrawAtlas(projection, model math.Mat4, tex *texture.Texture) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	gl.UseProgram(c.texProgram)
	gl.UniformMatrix4fv(c.locTexProjection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(c.locTexModel, 1, false, model.Ptr())

	w, h := tex.Size()
	gl.Uniform2f(c.locTexSize, float32(w), float32(h))

	tex.Bind(0)
	gl.Uniform1i(c.locTexture, 0)

	gl.BindVertexArray(c.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
}

// FillRect queues a solid rectangle in screen pixels.
func (c *CanvasView) FillRect(x, y, w, h float32, col [4]float32) {
	c.solidVertices = append(c.solidVertices,
		x, y, col[0], col[1], col[2], col[3],
		x+w, y, col[0], col[1], col[2], col[3],
		x+w, y+h, col[0], col[1], col[2], col[3],
		x, y, col[0], col[1], col[2], col[3],
		x+w, y+h, col[0], col[1], col[2], col[3],
		x, y+h, col[0], col[1], col[2], col[3],
	)
}

// StrokeRect queues a rectangle outline of the given thickness.
func (c *CanvasView) StrokeRect(x, y, w, h, thickness float32, col [4]float32) {
	c.FillRect(x-thickness, y-thickness, w+2*thickness, thickness, col) // top
	c.FillRect(x-thickness, y+h, w+2*thickness, thickness, col)         // bottom
	c.FillRect(x-thickness, y, thickness, h, col)                       // left
	c.FillRect(x+w, y, thickness, h, col)                               // right
}

// Flush draws all queued solid rectangles.
func (c *CanvasView) Flush(projection math.Mat4) {
	if len(c.solidVertices) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(c.solidProgram)
	gl.UniformMatrix4fv(c.locSolidProjection, 1, false, projection.Ptr())

	gl.BindVertexArray(c.solidVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.solidVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(c.solidVertices)*4, unsafe.Pointer(&c.solidVertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(c.solidVertices)/6))
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)

	c.solidVertices = c.solidVertices[:0]
}

func (c *CanvasView) destroy() {
	if c.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &c.quadVAO)
	}
	if c.quadVBO != 0 {
		gl.DeleteBuffers(1, &c.quadVBO)
	}
	if c.solidVAO != 0 {
		gl.DeleteVertexArrays(1, &c.solidVAO)
	}
	if c.solidVBO != 0 {
		gl.DeleteBuffers(1, &c.solidVBO)
	}
	if c.texProgram != 0 {
		gl.DeleteProgram(c.texProgram)
	}
	if c.solidProgram != 0 {
		gl.DeleteProgram(c.solidProgram)
	}
}
