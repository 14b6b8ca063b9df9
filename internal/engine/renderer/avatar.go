package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pixelforge/skinstudio/internal/engine/shader"
	"github.com/pixelforge/skinstudio/internal/engine/texture"
	"github.com/pixelforge/skinstudio/internal/skin/avatar"
	"github.com/pixelforge/skinstudio/pkg/math"
)

const avatarVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    vNormal = mat3(uModel) * aNormal;
    vTexCoord = aTexCoord;
    gl_Position = uProjection * uView * uModel * vec4(aPosition, 1.0);
}
` + "\x00"

const avatarFragmentShader = `#version 410 core
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;

out vec4 FragColor;

void main() {
    vec4 tex = texture(uTexture, vTexCoord);
    // Fully transparent texels must not write depth, or hat/jacket
    // shells would occlude the body underneath.
    if (tex.a < 0.004) {
        discard;
    }
    vec3 normal = normalize(vNormal);
    vec3 lightDir = normalize(uLightDir);
    float diff = max(dot(normal, lightDir), 0.0);
    vec3 result = (uAmbient + diff * uDiffuse) * tex.rgb;
    FragColor = vec4(result, tex.a);
}
` + "\x00"

// AvatarView renders the character model textured with the live skin.
type AvatarView struct {
	program uint32

	vao uint32
	vbo uint32
	ebo uint32

	indexCount int32

	locModel      int32
	locView       int32
	locProjection int32
	locTexture    int32
	locLightDir   int32
	locAmbient    int32
	locDiffuse    int32
}

func newAvatarView() (*AvatarView, error) {
	v := &AvatarView{}

	var err error
	v.program, err = shader.CompileProgram(avatarVertexShader, avatarFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	v.locModel = shader.GetUniform(v.program, "uModel")
	v.locView = shader.GetUniform(v.program, "uView")
	v.locProjection = shader.GetUniform(v.program, "uProjection")
	v.locTexture = shader.GetUniform(v.program, "uTexture")
	v.locLightDir = shader.GetUniform(v.program, "uLightDir")
	v.locAmbient = shader.GetUniform(v.program, "uAmbient")
	v.locDiffuse = shader.GetUniform(v.program, "uDiffuse")

	gl.GenVertexArrays(1, &v.vao)
	gl.BindVertexArray(v.vao)

	gl.GenBuffers(1, &v.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)

	gl.GenBuffers(1, &v.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, v.ebo)

	stride := int32(unsafe.Sizeof(avatar.Vertex{}))

	// Position attribute (location = 0): 3 floats
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1): 3 floats
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)

	// TexCoord attribute (location = 2): 2 floats
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	return v, nil
}

// SetMesh uploads the model mesh. Called whenever the model is rebuilt,
// for variant or overlay changes, so the buffers use DYNAMIC_DRAW.
func (v *AvatarView) SetMesh(mesh *avatar.Mesh) {
	v.indexCount = int32(len(mesh.Indices))
	if v.indexCount == 0 {
		return
	}

	gl.BindVertexArray(v.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, v.vbo)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(unsafe.Sizeof(avatar.Vertex{})),
		unsafe.Pointer(&mesh.Vertices[0]), gl.DYNAMIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, v.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(mesh.Indices)*4,
		unsafe.Pointer(&mesh.Indices[0]), gl.DYNAMIC_DRAW)

	gl.BindVertexArray(0)
}

// Draw renders the model with the given matrices and skin texture.
func (v *AvatarView) Draw(projection, view, model math.Mat4, tex *texture.Texture) {
	if v.indexCount == 0 {
		return
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	// Overlay shells are visible from inside when the front texels are
	// transparent, so back faces stay on.
	gl.Disable(gl.CULL_FACE)

	gl.UseProgram(v.program)

	gl.UniformMatrix4fv(v.locProjection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(v.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(v.locModel, 1, false, model.Ptr())

	gl.Uniform3f(v.locLightDir, 0.5, 1.0, 0.5)
	gl.Uniform3f(v.locAmbient, 0.5, 0.5, 0.5)
	gl.Uniform3f(v.locDiffuse, 0.5, 0.5, 0.5)

	tex.Bind(0)
	gl.Uniform1i(v.locTexture, 0)

	gl.BindVertexArray(v.vao)
	gl.DrawElements(gl.TRIANGLES, v.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (v *AvatarView) destroy() {
	if v.vao != 0 {
		gl.DeleteVertexArrays(1, &v.vao)
	}
	if v.vbo != 0 {
		gl.DeleteBuffers(1, &v.vbo)
	}
	if v.ebo != 0 {
		gl.DeleteBuffers(1, &v.ebo)
	}
	if v.program != 0 {
		gl.DeleteProgram(v.program)
	}
}
