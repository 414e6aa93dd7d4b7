package ui2d

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex layouts are 2D: panels never overlap in depth, submission order
// decides what is on top.
const (
	solidVS = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;
uniform mat4 uProjection;
out vec4 vColor;
void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vColor = aColor;
}
` + "\x00"

	solidFS = `#version 410 core
in vec4 vColor;
out vec4 FragColor;
void main() {
	FragColor = vColor;
}
` + "\x00"

	textVS = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec4 aColor;
uniform mat4 uProjection;
out vec2 vUV;
out vec4 vColor;
void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vUV = aUV;
	vColor = aColor;
}
` + "\x00"

	// The atlas is white; only its alpha carries the glyph.
	textFS = `#version 410 core
uniform sampler2D uTexture;
in vec2 vUV;
in vec4 vColor;
out vec4 FragColor;
void main() {
	FragColor = vec4(vColor.rgb, vColor.a * texture(uTexture, vUV).a);
}
` + "\x00"
)

// program is a linked shader program with its uniform locations.
type program struct {
	id         uint32
	projection int32
	texture    int32
}

func newProgram(vertexSrc, fragmentSrc string) (program, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return program{}, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return program{}, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		msg := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(id, n, nil, gl.Str(msg))
		gl.DeleteProgram(id)
		return program{}, fmt.Errorf("link: %s", strings.TrimRight(msg, "\x00"))
	}

	return program{
		id:         id,
		projection: gl.GetUniformLocation(id, gl.Str("uProjection\x00")),
		texture:    gl.GetUniformLocation(id, gl.Str("uTexture\x00")),
	}, nil
}

// use binds the program and loads the projection.
func (p program) use(proj *[16]float32) {
	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.projection, 1, false, &proj[0])
	if p.texture >= 0 {
		gl.Uniform1i(p.texture, 0)
	}
}

func (p *program) release() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	src, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, src, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
		msg := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(shader, n, nil, gl.Str(msg))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile: %s", strings.TrimRight(msg, "\x00"))
	}
	return shader, nil
}

// ortho maps screen coordinates, origin top left, to clip space.
func ortho(width, height float32) [16]float32 {
	return [16]float32{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
}
