package ui2d

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-ui/internal/ui"
)

const (
	solidStride = 6 // pos2 + color4
	textStride  = 8 // pos2 + uv2 + color4
)

// mesh is a CPU vertex list streamed to one VAO/VBO pair each frame.
type mesh struct {
	vao, vbo uint32
	stride   int32
	verts    []float32
}

func newMesh(stride int32) mesh {
	return mesh{stride: stride, verts: make([]float32, 0, 4096)}
}

// init creates the GL objects. sizes are the float counts of the vertex
// attributes, bound to locations 0, 1, ...
func (m *mesh) init(sizes ...int32) {
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)

	var offset uintptr
	for loc, n := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(loc), n, gl.FLOAT, false, m.stride*4, offset)
		gl.EnableVertexAttribArray(uint32(loc))
		offset += uintptr(n) * 4
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// count returns the number of vertices.
func (m *mesh) count() int32 {
	return int32(len(m.verts)) / m.stride
}

func (m *mesh) reset() {
	m.verts = m.verts[:0]
}

func (m *mesh) upload() {
	if len(m.verts) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.verts)*4, unsafe.Pointer(&m.verts[0]), gl.STREAM_DRAW)
}

func (m *mesh) release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
}

// quad appends two triangles covering (x0,y0)-(x1,y1).
func (m *mesh) quad(x0, y0, x1, y1 float32, c ui.Color) {
	m.verts = append(m.verts,
		x0, y0, c.R, c.G, c.B, c.A,
		x1, y0, c.R, c.G, c.B, c.A,
		x1, y1, c.R, c.G, c.B, c.A,
		x0, y0, c.R, c.G, c.B, c.A,
		x1, y1, c.R, c.G, c.B, c.A,
		x0, y1, c.R, c.G, c.B, c.A,
	)
}

// texQuad is quad with texture coordinates (u0,v0)-(u1,v1).
func (m *mesh) texQuad(x0, y0, x1, y1, u0, v0, u1, v1 float32, c ui.Color) {
	m.verts = append(m.verts,
		x0, y0, u0, v0, c.R, c.G, c.B, c.A,
		x1, y0, u1, v0, c.R, c.G, c.B, c.A,
		x1, y1, u1, v1, c.R, c.G, c.B, c.A,
		x0, y0, u0, v0, c.R, c.G, c.B, c.A,
		x1, y1, u1, v1, c.R, c.G, c.B, c.A,
		x0, y1, u0, v1, c.R, c.G, c.B, c.A,
	)
}
