// Package ui2d draws panels with OpenGL. Renderer batches solid quads and
// bitmap text for one frame and implements ui.Canvas.
package ui2d

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-ui/internal/ui"
)

// Renderer records one frame of rectangles and text and draws it on End.
type Renderer struct {
	// size is the logical screen in the units panels use. viewport is the
	// framebuffer in pixels; they differ on HiDPI displays.
	size     ui.Point
	viewport ui.Point

	solidProg program
	textProg  program
	solid     mesh
	text      mesh
	// batches keep solid and text runs in submission order so a panel
	// drawn later covers the text of the panels below it.
	batches []batch

	font *Font
}

var _ ui.Canvas = (*Renderer)(nil)

// batch is a run of vertices of one kind.
type batch struct {
	text  bool
	first int32
	count int32
}

func newRenderer(width, height int, f *Font) *Renderer {
	return &Renderer{
		size:     ui.Pt(width, height),
		viewport: ui.Pt(width, height),
		solid:    newMesh(solidStride),
		text:     newMesh(textStride),
		font:     f,
	}
}

// New creates the renderer for a logical screen of width x height. It needs
// a current GL context.
func New(width, height int) (_ *Renderer, err error) {
	r := newRenderer(width, height, NewFont())
	defer func() {
		if err != nil {
			r.Close()
		}
	}()

	if r.solidProg, err = newProgram(solidVS, solidFS); err != nil {
		return nil, fmt.Errorf("solid program: %w", err)
	}
	if r.textProg, err = newProgram(textVS, textFS); err != nil {
		return nil, fmt.Errorf("text program: %w", err)
	}
	r.solid.init(2, 4)
	r.text.init(2, 2, 4)
	r.font.Upload()
	return r, nil
}

// Resize sets the logical screen size and the framebuffer size in pixels.
func (r *Renderer) Resize(width, height, pixelWidth, pixelHeight int) {
	r.size = ui.Pt(width, height)
	r.viewport = ui.Pt(pixelWidth, pixelHeight)
}

// Size returns the logical screen size.
func (r *Renderer) Size() ui.Point {
	return r.size
}

// Clear fills the framebuffer with c.
func (r *Renderer) Clear(c ui.Color) {
	gl.Viewport(0, 0, int32(r.viewport.X), int32(r.viewport.Y))
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Begin drops what the previous frame recorded.
func (r *Renderer) Begin() {
	r.solid.reset()
	r.text.reset()
	r.batches = r.batches[:0]
}

// End draws the frame. Blending is left enabled; the client draws nothing
// but panels.
func (r *Renderer) End() {
	if len(r.batches) == 0 {
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	r.solid.upload()
	r.text.upload()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.font.TextureID())

	proj := ortho(float32(r.size.X), float32(r.size.Y))
	for _, b := range r.batches {
		if b.text {
			r.textProg.use(&proj)
			gl.BindVertexArray(r.text.vao)
		} else {
			r.solidProg.use(&proj)
			gl.BindVertexArray(r.solid.vao)
		}
		gl.DrawArrays(gl.TRIANGLES, b.first, b.count)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

// Close releases the GL objects.
func (r *Renderer) Close() {
	r.font.Close()
	r.solid.release()
	r.text.release()
	r.solidProg.release()
	r.textProg.release()
}

// record extends the last batch with what m gained since before, or starts a
// new batch when the kind changes.
func (r *Renderer) record(text bool, m *mesh, before int32) {
	n := m.count() - before
	if n == 0 {
		return
	}
	if last := len(r.batches) - 1; last >= 0 && r.batches[last].text == text {
		r.batches[last].count += n
		return
	}
	r.batches = append(r.batches, batch{text: text, first: before, count: n})
}

// FillRect implements ui.Canvas.
func (r *Renderer) FillRect(rect ui.Rect, c ui.Color) {
	before := r.solid.count()
	r.solid.quad(float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Max.X), float32(rect.Max.Y), c)
	r.record(false, &r.solid, before)
}

// StrokeRect implements ui.Canvas with a one pixel outline inside rect.
func (r *Renderer) StrokeRect(rect ui.Rect, c ui.Color) {
	x0, y0 := float32(rect.Min.X), float32(rect.Min.Y)
	x1, y1 := float32(rect.Max.X), float32(rect.Max.Y)
	before := r.solid.count()
	r.solid.quad(x0, y0, x1, y0+1, c)
	r.solid.quad(x0, y1-1, x1, y1, c)
	r.solid.quad(x0, y0+1, x0+1, y1-1, c)
	r.solid.quad(x1-1, y0+1, x1, y1-1, c)
	r.record(false, &r.solid, before)
}

// DrawText implements ui.Canvas. pos is the top left of the first glyph and
// '\n' starts a new line.
func (r *Renderer) DrawText(pos ui.Point, text string, c ui.Color) {
	gw, gh := r.font.GlyphSize()
	w, h := float32(gw), float32(gh)

	before := r.text.count()
	x, y := float32(pos.X), float32(pos.Y)
	for _, ch := range text {
		if ch == '\n' {
			x = float32(pos.X)
			y += h
			continue
		}
		u0, v0, u1, v1 := r.font.GetGlyphUV(ch)
		r.text.texQuad(x, y, x+w, y+h, u0, v0, u1, v1, c)
		x += w
	}
	r.record(true, &r.text, before)
}

// MeasureText implements ui.Canvas.
func (r *Renderer) MeasureText(text string) ui.Point {
	return r.font.MeasureText(text)
}
