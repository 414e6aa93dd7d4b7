package ui2d

import (
	"image"
	"image/draw"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/midgard-ui/internal/ui"
)

// Glyph cell of the bitmap font. The face is 7x13; one pixel of leading is
// added so lines can be stacked.
const (
	glyphW    = 7
	glyphH    = 14
	atlasCols = 16
	firstRune = ' '
	lastRune  = '~'
)

// Font is a fixed-width ASCII bitmap font baked into one texture.
type Font struct {
	atlas *image.RGBA
	tex   uint32
}

// NewFont bakes the atlas. The texture is created by Upload.
func NewFont() *Font {
	n := lastRune - firstRune + 1
	rows := (n + atlasCols - 1) / atlasCols
	atlas := image.NewRGBA(image.Rect(0, 0, atlasCols*glyphW, rows*glyphH))
	draw.Draw(atlas, atlas.Bounds(), image.Transparent, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := font.Drawer{Dst: atlas, Src: image.White, Face: face}
	for r := rune(firstRune); r <= lastRune; r++ {
		cell := cellOf(r)
		d.Dot = fixed.P(cell.Min.X, cell.Min.Y+face.Ascent)
		d.DrawString(string(r))
	}
	return &Font{atlas: atlas}
}

func cellOf(r rune) image.Rectangle {
	i := int(r - firstRune)
	x, y := (i%atlasCols)*glyphW, (i/atlasCols)*glyphH
	return image.Rect(x, y, x+glyphW, y+glyphH)
}

// Upload creates the GL texture. It needs a current GL context.
func (f *Font) Upload() {
	b := f.atlas.Bounds()
	gl.GenTextures(1, &f.tex)
	gl.BindTexture(gl.TEXTURE_2D, f.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&f.atlas.Pix[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// TextureID returns the GL texture, zero before Upload.
func (f *Font) TextureID() uint32 { return f.tex }

// GlyphSize returns the cell size in pixels.
func (f *Font) GlyphSize() (int, int) { return glyphW, glyphH }

// GetGlyphUV returns the texture coordinates of r. Runes outside the atlas
// render as '?'.
func (f *Font) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstRune || r > lastRune {
		r = '?'
	}
	cell := cellOf(r)
	b := f.atlas.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	return float32(cell.Min.X) / w, float32(cell.Min.Y) / h,
		float32(cell.Max.X) / w, float32(cell.Max.Y) / h
}

// MeasureText returns the size of text: the longest line by the number of
// lines.
func (f *Font) MeasureText(text string) ui.Point {
	if text == "" {
		return ui.Point{}
	}
	lines := strings.Split(text, "\n")
	widest := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > widest {
			widest = n
		}
	}
	return ui.Pt(widest*glyphW, len(lines)*glyphH)
}

// Close deletes the texture.
func (f *Font) Close() {
	if f.tex != 0 {
		gl.DeleteTextures(1, &f.tex)
		f.tex = 0
	}
}
