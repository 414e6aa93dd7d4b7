package ui2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-ui/internal/ui"
)

// coverage sums the alpha of a glyph cell.
func coverage(f *Font, r rune) int {
	cell := cellOf(r)
	sum := 0
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		for x := cell.Min.X; x < cell.Max.X; x++ {
			sum += int(f.atlas.RGBAAt(x, y).A)
		}
	}
	return sum
}

func TestFontAtlas(t *testing.T) {
	f := NewFont()
	assert.Positive(t, coverage(f, 'A'))
	assert.Positive(t, coverage(f, '~'))
	assert.Zero(t, coverage(f, ' '))
	assert.Zero(t, f.TextureID())
}

func TestGlyphUV(t *testing.T) {
	f := NewFont()
	u0, v0, u1, v1 := f.GetGlyphUV(' ')
	assert.Zero(t, u0)
	assert.Zero(t, v0)
	assert.Greater(t, u1, u0)
	assert.Greater(t, v1, v0)

	q0, q1, q2, q3 := f.GetGlyphUV('?')
	e0, e1, e2, e3 := f.GetGlyphUV('é')
	assert.Equal(t, []float32{q0, q1, q2, q3}, []float32{e0, e1, e2, e3})
}

func TestMeasureText(t *testing.T) {
	f := NewFont()
	tests := []struct {
		text string
		want ui.Point
	}{
		{"", ui.Point{}},
		{"abc", ui.Pt(21, 14)},
		{"ab\nabcd", ui.Pt(28, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, f.MeasureText(tt.text))
		})
	}
}

func TestBatchesKeepSubmissionOrder(t *testing.T) {
	r := newRenderer(100, 100, NewFont())

	r.FillRect(ui.RectAt(ui.Pt(0, 0), ui.Pt(10, 10)), ui.ColorPanelBg)
	r.StrokeRect(ui.RectAt(ui.Pt(0, 0), ui.Pt(10, 10)), ui.ColorPanelBorder)
	r.DrawText(ui.Pt(2, 2), "hi", ui.ColorText)
	r.FillRect(ui.RectAt(ui.Pt(5, 5), ui.Pt(10, 10)), ui.ColorPanelBg)
	r.DrawText(ui.Pt(6, 6), "a\nb", ui.ColorText)

	require.Len(t, r.batches, 4)
	assert.Equal(t, batch{text: false, first: 0, count: 30}, r.batches[0])
	assert.Equal(t, batch{text: true, first: 0, count: 12}, r.batches[1])
	assert.Equal(t, batch{text: false, first: 30, count: 6}, r.batches[2])
	assert.Equal(t, batch{text: true, first: 12, count: 12}, r.batches[3])
	assert.Len(t, r.solid.verts, 36*solidStride)
	assert.Len(t, r.text.verts, 24*textStride)

	r.Begin()
	assert.Empty(t, r.batches)
	assert.Empty(t, r.solid.verts)
	assert.Empty(t, r.text.verts)
}

func TestEmptyTextAddsNoBatch(t *testing.T) {
	r := newRenderer(100, 100, NewFont())
	r.DrawText(ui.Pt(0, 0), "\n", ui.ColorText)
	assert.Empty(t, r.batches)
}

func TestStrokeRectStaysInside(t *testing.T) {
	r := newRenderer(100, 100, NewFont())
	r.StrokeRect(ui.RectAt(ui.Pt(10, 20), ui.Pt(30, 40)), ui.ColorPanelBorder)

	v := r.solid.verts
	for i := 0; i < len(v); i += solidStride {
		assert.GreaterOrEqual(t, v[i], float32(10))
		assert.LessOrEqual(t, v[i], float32(40))
		assert.GreaterOrEqual(t, v[i+1], float32(20))
		assert.LessOrEqual(t, v[i+1], float32(60))
	}
}

func TestOrtho(t *testing.T) {
	m := ortho(800, 600)
	project := func(x, y float32) (float32, float32) {
		return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
	}
	x, y := project(0, 0)
	assert.InDelta(t, -1, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6)
	x, y = project(800, 600)
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, -1, y, 1e-6)
}

func TestResizeKeepsLogicalSize(t *testing.T) {
	r := newRenderer(800, 600, NewFont())
	r.Resize(1024, 768, 2048, 1536)
	assert.Equal(t, ui.Pt(1024, 768), r.Size())
	assert.Equal(t, ui.Pt(2048, 1536), r.viewport)
}

func TestDrawTextLayout(t *testing.T) {
	r := newRenderer(100, 100, NewFont())
	r.DrawText(ui.Pt(10, 20), "ab\nc", ui.ColorWhite)

	// First vertex of each glyph quad.
	origin := func(i int) (float32, float32) {
		v := r.text.verts[i*6*textStride:]
		return v[0], v[1]
	}
	x, y := origin(0)
	assert.Equal(t, []float32{10, 20}, []float32{x, y})
	x, y = origin(1)
	assert.Equal(t, []float32{17, 20}, []float32{x, y})
	x, y = origin(2)
	assert.Equal(t, []float32{10, 34}, []float32{x, y})
}
