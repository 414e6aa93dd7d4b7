package ui

// Canvas is the rendering collaborator panels draw onto.
// Coordinates are screen pixels with the origin at the top left.
type Canvas interface {
	FillRect(r Rect, c Color)
	StrokeRect(r Rect, c Color)
	DrawText(pos Point, text string, c Color)
	MeasureText(text string) Point
}

// Sprite is a decorative element owned by a panel and drawn relative to it.
type Sprite interface {
	Draw(c Canvas, origin Point, alpha float32)
}

// Frame is a filled, bordered rectangle sprite.
type Frame struct {
	Bounds Rect
	Fill   Color
	Border Color
}

// Draw implements Sprite.
func (f Frame) Draw(c Canvas, origin Point, alpha float32) {
	r := f.Bounds.Offset(origin)
	if f.Fill.A > 0 {
		c.FillRect(r, f.Fill.Fade(alpha))
	}
	if f.Border.A > 0 {
		c.StrokeRect(r, f.Border.Fade(alpha))
	}
}

// Label is a static text sprite.
type Label struct {
	Offset Point
	Text   string
	Color  Color
}

// Draw implements Sprite.
func (l Label) Draw(c Canvas, origin Point, alpha float32) {
	c.DrawText(origin.Add(l.Offset), l.Text, l.Color.Fade(alpha))
}
