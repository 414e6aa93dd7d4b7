package ui

// Point is a screen position or a size in pixels.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Rect is an axis-aligned rectangle. Min is inclusive, Max is exclusive.
type Rect struct {
	Min, Max Point
}

// RectAt builds a rectangle from a position and a size.
func RectAt(pos, size Point) Rect {
	return Rect{Min: pos, Max: pos.Add(size)}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Size returns the width and height of r.
func (r Rect) Size() Point {
	return r.Max.Sub(r.Min)
}

// Offset returns r translated by p.
func (r Rect) Offset(p Point) Rect {
	return Rect{Min: r.Min.Add(p), Max: r.Max.Add(p)}
}
