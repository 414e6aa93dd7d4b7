package ui

// Draggable is implemented by panels that can be moved with the pointer.
type Draggable interface {
	Panel
	StartDrag(offset Point)
	IsDragging() bool
	GrabOffset() Point
}

// DragElement is an Element that can be dragged by a handle area along its
// top edge.
type DragElement struct {
	Element

	// Handle is the drag-sensitive area relative to the panel position.
	Handle Rect

	dragging bool
	offset   Point
}

// InitDrag binds the element to its owner with a drag handle.
func (d *DragElement) InitDrag(owner Panel, position, dimension Point, handle Rect) {
	d.Element.Init(owner, position, dimension)
	d.Handle = handle
}

// StartDrag begins tracking the pointer with the given grab offset.
func (d *DragElement) StartDrag(offset Point) {
	d.offset = offset
	d.dragging = true
}

// IsDragging reports whether a drag is in progress.
func (d *DragElement) IsDragging() bool { return d.dragging }

// GrabOffset returns the offset recorded when the drag started.
func (d *DragElement) GrabOffset() Point { return d.offset }

// InDragRange reports whether pos is over the drag handle.
func (d *DragElement) InDragRange(pos Point) bool {
	return d.Handle.Offset(d.position).Contains(pos)
}

// SendCursor moves the panel while a drag is active, starts a drag when the
// handle is pressed and ends it on release. Everything else goes through
// the normal button hit-test.
func (d *DragElement) SendCursor(clicked bool, pos Point) CursorState {
	if clicked {
		if d.dragging {
			d.position = pos.Sub(d.offset)
			return CursorClicking
		}
		if d.InDragRange(pos) {
			d.StartDrag(pos.Sub(d.position))
			return CursorClicking
		}
	} else {
		d.dragging = false
	}
	return d.Element.SendCursor(clicked, pos)
}

// Deactivate also abandons a drag in progress.
func (d *DragElement) Deactivate() {
	d.dragging = false
	d.Element.Deactivate()
}
