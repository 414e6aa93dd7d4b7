package ui

// IconSize is the edge length of an icon slot.
const IconSize = 32

// Icon is a drag payload binding an action to a screen slot. While a drag
// gesture is in progress it lives in the FocusRouter; on release it is
// delivered to the panel under the pointer through SendIcon.
type Icon struct {
	// Source is the panel that started the drag.
	Source PanelType
	// Action is the payload identifier, interpreted by the drop target.
	Action int32
	Text   string
	// OnStage runs when the icon is released over no panel.
	OnStage Command

	grab     Point
	pos      Point
	dragging bool
}

// NewIcon creates an icon for action owned by source.
func NewIcon(source PanelType, action int32, text string) *Icon {
	return &Icon{Source: source, Action: action, Text: text}
}

// StartDrag begins a drag with the pointer grab offset inside the icon.
func (i *Icon) StartDrag(offset Point) {
	i.grab = offset
	i.dragging = true
}

// IsDragging reports whether a drag gesture is active.
func (i *Icon) IsDragging() bool { return i.dragging }

// GrabOffset returns the offset recorded by StartDrag.
func (i *Icon) GrabOffset() Point { return i.grab }

// MoveTo follows the pointer.
func (i *Icon) MoveTo(cursor Point) {
	i.pos = cursor.Sub(i.grab)
}

// Position returns where the dragged icon is drawn.
func (i *Icon) Position() Point { return i.pos }

// Reset ends the drag.
func (i *Icon) Reset() {
	i.dragging = false
	i.grab = Point{}
}

// Draw renders the icon at pos.
func (i *Icon) Draw(c Canvas, pos Point, alpha float32) {
	r := RectAt(pos, Pt(IconSize, IconSize))
	c.FillRect(r, ColorButtonActive.Fade(alpha))
	c.StrokeRect(r, ColorHighlight.Fade(alpha))
	text := i.Text
	if len(text) > 4 {
		text = text[:4]
	}
	c.DrawText(pos.Add(Pt(2, 10)), text, ColorWhite.Fade(alpha))
}
