package ui

// ButtonID identifies a button within one panel.
type ButtonID uint16

// ButtonState is the visual state of a button.
type ButtonState uint8

const (
	ButtonNormal ButtonState = iota
	ButtonDisabled
	ButtonMouseOver
	ButtonPressed
)

func (s ButtonState) String() string {
	switch s {
	case ButtonNormal:
		return "NORMAL"
	case ButtonDisabled:
		return "DISABLED"
	case ButtonMouseOver:
		return "MOUSEOVER"
	case ButtonPressed:
		return "PRESSED"
	default:
		return "UNKNOWN"
	}
}

// Button is a clickable region owned by a panel. Its bounds are relative to
// the panel's position.
type Button struct {
	Text   string
	Bounds Rect

	state  ButtonState
	hidden bool
}

// NewButton creates an active button in the NORMAL state.
func NewButton(text string, bounds Rect) *Button {
	return &Button{Text: text, Bounds: bounds}
}

// State returns the current visual state.
func (b *Button) State() ButtonState { return b.state }

// SetState changes the visual state.
func (b *Button) SetState(s ButtonState) { b.state = s }

// IsActive reports whether the button is shown and hit-testable.
func (b *Button) IsActive() bool { return !b.hidden }

// SetActive shows or hides the button.
func (b *Button) SetActive(active bool) {
	b.hidden = !active
	if !active {
		b.state = ButtonNormal
	}
}

// Contains hit-tests pos against the button placed at origin.
func (b *Button) Contains(origin, pos Point) bool {
	return b.Bounds.Offset(origin).Contains(pos)
}

// Draw renders the button at origin.
func (b *Button) Draw(c Canvas, origin Point, alpha float32) {
	if b.hidden {
		return
	}

	bg := ColorButtonNormal
	text := ColorText
	switch b.state {
	case ButtonMouseOver:
		bg = ColorButtonHover
	case ButtonPressed:
		bg = ColorButtonActive
	case ButtonDisabled:
		bg = ColorDisabled
		text = ColorTextDim
	}

	r := b.Bounds.Offset(origin)
	c.FillRect(r, bg.Fade(alpha))
	c.StrokeRect(r, ColorPanelBorder.Fade(alpha))

	size := c.MeasureText(b.Text)
	inner := r.Size()
	c.DrawText(r.Min.Add(Pt((inner.X-size.X)/2, (inner.Y-size.Y)/2)), b.Text, text.Fade(alpha))
}
