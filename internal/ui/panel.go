package ui

import "slices"

// Panel is implemented by every on-screen window. The contract is total:
// hooks a panel does not care about return a neutral value (CursorIdle,
// ButtonNormal, false) instead of failing. Embed Element to get those
// defaults.
type Panel interface {
	Type() PanelType

	// Draw must not mutate the panel.
	Draw(c Canvas, alpha float32)
	// Update advances per-frame state. Called once per tick while active.
	Update()

	MakeActive()
	Deactivate()
	IsActive() bool
	ToggleActive()

	// ButtonPressed is called by the panel's own buttons and returns the
	// new visual state of the pressed button.
	ButtonPressed(id ButtonID) ButtonState
	SendIcon(icon *Icon, pos Point)

	DoubleClick(pos Point)
	RightClick(pos Point)
	IsInRange(pos Point) bool
	// RemoveCursor tells a panel the pointer is over someone else, so it can
	// drop hover states.
	RemoveCursor(clicked bool, pos Point) bool
	SendCursor(clicked bool, pos Point) CursorState
	SendScroll(offset float64)
	SendKey(code KeyCode, pressed bool)
	SendText(text string)
}

// Closer is an optional hook run exactly once when a panel is destroyed by
// the registry.
type Closer interface {
	Close()
}

// Element is the base every panel embeds. It owns position, size,
// activation state, buttons and decorative sprites.
type Element struct {
	Buttons map[ButtonID]*Button
	Sprites []Sprite

	position  Point
	dimension Point
	active    bool

	owner Panel
}

// Init binds the element to its outer panel so that button presses reach
// the panel's ButtonPressed override.
func (e *Element) Init(owner Panel, position, dimension Point) {
	e.owner = owner
	e.position = position
	e.dimension = dimension
	e.active = true
	if e.Buttons == nil {
		e.Buttons = make(map[ButtonID]*Button)
	}
}

// Position returns the top-left corner of the panel.
func (e *Element) Position() Point { return e.position }

// SetPosition moves the panel.
func (e *Element) SetPosition(p Point) { e.position = p }

// Dimension returns the panel size.
func (e *Element) Dimension() Point { return e.dimension }

// SetDimension resizes the panel.
func (e *Element) SetDimension(d Point) { e.dimension = d }

// Bounds returns the screen rectangle of the panel.
func (e *Element) Bounds() Rect { return RectAt(e.position, e.dimension) }

// Draw renders sprites, then buttons.
func (e *Element) Draw(c Canvas, alpha float32) {
	for _, s := range e.Sprites {
		s.Draw(c, e.position, alpha)
	}
	for _, id := range e.buttonIDs() {
		e.Buttons[id].Draw(c, e.position, alpha)
	}
}

func (e *Element) Update() {}

func (e *Element) MakeActive()    { e.active = true }
func (e *Element) Deactivate()    { e.active = false }
func (e *Element) IsActive() bool { return e.active }

// ToggleActive flips between the active and inactive states.
func (e *Element) ToggleActive() {
	e.active = !e.active
}

func (e *Element) ButtonPressed(ButtonID) ButtonState { return ButtonNormal }
func (e *Element) SendIcon(*Icon, Point)              {}
func (e *Element) DoubleClick(Point)                  {}
func (e *Element) RightClick(Point)                   {}
func (e *Element) SendScroll(float64)                 {}
func (e *Element) SendKey(KeyCode, bool)              {}
func (e *Element) SendText(string)                    {}

// IsInRange hit-tests against the panel bounds.
func (e *Element) IsInRange(pos Point) bool {
	return e.Bounds().Contains(pos)
}

// RemoveCursor resets hovered buttons.
func (e *Element) RemoveCursor(bool, Point) bool {
	for _, b := range e.Buttons {
		if b.State() == ButtonMouseOver {
			b.SetState(ButtonNormal)
		}
	}
	return false
}

// SendCursor runs the button hit-test. A hovered button that is clicked is
// reported to the owner's ButtonPressed and takes the state it returns.
func (e *Element) SendCursor(clicked bool, pos Point) CursorState {
	ret := CursorIdle
	if clicked {
		ret = CursorClicking
	}

	for _, id := range e.buttonIDs() {
		// A press may rebuild the button set.
		b, ok := e.Buttons[id]
		if !ok {
			continue
		}
		if b.IsActive() && b.Contains(e.position, pos) {
			switch b.State() {
			case ButtonNormal:
				b.SetState(ButtonMouseOver)
				ret = CursorCanClick
			case ButtonMouseOver:
				if clicked {
					b.SetState(e.press(id))
					ret = CursorIdle
				} else {
					ret = CursorCanClick
				}
			}
		} else if b.State() == ButtonMouseOver {
			b.SetState(ButtonNormal)
		}
	}

	return ret
}

func (e *Element) press(id ButtonID) ButtonState {
	if e.owner != nil {
		return e.owner.ButtonPressed(id)
	}
	return ButtonNormal
}

// buttonIDs returns button ids in ascending order so that hit-testing and
// drawing are deterministic.
func (e *Element) buttonIDs() []ButtonID {
	ids := make([]ButtonID, 0, len(e.Buttons))
	for id := range e.Buttons {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
