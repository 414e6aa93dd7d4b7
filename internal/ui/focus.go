package ui

// FocusRouter tracks the panel receiving keyboard input, the panel being
// dragged and the icon being dragged. Panels are referenced by slot type so
// the router never keeps a panel alive.
type FocusRouter struct {
	focused PanelType
	dragged PanelType
	grab    Point
	icon    *Icon
}

// RequestFocus gives keyboard focus to t. The slot is not checked.
func (f *FocusRouter) RequestFocus(t PanelType) {
	f.focused = t
}

// Focused returns the focused type, or None.
func (f *FocusRouter) Focused() PanelType { return f.focused }

// ClearFocus drops keyboard focus.
func (f *FocusRouter) ClearFocus() { f.focused = None }

// StartDrag records t as the drag target.
func (f *FocusRouter) StartDrag(t PanelType, offset Point) {
	f.dragged = t
	f.grab = offset
}

// Dragged returns the dragged panel type and its grab offset.
func (f *FocusRouter) Dragged() (PanelType, Point) { return f.dragged, f.grab }

// EndDrag forgets the drag target.
func (f *FocusRouter) EndDrag() {
	f.dragged = None
	f.grab = Point{}
}

// DragIcon stores the icon being dragged.
func (f *FocusRouter) DragIcon(icon *Icon) { f.icon = icon }

// Icon returns the dragged icon, or nil.
func (f *FocusRouter) Icon() *Icon { return f.icon }

// DropIcon clears the icon slot.
func (f *FocusRouter) DropIcon() {
	if f.icon != nil {
		f.icon.Reset()
	}
	f.icon = nil
}

// ClearIf forgets every reference to slot t. The registry calls it whenever
// slot t is emptied or replaced.
func (f *FocusRouter) ClearIf(t PanelType) {
	if f.focused == t {
		f.focused = None
	}
	if f.dragged == t {
		f.EndDrag()
	}
	if f.icon != nil && f.icon.Source == t {
		f.DropIcon()
	}
}

// Reset clears all router state.
func (f *FocusRouter) Reset() {
	f.focused = None
	f.EndDrag()
	f.DropIcon()
}
