package ui

// CursorState is the hint a panel returns for a pointer event. It tells the
// caller which cursor to show and whether the event was handled.
type CursorState uint8

const (
	CursorIdle CursorState = iota
	CursorCanClick
	CursorClicking
	CursorCanGrab
	CursorGrabbing
)

func (s CursorState) String() string {
	switch s {
	case CursorIdle:
		return "IDLE"
	case CursorCanClick:
		return "CANCLICK"
	case CursorClicking:
		return "CLICKING"
	case CursorCanGrab:
		return "CANGRAB"
	case CursorGrabbing:
		return "GRABBING"
	default:
		return "UNKNOWN"
	}
}

// Handled reports whether the hint means a panel consumed the event.
func (s CursorState) Handled() bool {
	return s != CursorIdle
}
