// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-ui/internal/game/keyboard"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventText
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    keyboard.Key
	Text   string
	Width  int
	Height int
	Pos    ui.Point
	Button uint8
	Clicks uint8
	Scroll float64
}

// Target receives translated input. The game implements it.
type Target interface {
	SendCursor(clicked bool, pos ui.Point) ui.CursorState
	SendKey(k keyboard.Key, pressed bool)
	SendText(text string)
	SendScroll(offset float64)
	DoubleClick(pos ui.Point)
	RightClick(pos ui.Point)
}

// Input handles all input processing.
type Input struct {
	events []Event
	// held is true while the left button is down.
	held   bool
	cursor ui.CursorState
}

// New creates a new input handler and enables text input events.
func New() *Input {
	sdl.StartTextInput()
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			k := KeyFromScancode(e.Keysym.Scancode)
			if k == keyboard.KeyNone {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: k})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{Type: EventKeyUp, Key: k})
			}

		case *sdl.TextInputEvent:
			i.events = append(i.events, Event{Type: EventText, Text: e.GetText()})

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type: EventMouseMove,
				Pos:  ui.Pt(int(e.X), int(e.Y)),
			})

		case *sdl.MouseButtonEvent:
			ev := Event{
				Pos:    ui.Pt(int(e.X), int(e.Y)),
				Button: e.Button,
				Clicks: e.Clicks,
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = EventMouseDown
			} else {
				ev.Type = EventMouseUp
			}
			i.events = append(i.events, ev)

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{Type: EventWheel, Scroll: float64(e.Y)})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Cursor returns the hint of the last pointer event.
func (i *Input) Cursor() ui.CursorState {
	return i.cursor
}

// Dispatch forwards the events of the last Update to t. The left button
// drives SendCursor: pressed while held, released otherwise.
func (i *Input) Dispatch(t Target) {
	for _, e := range i.events {
		switch e.Type {
		case EventKeyDown:
			t.SendKey(e.Key, true)
		case EventKeyUp:
			t.SendKey(e.Key, false)
		case EventText:
			t.SendText(e.Text)
		case EventMouseMove:
			i.cursor = t.SendCursor(i.held, e.Pos)
		case EventMouseDown:
			switch e.Button {
			case sdl.BUTTON_LEFT:
				i.held = true
				if e.Clicks == 2 {
					t.DoubleClick(e.Pos)
				}
				i.cursor = t.SendCursor(true, e.Pos)
			case sdl.BUTTON_RIGHT:
				t.RightClick(e.Pos)
			}
		case EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				i.held = false
				i.cursor = t.SendCursor(false, e.Pos)
			}
		case EventWheel:
			t.SendScroll(e.Scroll)
		}
	}
}

// KeyFromScancode maps a physical key to the client key set. Keys the
// client does not know map to KeyNone.
func KeyFromScancode(sc sdl.Scancode) keyboard.Key {
	return scancodes[sc]
}

var scancodes = map[sdl.Scancode]keyboard.Key{
	sdl.SCANCODE_ESCAPE: keyboard.Escape,
	sdl.SCANCODE_F1:     keyboard.F1, sdl.SCANCODE_F2: keyboard.F2, sdl.SCANCODE_F3: keyboard.F3,
	sdl.SCANCODE_F4: keyboard.F4, sdl.SCANCODE_F5: keyboard.F5, sdl.SCANCODE_F6: keyboard.F6,
	sdl.SCANCODE_F7: keyboard.F7, sdl.SCANCODE_F8: keyboard.F8, sdl.SCANCODE_F9: keyboard.F9,
	sdl.SCANCODE_F10: keyboard.F10, sdl.SCANCODE_F11: keyboard.F11, sdl.SCANCODE_F12: keyboard.F12,
	sdl.SCANCODE_SCROLLLOCK: keyboard.ScrollLock,
	sdl.SCANCODE_GRAVE:      keyboard.GraveAccent,
	sdl.SCANCODE_1:          keyboard.Num1, sdl.SCANCODE_2: keyboard.Num2, sdl.SCANCODE_3: keyboard.Num3,
	sdl.SCANCODE_4: keyboard.Num4, sdl.SCANCODE_5: keyboard.Num5, sdl.SCANCODE_6: keyboard.Num6,
	sdl.SCANCODE_7: keyboard.Num7, sdl.SCANCODE_8: keyboard.Num8, sdl.SCANCODE_9: keyboard.Num9,
	sdl.SCANCODE_0: keyboard.Num0, sdl.SCANCODE_MINUS: keyboard.Minus, sdl.SCANCODE_EQUALS: keyboard.Equal,
	sdl.SCANCODE_Q: keyboard.Q, sdl.SCANCODE_W: keyboard.W, sdl.SCANCODE_E: keyboard.E,
	sdl.SCANCODE_R: keyboard.R, sdl.SCANCODE_T: keyboard.T, sdl.SCANCODE_Y: keyboard.Y,
	sdl.SCANCODE_U: keyboard.U, sdl.SCANCODE_I: keyboard.I, sdl.SCANCODE_O: keyboard.O,
	sdl.SCANCODE_P: keyboard.P, sdl.SCANCODE_LEFTBRACKET: keyboard.LeftBracket,
	sdl.SCANCODE_RIGHTBRACKET: keyboard.RightBracket, sdl.SCANCODE_BACKSLASH: keyboard.Backslash,
	sdl.SCANCODE_A: keyboard.A, sdl.SCANCODE_S: keyboard.S, sdl.SCANCODE_D: keyboard.D,
	sdl.SCANCODE_F: keyboard.F, sdl.SCANCODE_G: keyboard.G, sdl.SCANCODE_H: keyboard.H,
	sdl.SCANCODE_J: keyboard.J, sdl.SCANCODE_K: keyboard.K, sdl.SCANCODE_L: keyboard.L,
	sdl.SCANCODE_SEMICOLON: keyboard.Semicolon, sdl.SCANCODE_APOSTROPHE: keyboard.Apostrophe,
	sdl.SCANCODE_LSHIFT: keyboard.LeftShift,
	sdl.SCANCODE_Z:      keyboard.Z, sdl.SCANCODE_X: keyboard.X, sdl.SCANCODE_C: keyboard.C,
	sdl.SCANCODE_V: keyboard.V, sdl.SCANCODE_B: keyboard.B, sdl.SCANCODE_N: keyboard.N,
	sdl.SCANCODE_M: keyboard.M, sdl.SCANCODE_COMMA: keyboard.Comma, sdl.SCANCODE_PERIOD: keyboard.Period,
	sdl.SCANCODE_RSHIFT: keyboard.RightShift,
	sdl.SCANCODE_LCTRL:  keyboard.LeftControl, sdl.SCANCODE_LALT: keyboard.LeftAlt,
	sdl.SCANCODE_SPACE: keyboard.Space, sdl.SCANCODE_RALT: keyboard.RightAlt,
	sdl.SCANCODE_RCTRL:  keyboard.RightControl,
	sdl.SCANCODE_INSERT: keyboard.Insert, sdl.SCANCODE_HOME: keyboard.Home,
	sdl.SCANCODE_PAGEUP: keyboard.PageUp, sdl.SCANCODE_DELETE: keyboard.Delete,
	sdl.SCANCODE_END: keyboard.End, sdl.SCANCODE_PAGEDOWN: keyboard.PageDown,
	sdl.SCANCODE_RETURN: keyboard.Return, sdl.SCANCODE_KP_ENTER: keyboard.Return,
	sdl.SCANCODE_BACKSPACE: keyboard.Backspace, sdl.SCANCODE_TAB: keyboard.Tab,
	sdl.SCANCODE_LEFT: keyboard.Left, sdl.SCANCODE_RIGHT: keyboard.Right,
	sdl.SCANCODE_UP: keyboard.Up, sdl.SCANCODE_DOWN: keyboard.Down,
}
