// Package keyboard maps physical keys to game actions.
package keyboard

import "fmt"

// Key is a physical key on the bindable keyboard layout.
type Key int32

const (
	KeyNone Key = iota
	Escape
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	ScrollLock
	GraveAccent
	Num1
	Num2
	Num3
	Num4
	Num5
	Num6
	Num7
	Num8
	Num9
	Num0
	Minus
	Equal
	Q
	W
	E
	R
	T
	Y
	U
	I
	O
	P
	LeftBracket
	RightBracket
	Backslash
	A
	S
	D
	F
	G
	H
	J
	K
	L
	Semicolon
	Apostrophe
	LeftShift
	Z
	X
	C
	V
	B
	N
	M
	Comma
	Period
	RightShift
	LeftControl
	LeftAlt
	Space
	RightAlt
	RightControl
	Insert
	Home
	PageUp
	Delete
	End
	PageDown
	numBindable

	// Keys below drive menus and text entry and cannot be rebound.
	Return Key = iota + 100
	Backspace
	Tab
	Left
	Right
	Up
	Down
)

var keyNames = map[Key]string{
	Escape: "escape", F1: "f1", F2: "f2", F3: "f3", F4: "f4", F5: "f5", F6: "f6",
	F7: "f7", F8: "f8", F9: "f9", F10: "f10", F11: "f11", F12: "f12",
	ScrollLock: "scroll_lock", GraveAccent: "grave",
	Num1: "1", Num2: "2", Num3: "3", Num4: "4", Num5: "5", Num6: "6", Num7: "7",
	Num8: "8", Num9: "9", Num0: "0", Minus: "minus", Equal: "equal",
	Q: "q", W: "w", E: "e", R: "r", T: "t", Y: "y", U: "u", I: "i", O: "o", P: "p",
	LeftBracket: "left_bracket", RightBracket: "right_bracket", Backslash: "backslash",
	A: "a", S: "s", D: "d", F: "f", G: "g", H: "h", J: "j", K: "k", L: "l",
	Semicolon: "semicolon", Apostrophe: "apostrophe", LeftShift: "left_shift",
	Z: "z", X: "x", C: "c", V: "v", B: "b", N: "n", M: "m",
	Comma: "comma", Period: "period", RightShift: "right_shift",
	LeftControl: "left_control", LeftAlt: "left_alt", Space: "space",
	RightAlt: "right_alt", RightControl: "right_control",
	Insert: "insert", Home: "home", PageUp: "page_up", Delete: "delete",
	End: "end", PageDown: "page_down",
	Return: "return", Backspace: "backspace", Tab: "tab",
	Left: "left", Right: "right", Up: "up", Down: "down",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, n := range keyNames {
		m[n] = k
	}
	return m
}()

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return fmt.Sprintf("key(%d)", int32(k))
}

// Bindable reports whether k appears on the key configuration layout.
func (k Key) Bindable() bool {
	return k > KeyNone && k < numBindable
}

// ParseKey looks a key up by its config name.
func ParseKey(name string) (Key, error) {
	if k, ok := keysByName[name]; ok {
		return k, nil
	}
	return KeyNone, fmt.Errorf("unknown key %q", name)
}

// MarshalText implements encoding.TextMarshaler so keys can be YAML map keys.
func (k Key) MarshalText() ([]byte, error) {
	n, ok := keyNames[k]
	if !ok {
		return nil, fmt.Errorf("key %d has no name", int32(k))
	}
	return []byte(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// BindableKeys returns every bindable key in layout order.
func BindableKeys() []Key {
	keys := make([]Key, 0, numBindable-1)
	for k := KeyNone + 1; k < numBindable; k++ {
		keys = append(keys, k)
	}
	return keys
}
