package ui

import "strings"

// FieldState is the input state of a TextField.
type FieldState uint8

const (
	FieldNormal FieldState = iota
	FieldFocused
	FieldDisabled
)

// TextField is a single-line text input owned by a panel.
type TextField struct {
	Bounds Rect
	Limit  int
	// Mask replaces every character when drawn, for password entry.
	Mask rune

	text  []rune
	state FieldState
}

// NewTextField creates an empty field.
func NewTextField(bounds Rect, limit int) *TextField {
	return &TextField{Bounds: bounds, Limit: limit}
}

// Text returns the current contents.
func (f *TextField) Text() string { return string(f.text) }

// SetText replaces the contents, truncated to the limit.
func (f *TextField) SetText(s string) {
	f.text = []rune(s)
	if f.Limit > 0 && len(f.text) > f.Limit {
		f.text = f.text[:f.Limit]
	}
}

// State returns the field state.
func (f *TextField) State() FieldState { return f.state }

// SetState changes the field state.
func (f *TextField) SetState(s FieldState) { f.state = s }

// Contains hit-tests pos against the field placed at origin.
func (f *TextField) Contains(origin, pos Point) bool {
	return f.Bounds.Offset(origin).Contains(pos)
}

// SendText appends typed characters when the field is focused.
func (f *TextField) SendText(s string) {
	if f.state != FieldFocused {
		return
	}
	for _, r := range s {
		if r < 0x20 {
			continue
		}
		if f.Limit > 0 && len(f.text) >= f.Limit {
			return
		}
		f.text = append(f.text, r)
	}
}

// SendKey handles editing keys. It reports whether the key was used.
func (f *TextField) SendKey(code KeyCode, pressed bool) bool {
	if !pressed || f.state != FieldFocused {
		return false
	}
	switch code {
	case KeyBackspace:
		if len(f.text) > 0 {
			f.text = f.text[:len(f.text)-1]
		}
		return true
	case KeyDelete:
		f.text = f.text[:0]
		return true
	}
	return false
}

// Draw renders the field at origin.
func (f *TextField) Draw(c Canvas, origin Point, alpha float32) {
	r := f.Bounds.Offset(origin)
	border := ColorPanelBorder
	text := ColorText
	switch f.state {
	case FieldFocused:
		border = ColorHighlight
	case FieldDisabled:
		text = ColorTextDim
	}
	c.FillRect(r, ColorInputBg.Fade(alpha))
	c.StrokeRect(r, border.Fade(alpha))

	shown := string(f.text)
	if f.Mask != 0 {
		shown = strings.Repeat(string(f.Mask), len(f.text))
	}
	c.DrawText(r.Min.Add(Pt(4, 3)), shown, text.Fade(alpha))
}
