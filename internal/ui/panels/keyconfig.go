package panels

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ui/internal/game/keyboard"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

const (
	keysButtonClose ui.ButtonID = iota
	keysButtonCancel
	keysButtonDefault
	keysButtonDelete
	keysButtonKeySetting
	keysButtonOK
)

const (
	msgRevertKeys = "Would you like to revert to default settings?"
	msgClearKeys  = "Would you like to clear all key bindings?"
)

const (
	keySlot     = 33
	paletteSlot = 36
	paletteY    = 270
	paletteCols = 16
)

type binding struct {
	key    keyboard.Key
	action keyboard.Action
}

// KeyConfig edits the key bindings. Icons are dragged from the palette onto
// keys; changes are kept pending until OK applies and saves them.
type KeyConfig struct {
	ui.DragElement

	env     *Env
	keyPos  map[keyboard.Key]ui.Point
	iconPos map[keyboard.Action]ui.Point
	icons   map[keyboard.Action]*ui.Icon

	// found are the actions that stay bound to their current key.
	found []keyboard.Action
	// updated are pending new bindings.
	updated []binding
}

// NewKeyConfig creates the key configuration window for env.Keys.
func NewKeyConfig(env *Env) *KeyConfig {
	p := &KeyConfig{
		env:     env,
		keyPos:  keyPositions(),
		iconPos: make(map[keyboard.Action]ui.Point),
		icons:   make(map[keyboard.Action]*ui.Icon),
	}

	actions := keyboard.Actions()
	rows := (len(actions) + paletteCols - 1) / paletteCols
	dim := ui.Pt(16*2+paletteCols*paletteSlot, paletteY+rows*paletteSlot+44)
	pos := env.centered(dim)
	p.InitDrag(p, pos, dim, ui.Rect{Max: ui.Pt(dim.X, 20)})

	for i, a := range actions {
		p.iconPos[a] = ui.Pt(16+(i%paletteCols)*paletteSlot, paletteY+(i/paletteCols)*paletteSlot)
		icon := ui.NewIcon(ui.KeyConfig, int32(a), a.String())
		icon.OnStage = unbindAction{Action: a}
		p.icons[a] = icon
	}

	p.Sprites = append(p.Sprites,
		ui.Frame{Bounds: ui.RectAt(ui.Point{}, dim), Fill: ui.ColorPanelBg, Border: ui.ColorPanelBorder},
		ui.Frame{Bounds: ui.Rect{Max: ui.Pt(dim.X, 20)}, Fill: ui.ColorTitleBar},
		ui.Label{Offset: ui.Pt(8, 4), Text: "Key Configuration", Color: ui.ColorWhite},
	)

	bottom := dim.Y - 32
	p.Buttons[keysButtonClose] = ui.NewButton("x", ui.RectAt(ui.Pt(dim.X-20, 3), ui.Pt(14, 14)))
	p.Buttons[keysButtonDefault] = ui.NewButton("Default", ui.RectAt(ui.Pt(16, bottom), ui.Pt(80, 22)))
	p.Buttons[keysButtonDelete] = ui.NewButton("Delete", ui.RectAt(ui.Pt(102, bottom), ui.Pt(80, 22)))
	p.Buttons[keysButtonKeySetting] = ui.NewButton("Layout", ui.RectAt(ui.Pt(188, bottom), ui.Pt(80, 22)))
	p.Buttons[keysButtonOK] = ui.NewButton("OK", ui.RectAt(ui.Pt(dim.X-172, bottom), ui.Pt(76, 22)))
	p.Buttons[keysButtonCancel] = ui.NewButton("Cancel", ui.RectAt(ui.Pt(dim.X-92, bottom), ui.Pt(76, 22)))

	p.mapKeys()
	return p
}

// keyPositions lays the bindable keys out like a physical keyboard.
func keyPositions() map[keyboard.Key]ui.Point {
	pos := make(map[keyboard.Key]ui.Point)
	row := func(first, last keyboard.Key, x, y int) {
		for k := first; k <= last; k++ {
			pos[k] = ui.Pt(x+int(k-first)*keySlot, y)
		}
	}

	const top, rowY, quick = 30, 72, 500
	pos[keyboard.Escape] = ui.Pt(16, top)
	x := 16 + 2*keySlot
	for k := keyboard.F1; k <= keyboard.F12; k++ {
		pos[k] = ui.Pt(x, top)
		x += keySlot
		if k == keyboard.F4 || k == keyboard.F8 {
			x += 10
		}
	}
	pos[keyboard.ScrollLock] = ui.Pt(quick+keySlot, top)

	row(keyboard.GraveAccent, keyboard.Equal, 16, rowY)
	row(keyboard.Q, keyboard.Backslash, 40, rowY+keySlot)
	row(keyboard.A, keyboard.Apostrophe, 50, rowY+2*keySlot)
	pos[keyboard.LeftShift] = ui.Pt(16, rowY+3*keySlot)
	row(keyboard.Z, keyboard.Period, 16+2*keySlot, rowY+3*keySlot)
	pos[keyboard.RightShift] = ui.Pt(16+12*keySlot, rowY+3*keySlot)

	bottom := rowY + 4*keySlot
	for i, k := range []keyboard.Key{keyboard.LeftControl, keyboard.LeftAlt, keyboard.Space, keyboard.RightAlt, keyboard.RightControl} {
		pos[k] = ui.Pt(16+i*2*keySlot, bottom)
	}

	row(keyboard.Insert, keyboard.PageUp, quick, rowY)
	row(keyboard.Delete, keyboard.PageDown, quick, rowY+keySlot)
	return pos
}

func (p *KeyConfig) Type() ui.PanelType { return ui.KeyConfig }

// Found returns the actions that keep their binding.
func (p *KeyConfig) Found() []keyboard.Action { return p.found }

// Pending returns the pending bindings keyed by key.
func (p *KeyConfig) Pending() map[keyboard.Key]keyboard.Action {
	m := make(map[keyboard.Key]keyboard.Action, len(p.updated))
	for _, b := range p.updated {
		m[b.key] = b.action
	}
	return m
}

// KeyPosition returns where key k is drawn, relative to the panel.
func (p *KeyConfig) KeyPosition(k keyboard.Key) (ui.Point, bool) {
	pt, ok := p.keyPos[k]
	return pt, ok
}

// IconPosition returns the palette slot of action a, relative to the panel.
func (p *KeyConfig) IconPosition(a keyboard.Action) (ui.Point, bool) {
	pt, ok := p.iconPos[a]
	return pt, ok
}

// mapKeys records every action currently bound on the keyboard.
func (p *KeyConfig) mapKeys() {
	for _, k := range keyboard.BindableKeys() {
		m := p.env.Keys.Mapping(k)
		if m.Type == keyboard.TypeNone {
			continue
		}
		// Equipment has id zero. It counts as bound like every other action
		// even though its id reads as unset.
		if m.Action != 0 || m.Action == keyboard.Equipment {
			p.found = append(p.found, m.Action)
		}
	}
}

func (p *KeyConfig) clear() {
	p.found = nil
	p.updated = nil
}

func (p *KeyConfig) reset() {
	p.clear()
	p.mapKeys()
}

func (p *KeyConfig) close() {
	p.Deactivate()
	p.reset()
}

// ToggleActive reopens the window with a fresh view of the keyboard.
func (p *KeyConfig) ToggleActive() {
	if p.IsActive() {
		p.close()
		return
	}
	p.reset()
	p.MakeActive()
}

// slotAt returns the key slot under pos.
func (p *KeyConfig) slotAt(pos ui.Point) (keyboard.Key, bool) {
	for _, k := range keyboard.BindableKeys() {
		at, ok := p.keyPos[k]
		if ok && slotRect(p.Position().Add(at)).Contains(pos) {
			return k, true
		}
	}
	return keyboard.KeyNone, false
}

// paletteAt returns the palette icon under pos. Actions that are bound are
// drawn on their key instead and cannot be picked from the palette.
func (p *KeyConfig) paletteAt(pos ui.Point) (keyboard.Action, bool) {
	for _, a := range keyboard.Actions() {
		if slices.Contains(p.found, a) || p.pendingKey(a) != keyboard.KeyNone {
			continue
		}
		if slotRect(p.Position().Add(p.iconPos[a])).Contains(pos) {
			return a, true
		}
	}
	return 0, false
}

func (p *KeyConfig) inPalette(pos ui.Point) bool {
	for _, at := range p.iconPos {
		if slotRect(p.Position().Add(at)).Contains(pos) {
			return true
		}
	}
	return false
}

func (p *KeyConfig) pendingKey(a keyboard.Action) keyboard.Key {
	for _, b := range p.updated {
		if b.action == a {
			return b.key
		}
	}
	return keyboard.KeyNone
}

// iconKey returns the key an action is shown on, if any.
func (p *KeyConfig) iconKey(a keyboard.Action) (keyboard.Key, bool) {
	if k := p.pendingKey(a); k != keyboard.KeyNone {
		return k, true
	}
	if slices.Contains(p.found, a) {
		return p.env.Keys.KeyFor(a)
	}
	return keyboard.KeyNone, false
}

// actionOn returns the action shown on key k.
func (p *KeyConfig) actionOn(k keyboard.Key) (keyboard.Action, bool) {
	for _, b := range p.updated {
		if b.key == k {
			return b.action, true
		}
	}
	m := p.env.Keys.Mapping(k)
	if m.Type != keyboard.TypeNone && slices.Contains(p.found, m.Action) && p.pendingKey(m.Action) == keyboard.KeyNone {
		return m.Action, true
	}
	return 0, false
}

func slotRect(at ui.Point) ui.Rect {
	return ui.RectAt(at, ui.Pt(ui.IconSize, ui.IconSize))
}

func (p *KeyConfig) Draw(c ui.Canvas, alpha float32) {
	p.DragElement.Draw(c, alpha)
	origin := p.Position()

	for _, k := range keyboard.BindableKeys() {
		at, ok := p.keyPos[k]
		if !ok {
			continue
		}
		r := slotRect(origin.Add(at))
		c.FillRect(r, ui.ColorInputBg.Fade(alpha))
		c.StrokeRect(r, ui.ColorPanelBorder.Fade(alpha))
		name := k.String()
		if len(name) > 4 {
			name = name[:4]
		}
		c.DrawText(r.Min.Add(ui.Pt(2, 20)), name, ui.ColorTextDim.Fade(alpha))
	}

	for _, a := range keyboard.Actions() {
		icon := p.icons[a]
		at := p.iconPos[a]
		if k, ok := p.iconKey(a); ok {
			at = p.keyPos[k]
		}
		icon.Draw(c, origin.Add(at), alpha)
	}
}

func (p *KeyConfig) SendKey(code ui.KeyCode, pressed bool) {
	if pressed && code == ui.KeyEscape {
		p.close()
	}
}

func (p *KeyConfig) SendCursor(clicked bool, pos ui.Point) ui.CursorState {
	state := p.DragElement.SendCursor(clicked, pos)
	if p.IsDragging() {
		return state
	}

	if a, ok := p.paletteAt(pos); ok {
		return p.grab(a, p.iconPos[a], clicked, pos)
	}
	if k, ok := p.slotAt(pos); ok {
		if a, ok := p.actionOn(k); ok {
			return p.grab(a, p.keyPos[k], clicked, pos)
		}
	}
	return state
}

func (p *KeyConfig) grab(a keyboard.Action, at ui.Point, clicked bool, pos ui.Point) ui.CursorState {
	if !clicked {
		return ui.CursorCanGrab
	}
	icon := p.icons[a]
	icon.StartDrag(pos.Sub(p.Position()).Sub(at))
	icon.MoveTo(pos)
	p.env.UI.DragIcon(icon)
	return ui.CursorGrabbing
}

// SendIcon handles an icon released over the window. Dropping on the
// palette unbinds the action, dropping on a key binds it there.
func (p *KeyConfig) SendIcon(icon *ui.Icon, pos ui.Point) {
	if icon.Source != ui.KeyConfig {
		return
	}
	a := keyboard.Action(icon.Action)
	if !a.Valid() {
		return
	}

	if p.inPalette(pos) {
		p.removeKey(a)
		return
	}
	if k, ok := p.slotAt(pos); ok {
		p.addKey(k, a)
	}
}

func (p *KeyConfig) removeKey(a keyboard.Action) {
	p.found = slices.DeleteFunc(p.found, func(f keyboard.Action) bool { return f == a })
	p.updated = slices.DeleteFunc(p.updated, func(b binding) bool { return b.action == a })
}

func (p *KeyConfig) addKey(k keyboard.Key, a keyboard.Action) {
	// Whatever was shown on k is displaced back to the palette.
	if old, ok := p.actionOn(k); ok && old != a {
		p.removeKey(old)
	}
	p.removeKey(a)

	if cur, ok := p.env.Keys.KeyFor(a); ok && cur == k {
		p.found = append(p.found, a)
		return
	}
	p.updated = append(p.updated, binding{key: k, action: a})
}

// apply writes the pending state to the keyboard and saves it.
func (p *KeyConfig) apply() {
	kb := p.env.Keys
	for _, k := range kb.Bound() {
		if !slices.Contains(p.found, kb.Mapping(k).Action) {
			kb.Unbind(k)
		}
	}
	for _, b := range p.updated {
		kb.Bind(b.key, b.action)
	}
	p.save()
	p.reset()
}

func (p *KeyConfig) save() {
	if p.env.Config == nil {
		return
	}
	path := p.env.Config.KeyBindingsPath()
	if err := p.env.Keys.Save(path); err != nil {
		p.env.logger().Warn("saving key bindings", zap.String("path", path), zap.Error(err))
	}
}

// applyLayout replaces every binding with a default layout.
func (p *KeyConfig) applyLayout(layout keyboard.Layout) {
	p.env.Keys.Reset(layout)
	p.save()
	p.reset()
}

func (p *KeyConfig) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	switch id {
	case keysButtonClose, keysButtonCancel:
		p.close()
	case keysButtonDefault:
		p.env.UI.Emplace(NewOk(p.env, msgRevertKeys, openKeySelect{}, NoticeOK))
	case keysButtonDelete:
		p.env.UI.Emplace(NewOk(p.env, msgClearKeys, clearKeys{}, NoticeOK))
	case keysButtonKeySetting:
		p.env.UI.Emplace(NewKeySelect(p.env, applyKeyLayout{}))
	case keysButtonOK:
		p.apply()
		p.close()
	}
	return ui.ButtonNormal
}

// openKeySelect asks which default layout to restore.
type openKeySelect struct{}

func (openKeySelect) Resolve(r *ui.Registry, o ui.Outcome) {
	if !o.Confirmed() {
		return
	}
	if p, ok := ui.As[*KeyConfig](r, ui.KeyConfig); ok {
		r.Emplace(NewKeySelect(p.env, applyKeyLayout{}))
	}
}

// applyKeyLayout restores the layout chosen in KeySelect.
type applyKeyLayout struct{}

func (applyKeyLayout) Resolve(r *ui.Registry, o ui.Outcome) {
	if !o.Confirmed() {
		return
	}
	if p, ok := ui.As[*KeyConfig](r, ui.KeyConfig); ok {
		p.applyLayout(keyboard.Layout(o.Number))
	}
}

// clearKeys empties the pending view so OK unbinds everything.
type clearKeys struct{}

func (clearKeys) Resolve(r *ui.Registry, o ui.Outcome) {
	if !o.Confirmed() {
		return
	}
	if p, ok := ui.As[*KeyConfig](r, ui.KeyConfig); ok {
		p.clear()
	}
}

// unbindAction runs when a key icon is dropped outside every window.
type unbindAction struct {
	Action keyboard.Action
}

func (u unbindAction) Apply(r *ui.Registry) {
	if p, ok := ui.As[*KeyConfig](r, ui.KeyConfig); ok {
		p.removeKey(u.Action)
	}
}
