package panels

import (
	"github.com/Faultbox/midgard-ui/internal/game/keyboard"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

const (
	selectButtonBasic ui.ButtonID = iota
	selectButtonAlternate
	selectButtonClose
)

// KeySelect picks one of the default key layouts. The chosen layout is
// posted as the outcome number.
type KeySelect struct {
	notice
}

// NewKeySelect creates the layout picker.
func NewKeySelect(env *Env, intent ui.Intent) *KeySelect {
	p := &KeySelect{}
	p.init(p, env, "Choose a default key layout.", noticeWidth, 0, 0, intent)
	p.Buttons[selectButtonBasic] = ui.NewButton("Basic", p.buttonRow(2))
	p.Buttons[selectButtonAlternate] = ui.NewButton("Alt", p.buttonRow(1))
	p.Buttons[selectButtonClose] = ui.NewButton("Close", p.buttonRow(0))
	return p
}

func (p *KeySelect) Type() ui.PanelType { return ui.KeySelect }

func (p *KeySelect) SendKey(code ui.KeyCode, pressed bool) {
	if !pressed {
		return
	}
	switch code {
	case ui.KeyReturn:
		p.answer(ui.AnswerNumber, int(keyboard.LayoutBasic))
	case ui.KeyEscape:
		p.answer(ui.AnswerCancel, 0)
	}
}

func (p *KeySelect) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	switch id {
	case selectButtonBasic:
		p.answer(ui.AnswerNumber, int(keyboard.LayoutBasic))
	case selectButtonAlternate:
		p.answer(ui.AnswerNumber, int(keyboard.LayoutAlternate))
	case selectButtonClose:
		p.answer(ui.AnswerCancel, 0)
	}
	return ui.ButtonNormal
}
