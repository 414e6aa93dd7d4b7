package panels

import (
	"unicode/utf8"

	"github.com/Faultbox/midgard-ui/internal/ui"
)

const (
	createButtonCheck ui.ButtonID = iota
	createButtonCreate
	createButtonBack
	createButtonGender
)

const (
	minNameLength = 4
	maxNameLength = 12
)

// CharCreation is the new character form. The name must be checked with
// the server before the character can be created.
type CharCreation struct {
	ui.Element

	env    *Env
	name   *ui.TextField
	female bool
	named  bool
}

// NewCharCreation creates the form.
func NewCharCreation(env *Env) *CharCreation {
	p := &CharCreation{env: env}
	dim := ui.Pt(300, 200)
	p.Init(p, env.centered(dim), dim)

	p.name = ui.NewTextField(ui.RectAt(ui.Pt(80, 40), ui.Pt(190, 20)), maxNameLength)
	p.name.SetState(ui.FieldFocused)

	p.Sprites = append(p.Sprites,
		ui.Frame{Bounds: ui.RectAt(ui.Point{}, dim), Fill: ui.ColorPanelBg, Border: ui.ColorPanelBorder},
		ui.Label{Offset: ui.Pt(16, 10), Text: "New character", Color: ui.ColorHighlight},
		ui.Label{Offset: ui.Pt(24, 43), Text: "Name", Color: ui.ColorText},
	)
	p.Buttons[createButtonCheck] = ui.NewButton("Check", ui.RectAt(ui.Pt(80, 70), ui.Pt(90, 22)))
	p.Buttons[createButtonGender] = ui.NewButton("Male", ui.RectAt(ui.Pt(180, 70), ui.Pt(90, 22)))
	p.Buttons[createButtonCreate] = ui.NewButton("Create", ui.RectAt(ui.Pt(180, 160), ui.Pt(90, 24)))
	p.Buttons[createButtonBack] = ui.NewButton("Back", ui.RectAt(ui.Pt(24, 160), ui.Pt(90, 24)))
	p.Buttons[createButtonCreate].SetState(ui.ButtonDisabled)
	return p
}

func (p *CharCreation) Type() ui.PanelType { return ui.CharCreation }

// Name returns the name field.
func (p *CharCreation) Name() *ui.TextField { return p.name }

// Named reports whether the server accepted the current name.
func (p *CharCreation) Named() bool { return p.named }

func (p *CharCreation) Draw(c ui.Canvas, alpha float32) {
	p.Element.Draw(c, alpha)
	p.name.Draw(c, p.Position(), alpha)
}

func (p *CharCreation) SendText(text string) {
	if p.named {
		return
	}
	p.name.SendText(text)
}

func (p *CharCreation) SendKey(code ui.KeyCode, pressed bool) {
	if !pressed {
		return
	}
	switch code {
	case ui.KeyReturn:
		if p.named {
			p.create()
		} else {
			p.checkName()
		}
	case ui.KeyEscape:
		p.back()
	default:
		p.name.SendKey(code, pressed)
	}
}

func (p *CharCreation) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	switch id {
	case createButtonCheck:
		p.checkName()
	case createButtonCreate:
		if !p.named {
			return ui.ButtonDisabled
		}
		p.create()
	case createButtonGender:
		p.female = !p.female
		if p.female {
			p.Buttons[createButtonGender].Text = "Female"
		} else {
			p.Buttons[createButtonGender].Text = "Male"
		}
	case createButtonBack:
		p.back()
	}
	return ui.ButtonNormal
}

func (p *CharCreation) checkName() {
	name := p.name.Text()
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		p.env.UI.Emplace(NewLoginNotice(p.env, MsgIllegalName, nil))
		return
	}
	p.name.SetState(ui.FieldDisabled)
	p.env.sent("check name", p.env.Session.CheckName(name))
}

// SendNamingResult receives the server's verdict on the name.
func (p *CharCreation) SendNamingResult(used bool) {
	if used {
		p.named = false
		p.name.SetState(ui.FieldFocused)
		p.Buttons[createButtonCreate].SetState(ui.ButtonDisabled)
		return
	}
	p.named = true
	p.Buttons[createButtonCreate].SetState(ui.ButtonNormal)
}

func (p *CharCreation) create() {
	p.env.sent("create char", p.env.Session.CreateChar(p.name.Text(), 0, p.female))
	p.back()
}

// back closes the form and shows the character list again.
func (p *CharCreation) back() {
	p.env.UI.Post(ui.CommandFunc(func(r *ui.Registry) {
		r.Remove(ui.CharCreation)
		if cs := r.Get(ui.CharSelect); cs != nil {
			cs.MakeActive()
			r.Focus(ui.CharSelect)
		}
	}))
}
