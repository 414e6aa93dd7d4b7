package panels

import (
	"golang.org/x/time/rate"

	"github.com/Faultbox/midgard-ui/internal/ui"
)

const (
	loginButtonLogin ui.ButtonID = iota
	loginButtonQuit
	loginButtonSaveID
)

const (
	msgQuit         = "Are you sure you want to quit?"
	loginFieldLimit = 12
)

// Login is the account and password form.
type Login struct {
	ui.Element

	env      *Env
	account  *ui.TextField
	password *ui.TextField
	limiter  *rate.Limiter
}

// NewLogin creates the login form. The account field is prefilled with the
// remembered account when saving logins is enabled.
func NewLogin(env *Env) *Login {
	p := &Login{env: env}
	dim := ui.Pt(300, 190)
	p.Init(p, env.centered(dim), dim)

	p.account = ui.NewTextField(ui.RectAt(ui.Pt(70, 40), ui.Pt(200, 20)), loginFieldLimit)
	p.password = ui.NewTextField(ui.RectAt(ui.Pt(70, 70), ui.Pt(200, 20)), loginFieldLimit)
	p.password.Mask = '*'

	limit := rate.Inf
	if env.Config != nil {
		if env.Config.UI.SaveLogin {
			p.account.SetText(env.Config.UI.DefaultAccount)
		}
		if d := env.Config.Network.LoginInterval; d > 0 {
			limit = rate.Every(d)
		}
	}
	p.limiter = rate.NewLimiter(limit, 1)

	p.Sprites = append(p.Sprites,
		ui.Frame{Bounds: ui.RectAt(ui.Point{}, dim), Fill: ui.ColorPanelBg, Border: ui.ColorPanelBorder},
		ui.Label{Offset: ui.Pt(120, 12), Text: "Login", Color: ui.ColorHighlight},
		ui.Label{Offset: ui.Pt(24, 43), Text: "ID", Color: ui.ColorText},
		ui.Label{Offset: ui.Pt(24, 73), Text: "PW", Color: ui.ColorText},
	)
	p.Buttons[loginButtonLogin] = ui.NewButton("Login", ui.RectAt(ui.Pt(70, 110), ui.Pt(96, 24)))
	p.Buttons[loginButtonQuit] = ui.NewButton("Quit", ui.RectAt(ui.Pt(174, 110), ui.Pt(96, 24)))
	p.Buttons[loginButtonSaveID] = ui.NewButton(p.saveLabel(), ui.RectAt(ui.Pt(70, 148), ui.Pt(120, 20)))

	p.Enable()
	return p
}

func (p *Login) Type() ui.PanelType { return ui.Login }

// Account returns the account field.
func (p *Login) Account() *ui.TextField { return p.account }

// Password returns the password field.
func (p *Login) Password() *ui.TextField { return p.password }

// Enable puts the form back into edit mode after a failed attempt.
func (p *Login) Enable() {
	p.password.SetState(ui.FieldNormal)
	if p.account.Text() == "" {
		p.account.SetState(ui.FieldFocused)
	} else {
		p.account.SetState(ui.FieldNormal)
		p.password.SetState(ui.FieldFocused)
	}
	p.password.SetText("")
}

func (p *Login) disable() {
	p.account.SetState(ui.FieldDisabled)
	p.password.SetState(ui.FieldDisabled)
}

func (p *Login) Draw(c ui.Canvas, alpha float32) {
	p.Element.Draw(c, alpha)
	p.account.Draw(c, p.Position(), alpha)
	p.password.Draw(c, p.Position(), alpha)
}

func (p *Login) SendCursor(clicked bool, pos ui.Point) ui.CursorState {
	for _, f := range []*ui.TextField{p.account, p.password} {
		if f.State() == ui.FieldDisabled || !f.Contains(p.Position(), pos) {
			continue
		}
		if !clicked {
			return ui.CursorCanClick
		}
		p.focusField(f)
		return ui.CursorClicking
	}
	return p.Element.SendCursor(clicked, pos)
}

func (p *Login) focusField(f *ui.TextField) {
	for _, other := range []*ui.TextField{p.account, p.password} {
		if other.State() == ui.FieldFocused {
			other.SetState(ui.FieldNormal)
		}
	}
	f.SetState(ui.FieldFocused)
}

func (p *Login) SendText(text string) {
	p.account.SendText(text)
	p.password.SendText(text)
}

func (p *Login) SendKey(code ui.KeyCode, pressed bool) {
	if !pressed {
		return
	}
	switch code {
	case ui.KeyReturn:
		p.Submit()
	case ui.KeyEscape:
		p.env.UI.Emplace(NewLoginNoticeConfirm(p.env, msgQuit, quitGame{env: p.env}))
	case ui.KeyTab:
		switch {
		case p.account.State() == ui.FieldFocused:
			p.focusField(p.password)
		case p.password.State() == ui.FieldFocused:
			p.focusField(p.account)
		}
	default:
		if !p.account.SendKey(code, pressed) {
			p.password.SendKey(code, pressed)
		}
	}
}

func (p *Login) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	switch id {
	case loginButtonLogin:
		p.Submit()
	case loginButtonQuit:
		p.env.UI.Emplace(NewLoginNoticeConfirm(p.env, msgQuit, quitGame{env: p.env}))
	case loginButtonSaveID:
		if p.env.Config != nil {
			p.env.Config.UI.SaveLogin = !p.env.Config.UI.SaveLogin
			p.Buttons[loginButtonSaveID].Text = p.saveLabel()
		}
	}
	return ui.ButtonNormal
}

func (p *Login) saveLabel() string {
	if p.env.Config != nil && p.env.Config.UI.SaveLogin {
		return "[x] Save ID"
	}
	return "[ ] Save ID"
}

// Submit sends the login request. Attempts are throttled and ignored while
// a previous attempt is still waiting for the server.
func (p *Login) Submit() {
	if wait := p.env.UI.Get(ui.LoginWait); wait != nil && wait.IsActive() {
		return
	}

	account, password := p.account.Text(), p.password.Text()
	switch {
	case account == "":
		p.fail(MsgNotRegistered)
		return
	case password == "":
		p.fail(MsgIncorrectPassword)
		return
	}

	if !p.limiter.AllowN(p.env.now(), 1) {
		p.env.logger().Debug("login attempt throttled")
		return
	}

	p.disable()
	p.env.UI.Emplace(NewLoginWait(p.env, reenableLogin{}))
	if !p.env.sent("login", p.env.Session.Login(account, password)) {
		p.env.UI.Remove(ui.LoginWait)
		p.fail(MsgConnectionFailed)
	}
}

func (p *Login) fail(m LoginMessage) {
	p.disable()
	p.env.UI.Emplace(NewLoginNotice(p.env, m, reenableLogin{}))
}

// reenableLogin gives the login form back to the user.
type reenableLogin struct{}

func (reenableLogin) Resolve(r *ui.Registry, _ ui.Outcome) {
	if p, ok := ui.As[*Login](r, ui.Login); ok {
		p.Enable()
		r.Focus(ui.Login)
	}
}

// ReenableLogin is the intent carried by notices raised during login.
func ReenableLogin() ui.Intent { return reenableLogin{} }

// quitGame exits the client when confirmed.
type quitGame struct {
	env *Env
}

func (q quitGame) Resolve(_ *ui.Registry, o ui.Outcome) {
	if o.Confirmed() && q.env.Quit != nil {
		q.env.Quit()
	}
}
