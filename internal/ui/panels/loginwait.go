package panels

import (
	"time"

	"github.com/hako/durafmt"

	"github.com/Faultbox/midgard-ui/internal/ui"
)

const loginWaitCancel ui.ButtonID = 0

// LoginWait is shown while a request to the login server is pending. Its
// intent runs when the wait ends without success.
type LoginWait struct {
	ui.Element

	env     *Env
	intent  ui.Intent
	started time.Time
	elapsed string
}

// NewLoginWait creates a wait panel. intent may be nil.
func NewLoginWait(env *Env, intent ui.Intent) *LoginWait {
	p := &LoginWait{env: env, intent: intent, started: env.now()}
	dim := ui.Pt(220, 100)
	p.Init(p, env.centered(dim), dim)

	p.Sprites = append(p.Sprites,
		ui.Frame{Bounds: ui.RectAt(ui.Point{}, dim), Fill: ui.ColorPanelBg, Border: ui.ColorPanelBorder},
		ui.Label{Offset: ui.Pt(20, 18), Text: "Please wait...", Color: ui.ColorWhite},
	)
	p.Buttons[loginWaitCancel] = ui.NewButton("Cancel", ui.RectAt(ui.Pt(70, 64), ui.Pt(80, 22)))
	p.Update()
	return p
}

func (p *LoginWait) Type() ui.PanelType { return ui.LoginWait }

// Intent returns the continuation for a failed wait.
func (p *LoginWait) Intent() ui.Intent { return p.intent }

// Elapsed returns the formatted waiting time.
func (p *LoginWait) Elapsed() string { return p.elapsed }

func (p *LoginWait) Update() {
	d := p.env.now().Sub(p.started).Truncate(time.Second)
	p.elapsed = durafmt.Parse(d).LimitFirstN(2).String()
}

func (p *LoginWait) Draw(c ui.Canvas, alpha float32) {
	p.Element.Draw(c, alpha)
	c.DrawText(p.Position().Add(ui.Pt(20, 38)), p.elapsed, ui.ColorTextDim.Fade(alpha))
}

func (p *LoginWait) SendKey(code ui.KeyCode, pressed bool) {
	if pressed && code == ui.KeyEscape {
		p.Cancel()
	}
}

func (p *LoginWait) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	if id == loginWaitCancel {
		p.Cancel()
	}
	return ui.ButtonNormal
}

// Cancel stops waiting and runs the intent.
func (p *LoginWait) Cancel() {
	p.Deactivate()
	if p.intent != nil {
		p.env.UI.Post(ui.Outcome{Intent: p.intent, Answer: ui.AnswerCancel})
	}
}
