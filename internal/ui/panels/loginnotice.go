package panels

import (
	"fmt"

	"github.com/Faultbox/midgard-ui/internal/ui"
)

// LoginMessage indexes the messages of the login notice. Login results
// other than the few handled explicitly are shown as message reason-1.
type LoginMessage int

const (
	MsgIncorrectPassword   LoginMessage = 3
	MsgNotRegistered       LoginMessage = 4
	MsgNameInUse           LoginMessage = 5
	MsgUnknownError        LoginMessage = 15
	MsgBlockedID           LoginMessage = 16
	MsgAlreadyLoggedIn     LoginMessage = 19
	MsgIncorrectPIC        LoginMessage = 20
	MsgUnableToLoginWithIP LoginMessage = 21
	MsgBirthdayIncorrect   LoginMessage = 22
	MsgIllegalName         LoginMessage = 23
	MsgConnectionFailed    LoginMessage = 24
)

var loginMessages = map[LoginMessage]string{
	MsgIncorrectPassword:   "Incorrect password.",
	MsgNotRegistered:       "Not a registered ID.",
	MsgNameInUse:           "This name is already in use.",
	MsgUnknownError:        "An unknown error has occurred.",
	MsgBlockedID:           "This ID has been blocked.",
	MsgAlreadyLoggedIn:     "This ID is already logged in.",
	MsgIncorrectPIC:        "The PIC you entered is incorrect.",
	MsgUnableToLoginWithIP: "You are unable to log in from this IP address.",
	MsgBirthdayIncorrect:   "The birthday you entered is incorrect.",
	MsgIllegalName:         "Names must be 4 to 12 characters long.",
	MsgConnectionFailed:    "Unable to connect to the server.",
}

// Text returns the message shown for m.
func (m LoginMessage) Text() string {
	if s, ok := loginMessages[m]; ok {
		return s
	}
	return fmt.Sprintf("Login failed (code %d).", int(m))
}

// LoginNotice reports a login flow error. Dismissing it posts its intent.
type LoginNotice struct {
	notice
	message LoginMessage
}

// NewLoginNotice creates a login notice. intent may be nil.
func NewLoginNotice(env *Env, message LoginMessage, intent ui.Intent) *LoginNotice {
	p := &LoginNotice{message: message}
	p.init(p, env, message.Text(), noticeWidth, 0, 0, intent)
	p.Buttons[buttonOK] = ui.NewButton("OK", p.buttonRow(0))
	return p
}

func (p *LoginNotice) Type() ui.PanelType { return ui.LoginNotice }

// Message returns the message index shown.
func (p *LoginNotice) Message() LoginMessage { return p.message }

func (p *LoginNotice) SendKey(code ui.KeyCode, pressed bool) {
	if !pressed {
		return
	}
	switch code {
	case ui.KeyReturn:
		p.answer(ui.AnswerOK, 0)
	case ui.KeyEscape:
		p.answer(ui.AnswerCancel, 0)
	}
}

func (p *LoginNotice) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	if id == buttonOK {
		p.answer(ui.AnswerOK, 0)
	}
	return ui.ButtonNormal
}

// LoginNoticeConfirm asks a yes/no question during the login flow.
type LoginNoticeConfirm struct {
	notice
}

// NewLoginNoticeConfirm creates a confirmation notice.
func NewLoginNoticeConfirm(env *Env, message string, intent ui.Intent) *LoginNoticeConfirm {
	p := &LoginNoticeConfirm{}
	p.init(p, env, message, noticeWidth, 0, 0, intent)
	p.Buttons[buttonYes] = ui.NewButton("Yes", p.buttonRow(1))
	p.Buttons[buttonNo] = ui.NewButton("No", p.buttonRow(0))
	return p
}

func (p *LoginNoticeConfirm) Type() ui.PanelType { return ui.LoginNoticeConfirm }

func (p *LoginNoticeConfirm) SendKey(code ui.KeyCode, pressed bool) {
	if !pressed {
		return
	}
	switch code {
	case ui.KeyReturn:
		p.answer(ui.AnswerYes, 0)
	case ui.KeyEscape:
		p.answer(ui.AnswerNo, 0)
	}
}

func (p *LoginNoticeConfirm) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	switch id {
	case buttonYes:
		p.answer(ui.AnswerYes, 0)
	case buttonNo:
		p.answer(ui.AnswerNo, 0)
	}
	return ui.ButtonNormal
}
