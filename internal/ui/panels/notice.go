package panels

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/Faultbox/midgard-ui/internal/ui"
)

// NoticeKind selects the layout of an Ok notice.
type NoticeKind uint8

const (
	NoticeOK NoticeKind = iota
	// NoticeOKSmall is the narrow variant used for corrective messages.
	NoticeOKSmall
)

// Buttons shared by the notice panels.
const (
	buttonOK ui.ButtonID = iota
	buttonCancel
	buttonYes
	buttonNo
)

const (
	noticeWidth      = 260
	noticeSmallWidth = 180
	noticeButtonW    = 40
	noticeButtonH    = 18
)

// notice is the common base of Ok, YesNo and EnterNumber.
type notice struct {
	ui.DragElement

	env     *Env
	intent  ui.Intent
	message string
	// body is the y offset right below the message.
	body int
}

func (n *notice) init(owner ui.Panel, env *Env, message string, width, extra, shift int, intent ui.Intent) {
	n.env = env
	n.intent = intent
	n.message = message

	lines := wrap(message, width-24)
	n.body = 16 + len(lines)*lineHeight + 8
	dim := ui.Pt(width, n.body+extra+noticeButtonH+14)

	pos := env.centered(dim)
	pos.Y += shift
	n.InitDrag(owner, pos, dim, ui.Rect{Max: ui.Pt(width, 12)})

	n.Sprites = append(n.Sprites,
		ui.Frame{Bounds: ui.RectAt(ui.Point{}, dim), Fill: ui.ColorPanelBg, Border: ui.ColorPanelBorder},
		textLines{Offset: ui.Pt(12, 16), Lines: lines, Color: ui.ColorWhite, Center: true, Width: width - 24},
	)
}

// Text returns the message shown.
func (n *notice) Text() string { return n.message }

// buttonRow returns bounds for a button in the bottom row, counted from the
// right edge.
func (n *notice) buttonRow(fromRight int) ui.Rect {
	dim := n.Dimension()
	x := dim.X - 12 - (fromRight+1)*noticeButtonW - fromRight*4
	y := dim.Y - noticeButtonH - 8
	return ui.RectAt(ui.Pt(x, y), ui.Pt(noticeButtonW, noticeButtonH))
}

// answer closes the notice and posts its outcome.
func (n *notice) answer(a ui.Answer, number int) {
	n.Deactivate()
	if n.intent != nil {
		n.env.UI.Post(ui.Outcome{Intent: n.intent, Answer: a, Number: number})
	}
}

// Ok is a notice with a single OK button.
type Ok struct {
	notice
}

// NewOk creates an Ok notice. intent may be nil.
func NewOk(env *Env, message string, intent ui.Intent, kind NoticeKind) *Ok {
	p := &Ok{}
	width, shift := noticeWidth, -8
	if kind == NoticeOKSmall {
		width, shift = noticeSmallWidth, 0
	}
	p.init(p, env, message, width, 0, shift, intent)
	p.Buttons[buttonOK] = ui.NewButton("OK", p.buttonRow(0))
	return p
}

func (p *Ok) Type() ui.PanelType { return ui.Notice }

func (p *Ok) SendKey(code ui.KeyCode, pressed bool) {
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

func (p *Ok) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	if id == buttonOK {
		p.answer(ui.AnswerOK, 0)
	}
	return ui.ButtonNormal
}

// YesNo is a notice asking a question.
type YesNo struct {
	notice
}

// NewYesNo creates a question notice.
func NewYesNo(env *Env, message string, intent ui.Intent) *YesNo {
	p := &YesNo{}
	p.init(p, env, message, noticeWidth, 0, -8, intent)
	p.Buttons[buttonYes] = ui.NewButton("Yes", p.buttonRow(1))
	p.Buttons[buttonNo] = ui.NewButton("No", p.buttonRow(0))
	return p
}

func (p *YesNo) Type() ui.PanelType { return ui.Notice }

func (p *YesNo) SendKey(code ui.KeyCode, pressed bool) {
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

func (p *YesNo) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	switch id {
	case buttonYes:
		p.answer(ui.AnswerYes, 0)
	case buttonNo:
		p.answer(ui.AnswerNo, 0)
	}
	return ui.ButtonPressed
}

// Corrective messages of the number prompt.
const (
	msgOnlyNumbers = "Only numbers are allowed."
	msgAtLeastOne  = "You may only enter a number equal to or higher than 1."
)

func msgAtMost(limit int) string {
	return "You may only enter a number equal to or lower than " + strconv.Itoa(limit) + "."
}

// EnterNumber prompts for a quantity between 1 and a maximum. It lives in
// its own slot so the corrective notice it raises is drawn on top of it
// instead of replacing it.
type EnterNumber struct {
	notice

	field *ui.TextField
	max   int
}

// NewEnterNumber creates a number prompt prefilled with quantity.
func NewEnterNumber(env *Env, message string, intent ui.Intent, limit, quantity int) *EnterNumber {
	p := &EnterNumber{max: limit}
	p.init(p, env, message, noticeWidth, 28, -16, intent)

	p.field = ui.NewTextField(ui.RectAt(ui.Pt(24, p.body), ui.Pt(noticeWidth-48, 20)), 10)
	p.field.SetText(strconv.Itoa(quantity))
	p.field.SetState(ui.FieldFocused)

	p.Buttons[buttonOK] = ui.NewButton("OK", p.buttonRow(1))
	p.Buttons[buttonCancel] = ui.NewButton("Cancel", p.buttonRow(0))
	return p
}

func (p *EnterNumber) Type() ui.PanelType { return ui.EnterNumber }

// Field exposes the number field.
func (p *EnterNumber) Field() *ui.TextField { return p.field }

func (p *EnterNumber) Draw(c ui.Canvas, alpha float32) {
	p.notice.Draw(c, alpha)
	p.field.Draw(c, p.Position(), alpha)
}

func (p *EnterNumber) SendCursor(clicked bool, pos ui.Point) ui.CursorState {
	if p.field.State() == ui.FieldNormal && p.field.Contains(p.Position(), pos) {
		if clicked {
			p.field.SetState(ui.FieldFocused)
			return ui.CursorClicking
		}
		return ui.CursorCanClick
	}
	return p.notice.SendCursor(clicked, pos)
}

func (p *EnterNumber) SendText(text string) {
	p.field.SendText(text)
}

func (p *EnterNumber) SendKey(code ui.KeyCode, pressed bool) {
	if !pressed {
		return
	}
	switch code {
	case ui.KeyReturn:
		p.Submit(p.field.Text())
	case ui.KeyEscape:
		p.answer(ui.AnswerCancel, 0)
	default:
		p.field.SendKey(code, pressed)
	}
}

func (p *EnterNumber) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	switch id {
	case buttonOK:
		p.Submit(p.field.Text())
	case buttonCancel:
		p.answer(ui.AnswerCancel, 0)
	}
	return ui.ButtonNormal
}

// Submit validates text. A valid number closes the prompt and is posted
// with the prompt's intent. Anything else disables the field and raises a
// corrective notice; dismissing that notice re-enables the field.
func (p *EnterNumber) Submit(text string) {
	if text == "" || strings.IndexFunc(text, func(r rune) bool { return !unicode.IsDigit(r) || r > unicode.MaxASCII }) >= 0 {
		p.reject(msgOnlyNumbers)
		return
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		// Only digits, so the value overflowed.
		n = math.MaxInt
	}

	switch {
	case n < 1:
		p.reject(msgAtLeastOne)
	case n > p.max:
		p.reject(msgAtMost(p.max))
	default:
		p.answer(ui.AnswerNumber, n)
	}
}

func (p *EnterNumber) reject(message string) {
	p.field.SetState(ui.FieldDisabled)
	p.env.UI.Emplace(NewOk(p.env, message, reenableNumber{}, NoticeOKSmall))
}

func (p *EnterNumber) reenable() {
	p.field.SetState(ui.FieldFocused)
	if b := p.Buttons[buttonOK]; b != nil {
		b.SetState(ui.ButtonNormal)
	}
}

// reenableNumber puts the number prompt back into edit mode.
type reenableNumber struct{}

func (reenableNumber) Resolve(r *ui.Registry, _ ui.Outcome) {
	if p, ok := ui.As[*EnterNumber](r, ui.EnterNumber); ok {
		p.reenable()
	}
}
