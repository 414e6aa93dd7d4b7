package panels

import (
	"time"

	"github.com/Faultbox/midgard-ui/internal/network/packets"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

// ChatChannel is where a chat line came from.
type ChatChannel uint8

const (
	ChatNormal ChatChannel = iota
	ChatSystem
	ChatAnnounce
)

// ChatMessage is one line of the chat log.
type ChatMessage struct {
	Time    time.Time
	Channel ChatChannel
	Text    string
}

const (
	chatCapacity = 100
	chatVisible  = 7
	chatWidth    = 420
	chatInputH   = 20
	chatLimit    = 70
)

// ChatBar shows the chat log above the status bar. RETURN opens the input
// line, a second RETURN sends it.
type ChatBar struct {
	ui.Element

	env      *Env
	messages []ChatMessage
	// scroll counts lines scrolled up from the newest message.
	scroll int
	input  *ui.TextField
}

// NewChatBar creates an empty chat log.
func NewChatBar(env *Env) *ChatBar {
	p := &ChatBar{
		env:      env,
		messages: make([]ChatMessage, 0, chatCapacity),
	}
	s := env.screen()
	dim := ui.Pt(chatWidth, chatVisible*lineHeight+chatInputH+12)
	p.Init(p, ui.Pt(0, s.Y-statusHeight-dim.Y), dim)

	p.input = ui.NewTextField(ui.RectAt(ui.Pt(4, dim.Y-chatInputH-4), ui.Pt(chatWidth-8, chatInputH)), chatLimit)
	p.input.SetState(ui.FieldDisabled)
	return p
}

func (p *ChatBar) Type() ui.PanelType { return ui.ChatBar }

// AddLine appends a line received from the server.
func (p *ChatBar) AddLine(line packets.ChatLine) {
	ch := ChatNormal
	if line.GM {
		ch = ChatAnnounce
	}
	p.AddMessage(ch, line.Text)
}

// AddMessage appends a line, dropping the oldest beyond the capacity.
func (p *ChatBar) AddMessage(ch ChatChannel, text string) {
	p.messages = append(p.messages, ChatMessage{Time: p.env.now(), Channel: ch, Text: text})
	if len(p.messages) > chatCapacity {
		p.messages = p.messages[len(p.messages)-chatCapacity:]
	}
	p.scroll = 0
}

// Messages returns the log, oldest first.
func (p *ChatBar) Messages() []ChatMessage { return p.messages }

// InputOpen reports whether the input line takes text.
func (p *ChatBar) InputOpen() bool { return p.input.State() == ui.FieldFocused }

// OpenInput focuses the input line and the bar.
func (p *ChatBar) OpenInput() {
	if !p.IsActive() {
		p.MakeActive()
	}
	p.input.SetState(ui.FieldFocused)
	p.env.UI.Focus(ui.ChatBar)
}

func (p *ChatBar) closeInput() {
	p.input.SetText("")
	p.input.SetState(ui.FieldDisabled)
	if p.env.UI.Focused() == ui.ChatBar {
		p.env.UI.Router().ClearFocus()
	}
}

func (p *ChatBar) send() {
	text := p.input.Text()
	p.closeInput()
	if text == "" {
		return
	}
	if !p.env.sent("chat", p.env.Session.Chat(text)) {
		p.AddMessage(ChatSystem, "Message could not be sent.")
	}
}

func (p *ChatBar) SendKey(code ui.KeyCode, pressed bool) {
	if !pressed {
		return
	}
	switch code {
	case ui.KeyReturn:
		if p.InputOpen() {
			p.send()
		} else {
			p.OpenInput()
		}
	case ui.KeyEscape:
		p.closeInput()
	default:
		p.input.SendKey(code, pressed)
	}
}

func (p *ChatBar) SendText(text string) {
	p.input.SendText(text)
}

func (p *ChatBar) SendCursor(clicked bool, pos ui.Point) ui.CursorState {
	if clicked && p.input.Contains(p.Position(), pos) && !p.InputOpen() {
		p.OpenInput()
		return ui.CursorClicking
	}
	return p.Element.SendCursor(clicked, pos)
}

// SendScroll moves through older lines.
func (p *ChatBar) SendScroll(offset float64) {
	switch {
	case offset > 0:
		p.scroll++
	case offset < 0:
		p.scroll--
	}
	p.scroll = max(0, min(p.scroll, len(p.messages)-chatVisible))
}

func (p *ChatBar) Draw(c ui.Canvas, alpha float32) {
	origin := p.Position()
	c.FillRect(p.Bounds(), ui.ColorPanelBg.WithAlpha(0.6).Fade(alpha))

	end := len(p.messages) - p.scroll
	start := max(0, end-chatVisible)
	y := 4
	for _, m := range p.messages[start:end] {
		c.DrawText(origin.Add(ui.Pt(6, y)), m.Text, chatColor(m.Channel).Fade(alpha))
		y += lineHeight
	}

	if p.InputOpen() {
		p.input.Draw(c, origin, alpha)
	}
	p.Element.Draw(c, alpha)
}

func chatColor(ch ChatChannel) ui.Color {
	switch ch {
	case ChatSystem:
		return ui.RGB(255, 102, 102)
	case ChatAnnounce:
		return ui.RGB(128, 178, 255)
	default:
		return ui.ColorWhite
	}
}
