package panels

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/Faultbox/midgard-ui/internal/network/packets"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

const (
	worldButtonEnter ui.ButtonID = iota
	worldButtonBack
	// worldButtonWorld + i selects world i.
	worldButtonWorld ui.ButtonID = 0x100
	// worldButtonChannel + i selects channel i of the selected world.
	worldButtonChannel ui.ButtonID = 0x8000

	// Worlds past maxWorldButtons are reachable with the arrow keys only.
	maxWorldButtons   = int(worldButtonChannel - worldButtonWorld)
	maxChannelButtons = int(^ui.ButtonID(0)-worldButtonChannel) + 1
)

// WorldSelect lists the worlds and channels sent by the server.
type WorldSelect struct {
	ui.Element

	env         *Env
	worlds      []packets.World
	recommended []packets.RecommendedWorld
	world       int
	channel     int
	shown       bool
}

// NewWorldSelect creates an empty world list. It stays hidden until the
// server has sent the whole list.
func NewWorldSelect(env *Env) *WorldSelect {
	p := &WorldSelect{env: env}
	dim := ui.Pt(420, 320)
	p.Init(p, env.centered(dim), dim)
	p.Sprites = append(p.Sprites,
		ui.Frame{Bounds: ui.RectAt(ui.Point{}, dim), Fill: ui.ColorPanelBg, Border: ui.ColorPanelBorder},
		ui.Label{Offset: ui.Pt(16, 10), Text: "Select a world", Color: ui.ColorHighlight},
	)
	p.Deactivate()
	return p
}

func (p *WorldSelect) Type() ui.PanelType { return ui.WorldSelect }

// AddWorld appends a world.
func (p *WorldSelect) AddWorld(w packets.World) {
	p.worlds = append(p.worlds, w)
}

// AddRecommendedWorld records a world the server recommends.
func (p *WorldSelect) AddRecommendedWorld(w packets.RecommendedWorld) {
	p.recommended = append(p.recommended, w)
}

// Worlds returns the worlds received so far.
func (p *WorldSelect) Worlds() []packets.World { return p.worlds }

// Recommended returns the recommended worlds.
func (p *WorldSelect) Recommended() []packets.RecommendedWorld { return p.recommended }

// DrawWorld shows the list once the server has sent it completely.
func (p *WorldSelect) DrawWorld() {
	p.shown = true
	p.world, p.channel = 0, 0
	p.layout()
	p.MakeActive()
	p.env.UI.Focus(ui.WorldSelect)
}

// Selected returns the selected world and channel indices.
func (p *WorldSelect) Selected() (world, channel int) { return p.world, p.channel }

// RemoveSelected hides the list after the character list has arrived.
func (p *WorldSelect) RemoveSelected() {
	p.shown = false
	p.Deactivate()
}

func (p *WorldSelect) layout() {
	p.Buttons = map[ui.ButtonID]*ui.Button{
		worldButtonEnter: ui.NewButton("Enter", ui.RectAt(ui.Pt(300, 280), ui.Pt(100, 24))),
		worldButtonBack:  ui.NewButton("Back", ui.RectAt(ui.Pt(190, 280), ui.Pt(100, 24))),
	}
	for i, w := range p.worlds {
		if i >= maxWorldButtons {
			break
		}
		p.Buttons[worldButtonWorld+ui.ButtonID(i)] = ui.NewButton(w.Name, ui.RectAt(ui.Pt(16, 36+i*26), ui.Pt(150, 22)))
	}
	if p.world < len(p.worlds) {
		for i, ch := range p.worlds[p.world].Channels {
			if i >= maxChannelButtons {
				break
			}
			label := fmt.Sprintf("%d", i+1)
			if ch.Name != "" {
				label = ch.Name
			}
			pos := ui.Pt(180+(i%3)*74, 36+(i/3)*26)
			p.Buttons[worldButtonChannel+ui.ButtonID(i)] = ui.NewButton(label, ui.RectAt(pos, ui.Pt(70, 22)))
		}
	}
	p.markSelection()
}

func (p *WorldSelect) markSelection() {
	for id, b := range p.Buttons {
		switch {
		case id >= worldButtonChannel:
			b.SetState(pressedIf(int(id-worldButtonChannel) == p.channel))
		case id >= worldButtonWorld:
			b.SetState(pressedIf(int(id-worldButtonWorld) == p.world))
		}
	}
}

func pressedIf(selected bool) ui.ButtonState {
	if selected {
		return ui.ButtonPressed
	}
	return ui.ButtonNormal
}

func (p *WorldSelect) Draw(c ui.Canvas, alpha float32) {
	p.Element.Draw(c, alpha)
	if !p.shown || p.world >= len(p.worlds) {
		return
	}

	w := p.worlds[p.world]
	origin := p.Position()
	c.DrawText(origin.Add(ui.Pt(180, 214)), humanize.Comma(w.Population())+" online", ui.ColorText.Fade(alpha))
	if w.Message != "" {
		c.DrawText(origin.Add(ui.Pt(180, 232)), w.Message, ui.ColorTextDim.Fade(alpha))
	}
	for i, rw := range p.recommended {
		c.DrawText(origin.Add(ui.Pt(16, 214+i*lineHeight)), rw.Message, ui.ColorEXP.Fade(alpha))
	}
}

// SelectWorld changes the selected world. Out of range indices are ignored.
func (p *WorldSelect) SelectWorld(i int) {
	if i < 0 || i >= len(p.worlds) || i == p.world {
		return
	}
	p.world, p.channel = i, 0
	p.layout()
}

// SelectChannel changes the selected channel.
func (p *WorldSelect) SelectChannel(i int) {
	if p.world >= len(p.worlds) || i < 0 || i >= len(p.worlds[p.world].Channels) {
		return
	}
	p.channel = i
	p.markSelection()
}

func (p *WorldSelect) SendKey(code ui.KeyCode, pressed bool) {
	if !pressed {
		return
	}
	switch code {
	case ui.KeyReturn:
		p.Enter()
	case ui.KeyEscape:
		p.back()
	case ui.KeyUp:
		p.SelectWorld(p.world - 1)
	case ui.KeyDown:
		p.SelectWorld(p.world + 1)
	case ui.KeyLeft:
		p.SelectChannel(p.channel - 1)
	case ui.KeyRight:
		p.SelectChannel(p.channel + 1)
	}
}

func (p *WorldSelect) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	switch {
	case id == worldButtonEnter:
		p.Enter()
		return ui.ButtonNormal
	case id == worldButtonBack:
		p.back()
		return ui.ButtonNormal
	case id >= worldButtonChannel:
		p.SelectChannel(int(id - worldButtonChannel))
	case id >= worldButtonWorld:
		p.SelectWorld(int(id - worldButtonWorld))
	}
	return ui.ButtonPressed
}

// Enter requests the character list of the selected channel.
func (p *WorldSelect) Enter() {
	if p.world >= len(p.worlds) {
		return
	}
	if wait := p.env.UI.Get(ui.LoginWait); wait != nil && wait.IsActive() {
		return
	}

	w := p.worlds[p.world]
	p.env.UI.Emplace(NewLoginWait(p.env, nil))
	if !p.env.sent("charlist", p.env.Session.RequestCharlist(w.ID, int8(p.channel))) {
		p.env.UI.Remove(ui.LoginWait)
		p.env.UI.Emplace(NewLoginNotice(p.env, MsgConnectionFailed, nil))
	}
}

// back returns to the login form.
func (p *WorldSelect) back() {
	env := p.env
	env.UI.Post(ui.CommandFunc(func(r *ui.Registry) {
		r.Remove(ui.WorldSelect)
		r.Emplace(NewLogin(env))
	}))
}
