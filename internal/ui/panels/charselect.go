package panels

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/Faultbox/midgard-ui/internal/network/packets"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

const (
	charButtonSelect ui.ButtonID = iota
	charButtonNew
	charButtonDelete
	charButtonBack
	// charButtonSlot + i selects character i.
	charButtonSlot ui.ButtonID = 100
)

// CharSelect lists the characters of the account.
type CharSelect struct {
	ui.Element

	env        *Env
	characters []packets.CharEntry
	slots      int
	pic        int8
	selected   int
}

// NewCharSelect creates the character list.
func NewCharSelect(env *Env, characters []packets.CharEntry, slots int32, pic int8) *CharSelect {
	p := &CharSelect{env: env, characters: characters, slots: int(slots), pic: pic}
	dim := ui.Pt(480, 340)
	p.Init(p, env.centered(dim), dim)
	p.Sprites = append(p.Sprites,
		ui.Frame{Bounds: ui.RectAt(ui.Point{}, dim), Fill: ui.ColorPanelBg, Border: ui.ColorPanelBorder},
		ui.Label{Offset: ui.Pt(16, 10), Text: "Select a character", Color: ui.ColorHighlight},
	)
	p.layout()
	return p
}

func (p *CharSelect) Type() ui.PanelType { return ui.CharSelect }

// Characters returns the listed characters.
func (p *CharSelect) Characters() []packets.CharEntry { return p.characters }

// AddCharacter appends a newly created character.
func (p *CharSelect) AddCharacter(c packets.CharEntry) {
	p.characters = append(p.characters, c)
	p.selected = len(p.characters) - 1
	p.layout()
}

// RemoveCharacter drops the character with id cid.
func (p *CharSelect) RemoveCharacter(cid int32) {
	for i, c := range p.characters {
		if c.ID == cid {
			p.characters = append(p.characters[:i], p.characters[i+1:]...)
			break
		}
	}
	if p.selected >= len(p.characters) {
		p.selected = max(len(p.characters)-1, 0)
	}
	p.layout()
}

// Selected returns the selected character, if any.
func (p *CharSelect) Selected() (packets.CharEntry, bool) {
	if p.selected < len(p.characters) {
		return p.characters[p.selected], true
	}
	return packets.CharEntry{}, false
}

func (p *CharSelect) layout() {
	p.Buttons = map[ui.ButtonID]*ui.Button{
		charButtonSelect: ui.NewButton("Start", ui.RectAt(ui.Pt(360, 300), ui.Pt(100, 24))),
		charButtonNew:    ui.NewButton("New", ui.RectAt(ui.Pt(250, 300), ui.Pt(100, 24))),
		charButtonDelete: ui.NewButton("Delete", ui.RectAt(ui.Pt(140, 300), ui.Pt(100, 24))),
		charButtonBack:   ui.NewButton("Back", ui.RectAt(ui.Pt(16, 300), ui.Pt(100, 24))),
	}
	for i, c := range p.characters {
		b := ui.NewButton(c.Stats.Name, ui.RectAt(ui.Pt(16+(i%4)*112, 40+(i/4)*60), ui.Pt(104, 52)))
		b.SetState(pressedIf(i == p.selected))
		p.Buttons[charButtonSlot+ui.ButtonID(i)] = b
	}

	empty := len(p.characters) == 0
	p.Buttons[charButtonSelect].SetActive(!empty)
	p.Buttons[charButtonDelete].SetActive(!empty)
	p.Buttons[charButtonNew].SetActive(len(p.characters) < p.slots)
}

func (p *CharSelect) Draw(c ui.Canvas, alpha float32) {
	p.Element.Draw(c, alpha)
	c.DrawText(p.Position().Add(ui.Pt(300, 10)), fmt.Sprintf("Slots %d/%d", len(p.characters), p.slots), ui.ColorTextDim.Fade(alpha))

	ch, ok := p.Selected()
	if !ok {
		return
	}
	s := ch.Stats
	origin := p.Position().Add(ui.Pt(16, 230))
	c.DrawText(origin, fmt.Sprintf("%s  Lv. %d  Job %d", s.Name, s.Level, s.Job), ui.ColorWhite.Fade(alpha))
	c.DrawText(origin.Add(ui.Pt(0, lineHeight)), "EXP "+humanize.Comma(int64(s.EXP))+"  Fame "+humanize.Comma(int64(s.Fame)), ui.ColorText.Fade(alpha))
	c.DrawText(origin.Add(ui.Pt(0, 2*lineHeight)), fmt.Sprintf("STR %d  DEX %d  INT %d  LUK %d", s.Str, s.Dex, s.Int, s.Luk), ui.ColorText.Fade(alpha))
}

func (p *CharSelect) SendKey(code ui.KeyCode, pressed bool) {
	if !pressed {
		return
	}
	switch code {
	case ui.KeyReturn:
		p.Start()
	case ui.KeyLeft:
		p.selectChar(p.selected - 1)
	case ui.KeyRight:
		p.selectChar(p.selected + 1)
	}
}

func (p *CharSelect) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	switch {
	case id == charButtonSelect:
		p.Start()
	case id == charButtonNew:
		p.env.UI.Emplace(NewCharCreation(p.env))
		p.Deactivate()
	case id == charButtonDelete:
		if c, ok := p.Selected(); ok {
			msg := fmt.Sprintf("Are you sure you want to delete %s?", c.Stats.Name)
			p.env.UI.Emplace(NewLoginNoticeConfirm(p.env, msg, deleteCharacter{CharID: c.ID}))
		}
	case id == charButtonBack:
		env := p.env
		env.UI.Post(ui.CommandFunc(func(r *ui.Registry) {
			r.Remove(ui.CharSelect)
			if ws, ok := ui.As[*WorldSelect](r, ui.WorldSelect); ok {
				ws.DrawWorld()
			}
		}))
	case id >= charButtonSlot:
		p.selectChar(int(id - charButtonSlot))
		return ui.ButtonPressed
	}
	return ui.ButtonNormal
}

func (p *CharSelect) selectChar(i int) {
	if i < 0 || i >= len(p.characters) {
		return
	}
	p.selected = i
	for id, b := range p.Buttons {
		if id >= charButtonSlot {
			b.SetState(pressedIf(int(id-charButtonSlot) == i))
		}
	}
}

// Start logs in with the selected character.
func (p *CharSelect) Start() {
	c, ok := p.Selected()
	if !ok {
		return
	}
	if wait := p.env.UI.Get(ui.LoginWait); wait != nil && wait.IsActive() {
		return
	}
	p.env.UI.Emplace(NewLoginWait(p.env, nil))
	if !p.env.sent("select char", p.env.Session.SelectChar(c.ID)) {
		p.env.UI.Remove(ui.LoginWait)
		p.env.UI.Emplace(NewLoginNotice(p.env, MsgConnectionFailed, nil))
	}
}

func (p *CharSelect) deleteChar(cid int32) {
	p.env.sent("delete char", p.env.Session.DeleteChar("", cid))
}

// deleteCharacter deletes a character once the user confirms.
type deleteCharacter struct {
	CharID int32
}

func (d deleteCharacter) Resolve(r *ui.Registry, o ui.Outcome) {
	if !o.Confirmed() {
		return
	}
	if p, ok := ui.As[*CharSelect](r, ui.CharSelect); ok {
		p.deleteChar(d.CharID)
	}
}

// PIC returns the secondary password mode sent with the list.
func (p *CharSelect) PIC() int8 { return p.pic }
