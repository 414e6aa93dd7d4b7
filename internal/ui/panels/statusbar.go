package panels

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/Faultbox/midgard-ui/internal/network/packets"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

const (
	statusButtonMenu ui.ButtonID = iota
	statusButtonKeys
	statusButtonChat
	statusButtonQuit
)

const (
	statusHeight = 56
	gaugeWidth   = 160
	gaugeHeight  = 10
	menuWidth    = 90
	menuRowH     = 22
)

// StatusBar is the HUD strip along the bottom of the screen with the
// character gauges and the system menu.
type StatusBar struct {
	ui.Element

	env   *Env
	stats packets.CharStats
	// expNext is the experience needed for the next level. Zero leaves the
	// EXP gauge empty.
	expNext  int64
	menuOpen bool
}

// NewStatusBar creates the status bar for a character.
func NewStatusBar(env *Env, stats packets.CharStats) *StatusBar {
	p := &StatusBar{env: env, stats: stats}
	s := env.screen()
	dim := ui.Pt(s.X, statusHeight)
	p.Init(p, ui.Pt(0, s.Y-statusHeight), dim)

	p.Sprites = append(p.Sprites,
		ui.Frame{Bounds: ui.RectAt(ui.Point{}, dim), Fill: ui.ColorPanelBg, Border: ui.ColorPanelBorder},
	)

	p.Buttons[statusButtonMenu] = ui.NewButton("Menu", ui.RectAt(ui.Pt(dim.X-70, 16), ui.Pt(60, 24)))
	// The menu opens upwards, above the bar.
	entries := []struct {
		id   ui.ButtonID
		text string
	}{
		{statusButtonKeys, "Keys"},
		{statusButtonChat, "Chat"},
		{statusButtonQuit, "Quit"},
	}
	for i, e := range entries {
		b := ui.NewButton(e.text, p.menuRow(len(entries)-i))
		b.SetActive(false)
		p.Buttons[e.id] = b
	}
	return p
}

func (p *StatusBar) menuRow(fromBottom int) ui.Rect {
	x := p.Dimension().X - menuWidth - 10
	return ui.RectAt(ui.Pt(x, -fromBottom*menuRowH-2), ui.Pt(menuWidth, menuRowH-2))
}

func (p *StatusBar) menuBounds() ui.Rect {
	top := p.menuRow(3)
	bottom := p.menuRow(1)
	return ui.Rect{Min: top.Min, Max: bottom.Max}.Offset(p.Position())
}

func (p *StatusBar) Type() ui.PanelType { return ui.StatusBar }

// SetStats replaces the displayed character stats.
func (p *StatusBar) SetStats(stats packets.CharStats) { p.stats = stats }

// Stats returns the displayed character stats.
func (p *StatusBar) Stats() packets.CharStats { return p.stats }

// SetExpNext sets the experience required for the next level.
func (p *StatusBar) SetExpNext(n int64) { p.expNext = n }

// MenuOpen reports whether the system menu is shown.
func (p *StatusBar) MenuOpen() bool { return p.menuOpen }

// ToggleMenu opens or closes the system menu.
func (p *StatusBar) ToggleMenu() {
	p.menuOpen = !p.menuOpen
	for _, id := range []ui.ButtonID{statusButtonKeys, statusButtonChat, statusButtonQuit} {
		p.Buttons[id].SetActive(p.menuOpen)
	}
}

// IsInRange covers the bar and the menu while it is open.
func (p *StatusBar) IsInRange(pos ui.Point) bool {
	if p.menuOpen && p.menuBounds().Contains(pos) {
		return true
	}
	return p.Element.IsInRange(pos)
}

func (p *StatusBar) ButtonPressed(id ui.ButtonID) ui.ButtonState {
	switch id {
	case statusButtonMenu:
		p.ToggleMenu()
	case statusButtonKeys:
		p.ToggleMenu()
		env := p.env
		env.UI.Post(ui.CommandFunc(func(r *ui.Registry) {
			r.Toggle(ui.KeyConfig, func() ui.Panel { return NewKeyConfig(env) })
		}))
	case statusButtonChat:
		p.ToggleMenu()
		p.env.UI.Post(ui.CommandFunc(func(r *ui.Registry) {
			r.Toggle(ui.ChatBar, nil)
		}))
	case statusButtonQuit:
		p.ToggleMenu()
		p.env.UI.Emplace(NewYesNo(p.env, msgQuit, quitGame{env: p.env}))
	}
	return ui.ButtonNormal
}

func (p *StatusBar) Draw(c ui.Canvas, alpha float32) {
	origin := p.Position()
	if p.menuOpen {
		c.FillRect(p.menuBounds(), ui.ColorPanelBg.Fade(alpha))
	}
	p.Element.Draw(c, alpha)

	s := p.stats
	c.DrawText(origin.Add(ui.Pt(10, 8)), fmt.Sprintf("Lv. %d  %s", s.Level, s.Name), ui.ColorWhite.Fade(alpha))
	c.DrawText(origin.Add(ui.Pt(10, 28)), fmt.Sprintf("Job %d", s.Job), ui.ColorTextDim.Fade(alpha))

	x := 180
	p.gauge(c, origin.Add(ui.Pt(x, 8)), "HP", int64(s.HP), int64(s.MaxHP), ui.ColorHP, alpha)
	p.gauge(c, origin.Add(ui.Pt(x, 30)), "MP", int64(s.MP), int64(s.MaxMP), ui.ColorMP, alpha)

	x += gaugeWidth + 120
	exp := int64(s.EXP)
	p.gauge(c, origin.Add(ui.Pt(x, 8)), "EXP", exp, p.expNext, ui.ColorEXP, alpha)
	c.DrawText(origin.Add(ui.Pt(x+30, 28)), humanize.Comma(exp)+" exp", ui.ColorText.Fade(alpha))
}

// gauge draws a labelled bar filled by cur/total.
func (p *StatusBar) gauge(c ui.Canvas, at ui.Point, label string, cur, total int64, col ui.Color, alpha float32) {
	c.DrawText(at, label, ui.ColorText.Fade(alpha))
	bar := ui.RectAt(at.Add(ui.Pt(30, 2)), ui.Pt(gaugeWidth, gaugeHeight))
	c.FillRect(bar, ui.ColorInputBg.Fade(alpha))
	if w := fill(cur, total, gaugeWidth); w > 0 {
		c.FillRect(ui.RectAt(bar.Min, ui.Pt(w, gaugeHeight)), col.Fade(alpha))
	}
	c.StrokeRect(bar, ui.ColorPanelBorder.Fade(alpha))
	if label != "EXP" {
		text := humanize.Comma(cur) + " / " + humanize.Comma(total)
		c.DrawText(bar.Min.Add(ui.Pt(gaugeWidth+6, -2)), text, ui.ColorTextDim.Fade(alpha))
	}
}

// fill returns how many of width pixels cur/total covers.
func fill(cur, total int64, width int) int {
	if total <= 0 || cur <= 0 {
		return 0
	}
	if cur >= total {
		return width
	}
	return int(cur * int64(width) / total)
}
