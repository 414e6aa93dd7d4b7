// Package panels holds the concrete windows of the client: the login flow,
// notices, the key configuration screen and the in-game HUD.
package panels

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ui/internal/config"
	"github.com/Faultbox/midgard-ui/internal/game/keyboard"
	"github.com/Faultbox/midgard-ui/internal/logger"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

// Session is the outbound side of the server connection.
type Session interface {
	Login(account, password string) error
	AcceptTOS() error
	RequestServerList() error
	RequestCharlist(world, channel int8) error
	SelectChar(cid int32) error
	CheckName(name string) error
	CreateChar(name string, job int32, female bool) error
	DeleteChar(pic string, cid int32) error
	Chat(text string) error
}

// Env is what panels need from the rest of the client. Panels only touch
// it from the UI tick.
type Env struct {
	UI      *ui.Registry
	Session Session
	Keys    *keyboard.Keyboard
	Config  *config.Config
	// ConfigPath is where Config is saved. Empty means the default location.
	ConfigPath string
	// Now defaults to time.Now.
	Now func() time.Time
	// Quit asks the client to exit.
	Quit func()

	log *zap.Logger
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) logger() *zap.Logger {
	if e.log == nil {
		e.log = logger.Named("panels")
	}
	return e.log
}

// SaveConfig writes the configuration back to disk.
func (e *Env) SaveConfig() error {
	if e.ConfigPath != "" {
		return e.Config.SaveTo(e.ConfigPath)
	}
	return e.Config.Save()
}

func (e *Env) screen() ui.Point {
	if e.Config == nil {
		return ui.Pt(800, 600)
	}
	return ui.Pt(e.Config.Graphics.Width, e.Config.Graphics.Height)
}

// centered returns the position that centers a panel of size dim.
func (e *Env) centered(dim ui.Point) ui.Point {
	s := e.screen()
	return ui.Pt((s.X-dim.X)/2, (s.Y-dim.Y)/2)
}

// sent logs a failed request. The UI keeps going; a broken connection is
// reported separately by the network layer.
func (e *Env) sent(what string, err error) bool {
	if err != nil {
		e.logger().Warn("request failed", zap.String("request", what), zap.Error(err))
		return false
	}
	return true
}

// Text metrics of the bitmap font used by the renderer.
const (
	charWidth  = 7
	lineHeight = 14
)

// wrap breaks text into lines of at most width pixels.
func wrap(text string, width int) []string {
	limit := width / charWidth
	if limit < 1 {
		limit = 1
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= limit:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// textLines is a sprite drawing wrapped text.
type textLines struct {
	Offset ui.Point
	Lines  []string
	Color  ui.Color
	// Center aligns each line within Width.
	Center bool
	Width  int
}

func (t textLines) Draw(c ui.Canvas, origin ui.Point, alpha float32) {
	for i, line := range t.Lines {
		pos := origin.Add(t.Offset).Add(ui.Pt(0, i*lineHeight))
		if t.Center {
			pos.X += (t.Width - c.MeasureText(line).X) / 2
		}
		c.DrawText(pos, line, t.Color.Fade(alpha))
	}
}
