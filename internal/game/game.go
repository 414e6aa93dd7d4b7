// Package game ties the UI registry, the server connection and the UI states
// together. It owns no window: the caller feeds it input, calls Tick once
// per frame and draws it onto a canvas.
package game

import (
	"context"
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ui/internal/config"
	"github.com/Faultbox/midgard-ui/internal/game/keyboard"
	"github.com/Faultbox/midgard-ui/internal/game/states"
	"github.com/Faultbox/midgard-ui/internal/logger"
	"github.com/Faultbox/midgard-ui/internal/network"
	"github.com/Faultbox/midgard-ui/internal/network/handlers"
	"github.com/Faultbox/midgard-ui/internal/network/packets"
	"github.com/Faultbox/midgard-ui/internal/ui"
	"github.com/Faultbox/midgard-ui/internal/ui/panels"
)

// Options configure a Game.
type Options struct {
	Config *config.Config
	// ConfigPath is where the configuration is saved. Empty means the
	// default location.
	ConfigPath string
	// Client is the server connection. A new one is created when nil.
	Client *network.Client
}

// Game is the client instance.
type Game struct {
	cfg        *config.Config
	reg        *ui.Registry
	dispatcher *ui.Dispatcher
	client     *network.Client
	session    *network.Session
	keys       *keyboard.Keyboard
	states     *states.Manager
	env        *panels.Env

	ctx     context.Context
	running bool
	log     *zap.Logger
}

// New creates a game. Key bindings are loaded from the configured file; a
// missing file keeps the configured default layout.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	g := &Game{
		cfg:     cfg,
		reg:     ui.NewRegistry(),
		client:  opts.Client,
		keys:    keyboard.New(keyboard.ParseLayout(cfg.UI.KeyLayout)),
		ctx:     context.Background(),
		running: true,
		log:     logger.Named("game"),
	}
	if g.client == nil {
		g.client = network.New(cfg.Network.ConnectTimeout)
	}
	g.session = network.NewSession(g.client)
	g.dispatcher = ui.NewDispatcher(g.reg)
	g.states = states.NewManager(g.reg)

	if err := g.keys.Load(cfg.KeyBindingsPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	g.env = &panels.Env{
		UI:         g.reg,
		Session:    g.session,
		Keys:       g.keys,
		Config:     cfg,
		ConfigPath: opts.ConfigPath,
		Quit:       g.Quit,
	}

	handlers.NewLogin(g.env, g.session.Transfer, g.enterGame).Register(g.client)

	g.log.Info("game initialized",
		zap.String("server", cfg.Network.LoginServer),
		zap.String("key_layout", cfg.UI.KeyLayout),
	)
	return g, nil
}

// Start shows the login screen and connects to the login server in the
// background. A failed connection is reported on screen, not returned.
func (g *Game) Start(ctx context.Context) error {
	g.ctx = ctx
	g.states.Change(states.NewLoginState(g.env))
	// The login state is entered now so the connection result cannot be
	// cleared by the state change.
	if err := g.states.Update(0); err != nil {
		return err
	}
	go g.connect()
	return nil
}

func (g *Game) connect() {
	addr := g.cfg.Network.LoginServer
	if err := g.client.Connect(g.ctx, addr); err != nil {
		g.log.Warn("login server unreachable", zap.String("addr", addr), zap.Error(err))
		g.reg.Post(ui.CommandFunc(func(r *ui.Registry) {
			r.Emplace(panels.NewLoginNotice(g.env, panels.MsgConnectionFailed, panels.ReenableLogin()))
		}))
	}
}

// enterGame runs on the tick once the channel server accepted the character.
func (g *Game) enterGame(char packets.CharEntry) {
	g.states.Change(states.NewGameState(g.env, char))
}

// backToLogin is the continuation of the disconnect notice.
type backToLogin struct {
	g *Game
}

func (b backToLogin) Resolve(_ *ui.Registry, _ ui.Outcome) {
	b.g.states.Change(states.NewLoginState(b.g.env))
	go b.g.connect()
}

// Tick applies queued UI commands, reacts to a lost connection, switches
// state when one is pending and updates every active panel.
func (g *Game) Tick(dt float64) error {
	g.reg.Drain()

	select {
	case err := <-g.client.Errors():
		g.log.Warn("disconnected", zap.Error(err))
		g.client.Disconnect()
		g.reg.Emplace(panels.NewLoginNotice(g.env, panels.MsgConnectionFailed, backToLogin{g}))
	default:
	}

	if err := g.states.Update(dt); err != nil {
		return err
	}
	g.reg.Update()
	return nil
}

// Draw renders every active panel.
func (g *Game) Draw(c ui.Canvas, alpha float32) {
	g.reg.Draw(c, alpha)
}

// SendCursor forwards a pointer event.
func (g *Game) SendCursor(clicked bool, pos ui.Point) ui.CursorState {
	return g.dispatcher.SendCursor(clicked, pos)
}

// SendKey forwards a key event. Menu keys go to the modal or focused panel.
// When no panel holds the keyboard, a pressed key runs the action bound to
// it.
func (g *Game) SendKey(k keyboard.Key, pressed bool) {
	if code, ok := keyboard.MenuCode(k); ok && g.dispatcher.SendKey(code, pressed) {
		return
	}
	if !pressed || g.holdsKeyboard() {
		return
	}
	if _, ingame := g.states.Current().(*states.GameState); !ingame {
		return
	}

	if k == keyboard.Return {
		if chat, ok := ui.As[*panels.ChatBar](g.reg, ui.ChatBar); ok && chat.IsActive() {
			chat.OpenInput()
		}
		return
	}

	m := g.keys.Mapping(k)
	if m.Type != keyboard.TypeMenu {
		return
	}
	switch m.Action {
	case keyboard.KeyBindings:
		g.reg.Toggle(ui.KeyConfig, func() ui.Panel { return panels.NewKeyConfig(g.env) })
	case keyboard.MiniMap:
		g.reg.Toggle(ui.MiniMap, func() ui.Panel { return panels.NewMiniMap(g.env) })
	case keyboard.ToggleChat:
		g.reg.Toggle(ui.ChatBar, func() ui.Panel { return panels.NewChatBar(g.env) })
	case keyboard.Menu, keyboard.MainMenu:
		if sb, ok := ui.As[*panels.StatusBar](g.reg, ui.StatusBar); ok {
			sb.ToggleMenu()
		}
	default:
		g.log.Debug("unhandled action", zap.Stringer("key", k), zap.Stringer("action", m.Action))
	}
}

func (g *Game) holdsKeyboard() bool {
	return g.reg.Modal() != nil || g.reg.Focused() != ui.None
}

// SendText forwards typed text.
func (g *Game) SendText(text string) {
	g.dispatcher.SendText(text)
}

// SendScroll forwards a wheel event.
func (g *Game) SendScroll(offset float64) {
	g.dispatcher.SendScroll(offset)
}

// DoubleClick forwards a double click.
func (g *Game) DoubleClick(pos ui.Point) {
	g.dispatcher.DoubleClick(pos)
}

// RightClick forwards a right click.
func (g *Game) RightClick(pos ui.Point) {
	g.dispatcher.RightClick(pos)
}

// Registry returns the panel registry.
func (g *Game) Registry() *ui.Registry { return g.reg }

// State returns the current UI state.
func (g *Game) State() states.State { return g.states.Current() }

// Keys returns the key bindings.
func (g *Game) Keys() *keyboard.Keyboard { return g.keys }

// Running reports whether the game should keep going.
func (g *Game) Running() bool { return g.running }

// Quit stops the game after the current frame.
func (g *Game) Quit() {
	g.log.Info("quit requested")
	g.running = false
}

// Close drops the server connection.
func (g *Game) Close() {
	g.log.Info("closing game")
	g.client.Disconnect()
}
