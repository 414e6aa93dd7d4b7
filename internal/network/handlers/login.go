// Package handlers turns login server packets into UI changes. Packets are
// decoded on the network goroutine; everything that touches panels is
// posted to the registry and applied on the next UI tick.
package handlers

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ui/internal/logger"
	"github.com/Faultbox/midgard-ui/internal/network"
	"github.com/Faultbox/midgard-ui/internal/network/packets"
	"github.com/Faultbox/midgard-ui/internal/ui"
	"github.com/Faultbox/midgard-ui/internal/ui/panels"
)

// Registrar accepts packet handlers. *network.Client implements it.
type Registrar interface {
	RegisterHandler(opcode uint16, handler network.PacketHandler)
}

// TransferFunc moves the connection to a channel server and logs the
// character in.
type TransferFunc func(ctx context.Context, ip net.IP, port uint16, cid int32) error

// Login handles the packets of the login server.
type Login struct {
	env      *panels.Env
	transfer TransferFunc
	// enterGame runs on the UI tick once the channel server was reached.
	enterGame func(packets.CharEntry)
	timeout   time.Duration
	log       *zap.Logger
}

// NewLogin creates the login handlers. transfer and enterGame may be nil
// when the client never leaves the login screens.
func NewLogin(env *panels.Env, transfer TransferFunc, enterGame func(packets.CharEntry)) *Login {
	timeout := 10 * time.Second
	if env.Config != nil && env.Config.Network.ConnectTimeout > 0 {
		timeout = env.Config.Network.ConnectTimeout
	}
	return &Login{
		env:       env,
		transfer:  transfer,
		enterGame: enterGame,
		timeout:   timeout,
		log:       logger.Named("handlers"),
	}
}

// Register installs every handler on r.
func (h *Login) Register(r Registrar) {
	r.RegisterHandler(packets.LoginResult, h.LoginResult)
	r.RegisterHandler(packets.Serverlist, h.Serverlist)
	r.RegisterHandler(packets.RecommendedWorlds, h.RecommendedWorlds)
	r.RegisterHandler(packets.Charlist, h.Charlist)
	r.RegisterHandler(packets.CharnameResponse, h.CharnameResponse)
	r.RegisterHandler(packets.AddNewCharEntry, h.AddNewCharEntry)
	r.RegisterHandler(packets.DeleteCharResult, h.DeleteCharResult)
	r.RegisterHandler(packets.ServerIP, h.ServerIP)
	r.RegisterHandler(packets.ChatMessage, h.ChatMessage)
}

func (h *Login) post(fn func(r *ui.Registry)) {
	h.env.UI.Post(ui.CommandFunc(fn))
}

// activeWait returns the login wait panel if a request is pending.
func activeWait(r *ui.Registry) (*panels.LoginWait, bool) {
	wait, ok := ui.As[*panels.LoginWait](r, ui.LoginWait)
	if !ok || !wait.IsActive() {
		return nil, false
	}
	return wait, true
}

// LoginResult answers a login request. Reason zero carries the account.
func (h *Login) LoginResult(data []byte) error {
	p := packets.NewInPacket(data)
	reason := p.ReadInt32()
	if err := p.Err(); err != nil {
		return fmt.Errorf("login result: %w", err)
	}

	var account packets.Account
	if reason == 0 {
		a, err := packets.ParseAccount(p)
		if err != nil {
			return fmt.Errorf("login result: %w", err)
		}
		account = a
	}

	h.log.Info("login result", zap.Int32("reason", reason))
	h.post(func(r *ui.Registry) { h.loginResult(r, reason, account) })
	return nil
}

func (h *Login) loginResult(r *ui.Registry, reason int32, account packets.Account) {
	wait, ok := activeWait(r)
	if !ok {
		return
	}
	r.Remove(ui.LoginNotice)
	r.Remove(ui.LoginWait)
	intent := wait.Intent()

	notice := func(m panels.LoginMessage) {
		r.Emplace(panels.NewLoginNotice(h.env, m, intent))
	}

	switch {
	case reason == 0:
		h.loggedIn(account, intent)
	case reason == 2:
		notice(panels.MsgBlockedID)
	case reason == 7:
		notice(panels.MsgAlreadyLoggedIn)
	case reason == 13:
		notice(panels.MsgUnableToLoginWithIP)
	case reason == 23:
		// The account has to accept the terms of service first.
		r.Emplace(panels.NewLoginWait(h.env, intent))
		if err := h.env.Session.AcceptTOS(); err != nil {
			h.log.Warn("accepting terms of service", zap.Error(err))
		}
	case reason > 0:
		notice(panels.LoginMessage(reason - 1))
	default:
		// Nothing to show; give the form back.
		if intent != nil {
			r.Post(ui.Outcome{Intent: intent, Answer: ui.AnswerCancel})
		}
	}
}

func (h *Login) loggedIn(account packets.Account, intent ui.Intent) {
	if cfg := h.env.Config; cfg != nil && cfg.RememberAccount(account.Name) {
		if err := h.env.SaveConfig(); err != nil {
			h.log.Warn("saving default account", zap.Error(err))
		}
	}
	if err := h.env.Session.RequestServerList(); err != nil {
		h.log.Warn("requesting server list", zap.Error(err))
		h.env.UI.Emplace(panels.NewLoginNotice(h.env, panels.MsgConnectionFailed, intent))
	}
}

// Serverlist carries one or more worlds. A world with id -1 ends the list.
func (h *Login) Serverlist(data []byte) error {
	p := packets.NewInPacket(data)
	var worlds []packets.World
	done := false
	for p.Available() {
		w, err := packets.ParseWorld(p)
		if err != nil {
			return fmt.Errorf("serverlist: %w", err)
		}
		if w.ID == -1 {
			done = true
			break
		}
		worlds = append(worlds, w)
	}

	h.post(func(r *ui.Registry) {
		ws, ok := ui.As[*panels.WorldSelect](r, ui.WorldSelect)
		if !ok {
			ws = panels.NewWorldSelect(h.env)
			r.Emplace(ws)
			// Stays hidden until the list is complete.
			ws.Deactivate()
		}
		for _, w := range worlds {
			ws.AddWorld(w)
		}
		if done {
			r.Remove(ui.Login)
			ws.DrawWorld()
		}
	})
	return nil
}

// RecommendedWorlds lists worlds with a message from the server.
func (h *Login) RecommendedWorlds(data []byte) error {
	p := packets.NewInPacket(data)
	count := int(uint8(p.ReadInt8()))

	var worlds []packets.RecommendedWorld
	for i := 0; i < count; i++ {
		w, err := packets.ParseRecommendedWorld(p)
		if err != nil {
			return fmt.Errorf("recommended worlds: %w", err)
		}
		if w.ID != -1 && w.Message != "" {
			worlds = append(worlds, w)
		}
	}
	if err := p.Err(); err != nil {
		return fmt.Errorf("recommended worlds: %w", err)
	}

	h.post(func(r *ui.Registry) {
		if ws, ok := ui.As[*panels.WorldSelect](r, ui.WorldSelect); ok {
			for _, w := range worlds {
				ws.AddRecommendedWorld(w)
			}
		}
	})
	return nil
}

// Charlist carries the characters of the selected world.
func (h *Login) Charlist(data []byte) error {
	p := packets.NewInPacket(data)
	channel := p.ReadInt8()
	count := int(uint8(p.ReadInt8()))

	chars := make([]packets.CharEntry, 0, count)
	for i := 0; i < count; i++ {
		c, err := packets.ParseCharEntry(p)
		if err != nil {
			return fmt.Errorf("charlist: %w", err)
		}
		chars = append(chars, c)
	}
	pic := p.ReadInt8()
	slots := p.ReadInt32()
	if err := p.Err(); err != nil {
		return fmt.Errorf("charlist: %w", err)
	}

	h.log.Debug("character list", zap.Int8("channel", channel), zap.Int("characters", len(chars)), zap.Int32("slots", slots))
	h.post(func(r *ui.Registry) {
		if _, ok := activeWait(r); !ok {
			return
		}
		r.Remove(ui.LoginNotice)
		r.Remove(ui.LoginWait)
		if ws, ok := ui.As[*panels.WorldSelect](r, ui.WorldSelect); ok {
			ws.RemoveSelected()
		}
		r.Emplace(panels.NewCharSelect(h.env, chars, slots, pic))
	})
	return nil
}

// CharnameResponse tells whether a name is taken.
func (h *Login) CharnameResponse(data []byte) error {
	p := packets.NewInPacket(data)
	name := p.ReadString()
	used := p.ReadBool()
	if err := p.Err(); err != nil {
		return fmt.Errorf("charname response: %w", err)
	}

	h.log.Debug("name checked", zap.String("name", name), zap.Bool("used", used))
	h.post(func(r *ui.Registry) {
		if used {
			r.Emplace(panels.NewLoginNotice(h.env, panels.MsgNameInUse, nil))
		}
		if cc, ok := ui.As[*panels.CharCreation](r, ui.CharCreation); ok {
			cc.SendNamingResult(used)
		}
	})
	return nil
}

// AddNewCharEntry carries a character that was just created.
func (h *Login) AddNewCharEntry(data []byte) error {
	p := packets.NewInPacket(data)
	p.Skip(1)
	c, err := packets.ParseCharEntry(p)
	if err != nil {
		return fmt.Errorf("new character: %w", err)
	}

	h.post(func(r *ui.Registry) {
		if cs, ok := ui.As[*panels.CharSelect](r, ui.CharSelect); ok {
			cs.AddCharacter(c)
		}
	})
	return nil
}

// DeleteCharResult reports whether a character was deleted.
func (h *Login) DeleteCharResult(data []byte) error {
	p := packets.NewInPacket(data)
	cid := p.ReadInt32()
	state := uint8(p.ReadInt8())
	if err := p.Err(); err != nil {
		return fmt.Errorf("delete char result: %w", err)
	}

	h.post(func(r *ui.Registry) {
		if state == 0 {
			if cs, ok := ui.As[*panels.CharSelect](r, ui.CharSelect); ok {
				cs.RemoveCharacter(cid)
			}
			return
		}

		m := panels.MsgUnknownError
		switch state {
		case 10:
			m = panels.MsgBirthdayIncorrect
		case 20:
			m = panels.MsgIncorrectPIC
		}
		r.Emplace(panels.NewLoginNotice(h.env, m, nil))
	})
	return nil
}

// ServerIP hands the selected character over to a channel server. The
// transfer runs here, on the network goroutine.
func (h *Login) ServerIP(data []byte) error {
	p := packets.NewInPacket(data)
	p.Skip(2)
	ip := make(net.IP, net.IPv4len)
	for i := range ip {
		ip[i] = byte(p.ReadInt8())
	}
	port := uint16(p.ReadInt16())
	cid := p.ReadInt32()
	if err := p.Err(); err != nil {
		return fmt.Errorf("server ip: %w", err)
	}

	h.log.Info("transferring to channel server", zap.Stringer("ip", ip), zap.Uint16("port", port), zap.Int32("cid", cid))
	if h.transfer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()
		if err := h.transfer(ctx, ip, port, cid); err != nil {
			h.log.Warn("channel server transfer failed", zap.Error(err))
			h.post(func(r *ui.Registry) {
				r.Remove(ui.LoginWait)
				r.Emplace(panels.NewLoginNotice(h.env, panels.MsgConnectionFailed, nil))
			})
			return nil
		}
	}

	h.post(func(r *ui.Registry) {
		r.Remove(ui.LoginWait)
		entry := packets.CharEntry{ID: cid}
		if cs, ok := ui.As[*panels.CharSelect](r, ui.CharSelect); ok {
			for _, c := range cs.Characters() {
				if c.ID == cid {
					entry = c
				}
			}
		}
		if h.enterGame != nil {
			h.enterGame(entry)
		}
	})
	return nil
}

// ChatMessage relays a chat line to the chat bar.
func (h *Login) ChatMessage(data []byte) error {
	line, err := packets.ParseChatLine(packets.NewInPacket(data))
	if err != nil {
		return fmt.Errorf("chat message: %w", err)
	}
	h.post(func(r *ui.Registry) {
		if cb, ok := ui.As[*panels.ChatBar](r, ui.ChatBar); ok {
			cb.AddLine(line)
		}
	})
	return nil
}
