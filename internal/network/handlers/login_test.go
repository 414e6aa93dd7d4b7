package handlers

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-ui/internal/config"
	"github.com/Faultbox/midgard-ui/internal/game/keyboard"
	"github.com/Faultbox/midgard-ui/internal/network"
	"github.com/Faultbox/midgard-ui/internal/network/packets"
	"github.com/Faultbox/midgard-ui/internal/ui"
	"github.com/Faultbox/midgard-ui/internal/ui/panels"
)

type fakeSession struct {
	err       error
	tos       int
	serverReq int
	logins    int
}

func (s *fakeSession) Login(string, string) error      { s.logins++; return s.err }
func (s *fakeSession) AcceptTOS() error                 { s.tos++; return s.err }
func (s *fakeSession) RequestServerList() error         { s.serverReq++; return s.err }
func (s *fakeSession) RequestCharlist(int8, int8) error { return s.err }
func (s *fakeSession) SelectChar(int32) error           { return s.err }
func (s *fakeSession) CheckName(string) error           { return s.err }
func (s *fakeSession) CreateChar(string, int32, bool) error {
	return s.err
}
func (s *fakeSession) DeleteChar(string, int32) error { return s.err }
func (s *fakeSession) Chat(string) error              { return s.err }

func newEnv(t *testing.T) (*panels.Env, *fakeSession) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.UI.KeyBindings = filepath.Join(dir, "keys.yaml")
	s := &fakeSession{}
	return &panels.Env{
		UI:         ui.NewRegistry(),
		Session:    s,
		Keys:       keyboard.New(keyboard.LayoutBasic),
		Config:     cfg,
		ConfigPath: filepath.Join(dir, "config.yaml"),
	}, s
}

// loggingIn puts the registry in the state of a submitted login form.
func loggingIn(t *testing.T, env *panels.Env) *panels.Login {
	t.Helper()
	login := panels.NewLogin(env)
	env.UI.Emplace(login)
	login.Account().SetText("alice")
	login.Password().SetText("secret")
	login.Submit()
	require.NotNil(t, env.UI.Get(ui.LoginWait))
	return login
}

func body(p *packets.OutPacket) []byte {
	return p.Bytes()[2:]
}

func loginResult(reason int32) []byte {
	return body(packets.NewOutPacket(packets.LoginResult).WriteInt32(reason))
}

func writeCharEntry(out *packets.OutPacket, id int32, name string) {
	out.WriteInt32(id)
	padded := make([]byte, 13)
	copy(padded, name)
	for _, b := range padded {
		out.WriteInt8(int8(b))
	}
	out.WriteBool(false).WriteInt8(10).WriteInt16(0).
		WriteInt16(4).WriteInt16(4).WriteInt16(4).WriteInt16(4).
		WriteInt16(50).WriteInt16(50).WriteInt16(5).WriteInt16(5).
		WriteInt16(0).WriteInt16(0).
		WriteInt32(0).WriteInt16(0).WriteInt32(0).WriteInt8(0)
}

func TestLoginResultSuccess(t *testing.T) {
	env, s := newEnv(t)
	env.Config.UI.SaveLogin = true
	loggingIn(t, env)
	h := NewLogin(env, nil, nil)

	data := body(packets.NewOutPacket(packets.LoginResult).
		WriteInt32(0).
		WriteInt32(77).WriteBool(false).WriteBool(false).
		WriteString("alice").WriteBool(false).WriteInt8(0))
	require.NoError(t, h.LoginResult(data))

	// Nothing happens before the UI tick.
	assert.NotNil(t, env.UI.Get(ui.LoginWait))
	assert.Zero(t, s.serverReq)

	env.UI.Drain()
	assert.Nil(t, env.UI.Get(ui.LoginWait))
	assert.Nil(t, env.UI.Get(ui.LoginNotice))
	assert.Equal(t, 1, s.serverReq)
	assert.Equal(t, "alice", env.Config.UI.DefaultAccount)
	assert.FileExists(t, env.ConfigPath)
}

func TestLoginResultReasons(t *testing.T) {
	tests := []struct {
		reason int32
		want   panels.LoginMessage
	}{
		{2, panels.MsgBlockedID},
		{7, panels.MsgAlreadyLoggedIn},
		{13, panels.MsgUnableToLoginWithIP},
		{4, panels.MsgIncorrectPassword},
		{99, panels.LoginMessage(98)},
	}
	for _, tt := range tests {
		t.Run(tt.want.Text(), func(t *testing.T) {
			env, s := newEnv(t)
			login := loggingIn(t, env)
			h := NewLogin(env, nil, nil)

			require.NoError(t, h.LoginResult(loginResult(tt.reason)))
			env.UI.Drain()

			assert.Nil(t, env.UI.Get(ui.LoginWait))
			n, ok := ui.As[*panels.LoginNotice](env.UI, ui.LoginNotice)
			require.True(t, ok)
			assert.Equal(t, tt.want, n.Message())
			assert.Zero(t, s.serverReq)

			// The notice carries the wait's intent, which gives the form back.
			n.SendKey(ui.KeyReturn, true)
			env.UI.Drain()
			assert.Equal(t, ui.FieldFocused, login.Password().State())
		})
	}
}

func TestLoginResultNegativeReasonReenablesForm(t *testing.T) {
	env, s := newEnv(t)
	login := loggingIn(t, env)
	h := NewLogin(env, nil, nil)

	require.NoError(t, h.LoginResult(loginResult(-1)))
	env.UI.Drain() // applies the result, posts the outcome
	env.UI.Drain() // resolves the outcome

	assert.Nil(t, env.UI.Get(ui.LoginWait))
	assert.Nil(t, env.UI.Get(ui.LoginNotice))
	assert.Zero(t, s.serverReq)
	assert.Equal(t, ui.FieldFocused, login.Password().State())
}

func TestLoginResultTermsOfService(t *testing.T) {
	env, s := newEnv(t)
	loggingIn(t, env)
	first := env.UI.Get(ui.LoginWait)
	h := NewLogin(env, nil, nil)

	require.NoError(t, h.LoginResult(loginResult(23)))
	env.UI.Drain()

	wait, ok := ui.As[*panels.LoginWait](env.UI, ui.LoginWait)
	require.True(t, ok)
	assert.NotSame(t, first, wait)
	assert.True(t, wait.IsActive())
	assert.NotNil(t, wait.Intent())
	assert.Nil(t, env.UI.Get(ui.LoginNotice))
	assert.Equal(t, 1, s.tos)
}

func TestLoginResultWithoutWaitIgnored(t *testing.T) {
	env, s := newEnv(t)
	env.UI.Emplace(panels.NewLogin(env))
	h := NewLogin(env, nil, nil)

	require.NoError(t, h.LoginResult(loginResult(7)))
	env.UI.Drain()

	assert.Nil(t, env.UI.Get(ui.LoginNotice))
	assert.Zero(t, s.serverReq)
}

func TestLoginResultMalformed(t *testing.T) {
	env, _ := newEnv(t)
	h := NewLogin(env, nil, nil)

	err := h.LoginResult([]byte{1})
	require.ErrorIs(t, err, packets.ErrShortPacket)

	err = h.LoginResult(loginResult(0))
	require.ErrorIs(t, err, packets.ErrShortPacket)
	assert.Zero(t, env.UI.Drain())
}

func worldPacket(id int8, name string, channels ...string) []byte {
	out := packets.NewOutPacket(packets.Serverlist).WriteInt8(id)
	if id == -1 {
		return body(out)
	}
	out.WriteString(name).WriteInt8(0).WriteString("").Skip(5).WriteInt8(int8(len(channels)))
	for _, ch := range channels {
		out.WriteString(ch).WriteInt32(10).Skip(3)
	}
	return body(out.Skip(2))
}

func TestServerlist(t *testing.T) {
	env, _ := newEnv(t)
	env.UI.Emplace(panels.NewLogin(env))
	h := NewLogin(env, nil, nil)

	require.NoError(t, h.Serverlist(worldPacket(0, "Scania", "Scania-1", "Scania-2")))
	env.UI.Drain()
	ws, ok := ui.As[*panels.WorldSelect](env.UI, ui.WorldSelect)
	require.True(t, ok)
	assert.False(t, ws.IsActive())
	assert.NotNil(t, env.UI.Get(ui.Login))

	require.NoError(t, h.RecommendedWorlds(body(packets.NewOutPacket(packets.RecommendedWorlds).
		WriteInt8(3).
		WriteInt32(0).WriteString("Try Scania").
		WriteInt32(-1).WriteString("ignored").
		WriteInt32(1).WriteString(""))))
	require.NoError(t, h.Serverlist(worldPacket(-1, "")))
	env.UI.Drain()

	assert.Nil(t, env.UI.Get(ui.Login))
	assert.True(t, ws.IsActive())
	assert.Equal(t, ui.WorldSelect, env.UI.Focused())
	require.Len(t, ws.Worlds(), 1)
	assert.Len(t, ws.Worlds()[0].Channels, 2)
	require.Len(t, ws.Recommended(), 1)
	assert.Equal(t, "Try Scania", ws.Recommended()[0].Message)
}

func charlistPacket() []byte {
	out := packets.NewOutPacket(packets.Charlist).WriteInt8(1).WriteInt8(2)
	writeCharEntry(out, 10, "Rook")
	writeCharEntry(out, 11, "Wren")
	return body(out.WriteInt8(0).WriteInt32(6))
}

func TestCharlist(t *testing.T) {
	env, _ := newEnv(t)
	ws := panels.NewWorldSelect(env)
	env.UI.Emplace(ws)
	ws.AddWorld(packets.World{Name: "Scania", Channels: []packets.Channel{{Name: "1"}}})
	ws.DrawWorld()
	ws.Enter()
	h := NewLogin(env, nil, nil)

	require.NoError(t, h.Charlist(charlistPacket()))
	env.UI.Drain()

	assert.Nil(t, env.UI.Get(ui.LoginWait))
	assert.False(t, ws.IsActive())
	cs, ok := ui.As[*panels.CharSelect](env.UI, ui.CharSelect)
	require.True(t, ok)
	require.Len(t, cs.Characters(), 2)
	assert.Equal(t, "Wren", cs.Characters()[1].Stats.Name)
	assert.Equal(t, ui.CharSelect, env.UI.Focused())
}

func TestCharlistWithoutWaitIgnored(t *testing.T) {
	env, _ := newEnv(t)
	h := NewLogin(env, nil, nil)

	require.NoError(t, h.Charlist(charlistPacket()))
	env.UI.Drain()

	assert.Nil(t, env.UI.Get(ui.CharSelect))
}

func TestCharnameResponse(t *testing.T) {
	env, _ := newEnv(t)
	cc := panels.NewCharCreation(env)
	env.UI.Emplace(cc)
	h := NewLogin(env, nil, nil)

	require.NoError(t, h.CharnameResponse(body(packets.NewOutPacket(packets.CharnameResponse).WriteString("Borin").WriteBool(true))))
	env.UI.Drain()
	n, ok := ui.As[*panels.LoginNotice](env.UI, ui.LoginNotice)
	require.True(t, ok)
	assert.Equal(t, panels.MsgNameInUse, n.Message())
	assert.False(t, cc.Named())

	require.NoError(t, h.CharnameResponse(body(packets.NewOutPacket(packets.CharnameResponse).WriteString("Borin").WriteBool(false))))
	env.UI.Drain()
	assert.True(t, cc.Named())
}

func TestAddAndDeleteCharacter(t *testing.T) {
	env, _ := newEnv(t)
	cs := panels.NewCharSelect(env, nil, 6, 0)
	env.UI.Emplace(cs)
	h := NewLogin(env, nil, nil)

	out := packets.NewOutPacket(packets.AddNewCharEntry).WriteInt8(0)
	writeCharEntry(out, 12, "Moss")
	require.NoError(t, h.AddNewCharEntry(body(out)))
	env.UI.Drain()
	require.Len(t, cs.Characters(), 1)

	require.NoError(t, h.DeleteCharResult(body(packets.NewOutPacket(packets.DeleteCharResult).WriteInt32(12).WriteInt8(20))))
	env.UI.Drain()
	n, ok := ui.As[*panels.LoginNotice](env.UI, ui.LoginNotice)
	require.True(t, ok)
	assert.Equal(t, panels.MsgIncorrectPIC, n.Message())
	assert.Len(t, cs.Characters(), 1)

	require.NoError(t, h.DeleteCharResult(body(packets.NewOutPacket(packets.DeleteCharResult).WriteInt32(12).WriteInt8(0))))
	env.UI.Drain()
	assert.Empty(t, cs.Characters())
}

func TestDeleteCharResultMessages(t *testing.T) {
	tests := map[int8]panels.LoginMessage{
		10: panels.MsgBirthdayIncorrect,
		20: panels.MsgIncorrectPIC,
		3:  panels.MsgUnknownError,
	}
	for state, want := range tests {
		env, _ := newEnv(t)
		h := NewLogin(env, nil, nil)
		require.NoError(t, h.DeleteCharResult(body(packets.NewOutPacket(packets.DeleteCharResult).WriteInt32(1).WriteInt8(state))))
		env.UI.Drain()
		n, ok := ui.As[*panels.LoginNotice](env.UI, ui.LoginNotice)
		require.True(t, ok)
		assert.Equal(t, want, n.Message(), "state %d", state)
	}
}

func serverIPPacket(cid int32) []byte {
	return body(packets.NewOutPacket(packets.ServerIP).
		Skip(2).
		WriteInt8(127).WriteInt8(0).WriteInt8(0).WriteInt8(1).
		WriteInt16(7575).
		WriteInt32(cid))
}

func TestServerIPTransfers(t *testing.T) {
	env, _ := newEnv(t)
	cs := panels.NewCharSelect(env, nil, 6, 0)
	env.UI.Emplace(cs)
	cs.AddCharacter(packets.CharEntry{ID: 10, Stats: packets.CharStats{Name: "Rook", Level: 30}})
	cs.Start()

	var gotAddr string
	var gotCID int32
	transfer := func(_ context.Context, ip net.IP, port uint16, cid int32) error {
		gotAddr = net.JoinHostPort(ip.String(), "7575")
		assert.Equal(t, uint16(7575), port)
		gotCID = cid
		return nil
	}
	var entered []packets.CharEntry
	h := NewLogin(env, transfer, func(c packets.CharEntry) { entered = append(entered, c) })

	require.NoError(t, h.ServerIP(serverIPPacket(10)))
	assert.Equal(t, "127.0.0.1:7575", gotAddr)
	assert.Equal(t, int32(10), gotCID)
	assert.Empty(t, entered)

	env.UI.Drain()
	require.Len(t, entered, 1)
	assert.Equal(t, "Rook", entered[0].Stats.Name)
	assert.Nil(t, env.UI.Get(ui.LoginWait))
}

func TestServerIPTransferFailure(t *testing.T) {
	env, _ := newEnv(t)
	transfer := func(context.Context, net.IP, uint16, int32) error {
		return errors.New("connection refused")
	}
	entered := 0
	h := NewLogin(env, transfer, func(packets.CharEntry) { entered++ })

	require.NoError(t, h.ServerIP(serverIPPacket(10)))
	env.UI.Drain()

	assert.Zero(t, entered)
	n, ok := ui.As[*panels.LoginNotice](env.UI, ui.LoginNotice)
	require.True(t, ok)
	assert.Equal(t, panels.MsgConnectionFailed, n.Message())
}

func TestChatMessage(t *testing.T) {
	env, _ := newEnv(t)
	cb := panels.NewChatBar(env)
	env.UI.Emplace(cb)
	h := NewLogin(env, nil, nil)

	require.NoError(t, h.ChatMessage(body(packets.NewOutPacket(packets.ChatMessage).WriteInt32(3).WriteBool(true).WriteString("Server restart in 5 minutes"))))
	env.UI.Drain()

	require.Len(t, cb.Messages(), 1)
	assert.Equal(t, panels.ChatAnnounce, cb.Messages()[0].Channel)
}

type registrar map[uint16]network.PacketHandler

func (r registrar) RegisterHandler(opcode uint16, h network.PacketHandler) { r[opcode] = h }

func TestRegister(t *testing.T) {
	env, _ := newEnv(t)
	r := registrar{}
	NewLogin(env, nil, nil).Register(r)

	for _, op := range []uint16{
		packets.LoginResult, packets.Serverlist, packets.RecommendedWorlds, packets.Charlist,
		packets.CharnameResponse, packets.AddNewCharEntry, packets.DeleteCharResult,
		packets.ServerIP, packets.ChatMessage,
	} {
		assert.Contains(t, r, op)
	}
}
