package panels

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-ui/internal/config"
	"github.com/Faultbox/midgard-ui/internal/game/keyboard"
	"github.com/Faultbox/midgard-ui/internal/network/packets"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

// fakeSession records outbound requests.
type fakeSession struct {
	err error

	logins    [][2]string
	tos       int
	serverReq int
	charlists [][2]int8
	selected  []int32
	checked   []string
	created   []string
	deleted   []int32
	chats     []string
}

func (s *fakeSession) Login(account, password string) error {
	s.logins = append(s.logins, [2]string{account, password})
	return s.err
}

func (s *fakeSession) AcceptTOS() error {
	s.tos++
	return s.err
}

func (s *fakeSession) RequestServerList() error {
	s.serverReq++
	return s.err
}

func (s *fakeSession) RequestCharlist(world, channel int8) error {
	s.charlists = append(s.charlists, [2]int8{world, channel})
	return s.err
}

func (s *fakeSession) SelectChar(cid int32) error {
	s.selected = append(s.selected, cid)
	return s.err
}

func (s *fakeSession) CheckName(name string) error {
	s.checked = append(s.checked, name)
	return s.err
}

func (s *fakeSession) CreateChar(name string, _ int32, _ bool) error {
	s.created = append(s.created, name)
	return s.err
}

func (s *fakeSession) DeleteChar(_ string, cid int32) error {
	s.deleted = append(s.deleted, cid)
	return s.err
}

func (s *fakeSession) Chat(text string) error {
	s.chats = append(s.chats, text)
	return s.err
}

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newEnv(t *testing.T) (*Env, *fakeSession) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.UI.KeyBindings = filepath.Join(dir, "keys.yaml")
	s := &fakeSession{}
	return &Env{
		UI:         ui.NewRegistry(),
		Session:    s,
		Keys:       keyboard.New(keyboard.LayoutBasic),
		Config:     cfg,
		ConfigPath: filepath.Join(dir, "config.yaml"),
	}, s
}

// recordIntent collects the outcomes it is resolved with.
type recordIntent struct {
	got *[]ui.Outcome
}

func (i recordIntent) Resolve(_ *ui.Registry, o ui.Outcome) {
	*i.got = append(*i.got, o)
}

func TestEnterNumberRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"12a", msgOnlyNumbers},
		{"", msgOnlyNumbers},
		{"-3", msgOnlyNumbers},
		{"0", msgAtLeastOne},
		{"50", "You may only enter a number equal to or lower than 30."},
		{"99999999999999999999999", "You may only enter a number equal to or lower than 30."},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			env, _ := newEnv(t)
			var got []ui.Outcome
			p := NewEnterNumber(env, "How many?", recordIntent{&got}, 30, 1)
			env.UI.Emplace(p)

			p.Submit(tt.text)

			assert.True(t, p.IsActive())
			assert.Equal(t, ui.FieldDisabled, p.Field().State())
			ok, found := ui.As[*Ok](env.UI, ui.Notice)
			require.True(t, found)
			assert.Equal(t, tt.want, ok.Text())

			env.UI.Drain()
			assert.Empty(t, got)

			// Dismissing the corrective notice gives the field back.
			ok.SendKey(ui.KeyReturn, true)
			env.UI.Drain()
			assert.Equal(t, ui.FieldFocused, p.Field().State())
			assert.Empty(t, got)
		})
	}
}

func TestEnterNumberAccepts(t *testing.T) {
	env, _ := newEnv(t)
	var got []ui.Outcome
	p := NewEnterNumber(env, "How many?", recordIntent{&got}, 30, 1)
	env.UI.Emplace(p)

	p.Submit("17")

	assert.False(t, p.IsActive())
	assert.Nil(t, env.UI.Get(ui.Notice))
	assert.Empty(t, got, "outcome runs on the next drain")

	env.UI.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, ui.AnswerNumber, got[0].Answer)
	assert.Equal(t, 17, got[0].Number)
}

func TestEnterNumberTyping(t *testing.T) {
	env, _ := newEnv(t)
	var got []ui.Outcome
	p := NewEnterNumber(env, "How many?", recordIntent{&got}, 30, 5)
	env.UI.Emplace(p)
	assert.Equal(t, "5", p.Field().Text())

	p.SendKey(ui.KeyBackspace, true)
	p.SendText("21")
	p.SendKey(ui.KeyReturn, true)
	env.UI.Drain()

	require.Len(t, got, 1)
	assert.Equal(t, 21, got[0].Number)
}

func TestEnterNumberEscapeCancels(t *testing.T) {
	env, _ := newEnv(t)
	var got []ui.Outcome
	p := NewEnterNumber(env, "How many?", recordIntent{&got}, 30, 1)
	env.UI.Emplace(p)

	p.SendKey(ui.KeyEscape, true)
	env.UI.Drain()

	require.Len(t, got, 1)
	assert.Equal(t, ui.AnswerCancel, got[0].Answer)
	assert.False(t, got[0].Confirmed())
}

func TestNoticeAnswers(t *testing.T) {
	env, _ := newEnv(t)
	var got []ui.Outcome

	ok := NewOk(env, "Saved.", recordIntent{&got}, NoticeOK)
	env.UI.Emplace(ok)
	ok.SendKey(ui.KeyEscape, true)

	yn := NewYesNo(env, "Sure?", recordIntent{&got})
	env.UI.Emplace(yn)
	yn.SendKey(ui.KeyReturn, true)

	env.UI.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, ui.AnswerCancel, got[0].Answer)
	assert.Equal(t, ui.AnswerYes, got[1].Answer)
}

func TestLoginNoticeText(t *testing.T) {
	assert.Equal(t, "This ID is already logged in.", MsgAlreadyLoggedIn.Text())
	assert.Equal(t, "Login failed (code 98).", LoginMessage(98).Text())
}

func TestLoginSubmit(t *testing.T) {
	env, s := newEnv(t)
	p := NewLogin(env)
	env.UI.Emplace(p)
	p.Account().SetText("alice")
	p.Password().SetText("secret")

	p.Submit()

	assert.Equal(t, [][2]string{{"alice", "secret"}}, s.logins)
	wait, ok := ui.As[*LoginWait](env.UI, ui.LoginWait)
	require.True(t, ok)
	assert.True(t, wait.IsActive())
	assert.Equal(t, ui.FieldDisabled, p.Account().State())

	// A second submit while waiting is ignored.
	p.Submit()
	assert.Len(t, s.logins, 1)

	// Cancelling the wait gives the form back.
	wait.Cancel()
	env.UI.Drain()
	assert.Equal(t, ui.FieldFocused, p.Password().State())
	assert.Empty(t, p.Password().Text())
	assert.Equal(t, ui.Login, env.UI.Focused())
}

func TestLoginMissingFields(t *testing.T) {
	tests := []struct {
		name     string
		account  string
		password string
		want     LoginMessage
	}{
		{"no account", "", "secret", MsgNotRegistered},
		{"no password", "alice", "", MsgIncorrectPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, s := newEnv(t)
			p := NewLogin(env)
			env.UI.Emplace(p)
			p.Account().SetText(tt.account)
			p.Password().SetText(tt.password)

			p.Submit()

			assert.Empty(t, s.logins)
			n, ok := ui.As[*LoginNotice](env.UI, ui.LoginNotice)
			require.True(t, ok)
			assert.Equal(t, tt.want, n.Message())

			n.SendKey(ui.KeyReturn, true)
			env.UI.Drain()
			assert.NotEqual(t, ui.FieldDisabled, p.Account().State())
		})
	}
}

func TestLoginThrottle(t *testing.T) {
	env, s := newEnv(t)
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	env.Now = c.now
	env.Config.Network.LoginInterval = time.Minute
	p := NewLogin(env)
	env.UI.Emplace(p)

	attempt := func() {
		p.Account().SetText("alice")
		p.Password().SetText("secret")
		p.Submit()
		if wait, ok := ui.As[*LoginWait](env.UI, ui.LoginWait); ok && wait.IsActive() {
			wait.Cancel()
			env.UI.Drain()
		}
	}

	attempt()
	attempt()
	assert.Len(t, s.logins, 1)

	c.advance(time.Minute)
	attempt()
	assert.Len(t, s.logins, 2)
}

func TestLoginSendFailure(t *testing.T) {
	env, s := newEnv(t)
	s.err = errors.New("not connected")
	p := NewLogin(env)
	env.UI.Emplace(p)
	p.Account().SetText("alice")
	p.Password().SetText("secret")

	p.Submit()

	assert.Nil(t, env.UI.Get(ui.LoginWait))
	n, ok := ui.As[*LoginNotice](env.UI, ui.LoginNotice)
	require.True(t, ok)
	assert.Equal(t, MsgConnectionFailed, n.Message())
}

func TestLoginPrefillsSavedAccount(t *testing.T) {
	env, _ := newEnv(t)
	env.Config.UI.SaveLogin = true
	env.Config.UI.DefaultAccount = "bob"

	p := NewLogin(env)

	assert.Equal(t, "bob", p.Account().Text())
	assert.Equal(t, ui.FieldFocused, p.Password().State())
}

func TestLoginQuitConfirm(t *testing.T) {
	env, _ := newEnv(t)
	quit := 0
	env.Quit = func() { quit++ }
	p := NewLogin(env)
	env.UI.Emplace(p)

	p.SendKey(ui.KeyEscape, true)
	confirm, ok := ui.As[*LoginNoticeConfirm](env.UI, ui.LoginNoticeConfirm)
	require.True(t, ok)
	confirm.SendKey(ui.KeyEscape, true)
	env.UI.Drain()
	assert.Zero(t, quit)

	p.SendKey(ui.KeyEscape, true)
	confirm, _ = ui.As[*LoginNoticeConfirm](env.UI, ui.LoginNoticeConfirm)
	confirm.SendKey(ui.KeyReturn, true)
	env.UI.Drain()
	assert.Equal(t, 1, quit)
}

func TestLoginTakesTextAfterQuitDeclined(t *testing.T) {
	env, _ := newEnv(t)
	quit := 0
	env.Quit = func() { quit++ }
	p := NewLogin(env)
	env.UI.Emplace(p)
	disp := ui.NewDispatcher(env.UI)

	require.True(t, disp.SendKey(ui.KeyEscape, true))
	require.NotNil(t, env.UI.Modal())
	require.True(t, disp.SendKey(ui.KeyEscape, true))
	env.UI.Drain()

	assert.Zero(t, quit)
	assert.Nil(t, env.UI.Modal())
	assert.Equal(t, ui.Login, env.UI.Focused())
	require.True(t, disp.SendText("bob"))
	assert.Equal(t, "bob", p.Account().Text())
}

func TestLoginWaitElapsed(t *testing.T) {
	env, _ := newEnv(t)
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	env.Now = c.now
	p := NewLoginWait(env, nil)

	c.advance(65*time.Second + 300*time.Millisecond)
	p.Update()

	assert.Equal(t, "1 minute 5 seconds", p.Elapsed())
}

func worldFixture() []packets.World {
	return []packets.World{
		{ID: 0, Name: "Scania", Channels: []packets.Channel{{Name: "Scania-1", Load: 120}, {Name: "Scania-2", Load: 80}}},
		{ID: 3, Name: "Bera", Channels: []packets.Channel{{Name: "Bera-1", Load: 5}}},
	}
}

func TestWorldSelectFlow(t *testing.T) {
	env, s := newEnv(t)
	p := NewWorldSelect(env)
	env.UI.Emplace(p)
	p.Deactivate()
	for _, w := range worldFixture() {
		p.AddWorld(w)
	}
	assert.False(t, p.IsActive())

	p.DrawWorld()
	assert.True(t, p.IsActive())
	assert.Equal(t, ui.WorldSelect, env.UI.Focused())

	p.SelectWorld(1)
	p.SelectChannel(0)
	p.SelectChannel(5)
	w, ch := p.Selected()
	assert.Equal(t, 1, w)
	assert.Equal(t, 0, ch)

	p.Enter()
	assert.Equal(t, [][2]int8{{3, 0}}, s.charlists)
	assert.NotNil(t, env.UI.Get(ui.LoginWait))

	p.RemoveSelected()
	assert.False(t, p.IsActive())
}

func TestWorldSelectBack(t *testing.T) {
	env, _ := newEnv(t)
	p := NewWorldSelect(env)
	env.UI.Emplace(p)
	p.AddWorld(worldFixture()[0])
	p.DrawWorld()

	p.SendKey(ui.KeyEscape, true)
	env.UI.Drain()

	assert.Nil(t, env.UI.Get(ui.WorldSelect))
	assert.NotNil(t, env.UI.Get(ui.Login))
	assert.Equal(t, ui.Login, env.UI.Focused())
}

func TestWorldSelectManyWorldsKeepChannelButtons(t *testing.T) {
	env, _ := newEnv(t)
	p := NewWorldSelect(env)
	env.UI.Emplace(p)
	for i := 0; i < 150; i++ {
		p.AddWorld(packets.World{
			ID:       int8(i % 100),
			Name:     fmt.Sprintf("World %d", i),
			Channels: []packets.Channel{{Name: "1"}, {Name: "2"}},
		})
	}
	p.DrawWorld()
	assert.Len(t, p.Buttons, 2+150+2)

	p.ButtonPressed(worldButtonWorld + 120)
	w, ch := p.Selected()
	assert.Equal(t, 120, w)
	assert.Equal(t, 0, ch)

	p.ButtonPressed(worldButtonChannel + 1)
	w, ch = p.Selected()
	assert.Equal(t, 120, w)
	assert.Equal(t, 1, ch)
	assert.Equal(t, ui.ButtonPressed, p.Buttons[worldButtonWorld+120].State())
	assert.Equal(t, ui.ButtonPressed, p.Buttons[worldButtonChannel+1].State())
	assert.Equal(t, ui.ButtonNormal, p.Buttons[worldButtonWorld].State())
}

func charFixture() []packets.CharEntry {
	return []packets.CharEntry{
		{ID: 10, Stats: packets.CharStats{Name: "Rook", Level: 30}},
		{ID: 11, Stats: packets.CharStats{Name: "Wren", Level: 12}},
	}
}

func TestCharSelectDelete(t *testing.T) {
	env, s := newEnv(t)
	p := NewCharSelect(env, charFixture(), 6, 0)
	env.UI.Emplace(p)
	p.SendKey(ui.KeyRight, true)

	p.ButtonPressed(charButtonDelete)
	confirm, ok := ui.As[*LoginNoticeConfirm](env.UI, ui.LoginNoticeConfirm)
	require.True(t, ok)
	assert.Equal(t, "Are you sure you want to delete Wren?", confirm.Text())

	confirm.SendKey(ui.KeyReturn, true)
	env.UI.Drain()
	assert.Equal(t, []int32{11}, s.deleted)

	p.RemoveCharacter(11)
	require.Len(t, p.Characters(), 1)
	c, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, int32(10), c.ID)
}

func TestCharSelectDeleteDeclined(t *testing.T) {
	env, s := newEnv(t)
	p := NewCharSelect(env, charFixture(), 6, 0)
	env.UI.Emplace(p)

	p.ButtonPressed(charButtonDelete)
	confirm, _ := ui.As[*LoginNoticeConfirm](env.UI, ui.LoginNoticeConfirm)
	confirm.SendKey(ui.KeyEscape, true)
	env.UI.Drain()

	assert.Empty(t, s.deleted)
}

func TestCharSelectTakesKeysAfterDeleteDeclined(t *testing.T) {
	env, s := newEnv(t)
	p := NewCharSelect(env, charFixture(), 6, 0)
	env.UI.Emplace(p)
	disp := ui.NewDispatcher(env.UI)

	p.ButtonPressed(charButtonDelete)
	require.Equal(t, ui.LoginNoticeConfirm, env.UI.Focused())
	require.True(t, disp.SendKey(ui.KeyEscape, true))
	env.UI.Drain()

	assert.Empty(t, s.deleted)
	assert.Equal(t, ui.CharSelect, env.UI.Focused())
	require.True(t, disp.SendKey(ui.KeyRight, true))
	c, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, int32(11), c.ID)
}

func TestCharSelectStart(t *testing.T) {
	env, s := newEnv(t)
	p := NewCharSelect(env, charFixture(), 6, 0)
	env.UI.Emplace(p)

	p.SendKey(ui.KeyReturn, true)
	p.SendKey(ui.KeyReturn, true)

	assert.Equal(t, []int32{10}, s.selected)
	assert.NotNil(t, env.UI.Get(ui.LoginWait))
}

func TestCharCreationFlow(t *testing.T) {
	env, s := newEnv(t)
	cs := NewCharSelect(env, nil, 3, 0)
	env.UI.Emplace(cs)

	cs.ButtonPressed(charButtonNew)
	assert.False(t, cs.IsActive())
	cc, ok := ui.As[*CharCreation](env.UI, ui.CharCreation)
	require.True(t, ok)
	assert.Equal(t, ui.CharCreation, env.UI.Focused())

	cc.SendText("Bo")
	cc.SendKey(ui.KeyReturn, true)
	assert.Empty(t, s.checked)
	n, ok := ui.As[*LoginNotice](env.UI, ui.LoginNotice)
	require.True(t, ok)
	assert.Equal(t, MsgIllegalName, n.Message())

	cc.SendText("rin")
	cc.SendKey(ui.KeyReturn, true)
	assert.Equal(t, []string{"Borin"}, s.checked)
	assert.Equal(t, ui.FieldDisabled, cc.Name().State())

	cc.SendNamingResult(true)
	assert.False(t, cc.Named())
	assert.Equal(t, ui.FieldFocused, cc.Name().State())

	cc.SendKey(ui.KeyReturn, true)
	cc.SendNamingResult(false)
	assert.True(t, cc.Named())

	cc.SendKey(ui.KeyReturn, true)
	assert.Equal(t, []string{"Borin"}, s.created)

	env.UI.Drain()
	assert.Nil(t, env.UI.Get(ui.CharCreation))
	assert.True(t, cs.IsActive())
	assert.Equal(t, ui.CharSelect, env.UI.Focused())
}

func newKeyConfig(t *testing.T) (*Env, *KeyConfig) {
	t.Helper()
	env, _ := newEnv(t)
	p := NewKeyConfig(env)
	env.UI.Emplace(p)
	return env, p
}

// keyCenter returns a screen point inside the slot of k.
func keyCenter(t *testing.T, p *KeyConfig, k keyboard.Key) ui.Point {
	t.Helper()
	at, ok := p.KeyPosition(k)
	require.True(t, ok)
	return p.Position().Add(at).Add(ui.Pt(ui.IconSize/2, ui.IconSize/2))
}

func paletteCenter(t *testing.T, p *KeyConfig, a keyboard.Action) ui.Point {
	t.Helper()
	at, ok := p.IconPosition(a)
	require.True(t, ok)
	return p.Position().Add(at).Add(ui.Pt(ui.IconSize/2, ui.IconSize/2))
}

func keyIcon(a keyboard.Action) *ui.Icon {
	return ui.NewIcon(ui.KeyConfig, int32(a), a.String())
}

func TestKeyConfigCountsEquipmentAsBound(t *testing.T) {
	_, p := newKeyConfig(t)

	assert.Contains(t, p.Found(), keyboard.Equipment)
	assert.Contains(t, p.Found(), keyboard.Items)
	assert.Empty(t, p.Pending())
}

func TestKeyConfigDropOnKey(t *testing.T) {
	env, p := newKeyConfig(t)

	p.SendIcon(keyIcon(keyboard.Equipment), keyCenter(t, p, keyboard.T))
	assert.Equal(t, map[keyboard.Key]keyboard.Action{keyboard.T: keyboard.Equipment}, p.Pending())
	assert.NotContains(t, p.Found(), keyboard.Equipment)

	// Nothing changes until OK.
	assert.Equal(t, keyboard.Equipment, env.Keys.Mapping(keyboard.E).Action)

	p.ButtonPressed(keysButtonOK)

	k, ok := env.Keys.KeyFor(keyboard.Equipment)
	require.True(t, ok)
	assert.Equal(t, keyboard.T, k)
	assert.Equal(t, keyboard.TypeNone, env.Keys.Mapping(keyboard.E).Type)
	assert.False(t, p.IsActive())
	assert.FileExists(t, env.Config.KeyBindingsPath())
}

func TestKeyConfigDropDisplacesBinding(t *testing.T) {
	env, p := newKeyConfig(t)

	p.SendIcon(keyIcon(keyboard.Equipment), keyCenter(t, p, keyboard.Q))
	assert.NotContains(t, p.Found(), keyboard.QuestLog)

	p.ButtonPressed(keysButtonOK)

	assert.Equal(t, keyboard.Equipment, env.Keys.Mapping(keyboard.Q).Action)
	_, ok := env.Keys.KeyFor(keyboard.QuestLog)
	assert.False(t, ok)
}

func TestKeyConfigDropOnSameKeyKeepsBinding(t *testing.T) {
	_, p := newKeyConfig(t)

	p.SendIcon(keyIcon(keyboard.Equipment), paletteCenter(t, p, keyboard.Items))
	assert.NotContains(t, p.Found(), keyboard.Equipment)

	p.SendIcon(keyIcon(keyboard.Equipment), keyCenter(t, p, keyboard.E))
	assert.Contains(t, p.Found(), keyboard.Equipment)
	assert.Empty(t, p.Pending())
}

func TestKeyConfigDropOnPaletteUnbinds(t *testing.T) {
	env, p := newKeyConfig(t)

	p.SendIcon(keyIcon(keyboard.Items), paletteCenter(t, p, keyboard.Stats))
	p.ButtonPressed(keysButtonOK)

	assert.Equal(t, keyboard.TypeNone, env.Keys.Mapping(keyboard.I).Type)
	assert.Equal(t, keyboard.Equipment, env.Keys.Mapping(keyboard.E).Action)
}

func TestKeyConfigIgnoresForeignIcons(t *testing.T) {
	_, p := newKeyConfig(t)
	found := len(p.Found())

	p.SendIcon(ui.NewIcon(ui.ItemInventory, 4, "Potion"), keyCenter(t, p, keyboard.T))

	assert.Empty(t, p.Pending())
	assert.Len(t, p.Found(), found)
}

func TestKeyConfigDragThroughDispatcher(t *testing.T) {
	env, p := newKeyConfig(t)
	d := ui.NewDispatcher(env.UI)

	state := d.SendCursor(true, keyCenter(t, p, keyboard.E))
	assert.Equal(t, ui.CursorGrabbing, state)
	require.NotNil(t, env.UI.Router().Icon())

	d.SendCursor(true, keyCenter(t, p, keyboard.T))
	d.SendCursor(false, keyCenter(t, p, keyboard.T))
	assert.Nil(t, env.UI.Router().Icon())
	assert.Equal(t, keyboard.Equipment, p.Pending()[keyboard.T])

	// Dropping outside every window unbinds on the next tick.
	d.SendCursor(true, keyCenter(t, p, keyboard.T))
	d.SendCursor(false, ui.Pt(2, 2))
	assert.Equal(t, keyboard.Equipment, p.Pending()[keyboard.T])
	env.UI.Drain()
	assert.Empty(t, p.Pending())
	assert.NotContains(t, p.Found(), keyboard.Equipment)
}

func TestKeyConfigRestoreDefaults(t *testing.T) {
	env, p := newKeyConfig(t)

	p.ButtonPressed(keysButtonDefault)
	ok, found := ui.As[*Ok](env.UI, ui.Notice)
	require.True(t, found)
	assert.Equal(t, msgRevertKeys, ok.Text())

	ok.SendKey(ui.KeyReturn, true)
	env.UI.Drain()
	sel, found := ui.As[*KeySelect](env.UI, ui.KeySelect)
	require.True(t, found)

	sel.ButtonPressed(selectButtonAlternate)
	env.UI.Drain()

	assert.Equal(t, keyboard.Attack, env.Keys.Mapping(keyboard.X).Action)
	assert.Equal(t, keyboard.Jump, env.Keys.Mapping(keyboard.C).Action)
	assert.Contains(t, p.Found(), keyboard.Attack)
	assert.FileExists(t, env.Config.KeyBindingsPath())
}

func TestKeyConfigRestoreDefaultsDeclined(t *testing.T) {
	env, p := newKeyConfig(t)

	p.ButtonPressed(keysButtonDefault)
	ok, _ := ui.As[*Ok](env.UI, ui.Notice)
	ok.SendKey(ui.KeyEscape, true)
	env.UI.Drain()

	assert.Nil(t, env.UI.Get(ui.KeySelect))
}

func TestKeyConfigTakesKeysAfterNotice(t *testing.T) {
	for _, tc := range []struct {
		name   string
		button ui.ButtonID
		answer ui.KeyCode
	}{
		{"default declined", keysButtonDefault, ui.KeyEscape},
		{"delete declined", keysButtonDelete, ui.KeyEscape},
		{"delete confirmed", keysButtonDelete, ui.KeyReturn},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env, p := newKeyConfig(t)
			disp := ui.NewDispatcher(env.UI)

			p.ButtonPressed(tc.button)
			require.Equal(t, ui.Notice, env.UI.Focused())
			require.True(t, disp.SendKey(tc.answer, true))
			env.UI.Drain()

			assert.Nil(t, env.UI.Modal())
			assert.Equal(t, ui.KeyConfig, env.UI.Focused())
			require.True(t, disp.SendKey(ui.KeyEscape, true))
			assert.False(t, p.IsActive())
			assert.Equal(t, ui.None, env.UI.Focused())
		})
	}
}

func TestKeyConfigClearAll(t *testing.T) {
	env, p := newKeyConfig(t)

	p.ButtonPressed(keysButtonDelete)
	ok, found := ui.As[*Ok](env.UI, ui.Notice)
	require.True(t, found)
	assert.Equal(t, msgClearKeys, ok.Text())
	ok.SendKey(ui.KeyReturn, true)
	env.UI.Drain()

	assert.Empty(t, p.Found())
	assert.NotEmpty(t, env.Keys.Bound(), "cleared only once OK is pressed")

	p.ButtonPressed(keysButtonOK)
	assert.Empty(t, env.Keys.Bound())
}

func TestKeyConfigCancelDiscards(t *testing.T) {
	env, p := newKeyConfig(t)

	p.SendIcon(keyIcon(keyboard.Equipment), keyCenter(t, p, keyboard.T))
	p.SendKey(ui.KeyEscape, true)

	assert.False(t, p.IsActive())
	assert.Empty(t, p.Pending())
	assert.Equal(t, keyboard.Equipment, env.Keys.Mapping(keyboard.E).Action)
}

func TestStatusBarMenu(t *testing.T) {
	env, _ := newEnv(t)
	p := NewStatusBar(env, packets.CharStats{Name: "Rook", Level: 30, HP: 50, MaxHP: 100})
	env.UI.Emplace(p)
	above := p.Position().Add(ui.Pt(p.Dimension().X-50, -10))

	assert.False(t, p.IsInRange(above))
	p.ButtonPressed(statusButtonMenu)
	assert.True(t, p.MenuOpen())
	assert.True(t, p.IsInRange(above))

	p.ButtonPressed(statusButtonKeys)
	assert.False(t, p.MenuOpen())
	env.UI.Drain()
	kc, ok := ui.As[*KeyConfig](env.UI, ui.KeyConfig)
	require.True(t, ok)
	assert.True(t, kc.IsActive())
	assert.Equal(t, ui.KeyConfig, env.UI.Focused())

	p.ButtonPressed(statusButtonMenu)
	p.ButtonPressed(statusButtonKeys)
	env.UI.Drain()
	assert.False(t, kc.IsActive())
	assert.Same(t, kc, env.UI.Get(ui.KeyConfig))
}

func TestGaugeFill(t *testing.T) {
	tests := []struct {
		cur, total int64
		want       int
	}{
		{50, 100, 80},
		{0, 100, 0},
		{150, 100, 160},
		{10, 0, 0},
		{-5, 100, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fill(tt.cur, tt.total, 160), "%d/%d", tt.cur, tt.total)
	}
}

func TestMiniMapModes(t *testing.T) {
	env, _ := newEnv(t)
	p := NewMiniMap(env)
	assert.Equal(t, MapNormal, p.Mode())
	assert.False(t, p.Buttons[mapButtonNormal].IsActive())

	p.ButtonPressed(mapButtonMin)
	assert.Equal(t, MapMin, p.Mode())
	assert.Equal(t, mapTitleH, p.Dimension().Y)
	assert.True(t, p.Buttons[mapButtonNormal].IsActive())
	assert.False(t, p.Buttons[mapButtonMin].IsActive())

	p.ButtonPressed(mapButtonMax)
	assert.Equal(t, ui.Pt(264, mapTitleH+264), p.Dimension())
}

func TestMiniMapProjection(t *testing.T) {
	env, _ := newEnv(t)
	p := NewMiniMap(env)
	p.SetMap("henesys", ui.Pt(100, 100))
	area := ui.RectAt(ui.Pt(10, 10), ui.Pt(100, 100))

	assert.Equal(t, ui.Pt(35, 35), p.toScreen(ui.Pt(25, 75), area))
	assert.Equal(t, "henesys", p.MapName())
}

func TestChatBarInput(t *testing.T) {
	env, s := newEnv(t)
	p := NewChatBar(env)
	env.UI.Emplace(p)
	assert.Equal(t, ui.None, env.UI.Focused())

	p.SendText("ignored")
	p.SendKey(ui.KeyReturn, true)
	assert.True(t, p.InputOpen())
	assert.Equal(t, ui.ChatBar, env.UI.Focused())

	p.SendText("hello")
	p.SendKey(ui.KeyReturn, true)

	assert.Equal(t, []string{"hello"}, s.chats)
	assert.False(t, p.InputOpen())
	assert.Equal(t, ui.None, env.UI.Focused())
}

func TestChatBarSendFailure(t *testing.T) {
	env, s := newEnv(t)
	s.err = errors.New("not connected")
	p := NewChatBar(env)
	env.UI.Emplace(p)

	p.OpenInput()
	p.SendText("hello")
	p.SendKey(ui.KeyReturn, true)

	require.Len(t, p.Messages(), 1)
	assert.Equal(t, ChatSystem, p.Messages()[0].Channel)
}

func TestChatBarCapacity(t *testing.T) {
	env, _ := newEnv(t)
	p := NewChatBar(env)

	for i := 0; i < chatCapacity+5; i++ {
		p.AddLine(packets.ChatLine{Text: string(rune('a' + i%26)), GM: i == chatCapacity+4})
	}

	msgs := p.Messages()
	require.Len(t, msgs, chatCapacity)
	assert.Equal(t, "f", msgs[0].Text)
	assert.Equal(t, ChatAnnounce, msgs[len(msgs)-1].Channel)

	p.SendScroll(1)
	p.SendScroll(1)
	assert.Equal(t, 2, p.scroll)
	for i := 0; i < 3; i++ {
		p.SendScroll(-1)
	}
	assert.Equal(t, 0, p.scroll)
}
