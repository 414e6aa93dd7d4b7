package keyboard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-ui/internal/ui"
)

// Mapping is what a key is bound to.
type Mapping struct {
	Type   Type   `yaml:"type"`
	Action Action `yaml:"action"`
}

// Layout selects one of the two built-in default layouts.
type Layout uint8

const (
	LayoutBasic Layout = iota
	LayoutAlternate
)

// ParseLayout converts a config value to a Layout. Unknown values fall back
// to the basic layout.
func ParseLayout(s string) Layout {
	if s == "alternate" {
		return LayoutAlternate
	}
	return LayoutBasic
}

// Keyboard holds the current key bindings.
type Keyboard struct {
	maps map[Key]Mapping
}

// New creates a keyboard with the given default layout.
func New(layout Layout) *Keyboard {
	kb := &Keyboard{}
	kb.Reset(layout)
	return kb
}

// Reset restores a default layout.
func (kb *Keyboard) Reset(layout Layout) {
	kb.maps = make(map[Key]Mapping)
	src := basicLayout
	if layout == LayoutAlternate {
		src = alternateLayout
	}
	for k, a := range src {
		kb.maps[k] = Mapping{Type: TypeOf(a), Action: a}
	}
}

// Clear removes every binding.
func (kb *Keyboard) Clear() {
	kb.maps = make(map[Key]Mapping)
}

// Mapping returns the binding of k. Unbound keys report TypeNone.
func (kb *Keyboard) Mapping(k Key) Mapping {
	return kb.maps[k]
}

// Bind assigns action to k, removing it from any other key first.
func (kb *Keyboard) Bind(k Key, action Action) {
	if !k.Bindable() {
		return
	}
	if old, ok := kb.KeyFor(action); ok {
		delete(kb.maps, old)
	}
	kb.maps[k] = Mapping{Type: TypeOf(action), Action: action}
}

// Unbind removes the binding of k.
func (kb *Keyboard) Unbind(k Key) {
	delete(kb.maps, k)
}

// KeyFor returns the key an action is bound to.
func (kb *Keyboard) KeyFor(action Action) (Key, bool) {
	for _, k := range BindableKeys() {
		m, ok := kb.maps[k]
		if ok && m.Type != TypeNone && m.Action == action {
			return k, true
		}
	}
	return KeyNone, false
}

// Bound returns the bound keys in layout order.
func (kb *Keyboard) Bound() []Key {
	keys := make([]Key, 0, len(kb.maps))
	for k, m := range kb.maps {
		if m.Type != TypeNone {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type bindingsFile struct {
	Bindings map[Key]Mapping `yaml:"bindings"`
}

// Save writes the bindings as YAML.
func (kb *Keyboard) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating bindings dir: %w", err)
	}
	data, err := yaml.Marshal(bindingsFile{Bindings: kb.maps})
	if err != nil {
		return fmt.Errorf("encoding bindings: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load replaces the bindings with the contents of a YAML file.
func (kb *Keyboard) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f bindingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing bindings: %w", err)
	}
	maps := make(map[Key]Mapping, len(f.Bindings))
	for k, m := range f.Bindings {
		if k.Bindable() && m.Action.Valid() {
			maps[k] = m
		}
	}
	kb.maps = maps
	return nil
}

// MenuCode translates keys that drive panels to the code panels understand.
func MenuCode(k Key) (ui.KeyCode, bool) {
	switch k {
	case Return:
		return ui.KeyReturn, true
	case Escape:
		return ui.KeyEscape, true
	case Backspace:
		return ui.KeyBackspace, true
	case Tab:
		return ui.KeyTab, true
	case Delete:
		return ui.KeyDelete, true
	case Left:
		return ui.KeyLeft, true
	case Right:
		return ui.KeyRight, true
	case Up:
		return ui.KeyUp, true
	case Down:
		return ui.KeyDown, true
	case Home:
		return ui.KeyHome, true
	case End:
		return ui.KeyEnd, true
	}
	return ui.KeyUnknown, false
}

var basicLayout = map[Key]Action{
	GraveAccent:  ChangeChannel,
	Num1:         Say,
	Num2:         PartyChat,
	Num3:         FriendsChat,
	Num4:         GuildChat,
	Num5:         AllianceChat,
	Q:            QuestLog,
	W:            WorldMap,
	E:            Equipment,
	R:            Friends,
	I:            Items,
	P:            Party,
	LeftBracket:  Menu,
	RightBracket: QuickSlots,
	Backslash:    KeyBindings,
	S:            Stats,
	G:            Guild,
	K:            Skills,
	L:            Notifier,
	Apostrophe:   ToggleChat,
	Z:            PickUp,
	X:            Sit,
	C:            Whisper,
	B:            BossParty,
	M:            MiniMap,
	LeftControl:  Attack,
	LeftAlt:      Jump,
	Space:        Interact,
	F1:           Face1,
	F2:           Face2,
	F3:           Face3,
	F4:           Face4,
	F5:           Face5,
	F6:           Face6,
	F7:           Face7,
	F12:          Screenshot,
	Insert:       CharInfo,
	Home:         MainMenu,
	PageUp:       CashShop,
}

var alternateLayout = map[Key]Action{
	GraveAccent:  ChangeChannel,
	Num1:         Say,
	Num2:         PartyChat,
	Num3:         FriendsChat,
	Q:            QuestLog,
	W:            WorldMap,
	E:            Equipment,
	R:            Friends,
	I:            Items,
	P:            Party,
	LeftBracket:  Menu,
	RightBracket: QuickSlots,
	Backslash:    KeyBindings,
	S:            Stats,
	G:            Guild,
	K:            Skills,
	M:            MiniMap,
	Apostrophe:   ToggleChat,
	Z:            PickUp,
	X:            Attack,
	C:            Jump,
	V:            Sit,
	Space:        Interact,
	F1:           Face1,
	F2:           Face2,
	F3:           Face3,
	F12:          Screenshot,
}
