package ui

// PanelType identifies a kind of panel and doubles as its registry slot.
// Declaration order is draw order: later types are drawn on top and are
// hit-tested first.
type PanelType uint8

const (
	None PanelType = iota
	Start
	Login
	WorldSelect
	CharSelect
	LoginWait
	CharCreation
	ClassCreation
	SoftKeyboard
	StatusMessenger
	StatusBar
	ChatBar
	BuffList
	NPCTalk
	Shop
	StatsInfo
	ItemInventory
	EquipInventory
	SkillBook
	QuestLog
	WorldMap
	UserList
	MiniMap
	Channel
	Chat
	ChatRank
	Joypad
	Event
	KeyConfig
	KeySelect
	EnterNumber
	LoginNotice
	LoginNoticeConfirm
	Notice
	NumTypes
)

var typeNames = [NumTypes]string{
	None:               "NONE",
	Start:              "START",
	Login:              "LOGIN",
	WorldSelect:        "WORLDSELECT",
	CharSelect:         "CHARSELECT",
	LoginWait:          "LOGINWAIT",
	CharCreation:       "CHARCREATION",
	ClassCreation:      "CLASSCREATION",
	SoftKeyboard:       "SOFTKEYBOARD",
	StatusMessenger:    "STATUSMESSENGER",
	StatusBar:          "STATUSBAR",
	ChatBar:            "CHATBAR",
	BuffList:           "BUFFLIST",
	NPCTalk:            "NPCTALK",
	Shop:               "SHOP",
	StatsInfo:          "STATSINFO",
	ItemInventory:      "ITEMINVENTORY",
	EquipInventory:     "EQUIPINVENTORY",
	SkillBook:          "SKILLBOOK",
	QuestLog:           "QUESTLOG",
	WorldMap:           "WORLDMAP",
	UserList:           "USERLIST",
	MiniMap:            "MINIMAP",
	Channel:            "CHANNEL",
	Chat:               "CHAT",
	ChatRank:           "CHATRANK",
	Joypad:             "JOYPAD",
	Event:              "EVENT",
	KeyConfig:          "KEYCONFIG",
	KeySelect:          "KEYSELECT",
	EnterNumber:        "ENTERNUMBER",
	LoginNotice:        "LOGINNOTICE",
	LoginNoticeConfirm: "LOGINNOTICE_CONFIRM",
	Notice:             "NOTICE",
}

func (t PanelType) String() string {
	if t < NumTypes {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// Valid reports whether t names a real slot.
func (t PanelType) Valid() bool {
	return t > None && t < NumTypes
}

// Traits are the static properties of a panel type.
type Traits struct {
	// Focused panels take keyboard focus when created.
	Focused bool
	// Toggled panels flip activation when opened a second time instead of
	// being rebuilt.
	Toggled bool
	// Modal panels intercept keys regardless of focus and shadow every
	// non-modal panel for pointer input while active.
	Modal bool
}

var traits = [NumTypes]Traits{
	Login:              {Focused: true},
	WorldSelect:        {Focused: true},
	CharSelect:         {Focused: true},
	CharCreation:       {Focused: true},
	ClassCreation:      {Focused: true},
	SoftKeyboard:       {Focused: true},
	StatusBar:          {Toggled: true},
	ChatBar:            {Toggled: true},
	StatsInfo:          {Toggled: true},
	ItemInventory:      {Toggled: true},
	EquipInventory:     {Toggled: true},
	SkillBook:          {Toggled: true},
	QuestLog:           {Toggled: true},
	WorldMap:           {Toggled: true},
	UserList:           {Toggled: true},
	MiniMap:            {Toggled: true},
	Channel:            {Toggled: true},
	Event:              {Toggled: true},
	KeyConfig:          {Focused: true, Toggled: true},
	KeySelect:          {Focused: true, Modal: true},
	EnterNumber:        {Focused: true, Modal: true},
	LoginNotice:        {Focused: true, Modal: true},
	LoginNoticeConfirm: {Focused: true, Modal: true},
	Notice:             {Focused: true, Modal: true},
}

// Traits returns the static traits of t.
func (t PanelType) Traits() Traits {
	if t < NumTypes {
		return traits[t]
	}
	return Traits{}
}

// IsModal is shorthand for t.Traits().Modal.
func (t PanelType) IsModal() bool {
	return t.Traits().Modal
}
