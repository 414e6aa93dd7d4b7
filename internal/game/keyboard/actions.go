package keyboard

// Type says how the action of a mapping is interpreted.
type Type uint8

const (
	TypeNone Type = iota
	TypeSkill
	TypeItem
	TypeFace
	TypeMenu
	TypeAction
	TypeMacro
)

// Action identifies a menu or game action. Equipment is zero,
// which matters when deciding whether a binding counts as assigned.
type Action int32

const (
	Equipment Action = iota
	Items
	Stats
	Skills
	Friends
	WorldMap
	Chat
	MiniMap
	QuestLog
	KeyBindings
	Say
	Whisper
	PartyChat
	FriendsChat
	Menu
	QuickSlots
	ToggleChat
	Guild
	GuildChat
	Party
	Notifier
	News
	CashShop
	AllianceChat
	ManageLegion
	Medals
	BossParty
	Profession
	ItemPot
	EventList
	BattleAnalysis
	Guide
	EnhanceEquip
	MonsterCollection
	CharInfo
	ChangeChannel
	MainMenu
	Screenshot
	PictureMode
	Achievement
	PickUp
	Sit
	Attack
	Jump
	Interact
	Face1
	Face2
	Face3
	Face4
	Face5
	Face6
	Face7
	MonsterBook
	ToSpouse
	Mute
	numActions
)

var actionNames = [numActions]string{
	Equipment: "Equip", Items: "Items", Stats: "Stats", Skills: "Skills",
	Friends: "Friends", WorldMap: "World", Chat: "Chat", MiniMap: "Mini",
	QuestLog: "Quest", KeyBindings: "Keys", Say: "Say", Whisper: "Whsp",
	PartyChat: "PtyC", FriendsChat: "FrdC", Menu: "Menu", QuickSlots: "Quick",
	ToggleChat: "TglC", Guild: "Guild", GuildChat: "GldC", Party: "Party",
	Notifier: "Note", News: "News", CashShop: "Cash", AllianceChat: "AllC",
	ManageLegion: "Legn", Medals: "Medal", BossParty: "Boss", Profession: "Prof",
	ItemPot: "Pot", EventList: "Event", BattleAnalysis: "Batl", Guide: "Guide",
	EnhanceEquip: "Enh", MonsterCollection: "MCol", CharInfo: "Info",
	ChangeChannel: "Chan", MainMenu: "Main", Screenshot: "Shot",
	PictureMode: "Pic", Achievement: "Achv", PickUp: "Pick", Sit: "Sit",
	Attack: "Atk", Jump: "Jump", Interact: "Intr",
	Face1: "F1", Face2: "F2", Face3: "F3", Face4: "F4", Face5: "F5", Face6: "F6", Face7: "F7",
	MonsterBook: "MBook", ToSpouse: "Spse", Mute: "Mute",
}

func (a Action) String() string {
	if a >= 0 && a < numActions {
		return actionNames[a]
	}
	return "?"
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	return a >= 0 && a < numActions
}

// Actions returns every known action in id order.
func Actions() []Action {
	out := make([]Action, 0, numActions)
	for a := Action(0); a < numActions; a++ {
		out = append(out, a)
	}
	return out
}

// TypeOf returns the mapping type an action is bound with.
func TypeOf(a Action) Type {
	switch {
	case a >= Face1 && a <= Face7:
		return TypeFace
	case a == PickUp || a == Sit || a == Attack || a == Jump || a == Interact:
		return TypeAction
	default:
		return TypeMenu
	}
}
