package packets

// Account is the account record sent with a successful login.
type Account struct {
	ID     int32
	Female bool
	Admin  bool
	Name   string
	Muted  bool
	// PIC is the secondary password state: 0 register, 1 ask, 2 disabled.
	PIC int8
}

// Channel is one channel of a world.
type Channel struct {
	Name string
	Load int32
}

// World is a serverlist entry. The entry with ID -1 ends the list.
type World struct {
	ID       int8
	Name     string
	Flag     int8
	Message  string
	Channels []Channel
}

// Population returns the summed load of every channel.
func (w World) Population() int64 {
	var n int64
	for _, ch := range w.Channels {
		n += int64(ch.Load)
	}
	return n
}

// RecommendedWorld is a world highlighted by the server.
type RecommendedWorld struct {
	ID      int32
	Message string
}

// CharStats are the displayed statistics of a character.
type CharStats struct {
	Name   string
	Female bool
	Level  uint8
	Job    int16
	Str    int16
	Dex    int16
	Int    int16
	Luk    int16
	HP     int16
	MaxHP  int16
	MP     int16
	MaxMP  int16
	AP     int16
	SP     int16
	EXP    int32
	Fame   int16
	MapID  int32
	Portal int8
}

// CharEntry is a character of the account.
type CharEntry struct {
	ID    int32
	Stats CharStats
}

// ChatLine is a chat message relayed by the server.
type ChatLine struct {
	CharID int32
	GM     bool
	Text   string
}

// ParseAccount reads the account record of a successful login.
func ParseAccount(p *InPacket) (Account, error) {
	var a Account
	a.ID = p.ReadInt32()
	a.Female = p.ReadBool()
	a.Admin = p.ReadBool()
	a.Name = p.ReadString()
	a.Muted = p.ReadBool()
	a.PIC = p.ReadInt8()
	return a, p.Err()
}

// ParseWorld reads one serverlist entry. Only the ID is read for the
// terminating entry.
func ParseWorld(p *InPacket) (World, error) {
	var w World
	w.ID = p.ReadInt8()
	if w.ID == -1 {
		return w, p.Err()
	}
	w.Name = p.ReadString()
	w.Flag = p.ReadInt8()
	w.Message = p.ReadString()
	// exp and drop rates
	p.Skip(5)

	count := int(uint8(p.ReadInt8()))
	for i := 0; i < count && p.Err() == nil; i++ {
		var ch Channel
		ch.Name = p.ReadString()
		ch.Load = p.ReadInt32()
		p.Skip(3)
		w.Channels = append(w.Channels, ch)
	}
	p.Skip(2)
	return w, p.Err()
}

// ParseRecommendedWorld reads one recommended world entry.
func ParseRecommendedWorld(p *InPacket) (RecommendedWorld, error) {
	var w RecommendedWorld
	w.ID = p.ReadInt32()
	w.Message = p.ReadString()
	return w, p.Err()
}

// ParseCharEntry reads one character of a character list.
func ParseCharEntry(p *InPacket) (CharEntry, error) {
	var c CharEntry
	c.ID = p.ReadInt32()

	s := &c.Stats
	s.Name = p.ReadPaddedString(13)
	s.Female = p.ReadBool()
	s.Level = uint8(p.ReadInt8())
	s.Job = p.ReadInt16()
	s.Str = p.ReadInt16()
	s.Dex = p.ReadInt16()
	s.Int = p.ReadInt16()
	s.Luk = p.ReadInt16()
	s.HP = p.ReadInt16()
	s.MaxHP = p.ReadInt16()
	s.MP = p.ReadInt16()
	s.MaxMP = p.ReadInt16()
	s.AP = p.ReadInt16()
	s.SP = p.ReadInt16()
	s.EXP = p.ReadInt32()
	s.Fame = p.ReadInt16()
	s.MapID = p.ReadInt32()
	s.Portal = p.ReadInt8()
	return c, p.Err()
}

// ParseChatLine reads a relayed chat message.
func ParseChatLine(p *InPacket) (ChatLine, error) {
	var l ChatLine
	l.CharID = p.ReadInt32()
	l.GM = p.ReadBool()
	l.Text = p.ReadString()
	return l, p.Err()
}

// LoginPacket requests a login with account name and password.
func LoginPacket(account, password string) *OutPacket {
	return NewOutPacket(Login).
		WriteString(account).
		WriteString(password).
		Skip(6)
}

// AcceptTOSPacket accepts the terms of service.
func AcceptTOSPacket() *OutPacket {
	return NewOutPacket(AcceptTOS).WriteBool(true)
}

// ServerlistRequestPacket asks for the list of worlds.
func ServerlistRequestPacket() *OutPacket {
	return NewOutPacket(ServerlistRequest)
}

// CharlistRequestPacket asks for the characters on a world and channel.
func CharlistRequestPacket(world, channel int8) *OutPacket {
	return NewOutPacket(CharlistRequest).
		WriteInt8(2).
		WriteInt8(world).
		WriteInt8(channel)
}

// SelectCharPacket picks the character to play.
func SelectCharPacket(cid int32) *OutPacket {
	return NewOutPacket(SelectChar).WriteInt32(cid)
}

// PlayerLoginPacket enters the channel server after a server transfer.
func PlayerLoginPacket(cid int32) *OutPacket {
	return NewOutPacket(PlayerLogin).WriteInt32(cid)
}

// NameCharPacket checks whether a character name is free.
func NameCharPacket(name string) *OutPacket {
	return NewOutPacket(NameChar).WriteString(name)
}

// CreateCharPacket creates a character.
func CreateCharPacket(name string, job int32, female bool) *OutPacket {
	return NewOutPacket(CreateChar).
		WriteString(name).
		WriteInt32(job).
		WriteBool(female)
}

// DeleteCharPacket deletes a character, authorized by the PIC.
func DeleteCharPacket(pic string, cid int32) *OutPacket {
	return NewOutPacket(DeleteChar).
		WriteString(pic).
		WriteInt32(cid)
}

// GeneralChatPacket sends a chat line to the map.
func GeneralChatPacket(text string) *OutPacket {
	return NewOutPacket(GeneralChat).
		WriteString(text).
		WriteBool(true)
}
