// Package packets defines the login and channel server wire format.
//
// Every packet on the wire is a little-endian uint16 length followed by the
// body. The body starts with a uint16 opcode. Strings are a uint16 byte
// count followed by EUC-KR text.
package packets

// Opcodes sent by the server.
const (
	LoginResult       uint16 = 0x0000
	Serverlist        uint16 = 0x000A
	Charlist          uint16 = 0x000B
	ServerIP          uint16 = 0x000C
	CharnameResponse  uint16 = 0x000D
	AddNewCharEntry   uint16 = 0x000E
	DeleteCharResult  uint16 = 0x000F
	RecommendedWorlds uint16 = 0x001B
	ChatMessage       uint16 = 0x00A2
)

// Opcodes sent by the client.
const (
	Login             uint16 = 0x0001
	CharlistRequest   uint16 = 0x0005
	AcceptTOS         uint16 = 0x0007
	ServerlistRequest uint16 = 0x000B
	SelectChar        uint16 = 0x0013
	PlayerLogin       uint16 = 0x0014
	NameChar          uint16 = 0x0015
	CreateChar        uint16 = 0x0016
	DeleteChar        uint16 = 0x0017
	GeneralChat       uint16 = 0x0031
)

// HeaderSize is the size of the length prefix.
const HeaderSize = 2

// MaxPacketSize bounds the body length accepted from the network.
const MaxPacketSize = 0xFFFF
