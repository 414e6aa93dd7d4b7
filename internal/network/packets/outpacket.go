package packets

import (
	"encoding/binary"

	"github.com/Faultbox/midgard-ui/pkg/encoding"
)

// OutPacket builds a packet body. The length header is added by the
// connection when the packet is sent.
type OutPacket struct {
	buf []byte
}

// NewOutPacket starts a packet with the given opcode.
func NewOutPacket(opcode uint16) *OutPacket {
	p := &OutPacket{buf: make([]byte, 0, 32)}
	return p.WriteInt16(int16(opcode))
}

// Opcode returns the opcode the packet was started with.
func (p *OutPacket) Opcode() uint16 {
	return binary.LittleEndian.Uint16(p.buf)
}

// Bytes returns the body, opcode included.
func (p *OutPacket) Bytes() []byte { return p.buf }

// WriteInt8 appends a byte.
func (p *OutPacket) WriteInt8(v int8) *OutPacket {
	p.buf = append(p.buf, byte(v))
	return p
}

// WriteBool appends a boolean as one byte.
func (p *OutPacket) WriteBool(v bool) *OutPacket {
	if v {
		return p.WriteInt8(1)
	}
	return p.WriteInt8(0)
}

// WriteInt16 appends a little-endian int16.
func (p *OutPacket) WriteInt16(v int16) *OutPacket {
	p.buf = binary.LittleEndian.AppendUint16(p.buf, uint16(v))
	return p
}

// WriteInt32 appends a little-endian int32.
func (p *OutPacket) WriteInt32(v int32) *OutPacket {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, uint32(v))
	return p
}

// WriteString appends a length-prefixed EUC-KR string.
func (p *OutPacket) WriteString(s string) *OutPacket {
	b := encoding.Encode(s)
	p.WriteInt16(int16(len(b)))
	p.buf = append(p.buf, b...)
	return p
}

// Skip appends n zero bytes.
func (p *OutPacket) Skip(n int) *OutPacket {
	p.buf = append(p.buf, make([]byte, n)...)
	return p
}
