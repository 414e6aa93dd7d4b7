package packets

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-ui/pkg/encoding"
)

// ErrShortPacket is returned when a read runs past the end of a packet.
var ErrShortPacket = errors.New("packet too short")

// InPacket reads fields from a received packet body. The first failed read
// is remembered; later reads return zero values and Err reports the
// failure.
type InPacket struct {
	data []byte
	pos  int
	err  error
}

// NewInPacket wraps a packet body, opcode excluded.
func NewInPacket(data []byte) *InPacket {
	return &InPacket{data: data}
}

// Err returns the first read error.
func (p *InPacket) Err() error { return p.err }

// Available reports whether unread bytes remain.
func (p *InPacket) Available() bool {
	return p.err == nil && p.pos < len(p.data)
}

// Remaining returns the number of unread bytes.
func (p *InPacket) Remaining() int {
	return len(p.data) - p.pos
}

func (p *InPacket) take(n int) []byte {
	if p.err != nil {
		return nil
	}
	if n < 0 || p.pos+n > len(p.data) {
		p.err = fmt.Errorf("reading %d bytes at offset %d of %d: %w", n, p.pos, len(p.data), ErrShortPacket)
		return nil
	}
	b := p.data[p.pos : p.pos+n]
	p.pos += n
	return b
}

// Skip advances over n bytes.
func (p *InPacket) Skip(n int) {
	p.take(n)
}

// ReadInt8 reads a signed byte.
func (p *InPacket) ReadInt8() int8 {
	b := p.take(1)
	if b == nil {
		return 0
	}
	return int8(b[0])
}

// ReadBool reads a byte as a boolean.
func (p *InPacket) ReadBool() bool {
	return p.ReadInt8() != 0
}

// ReadInt16 reads a little-endian int16.
func (p *InPacket) ReadInt16() int16 {
	b := p.take(2)
	if b == nil {
		return 0
	}
	return int16(binary.LittleEndian.Uint16(b))
}

// ReadInt32 reads a little-endian int32.
func (p *InPacket) ReadInt32() int32 {
	b := p.take(4)
	if b == nil {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

// ReadInt64 reads a little-endian int64.
func (p *InPacket) ReadInt64() int64 {
	b := p.take(8)
	if b == nil {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(b))
}

// ReadString reads a length-prefixed EUC-KR string.
func (p *InPacket) ReadString() string {
	n := int(uint16(p.ReadInt16()))
	b := p.take(n)
	if b == nil {
		return ""
	}
	return encoding.Decode(b)
}

// ReadPaddedString reads a fixed-size, null padded EUC-KR string.
func (p *InPacket) ReadPaddedString(size int) string {
	b := p.take(size)
	if b == nil {
		return ""
	}
	return encoding.DecodeFixed(b)
}
