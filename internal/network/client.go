// Package network handles the connection to the login and channel servers.
package network

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ui/internal/logger"
	"github.com/Faultbox/midgard-ui/internal/network/packets"
)

var (
	ErrNotConnected     = errors.New("not connected")
	ErrAlreadyConnected = errors.New("already connected")
)

// PacketHandler handles the body of one incoming packet, opcode excluded.
// Handlers run on the read goroutine.
type PacketHandler func(data []byte) error

// Client is a framed TCP connection. Incoming packets are read on a
// dedicated goroutine and dispatched to the handler registered for their
// opcode.
type Client struct {
	mu       sync.Mutex
	conn     net.Conn
	handlers map[uint16]PacketHandler

	timeout time.Duration
	errs    chan error
	log     *zap.Logger
}

// New creates a client. timeout bounds each connection attempt.
func New(timeout time.Duration) *Client {
	return &Client{
		handlers: make(map[uint16]PacketHandler),
		timeout:  timeout,
		errs:     make(chan error, 1),
		log:      logger.Named("network"),
	}
}

// RegisterHandler registers the handler for an opcode.
func (c *Client) RegisterHandler(opcode uint16, handler PacketHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[opcode] = handler
}

// Connect dials addr and starts reading.
func (c *Client) Connect(ctx context.Context, addr string) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}

	if err := c.Attach(conn); err != nil {
		conn.Close()
		return err
	}
	c.log.Info("connected", zap.String("addr", addr))
	return nil
}

// Attach starts reading from an established connection.
func (c *Client) Attach(conn net.Conn) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return ErrAlreadyConnected
	}
	c.conn = conn
	go c.readLoop(conn)
	return nil
}

// Reconnect drops the current connection and dials addr.
func (c *Client) Reconnect(ctx context.Context, addr string) error {
	c.Disconnect()
	return c.Connect(ctx, addr)
}

// Disconnect closes the connection. Closing on purpose is not reported on
// the error channel.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// IsConnected returns connection status.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Errors delivers the error that ended the connection. Only the latest
// unread error is kept.
func (c *Client) Errors() <-chan error {
	return c.errs
}

// Send frames and writes a packet.
func (c *Client) Send(p *packets.OutPacket) error {
	body := p.Bytes()
	if len(body) > packets.MaxPacketSize {
		return fmt.Errorf("packet %#04x: body of %d bytes too large", p.Opcode(), len(body))
	}

	frame := make([]byte, packets.HeaderSize, packets.HeaderSize+len(body))
	binary.LittleEndian.PutUint16(frame, uint16(len(body)))
	frame = append(frame, body...)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}
	if _, err := c.conn.Write(frame); err != nil {
		return fmt.Errorf("sending packet %#04x: %w", p.Opcode(), err)
	}
	return nil
}

func (c *Client) readLoop(conn net.Conn) {
	header := make([]byte, packets.HeaderSize)
	for {
		if _, err := io.ReadFull(conn, header); err != nil {
			c.fail(conn, err)
			return
		}
		size := int(binary.LittleEndian.Uint16(header))
		if size < 2 {
			c.fail(conn, fmt.Errorf("packet of %d bytes has no opcode", size))
			return
		}

		data := make([]byte, size)
		if _, err := io.ReadFull(conn, data); err != nil {
			c.fail(conn, err)
			return
		}
		c.dispatch(binary.LittleEndian.Uint16(data), data[2:])

		// A handler may have moved us to another server.
		if !c.current(conn) {
			return
		}
	}
}

func (c *Client) dispatch(opcode uint16, data []byte) {
	c.mu.Lock()
	handler := c.handlers[opcode]
	c.mu.Unlock()

	if handler == nil {
		c.log.Debug("unhandled packet", zap.Uint16("opcode", opcode), zap.Int("size", len(data)))
		return
	}
	if err := handler(data); err != nil {
		c.log.Warn("dropping malformed packet", zap.Uint16("opcode", opcode), zap.Error(err))
	}
}

func (c *Client) current(conn net.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn == conn
}

// fail ends a connection that broke while it was still current.
func (c *Client) fail(conn net.Conn, err error) {
	c.mu.Lock()
	if c.conn != conn {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.mu.Unlock()

	conn.Close()
	c.log.Warn("connection lost", zap.Error(err))

	select {
	case <-c.errs:
	default:
	}
	c.errs <- fmt.Errorf("connection lost: %w", err)
}
