package network

import (
	"context"
	"net"
	"strconv"

	"github.com/Faultbox/midgard-ui/internal/network/packets"
)

// Session is the game-facing side of the connection: one method per
// request the client can make.
type Session struct {
	client *Client
}

// NewSession wraps a client.
func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// Client returns the underlying connection.
func (s *Session) Client() *Client { return s.client }

func (s *Session) Login(account, password string) error {
	return s.client.Send(packets.LoginPacket(account, password))
}

func (s *Session) AcceptTOS() error {
	return s.client.Send(packets.AcceptTOSPacket())
}

func (s *Session) RequestServerList() error {
	return s.client.Send(packets.ServerlistRequestPacket())
}

func (s *Session) RequestCharlist(world, channel int8) error {
	return s.client.Send(packets.CharlistRequestPacket(world, channel))
}

func (s *Session) SelectChar(cid int32) error {
	return s.client.Send(packets.SelectCharPacket(cid))
}

func (s *Session) CheckName(name string) error {
	return s.client.Send(packets.NameCharPacket(name))
}

func (s *Session) CreateChar(name string, job int32, female bool) error {
	return s.client.Send(packets.CreateCharPacket(name, job, female))
}

func (s *Session) DeleteChar(pic string, cid int32) error {
	return s.client.Send(packets.DeleteCharPacket(pic, cid))
}

func (s *Session) Chat(text string) error {
	return s.client.Send(packets.GeneralChatPacket(text))
}

// Transfer moves the session to the channel server at ip:port and logs the
// character in.
func (s *Session) Transfer(ctx context.Context, ip net.IP, port uint16, cid int32) error {
	addr := net.JoinHostPort(ip.String(), strconv.Itoa(int(port)))
	if err := s.client.Reconnect(ctx, addr); err != nil {
		return err
	}
	return s.client.Send(packets.PlayerLoginPacket(cid))
}
