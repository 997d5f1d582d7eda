// Package websocket carries L1 packets as binary WebSocket messages.
package websocket

import (
	"golang.org/x/net/websocket"

	"github.com/robotalks/cmdlink/pkg/l1/comm/stream"
)

// ReadWriter implements PacketReadWriter, one packet per binary message.
type ReadWriter struct {
	Conn *websocket.Conn
}

// New wraps conn, limiting received messages to stream.MaxPacketSize.
func New(conn *websocket.Conn) *ReadWriter {
	conn.PayloadType = websocket.BinaryFrame
	conn.MaxPayloadBytes = stream.MaxPacketSize
	return &ReadWriter{Conn: conn}
}

// RemoteAddr returns the address of the peer for logging.
func (p *ReadWriter) RemoteAddr() string {
	if req := p.Conn.Request(); req != nil {
		return req.RemoteAddr
	}
	return p.Conn.RemoteAddr().String()
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	var pkt []byte
	if err := websocket.Message.Receive(p.Conn, &pkt); err != nil {
		return nil, err
	}
	return pkt, nil
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	return websocket.Message.Send(p.Conn, pkt)
}

// Close implements io.Closer.
func (p *ReadWriter) Close() error {
	return p.Conn.Close()
}
