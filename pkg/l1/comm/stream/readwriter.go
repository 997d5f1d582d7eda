// Package stream carries L1 packets over a byte stream, e.g. TCP.
package stream

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxPacketSize limits the size of a received packet.
const MaxPacketSize = 4096

// ReadWriter implements PacketReadWriter.
// Each packet is prefixed by 4-byte (little-endian) indicate the length.
type ReadWriter struct {
	io.ReadWriter
}

// New creates a ReadWriter with io.ReadWriter.
func New(s io.ReadWriter) *ReadWriter {
	return &ReadWriter{s}
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(p, hdr[:]); err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint32(hdr[:])
	if size > MaxPacketSize {
		return nil, fmt.Errorf("packet size %d exceeds %d", size, MaxPacketSize)
	}
	pkt := make([]byte, size)
	if _, err := io.ReadFull(p, pkt); err != nil {
		return nil, err
	}
	return pkt, nil
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	buf := make([]byte, 4, 4+len(pkt))
	binary.LittleEndian.PutUint32(buf, uint32(len(pkt)))
	_, err := p.Write(append(buf, pkt...))
	return err
}

// Close closes the underlying stream if possible.
func (p *ReadWriter) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
