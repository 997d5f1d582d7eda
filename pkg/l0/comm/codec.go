package comm

import (
	"fmt"

	"github.com/robotalks/cmdlink/pkg/l0/comm/cobs"
)

// BaudRate of the serial link, fixed on both ends.
const BaudRate = 115200

// Sentinel terminates every frame.
const Sentinel = cobs.Sentinel

// maxPayload is the largest serialized value plus checksum.
const maxPayload = MaxResponseSize + ChecksumSize

// Encode serializes v with its checksum and COBS encodes the result into
// out, followed by the sentinel. The returned frame is a slice of out.
func Encode(v Value, out []byte) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil value", ErrSerialization)
	}
	var scratch [maxPayload]byte
	payload, err := v.AppendBinary(scratch[:0])
	if err != nil {
		return nil, err
	}
	payload = le.AppendUint32(payload, Checksum(payload))
	if need := cobs.MaxEncodedLen(len(payload)); need > len(out) {
		return nil, fmt.Errorf("%w: %v needs %d bytes, buffer has %d", ErrSerialization, v, need, len(out))
	}
	n, err := cobs.Encode(out, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	out[n] = Sentinel
	return out[:n+1], nil
}

// DecodeCommand decodes a frame in place as a Command.
func DecodeCommand(in []byte) (Command, error) {
	var c Command
	err := decode(in, func(r *reader) { c = r.command() })
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeResponse decodes a frame in place as a Response.
func DecodeResponse(in []byte) (Response, error) {
	var rsp Response
	err := decode(in, func(r *reader) { rsp = r.response() })
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

func decode(in []byte, read func(*reader)) error {
	if l := len(in); l > 0 && in[l-1] == Sentinel {
		in = in[:l-1]
	}
	n, err := cobs.Decode(in)
	if err != nil {
		return &DecodeError{Kind: ErrFrame, Err: err}
	}
	r := &reader{p: in[:n]}
	read(r)
	if r.err != nil {
		return &DecodeError{Kind: ErrFrame, Err: r.err}
	}
	if n-r.off != ChecksumSize {
		return &DecodeError{Kind: ErrFrame, Err: fmt.Errorf("%d bytes after value, want %d", n-r.off, ChecksumSize)}
	}
	if want, got := le.Uint32(in[r.off:n]), Checksum(in[:r.off]); want != got {
		return &DecodeError{Kind: ErrCrcMismatch, Err: fmt.Errorf("got 0x%08x, want 0x%08x", got, want)}
	}
	return nil
}
