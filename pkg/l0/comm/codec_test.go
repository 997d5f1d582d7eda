package comm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/cmdlink/pkg/l0/comm/cobs"
)

var (
	testCommands = []Command{
		Set{ID: 0x12, Message: MsgB{Value: 12}, DeviceID: 0x01},
		Set{ID: 0x13, Message: MsgC{Value: 3.14}, DeviceID: 0x02},
		Set{ID: 0, Message: MsgA{}, DeviceID: 0},
		Set{ID: 0xffffffff, Message: MsgB{Value: 0xffffffff}, DeviceID: 0xffffffff},
		Get{ID: 0x12, Parameter: 12, DeviceID: 0x01},
		Get{},
	}
	testResponses = []Response{
		Data{ID: 0x12, Parameter: 12, Value: 12, DeviceID: 0x01},
		Data{ID: 0xffffffff, Parameter: 0xffffffff, Value: 0xffffffff, DeviceID: 0xffffffff},
		Data{},
		SetOK{},
		ParseError{},
	}
)

// rawFrame COBS encodes payload as is.
func rawFrame(t *testing.T, payload []byte) []byte {
	out := make([]byte, cobs.MaxEncodedLen(len(payload)))
	n, err := cobs.Encode(out, payload)
	require.NoError(t, err)
	out[n] = Sentinel
	return out[:n+1]
}

func withChecksum(p []byte) []byte {
	return le.AppendUint32(append([]byte(nil), p...), Checksum(p))
}

func TestSerialize(t *testing.T) {
	cases := []struct {
		v   Value
		out []byte
	}{
		{
			Set{ID: 0x12, Message: MsgB{Value: 12}, DeviceID: 0x01},
			[]byte{0, 0x12, 0, 0, 0, 1, 12, 0, 0, 0, 1, 0, 0, 0},
		},
		{
			Set{ID: 0x14, Message: MsgA{}, DeviceID: 0x02},
			[]byte{0, 0x14, 0, 0, 0, 0, 2, 0, 0, 0},
		},
		{
			Set{ID: 1, Message: MsgC{Value: 1}, DeviceID: 1},
			[]byte{0, 1, 0, 0, 0, 2, 0, 0, 0x80, 0x3f, 1, 0, 0, 0},
		},
		{
			Get{ID: 0x12, Parameter: 12, DeviceID: 0x01},
			[]byte{1, 0x12, 0, 0, 0, 12, 0, 0, 0, 1, 0, 0, 0},
		},
		{
			Data{ID: 1, Parameter: 2, Value: 3, DeviceID: 4},
			[]byte{0, 1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 4, 0, 0, 0},
		},
		{SetOK{}, []byte{1}},
		{ParseError{}, []byte{2}},
	}
	for _, c := range cases {
		t.Run(c.v.String(), func(t *testing.T) {
			out, err := c.v.AppendBinary(nil)
			require.NoError(t, err)
			require.Equal(t, c.out, out)
		})
	}
}

func TestFrameSizes(t *testing.T) {
	require.Equal(t, cobs.MaxEncodedLen(MaxCommandSize+ChecksumSize), CommandFrameSize)
	require.Equal(t, cobs.MaxEncodedLen(MaxResponseSize+ChecksumSize), ResponseFrameSize)
	require.Equal(t, 20, CommandFrameSize)
	require.Equal(t, 23, ResponseFrameSize)
}

func TestCommandRoundTrip(t *testing.T) {
	var buf [CommandFrameSize]byte
	for _, cmd := range testCommands {
		t.Run(cmd.String(), func(t *testing.T) {
			frame, err := Encode(cmd, buf[:])
			require.NoError(t, err)
			require.Equal(t, len(frame)-1, bytes.IndexByte(frame, Sentinel))
			decoded, err := DecodeCommand(frame)
			require.NoError(t, err)
			require.Equal(t, cmd, decoded)
		})
	}
}

func TestResponseRoundTrip(t *testing.T) {
	var buf [ResponseFrameSize]byte
	for _, rsp := range testResponses {
		t.Run(rsp.String(), func(t *testing.T) {
			frame, err := Encode(rsp, buf[:])
			require.NoError(t, err)
			require.Equal(t, len(frame)-1, bytes.IndexByte(frame, Sentinel))
			decoded, err := DecodeResponse(frame)
			require.NoError(t, err)
			require.Equal(t, rsp, decoded)
		})
	}
}

func TestDecodeWithoutSentinel(t *testing.T) {
	var buf [ResponseFrameSize]byte
	frame, err := Encode(SetOK{}, buf[:])
	require.NoError(t, err)
	rsp, err := DecodeResponse(frame[:len(frame)-1])
	require.NoError(t, err)
	require.Equal(t, SetOK{}, rsp)
}

func TestEncodeShortBuffer(t *testing.T) {
	var buf [CommandFrameSize - 1]byte
	_, err := Encode(Set{ID: 1, Message: MsgB{Value: 1}, DeviceID: 1}, buf[:])
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrSerialization))

	_, err = Encode(Set{ID: 1}, make([]byte, CommandFrameSize))
	require.True(t, errors.Is(err, ErrSerialization))

	_, err = Encode(nil, make([]byte, CommandFrameSize))
	require.True(t, errors.Is(err, ErrSerialization))
}

func TestBitFlip(t *testing.T) {
	values := make([]Value, 0, len(testCommands)+len(testResponses))
	for _, cmd := range testCommands {
		values = append(values, cmd)
	}
	for _, rsp := range testResponses {
		values = append(values, rsp)
	}
	var buf [ResponseFrameSize]byte
	for _, v := range values {
		frame, err := Encode(v, buf[:])
		require.NoError(t, err)
		for i := 0; i < len(frame)-1; i++ {
			for bit := uint(0); bit < 8; bit++ {
				corrupted := append([]byte(nil), frame...)
				corrupted[i] ^= 1 << bit
				var err error
				if _, ok := v.(Command); ok {
					_, err = DecodeCommand(corrupted)
				} else {
					_, err = DecodeResponse(corrupted)
				}
				require.Errorf(t, err, "%v: byte %d bit %d", v, i, bit)
				require.Truef(t, errors.Is(err, ErrFrame) || errors.Is(err, ErrCrcMismatch),
					"%v: byte %d bit %d: %v", v, i, bit, err)
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	frameOf := func(payload []byte) []byte { return rawFrame(t, payload) }
	cases := []struct {
		name  string
		frame []byte
		kind  error
	}{
		{"empty", []byte{Sentinel}, ErrFrame},
		{"zero in body", []byte{0x03, 0x00, 0x01, Sentinel}, ErrFrame},
		{"truncated block", []byte{0x05, 0x01, Sentinel}, ErrFrame},
		{"unknown command", frameOf(withChecksum([]byte{7})), ErrFrame},
		{"unknown message", frameOf(withChecksum([]byte{0, 1, 0, 0, 0, 9, 1, 0, 0, 0})), ErrFrame},
		{"truncated value", frameOf(withChecksum([]byte{1, 1, 0, 0})), ErrFrame},
		{"missing checksum", frameOf([]byte{1, 1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}), ErrFrame},
		{"trailing bytes", frameOf(append(withChecksum([]byte{1, 1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}), 1)), ErrFrame},
		{"bad checksum", frameOf(append([]byte{1, 1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}, 1, 2, 3, 4)), ErrCrcMismatch},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := DecodeCommand(c.frame)
			require.Error(t, err)
			require.Truef(t, errors.Is(err, c.kind), "unexpected %v", err)
			var de *DecodeError
			require.True(t, errors.As(err, &de))
		})
	}
}
