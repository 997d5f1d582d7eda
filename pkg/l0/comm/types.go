package comm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Value is a protocol value which can be carried in a frame.
type Value interface {
	// AppendBinary appends the serialized form to b.
	AppendBinary(b []byte) ([]byte, error)
	String() string
}

// Command is sent from host to device. It's one of Set, Get.
type Command interface {
	Value
	isCommand()
}

// Message is the payload of Set. It's one of MsgA, MsgB, MsgC.
type Message interface {
	Value
	isMessage()
}

// Response is sent from device to host. It's one of Data, SetOK, ParseError.
type Response interface {
	Value
	isResponse()
}

// Variant discriminants, in declaration order.
const (
	tagSet byte = iota
	tagGet
)

const (
	tagMsgA byte = iota
	tagMsgB
	tagMsgC
)

const (
	tagData byte = iota
	tagSetOK
	tagParseError
)

// Maximum serialized sizes.
const (
	MaxCommandSize  = 1 + 4 + (1 + 4) + 4 // Set
	MaxResponseSize = 1 + 4 + 4 + 4 + 4   // Data
	ChecksumSize    = 4
)

// Receive buffer capacities: worst-case COBS encoding of the largest value
// plus checksum, including the sentinel.
const (
	CommandFrameSize  = MaxCommandSize + ChecksumSize + (MaxCommandSize+ChecksumSize)/254 + 2
	ResponseFrameSize = MaxResponseSize + ChecksumSize + (MaxResponseSize+ChecksumSize)/254 + 2
)

// Set writes Message to parameter ID on device DeviceID.
type Set struct {
	ID       uint32
	Message  Message
	DeviceID uint32
}

// Get reads Parameter of ID on device DeviceID.
type Get struct {
	ID        uint32
	Parameter uint32
	DeviceID  uint32
}

// MsgA carries no payload.
type MsgA struct{}

// MsgB carries an unsigned integer.
type MsgB struct {
	Value uint32
}

// MsgC carries a float.
type MsgC struct {
	Value float32
}

// Data answers Get.
type Data struct {
	ID        uint32
	Parameter uint32
	Value     uint32
	DeviceID  uint32
}

// SetOK answers Set.
type SetOK struct{}

// ParseError is replied when a frame can't be decoded.
type ParseError struct{}

func (Set) isCommand()         {}
func (Get) isCommand()         {}
func (MsgA) isMessage()        {}
func (MsgB) isMessage()        {}
func (MsgC) isMessage()        {}
func (Data) isResponse()       {}
func (SetOK) isResponse()      {}
func (ParseError) isResponse() {}

var le = binary.LittleEndian

// AppendBinary implements Value.
func (c Set) AppendBinary(b []byte) ([]byte, error) {
	if c.Message == nil {
		return b, fmt.Errorf("%w: set without message", ErrSerialization)
	}
	b = le.AppendUint32(append(b, tagSet), c.ID)
	b, err := c.Message.AppendBinary(b)
	if err != nil {
		return b, err
	}
	return le.AppendUint32(b, c.DeviceID), nil
}

// AppendBinary implements Value.
func (c Get) AppendBinary(b []byte) ([]byte, error) {
	b = le.AppendUint32(append(b, tagGet), c.ID)
	b = le.AppendUint32(b, c.Parameter)
	return le.AppendUint32(b, c.DeviceID), nil
}

// AppendBinary implements Value.
func (MsgA) AppendBinary(b []byte) ([]byte, error) {
	return append(b, tagMsgA), nil
}

// AppendBinary implements Value.
func (m MsgB) AppendBinary(b []byte) ([]byte, error) {
	return le.AppendUint32(append(b, tagMsgB), m.Value), nil
}

// AppendBinary implements Value.
func (m MsgC) AppendBinary(b []byte) ([]byte, error) {
	return le.AppendUint32(append(b, tagMsgC), math.Float32bits(m.Value)), nil
}

// AppendBinary implements Value.
func (r Data) AppendBinary(b []byte) ([]byte, error) {
	b = le.AppendUint32(append(b, tagData), r.ID)
	b = le.AppendUint32(b, r.Parameter)
	b = le.AppendUint32(b, r.Value)
	return le.AppendUint32(b, r.DeviceID), nil
}

// AppendBinary implements Value.
func (SetOK) AppendBinary(b []byte) ([]byte, error) {
	return append(b, tagSetOK), nil
}

// AppendBinary implements Value.
func (ParseError) AppendBinary(b []byte) ([]byte, error) {
	return append(b, tagParseError), nil
}

func (c Set) String() string {
	return fmt.Sprintf("Set(0x%x, %v, %d)", c.ID, c.Message, c.DeviceID)
}

func (c Get) String() string {
	return fmt.Sprintf("Get(0x%x, %d, %d)", c.ID, c.Parameter, c.DeviceID)
}

func (MsgA) String() string       { return "A" }
func (m MsgB) String() string     { return fmt.Sprintf("B(%d)", m.Value) }
func (m MsgC) String() string     { return fmt.Sprintf("C(%g)", m.Value) }
func (SetOK) String() string      { return "SetOk" }
func (ParseError) String() string { return "ParseError" }

func (r Data) String() string {
	return fmt.Sprintf("Data(0x%x, %d, %d, %d)", r.ID, r.Parameter, r.Value, r.DeviceID)
}

var errTruncated = errors.New("truncated")

// reader consumes serialized fields. The first failure sticks.
type reader struct {
	p   []byte
	off int
	err error
}

func (r *reader) u8() byte {
	if r.err != nil {
		return 0
	}
	if r.off >= len(r.p) {
		r.err = errTruncated
		return 0
	}
	b := r.p[r.off]
	r.off++
	return b
}

func (r *reader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	if r.off+4 > len(r.p) {
		r.err = errTruncated
		return 0
	}
	v := le.Uint32(r.p[r.off:])
	r.off += 4
	return v
}

func (r *reader) fail(what string, tag byte) {
	if r.err == nil {
		r.err = fmt.Errorf("unknown %s variant %d", what, tag)
	}
}

func (r *reader) command() Command {
	switch tag := r.u8(); tag {
	case tagSet:
		return Set{ID: r.u32(), Message: r.message(), DeviceID: r.u32()}
	case tagGet:
		return Get{ID: r.u32(), Parameter: r.u32(), DeviceID: r.u32()}
	default:
		r.fail("command", tag)
		return nil
	}
}

func (r *reader) message() Message {
	switch tag := r.u8(); tag {
	case tagMsgA:
		return MsgA{}
	case tagMsgB:
		return MsgB{Value: r.u32()}
	case tagMsgC:
		return MsgC{Value: math.Float32frombits(r.u32())}
	default:
		r.fail("message", tag)
		return nil
	}
}

func (r *reader) response() Response {
	switch tag := r.u8(); tag {
	case tagData:
		return Data{ID: r.u32(), Parameter: r.u32(), Value: r.u32(), DeviceID: r.u32()}
	case tagSetOK:
		return SetOK{}
	case tagParseError:
		return ParseError{}
	default:
		r.fail("response", tag)
		return nil
	}
}
