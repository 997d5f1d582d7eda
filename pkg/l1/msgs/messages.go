package msgs

import (
	"github.com/golang/protobuf/proto"
)

// CommandKind is the variant of Command.
type CommandKind int32

// Command kinds.
const (
	CommandSet CommandKind = 0
	CommandGet CommandKind = 1
)

// MessageKind is the variant of the Set payload.
type MessageKind int32

// Message kinds.
const (
	MessageA MessageKind = 0
	MessageB MessageKind = 1
	MessageC MessageKind = 2
)

// ResponseKind is the variant of Response.
type ResponseKind int32

// Response kinds.
const (
	ResponseData       ResponseKind = 0
	ResponseSetOK      ResponseKind = 1
	ResponseParseError ResponseKind = 2
)

// Command is the L0 command in a Request.
type Command struct {
	Kind        CommandKind `protobuf:"varint,1,opt,name=kind,proto3,enum=cmdlink.l1.v1.CommandKind" json:"kind,omitempty"`
	Id          uint32      `protobuf:"varint,2,opt,name=id,proto3" json:"id,omitempty"`
	DeviceId    uint32      `protobuf:"varint,3,opt,name=device_id,json=deviceId,proto3" json:"device_id,omitempty"`
	Parameter   uint32      `protobuf:"varint,4,opt,name=parameter,proto3" json:"parameter,omitempty"`
	MessageKind MessageKind `protobuf:"varint,5,opt,name=message_kind,json=messageKind,proto3,enum=cmdlink.l1.v1.MessageKind" json:"message_kind,omitempty"`
	Value       uint32      `protobuf:"varint,6,opt,name=value,proto3" json:"value,omitempty"`
	FloatValue  float32     `protobuf:"fixed32,7,opt,name=float_value,json=floatValue,proto3" json:"float_value,omitempty"`
}

// Reset implements proto.Message.
func (m *Command) Reset() { *m = Command{} }

// String implements proto.Message.
func (m *Command) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*Command) ProtoMessage() {}

// Response is the L0 response in a Reply.
type Response struct {
	Kind      ResponseKind `protobuf:"varint,1,opt,name=kind,proto3,enum=cmdlink.l1.v1.ResponseKind" json:"kind,omitempty"`
	Id        uint32       `protobuf:"varint,2,opt,name=id,proto3" json:"id,omitempty"`
	Parameter uint32       `protobuf:"varint,3,opt,name=parameter,proto3" json:"parameter,omitempty"`
	Value     uint32       `protobuf:"varint,4,opt,name=value,proto3" json:"value,omitempty"`
	DeviceId  uint32       `protobuf:"varint,5,opt,name=device_id,json=deviceId,proto3" json:"device_id,omitempty"`
}

// Reset implements proto.Message.
func (m *Response) Reset() { *m = Response{} }

// String implements proto.Message.
func (m *Response) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*Response) ProtoMessage() {}

// Request is sent from L2 to L1 controller.
type Request struct {
	Sequence uint32   `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Command  *Command `protobuf:"bytes,2,opt,name=command,proto3" json:"command,omitempty"`
}

// Reset implements proto.Message.
func (m *Request) Reset() { *m = Request{} }

// String implements proto.Message.
func (m *Request) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*Request) ProtoMessage() {}

// Reply is sent from L1 controller to L2. Either Response or Error is set.
type Reply struct {
	Sequence uint32    `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Response *Response `protobuf:"bytes,2,opt,name=response,proto3" json:"response,omitempty"`
	Error    string    `protobuf:"bytes,3,opt,name=error,proto3" json:"error,omitempty"`
}

// Reset implements proto.Message.
func (m *Reply) Reset() { *m = Reply{} }

// String implements proto.Message.
func (m *Reply) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*Reply) ProtoMessage() {}
