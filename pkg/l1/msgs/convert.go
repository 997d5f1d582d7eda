package msgs

import (
	"fmt"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/cmdlink/pkg/l0/comm"
)

// CommandFrom converts an L0 command.
func CommandFrom(cmd comm.Command) (*Command, error) {
	switch c := cmd.(type) {
	case comm.Set:
		m := &Command{Kind: CommandSet, Id: c.ID, DeviceId: c.DeviceID}
		switch msg := c.Message.(type) {
		case comm.MsgA:
			m.MessageKind = MessageA
		case comm.MsgB:
			m.MessageKind, m.Value = MessageB, msg.Value
		case comm.MsgC:
			m.MessageKind, m.FloatValue = MessageC, msg.Value
		default:
			return nil, fmt.Errorf("unknown message %T", c.Message)
		}
		return m, nil
	case comm.Get:
		return &Command{Kind: CommandGet, Id: c.ID, Parameter: c.Parameter, DeviceId: c.DeviceID}, nil
	}
	return nil, fmt.Errorf("unknown command %T", cmd)
}

// L0 converts to the L0 command.
func (m *Command) L0() (comm.Command, error) {
	switch m.Kind {
	case CommandSet:
		c := comm.Set{ID: m.Id, DeviceID: m.DeviceId}
		switch m.MessageKind {
		case MessageA:
			c.Message = comm.MsgA{}
		case MessageB:
			c.Message = comm.MsgB{Value: m.Value}
		case MessageC:
			c.Message = comm.MsgC{Value: m.FloatValue}
		default:
			return nil, fmt.Errorf("unknown message kind %d", m.MessageKind)
		}
		return c, nil
	case CommandGet:
		return comm.Get{ID: m.Id, Parameter: m.Parameter, DeviceID: m.DeviceId}, nil
	}
	return nil, fmt.Errorf("unknown command kind %d", m.Kind)
}

// ResponseFrom converts an L0 response.
func ResponseFrom(rsp comm.Response) (*Response, error) {
	switch r := rsp.(type) {
	case comm.Data:
		return &Response{Kind: ResponseData, Id: r.ID, Parameter: r.Parameter, Value: r.Value, DeviceId: r.DeviceID}, nil
	case comm.SetOK:
		return &Response{Kind: ResponseSetOK}, nil
	case comm.ParseError:
		return &Response{Kind: ResponseParseError}, nil
	}
	return nil, fmt.Errorf("unknown response %T", rsp)
}

// L0 converts to the L0 response.
func (m *Response) L0() (comm.Response, error) {
	switch m.Kind {
	case ResponseData:
		return comm.Data{ID: m.Id, Parameter: m.Parameter, Value: m.Value, DeviceID: m.DeviceId}, nil
	case ResponseSetOK:
		return comm.SetOK{}, nil
	case ResponseParseError:
		return comm.ParseError{}, nil
	}
	return nil, fmt.Errorf("unknown response kind %d", m.Kind)
}

// NewRequest creates a Request.
func NewRequest(seq uint32, cmd comm.Command) (*Request, error) {
	c, err := CommandFrom(cmd)
	if err != nil {
		return nil, err
	}
	return &Request{Sequence: seq, Command: c}, nil
}

// NewReply creates a Reply from the result of a request.
func NewReply(seq uint32, rsp comm.Response, err error) *Reply {
	reply := &Reply{Sequence: seq}
	if err == nil {
		reply.Response, err = ResponseFrom(rsp)
	}
	if err != nil {
		reply.Response, reply.Error = nil, err.Error()
	}
	return reply
}

// Encode encodes a message into a packet.
func Encode(m proto.Message) ([]byte, error) {
	return proto.Marshal(m)
}

// DecodeRequest decodes a packet as Request.
func DecodeRequest(pkt []byte) (*Request, error) {
	req := &Request{}
	if err := proto.Unmarshal(pkt, req); err != nil {
		return nil, err
	}
	if req.Command == nil {
		return req, fmt.Errorf("request %d: no command", req.Sequence)
	}
	return req, nil
}

// DecodeReply decodes a packet as Reply.
func DecodeReply(pkt []byte) (*Reply, error) {
	reply := &Reply{}
	if err := proto.Unmarshal(pkt, reply); err != nil {
		return nil, err
	}
	return reply, nil
}
