package comm

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/golang/glog"

	fx "github.com/robotalks/cmdlink/pkg/framework"
	"github.com/robotalks/cmdlink/pkg/l1"
	"github.com/robotalks/cmdlink/pkg/l1/msgs"
)

// Pipe serves Requests read from a PacketReadWriter with a Requester
// and writes back Replies.
type Pipe struct {
	ReadWriter PacketReadWriter
	Requester  l1.Requester

	sendLock sync.Mutex
}

// NewPipe creates a Pipe with given PacketReadWriter.
func NewPipe(rw PacketReadWriter, requester l1.Requester) *Pipe {
	return &Pipe{ReadWriter: rw, Requester: requester}
}

// SendReply sends a Reply.
func (p *Pipe) SendReply(reply *msgs.Reply) error {
	pkt, err := msgs.Encode(reply)
	if err != nil {
		return err
	}
	p.sendLock.Lock()
	defer p.sendLock.Unlock()
	return p.ReadWriter.WritePacket(pkt)
}

// Run implements Runnable.
// It returns nil when the upstream closes.
func (p *Pipe) Run(ctx context.Context) error {
	closer, ok := p.ReadWriter.(io.Closer)
	if !ok {
		return p.serve(ctx)
	}
	return fx.RunWithContextCloser(ctx, closer, func() error {
		return p.serve(ctx)
	})
}

func (p *Pipe) serve(ctx context.Context) error {
	for {
		pkt, err := p.ReadWriter.ReadPacket()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		req, err := msgs.DecodeRequest(pkt)
		if err != nil {
			if req == nil {
				// no sequence to reply to.
				glog.Warningf("invalid request: %v", err)
				continue
			}
			err = p.SendReply(msgs.NewReply(req.Sequence, nil, err))
		} else {
			err = p.handle(ctx, req)
		}
		if err != nil {
			return err
		}
	}
}

func (p *Pipe) handle(ctx context.Context, req *msgs.Request) error {
	cmd, err := req.Command.L0()
	if err != nil {
		return p.SendReply(msgs.NewReply(req.Sequence, nil, err))
	}
	rsp, err := p.Requester.Request(ctx, cmd)
	if err != nil {
		glog.Warningf("request %d %v: %v", req.Sequence, cmd, err)
	} else {
		glog.V(2).Infof("request %d %v: %v", req.Sequence, cmd, rsp)
	}
	return p.SendReply(msgs.NewReply(req.Sequence, rsp, err))
}
