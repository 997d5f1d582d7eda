package comm

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
)

// Dispatcher maps a decoded command to its response.
// It's called from the receive path and must not block.
type Dispatcher interface {
	Dispatch(Command) Response
}

// DispatchFunc is func type of Dispatcher.
type DispatchFunc func(Command) Response

// Dispatch implements Dispatcher.
func (f DispatchFunc) Dispatch(cmd Command) Response {
	return f(cmd)
}

// DefaultTxCapacity is the default size of the transmit queue in bytes.
const DefaultTxCapacity = 100

// IdleDelay is slept when a read with timeout returns no data, so
// schedulers without preemption (TinyGo) still run the writer.
const IdleDelay = time.Millisecond

// Stats are counters of the device side of the link.
type Stats struct {
	Frames      uint64
	Commands    uint64
	Resends     uint64
	ParseErrors uint64
	Overflows   uint64
	Dropped     uint64
}

type counters struct {
	frames, commands, resends, parseErrors, overflows, dropped atomic.Uint64
}

// FIFO is the device side of the link. It receives command frames,
// dispatches them and sends back responses.
type FIFO struct {
	ReadWriter  io.ReadWriter
	Dispatcher  Dispatcher
	TxCapacity  int
	ReadTimeout bool // set to true if ReadWriter already supports timeout with Read

	parser  Parser
	txBuf   [ResponseFrameSize]byte
	txCh    chan byte
	counter counters
}

// NewFIFO creates a FIFO.
func NewFIFO(rw io.ReadWriter, d Dispatcher) *FIFO {
	return &FIFO{
		ReadWriter: rw,
		Dispatcher: d,
		TxCapacity: DefaultTxCapacity,
	}
}

// Stats returns a snapshot of the counters.
func (f *FIFO) Stats() Stats {
	return Stats{
		Frames:      f.counter.frames.Load(),
		Commands:    f.counter.commands.Load(),
		Resends:     f.counter.resends.Load(),
		ParseErrors: f.counter.parseErrors.Load(),
		Overflows:   f.counter.overflows.Load(),
		Dropped:     f.counter.dropped.Load(),
	}
}

// Run processes the FIFO in the background.
func (f *FIFO) Run(ctx context.Context) error {
	if f.Dispatcher == nil {
		return fmt.Errorf("fifo: no dispatcher")
	}
	capacity := f.TxCapacity
	if capacity <= 0 {
		capacity = DefaultTxCapacity
	}
	f.parser.Reset()
	f.txCh = make(chan byte, capacity)

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, 2)
	go f.writeLoop(subCtx, errCh)

	if f.ReadTimeout {
		buf := make([]byte, 1)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case err := <-errCh:
				return err
			default:
				n, err := f.ReadWriter.Read(buf)
				if err != nil && !os.IsTimeout(err) {
					return err
				}
				if n > 0 {
					f.receive(buf[0])
					continue
				}
				// nothing received, yield to the writer.
				time.Sleep(IdleDelay)
			}
		}
	}

	byteCh := make(chan byte)
	go f.readLoop(subCtx, byteCh, errCh)
	for {
		select {
		case b := <-byteCh:
			f.receive(b)
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (f *FIFO) readLoop(ctx context.Context, byteCh chan byte, errCh chan error) {
	buf := make([]byte, 1)
	for {
		n, err := f.ReadWriter.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		if n == 0 {
			continue
		}
		select {
		case byteCh <- buf[0]:
		case <-ctx.Done():
			return
		}
	}
}

// writeLoop is the only writer of the link.
func (f *FIFO) writeLoop(ctx context.Context, errCh chan error) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		case buf[0] = <-f.txCh:
			if _, err := f.ReadWriter.Write(buf); err != nil {
				errCh <- err
				return
			}
		}
	}
}

// receive runs for every received byte, it must not block.
func (f *FIFO) receive(b byte) {
	pr := f.parser.Parse(b)
	switch pr.Event {
	case EventNone:
		return
	case EventCommand:
		f.counter.frames.Add(1)
		f.counter.commands.Add(1)
		rsp := f.Dispatcher.Dispatch(pr.Command)
		glog.V(2).Infof("dispatch %v: %v", pr.Command, rsp)
		f.reply(rsp)
	case EventResend:
		f.counter.frames.Add(1)
		f.counter.resends.Add(1)
		glog.Warningf("request resend: %v", pr.Err)
		f.reply(ParseError{})
	case EventParseError:
		f.counter.frames.Add(1)
		f.counter.parseErrors.Add(1)
		glog.Warningf("parse error: %v", pr.Err)
		f.reply(ParseError{})
	case EventOverflow:
		f.counter.overflows.Add(1)
		glog.Warningf("receive buffer overflow, %d bytes discarded", CommandFrameSize)
		f.reply(ParseError{})
	}
}

// reply queues a whole frame or drops it.
func (f *FIFO) reply(rsp Response) {
	frame, err := Encode(rsp, f.txBuf[:])
	if err != nil {
		glog.Errorf("encode %v: %v", rsp, err)
		return
	}
	if cap(f.txCh)-len(f.txCh) < len(frame) {
		f.counter.dropped.Add(1)
		glog.Warningf("send buffer full, %v dropped", rsp)
		return
	}
	for n, b := range frame {
		select {
		case f.txCh <- b:
		default:
			f.counter.dropped.Add(1)
			glog.Warningf("send buffer full, %v truncated after %d bytes", rsp, n)
			return
		}
	}
}
