package comm

import "errors"

// Event is what a received byte leads to.
type Event int

const (
	// EventNone means the frame is still being received.
	EventNone Event = iota
	// EventCommand means a command is decoded.
	EventCommand
	// EventResend means a frame failed the checksum and should be sent again.
	EventResend
	// EventParseError means a frame can't be decoded.
	EventParseError
	// EventOverflow means the buffer filled up without a frame boundary.
	EventOverflow
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventCommand:
		return "command"
	case EventResend:
		return "resend"
	case EventParseError:
		return "parse-error"
	case EventOverflow:
		return "overflow"
	}
	return "unknown"
}

// ParseResult indicates the result after one parsing step.
type ParseResult struct {
	Event   Event
	Command Command
	Err     error
}

// Parser assembles command frames from received bytes.
// It never blocks and never allocates.
type Parser struct {
	buf   [CommandFrameSize]byte
	index int
}

// Len returns the number of bytes buffered for the current frame.
func (p *Parser) Len() int {
	return p.index
}

// Reset discards the current frame.
func (p *Parser) Reset() {
	p.buf = [CommandFrameSize]byte{}
	p.index = 0
}

// Parse consumes one byte. A byte arriving on a full buffer discards the
// buffered bytes with EventOverflow and starts the next frame.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	if p.index >= len(p.buf) {
		p.Reset()
		pr.Event, pr.Err = EventOverflow, ErrBufferOverflow
	}
	p.buf[p.index] = b
	p.index++
	if b != Sentinel {
		return
	}
	if frame := p.frameReady(); frame.Event != EventNone {
		pr = frame
	}
	p.Reset()
	return
}

func (p *Parser) frameReady() (pr ParseResult) {
	if p.index == 1 {
		// a bare sentinel, nothing to decode.
		return
	}
	cmd, err := DecodeCommand(p.buf[:p.index])
	switch {
	case err == nil:
		pr.Event, pr.Command = EventCommand, cmd
	case errors.Is(err, ErrCrcMismatch):
		pr.Event, pr.Err = EventResend, err
	default:
		pr.Event, pr.Err = EventParseError, err
	}
	return
}
