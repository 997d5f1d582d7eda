package comm

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/golang/glog"
)

// MaxRetries is the default number of attempts of a request.
const MaxRetries = 3

// Client is the host side of the link. It sends one command at a time
// and waits for the response.
//
// Reads are expected to time out on the link (e.g. a serial port with
// read timeout): a read returning no data fails the attempt.
type Client struct {
	ReadWriter io.ReadWriter
	MaxRetries int

	lock  sync.Mutex
	txBuf [CommandFrameSize]byte
	rxBuf [ResponseFrameSize]byte
}

// NewClient creates a Client over rw.
func NewClient(rw io.ReadWriter) *Client {
	return &Client{ReadWriter: rw, MaxRetries: MaxRetries}
}

// Request sends cmd and returns the response. Failed attempts are retried
// up to MaxRetries times, after which a *RetriesExhaustedError is
// returned. Serialization and link errors are returned immediately.
func (c *Client) Request(ctx context.Context, cmd Command) (Response, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	frame, err := Encode(cmd, c.txBuf[:])
	if err != nil {
		return nil, err
	}
	attempts := c.MaxRetries
	if attempts <= 0 {
		attempts = MaxRetries
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := c.ReadWriter.Write(frame); err != nil {
			return nil, fmt.Errorf("write %v: %w", cmd, err)
		}
		rsp, err := c.receive(ctx)
		if err == nil {
			glog.V(2).Infof("%v: %v (attempt %d)", cmd, rsp, attempt)
			return rsp, nil
		}
		if !isAttemptError(err) {
			return nil, err
		}
		glog.V(1).Infof("%v: attempt %d failed: %v", cmd, attempt, err)
		lastErr = err
	}
	return nil, &RetriesExhaustedError{Attempts: attempts, Last: lastErr}
}

// receive reads one frame byte by byte and decodes it.
func (c *Client) receive(ctx context.Context) (Response, error) {
	for n := 0; n < len(c.rxBuf); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cnt, err := c.ReadWriter.Read(c.rxBuf[n : n+1])
		if err != nil {
			if os.IsTimeout(err) {
				return nil, ErrReadTimeout
			}
			return nil, fmt.Errorf("read: %w", err)
		}
		if cnt == 0 {
			return nil, ErrReadTimeout
		}
		if c.rxBuf[n] != Sentinel {
			continue
		}
		if n == 0 {
			return nil, ErrEmptyOrOversizedFrame
		}
		rsp, err := DecodeResponse(c.rxBuf[:n+1])
		if err != nil {
			return nil, err
		}
		if _, ok := rsp.(ParseError); ok {
			return nil, ErrParseErrorReply
		}
		return rsp, nil
	}
	return nil, ErrEmptyOrOversizedFrame
}
