package mqtt

import (
	"context"
	"io"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/cmdlink/pkg/l1"
)

// DefaultBacklog is the number of received requests buffered before dropping.
const DefaultBacklog = 16

// QoS of bridge subscriptions and publications.
const QoS = 1

// Topics used by a bridged controller, relative to the queue prefix.
type Topics struct {
	// Cmd receives msgs.Request packets.
	Cmd string
	// Msg carries msgs.Reply packets.
	Msg string
	// Meta holds the retained ControllerMeta in JSON.
	Meta string
}

// ControllerTopics returns the topics of ref:
// <type>/<id>/cmd, <type>/<id>/msg and <type>/<id>/meta.
func ControllerTopics(ref l1.ControllerRef) Topics {
	prefix := ref.Name()
	return Topics{Cmd: prefix + "/cmd", Msg: prefix + "/msg", Meta: prefix + "/meta"}
}

// ReadWriter implements PacketReadWriter over the Cmd and Msg topics.
type ReadWriter struct {
	Queue  *Queue
	Topics Topics

	requestCh chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewReadWriter creates a ReadWriter.
func NewReadWriter(q *Queue, topics Topics) *ReadWriter {
	return &ReadWriter{
		Queue:     q,
		Topics:    topics,
		requestCh: make(chan []byte, DefaultBacklog),
		done:      make(chan struct{}),
	}
}

// ReadPacket implements PacketReader. It returns io.EOF once Run returns.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-p.requestCh:
		return pkt, nil
	case <-p.done:
		return nil, io.EOF
	}
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	token := p.Queue.PubWith(p.Topics.Msg, pkt, QoS, false)
	token.Wait()
	return token.Error()
}

// Run subscribes to the Cmd topic until ctx is done.
func (p *ReadWriter) Run(ctx context.Context) error {
	sub := p.Queue.Sub(p.Topics.Cmd, p.enqueue)
	defer p.close()
	defer sub.Close()
	<-ctx.Done()
	return ctx.Err()
}

func (p *ReadWriter) close() {
	p.closeOnce.Do(func() { close(p.done) })
}

// enqueue runs on the paho callback goroutine and must not block.
// It may still be called after Run returns.
func (p *ReadWriter) enqueue(topic string, payload []byte) {
	select {
	case <-p.done:
		glog.V(2).Infof("mqtt: closed, request on %q dropped", topic)
		return
	default:
	}
	select {
	case p.requestCh <- payload:
	default:
		glog.Warningf("mqtt: backlog full, request on %q dropped", topic)
	}
}
