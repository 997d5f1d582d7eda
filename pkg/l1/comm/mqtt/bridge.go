package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	fx "github.com/robotalks/cmdlink/pkg/framework"
	"github.com/robotalks/cmdlink/pkg/l1"
	"github.com/robotalks/cmdlink/pkg/l1/comm"
)

// ConnectTimeout bounds the initial connection to the broker.
const ConnectTimeout = 10 * time.Second

// Bridge registers the L1 controller on the broker with retained metadata
// and serves requests published to its command topic.
type Bridge struct {
	Queue     *Queue
	Info      l1.ControllerInfo
	Requester l1.Requester
	Topics    Topics

	metaJSON []byte
}

// NewBridge creates a Bridge.
func NewBridge(brokerURL string, info l1.ControllerInfo, requester l1.Requester) (*Bridge, error) {
	if !info.Ref.IsValid() {
		return nil, fmt.Errorf("invalid controller ref %q", info.Ref.Name())
	}
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	topics := ControllerTopics(info.Ref)
	// metadata is cleared by the broker when the bridge is gone.
	opts.SetBinaryWill(topicPrefix+topics.Meta, nil, QoS, true)
	if opts.ClientID == "" {
		opts.SetClientID("cmdlink:" + info.Ref.Name())
	}
	b := &Bridge{
		Queue:     NewQueue(opts, topicPrefix),
		Info:      info,
		Requester: requester,
		Topics:    topics,
		metaJSON:  meta,
	}
	b.Queue.QoS = QoS
	b.Queue.OnConnect = func(q *Queue) {
		q.PubWith(b.Topics.Meta, b.metaJSON, QoS, true)
	}
	return b, nil
}

// Name implements Named.
func (b *Bridge) Name() string {
	return "mqtt:" + b.Info.Ref.Name()
}

// Run implements Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	token := b.Queue.Connect()
	if token.WaitTimeout(ConnectTimeout) && token.Error() != nil {
		return token.Error()
	}
	defer b.Queue.Close()

	rw := NewReadWriter(b.Queue, b.Topics)
	runner := fx.NewRunnerWith(ctx)
	runner.Go(fx.NamedRun("mqtt-sub", rw), fx.NamedRun("mqtt-pipe", comm.NewPipe(rw, b.Requester)))
	err := runner.Wait()

	b.Queue.PubWith(b.Topics.Meta, nil, QoS, true).WaitTimeout(time.Second)
	if err != nil {
		return err
	}
	return ctx.Err()
}
