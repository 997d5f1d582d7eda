package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	l0 "github.com/robotalks/cmdlink/pkg/l0/comm"
	"github.com/robotalks/cmdlink/pkg/l1"
)

var nopRequester = l1.RequestFunc(func(context.Context, l0.Command) (l0.Response, error) {
	return l0.SetOK{}, nil
})

func TestNewConfig(t *testing.T) {
	conf := NewConfig()
	require.Equal(t, ControllerType, conf.Info.Ref.Type)
	require.Equal(t, l0.MaxRetries, conf.MaxRetries)
	conf.MaxRetries = 10
	require.Equal(t, l0.MaxRetries, Default().MaxRetries)
}

func TestUpstreams(t *testing.T) {
	conf := NewConfig()
	conf.MQTTBrokerURL = ""
	conf.WebSocketAddr, conf.StreamAddr = "", ""
	_, err := conf.Upstreams(nopRequester)
	require.Error(t, err)

	conf.WebSocketAddr, conf.StreamAddr = "127.0.0.1:0", "127.0.0.1:0"
	runners, err := conf.Upstreams(nopRequester)
	require.NoError(t, err)
	require.Len(t, runners, 2)
	for _, r := range runners {
		// listeners are closed when the context is done.
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.Equal(t, context.Canceled, r.Run(ctx))
	}
}

func TestNewEnvNoDevice(t *testing.T) {
	conf := NewConfig()
	conf.Serial.Device = ""
	_, err := conf.NewEnv()
	require.Error(t, err)
}

func TestMachineID(t *testing.T) {
	require.NotEmpty(t, MachineID())
}
