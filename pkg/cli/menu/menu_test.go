package menu

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/cmdlink/pkg/l0/comm"
	"github.com/robotalks/cmdlink/pkg/l1"
)

func TestSelect(t *testing.T) {
	cases := []struct {
		line   string
		action Action
		cmd    comm.Command
	}{
		{"1", ActionCommand, comm.Set{ID: 0x12, Message: comm.MsgB{Value: 12}, DeviceID: 1}},
		{" 2\n", ActionCommand, comm.Get{ID: 0x12, Parameter: 12, DeviceID: 1}},
		{"3", ActionCommand, comm.Set{ID: 0x13, Message: comm.MsgC{Value: 3.14}, DeviceID: 1}},
		{"4", ActionCommand, comm.Set{ID: 0x14, Message: comm.MsgA{}, DeviceID: 2}},
		{"h", ActionHelp, nil},
		{"q", ActionQuit, nil},
		{"5", ActionInvalid, nil},
		{"", ActionInvalid, nil},
		{"quit", ActionInvalid, nil},
	}
	for _, c := range cases {
		t.Run(c.line, func(t *testing.T) {
			action, item := Select(c.line)
			require.Equal(t, c.action, action)
			if c.cmd == nil {
				require.Nil(t, item)
			} else {
				require.Equal(t, c.cmd, item.Command)
			}
		})
	}
}

func TestHandle(t *testing.T) {
	var sent []comm.Command
	requester := l1.RequestFunc(func(_ context.Context, cmd comm.Command) (comm.Response, error) {
		sent = append(sent, cmd)
		if _, ok := cmd.(comm.Get); ok {
			return nil, comm.ErrRetriesExhausted
		}
		return comm.SetOK{}, nil
	})
	var out bytes.Buffer
	ctx := context.Background()

	require.False(t, Handle(ctx, "1", requester, &out))
	require.Equal(t, "Set(0x12, B(12), 1) -> SetOk\n", out.String())

	out.Reset()
	require.False(t, Handle(ctx, "2", requester, &out))
	require.Contains(t, out.String(), "failed: retries exhausted")

	out.Reset()
	require.False(t, Handle(ctx, "x", requester, &out))
	require.Equal(t, "invalid input\n", out.String())

	out.Reset()
	require.False(t, Handle(ctx, "h", requester, &out))
	require.Equal(t, Text(), out.String())
	require.Contains(t, out.String(), "1: Set(0x12, B(12), 1)")

	require.True(t, Handle(ctx, "q", requester, &out))
	require.Len(t, sent, 2)
}
