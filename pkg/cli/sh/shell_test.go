package sh

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/cmdlink/pkg/cli/menu"
	"github.com/robotalks/cmdlink/pkg/l0/comm"
	"github.com/robotalks/cmdlink/pkg/l1"
)

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer, *[]comm.Command) {
	var sent []comm.Command
	requester := l1.RequestFunc(func(ctx context.Context, cmd comm.Command) (comm.Response, error) {
		sent = append(sent, cmd)
		return comm.SetOK{}, nil
	})
	s := New(context.Background(), requester)
	var out bytes.Buffer
	s.Shell.SetOut(&out)
	return s, &out, &sent
}

func TestShellMenuItems(t *testing.T) {
	s, out, sent := newTestShell(t)
	for _, item := range menu.Items {
		require.NoError(t, s.Shell.Process(item.Key))
	}
	require.Len(t, *sent, len(menu.Items))
	for n, item := range menu.Items {
		require.Equal(t, item.Command, (*sent)[n])
		require.Contains(t, out.String(), item.Command.String()+" -> SetOk")
	}

	out.Reset()
	require.NoError(t, s.Shell.Process(menu.KeyHelp))
	require.Equal(t, menu.Text(), out.String())
}

func TestShellInvalidInput(t *testing.T) {
	for _, line := range []string{"exit", "help", "clear", "5", "1 2"} {
		t.Run(line, func(t *testing.T) {
			s, out, sent := newTestShell(t)
			require.NoError(t, s.Shell.Process(line))
			require.Equal(t, "invalid input\n", out.String())
			require.Empty(t, *sent)
		})
	}
}
