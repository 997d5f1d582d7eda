package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitCanceled(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRunnerStop(t *testing.T) {
	r := NewRunner()
	r.Go(RunFunc(waitCanceled), NamedRun("named", RunFunc(waitCanceled)))
	r.Stop()
	require.NoError(t, r.Wait())
}

func TestRunnerFailureStopsOthers(t *testing.T) {
	failure := errors.New("failure")
	r := NewRunner()
	r.Go(
		NamedRun("waiter", RunFunc(waitCanceled)),
		NamedRun("failing", RunFunc(func(context.Context) error { return failure })),
	)
	err := r.Wait()
	require.Error(t, err)
	require.True(t, errors.Is(err, failure))
	require.Equal(t, "failure", err.Error())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())
	e1, e2 := errors.New("e1"), errors.New("e2")
	err := errs.Add(e1, nil, e2).Aggregate()
	require.Equal(t, "Multiple errors:\ne1\ne2", err.Error())
	require.True(t, errors.Is(err, e2))
}

type testCloser struct {
	ch     chan struct{}
	closed int
}

func (c *testCloser) Close() error {
	c.closed++
	close(c.ch)
	return nil
}

func TestRunWithContextCloser(t *testing.T) {
	c := &testCloser{ch: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := RunWithContextCloser(ctx, c, func() error {
		<-c.ch
		return errors.New("closed")
	})
	require.Equal(t, context.DeadlineExceeded, err)
	require.Equal(t, 1, c.closed)

	c = &testCloser{ch: make(chan struct{})}
	err = RunWithContextCloser(context.Background(), c, func() error { return nil })
	require.NoError(t, err)
	require.Equal(t, 1, c.closed)
}
