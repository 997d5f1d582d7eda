package framework

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the default interval between iterations.
const DefaultInterval = 2 * time.Second

// Loop runs controllers in order periodically. The first iteration
// starts immediately. A failed controller is logged and the
// iteration continues with the next one.
type Loop struct {
	Interval    time.Duration
	Controllers []Controller

	// Iterations stops the loop after the number of iterations if positive.
	Iterations int
}

type loopIteration struct {
	ctx  context.Context
	time time.Time
	seq  int
}

func (t *loopIteration) Context() context.Context { return t.ctx }
func (t *loopIteration) Time() time.Time          { return t.time }
func (t *loopIteration) Iteration() int           { return t.seq }

// NewLoop creates a Loop.
func NewLoop(ctls ...Controller) *Loop {
	return &Loop{Interval: DefaultInterval, Controllers: ctls}
}

// Add appends controllers.
func (l *Loop) Add(ctls ...Controller) *Loop {
	l.Controllers = append(l.Controllers, ctls...)
	return l
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for seq := 0; ; seq++ {
		l.runIteration(&loopIteration{ctx: ctx, time: time.Now(), seq: seq})
		if l.Iterations > 0 && seq+1 >= l.Iterations {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *Loop) runIteration(iter *loopIteration) {
	for _, ctl := range l.Controllers {
		if iter.ctx.Err() != nil {
			return
		}
		if err := ctl.Control(iter); err != nil {
			glog.Errorf("controller error: %v", err)
		}
	}
}
