package cleanup

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) Sweep(context.Context) (int, error) {
	s.calls.Add(1)
	return 1, s.err
}

func TestWorkerSweepsImmediatelyAndOnTick(t *testing.T) {
	sweeper := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())

	done := NewWorker(sweeper, 10*time.Millisecond).Start(ctx)

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	stopped := sweeper.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, sweeper.calls.Load())
}

func TestWorkerKeepsRunningAfterErrors(t *testing.T) {
	sweeper := &countingSweeper{err: errors.New("store down")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewWorker(sweeper, 5*time.Millisecond).Start(ctx)
	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestWorkerFirstSweepIsNotDelayed(t *testing.T) {
	sweeper := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewWorker(sweeper, time.Hour).Start(ctx)
	assert.Eventually(t, func() bool { return sweeper.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestWorkerNonPositiveIntervalUsesDefault(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		w := NewWorker(&countingSweeper{}, interval)
		assert.Equal(t, defaultInterval, w.interval)
	}

	sweeper := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())
	done := NewWorker(sweeper, 0).Start(ctx)
	assert.Eventually(t, func() bool { return sweeper.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
