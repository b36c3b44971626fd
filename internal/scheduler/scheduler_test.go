package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ticketapp/internal/events"

	"github.com/stretchr/testify/assert"
)

type fakeSweeper struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeSweeper) UpdateEventStates(ctx context.Context, force bool) (*events.SweepResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &events.SweepResult{SweptAt: time.Now()}, nil
}

func (f *fakeSweeper) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestRun_SweepsImmediatelyAndOnTicks(t *testing.T) {
	sweeper := &fakeSweeper{}
	s := New(sweeper, 20*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(70 * time.Millisecond)
	cancel()
	<-done

	assert.GreaterOrEqual(t, sweeper.callCount(), 3)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	sweeper := &fakeSweeper{}
	s := New(sweeper, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
	assert.Equal(t, 1, sweeper.callCount())
}

func TestRun_KeepsTickingAfterSweepError(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("db unavailable")}
	s := New(sweeper, 20*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(70 * time.Millisecond)
	cancel()
	<-done

	assert.GreaterOrEqual(t, sweeper.callCount(), 2)
}
