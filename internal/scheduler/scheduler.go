// Package scheduler runs the periodic event state sweep so events
// finalize and activate on time even when no admin triggers the sweep
// by hand.
package scheduler

import (
	"context"
	"time"

	"ticketapp/internal/events"
	"ticketapp/pkg/logger"
)

// Sweeper runs one state sweep pass. events.Service satisfies it.
type Sweeper interface {
	UpdateEventStates(ctx context.Context, force bool) (*events.SweepResult, error)
}

type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	log      *logger.Logger
}

func New(sweeper Sweeper, interval time.Duration, log *logger.Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		log:      log,
	}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled. It blocks, so run it in its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	result, err := s.sweeper.UpdateEventStates(ctx, false)
	if err != nil {
		if s.log != nil {
			s.log.Error("event state sweep failed", "error", err.Error())
		}
		return
	}

	if s.log != nil && !result.Skipped {
		s.log.LogStateSweep(ctx, result.Finalized, result.Activated)
	}
}
