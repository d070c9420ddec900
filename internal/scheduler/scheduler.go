package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Ticker is one unit of scheduled work.
type Ticker interface {
	Tick(ctx context.Context) error
}

// Scheduler runs ticks strictly one at a time. The delay is measured from
// the end of one tick to the start of the next, so a slow tick pushes the
// schedule out instead of overlapping it.
type Scheduler struct {
	ticker   Ticker
	interval time.Duration
	logger   *logrus.Logger

	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once
}

// New creates a scheduler running ticker every interval.
func New(ticker Ticker, interval time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		ticker:   ticker,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Run executes ticks until the context is cancelled or Shutdown is called.
// The first tick runs immediately. Run returns only between ticks, never
// mid-tick.
func (s *Scheduler) Run(ctx context.Context) {
	defer close(s.doneCh)

	for {
		s.runTick(ctx)

		timer := time.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-s.stopCh:
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// runTick isolates one tick: an error or panic is logged and must never
// stop the loop, since the next tick is the retry path for everything.
func (s *Scheduler) runTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("Tick panicked")
		}
	}()

	if err := s.ticker.Tick(ctx); err != nil {
		s.logger.WithError(err).Error("Tick failed")
	}
}

// Shutdown stops the loop and waits for the in-flight tick to finish, or
// for ctx to expire.
func (s *Scheduler) Shutdown(ctx context.Context) {
	s.once.Do(func() {
		close(s.stopCh)
	})

	select {
	case <-ctx.Done():
	case <-s.doneCh:
	}
}
