package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	perr "interestd/internal/platform/errors"
	"interestd/internal/platform/logger"
)

// Sweeper runs Guard.Sweep on a cron schedule
type Sweeper struct {
	cron    *cron.Cron
	guard   *Guard
	timeout time.Duration
}

// NewSweeper parses spec (standard cron or @every) and binds it to g
func NewSweeper(g *Guard, spec string) (*Sweeper, error) {
	if g == nil {
		panic("replay.Sweeper requires a Guard")
	}
	s := &Sweeper{cron: cron.New(), guard: g, timeout: 30 * time.Second}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeConfiguration, "replay: bad sweep schedule %q", spec)
	}
	return s, nil
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.guard.Sweep(ctx); err != nil {
		logger.Named("replay").Warn().Err(err).Msg("nonce sweep failed")
	}
}

// Start begins the schedule in its own goroutine
func (s *Sweeper) Start() { s.cron.Start() }

// Stop halts the schedule and waits for a running sweep up to ctx
func (s *Sweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
