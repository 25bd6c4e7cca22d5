// Package supervisor runs a fallible unit of work forever: every failure is
// logged and the next cycle starts after a fixed pause.
package supervisor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/observability"
)

type Unit func(ctx context.Context) error

type Supervisor struct {
	name     string
	interval time.Duration
	clock    clock.Clock
	logger   *zap.Logger
	metrics  observability.Metrics
}

func New(name string, interval time.Duration, clk clock.Clock, logger *zap.Logger, metrics observability.Metrics) *Supervisor {
	return &Supervisor{
		name:     name,
		interval: interval,
		clock:    clk,
		logger:   logger.With(zap.String("loop", name)),
		metrics:  metrics,
	}
}

// Run calls fn, then waits interval, until ctx is done. It only returns
// ctx.Err().
func (s *Supervisor) Run(ctx context.Context, fn Unit) error {
	s.logger.Info("Loop started", zap.Duration("interval", s.interval))
	for {
		s.cycle(ctx, fn)

		select {
		case <-ctx.Done():
			s.logger.Info("Loop stopped")
			return ctx.Err()
		case <-s.clock.After(s.interval):
		}
	}
}

func (s *Supervisor) cycle(ctx context.Context, fn Unit) {
	id := uuid.NewString()
	logger := s.logger.With(zap.String("cycle_id", id))
	start := s.clock.Now()

	err := safeCall(ctx, fn)

	dur := s.clock.Now().Sub(start)
	s.metrics.ObserveCycle(s.name, err == nil, float64(dur.Microseconds())/1000.0)
	if err != nil {
		logger.Error("Cycle failed", zap.Duration("took", dur), zap.Error(err))
		return
	}
	logger.Debug("Cycle done", zap.Duration("took", dur))
}

func safeCall(ctx context.Context, fn Unit) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
