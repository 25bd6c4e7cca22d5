package store

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"path/filepath"
	"time"

	"github.com/juju/clock"
	"github.com/juju/mutex/v2"
)

var ErrLocked = errors.New("store is locked by another process")

// MutexLocker is a machine-wide named mutex derived from the store path, so
// the ingestion and delivery processes never interleave their writes.
type MutexLocker struct {
	name    string
	clock   clock.Clock
	delay   time.Duration
	timeout time.Duration
}

func NewMutexLocker(path string, clk clock.Clock, timeout time.Duration) *MutexLocker {
	return &MutexLocker{
		name:    LockName(path),
		clock:   clk,
		delay:   100 * time.Millisecond,
		timeout: timeout,
	}
}

// LockName maps a store path to a valid mutex name.
func LockName(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(path))
	return fmt.Sprintf("kaspi-store-%08x", h.Sum32())
}

func (l *MutexLocker) Lock(ctx context.Context) (func(), error) {
	r, err := mutex.Acquire(mutex.Spec{
		Name:    l.name,
		Clock:   l.clock,
		Delay:   l.delay,
		Timeout: l.timeout,
		Cancel:  ctx.Done(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocked, err)
	}
	return r.Release, nil
}
