package retry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/juju/clock"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/require"

	"github.com/TemirB/kaspi-feedback/internal/config"
)

var fast = config.Retry{Attempts: 3, Base: time.Millisecond, Max: 5 * time.Millisecond}

func TestDoSucceedsAfterFailures(t *testing.T) {
	var seen []int
	err := Do(context.Background(), clock.WallClock, fast, func(attempt int) error {
		seen = append(seen, attempt)
		if attempt < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, seen)
}

func TestDoExhausted(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := Do(context.Background(), clock.WallClock, fast, func(int) error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 3, calls)
}

func TestDoPermanent(t *testing.T) {
	calls := 0
	invalid := errors.New("invalid number")
	err := Do(context.Background(), clock.WallClock, fast, func(int) error {
		calls++
		return Permanent(invalid)
	})
	require.Equal(t, invalid, err)
	require.Equal(t, 1, calls)
}

func TestDoContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := config.Retry{Attempts: 5, Base: time.Hour}

	calls := 0
	err := Do(ctx, clock.WallClock, policy, func(int) error {
		calls++
		cancel()
		return errors.New("fail")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestDoNoSleepAfterLastAttempt(t *testing.T) {
	policy := config.Retry{Attempts: 1, Base: time.Hour}

	start := time.Now()
	err := Do(context.Background(), clock.WallClock, policy, func(int) error { return errors.New("fail") })
	require.Error(t, err)
	require.Less(t, time.Since(start), time.Second)
}

func TestPermanentNil(t *testing.T) {
	require.NoError(t, Permanent(nil))
}

func TestDoBacksOffOnClock(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	policy := config.Retry{Attempts: 3, Base: 3 * time.Second, Max: 10 * time.Second}

	var calls atomic.Int32
	busy := errors.New("busy")
	done := make(chan error, 1)
	go func() {
		done <- Do(context.Background(), clk, policy, func(int) error {
			calls.Add(1)
			return busy
		})
	}()

	require.NoError(t, clk.WaitAdvance(3*time.Second-time.Millisecond, time.Second, 1))
	require.Equal(t, int32(1), calls.Load(), "second attempt ran before the first delay passed")
	clk.Advance(time.Millisecond)

	require.NoError(t, clk.WaitAdvance(6*time.Second, time.Second, 1))

	select {
	case err := <-done:
		require.ErrorIs(t, err, busy)
	case <-time.After(time.Second):
		t.Fatal("Do did not return after the clock advanced")
	}
	require.Equal(t, int32(3), calls.Load())
}
