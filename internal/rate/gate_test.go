package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(interval time.Duration, now *time.Time, slept *[]time.Duration) *Gate {
	g := NewGate(interval)
	g.clk = func() time.Time { return *now }
	g.sleep = func(ctx context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	return g
}

func TestGateSpacesCalls(t *testing.T) {
	now := time.Unix(0, 0)
	var slept []time.Duration
	g := newTestGate(time.Second, &now, &slept)
	ctx := context.Background()

	// First admission passes immediately.
	require.NoError(t, g.Wait(ctx))
	assert.Empty(t, slept)

	// With a frozen clock each subsequent admission queues behind the
	// previous one.
	require.NoError(t, g.Wait(ctx))
	require.NoError(t, g.Wait(ctx))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, slept)
}

func TestGatePassesAfterIntervalElapsed(t *testing.T) {
	now := time.Unix(0, 0)
	var slept []time.Duration
	g := newTestGate(time.Second, &now, &slept)
	ctx := context.Background()

	require.NoError(t, g.Wait(ctx))
	now = now.Add(5 * time.Second)
	require.NoError(t, g.Wait(ctx))

	assert.Empty(t, slept)
}

func TestGateZeroIntervalNeverSleeps(t *testing.T) {
	now := time.Unix(0, 0)
	var slept []time.Duration
	g := newTestGate(0, &now, &slept)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, g.Wait(ctx))
	}
	assert.Empty(t, slept)
}

func TestGateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGate(time.Second)
	assert.ErrorIs(t, g.Wait(ctx), context.Canceled)
}
