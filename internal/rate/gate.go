// Package rate paces outbound model calls with a minimum-interval gate.
package rate

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum interval between successive Wait returns.
// Safe for concurrent use.
type Gate struct {
	interval time.Duration
	clk      func() time.Time
	sleep    func(context.Context, time.Duration) error

	mu   sync.Mutex
	next time.Time
}

// NewGate returns a gate with the given minimum interval between calls.
// A non-positive interval disables pacing.
func NewGate(interval time.Duration) *Gate {
	return &Gate{
		interval: interval,
		clk:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until the interval since the previous admission has elapsed,
// or until ctx is cancelled.
func (g *Gate) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.interval <= 0 {
		return nil
	}

	g.mu.Lock()
	now := g.clk()
	wait := g.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	g.next = now.Add(wait).Add(g.interval)
	g.mu.Unlock()

	if wait == 0 {
		return nil
	}
	return g.sleep(ctx, wait)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
