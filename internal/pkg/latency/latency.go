// Package latency simulates network round trips for the demo backend.
package latency

import (
	"context"
	"time"
)

// Sleeper blocks for a simulated round trip. Implementations return ctx.Err()
// when the context ends before the delay elapses.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Real waits on a timer.
type Real struct{}

func (Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// None returns immediately. Used in tests and when SIMULATE_LATENCY=false.
type None struct{}

func (None) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Profile holds the simulated delay of each notification operation.
type Profile struct {
	List        time.Duration
	Get         time.Duration
	Send        time.Duration
	MarkRead    time.Duration
	MarkAllRead time.Duration
}

// DefaultProfile mirrors the delays the front-end was built against.
func DefaultProfile() Profile {
	return Profile{
		List:        800 * time.Millisecond,
		Get:         500 * time.Millisecond,
		Send:        1000 * time.Millisecond,
		MarkRead:    500 * time.Millisecond,
		MarkAllRead: 800 * time.Millisecond,
	}
}
