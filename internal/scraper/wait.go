package scraper

import (
	"context"
	"time"
)

// WaitResult is the outcome of Await.
type WaitResult int

const (
	// Changed means the condition became true before the deadline.
	Changed WaitResult = iota
	// Unchanged means the deadline passed first.
	Unchanged
	// WaitFailed means the condition returned an error or ctx was done.
	WaitFailed
)

func (r WaitResult) String() string {
	switch r {
	case Changed:
		return "changed"
	case Unchanged:
		return "unchanged"
	default:
		return "failed"
	}
}

// Await polls cond every interval until it reports true, the timeout
// elapses, or ctx is done. cond is checked once right away.
func Await(ctx context.Context, timeout, interval time.Duration, cond func(ctx context.Context) (bool, error)) (WaitResult, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond(ctx)
		if err != nil {
			return WaitFailed, err
		}
		if ok {
			return Changed, nil
		}

		select {
		case <-ctx.Done():
			return WaitFailed, ctx.Err()
		case <-deadline.C:
			return Unchanged, nil
		case <-ticker.C:
		}
	}
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
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
