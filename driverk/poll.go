package driverk

import (
	"context"
	"time"
)

// DefaultPollInterval between Condition checks
const DefaultPollInterval = 150 * time.Millisecond

// Poll calls cond every interval until it returns true, returns an error, the
// context is done or timeout elapses (ErrTimedOut). cond is called once immediately.
func Poll(ctx context.Context, cond Condition, timeout, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		ok, err := cond(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return ErrTimedOut
		case <-ticker.C:
		}
	}
}
