package monitor

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultPollInterval = 100 * time.Millisecond
)

// Wait polls m until the pass is complete or ctx is done. On expiry the
// pass is marked stalled and an error wrapping ErrIncompletePass is
// returned. The monitor has no timeout of its own.
func Wait(ctx context.Context, m *Monitor, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if m.IsComplete() {
			return nil
		}

		select {
		case <-ctx.Done():
			// a verdict may have landed while waiting for the tick
			if m.IsComplete() {
				return nil
			}
			m.stalled.Store(true)
			p := m.Progress()
			m.log.Warnf("pass stalled: %d of %d probes pending", p.Pending, p.Total)
			return fmt.Errorf("%w: %d of %d probes pending: %v", ErrIncompletePass, p.Pending, p.Total, ctx.Err())
		case <-ticker.C:
		}
	}
}
