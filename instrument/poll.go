package instrument

import (
	"context"
	"fmt"
	"time"
)

// PollConfig defines the caller-side policy for waiting on long-running
// device operations. The status reads themselves never block; the policy
// here only governs how often Wait re-reads and when it gives up.
type PollConfig struct {
	// Interval is the time between polling attempts
	Interval time.Duration
	// Timeout is the maximum time to wait for the condition
	Timeout time.Duration
	// MaxRetries is the maximum number of polling attempts
	MaxRetries int
}

// Wait repeatedly invokes done until it reports true, polling at the
// configured interval. It is a convenience around the poll pattern; the
// instrument itself only ever answers point-in-time status queries.
//
// done must be a non-blocking status read. Errors from done abort the
// wait immediately; a command already in flight on the device cannot be
// cancelled, so Wait returning early leaves the operation running.
func Wait(ctx context.Context, config PollConfig, done func() (bool, error)) error {
	var (
		pollInterval = config.Interval
		timeout      = config.Timeout
		maxRetries   = config.MaxRetries
	)

	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxRetries <= 0 {
		maxRetries = int(timeout / pollInterval)
	}

	// First check before any delay; the operation may already be done.
	ok, err := done()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	retries := 0

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("operation not complete: %w", ctx.Err())
		case <-ticker.C:
			retries++
			if retries > maxRetries {
				return fmt.Errorf("operation not complete after %d polls", maxRetries)
			}
			ok, err := done()
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
	}
}
