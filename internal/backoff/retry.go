// Package backoff provides bounded exponential-backoff retry for fallible
// operations.
package backoff

import (
	"context"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// Operation is one attempt. Returning (true, nil) stops the loop.
// Returning (false, nil) counts the attempt without scheduling a delay: the
// operation gave up with nothing to report.
type Operation func() (bool, error)

// Logger is the subset of the logging package the retry loop needs.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// Retry runs op up to maxAttempts times, sleeping baseDelay, 2*baseDelay,
// 4*baseDelay, ... between failed attempts. The error from the final attempt
// is returned; an operation that only ever yields (false, nil) ends as
// (false, nil).
func Retry(ctx context.Context, logger Logger, maxAttempts int, baseDelay time.Duration, op Operation) (bool, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ok, err := op()
		if ok {
			return true, nil
		}
		if err == nil {
			continue
		}
		lastErr = err
		if logger != nil {
			logger.Warnf("Attempt %d/%d failed: %v", attempt, maxAttempts, err)
		}
		if attempt == maxAttempts {
			break
		}
		delay := baseDelay << (attempt - 1)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return false, lastErr
}
