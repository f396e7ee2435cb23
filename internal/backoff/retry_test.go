package backoff

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseDelay = 5 * time.Millisecond

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	start := time.Now()
	ok, err := Retry(context.Background(), nil, 3, testBaseDelay, func() (bool, error) {
		calls++
		if calls < 3 {
			return false, errors.New("transient")
		}
		return true, nil
	})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, calls)
	// two backoff windows: base + 2*base
	assert.GreaterOrEqual(t, time.Since(start), 3*testBaseDelay)
}

func TestRetryExhaustsAndReturnsLastError(t *testing.T) {
	calls := 0
	ok, err := Retry(context.Background(), nil, 3, testBaseDelay, func() (bool, error) {
		calls++
		return false, fmt.Errorf("boom %d", calls)
	})

	assert.False(t, ok)
	assert.Equal(t, 3, calls)
	require.Error(t, err)
	assert.EqualError(t, err, "boom 3")
}

func TestRetryFalsyWithoutErrorReturnsFalseNil(t *testing.T) {
	calls := 0
	ok, err := Retry(context.Background(), nil, 3, testBaseDelay, func() (bool, error) {
		calls++
		return false, nil
	})

	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryImmediateSuccessSkipsDelay(t *testing.T) {
	start := time.Now()
	ok, err := Retry(context.Background(), nil, 3, time.Second, func() (bool, error) {
		return true, nil
	})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	ok, err := Retry(ctx, nil, 3, time.Hour, func() (bool, error) {
		calls++
		return false, errors.New("transient")
	})

	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestRetryLogsEachFailedAttempt(t *testing.T) {
	logger := &recordingLogger{}
	_, _ = Retry(context.Background(), logger, 2, testBaseDelay, func() (bool, error) {
		return false, errors.New("nope")
	})

	require.Len(t, logger.lines, 2)
	assert.Contains(t, logger.lines[0], "Attempt 1/2")
	assert.Contains(t, logger.lines[1], "Attempt 2/2")
}
