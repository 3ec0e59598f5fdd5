package klingo

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedFetch replays a fixed sequence of snapshots, repeating the last
// one once the script runs out.
func scriptedFetch(calls *int, statuses ...TaskStatus) fetchFunc {
	return func(ctx context.Context, taskID string) (*TaskSnapshot, error) {
		i := *calls
		*calls++
		if i >= len(statuses) {
			i = len(statuses) - 1
		}
		snap := &TaskSnapshot{TaskID: taskID, Status: statuses[i]}
		if statuses[i] == StatusSucceeded {
			snap.Result = &TaskResult{Videos: []Video{{ID: "v1", URL: "https://cdn.example.com/v1.mp4", Duration: "5"}}}
		}
		return snap, nil
	}
}

func TestPollUntilTerminal(t *testing.T) {
	t.Run("returns terminal snapshot after exact fetch count", func(t *testing.T) {
		calls := 0
		fetch := scriptedFetch(&calls, StatusProcessing, StatusProcessing, StatusSucceeded)

		snap, err := pollUntilTerminal(context.Background(), fetch, TaskHandle{TaskID: "t1"},
			&PollOptions{Interval: time.Millisecond, Timeout: time.Second})
		require.NoError(t, err)
		assert.Equal(t, StatusSucceeded, snap.Status)
		assert.Equal(t, 3, calls)
	})

	t.Run("first fetch happens immediately", func(t *testing.T) {
		calls := 0
		fetch := scriptedFetch(&calls, StatusSucceeded)

		start := time.Now()
		_, err := pollUntilTerminal(context.Background(), fetch, TaskHandle{TaskID: "t1"},
			&PollOptions{Interval: time.Second, Timeout: time.Minute})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("failed snapshot is returned, not an error", func(t *testing.T) {
		calls := 0
		fetch := scriptedFetch(&calls, StatusProcessing, StatusFailed)

		snap, err := pollUntilTerminal(context.Background(), fetch, TaskHandle{TaskID: "t2"},
			&PollOptions{Interval: time.Millisecond, Timeout: time.Second})
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, snap.Status)
	})

	t.Run("times out without an extra fetch", func(t *testing.T) {
		calls := 0
		fetch := scriptedFetch(&calls, StatusProcessing)

		start := time.Now()
		_, err := pollUntilTerminal(context.Background(), fetch, TaskHandle{TaskID: "t3"},
			&PollOptions{Interval: 10 * time.Millisecond, Timeout: 35 * time.Millisecond})
		elapsed := time.Since(start)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, ErrKindTimeout, apiErr.Kind)
		// The deadline check runs before the sleep, so the loop never
		// overshoots by more than one interval plus one fetch.
		assert.Less(t, elapsed, 200*time.Millisecond)
		assert.GreaterOrEqual(t, calls, 3)
	})

	t.Run("cancellation stops the loop at the pause", func(t *testing.T) {
		calls := 0
		fetch := scriptedFetch(&calls, StatusProcessing)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(5 * time.Millisecond)
			cancel()
		}()

		_, err := pollUntilTerminal(ctx, fetch, TaskHandle{TaskID: "t4"},
			&PollOptions{Interval: time.Second, Timeout: time.Minute})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("fetch errors propagate", func(t *testing.T) {
		fetch := func(ctx context.Context, taskID string) (*TaskSnapshot, error) {
			return nil, errors.New("boom")
		}
		_, err := pollUntilTerminal(context.Background(), fetch, TaskHandle{TaskID: "t5"}, nil)
		assert.EqualError(t, err, "boom")
	})
}

func TestPollOptionsDefaults(t *testing.T) {
	opts := (*PollOptions)(nil).withDefaults()
	assert.Equal(t, DefaultPollInterval, opts.Interval)
	assert.Equal(t, DefaultPollTimeout, opts.Timeout)

	opts = (&PollOptions{Interval: time.Second}).withDefaults()
	assert.Equal(t, time.Second, opts.Interval)
	assert.Equal(t, DefaultPollTimeout, opts.Timeout)
}
