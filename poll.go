package klingo

import (
	"context"
	"fmt"
	"time"
)

// Default polling parameters, applied when the caller leaves them zero.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultPollTimeout  = 300 * time.Second
)

// PollOptions controls the status polling loop. Interval is the constant
// pause between status fetches; it is unrelated to the retry backoff, which
// only applies to transient fetch failures. Timeout is a wall-clock deadline
// checked before each pause: an in-flight fetch is allowed to complete even
// if it finishes slightly past the deadline.
type PollOptions struct {
	Interval time.Duration
	Timeout  time.Duration
}

func (o *PollOptions) withDefaults() PollOptions {
	opts := PollOptions{}
	if o != nil {
		opts = *o
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultPollTimeout
	}
	return opts
}

// fetchFunc fetches one fresh snapshot of a task.
type fetchFunc func(ctx context.Context, taskID string) (*TaskSnapshot, error)

// pollUntilTerminal fetches the task status until it reaches a terminal
// state or the timeout elapses. The first fetch happens immediately. Fetches
// for one handle are strictly sequential, and the caller may cancel via ctx
// at any pause.
func pollUntilTerminal(ctx context.Context, fetch fetchFunc, handle TaskHandle, o *PollOptions) (*TaskSnapshot, error) {
	opts := o.withDefaults()
	start := time.Now()

	for {
		snap, err := fetch(ctx, handle.TaskID)
		if err != nil {
			return nil, err
		}
		if snap.Status.Terminal() {
			return snap, nil
		}

		if time.Since(start) > opts.Timeout {
			return nil, &APIError{
				Kind:    ErrKindTimeout,
				Message: fmt.Sprintf("task %s did not complete within %s", handle.TaskID, opts.Timeout),
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.Interval):
		}
	}
}
