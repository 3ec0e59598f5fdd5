package klingo

import (
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy decides whether a failed request should be retried and how
// long to wait before the next attempt. It is composed around the transport
// call rather than wrapped into it, so it can be tested on its own.
type RetryPolicy struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryPolicy returns the retry policy used when none is supplied.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts:   3,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2,
	}
}

// ShouldRetry reports whether another attempt should be made after err.
// attempt is zero-based: attempt 0 is the first failed request.
func (p *RetryPolicy) ShouldRetry(err error, attempt int) bool {
	if attempt >= p.MaxAttempts {
		return false
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Retryable()
}

// DelayFor returns the backoff delay for the given zero-based attempt,
// with symmetric jitter of up to 10% of the computed delay.
func (p *RetryPolicy) DelayFor(attempt int) time.Duration {
	d := float64(p.InitialDelay) * math.Pow(p.BackoffFactor, float64(attempt))
	if max := float64(p.MaxDelay); d > max {
		d = max
	}
	jitter := d * 0.1 * (2*rand.Float64() - 1)
	return time.Duration(d + jitter)
}

// DelayForError is DelayFor with the server's Retry-After honoured: the
// client never sleeps less than the server asked for.
func (p *RetryPolicy) DelayForError(err error, attempt int) time.Duration {
	d := p.DelayFor(attempt)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.RetryAfter > d {
		return apiErr.RetryAfter
	}
	return d
}
