package promise

import (
	"time"

	"github.com/jakehawken/propagate/executors"
)

// RetryStrategy decides how long to wait before re-running a failed
// attempt. attempt starts from 0.
type RetryStrategy interface {
	NextBackoff(attempt int) time.Duration
}

type fixedBackoff time.Duration

// FixedBackoff waits the same duration between every attempt.
func FixedBackoff(d time.Duration) RetryStrategy {
	return fixedBackoff(d)
}

func (f fixedBackoff) NextBackoff(attempt int) time.Duration {
	return time.Duration(f)
}

type linearBackoff time.Duration

// LinearBackoff waits d after the first attempt, 2*d after the second, and
// so on.
func LinearBackoff(d time.Duration) RetryStrategy {
	return linearBackoff(d)
}

func (l linearBackoff) NextBackoff(attempt int) time.Duration {
	return time.Duration(l) * time.Duration(attempt+1)
}

type exponentialBackoff struct {
	base time.Duration
	max  time.Duration
}

// ExponentialBackoff doubles the wait after every attempt, capped at max.
func ExponentialBackoff(base, max time.Duration) RetryStrategy {
	return &exponentialBackoff{base: base, max: max}
}

func (e *exponentialBackoff) NextBackoff(attempt int) time.Duration {
	d := e.base * time.Duration(1<<attempt)
	if d > e.max {
		return e.max
	}
	return d
}

type retryConfig struct {
	maxAttempts int
	strategy    RetryStrategy
	shouldRetry func(err error) bool
}

// RetryOption configures Retry.
type RetryOption func(*retryConfig)

// WithMaxAttempts caps the total number of attempts. Default 3.
func WithMaxAttempts(maxAttempts int) RetryOption {
	return func(c *retryConfig) { c.maxAttempts = maxAttempts }
}

// WithRetryStrategy sets the backoff between attempts.
// Default FixedBackoff(100ms).
func WithRetryStrategy(strategy RetryStrategy) RetryOption {
	return func(c *retryConfig) { c.strategy = strategy }
}

// WithShouldRetryFunc limits which errors are retried. A false return fails
// the returned future with that error immediately. Default retries every
// error.
func WithShouldRetryFunc(fn func(err error) bool) RetryOption {
	return func(c *retryConfig) { c.shouldRetry = fn }
}

// Retry runs attempt, re-running it with backoff while it fails, and
// returns a Future completed by the first success or by the error that
// exhausted the attempts. The calling goroutine never blocks; waits between
// attempts are timer-driven.
func Retry[T any, E error](attempt func(n int) *Future[T, E], options ...RetryOption) *Future[T, E] {
	cfg := retryConfig{
		maxAttempts: 3,
		strategy:    FixedBackoff(100 * time.Millisecond),
	}
	for _, option := range options {
		option(&cfg)
	}

	p := New[T, E]()

	var run func(n int)
	run = func(n int) {
		attempt(n).Finally(executors.Immediate{}, func(res Result[T, E]) {
			if res.Succeeded() {
				p.Complete(res)
				return
			}
			err, _ := res.Err()
			if n+1 >= cfg.maxAttempts || (cfg.shouldRetry != nil && !cfg.shouldRetry(err)) {
				p.Complete(res)
				return
			}
			time.AfterFunc(cfg.strategy.NextBackoff(n), func() { run(n + 1) })
		})
	}
	run(0)

	return p.Future()
}
