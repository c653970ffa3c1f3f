// Package retry applies the client-wide retry policy to backend calls.
// The HTTP client itself never retries; services wrap their calls in
// Do with either the read or write policy.
package retry

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/learnpath/lmscli/internal/client/api"
)

// Policy decides how many attempts an operation gets and which failures
// are worth another attempt.
type Policy struct {
	// MaxAttempts is the total attempt budget, including the first call.
	MaxAttempts uint64

	// Retryable classifies a failed attempt's error.
	Retryable func(err error) bool
}

// Reads is the default policy for idempotent queries: up to three attempts,
// retrying timeouts (408), throttling (429), server errors and transport
// failures. Other 4xx responses are client errors and never retried.
var Reads = Policy{MaxAttempts: 3, Retryable: retryableRead}

// Writes is the stricter policy for state-changing requests: two attempts
// total, and no 4xx is ever retried. Re-submitting a mutation on an
// ambiguous client error is unsafe.
var Writes = Policy{MaxAttempts: 2, Retryable: retryableWrite}

func retryableRead(err error) bool {
	switch status := api.StatusOf(err); {
	case status == 0:
		// No HTTP response at all: connection refused, timeout, reset.
		return true
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		return true
	case status >= 500:
		return true
	default:
		return false
	}
}

func retryableWrite(err error) bool {
	status := api.StatusOf(err)
	return status == 0 || status >= 500
}

// Do runs op under the given policy with exponential backoff between
// attempts: 2s, 4s, 8s, ... capped at 30s, no jitter. It returns nil on
// the first success, the final error once the attempt budget is spent,
// and stops early when ctx is done or the error is non-retryable.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	return doWith(ctx, p, newBackOff(), op)
}

// doWith is split out so tests can substitute an instant backoff.
func doWith(ctx context.Context, p Policy, b backoff.BackOff, op func(ctx context.Context) error) error {
	wrapped := func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	b = backoff.WithMaxRetries(b, p.MaxAttempts-1)
	return backoff.Retry(wrapped, backoff.WithContext(b, ctx))
}

func newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}
