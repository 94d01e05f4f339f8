// Package retry executes upstream operations under a bounded retry budget.
// Each attempt produces a classified Outcome; only retryable failures consume
// the budget, and the budget bounds upstream calls, not waits.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	pkgerrors "github.com/jalvarez-dev/employee-gateway/pkg/errors"
	"github.com/jalvarez-dev/employee-gateway/pkg/logger"
	"github.com/jalvarez-dev/employee-gateway/pkg/metrics"
)

// Policy bounds the attempts for one logical operation. It is read once at
// construction and never mutated.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

type class int

const (
	classSuccess class = iota
	classRetryable
	classTerminal
)

// Outcome is the classified result of a single attempt. Exactly one variant
// holds: a success value, a retryable cause, or a terminal cause.
type Outcome[T any] struct {
	class class
	value T
	err   error
}

// Success wraps a usable value from an attempt.
func Success[T any](value T) Outcome[T] {
	return Outcome[T]{class: classSuccess, value: value}
}

// Retryable marks an attempt as failed in a way expected to resolve on retry.
func Retryable[T any](err error) Outcome[T] {
	return Outcome[T]{class: classRetryable, err: err}
}

// Terminal marks an attempt as failed in a way that will not change on retry.
func Terminal[T any](err error) Outcome[T] {
	return Outcome[T]{class: classTerminal, err: err}
}

// Executor runs operations under a fixed policy.
type Executor struct {
	policy Policy
	logg   *logger.Logger
}

func NewExecutor(policy Policy, logg *logger.Logger) (*Executor, error) {
	if policy.MaxAttempts < 1 {
		return nil, fmt.Errorf("retry: max attempts must be at least 1")
	}
	if policy.Delay < 0 {
		return nil, fmt.Errorf("retry: delay must not be negative")
	}
	return &Executor{policy: policy, logg: logg}, nil
}

// Policy returns the executor's immutable policy.
func (e *Executor) Policy() Policy {
	return e.policy
}

// Do invokes op until it succeeds, fails terminally, or the attempt budget is
// spent. A terminal outcome is returned unchanged without consuming further
// attempts. When every attempt is retryable the op runs exactly MaxAttempts
// times with MaxAttempts-1 waits in between, then the last cause is surfaced
// as an upstream-unavailable error. Cancellation during a wait is reported as
// a distinct interrupted error.
func Do[T any](ctx context.Context, e *Executor, operation string, op func(context.Context) Outcome[T]) (T, error) {
	var zero T
	wait := backoff.NewConstantBackOff(e.policy.Delay)
	attempts := 0
	var lastErr error

	for {
		out := op(ctx)
		switch out.class {
		case classSuccess:
			return out.value, nil
		case classTerminal:
			return zero, out.err
		}

		attempts++
		lastErr = out.err
		if attempts >= e.policy.MaxAttempts {
			break
		}

		delay := wait.NextBackOff()
		if e.logg != nil {
			lctx := e.logg.WithFields(ctx, map[string]any{
				"operation":    operation,
				"attempt":      attempts,
				"max_attempts": e.policy.MaxAttempts,
				"delay_ms":     delay.Milliseconds(),
				"cause":        out.err.Error(),
			})
			e.logg.Warn(lctx, "upstream attempt failed, retrying")
		}
		metrics.UpstreamRetries.WithLabelValues(operation).Inc()

		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, pkgerrors.Wrap(
		pkgerrors.CodeUpstream,
		lastErr,
		fmt.Sprintf("%s failed after %d attempts", operation, attempts),
	)
}

func sleep(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return pkgerrors.Wrap(pkgerrors.CodeInterrupted, ctx.Err(), "retry delay interrupted")
	case <-timer.C:
		return nil
	}
}
