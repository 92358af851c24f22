package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports"
)

// RetryPolicy bounds how often FetchWithRetry re-runs a call. Only calls
// marked Idempotent are ever retried.
type RetryPolicy struct {
	Name       string
	MaxRetries int
	BaseDelay  time.Duration
	Idempotent bool
	Sleeper    ports.Sleeper
}

func (p RetryPolicy) Validate() error {
	if p.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries %d is negative", domain.ErrInvalidRetryPolicy, p.MaxRetries)
	}
	if p.BaseDelay <= 0 {
		return fmt.Errorf("%w: base delay %s must be positive", domain.ErrInvalidRetryPolicy, p.BaseDelay)
	}
	return nil
}

func (p RetryPolicy) effectiveRetries() int {
	if !p.Idempotent {
		return 0
	}
	return p.MaxRetries
}

// RetryState is owned by a single FetchWithRetry call.
type RetryState struct {
	AttemptsRemaining int
	BaseDelay         time.Duration
}

// NextDelay grows linearly with the number of retries already spent.
func (s RetryState) NextDelay(maxRetries int) time.Duration {
	return s.BaseDelay * time.Duration(maxRetries-s.AttemptsRemaining+1)
}

// TerminalFailure is returned once every allowed attempt has failed.
type TerminalFailure struct {
	Operation string
	Attempts  int
	Err       error
}

func (f *TerminalFailure) Error() string {
	name := f.Operation
	if name == "" {
		name = "request"
	}
	return fmt.Sprintf("%s failed after %d attempt(s): %v", name, f.Attempts, f.Err)
}

func (f *TerminalFailure) Unwrap() error {
	return f.Err
}

// FetchWithRetry runs fn until it succeeds, fails with a non-retryable
// error, or the policy runs out of attempts.
func FetchWithRetry[T any](ctx context.Context, fn func(context.Context) (T, error), policy RetryPolicy) (T, error) {
	var zero T
	if err := policy.Validate(); err != nil {
		return zero, err
	}

	sleeper := policy.Sleeper
	if sleeper == nil {
		sleeper = ports.SystemClock{}
	}

	maxRetries := policy.effectiveRetries()
	state := RetryState{AttemptsRemaining: maxRetries, BaseDelay: policy.BaseDelay}
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			recordRetryOutcome(policy.Name, outcomeAborted)
			return zero, err
		}

		attempts++
		recordRetryAttempt(policy.Name)

		value, err := fn(ctx)
		if err == nil {
			recordRetryOutcome(policy.Name, outcomeSuccess)
			return value, nil
		}

		if isContextErr(err) && ctx.Err() != nil {
			recordRetryOutcome(policy.Name, outcomeAborted)
			return zero, ctx.Err()
		}
		if !domain.IsRetryable(err) {
			recordRetryOutcome(policy.Name, outcomeRejected)
			return zero, err
		}
		if state.AttemptsRemaining <= 0 {
			recordRetryOutcome(policy.Name, outcomeExhausted)
			return zero, &TerminalFailure{Operation: policy.Name, Attempts: attempts, Err: err}
		}

		if err := sleeper.Sleep(ctx, state.NextDelay(maxRetries)); err != nil {
			recordRetryOutcome(policy.Name, outcomeAborted)
			return zero, err
		}
		state.AttemptsRemaining--
	}
}
