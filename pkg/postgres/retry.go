package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes that indicate contention rather than a logical failure.
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateUniqueViolation      = "23505"
)

// RetryPolicy bounds retries of transient storage failures.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy is used when a zero RetryPolicy is supplied.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:     5,
	InitialInterval: 25 * time.Millisecond,
	MaxInterval:     500 * time.Millisecond,
}

// RetryExhaustedError is returned when a transient failure persisted through
// every allowed attempt.
type RetryExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("postgres: storage still failing after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a lock-wait, deadlock or serialization
// failure that is worth retrying.
func IsTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return true
	default:
		return false
	}
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally restricted to the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != sqlStateUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// Retry runs fn until it succeeds, fails with a non-transient error, or the
// policy is exhausted. Non-transient errors are returned unchanged on the
// first occurrence. onRetry, when non-nil, is called before each new attempt.
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error, onRetry func(attempt int, err error, wait time.Duration)) error {
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy
	}
	if policy.MaxAttempts == 1 {
		// backoff treats zero max retries as unlimited.
		err := fn(ctx)
		if IsTransient(err) {
			return &RetryExhaustedError{Attempts: 1, Err: err}
		}
		return err
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = policy.InitialInterval
	eb.MaxInterval = policy.MaxInterval
	eb.MaxElapsedTime = 0

	attempts := 0
	op := func() error {
		attempts++
		err := fn(ctx)
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		if onRetry != nil {
			onRetry(attempts, err, wait)
		}
	}

	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(policy.MaxAttempts-1)), ctx)
	err := backoff.RetryNotify(op, b, notify)
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		return &RetryExhaustedError{Attempts: attempts, Err: err}
	}
	return err
}
