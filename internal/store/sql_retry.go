package store

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// Retry policy for transient database failures.
const (
	retryMaxAttempts = 3
	retryBaseDelay   = 50 * time.Millisecond
)

// withRetry runs fn and re-runs it with exponential backoff while the
// classifier reports the failure as [Retryable]. Non-retryable errors are
// returned as is; after the last attempt the last error is returned.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	if db.errorClassificator == nil {
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(retryMaxAttempts, retry.NewExponential(retryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator.Classify(err) == Retryable {
			db.logger.Warn().Err(err).Str("dialect", db.dialect.String()).Msg("transient database error, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
