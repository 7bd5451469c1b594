package dedupe

import (
	"context"

	"github.com/peted77/hubspot-fun/pkg/errors"
	"github.com/peted77/hubspot-fun/pkg/logging"
)

// retryThrottled runs op, retrying only on rate-limit errors with a
// bounded doubling backoff: the first retry waits RetryBase, the next
// twice that, up to WriteAttempts total attempts. Any other error
// returns immediately.
func (e *Engine) retryThrottled(ctx context.Context, op func(context.Context) error) error {
	delay := e.policy.RetryBase
	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !errors.IsRateLimited(err) || attempt >= e.policy.WriteAttempts {
			return err
		}

		logging.Ctx(ctx).Warn().
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("throttled, backing off")
		if sleepErr := e.sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
		delay *= 2
	}
}

// mergeTarget merges one target into the survivor with throttling
// retry. The returned error is a MergeError wrapping the last failure.
func (e *Engine) mergeTarget(ctx context.Context, objectType, survivorID, targetID string) error {
	err := e.retryThrottled(ctx, func(ctx context.Context) error {
		return e.store.Merge(ctx, objectType, survivorID, targetID)
	})
	if err != nil {
		return errors.NewMergeError(objectType, survivorID, targetID, err)
	}

	logging.Ctx(ctx).Info().
		Str("survivor_id", survivorID).
		Str("merged_id", targetID).
		Msg("records merged")
	return nil
}

// executeMerges merges every target into the survivor strictly
// sequentially, recording per-target outcomes on the result. A failed
// target does not abort the remaining ones.
func (e *Engine) executeMerges(ctx context.Context, objectType, survivorID string, targets []string, result *RunResult) {
	for _, targetID := range targets {
		if err := e.mergeTarget(ctx, objectType, survivorID, targetID); err != nil {
			logging.Ctx(ctx).Error().
				Err(err).
				Str("merged_id", targetID).
				Msg("merge failed")
			result.FailedIDs = append(result.FailedIDs, targetID)
			continue
		}
		result.MergedIDs = append(result.MergedIDs, targetID)
	}
}
