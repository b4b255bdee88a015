package jobs

import (
	"context"
	"time"

	"lol-sync/internal/api"
	"lol-sync/internal/constants"
	"lol-sync/internal/telemetry"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

// Executor re-runs a failing sync job according to the failure kind:
// rate-limited calls back off exponentially (honoring the provider's
// Retry-After hint as a floor), transient provider or network trouble waits
// a fixed delay, and everything else is terminal.
type Executor struct {
	logger zerolog.Logger

	rateLimitBase  time.Duration
	transientDelay time.Duration
}

func NewExecutor(logger zerolog.Logger) *Executor {
	return &Executor{
		logger:         logger,
		rateLimitBase:  constants.RateLimitBackoffBase,
		transientDelay: constants.TransientRetryDelay,
	}
}

// Run executes fn under the retry policy and records the outcome. The
// returned error is the last attempt's failure, nil after any success.
func (e *Executor) Run(ctx context.Context, job string, fn func(context.Context) error) error {
	backoff := &kindBackoff{
		rateLimited: retry.WithMaxRetries(uint64(constants.RateLimitMaxAttempts-1), retry.NewExponential(e.rateLimitBase)),
		transient:   retry.WithMaxRetries(uint64(constants.TransientMaxAttempts-1), retry.NewConstant(e.transientDelay)),
	}

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		kind := api.KindOf(err)
		switch kind {
		case api.KindRateLimited, api.KindServer, api.KindNetwork:
			backoff.kind = kind
			backoff.hint = api.RetryAfterOf(err)
			telemetry.SyncOutcomes.WithLabelValues(job, "retried").Inc()
			e.logger.Warn().Err(err).
				Str("job", job).
				Str("kind", kind.String()).
				Msg("sync attempt failed, scheduling retry")
			return retry.RetryableError(err)
		default:
			return err
		}
	})

	if err != nil {
		telemetry.SyncOutcomes.WithLabelValues(job, "terminal_failure").Inc()
		return err
	}
	telemetry.SyncOutcomes.WithLabelValues(job, "success").Inc()
	return nil
}

// kindBackoff selects the delay curve from the kind of the most recent
// failure. Each curve keeps its own retry budget.
type kindBackoff struct {
	rateLimited retry.Backoff
	transient   retry.Backoff

	kind api.Kind
	hint time.Duration
}

func (b *kindBackoff) Next() (time.Duration, bool) {
	if b.kind == api.KindRateLimited {
		delay, stop := b.rateLimited.Next()
		if stop {
			return 0, true
		}
		// the provider hint wins over our own curve when it is longer
		if delay < b.hint {
			delay = b.hint
		}
		return delay, false
	}
	return b.transient.Next()
}
