package gitlab

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

type retryConfig struct {
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
}

func defaultRetryConfig() retryConfig {
	return retryConfig{
		maxRetries:      3,
		initialInterval: 500 * time.Millisecond,
		maxInterval:     5 * time.Second,
	}
}

// retryDo runs fn with exponential backoff. fn can short-circuit by returning
// an error wrapped in backoff.Permanent.
func retryDo(ctx context.Context, operation string, cfg retryConfig, fn func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.initialInterval
	bo.MaxInterval = cfg.maxInterval
	bo.Reset()

	logger := zerolog.Ctx(ctx)
	notify := func(err error, next time.Duration) {
		logger.Warn().
			Err(err).
			Str("operation", operation).
			Str("next_attempt_in", next.Round(time.Millisecond).String()).
			Msg("GitLab request failed, retrying")
	}

	retryable := backoff.WithMaxRetries(bo, cfg.maxRetries)
	return backoff.RetryNotify(fn, backoff.WithContext(retryable, ctx), notify)
}
