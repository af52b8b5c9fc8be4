package bank

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/DanielPopoola/payments-gateway/internal/config"
	"github.com/cenkalti/backoff/v4"
)

// RetryBankClient retries authorizations the bank explicitly refused to
// process. With MaxRetries at zero it is a passthrough.
type RetryBankClient struct {
	inner      application.Authorizer
	baseDelay  time.Duration
	maxDelay   time.Duration
	maxRetries int
	logger     *slog.Logger
}

func NewRetryBankClient(inner application.Authorizer, cfg config.RetryConfig, logger *slog.Logger) *RetryBankClient {
	return &RetryBankClient{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxDelay:   cfg.MaxDelay,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

var _ application.Authorizer = (*RetryBankClient)(nil)

// Authorize with retry logic
func (r *RetryBankClient) Authorize(ctx context.Context, req application.AuthorizationRequest) (*application.AuthorizationResponse, error) {
	if r.maxRetries <= 0 {
		return r.inner.Authorize(ctx, req)
	}

	attempts := 0
	operation := func() (*application.AuthorizationResponse, error) {
		attempts++
		resp, err := r.inner.Authorize(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !isRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	notify := func(err error, wait time.Duration) {
		r.logger.WarnContext(ctx, "bank authorization failed, retrying",
			"attempt", attempts,
			"wait", wait,
			"error", err,
		)
	}

	resp, err := backoff.RetryNotifyWithData(operation, backoff.WithContext(r.policy(), ctx), notify)
	if err != nil {
		if attempts > r.maxRetries {
			return nil, fmt.Errorf("maximum retries exceeded: %w", err)
		}
		return nil, err
	}
	return resp, nil
}

func (r *RetryBankClient) HealthCheck(ctx context.Context) bool {
	return r.inner.HealthCheck(ctx)
}

// Exponential delay with jitter, capped at maxRetries retries.
func (r *RetryBankClient) policy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if r.baseDelay > 0 {
		b.InitialInterval = r.baseDelay
	}
	if r.maxDelay > 0 {
		b.MaxInterval = r.maxDelay
	}
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithMaxRetries(b, uint64(r.maxRetries))
}

// Helper: to check retryable errors
func isRetryable(err error) bool {
	if bankErr, ok := IsBankError(err); ok {
		return bankErr.IsRetryable()
	}
	return false
}
