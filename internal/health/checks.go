package health

import (
	"context"
	"errors"

	"github.com/DanielPopoola/payments-gateway/internal/application"
)

var (
	errInvalidCheck    = errors.New("invalid check")
	errBankUnreachable = errors.New("bank is unreachable")
)

// BankCheck is degraded rather than unhealthy: stored payments can still be read.
func BankCheck(authorizer application.Authorizer) Check {
	return Check{
		Name: "bank",
		Fn: func(ctx context.Context) error {
			if !authorizer.HealthCheck(ctx) {
				return errBankUnreachable
			}
			return nil
		},
	}
}

func StoreCheck(name string, pinger application.Pinger) Check {
	return Check{
		Name:     name,
		Fn:       pinger.Ping,
		Critical: true,
	}
}
