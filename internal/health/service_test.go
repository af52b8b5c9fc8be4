package health_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/application/mocks"
	"github.com/DanielPopoola/payments-gateway/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestService_Check(t *testing.T) {
	t.Run("healthy when every check passes", func(t *testing.T) {
		authorizer := mocks.NewMockAuthorizer(t)
		authorizer.EXPECT().HealthCheck(mock.Anything).Return(true).Once()

		svc := health.NewService(0,
			health.BankCheck(authorizer),
			health.StoreCheck("postgres", pingerFunc(func(context.Context) error { return nil })),
		)

		res := svc.Check(context.Background())

		assert.Equal(t, health.StatusHealthy, res.Status)
		assert.Equal(t, "ok", res.Checks["bank"])
		assert.Equal(t, "ok", res.Checks["postgres"])
	})

	t.Run("degraded when the bank is unreachable", func(t *testing.T) {
		authorizer := mocks.NewMockAuthorizer(t)
		authorizer.EXPECT().HealthCheck(mock.Anything).Return(false).Once()

		res := health.NewService(0, health.BankCheck(authorizer)).Check(context.Background())

		assert.Equal(t, health.StatusDegraded, res.Status)
		assert.Equal(t, "bank is unreachable", res.Checks["bank"])
	})

	t.Run("unhealthy when a critical check fails", func(t *testing.T) {
		authorizer := mocks.NewMockAuthorizer(t)
		authorizer.EXPECT().HealthCheck(mock.Anything).Return(false).Once()

		svc := health.NewService(0,
			health.BankCheck(authorizer),
			health.StoreCheck("redis", pingerFunc(func(context.Context) error { return errors.New("dial tcp: refused") })),
		)

		res := svc.Check(context.Background())

		assert.Equal(t, health.StatusUnhealthy, res.Status)
		assert.Equal(t, "dial tcp: refused", res.Checks["redis"])
	})

	t.Run("nil check func is reported as invalid", func(t *testing.T) {
		res := health.NewService(0, health.Check{Name: "broken"}).Check(context.Background())

		assert.Equal(t, health.StatusDegraded, res.Status)
		assert.Equal(t, "invalid check", res.Checks["broken"])
	})

	t.Run("caches results for the ttl", func(t *testing.T) {
		authorizer := mocks.NewMockAuthorizer(t)
		authorizer.EXPECT().HealthCheck(mock.Anything).Return(true).Once()

		svc := health.NewService(time.Hour, health.BankCheck(authorizer))

		first := svc.Check(context.Background())
		second := svc.Check(context.Background())

		assert.Equal(t, first.At, second.At)
	})
}
