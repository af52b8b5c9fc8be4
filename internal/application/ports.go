package application

import (
	"context"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/domain"
)

// Authorizer is the port for the external bank that approves or declines a charge.
type Authorizer interface {
	Authorize(ctx context.Context, req AuthorizationRequest) (*AuthorizationResponse, error)
	HealthCheck(ctx context.Context) bool
}

// AuthorizationRequest is the only place the full card number and CVV travel
// after validation.
type AuthorizationRequest struct {
	CardNumber string
	ExpiryDate string
	Currency   string
	Amount     int64
	CVV        string
}

type AuthorizationResponse struct {
	Authorized        bool
	AuthorizationCode string
}

// PaymentStore is the port for persistence. Create never overwrites: a second
// Create for the same id returns domain.ErrPaymentAlreadyExists. Get returns
// domain.ErrPaymentNotFound for unknown ids.
type PaymentStore interface {
	Create(ctx context.Context, payment *domain.Payment) error
	Get(ctx context.Context, id string) (*domain.Payment, error)
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OrphanedAuthorization describes a payment the bank authorized that could not
// be recorded.
type OrphanedAuthorization struct {
	Payment    *domain.Payment
	Cause      error
	OccurredAt time.Time
}

// OrphanReporter receives the orphaned authorization signal.
type OrphanReporter interface {
	ReportOrphanedAuthorization(ctx context.Context, orphan OrphanedAuthorization)
}

// Clock supplies the current date to payment creation.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
