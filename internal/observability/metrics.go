package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// Counter names as exported over OTLP.
const (
	MetricPaymentsReceived       = "payments.received"
	MetricPaymentsAuthorized     = "payments.authorized"
	MetricPaymentsDeclined       = "payments.declined"
	MetricValidationFailures     = "payments.validation_failures"
	MetricAuthorizerFaults       = "payments.authorizer_faults"
	MetricPersistenceFailures    = "payments.persistence_failures"
	MetricOrphanedAuthorizations = "payments.orphaned_authorizations"
	MetricOrphansRecovered       = "payments.orphans_recovered"
)

// Metrics holds the gateway's payment counters.
type Metrics struct {
	received       metric.Int64Counter
	authorized     metric.Int64Counter
	declined       metric.Int64Counter
	validation     metric.Int64Counter
	authorizer     metric.Int64Counter
	persistence    metric.Int64Counter
	orphaned       metric.Int64Counter
	orphansRecover metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	counters := []struct {
		dst         *metric.Int64Counter
		name        string
		description string
	}{
		{&m.received, MetricPaymentsReceived, "Authorization requests received"},
		{&m.authorized, MetricPaymentsAuthorized, "Payments authorized and recorded"},
		{&m.declined, MetricPaymentsDeclined, "Payments declined and recorded"},
		{&m.validation, MetricValidationFailures, "Requests rejected before reaching the bank"},
		{&m.authorizer, MetricAuthorizerFaults, "Bank calls that failed without a decision"},
		{&m.persistence, MetricPersistenceFailures, "Declined payments that could not be recorded"},
		{&m.orphaned, MetricOrphanedAuthorizations, "Bank authorizations that could not be recorded"},
		{&m.orphansRecover, MetricOrphansRecovered, "Orphaned authorizations recorded by the reconciler"},
	}

	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name,
			metric.WithDescription(c.description),
			metric.WithUnit("{payment}"),
		)
		if err != nil {
			return nil, fmt.Errorf("create counter %s: %w", c.name, err)
		}
		*c.dst = counter
	}

	return m, nil
}

func (m *Metrics) PaymentReceived(ctx context.Context) {
	m.received.Add(ctx, 1)
}

func (m *Metrics) PaymentAuthorized(ctx context.Context) {
	m.authorized.Add(ctx, 1)
}

func (m *Metrics) PaymentDeclined(ctx context.Context) {
	m.declined.Add(ctx, 1)
}

func (m *Metrics) ValidationFailed(ctx context.Context) {
	m.validation.Add(ctx, 1)
}

func (m *Metrics) AuthorizerFault(ctx context.Context) {
	m.authorizer.Add(ctx, 1)
}

func (m *Metrics) PersistenceFailed(ctx context.Context) {
	m.persistence.Add(ctx, 1)
}

// AuthorizationOrphaned is the alerting signal for funds held at the bank
// without a payment record.
func (m *Metrics) AuthorizationOrphaned(ctx context.Context) {
	m.orphaned.Add(ctx, 1)
}

func (m *Metrics) OrphanRecovered(ctx context.Context) {
	m.orphansRecover.Add(ctx, 1)
}
