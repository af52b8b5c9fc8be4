// Package observability holds the tracing, metrics and orphaned authorization
// sinks shared by the gateway.
package observability

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OrphanedPaymentEvent is the span event name reconciliation tooling searches for.
const OrphanedPaymentEvent = "OrphanedPayment"

// MaskAuthorizationCode keeps the first four characters of a code for log correlation.
func MaskAuthorizationCode(code string) string {
	if len(code) <= 4 {
		return "****"
	}
	return code[:4] + "****"
}

// SpanOrphanReporter records the orphan on the active span.
type SpanOrphanReporter struct{}

func (SpanOrphanReporter) ReportOrphanedAuthorization(ctx context.Context, orphan application.OrphanedAuthorization) {
	span := trace.SpanFromContext(ctx)

	attrs := []attribute.KeyValue{
		attribute.String("payment.id", orphan.Payment.ID()),
		attribute.String("payment.status", string(orphan.Payment.Status())),
		attribute.Int64("payment.amount", orphan.Payment.Amount()),
		attribute.String("payment.currency", orphan.Payment.Currency()),
		attribute.String("payment.last_four_card_digits", orphan.Payment.LastFourCardDigits()),
	}
	if orphan.Cause != nil {
		attrs = append(attrs, attribute.String("error.message", orphan.Cause.Error()))
	}

	span.AddEvent(OrphanedPaymentEvent, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, "payment authorized but not recorded")
}

// LogOrphanReporter writes the orphan as a structured error log.
type LogOrphanReporter struct {
	logger *slog.Logger
}

func NewLogOrphanReporter(logger *slog.Logger) *LogOrphanReporter {
	return &LogOrphanReporter{logger: logger}
}

func (r *LogOrphanReporter) ReportOrphanedAuthorization(ctx context.Context, orphan application.OrphanedAuthorization) {
	code := ""
	if c := orphan.Payment.AuthorizationCode(); c != nil {
		code = MaskAuthorizationCode(*c)
	}

	r.logger.ErrorContext(ctx, "orphaned authorization: payment authorized by bank but not recorded",
		"payment_id", orphan.Payment.ID(),
		"authorization_code", code,
		"last_four_card_digits", orphan.Payment.LastFourCardDigits(),
		"amount", orphan.Payment.Amount(),
		"currency", orphan.Payment.Currency(),
		"occurred_at", orphan.OccurredAt,
		"error", orphan.Cause,
	)
}

// OrphanReporters fans a single orphan signal out to every sink.
type OrphanReporters []application.OrphanReporter

func (rs OrphanReporters) ReportOrphanedAuthorization(ctx context.Context, orphan application.OrphanedAuthorization) {
	for _, r := range rs {
		if r != nil {
			r.ReportOrphanedAuthorization(ctx, orphan)
		}
	}
}
