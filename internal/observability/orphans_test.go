package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/DanielPopoola/payments-gateway/internal/domain"
	"github.com/DanielPopoola/payments-gateway/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func authorizedPayment(t *testing.T) *domain.Payment {
	t.Helper()
	payment, err := domain.Create(domain.PaymentRequest{
		CardNumber:  "2222405343248877",
		ExpiryMonth: 4,
		ExpiryYear:  2030,
		Currency:    "GBP",
		Amount:      100,
		CVV:         "123",
	}, time.Date(2025, 7, 22, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, payment.MarkAsAuthorized("0bb07405-6d44-4b50-a14f-7ae0beff13ad"))
	return payment
}

func TestMaskAuthorizationCode(t *testing.T) {
	assert.Equal(t, "0bb0****", observability.MaskAuthorizationCode("0bb07405-6d44"))
	assert.Equal(t, "****", observability.MaskAuthorizationCode("abcd"))
	assert.Equal(t, "****", observability.MaskAuthorizationCode(""))
}

func TestSpanOrphanReporter(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	payment := authorizedPayment(t)
	ctx, span := tp.Tracer("test").Start(context.Background(), "process")

	observability.SpanOrphanReporter{}.ReportOrphanedAuthorization(ctx, application.OrphanedAuthorization{
		Payment:    payment,
		Cause:      errors.New("connection reset"),
		OccurredAt: time.Now(),
	})
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, observability.OrphanedPaymentEvent, events[0].Name)
	assert.Contains(t, events[0].Attributes, attribute.String("payment.id", payment.ID()))
	assert.Contains(t, events[0].Attributes, attribute.String("error.message", "connection reset"))
}

func TestLogOrphanReporter_MasksAuthorizationCode(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	payment := authorizedPayment(t)

	observability.NewLogOrphanReporter(logger).ReportOrphanedAuthorization(context.Background(), application.OrphanedAuthorization{
		Payment: payment,
		Cause:   errors.New("insert failed"),
	})

	out := buf.String()
	assert.Contains(t, out, "orphaned authorization")
	assert.Contains(t, out, payment.ID())
	assert.Contains(t, out, "0bb0****")
	assert.NotContains(t, out, "0bb07405-6d44-4b50-a14f-7ae0beff13ad")
	assert.NotContains(t, out, "2222405343248877")
}

type countingReporter struct{ calls int }

func (c *countingReporter) ReportOrphanedAuthorization(context.Context, application.OrphanedAuthorization) {
	c.calls++
}

func TestOrphanReporters_FansOut(t *testing.T) {
	first, second := &countingReporter{}, &countingReporter{}
	reporters := observability.OrphanReporters{first, nil, second}

	reporters.ReportOrphanedAuthorization(context.Background(), application.OrphanedAuthorization{Payment: authorizedPayment(t)})

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}
