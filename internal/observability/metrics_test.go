package observability_test

import (
	"context"
	"testing"

	"github.com/DanielPopoola/payments-gateway/internal/observability"
	"github.com/DanielPopoola/payments-gateway/internal/observability/metricstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestMetrics_Snapshot(t *testing.T) {
	rec := metricstest.New(t)
	ctx := context.Background()

	for range 3 {
		rec.Metrics.PaymentReceived(ctx)
	}
	rec.Metrics.PaymentAuthorized(ctx)
	rec.Metrics.PaymentAuthorized(ctx)
	rec.Metrics.AuthorizationOrphaned(ctx)

	snap := rec.Snapshot()

	assert.Equal(t, int64(3), snap.PaymentsReceived)
	assert.Equal(t, int64(2), snap.PaymentsAuthorized)
	assert.Equal(t, int64(1), snap.OrphanedAuthorizations)
	assert.Zero(t, snap.PaymentsDeclined)
}

func TestMetrics_ExportsNamedCounters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := observability.NewMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	metrics.AuthorizationOrphaned(ctx)
	metrics.AuthorizerFault(ctx)
	metrics.AuthorizerFault(ctx)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	got := map[string]int64{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok, m.Name)
		assert.True(t, sum.IsMonotonic, m.Name)
		for _, dp := range sum.DataPoints {
			got[m.Name] += dp.Value
		}
	}

	assert.Equal(t, map[string]int64{
		observability.MetricOrphanedAuthorizations: 1,
		observability.MetricAuthorizerFaults:       2,
	}, got)
}
