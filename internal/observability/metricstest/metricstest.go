// Package metricstest wires payment counters to an in-process reader for tests.
package metricstest

import (
	"context"
	"testing"

	"github.com/DanielPopoola/payments-gateway/internal/observability"
	"github.com/stretchr/testify/require"
)

// Recorder reads back the counters recorded through Metrics.
type Recorder struct {
	t        testing.TB
	Metrics  *observability.Metrics
	Provider *observability.MeterProvider
}

func New(t testing.TB) *Recorder {
	t.Helper()

	provider := observability.NewManualMeterProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := observability.NewMetrics(provider.Meter())
	require.NoError(t, err)

	return &Recorder{t: t, Metrics: metrics, Provider: provider}
}

func (r *Recorder) Snapshot() observability.Snapshot {
	r.t.Helper()

	snapshot, err := r.Provider.Snapshot(context.Background())
	require.NoError(r.t, err)
	return snapshot
}
