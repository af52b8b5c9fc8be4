package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const metricExportInterval = 15 * time.Second

// MeterProvider is the SDK provider plus a manual reader, so counters can be
// read back in-process as well as exported.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader
}

// InitMetrics installs the global meter provider. With an OTLP endpoint the
// counters are also pushed every metricExportInterval.
func InitMetrics(ctx context.Context, cfg config.TelemetryConfig, env string, logger *slog.Logger) (*MeterProvider, error) {
	reader := sdkmetric.NewManualReader()
	opts := []sdkmetric.Option{
		sdkmetric.WithResource(newResource(cfg, env)),
		sdkmetric.WithReader(reader),
	}

	if cfg.OTLPEndpoint != "" {
		exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpointURL(cfg.OTLPEndpoint))
		if err != nil {
			return nil, fmt.Errorf("create otlp metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricExportInterval)),
		))
		logger.Info("exporting metrics", "endpoint", cfg.OTLPEndpoint)
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(provider)

	return &MeterProvider{provider: provider, reader: reader}, nil
}

// NewManualMeterProvider builds a provider that only keeps counters in-process.
// It is not installed globally.
func NewManualMeterProvider() *MeterProvider {
	reader := sdkmetric.NewManualReader()
	return &MeterProvider{
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		reader:   reader,
	}
}

func (p *MeterProvider) Meter() metric.Meter {
	return p.provider.Meter(TracerName)
}

func (p *MeterProvider) Shutdown(ctx context.Context) error {
	return p.provider.Shutdown(ctx)
}

// Snapshot is the cumulative value of every payment counter.
type Snapshot struct {
	PaymentsReceived       int64 `json:"payments_received"`
	PaymentsAuthorized     int64 `json:"payments_authorized"`
	PaymentsDeclined       int64 `json:"payments_declined"`
	ValidationFailures     int64 `json:"validation_failures"`
	AuthorizerFaults       int64 `json:"authorizer_faults"`
	PersistenceFailures    int64 `json:"persistence_failures"`
	OrphanedAuthorizations int64 `json:"orphaned_authorizations"`
	OrphansRecovered       int64 `json:"orphans_recovered"`
}

// Snapshot collects the manual reader. Counters never incremented read as zero.
func (p *MeterProvider) Snapshot(ctx context.Context) (Snapshot, error) {
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return Snapshot{}, fmt.Errorf("collect metrics: %w", err)
	}

	totals := make(map[string]int64)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}

	return Snapshot{
		PaymentsReceived:       totals[MetricPaymentsReceived],
		PaymentsAuthorized:     totals[MetricPaymentsAuthorized],
		PaymentsDeclined:       totals[MetricPaymentsDeclined],
		ValidationFailures:     totals[MetricValidationFailures],
		AuthorizerFaults:       totals[MetricAuthorizerFaults],
		PersistenceFailures:    totals[MetricPersistenceFailures],
		OrphanedAuthorizations: totals[MetricOrphanedAuthorizations],
		OrphansRecovered:       totals[MetricOrphansRecovered],
	}, nil
}
