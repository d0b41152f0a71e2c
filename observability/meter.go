package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	apperrors "github.com/kbukum/iterx/errors"
	"github.com/kbukum/iterx/logger"
)

// ExportConfig is what the meter and tracer providers share: who is
// reporting and where the OTLP collector listens.
type ExportConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP host:port, e.g. "localhost:4318".
	Endpoint string
	Insecure bool
}

// DefaultExportConfig targets a local collector over plain HTTP.
func DefaultExportConfig(serviceName string) ExportConfig {
	return ExportConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
	}
}

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ExportConfig
	// Interval is the metric export interval. Zero keeps the SDK default.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ExportConfig: DefaultExportConfig(serviceName),
		Interval:     15 * time.Second,
	}
}

// InitMeter initializes the global OpenTelemetry meter provider.
// The returned provider should be shut down on exit to flush metrics.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ExportConfig)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric names.
const (
	MetricPullTotal    = "iterx.pull.total"
	MetricPullDuration = "iterx.pull.duration"
	MetricChainActive  = "iterx.chain.active"
	MetricErrorTotal   = "iterx.error.total"
)

// Metrics holds the instruments for iterator pulls.
type Metrics struct {
	pullTotal    metric.Int64Counter
	pullDuration metric.Float64Histogram
	chainActive  metric.Int64UpDownCounter
	errorTotal   metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	pullTotal, err := meter.Int64Counter(MetricPullTotal,
		metric.WithDescription("Pulls through an instrumented stage, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricPullTotal, err)
	}

	pullDuration, err := meter.Float64Histogram(MetricPullDuration,
		metric.WithDescription("Duration of pulls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricPullDuration, err)
	}

	chainActive, err := meter.Int64UpDownCounter(MetricChainActive,
		metric.WithDescription("Instrumented stages that have been pulled but not finished"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricChainActive, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrorTotal,
		metric.WithDescription("Failed pulls by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrorTotal, err)
	}

	return &Metrics{
		pullTotal:    pullTotal,
		pullDuration: pullDuration,
		chainActive:  chainActive,
		errorTotal:   errorTotal,
	}, nil
}

// RecordChainStart marks a stage as active.
func (m *Metrics) RecordChainStart(ctx context.Context, stage string) {
	m.chainActive.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStage, stage)))
}

// RecordChainEnd marks a stage as finished.
func (m *Metrics) RecordChainEnd(ctx context.Context, stage string) {
	m.chainActive.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrStage, stage)))
}

// RecordPull records one pull and its duration.
func (m *Metrics) RecordPull(ctx context.Context, stage string, outcome Outcome, duration time.Duration) {
	m.pullTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStage, stage),
		attribute.String(AttrOutcome, string(outcome)),
	))
	m.pullDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrStage, stage),
	))
}

// RecordError records a failed pull by error code.
func (m *Metrics) RecordError(ctx context.Context, stage string, err error) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStage, stage),
		attribute.String(AttrErrorCode, string(apperrors.CodeOf(err))),
	))
}
