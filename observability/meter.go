package observability

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/neysla/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The provider should be shut down on application exit.
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

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
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

// Meter returns the library meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// CallMetrics holds the instruments recorded for every resource call.
// A nil *CallMetrics records nothing.
type CallMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
}

// NewCallMetrics creates the call instruments on the given meter.
func NewCallMetrics(meter metric.Meter) (*CallMetrics, error) {
	calls, err := meter.Int64Counter("neysla.calls",
		metric.WithDescription("Settled resource calls by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating neysla.calls counter: %w", err)
	}

	duration, err := meter.Float64Histogram("neysla.call.duration",
		metric.WithDescription("Time from dispatch to settlement"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating neysla.call.duration histogram: %w", err)
	}

	active, err := meter.Int64UpDownCounter("neysla.calls.active",
		metric.WithDescription("Calls dispatched and not yet settled"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating neysla.calls.active counter: %w", err)
	}

	return &CallMetrics{calls: calls, duration: duration, active: active}, nil
}

var (
	defaultCallMetrics     *CallMetrics
	defaultCallMetricsOnce sync.Once
)

// DefaultCallMetrics returns instruments on the global meter provider. They
// are no-ops until InitMeter (or otel.SetMeterProvider) installs a provider.
func DefaultCallMetrics() *CallMetrics {
	defaultCallMetricsOnce.Do(func() {
		m, err := NewCallMetrics(Meter())
		if err != nil {
			logger.Warn("call metrics disabled", logger.Fields(logger.FieldError, err.Error()))
			return
		}
		defaultCallMetrics = m
	})
	return defaultCallMetrics
}

// Begin records a dispatched call.
func (m *CallMetrics) Begin(ctx context.Context, resource, method string) {
	if m == nil {
		return
	}
	m.active.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrResource, resource),
		attribute.String(AttrMethod, method),
	))
}

// End records a settled call.
func (m *CallMetrics) End(ctx context.Context, resource, method string, status int, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	base := []attribute.KeyValue{
		attribute.String(AttrResource, resource),
		attribute.String(AttrMethod, method),
	}
	m.active.Add(ctx, -1, metric.WithAttributes(base...))
	m.calls.Add(ctx, 1, metric.WithAttributes(append(base,
		attribute.String(AttrOutcome, outcome),
		attribute.String(AttrStatusCode, strconv.Itoa(status)),
	)...))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(append(base,
		attribute.String(AttrOutcome, outcome),
	)...))
}
