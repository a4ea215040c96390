// Package metrics exports OpenTelemetry metrics for page serving and
// backend API calls. Metrics are optional; a nil *AppMetrics disables all
// recording.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"

	"github.com/yutax9/storefront/internal/config"
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestsErrors  metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	BackendRequestsTotal   metric.Int64Counter
	BackendRequestDuration metric.Float64Histogram

	OrdersPlaced   metric.Int64Counter
	CartItemsAdded metric.Int64Counter
}

// Init sets up the OTLP HTTP exporter and registers all instruments.
// The returned meter provider must be shut down on exit.
func Init(ctx context.Context, cfg *config.Config) (*AppMetrics, *sdkmetric.MeterProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.OTELServiceName)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("creating resource: %w", err)
	}

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.OTELExporterOTLPEndpoint),
	}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(15*time.Second))),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(cfg.OTELServiceName)

	m := &AppMetrics{}
	if m.HTTPRequestsTotal, err = meter.Int64Counter("http.requests.total",
		metric.WithDescription("Total HTTP requests served")); err != nil {
		return nil, nil, err
	}
	if m.HTTPRequestsErrors, err = meter.Int64Counter("http.requests.errors",
		metric.WithDescription("HTTP requests that returned 4xx or 5xx")); err != nil {
		return nil, nil, err
	}
	if m.HTTPRequestDuration, err = meter.Float64Histogram("http.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms")); err != nil {
		return nil, nil, err
	}
	if m.BackendRequestsTotal, err = meter.Int64Counter("backend.requests.total",
		metric.WithDescription("Total calls to the backend API")); err != nil {
		return nil, nil, err
	}
	if m.BackendRequestDuration, err = meter.Float64Histogram("backend.request.duration",
		metric.WithDescription("Backend API call duration in milliseconds"),
		metric.WithUnit("ms")); err != nil {
		return nil, nil, err
	}
	if m.OrdersPlaced, err = meter.Int64Counter("storefront.orders.placed",
		metric.WithDescription("Orders successfully placed through checkout")); err != nil {
		return nil, nil, err
	}
	if m.CartItemsAdded, err = meter.Int64Counter("storefront.cart.items_added",
		metric.WithDescription("Add-to-cart operations")); err != nil {
		return nil, nil, err
	}

	return m, provider, nil
}

// RecordBackendCall records one backend API round trip. Status 0 means
// the request never completed.
func (m *AppMetrics) RecordBackendCall(ctx context.Context, method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("backend.path", path),
		attribute.Int("http.status_code", status),
	)
	m.BackendRequestsTotal.Add(ctx, 1, attrs)
	m.BackendRequestDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// RecordOrderPlaced counts a successful checkout.
func (m *AppMetrics) RecordOrderPlaced(ctx context.Context) {
	if m == nil {
		return
	}
	m.OrdersPlaced.Add(ctx, 1)
}

// RecordCartAdd counts an add-to-cart operation.
func (m *AppMetrics) RecordCartAdd(ctx context.Context, quantity int) {
	if m == nil {
		return
	}
	m.CartItemsAdded.Add(ctx, int64(quantity))
}
