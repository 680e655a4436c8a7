// Package otel exports dashboard usage metrics to an OTEL Collector. The
// exporter is optional; when disabled the app runs with the no-op variant.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	serviceName    = "opsboard"
	serviceVersion = "1.0.0"
)

// Exporter records page views, render durations, and dataset load sizes.
type Exporter struct {
	provider     *sdkmetric.MeterProvider
	meter        metric.Meter
	pageViews    metric.Int64Counter
	renderHist   metric.Float64Histogram
	datasetRows  metric.Int64Histogram
	reloadsTotal metric.Int64Counter
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	grpcOpts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		grpcOpts = append(grpcOpts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		grpcOpts = append(grpcOpts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, grpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	pageViews, err := meter.Int64Counter(
		"opsboard_page_views_total",
		metric.WithDescription("Dashboard page views"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating page views counter: %w", err)
	}

	renderHist, err := meter.Float64Histogram(
		"opsboard_render_duration_seconds",
		metric.WithDescription("Page render duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating render histogram: %w", err)
	}

	datasetRows, err := meter.Int64Histogram(
		"opsboard_dataset_rows",
		metric.WithDescription("Row count of loaded dataset snapshots"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dataset rows histogram: %w", err)
	}

	reloadsTotal, err := meter.Int64Counter(
		"opsboard_dataset_reloads_total",
		metric.WithDescription("Dataset snapshot loads"),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reloads counter: %w", err)
	}

	return &Exporter{
		provider:     provider,
		meter:        meter,
		pageViews:    pageViews,
		renderHist:   renderHist,
		datasetRows:  datasetRows,
		reloadsTotal: reloadsTotal,
	}, nil
}

// PageView increments the view counter for a page path.
func (e *Exporter) PageView(ctx context.Context, page string) {
	e.pageViews.Add(ctx, 1, metric.WithAttributes(attribute.String("page", page)))
}

// RenderDuration records how long a page took to render.
func (e *Exporter) RenderDuration(ctx context.Context, page string, seconds float64) {
	e.renderHist.Record(ctx, seconds, metric.WithAttributes(attribute.String("page", page)))
}

// DatasetLoaded records a dataset snapshot load.
func (e *Exporter) DatasetLoaded(ctx context.Context, source string, rows int64) {
	opt := metric.WithAttributes(attribute.String("source", source))
	e.datasetRows.Record(ctx, rows, opt)
	e.reloadsTotal.Add(ctx, 1, opt)
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
