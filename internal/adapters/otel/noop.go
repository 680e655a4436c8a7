package otel

import "context"

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) PageView(ctx context.Context, page string) {}

func (e *NoOpExporter) RenderDuration(ctx context.Context, page string, seconds float64) {}

func (e *NoOpExporter) DatasetLoaded(ctx context.Context, source string, rows int64) {}

func (e *NoOpExporter) Close(ctx context.Context) error { return nil }
